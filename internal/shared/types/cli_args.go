package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile     string
	Input          string
	Sheet          string
	TimeColumn     string
	CategoryColumn string
	ValueColumn    string
	Buckets        []float64
	BucketLabels   []string
	ReportName     string
	ReportType     []string
	Dir            string
	Currency       string
	PreviewRows    int

	// Cost Explorer source
	AWSCosts bool
	Profile  string
	Months   int
	GroupBy  string
	Tag      []string
}
