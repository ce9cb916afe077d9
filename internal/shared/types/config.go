package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Input          string    `json:"input" yaml:"input" toml:"input"`
	Sheet          string    `json:"sheet" yaml:"sheet" toml:"sheet"`
	TimeColumn     string    `json:"time_column" yaml:"time_column" toml:"time_column"`
	CategoryColumn string    `json:"category_column" yaml:"category_column" toml:"category_column"`
	ValueColumn    string    `json:"value_column" yaml:"value_column" toml:"value_column"`
	Buckets        []float64 `json:"buckets" yaml:"buckets" toml:"buckets"`
	BucketLabels   []string  `json:"bucket_labels" yaml:"bucket_labels" toml:"bucket_labels"`
	ReportName     string    `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string  `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string    `json:"dir" yaml:"dir" toml:"dir"`
	Currency       string    `json:"currency" yaml:"currency" toml:"currency"`
	PreviewRows    int       `json:"preview_rows" yaml:"preview_rows" toml:"preview_rows"`
	AWSCosts       bool      `json:"aws_costs" yaml:"aws_costs" toml:"aws_costs"`
	Profile        string    `json:"profile" yaml:"profile" toml:"profile"`
	Months         int       `json:"months" yaml:"months" toml:"months"`
	GroupBy        string    `json:"group_by" yaml:"group_by" toml:"group_by"`
	Tag            []string  `json:"tag" yaml:"tag" toml:"tag"`
}
