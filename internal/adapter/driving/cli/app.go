package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/diillson/investment-analyzer-go/internal/application/usecase"
	"github.com/diillson/investment-analyzer-go/internal/shared/types"
	"github.com/diillson/investment-analyzer-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd         *cobra.Command
	analysisUseCase *usecase.AnalysisUseCase
	version         string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:          "investment-analyzer",
		Short:        "Concentration analysis for portfolio and spend data",
		Long:         "For each period, find how many top categories make up 10%, 20%, 50%... of the total, and what they add up to.",
		Version:      version.FormatVersion(),
		RunE:         app.runAnalyze,
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "Investment Analyzer version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("input", "i", "", "Dataset to load: a local .csv/.xlsx file or s3://bucket/key")
	flags.String("sheet", "", "Excel sheet to read (default: first sheet)")
	flags.StringP("time-column", "t", "", "Column holding the period (default: suggested)")
	flags.StringP("category-column", "k", "", "Column holding the category, e.g. client (default: suggested)")
	flags.StringP("value-column", "v", "", "Numeric column to aggregate (default: suggested)")
	flags.Float64SliceP("buckets", "b", nil, "Bucket fractions in (0, 1], e.g. 0.1,0.2,0.5 (default: 0.1,0.2,0.5)")
	flags.StringSlice("bucket-labels", nil, "Labels for the buckets, one per fraction (default: \"Top N%\")")
	flags.StringP("report-name", "n", "", "Base name for the report files (without extension); enables export")
	flags.StringSliceP("report-type", "y", nil, "Report types: csv, json, pdf for analyze; md, html for overview")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("currency", "", "ISO 4217 currency used to format values, e.g. USD, EUR")
	flags.Int("preview-rows", 0, "Rows shown in the data overview preview (default: 30)")
	flags.Bool("aws-costs", false, "Load monthly AWS spend from Cost Explorer instead of --input")
	flags.StringP("profile", "p", "", "AWS profile used for S3 input and Cost Explorer")
	flags.IntP("months", "m", 6, "Number of months of Cost Explorer data, including the current one")
	flags.StringP("group-by", "g", "SERVICE", "Cost Explorer dimension (SERVICE, LINKED_ACCOUNT, REGION, ...) or TAG:<key>")
	flags.StringSlice("tag", nil, "Cost allocation tag to filter costs, e.g., --tag Team=DevOps")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "analyze",
			Short: "Concentration bucket table and Top 10/20/50% over time (default command)",
			RunE:  app.runAnalyze,
		},
		&cobra.Command{
			Use:   "overview",
			Short: "Data overview: preview, inferred schema, validation alerts and profile report",
			RunE:  app.runOverview,
		},
		&cobra.Command{
			Use:   "suggest",
			Short: "Show the inferred column types and the columns suggested for analyze",
			RunE:  app.runSuggest,
		},
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetAnalysisUseCase sets the analysis use case for the CLI app.
func (app *CLIApp) SetAnalysisUseCase(useCase *usecase.AnalysisUseCase) {
	app.analysisUseCase = useCase
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func parseArgs(flags *pflag.FlagSet) (*types.CLIArgs, error) {
	configFile, _ := flags.GetString("config-file")
	input, _ := flags.GetString("input")
	sheet, _ := flags.GetString("sheet")
	timeColumn, _ := flags.GetString("time-column")
	categoryColumn, _ := flags.GetString("category-column")
	valueColumn, _ := flags.GetString("value-column")
	buckets, _ := flags.GetFloat64Slice("buckets")
	bucketLabels, _ := flags.GetStringSlice("bucket-labels")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	currency, _ := flags.GetString("currency")
	previewRows, _ := flags.GetInt("preview-rows")
	awsCosts, _ := flags.GetBool("aws-costs")
	profile, _ := flags.GetString("profile")
	months, _ := flags.GetInt("months")
	groupBy, _ := flags.GetString("group-by")
	tag, _ := flags.GetStringSlice("tag")

	return &types.CLIArgs{
		ConfigFile:     configFile,
		Input:          input,
		Sheet:          sheet,
		TimeColumn:     timeColumn,
		CategoryColumn: categoryColumn,
		ValueColumn:    valueColumn,
		Buckets:        buckets,
		BucketLabels:   bucketLabels,
		ReportName:     reportName,
		ReportType:     reportType,
		Dir:            dir,
		Currency:       currency,
		PreviewRows:    previewRows,
		AWSCosts:       awsCosts,
		Profile:        profile,
		Months:         months,
		GroupBy:        groupBy,
		Tag:            tag,
	}, nil
}

// resolveArgs lê as flags, aplica o arquivo de configuração e normaliza o diretório de saída.
func (app *CLIApp) resolveArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	cliArgs, err := parseArgs(flags)
	if err != nil {
		return nil, err
	}

	if cliArgs.ConfigFile != "" {
		cfg, err := app.analysisUseCase.LoadConfig(cliArgs.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(cliArgs, cfg, flags.Changed)
	}

	// Set default directory to current working directory if not specified
	if cliArgs.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cliArgs.Dir = cwd
	} else {
		absDir, err := filepath.Abs(cliArgs.Dir)
		if err != nil {
			return nil, err
		}
		cliArgs.Dir = absDir
	}

	return cliArgs, nil
}

// mergeConfig copia os valores do arquivo de configuração para os argumentos,
// exceto quando a flag correspondente foi passada explicitamente.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, changed func(string) bool) {
	setString := func(flag string, dst *string, v string) {
		if v != "" && !changed(flag) {
			*dst = v
		}
	}
	setSlice := func(flag string, dst *[]string, v []string) {
		if len(v) > 0 && !changed(flag) {
			*dst = v
		}
	}

	setString("input", &args.Input, cfg.Input)
	setString("sheet", &args.Sheet, cfg.Sheet)
	setString("time-column", &args.TimeColumn, cfg.TimeColumn)
	setString("category-column", &args.CategoryColumn, cfg.CategoryColumn)
	setString("value-column", &args.ValueColumn, cfg.ValueColumn)
	setString("report-name", &args.ReportName, cfg.ReportName)
	setString("dir", &args.Dir, cfg.Dir)
	setString("currency", &args.Currency, cfg.Currency)
	setString("profile", &args.Profile, cfg.Profile)
	setString("group-by", &args.GroupBy, cfg.GroupBy)
	setSlice("bucket-labels", &args.BucketLabels, cfg.BucketLabels)
	setSlice("report-type", &args.ReportType, cfg.ReportType)
	setSlice("tag", &args.Tag, cfg.Tag)

	if len(cfg.Buckets) > 0 && !changed("buckets") {
		args.Buckets = cfg.Buckets
	}
	if cfg.Months > 0 && !changed("months") {
		args.Months = cfg.Months
	}
	if cfg.PreviewRows > 0 && !changed("preview-rows") {
		args.PreviewRows = cfg.PreviewRows
	}
	if cfg.AWSCosts && !changed("aws-costs") {
		args.AWSCosts = true
	}
}

// prepare exibe o banner, verifica atualizações e resolve os argumentos.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.CLIArgs, error) {
	displayWelcomeBanner(app.version)
	go checkLatestVersion(app.version)
	return app.resolveArgs(cmd)
}

func (app *CLIApp) runAnalyze(cmd *cobra.Command, _ []string) error {
	cliArgs, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	_, err = app.analysisUseCase.RunAnalysis(commandContext(cmd), cliArgs)
	return err
}

func (app *CLIApp) runOverview(cmd *cobra.Command, _ []string) error {
	cliArgs, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	_, err = app.analysisUseCase.RunOverview(commandContext(cmd), cliArgs)
	return err
}

func (app *CLIApp) runSuggest(cmd *cobra.Command, _ []string) error {
	cliArgs, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	_, err = app.analysisUseCase.RunSuggest(commandContext(cmd), cliArgs)
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
