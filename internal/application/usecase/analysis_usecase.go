package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/investment-analyzer-go/internal/domain/concentration"
	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
	"github.com/diillson/investment-analyzer-go/internal/domain/repository"
	"github.com/diillson/investment-analyzer-go/internal/domain/schema"
	"github.com/diillson/investment-analyzer-go/internal/shared/types"
	"github.com/diillson/investment-analyzer-go/pkg/format"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/samber/lo"
)

// suggestThreshold é o limite de valores distintos usado para sugerir colunas categóricas.
const suggestThreshold = 25

// AnalysisUseCase orquestra carregamento, análise de concentração, exibição e exportação.
type AnalysisUseCase struct {
	datasetRepo repository.DatasetRepository
	costRepo    repository.CostRepository
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	console     types.ConsoleInterface
	now         func() time.Time
}

// NewAnalysisUseCase creates a new analysis use case.
func NewAnalysisUseCase(
	datasetRepo repository.DatasetRepository,
	costRepo repository.CostRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		datasetRepo: datasetRepo,
		costRepo:    costRepo,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		console:     console,
		now:         time.Now,
	}
}

// LoadConfig lê o arquivo de configuração apontado por --config-file.
func (uc *AnalysisUseCase) LoadConfig(path string) (*types.Config, error) {
	return uc.configRepo.LoadConfigFile(path)
}

// LoadDataset carrega o dataset do arquivo/S3 ou do Cost Explorer conforme os argumentos.
func (uc *AnalysisUseCase) LoadDataset(ctx context.Context, args *types.CLIArgs) (entity.Dataset, error) {
	if args.AWSCosts || strings.HasPrefix(args.Input, "s3://") {
		if err := uc.validateProfile(args.Profile); err != nil {
			return entity.Dataset{}, err
		}
	}

	if args.AWSCosts {
		status := uc.console.Status(fmt.Sprintf("Fetching Cost Explorer data for the last %d months...", args.Months))
		defer status.Stop()

		ds, err := uc.costRepo.GetCostDataset(ctx, repository.CostQuery{
			Profile: args.Profile,
			Months:  args.Months,
			GroupBy: args.GroupBy,
			Tags:    args.Tag,
		})
		if err != nil {
			return entity.Dataset{}, fmt.Errorf("error loading cost data: %w", err)
		}
		return ds, nil
	}

	if strings.TrimSpace(args.Input) == "" {
		return entity.Dataset{}, types.ErrNoInput
	}

	status := uc.console.Status(fmt.Sprintf("Loading %s...", args.Input))
	defer status.Stop()

	ds, err := uc.datasetRepo.Load(ctx, args.Input, repository.LoadOptions{
		Sheet:   args.Sheet,
		Profile: args.Profile,
	})
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("error loading dataset: %w", err)
	}
	return ds, nil
}

// validateProfile falha cedo quando o perfil pedido não existe nos arquivos da AWS.
func (uc *AnalysisUseCase) validateProfile(profile string) error {
	if profile == "" {
		return nil
	}
	available := uc.costRepo.GetAWSProfiles()
	if lo.Contains(available, profile) {
		return nil
	}
	return fmt.Errorf("%w: %q (available: %s)", types.ErrUnknownProfile, profile, joinOrNone(available))
}

// ResolveColumns usa as colunas explícitas e completa as que faltam com as sugestões.
func ResolveColumns(ds entity.Dataset, args *types.CLIArgs) (entity.ColumnSelection, error) {
	sel := entity.ColumnSelection{
		Time:     args.TimeColumn,
		Category: args.CategoryColumn,
		Value:    args.ValueColumn,
	}
	if sel.Time != "" && sel.Category != "" && sel.Value != "" {
		return sel, nil
	}

	// O dataset do Cost Explorer já chega como month × grupo × custo.
	if args.AWSCosts && len(ds.Columns) == 3 {
		sel.Time = lo.Ternary(sel.Time == "", ds.Columns[0], sel.Time)
		sel.Category = lo.Ternary(sel.Category == "", ds.Columns[1], sel.Category)
		sel.Value = lo.Ternary(sel.Value == "", ds.Columns[2], sel.Value)
		return sel, nil
	}

	suggestion := schema.Suggest(ds, suggestThreshold)

	pick := func(current string, candidates []string, taken ...string) (string, error) {
		if current != "" {
			return current, nil
		}
		free := lo.Without(candidates, taken...)
		if len(free) == 0 {
			return "", types.ErrNoColumnCandidates
		}
		return free[0], nil
	}

	var err error
	if sel.Time, err = pick(sel.Time, suggestion.Time); err != nil {
		return sel, fmt.Errorf("time column: %w", err)
	}
	if sel.Value, err = pick(sel.Value, suggestion.Numeric, sel.Time, sel.Category); err != nil {
		return sel, fmt.Errorf("value column: %w", err)
	}
	if sel.Category, err = pick(sel.Category, suggestion.Categorical, sel.Time, sel.Value); err != nil {
		return sel, fmt.Errorf("category column: %w", err)
	}
	return sel, nil
}

// RunAnalysis executa a análise de concentração e exporta os relatórios pedidos.
func (uc *AnalysisUseCase) RunAnalysis(ctx context.Context, args *types.CLIArgs) (entity.ConcentrationReport, error) {
	ds, err := uc.LoadDataset(ctx, args)
	if err != nil {
		return entity.ConcentrationReport{}, err
	}

	sel, err := ResolveColumns(ds, args)
	if err != nil {
		return entity.ConcentrationReport{}, err
	}
	uc.console.LogInfo("Analysing %s: time=%s, category=%s, value=%s (%d rows)",
		ds.Name, sel.Time, sel.Category, sel.Value, ds.Len())

	analysis, err := concentration.Analyze(entity.AnalysisRequest{
		Dataset: ds,
		Columns: sel,
		Buckets: args.Buckets,
		Labels:  args.BucketLabels,
	})
	if err != nil {
		return entity.ConcentrationReport{}, err
	}

	currency := args.Currency
	if currency == "" && args.AWSCosts {
		currency = "USD"
	}

	report := entity.ConcentrationReport{
		ID:          uuid.New().String(),
		Source:      ds.Name,
		Columns:     sel,
		Currency:    currency,
		GeneratedAt: uc.now().UTC(),
		Result:      analysis.Result,
		Periods:     concentration.Summarize(analysis.Ranks),
	}

	if len(report.Result.Periods) == 0 {
		uc.console.LogWarning("No periods found in column '%s'", sel.Time)
		return report, nil
	}

	uc.displayReport(report)

	if args.ReportName != "" {
		uc.exportReport(report, args)
	}
	return report, nil
}

func (uc *AnalysisUseCase) displayReport(report entity.ConcentrationReport) {
	res := report.Result

	valueTable := uc.console.CreateTable()
	countTable := uc.console.CreateTable()
	valueTable.AddColumn("Bucket")
	countTable.AddColumn("Bucket")
	for _, period := range res.Periods {
		valueTable.AddColumn(period)
		countTable.AddColumn(period)
	}

	for b, bucket := range res.Buckets {
		values := []interface{}{bucket.Label}
		counts := []interface{}{bucket.Label}
		for p := range res.Periods {
			values = append(values, format.Amount(res.RequiredValue[b][p], report.Currency))
			counts = append(counts, res.RequiredCount[b][p])
		}
		valueTable.AddRow(values...)
		countTable.AddRow(counts...)
	}

	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprint("Required value per bucket"))
	uc.console.Println(valueTable.Render())
	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprint("Top categories needed per bucket"))
	uc.console.Println(countTable.Render())

	summary := uc.console.CreateTable()
	for _, h := range []string{"Period", "Total", "Categories", "HHI"} {
		summary.AddColumn(h)
	}
	for _, s := range report.Periods {
		summary.AddRow(s.Period, format.Amount(s.Total, report.Currency), s.Categories, strconv.FormatFloat(s.HHI, 'f', 4, 64))
	}
	uc.console.Println(summary.Render())

	series := res.Series(lo.Map(entity.DefaultBuckets(), func(b entity.Bucket, _ int) string { return b.Label })...)
	if len(series) == 0 {
		series = res.Series(lo.Map(res.Buckets, func(b entity.Bucket, _ int) string { return b.Label })...)
	}
	for _, s := range series {
		points := lo.Map(s.Points, func(p entity.PeriodValue, _ int) types.PeriodValue {
			return types.PeriodValue{Period: p.Period, Value: p.Value, Display: format.Amount(p.Value, report.Currency)}
		})
		uc.console.DisplayBucketTrend(fmt.Sprintf("%s over time", s.Label), points)
	}
}

func (uc *AnalysisUseCase) exportReport(report entity.ConcentrationReport, args *types.CLIArgs) {
	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"csv"}
	}

	for _, reportType := range lo.Uniq(reportTypes) {
		var (
			path string
			err  error
		)
		switch strings.ToLower(reportType) {
		case "csv":
			path, err = uc.exportRepo.ExportConcentrationToCSV(report, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportConcentrationToJSON(report, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportConcentrationToPDF(report, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unsupported report type for analyze: %s", reportType)
			continue
		}
		logExport(uc.console, strings.ToUpper(reportType), path, err)
	}
}

// RunOverview exibe o perfil do dataset e exporta o relatório em Markdown/HTML.
func (uc *AnalysisUseCase) RunOverview(ctx context.Context, args *types.CLIArgs) (entity.DatasetProfile, error) {
	ds, err := uc.LoadDataset(ctx, args)
	if err != nil {
		return entity.DatasetProfile{}, err
	}

	previewRows := args.PreviewRows
	if previewRows <= 0 {
		previewRows = schema.DefaultPreviewRows
	}
	profile := schema.Profile(ds, previewRows)

	uc.console.DisplayMarkdown(profile.Markdown())
	for _, alert := range profile.Alerts {
		uc.console.LogWarning("%s", alert)
	}

	if args.ReportName != "" {
		reportTypes := args.ReportType
		if len(reportTypes) == 0 {
			reportTypes = []string{"md"}
		}
		for _, reportType := range lo.Uniq(reportTypes) {
			var path string
			switch strings.ToLower(reportType) {
			case "md", "markdown":
				path, err = uc.exportRepo.ExportProfileToMarkdown(profile, args.ReportName, args.Dir)
			case "html":
				path, err = uc.exportRepo.ExportProfileToHTML(profile, args.ReportName, args.Dir)
			default:
				uc.console.LogWarning("Unsupported report type for overview: %s", reportType)
				continue
			}
			logExport(uc.console, strings.ToUpper(reportType), path, err)
		}
	}
	return profile, nil
}

// RunSuggest exibe o schema inferido e as colunas sugeridas para a análise.
func (uc *AnalysisUseCase) RunSuggest(ctx context.Context, args *types.CLIArgs) (entity.ColumnSuggestion, error) {
	ds, err := uc.LoadDataset(ctx, args)
	if err != nil {
		return entity.ColumnSuggestion{}, err
	}

	schemas := schema.Infer(ds)
	table := uc.console.CreateTable()
	for _, h := range []string{"Column", "Type", "Null %", "Unique"} {
		table.AddColumn(h)
	}
	for _, s := range schemas {
		table.AddRow(s.Column, s.Type, format.Share(s.NullPct), s.Unique)
	}
	uc.console.Println(table.Render())

	suggestion := schema.Suggest(ds, suggestThreshold)
	uc.console.LogInfo("Time columns: %s", joinOrNone(suggestion.Time))
	uc.console.LogInfo("Categorical columns: %s", joinOrNone(suggestion.Categorical))
	uc.console.LogInfo("Numeric columns: %s", joinOrNone(suggestion.Numeric))

	for _, alert := range schema.Validate(schemas) {
		uc.console.LogWarning("%s", alert)
	}
	return suggestion, nil
}

func logExport(console types.ConsoleInterface, kind, path string, err error) {
	if err != nil {
		console.LogError("Failed to export to %s: %s", kind, err)
		return
	}
	console.LogSuccess("Successfully exported to %s: %s", kind, path)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
