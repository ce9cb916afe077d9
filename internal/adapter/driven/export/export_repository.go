package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
	"github.com/diillson/investment-analyzer-go/internal/domain/repository"
	"github.com/diillson/investment-analyzer-go/pkg/format"
	"github.com/jung-kurt/gofpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// pdfPeriodColumns limita quantos períodos cabem lado a lado numa tabela do PDF.
const pdfPeriodColumns = 8

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Exportação da análise de concentração ---

// ExportConcentrationToCSV escreve uma linha por bucket e período.
func (r *ExportRepositoryImpl) ExportConcentrationToCSV(report entity.ConcentrationReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{"Bucket", "Fraction", "Period", "Required Value", "Required Count", "Period Total"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	res := report.Result
	for b, bucket := range res.Buckets {
		for p, period := range res.Periods {
			record := []string{
				bucket.Label,
				formatNumber(bucket.Fraction),
				period,
				formatNumber(res.RequiredValue[b][p]),
				strconv.Itoa(res.RequiredCount[b][p]),
				formatNumber(res.Totals[p]),
			}
			if err := writer.Write(record); err != nil {
				return "", fmt.Errorf("error writing CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportConcentrationToJSON(report entity.ConcentrationReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportConcentrationToPDF(report entity.ConcentrationReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}
	pageWidth := 277.0

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Investment Analyzer | %s | %s", report.ID, report.GeneratedAt.Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	sectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+pageWidth, pdf.GetY())
		pdf.Ln(4)
	}

	// drawGrid desenha uma tabela bucket × período, quebrando os períodos em blocos.
	drawGrid := func(title string, cell func(b, p int) string) {
		sectionTitle(title)
		res := report.Result
		for start := 0; start < len(res.Periods); start += pdfPeriodColumns {
			end := min(start+pdfPeriodColumns, len(res.Periods))
			labelWidth := 35.0
			colWidth := (pageWidth - labelWidth) / float64(end-start)

			pdf.SetFont("Arial", "B", 9)
			pdf.SetFillColor(240, 240, 240)
			pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
			pdf.CellFormat(labelWidth, 7, "Bucket", "1", 0, "L", true, 0, "")
			for p := start; p < end; p++ {
				pdf.CellFormat(colWidth, 7, tr(res.Periods[p]), "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)

			pdf.SetFont("Arial", "", 9)
			for b, bucket := range res.Buckets {
				pdf.CellFormat(labelWidth, 6, tr(bucket.Label), "1", 0, "L", false, 0, "")
				for p := start; p < end; p++ {
					pdf.CellFormat(colWidth, 6, tr(cell(b, p)), "1", 0, "R", false, 0, "")
				}
				pdf.Ln(-1)
			}
			pdf.Ln(4)
		}
		pdf.Ln(4)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  Concentration Report: %s", report.Source)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	columns := fmt.Sprintf("  Time: %s | Category: %s | Value: %s",
		report.Columns.Time, report.Columns.Category, report.Columns.Value)
	pdf.CellFormat(0, 8, tr(columns), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	res := report.Result
	drawGrid("Required Value", func(b, p int) string {
		return format.Amount(res.RequiredValue[b][p], report.Currency)
	})
	drawGrid("Required Count", func(b, p int) string {
		return strconv.Itoa(res.RequiredCount[b][p])
	})

	if len(report.Periods) > 0 {
		sectionTitle("Period Summary")
		widths := []float64{50, 90, 60, 77}
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(240, 240, 240)
		for i, h := range []string{"Period", "Total", "Categories", "HHI"} {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, s := range report.Periods {
			pdf.CellFormat(widths[0], 6, tr(s.Period), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], 6, tr(format.Amount(s.Total, report.Currency)), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[2], 6, strconv.Itoa(s.Categories), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.4f", s.HHI), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Exportação do Data Overview ---

func (r *ExportRepositoryImpl) ExportProfileToMarkdown(profile entity.DatasetProfile, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "md")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, []byte(profile.Markdown()), 0644); err != nil {
		return "", fmt.Errorf("error writing Markdown file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportProfileToHTML renderiza o relatório Markdown como uma página HTML autocontida.
func (r *ExportRepositoryImpl) ExportProfileToHTML(profile entity.DatasetProfile, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "html")
	if err != nil {
		return "", err
	}

	page, err := renderHTML(fmt.Sprintf("Data Overview: %s", profile.Name), profile.Markdown())
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, page, 0644); err != nil {
		return "", fmt.Errorf("error writing HTML file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

const htmlStyle = `body{font-family:sans-serif;margin:2em;color:#323232}
table{border-collapse:collapse;margin-bottom:1.5em}
th,td{border:1px solid #c8c8c8;padding:4px 8px}
th{background:#f0f0f0}`

func renderHTML(title, markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("error rendering HTML: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n",
		html.EscapeString(title), htmlStyle)
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
