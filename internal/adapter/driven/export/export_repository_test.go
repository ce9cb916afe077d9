package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
)

func sampleReport() entity.ConcentrationReport {
	return entity.ConcentrationReport{
		ID:          "3f1c0e2a-7b7d-4d59-9d4a-2b1a3c4d5e6f",
		Source:      "clients.csv",
		Columns:     entity.ColumnSelection{Time: "year", Category: "client", Value: "amount"},
		Currency:    "USD",
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Result: entity.BucketResult{
			Periods:       []string{"2020", "2021"},
			Buckets:       entity.DefaultBuckets(),
			Totals:        []float64{100, 40},
			RequiredValue: [][]float64{{70, 40}, {70, 40}, {70, 40}},
			RequiredCount: [][]int{{1, 1}, {1, 1}, {1, 1}},
		},
		Periods: []entity.PeriodSummary{
			{Period: "2020", Total: 100, Categories: 2, HHI: 0.58},
			{Period: "2021", Total: 40, Categories: 1, HHI: 1},
		},
	}
}

func TestExportConcentrationToCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().ExportConcentrationToCSV(sampleReport(), "concentration", dir)
	if err != nil {
		t.Fatalf("ExportConcentrationToCSV() error = %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "concentration_") || filepath.Ext(path) != ".csv" {
		t.Errorf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1+3*2 {
		t.Fatalf("got %d records, want 7", len(records))
	}
	if got := strings.Join(records[1], ","); got != "Top 10%,0.1,2020,70,1,100" {
		t.Errorf("first row = %s", got)
	}
}

func TestExportConcentrationToJSON(t *testing.T) {
	path, err := NewExportRepository().ExportConcentrationToJSON(sampleReport(), "concentration", t.TempDir())
	if err != nil {
		t.Fatalf("ExportConcentrationToJSON() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got entity.ConcentrationReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != sampleReport().ID || got.Result.RequiredCount[2][1] != 1 || got.Columns.Category != "client" {
		t.Errorf("decoded report = %+v", got)
	}
}

func TestExportConcentrationToPDF(t *testing.T) {
	report := sampleReport()
	for i := 0; i < 10; i++ {
		report.Result.Periods = append(report.Result.Periods, "extra")
		report.Result.Totals = append(report.Result.Totals, 0)
		for b := range report.Result.Buckets {
			report.Result.RequiredValue[b] = append(report.Result.RequiredValue[b], 0)
			report.Result.RequiredCount[b] = append(report.Result.RequiredCount[b], 0)
		}
	}

	path, err := NewExportRepository().ExportConcentrationToPDF(report, "concentration", t.TempDir())
	if err != nil {
		t.Fatalf("ExportConcentrationToPDF() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output is not a PDF document")
	}
}

func sampleProfile() entity.DatasetProfile {
	return entity.DatasetProfile{
		Name:   "clients.csv",
		Rows:   2,
		Header: []string{"year", "client"},
		Columns: []entity.ColumnProfile{
			{ColumnSchema: entity.ColumnSchema{Column: "year", Type: entity.ColumnNumeric, Unique: 1}, NonNull: 2, Min: 2020, Max: 2020, Mean: 2020},
		},
		Alerts:  []string{"Column 'client' has high null percentage: 50.0%"},
		Preview: [][]string{{"2020", "A"}, {"2020", ""}},
	}
}

func TestExportProfile(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	mdPath, err := repo.ExportProfileToMarkdown(sampleProfile(), "overview", dir)
	if err != nil {
		t.Fatalf("ExportProfileToMarkdown() error = %v", err)
	}
	md, _ := os.ReadFile(mdPath)
	if !strings.Contains(string(md), "# Data Overview: clients.csv") {
		t.Errorf("markdown = %s", md)
	}

	htmlPath, err := repo.ExportProfileToHTML(sampleProfile(), "overview", dir)
	if err != nil {
		t.Fatalf("ExportProfileToHTML() error = %v", err)
	}
	page, _ := os.ReadFile(htmlPath)
	for _, want := range []string{"<title>Data Overview: clients.csv</title>", "<table>", "<h2>Alerts</h2>"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestGenerateFilename_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	name, err := generateFilename("report", dir, "csv")
	if err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
	if filepath.Dir(name) != dir {
		t.Errorf("name = %s", name)
	}
}
