package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "analyzer.toml",
			content: `
input = "clients.csv"
time_column = "year"
category_column = "client"
value_column = "amount"
buckets = [0.1, 0.25]
report_type = ["csv", "pdf"]
currency = "EUR"
`,
		},
		{
			name: "yaml",
			file: "analyzer.yml",
			content: `
input: clients.csv
time_column: year
category_column: client
value_column: amount
buckets: [0.1, 0.25]
report_type: [csv, pdf]
currency: EUR
`,
		},
		{
			name: "json",
			file: "analyzer.json",
			content: `{"input": "clients.csv", "time_column": "year", "category_column": "client",
"value_column": "amount", "buckets": [0.1, 0.25], "report_type": ["csv", "pdf"], "currency": "EUR"}`,
		},
	}

	repo := NewConfigRepository()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(writeConfig(t, tc.file, tc.content))
			if err != nil {
				t.Fatalf("LoadConfigFile() error = %v", err)
			}
			if cfg.Input != "clients.csv" || cfg.TimeColumn != "year" || cfg.CategoryColumn != "client" || cfg.ValueColumn != "amount" {
				t.Errorf("columns = %+v", cfg)
			}
			if !reflect.DeepEqual(cfg.Buckets, []float64{0.1, 0.25}) {
				t.Errorf("Buckets = %v", cfg.Buckets)
			}
			if !reflect.DeepEqual(cfg.ReportType, []string{"csv", "pdf"}) || cfg.Currency != "EUR" {
				t.Errorf("report settings = %v %q", cfg.ReportType, cfg.Currency)
			}
		})
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()
	dir := t.TempDir()

	testCases := []struct {
		name string
		path string
		want string
	}{
		{name: "unsupported", path: writeConfig(t, "analyzer.ini", "x=1"), want: "unsupported config file format"},
		{name: "missing", path: filepath.Join(dir, "absent.yaml"), want: "error accessing config file"},
		{name: "directory", path: func() string { p := filepath.Join(dir, "d.json"); _ = os.Mkdir(p, 0o755); return p }(), want: "is a directory"},
		{name: "malformed", path: writeConfig(t, "bad.json", "{"), want: "error parsing JSON file"},
		{name: "negative months", path: writeConfig(t, "neg.yaml", "months: -1"), want: "months must not be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.LoadConfigFile(tc.path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want %q", err, tc.want)
			}
		})
	}
}
