package dataset

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/investment-analyzer-go/internal/domain/repository"
	"github.com/diillson/investment-analyzer-go/internal/shared/types"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_CSV(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "comma", content: "year,client,amount\n2020,A,10\n2020,B,20\n"},
		{name: "semicolon", content: "year;client;amount\n2020;A;10\n2020;B;20\n"},
		{name: "bom and blank lines", content: "\ufeffyear,client,amount\n\n2020,A,10\n,,\n2020,B,20\n"},
	}

	repo := NewDatasetRepository()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := repo.Load(context.Background(), writeFile(t, "clients.csv", tc.content), repository.LoadOptions{})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if want := []string{"year", "client", "amount"}; !reflect.DeepEqual(ds.Columns, want) {
				t.Errorf("Columns = %v, want %v", ds.Columns, want)
			}
			if want := [][]string{{"2020", "A", "10"}, {"2020", "B", "20"}}; !reflect.DeepEqual(ds.Rows, want) {
				t.Errorf("Rows = %v, want %v", ds.Rows, want)
			}
			if ds.Name != "clients.csv" {
				t.Errorf("Name = %q", ds.Name)
			}
		})
	}
}

func TestLoad_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"year", "client", "amount"},
		{2020, "A", 12.5},
		{2021, "B", 1000},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	p := filepath.Join(t.TempDir(), "clients.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatal(err)
	}

	ds, err := NewDatasetRepository().Load(context.Background(), p, repository.LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := [][]string{{"2020", "A", "12.5"}, {"2021", "B", "1000"}}; !reflect.DeepEqual(ds.Rows, want) {
		t.Errorf("Rows = %v, want %v", ds.Rows, want)
	}

	if _, err := NewDatasetRepository().Load(context.Background(), p, repository.LoadOptions{Sheet: "Missing"}); err == nil {
		t.Error("Load() with a missing sheet succeeded")
	}
}

func TestLoad_XLSXDates(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	cells := map[string]interface{}{
		"A1": "date", "B1": "client", "C1": "amount",
		"A2": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "B2": "A", "C2": 10,
		"A3": time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "B3": "B", "C3": 45292,
	}
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatal(err)
		}
	}
	p := filepath.Join(t.TempDir(), "dates.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatal(err)
	}

	ds, err := NewDatasetRepository().Load(context.Background(), p, repository.LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// só as células com formato de data viram datas; 45292 em "amount" continua número
	if want := [][]string{{"2024-01-01", "A", "10"}, {"2024-02-01", "B", "45292"}}; !reflect.DeepEqual(ds.Rows, want) {
		t.Errorf("Rows = %v, want %v", ds.Rows, want)
	}
}

func TestIsDateFormatCode(t *testing.T) {
	testCases := []struct {
		code string
		want bool
	}{
		{code: "yyyy-mm-dd", want: true},
		{code: "mmm yyyy", want: true},
		{code: "hh:mm", want: true},
		{code: "#,##0.00", want: false},
		{code: "[Red]0.00", want: false},
		{code: `0.00" days"`, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			if got := isDateFormatCode(tc.code); got != tc.want {
				t.Errorf("isDateFormatCode(%q) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}

type fakeS3 struct {
	bucket, key string
	body        string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket, f.key = *in.Bucket, *in.Key
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestLoad_S3(t *testing.T) {
	fake := &fakeS3{body: "month,service,cost\n2024-01,EC2,10\n"}
	calls := 0
	repo := NewDatasetRepositoryWithS3(func(_ context.Context, profile string) (ObjectGetter, error) {
		calls++
		if profile != "prod" {
			t.Errorf("profile = %q, want prod", profile)
		}
		return fake, nil
	})

	for i := 0; i < 2; i++ {
		ds, err := repo.Load(context.Background(), "s3://finance-data/exports/costs.csv", repository.LoadOptions{Profile: "prod"})
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ds.Len() != 1 || ds.Name != "costs.csv" {
			t.Errorf("dataset = %+v", ds)
		}
	}
	if fake.bucket != "finance-data" || fake.key != "exports/costs.csv" {
		t.Errorf("GetObject(%q, %q)", fake.bucket, fake.key)
	}
	if calls != 1 {
		t.Errorf("client created %d times, want 1", calls)
	}

	if _, err := repo.Load(context.Background(), "s3://only-bucket", repository.LoadOptions{}); err == nil {
		t.Error("Load() with an invalid S3 URL succeeded")
	}
}

func TestLoad_Errors(t *testing.T) {
	repo := NewDatasetRepository()
	ctx := context.Background()

	if _, err := repo.Load(ctx, "", repository.LoadOptions{}); !errors.Is(err, types.ErrNoInput) {
		t.Errorf("empty source error = %v, want ErrNoInput", err)
	}
	if _, err := repo.Load(ctx, writeFile(t, "data.xls", "x"), repository.LoadOptions{}); !errors.Is(err, types.ErrUnsupportedFormat) {
		t.Errorf("xls error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := repo.Load(ctx, writeFile(t, "empty.csv", "\n\n"), repository.LoadOptions{}); !errors.Is(err, types.ErrEmptyInput) {
		t.Errorf("empty csv error = %v, want ErrEmptyInput", err)
	}
	if _, err := repo.Load(ctx, filepath.Join(t.TempDir(), "absent.csv"), repository.LoadOptions{}); err == nil {
		t.Error("missing file succeeded")
	}
}
