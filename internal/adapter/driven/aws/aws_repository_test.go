package aws

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/investment-analyzer-go/internal/domain/repository"
)

func TestParseTagFilter(t *testing.T) {
	testCases := []struct {
		name    string
		tags    []string
		wantNil bool
		wantAnd int
		wantErr bool
	}{
		{name: "no tags", wantNil: true},
		{name: "single", tags: []string{"env=prod"}},
		{name: "multiple", tags: []string{"env=prod", "team=data"}, wantAnd: 2},
		{name: "invalid", tags: []string{"env"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expr, err := parseTagFilter(tc.tags)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseTagFilter() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if (expr == nil) != tc.wantNil {
				t.Fatalf("expr = %+v, wantNil %v", expr, tc.wantNil)
			}
			if expr != nil && len(expr.And) != tc.wantAnd {
				t.Errorf("len(And) = %d, want %d", len(expr.And), tc.wantAnd)
			}
		})
	}
}

func TestGroupDefinition(t *testing.T) {
	testCases := []struct {
		in       string
		wantType ceTypes.GroupDefinitionType
		wantKey  string
		wantCol  string
	}{
		{in: "", wantType: ceTypes.GroupDefinitionTypeDimension, wantKey: "SERVICE", wantCol: "service"},
		{in: "linked_account", wantType: ceTypes.GroupDefinitionTypeDimension, wantKey: "LINKED_ACCOUNT", wantCol: "linked_account"},
		{in: "TAG:CostCenter", wantType: ceTypes.GroupDefinitionTypeTag, wantKey: "CostCenter", wantCol: "costcenter"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			group, col := groupDefinition(tc.in)
			if group.Type != tc.wantType || aws.ToString(group.Key) != tc.wantKey || col != tc.wantCol {
				t.Errorf("groupDefinition(%q) = %v %q %q", tc.in, group.Type, aws.ToString(group.Key), col)
			}
		})
	}
}

func TestCostInput(t *testing.T) {
	today := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	input, col, err := costInput(repository.CostQuery{Months: 3, Tags: []string{"env=prod"}}, today)
	if err != nil {
		t.Fatal(err)
	}
	if got := aws.ToString(input.TimePeriod.Start); got != "2024-01-01" {
		t.Errorf("Start = %s", got)
	}
	if got := aws.ToString(input.TimePeriod.End); got != "2024-03-16" {
		t.Errorf("End = %s", got)
	}
	if input.Granularity != ceTypes.GranularityMonthly || input.Filter == nil || col != "service" {
		t.Errorf("input = %+v, col = %q", input, col)
	}
}

func result(start string, groups ...ceTypes.Group) ceTypes.ResultByTime {
	return ceTypes.ResultByTime{
		TimePeriod: &ceTypes.DateInterval{Start: aws.String(start)},
		Groups:     groups,
	}
}

func group(key, amount string) ceTypes.Group {
	return ceTypes.Group{
		Keys:    []string{key},
		Metrics: map[string]ceTypes.MetricValue{costMetric: {Amount: aws.String(amount)}},
	}
}

type fakeCostExplorer struct {
	pages  []*costexplorer.GetCostAndUsageOutput
	tokens []string
}

func (f *fakeCostExplorer) GetCostAndUsage(_ context.Context, in *costexplorer.GetCostAndUsageInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	f.tokens = append(f.tokens, aws.ToString(in.NextPageToken))
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func TestFetchCostRows_Paginates(t *testing.T) {
	fake := &fakeCostExplorer{pages: []*costexplorer.GetCostAndUsageOutput{
		{
			ResultsByTime: []ceTypes.ResultByTime{result("2024-01-01", group("Amazon EC2", "10.5"), group("Amazon S3", "2"))},
			NextPageToken: aws.String("p2"),
		},
		{
			ResultsByTime: []ceTypes.ResultByTime{result("2024-02-01", group("Amazon EC2", "12"), ceTypes.Group{})},
		},
	}}

	rows, err := fetchCostRows(context.Background(), fake, &costexplorer.GetCostAndUsageInput{})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"2024-01", "Amazon EC2", "10.5"},
		{"2024-01", "Amazon S3", "2"},
		{"2024-02", "Amazon EC2", "12"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
	if !reflect.DeepEqual(fake.tokens, []string{"", "p2"}) {
		t.Errorf("tokens = %v", fake.tokens)
	}
}

func TestProfilesFromFiles(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "credentials")
	cfg := filepath.Join(dir, "config")
	_ = os.WriteFile(creds, []byte("[default]\nkey=1\n[prod]\n"), 0o600)
	_ = os.WriteFile(cfg, []byte("[profile dev]\nregion=us-east-1\n[profile prod]\n"), 0o600)

	if got, want := profilesFromFiles(creds, cfg), []string{"default", "dev", "prod"}; !reflect.DeepEqual(got, want) {
		t.Errorf("profiles = %v, want %v", got, want)
	}
	if got := profilesFromFiles(filepath.Join(dir, "x"), filepath.Join(dir, "y")); !reflect.DeepEqual(got, []string{"default"}) {
		t.Errorf("fallback = %v", got)
	}
}
