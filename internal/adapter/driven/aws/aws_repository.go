package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
	"github.com/diillson/investment-analyzer-go/internal/domain/repository"
)

const (
	costMetric   = "UnblendedCost"
	monthColumn  = "month"
	costColumn   = "cost"
	defaultGroup = "SERVICE"
)

// costUsageAPI é o subconjunto do cliente Cost Explorer usado aqui.
type costUsageAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// AWSRepositoryImpl implementa o CostRepository com cache de clientes.
type AWSRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
	now         func() time.Time
}

// NewAWSRepository cria uma nova implementação do CostRepository.
func NewAWSRepository() repository.CostRepository {
	return &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
		now:         time.Now,
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, service string) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s-%s", profile, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	// Cost Explorer e STS respondem globalmente a partir de us-east-1.
	regionalCfg := cfg.Copy()
	regionalCfg.Region = "us-east-1"

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "costexplorer":
		client = costexplorer.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

// GetAWSProfiles lista os perfis encontrados em ~/.aws/credentials e ~/.aws/config.
func (r *AWSRepositoryImpl) GetAWSProfiles() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return []string{"default"}
	}
	return profilesFromFiles(
		filepath.Join(homeDir, ".aws", "credentials"),
		filepath.Join(homeDir, ".aws", "config"),
	)
}

var profileRegex = regexp.MustCompile(`\[([^]]+)\]`)

func profilesFromFiles(credentialsPath, configPath string) []string {
	profiles := make(map[string]bool)

	parseFile := func(path string, isConfig bool) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		for _, match := range profileRegex.FindAllStringSubmatch(string(content), -1) {
			profileName := match[1]
			if isConfig {
				profileName = strings.TrimPrefix(profileName, "profile ")
			}
			profiles[profileName] = true
		}
	}

	parseFile(credentialsPath, false)
	parseFile(configPath, true)

	if len(profiles) == 0 {
		profiles["default"] = true
	}

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	client, err := r.getServiceClient(ctx, profile, "sts")
	if err != nil {
		return "", err
	}
	stsClient := client.(*sts.Client)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %s: %w", profile, err)
	}
	return aws.ToString(result.Account), nil
}

// GetCostDataset busca o custo mensal agrupado por uma dimensão do Cost Explorer
// e o devolve como um Dataset month × grupo × custo.
func (r *AWSRepositoryImpl) GetCostDataset(ctx context.Context, query repository.CostQuery) (entity.Dataset, error) {
	client, err := r.getServiceClient(ctx, query.Profile, "costexplorer")
	if err != nil {
		return entity.Dataset{}, err
	}

	input, groupColumn, err := costInput(query, r.now().UTC())
	if err != nil {
		return entity.Dataset{}, err
	}

	rows, err := fetchCostRows(ctx, client.(*costexplorer.Client), input)
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("error getting cost data for profile %s: %w", query.Profile, err)
	}

	name := "aws-costs"
	if accountID, err := r.GetAccountID(ctx, query.Profile); err == nil && accountID != "" {
		name = fmt.Sprintf("aws-costs-%s", accountID)
	}
	return entity.NewDataset(name, []string{monthColumn, groupColumn, costColumn}, rows), nil
}

// costInput monta a requisição mensal cobrindo os últimos query.Months meses,
// incluindo o mês corrente.
func costInput(query repository.CostQuery, today time.Time) (*costexplorer.GetCostAndUsageInput, string, error) {
	months := query.Months
	if months <= 0 {
		months = 6
	}

	filter, err := parseTagFilter(query.Tags)
	if err != nil {
		return nil, "", err
	}

	group, groupColumn := groupDefinition(query.GroupBy)

	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	end := today.AddDate(0, 0, 1)

	return &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy:     []ceTypes.GroupDefinition{group},
		Filter:      filter,
	}, groupColumn, nil
}

// groupDefinition aceita uma dimensão (SERVICE, REGION, ...) ou TAG:<chave>.
func groupDefinition(groupBy string) (ceTypes.GroupDefinition, string) {
	groupBy = strings.TrimSpace(groupBy)
	if groupBy == "" {
		groupBy = defaultGroup
	}

	if key, ok := strings.CutPrefix(groupBy, "TAG:"); ok {
		return ceTypes.GroupDefinition{
			Type: ceTypes.GroupDefinitionTypeTag,
			Key:  aws.String(key),
		}, strings.ToLower(key)
	}

	groupBy = strings.ToUpper(groupBy)
	return ceTypes.GroupDefinition{
		Type: ceTypes.GroupDefinitionTypeDimension,
		Key:  aws.String(groupBy),
	}, strings.ToLower(groupBy)
}

func fetchCostRows(ctx context.Context, client costUsageAPI, input *costexplorer.GetCostAndUsageInput) ([][]string, error) {
	var rows [][]string
	for {
		out, err := client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, err
		}
		rows = append(rows, costRows(out.ResultsByTime)...)

		if out.NextPageToken == nil || *out.NextPageToken == "" {
			return rows, nil
		}
		next := *input
		next.NextPageToken = out.NextPageToken
		input = &next
	}
}

// costRows converte cada grupo de cada mês em uma linha "2006-01", chave, custo.
func costRows(results []ceTypes.ResultByTime) [][]string {
	var rows [][]string
	for _, period := range results {
		if period.TimePeriod == nil || period.TimePeriod.Start == nil {
			continue
		}
		month := *period.TimePeriod.Start
		if t, err := time.Parse("2006-01-02", month); err == nil {
			month = t.Format("2006-01")
		}

		for _, group := range period.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics[costMetric]
			if !ok || metric.Amount == nil {
				continue
			}
			rows = append(rows, []string{month, strings.Join(group.Keys, "/"), *metric.Amount})
		}
	}
	return rows
}

func parseTagFilter(tags []string) (*ceTypes.Expression, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	var expressions []ceTypes.Expression
	for _, t := range tags {
		parts := strings.SplitN(t, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid tag format: %s", t)
		}
		expressions = append(expressions, ceTypes.Expression{
			Tags: &ceTypes.TagValues{
				Key:    aws.String(parts[0]),
				Values: []string{parts[1]},
			},
		})
	}

	if len(expressions) == 1 {
		return &expressions[0], nil
	}

	return &ceTypes.Expression{And: expressions}, nil
}
