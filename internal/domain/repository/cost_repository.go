package repository

import (
	"context"

	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
)

// CostQuery selects the AWS spend turned into a concentration dataset.
type CostQuery struct {
	Profile string
	Months  int
	GroupBy string // Cost Explorer dimension: SERVICE, LINKED_ACCOUNT, REGION, ...
	Tags    []string
}

// CostRepository defines the interface for AWS Cost Explorer interactions.
type CostRepository interface {
	GetAWSProfiles() []string
	GetAccountID(ctx context.Context, profile string) (string, error)

	// GetCostDataset returns one row per (month, group key) with the unblended cost.
	GetCostDataset(ctx context.Context, query CostQuery) (entity.Dataset, error)
}
