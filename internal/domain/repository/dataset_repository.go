package repository

import (
	"context"

	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
)

// LoadOptions tunes how a dataset source is read.
type LoadOptions struct {
	Sheet   string // XLSX worksheet; first sheet when empty
	Profile string // AWS profile for s3:// sources
}

// DatasetRepository loads a tabular dataset from a local path or an s3:// URL.
type DatasetRepository interface {
	Load(ctx context.Context, source string, opts LoadOptions) (entity.Dataset, error)
}
