package types

import "errors"

var (
	ErrNoInput            = errors.New("no dataset given. Use --input <file|s3://bucket/key> or --aws-costs")
	ErrUnsupportedFormat  = errors.New("unsupported file format (expected .csv or .xlsx)")
	ErrEmptyInput         = errors.New("dataset has no header row")
	ErrNoColumnCandidates = errors.New("could not suggest a column; pass --time-column, --category-column and --value-column")
	ErrUnknownProfile     = errors.New("AWS profile not found in ~/.aws/config or ~/.aws/credentials")
)
