package concentration

import (
	"errors"
	"fmt"
)

var (
	ErrColumnNotFound        = errors.New("column not found in dataset")
	ErrNonNumericValue       = errors.New("value column contains a non-numeric value")
	ErrInvalidBucketFraction = errors.New("bucket fraction must be in (0, 1]")
	ErrNoBuckets             = errors.New("at least one bucket fraction is required")
	ErrLabelMismatch         = errors.New("number of bucket labels does not match number of buckets")
)

// ColumnError names the column a selection refers to but the dataset lacks.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %q", ErrColumnNotFound, e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrColumnNotFound }

// ValueError points at a cell of the value column that is not a number.
type ValueError struct {
	Column string
	Row    int // 1-based data row
	Value  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: column %q, row %d: %q", ErrNonNumericValue, e.Column, e.Row, e.Value)
}

func (e *ValueError) Unwrap() error { return ErrNonNumericValue }

// BucketError carries the rejected fraction.
type BucketError struct {
	Fraction float64
}

func (e *BucketError) Error() string {
	return fmt.Sprintf("%s: got %v", ErrInvalidBucketFraction, e.Fraction)
}

func (e *BucketError) Unwrap() error { return ErrInvalidBucketFraction }
