// Package common provides shared utilities and types used across the engine.
package common

import (
	"errors"
	"fmt"
)

// Common engine errors.
var (
	// ErrUnsupportedStandard indicates the caller requested an unknown
	// accounting standard. Fatal for the run, never retried.
	ErrUnsupportedStandard = errors.New("unsupported accounting standard")

	// ErrAggregationIncomplete indicates the run was cancelled before every
	// validator finished; no partial score is surfaced.
	ErrAggregationIncomplete = errors.New("aggregation incomplete")

	// ErrNoDocuments indicates a validation run was requested without input.
	ErrNoDocuments = errors.New("no documents to validate")

	// Storage errors.
	ErrNotFound = errors.New("not found")
)

// NormalizationError describes a single input row that could not be converted
// into a canonical entry. The row is excluded and the batch continues.
type NormalizationError struct {
	Field  string
	Reason string
	Row    int
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("row %d: field %q: %s", e.Row, e.Field, e.Reason)
}

// ValidatorError wraps an unexpected failure inside one validator so it can be
// isolated from its siblings and surfaced as report metadata.
type ValidatorError struct {
	Err       error
	Validator string
}

func (e *ValidatorError) Error() string {
	return fmt.Sprintf("validator %s failed: %v", e.Validator, e.Err)
}

func (e *ValidatorError) Unwrap() error {
	return e.Err
}

// IsRetryable determines if an error may be retried by the caller.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrAggregationIncomplete)
}
