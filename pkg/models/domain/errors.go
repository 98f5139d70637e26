package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSnapshot is returned by the facade while no refresh has
// succeeded yet.
var ErrNoSnapshot = errors.New("no snapshot available")

// SchemaError reports required columns missing from a source. The
// load is aborted, no partial dataset is produced.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %q is missing required columns: %s",
		e.Source, strings.Join(e.Missing, ", "))
}

// ValidationError reports a single unusable row. The loader drops the
// row and keeps going; the error is only surfaced through the
// dataset's exclusion tallies and debug logs.
type ValidationError struct {
	Row    int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// EmptyDatasetError reports a load that produced no usable records,
// either because the source was empty or because the exclusion rate
// crossed the configured limit.
type EmptyDatasetError struct {
	Source   string
	Total    int
	Excluded int
}

func (e *EmptyDatasetError) Error() string {
	if e.Total == 0 {
		return fmt.Sprintf("source %q contains no data rows", e.Source)
	}
	return fmt.Sprintf("source %q yielded no usable dataset: %d of %d rows excluded",
		e.Source, e.Excluded, e.Total)
}

// AggregationError wraps failures from one or more aggregators. A
// refresh that hits one fails as a whole; no partial snapshot is
// published.
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed: %v", e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
