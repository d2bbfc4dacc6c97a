package jira

import (
	"errors"
	"fmt"
)

// Not-found conditions surfaced by the aggregation service. The remote API
// answers these queries with empty collections rather than errors; the
// service turns the empty cases into explicit failures instead of indexing
// into nothing.
var (
	ErrNoBoards       = errors.New("no boards found for project")
	ErrNoActiveSprint = errors.New("no active sprint found")
)

// ValidationError is locally-rejected input, detected before any remote
// call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AggregationError is the failure of a parallel fan-out: one of the
// branches failed, so the whole composed result is discarded. No partial
// results are returned.
type AggregationError struct {
	Op  string
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
