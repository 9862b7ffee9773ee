package frostr

import (
	"fmt"
)

// ErrorCategory classifies key-material errors for audit reporting.
type ErrorCategory string

const (
	ErrorCategoryThreshold ErrorCategory = "threshold"
	ErrorCategoryShares    ErrorCategory = "shares"
	ErrorCategoryDealer    ErrorCategory = "dealer"
	ErrorCategoryLifecycle ErrorCategory = "lifecycle"
)

// InvalidThresholdError reports threshold parameters that violate
// 1 <= threshold <= total.
type InvalidThresholdError struct {
	Threshold uint16
	Total     uint16
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid threshold: %d-of-%d", e.Threshold, e.Total)
}

// Category returns the audit category for this error.
func (e *InvalidThresholdError) Category() ErrorCategory { return ErrorCategoryThreshold }

// InvalidShareCountError reports a reconstruct-based operation invoked with
// fewer shares than it needs.
type InvalidShareCountError struct {
	Need int
	Got  int
}

func (e *InvalidShareCountError) Error() string {
	return fmt.Sprintf("invalid share count: need %d, got %d", e.Need, e.Got)
}

// Category returns the audit category for this error.
func (e *InvalidShareCountError) Category() ErrorCategory { return ErrorCategoryShares }

// FrostError wraps a duplicate-share condition or a failure surfaced from the
// external FROST primitives (dealer generation, group-secret recovery, or
// key-package validation).
type FrostError struct {
	Op      string // operation that failed: "split", "reconstruct", "keygen", "reshare", "rotation"
	Message string
	Cause   error
}

func (e *FrostError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("frost %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("frost %s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *FrostError) Unwrap() error { return e.Cause }

// Category returns the audit category for this error.
func (e *FrostError) Category() ErrorCategory { return ErrorCategoryDealer }

// newDuplicateShareError is returned when a share set contains two entries
// with the same index. Lagrange interpolation over such a set divides by
// zero, so the condition is rejected before any arithmetic runs.
func newDuplicateShareError(op string, index uint16) *FrostError {
	return &FrostError{Op: op, Message: fmt.Sprintf("Duplicate share index %d", index)}
}

// errorCategory extracts the audit category from any of this package's error
// types, defaulting to the dealer category for wrapped external failures.
func errorCategory(err error) ErrorCategory {
	if c, ok := err.(interface{ Category() ErrorCategory }); ok {
		return c.Category()
	}
	return ErrorCategoryDealer
}
