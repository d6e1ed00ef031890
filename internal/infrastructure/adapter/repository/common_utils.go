package repository

import (
	"context"
	"errors"
	"strings"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
)

// ErrorClassifier maps driver errors onto store error kinds
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the store error kind of err, or "" for nil
func (c *ErrorClassifier) Classify(err error) errs.StoreErrorKind {
	switch {
	case err == nil:
		return ""
	case c.IsTimeoutError(err):
		return errs.StoreKindTimeout
	case c.IsConnectionError(err):
		return errs.StoreKindConnection
	default:
		return errs.StoreKindQuery
	}
}

// Wrap converts a driver error into a StoreError for operation
func (c *ErrorClassifier) Wrap(operation string, err error) error {
	return errs.NewStoreError(operation, c.Classify(err), err)
}

// IsTimeoutError checks if the read ran out of time or was cancelled
func (c *ErrorClassifier) IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "canceling statement due to statement timeout")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection") ||
		strings.Contains(msg, "dial") ||
		strings.Contains(msg, "network") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "server closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "database is closed")
}
