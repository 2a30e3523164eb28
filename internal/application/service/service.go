// Package service holds the application services: use-case orchestration
// between the HTTP layer and the repositories. Validation happens here,
// before anything touches the store.
package service

import "errors"

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ErrValidation marks malformed input rejected before any persistence was
// attempted. Wrap it with the specific reason.
var ErrValidation = errors.New("validation failed")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// clampPage normalizes limit/offset the same way for every list endpoint
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
