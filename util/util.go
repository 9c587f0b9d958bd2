// Package util provides small generic helpers shared across fluent-lm packages.
package util

import (
	"fmt"

	"github.com/google/uuid"
)

// Coalesce returns the first non-zero value, or the zero value if all are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// NewRunID returns a unique identifier for one pipeline execution.
func NewRunID() string {
	return uuid.NewString()
}

// Stringify renders any context value as a string. Strings pass through
// unchanged; everything else goes through fmt.
func Stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
