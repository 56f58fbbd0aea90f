package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure modes
var (
	ErrInvalidKey           = errors.New("invalid key")
	ErrUnknownStyle         = errors.New("unknown style")
	ErrUnknownProgression   = errors.New("unknown progression")
	ErrRangeViolation       = errors.New("value out of range")
	ErrUnsupportedIntensity = errors.New("unsupported drum intensity")
	ErrEmptyChordSequence   = errors.New("empty chord sequence")
)

// RequestError represents an invalid generation request. It wraps one of the
// sentinel errors above so callers can match with errors.Is.
type RequestError struct {
	Field string // "key", "bpm", "measures", "style", "progression"
	Value string
	Cause error
}

func (e *RequestError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// NewRequestError creates a RequestError
func NewRequestError(field, value string, cause error) *RequestError {
	return &RequestError{
		Field: field,
		Value: value,
		Cause: cause,
	}
}
