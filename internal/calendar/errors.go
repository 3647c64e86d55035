package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrInvalidInput is returned for malformed input: impossible dates,
	// months outside 1-12, hours outside 0-23.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfRange is returned when a date falls outside the supported era
	// or outside one of the tables. Values are never clamped or extrapolated.
	ErrOutOfRange = errors.New("out of range")
)

// RangeError describes a value that fell outside a supported range.
// It matches ErrOutOfRange with errors.Is.
type RangeError struct {
	What  string // "civil date", "lunar table", "solar terms", ...
	Value string
	Min   string
	Max   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s out of range: supported %s to %s", e.What, e.Value, e.Min, e.Max)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// invalidf wraps ErrInvalidInput with a formatted message.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsInvalidInput checks if an error is an invalid input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsOutOfRange checks if an error is an out of range error.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// AsRangeError extracts the RangeError from an error chain, if present.
func AsRangeError(err error) (*RangeError, bool) {
	var re *RangeError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
