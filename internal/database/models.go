package database

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Observance is a recurring event on a lunar month and day.
type Observance struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	LunarMonth  int       `json:"lunar_month"`   // 1-12
	LunarDay    int       `json:"lunar_day"`     // 1-30
	IsLeapMonth bool      `json:"is_leap_month"` // falls back to the ordinary month in years without that leap month
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ErrInvalidObservance is returned when an observance fails validation.
var ErrInvalidObservance = errors.New("invalid observance")

// Validate checks the fields a caller supplies.
func (o *Observance) Validate() error {
	var errs []error

	if strings.TrimSpace(o.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if len(o.Name) > 200 {
		errs = append(errs, fmt.Errorf("name is %d bytes, limit 200", len(o.Name)))
	}
	if o.LunarMonth < 1 || o.LunarMonth > 12 {
		errs = append(errs, fmt.Errorf("lunar_month %d not in 1-12", o.LunarMonth))
	}
	if o.LunarDay < 1 || o.LunarDay > 30 {
		errs = append(errs, fmt.Errorf("lunar_day %d not in 1-30", o.LunarDay))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidObservance, errors.Join(errs...))
	}
	return nil
}

// ListOptions pages through a listing.
type ListOptions struct {
	Limit  int
	Offset int
}

// Normalize applies the default and maximum page size.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 50
	}
	if o.Limit > 500 {
		o.Limit = 500
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// nullString binds an optional text column.
func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// boolToInt stores a bool in an INTEGER column.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
