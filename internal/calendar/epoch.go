// Package calendar converts Gregorian dates into Chinese lunisolar calendar
// facts: lunar dates, sexagenary pillars, solar terms and almanac lookups.
//
// Everything in this package is a pure function of its input and of two
// read-only tables (lunar years and solar term boundaries) that are built
// once when an Engine is constructed.
package calendar

import (
	"fmt"
	"time"
)

// CivilDate is a date in the proleptic Gregorian calendar.
type CivilDate struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// JDN is a Julian Day Number: a continuous count of days, the engine's
// canonical time axis. JDN 2451545 is 2000-01-01.
type JDN int

// Era is the inclusive range of Gregorian years the engine answers for.
type Era struct {
	MinYear int `json:"min_year" yaml:"min_year"`
	MaxYear int `json:"max_year" yaml:"max_year"`
}

// Years covered by the shipped tables.
const (
	SupportedMinYear = 1901
	SupportedMaxYear = 2100
)

// DefaultEra is the widest era the shipped tables support.
var DefaultEra = Era{MinYear: SupportedMinYear, MaxYear: SupportedMaxYear}

// NewCivilDate builds a validated CivilDate.
func NewCivilDate(year, month, day int) (CivilDate, error) {
	d := CivilDate{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return CivilDate{}, err
	}
	return d, nil
}

// Validate checks month and day against the Gregorian calendar.
func (d CivilDate) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return invalidf("month %d not in 1-12", d.Month)
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return invalidf("day %d not valid for %04d-%02d", d.Day, d.Year, d.Month)
	}
	return nil
}

// String formats the date as YYYY-MM-DD.
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d is earlier than other.
func (d CivilDate) Before(other CivilDate) bool {
	return julianDayNumber(d) < julianDayNumber(other)
}

// AddDays returns the date n days after d (n may be negative).
func (d CivilDate) AddDays(n int) CivilDate {
	return civilFromJDN(julianDayNumber(d) + JDN(n))
}

// Time returns midnight of d in loc.
func (d CivilDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// ParseCivilDate parses a date string in YYYY-MM-DD format.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CivilDate{}, invalidf("date %q: use YYYY-MM-DD", s)
	}
	return CivilDateOf(t), nil
}

// CivilDateOf returns the calendar date of t in t's location.
func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: int(m), Day: d}
}

// IsLeapYear applies the Gregorian leap rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of a Gregorian month, or 0 for an invalid month.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

// Weekday returns the day of the week for j.
func (j JDN) Weekday() time.Weekday {
	return time.Weekday((int(j) + 1) % 7)
}

// =============================================================================
// Era-bounded conversion
// =============================================================================

// Validate checks that the era lies within the shipped tables.
func (e Era) Validate() error {
	if e.MinYear > e.MaxYear {
		return invalidf("era min year %d after max year %d", e.MinYear, e.MaxYear)
	}
	if e.MinYear < SupportedMinYear || e.MaxYear > SupportedMaxYear {
		return &RangeError{
			What:  "era",
			Value: fmt.Sprintf("%d-%d", e.MinYear, e.MaxYear),
			Min:   fmt.Sprint(SupportedMinYear),
			Max:   fmt.Sprint(SupportedMaxYear),
		}
	}
	return nil
}

// First returns January 1 of the era's first year.
func (e Era) First() CivilDate { return CivilDate{Year: e.MinYear, Month: 1, Day: 1} }

// Last returns December 31 of the era's last year.
func (e Era) Last() CivilDate { return CivilDate{Year: e.MaxYear, Month: 12, Day: 31} }

// Contains reports whether the year lies within the era.
func (e Era) Contains(year int) bool {
	return year >= e.MinYear && year <= e.MaxYear
}

// ToJDN converts a civil date to its Julian Day Number.
func (e Era) ToJDN(d CivilDate) (JDN, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	if !e.Contains(d.Year) {
		return 0, e.rangeError(d.String())
	}
	return julianDayNumber(d), nil
}

// FromJDN converts a Julian Day Number back to a civil date.
func (e Era) FromJDN(j JDN) (CivilDate, error) {
	d := civilFromJDN(j)
	if !e.Contains(d.Year) {
		return CivilDate{}, e.rangeError(fmt.Sprintf("JDN %d", j))
	}
	return d, nil
}

func (e Era) rangeError(value string) *RangeError {
	return &RangeError{
		What:  "civil date",
		Value: value,
		Min:   e.First().String(),
		Max:   e.Last().String(),
	}
}

// julianDayNumber is the proleptic Gregorian day count. Months are shifted
// so the year starts in March and the leap day falls at the end.
func julianDayNumber(d CivilDate) JDN {
	a := (14 - d.Month) / 12
	y := d.Year + 4800 - a
	m := d.Month + 12*a - 3
	return JDN(d.Day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045)
}

// civilFromJDN inverts julianDayNumber.
func civilFromJDN(j JDN) CivilDate {
	a := int(j) + 32044
	b := (4*a + 3) / 146097
	c := a - (146097*b)/4
	d := (4*c + 3) / 1461
	e := c - (1461*d)/4
	m := (5*e + 2) / 153

	return CivilDate{
		Year:  100*b + d - 4800 + m/10,
		Month: m + 3 - 12*(m/10),
		Day:   e - (153*m+2)/5 + 1,
	}
}
