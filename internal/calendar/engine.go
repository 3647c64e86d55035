package calendar

import (
	"fmt"
	"time"
)

// DayRecord is everything the engine knows about one civil date.
type DayRecord struct {
	Date    CivilDate    `json:"date" yaml:"date"`
	JDN     JDN          `json:"jdn" yaml:"jdn"`
	Weekday time.Weekday `json:"weekday" yaml:"weekday"`
	Lunar   LunarDate    `json:"lunar" yaml:"lunar"`

	YearPillar  StemBranch  `json:"year_pillar" yaml:"year_pillar"`
	MonthPillar StemBranch  `json:"month_pillar" yaml:"month_pillar"`
	DayPillar   StemBranch  `json:"day_pillar" yaml:"day_pillar"`
	Hour        *int        `json:"hour,omitempty" yaml:"hour,omitempty"`
	HourPillar  *StemBranch `json:"hour_pillar,omitempty" yaml:"hour_pillar,omitempty"`

	SolarTerm       SolarTerm `json:"solar_term" yaml:"solar_term"`
	TermStart       CivilDate `json:"term_start" yaml:"term_start"`
	TermStartsToday bool      `json:"term_starts_today" yaml:"term_starts_today"`

	Zodiac  Zodiac       `json:"zodiac" yaml:"zodiac"`
	Almanac AlmanacEntry `json:"almanac" yaml:"almanac"`
}

// Engine composes the calendar tables. It is immutable after NewEngine and
// safe for concurrent use.
type Engine struct {
	era   Era
	lunar *LunisolarTable
	terms *SolarTermTable
}

// NewEngine builds the tables for era. Solar terms are computed from the
// year before the era so that early January can wrap to Winter Solstice.
func NewEngine(era Era) (*Engine, error) {
	if err := era.Validate(); err != nil {
		return nil, fmt.Errorf("validate era: %w", err)
	}

	terms, err := NewSolarTermTable(era.MinYear-1, era.MaxYear)
	if err != nil {
		return nil, fmt.Errorf("build solar terms: %w", err)
	}

	return &Engine{
		era:   era,
		lunar: NewLunisolarTable(),
		terms: terms,
	}, nil
}

// Era returns the supported range of Gregorian years.
func (e *Engine) Era() Era { return e.era }

// Compute builds the DayRecord for d. hour is optional; when present (0-23)
// the hour pillar is filled in.
//
// Errors are those of the first failing step: ErrInvalidInput for a bad date
// or hour, ErrOutOfRange outside the era.
func (e *Engine) Compute(d CivilDate, hour *int) (DayRecord, error) {
	j, err := e.era.ToJDN(d)
	if err != nil {
		return DayRecord{}, err
	}

	lunar, err := e.lunar.Locate(j)
	if err != nil {
		return DayRecord{}, err
	}

	yearPillar := YearPillar(lunar.Year)
	monthPillar, err := MonthPillar(yearPillar.Stem(), lunar.Month, lunar.IsLeapMonth)
	if err != nil {
		return DayRecord{}, err
	}
	dayPillar := DayPillar(j)

	rec := DayRecord{
		Date:        d,
		JDN:         j,
		Weekday:     j.Weekday(),
		Lunar:       lunar,
		YearPillar:  yearPillar,
		MonthPillar: monthPillar,
		DayPillar:   dayPillar,
		Zodiac:      yearPillar.Branch().Zodiac(),
	}

	if hour != nil {
		hp, err := hourPillarOn(j, *hour)
		if err != nil {
			return DayRecord{}, err
		}
		h := *hour
		rec.Hour = &h
		rec.HourPillar = &hp
	}

	term, err := e.terms.ActiveTerm(j)
	if err != nil {
		return DayRecord{}, err
	}
	rec.SolarTerm = term.Term
	rec.TermStart = civilFromJDN(term.Start)
	rec.TermStartsToday = term.Start == j

	rec.Almanac = Lookup(dayPillar, term.Term)

	return rec, nil
}

// TermDate is a solar term boundary expressed as a civil date.
type TermDate struct {
	Term SolarTerm `json:"term" yaml:"term"`
	Date CivilDate `json:"date" yaml:"date"`
}

// Terms returns the 24 solar term start dates of a Gregorian year in the era.
func (e *Engine) Terms(year int) ([]TermDate, error) {
	if !e.era.Contains(year) {
		return nil, &RangeError{
			What:  "solar term year",
			Value: fmt.Sprint(year),
			Min:   fmt.Sprint(e.era.MinYear),
			Max:   fmt.Sprint(e.era.MaxYear),
		}
	}

	b, err := e.terms.Boundaries(year)
	if err != nil {
		return nil, err
	}

	out := make([]TermDate, 0, TermsPerYear)
	for i, j := range b {
		out = append(out, TermDate{Term: SolarTerm(i), Date: civilFromJDN(j)})
	}
	return out, nil
}

// LunarYear returns the month layout of a lunar year.
func (e *Engine) LunarYear(year int) (LunarYear, error) {
	return e.lunar.Year(year)
}

// LunarToCivil converts a lunar date to the civil date it falls on.
func (e *Engine) LunarToCivil(d LunarDate) (CivilDate, error) {
	j, err := e.lunar.ToJDN(d)
	if err != nil {
		return CivilDate{}, err
	}
	return e.era.FromJDN(j)
}
