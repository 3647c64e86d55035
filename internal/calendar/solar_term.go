package calendar

import (
	"fmt"
	"math"
	"sort"
)

// SolarTerm is one of the 24 solar terms, numbered from Minor Cold so that a
// Gregorian year's terms run 0 through 23 in order.
type SolarTerm int

// The 24 solar terms.
const (
	MinorCold SolarTerm = iota
	MajorCold
	StartOfSpring
	RainWater
	AwakeningOfInsects
	SpringEquinox
	PureBrightness
	GrainRain
	StartOfSummer
	GrainBuds
	GrainInEar
	SummerSolstice
	MinorHeat
	MajorHeat
	StartOfAutumn
	EndOfHeat
	WhiteDew
	AutumnEquinox
	ColdDew
	FrostDescent
	StartOfWinter
	MinorSnow
	MajorSnow
	WinterSolstice
)

// TermsPerYear is the number of solar terms in a year.
const TermsPerYear = 24

var solarTermNames = [TermsPerYear]string{
	"minor_cold", "major_cold", "start_of_spring", "rain_water",
	"awakening_of_insects", "spring_equinox", "pure_brightness", "grain_rain",
	"start_of_summer", "grain_buds", "grain_in_ear", "summer_solstice",
	"minor_heat", "major_heat", "start_of_autumn", "end_of_heat",
	"white_dew", "autumn_equinox", "cold_dew", "frost_descent",
	"start_of_winter", "minor_snow", "major_snow", "winter_solstice",
}

func (t SolarTerm) String() string {
	if t < 0 || t >= TermsPerYear {
		return fmt.Sprintf("SolarTerm(%d)", int(t))
	}
	return solarTermNames[t]
}

// MarshalText encodes the term by name.
func (t SolarTerm) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Longitude is the sun's apparent ecliptic longitude, in degrees, at which
// the term begins. Minor Cold starts at 285.
func (t SolarTerm) Longitude() float64 {
	return math.Mod(285+15*float64(t), 360)
}

// IsSectional reports whether the term opens a solar month (jie) rather
// than falling mid-month (qi).
func (t SolarTerm) IsSectional() bool { return t%2 == 0 }

// MonthBranch returns the branch of the solar month the term belongs to.
// Start of Spring and Rain Water fall in the yin month; Minor Cold and
// Major Cold in the chou month.
func (t SolarTerm) MonthBranch() Branch {
	return Branch(mod(int(t)/2+1, 12))
}

// TermBoundary is the first day of a solar term.
type TermBoundary struct {
	Term  SolarTerm `json:"term" yaml:"term"`
	Year  int       `json:"year" yaml:"year"` // Gregorian year the boundary falls in
	Start JDN       `json:"start_jdn" yaml:"start_jdn"`
}

// SolarTermTable holds the term boundaries of a run of Gregorian years,
// computed once at construction.
type SolarTermTable struct {
	firstYear int
	lastYear  int
	days      [][TermsPerYear]JDN
}

// NewSolarTermTable computes boundaries for firstYear through lastYear.
func NewSolarTermTable(firstYear, lastYear int) (*SolarTermTable, error) {
	if firstYear > lastYear {
		return nil, invalidf("solar term years %d-%d are reversed", firstYear, lastYear)
	}

	t := &SolarTermTable{
		firstYear: firstYear,
		lastYear:  lastYear,
		days:      make([][TermsPerYear]JDN, 0, lastYear-firstYear+1),
	}

	var prev JDN
	for y := firstYear; y <= lastYear; y++ {
		var b [TermsPerYear]JDN
		for term := MinorCold; term <= WinterSolstice; term++ {
			b[term] = termDay(y, term)
			if len(t.days) > 0 || term > MinorCold {
				if b[term] <= prev {
					return nil, fmt.Errorf("solar term %s of %d does not follow the previous boundary", term, y)
				}
			}
			prev = b[term]
		}
		t.days = append(t.days, b)
	}

	return t, nil
}

// Years returns the first and last Gregorian year in the table.
func (t *SolarTermTable) Years() (first, last int) {
	return t.firstYear, t.lastYear
}

// Boundaries returns the 24 term start days of a Gregorian year, in order.
func (t *SolarTermTable) Boundaries(year int) ([TermsPerYear]JDN, error) {
	if year < t.firstYear || year > t.lastYear {
		return [TermsPerYear]JDN{}, &RangeError{
			What:  "solar term year",
			Value: fmt.Sprint(year),
			Min:   fmt.Sprint(t.firstYear),
			Max:   fmt.Sprint(t.lastYear),
		}
	}
	return t.days[year-t.firstYear], nil
}

// ActiveTerm returns the term in effect on day j: the one with the greatest
// boundary not after j. Days before a year's Minor Cold belong to the
// previous year's Winter Solstice.
func (t *SolarTermTable) ActiveTerm(j JDN) (TermBoundary, error) {
	year := civilFromJDN(j).Year
	if year < t.firstYear || year > t.lastYear {
		return TermBoundary{}, t.rangeError(j)
	}

	b := t.days[year-t.firstYear]
	if j < b[MinorCold] {
		if year == t.firstYear {
			return TermBoundary{}, t.rangeError(j)
		}
		prev := t.days[year-1-t.firstYear]
		return TermBoundary{Term: WinterSolstice, Year: year - 1, Start: prev[WinterSolstice]}, nil
	}

	i := sort.Search(TermsPerYear, func(i int) bool { return b[i] > j }) - 1
	return TermBoundary{Term: SolarTerm(i), Year: year, Start: b[i]}, nil
}

func (t *SolarTermTable) rangeError(j JDN) *RangeError {
	return &RangeError{
		What:  "solar terms",
		Value: civilFromJDN(j).String(),
		Min:   civilFromJDN(t.days[0][MinorCold]).String(),
		Max:   CivilDate{Year: t.lastYear, Month: 12, Day: 31}.String(),
	}
}
