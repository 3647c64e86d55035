package calendar

import (
	"fmt"
	"math"
	"testing"
)

func TestSolarTermTable_Boundaries2024(t *testing.T) {
	table, err := NewSolarTermTable(2023, 2025)
	if err != nil {
		t.Fatalf("NewSolarTermTable failed: %v", err)
	}

	want := [TermsPerYear]CivilDate{
		{2024, 1, 6}, {2024, 1, 20}, {2024, 2, 4}, {2024, 2, 19},
		{2024, 3, 5}, {2024, 3, 20}, {2024, 4, 4}, {2024, 4, 19},
		{2024, 5, 5}, {2024, 5, 20}, {2024, 6, 5}, {2024, 6, 21},
		{2024, 7, 6}, {2024, 7, 22}, {2024, 8, 7}, {2024, 8, 22},
		{2024, 9, 7}, {2024, 9, 22}, {2024, 10, 8}, {2024, 10, 23},
		{2024, 11, 7}, {2024, 11, 22}, {2024, 12, 6}, {2024, 12, 21},
	}

	got, err := table.Boundaries(2024)
	if err != nil {
		t.Fatalf("Boundaries(2024) failed: %v", err)
	}
	for term, j := range got {
		if d := civilFromJDN(j); d != want[term] {
			t.Errorf("%s starts %s, want %s", SolarTerm(term), d, want[term])
		}
	}
}

func TestSolarTermTable_Boundaries(t *testing.T) {
	table, err := NewSolarTermTable(2023, 2025)
	if err != nil {
		t.Fatalf("NewSolarTermTable failed: %v", err)
	}

	tests := []struct {
		year int
		term SolarTerm
		want CivilDate
	}{
		{2023, MinorCold, CivilDate{2023, 1, 5}},
		{2023, MajorCold, CivilDate{2023, 1, 20}},
		{2023, StartOfSpring, CivilDate{2023, 2, 4}},
		{2023, WinterSolstice, CivilDate{2023, 12, 22}},
		{2025, MinorCold, CivilDate{2025, 1, 5}},
		{2025, MajorCold, CivilDate{2025, 1, 20}},
		{2025, StartOfSpring, CivilDate{2025, 2, 3}},
		{2025, WinterSolstice, CivilDate{2025, 12, 21}},
	}

	for _, tt := range tests {
		b, err := table.Boundaries(tt.year)
		if err != nil {
			t.Fatalf("Boundaries(%d) failed: %v", tt.year, err)
		}
		if got := civilFromJDN(b[tt.term]); got != tt.want {
			t.Errorf("%d %s = %s, want %s", tt.year, tt.term, got, tt.want)
		}
	}

	if _, err := table.Boundaries(2026); !IsOutOfRange(err) {
		t.Errorf("Boundaries(2026) error = %v, want ErrOutOfRange", err)
	}
}

func TestSolarTermTable_FullSpan(t *testing.T) {
	table, err := NewSolarTermTable(SupportedMinYear-1, SupportedMaxYear)
	if err != nil {
		t.Fatalf("NewSolarTermTable failed: %v", err)
	}

	first, last := table.Years()
	for y := first; y <= last; y++ {
		b, _ := table.Boundaries(y)
		for term, j := range b {
			d := civilFromJDN(j)
			if d.Year != y {
				t.Errorf("%d %s falls in %d", y, SolarTerm(term), d.Year)
			}
			if term == 0 {
				continue
			}
			if gap := j - b[term-1]; gap < 14 || gap > 16 {
				t.Errorf("%d %s is %d days after the previous term", y, SolarTerm(term), gap)
			}
		}
	}
}

func TestSolarTermTable_ActiveTerm(t *testing.T) {
	table, err := NewSolarTermTable(2023, 2024)
	if err != nil {
		t.Fatalf("NewSolarTermTable failed: %v", err)
	}

	tests := []struct {
		date      CivilDate
		term      SolarTerm
		termStart CivilDate
	}{
		{CivilDate{2024, 1, 3}, WinterSolstice, CivilDate{2023, 12, 22}},
		{CivilDate{2024, 1, 5}, WinterSolstice, CivilDate{2023, 12, 22}},
		{CivilDate{2024, 1, 6}, MinorCold, CivilDate{2024, 1, 6}},
		{CivilDate{2024, 2, 3}, MajorCold, CivilDate{2024, 1, 20}},
		{CivilDate{2024, 2, 4}, StartOfSpring, CivilDate{2024, 2, 4}},
		{CivilDate{2024, 2, 10}, StartOfSpring, CivilDate{2024, 2, 4}},
		{CivilDate{2024, 12, 31}, WinterSolstice, CivilDate{2024, 12, 21}},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			got, err := table.ActiveTerm(julianDayNumber(tt.date))
			if err != nil {
				t.Fatalf("ActiveTerm failed: %v", err)
			}
			if got.Term != tt.term {
				t.Errorf("term = %s, want %s", got.Term, tt.term)
			}
			if d := civilFromJDN(got.Start); d != tt.termStart {
				t.Errorf("term start = %s, want %s", d, tt.termStart)
			}
		})
	}

	// Before the first year's Minor Cold nothing is known.
	for _, d := range []CivilDate{{2023, 1, 1}, {2025, 1, 10}} {
		if _, err := table.ActiveTerm(julianDayNumber(d)); !IsOutOfRange(err) {
			t.Errorf("ActiveTerm(%s) error = %v, want ErrOutOfRange", d, err)
		}
	}
}

func TestNewSolarTermTable_Reversed(t *testing.T) {
	if _, err := NewSolarTermTable(2025, 2024); !IsInvalidInput(err) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestSolarTerm_Properties(t *testing.T) {
	tests := []struct {
		term      SolarTerm
		longitude float64
		branch    Branch
		sectional bool
		name      string
	}{
		{MinorCold, 285, 1, true, "minor_cold"},
		{MajorCold, 300, 1, false, "major_cold"},
		{StartOfSpring, 315, 2, true, "start_of_spring"},
		{SpringEquinox, 0, 3, false, "spring_equinox"},
		{SummerSolstice, 90, 6, false, "summer_solstice"},
		{MajorSnow, 255, 0, true, "major_snow"},
		{WinterSolstice, 270, 0, false, "winter_solstice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.term.Longitude(); got != tt.longitude {
				t.Errorf("Longitude() = %v, want %v", got, tt.longitude)
			}
			if got := tt.term.MonthBranch(); got != tt.branch {
				t.Errorf("MonthBranch() = %s, want %s", got, tt.branch)
			}
			if got := tt.term.IsSectional(); got != tt.sectional {
				t.Errorf("IsSectional() = %v, want %v", got, tt.sectional)
			}
			if got := tt.term.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestApparentSolarLongitude(t *testing.T) {
	// 1992-10-13 0h TD, the worked example of Meeus ch. 25.
	if got := apparentSolarLongitude(2448908.5); math.Abs(got-199.90606) > 0.0001 {
		t.Errorf("longitude = %.5f, want 199.90606", got)
	}

	// March equinox 2024 was 2024-03-20 03:06:24 UT.
	jde := float64(julianDayNumber(CivilDate{2024, 3, 20})) - 0.5 + (3+6.4/60)/24 + deltaT(2024.2)/86400
	lon := apparentSolarLongitude(jde)
	if lon > 180 {
		lon -= 360
	}
	if math.Abs(lon) > 0.001 {
		t.Errorf("longitude at the 2024 March equinox = %v, want about 0", lon)
	}
}

func TestTermInstant_PublishedTimes(t *testing.T) {
	tests := []struct {
		year   int
		term   SolarTerm
		date   CivilDate
		minute float64 // UT minutes past midnight
	}{
		{2024, SpringEquinox, CivilDate{2024, 3, 20}, 3*60 + 6.4},
		{2024, SummerSolstice, CivilDate{2024, 6, 20}, 20*60 + 50.9},
		{2024, AutumnEquinox, CivilDate{2024, 9, 22}, 12*60 + 43.6},
		{2024, WinterSolstice, CivilDate{2024, 12, 21}, 9*60 + 20.4},
		{2020, SpringEquinox, CivilDate{2020, 3, 20}, 3*60 + 49.65},
		{2020, WinterSolstice, CivilDate{2020, 12, 21}, 10*60 + 2.3},
		{2015, WinterSolstice, CivilDate{2015, 12, 22}, 4*60 + 47.96},
		{2010, WinterSolstice, CivilDate{2010, 12, 21}, 23*60 + 38.5},
		{2000, WinterSolstice, CivilDate{2000, 12, 21}, 13*60 + 37.5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d %s", tt.year, tt.term), func(t *testing.T) {
			want := float64(julianDayNumber(tt.date)) - 0.5 + tt.minute/1440
			got := termInstant(tt.year, tt.term)
			if diff := math.Abs(got-want) * 1440; diff > 1 {
				t.Errorf("instant off by %.2f minutes", diff)
			}
		})
	}
}

func TestTermDay_NearMidnight(t *testing.T) {
	// Each of these begins within a few minutes after midnight in China.
	tests := []struct {
		term SolarTerm
		want CivilDate
	}{
		{AwakeningOfInsects, CivilDate{2014, 3, 6}},
		{MinorSnow, CivilDate{2011, 11, 23}},
		{GrainBuds, CivilDate{2008, 5, 21}},
		{MinorHeat, CivilDate{2016, 7, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got := civilFromJDN(termDay(tt.want.Year, tt.term))
			if got != tt.want {
				t.Errorf("%s %d = %s, want %s", tt.term, tt.want.Year, got, tt.want)
			}
		})
	}
}

func TestTermDay_Decades(t *testing.T) {
	tests := []struct {
		term SolarTerm
		want CivilDate
	}{
		{StartOfSpring, CivilDate{1901, 2, 4}},
		{SpringEquinox, CivilDate{1901, 3, 21}},
		{StartOfSpring, CivilDate{1911, 2, 5}},
		{SummerSolstice, CivilDate{1911, 6, 22}},
		{StartOfSpring, CivilDate{1921, 2, 4}},
		{SpringEquinox, CivilDate{1921, 3, 21}},
		{StartOfSpring, CivilDate{1931, 2, 5}},
		{SummerSolstice, CivilDate{1931, 6, 22}},
		{StartOfSpring, CivilDate{1941, 2, 4}},
		{SpringEquinox, CivilDate{1941, 3, 21}},
		{SummerSolstice, CivilDate{1951, 6, 22}},
		{AutumnEquinox, CivilDate{1951, 9, 24}},
		{StartOfSpring, CivilDate{1961, 2, 4}},
		{AutumnEquinox, CivilDate{1961, 9, 23}},
		{SpringEquinox, CivilDate{1971, 3, 21}},
		{SummerSolstice, CivilDate{1971, 6, 22}},
		{StartOfSpring, CivilDate{1981, 2, 4}},
		{SummerSolstice, CivilDate{1981, 6, 21}},
		{SpringEquinox, CivilDate{1991, 3, 21}},
		{SummerSolstice, CivilDate{1991, 6, 22}},
		{SpringEquinox, CivilDate{2001, 3, 20}},
		{SummerSolstice, CivilDate{2001, 6, 21}},
		{StartOfSpring, CivilDate{2011, 2, 4}},
		{SummerSolstice, CivilDate{2011, 6, 22}},
		{StartOfSpring, CivilDate{2021, 2, 3}},
		{SpringEquinox, CivilDate{2021, 3, 20}},
		{StartOfSpring, CivilDate{2031, 2, 4}},
		{SpringEquinox, CivilDate{2031, 3, 21}},
		{StartOfSpring, CivilDate{2041, 2, 3}},
		{SummerSolstice, CivilDate{2041, 6, 21}},
		{StartOfSpring, CivilDate{2051, 2, 4}},
		{AutumnEquinox, CivilDate{2051, 9, 23}},
		{SpringEquinox, CivilDate{2061, 3, 20}},
		{SummerSolstice, CivilDate{2061, 6, 21}},
		{StartOfSpring, CivilDate{2071, 2, 4}},
		{SpringEquinox, CivilDate{2071, 3, 20}},
		{StartOfSpring, CivilDate{2081, 2, 3}},
		{AutumnEquinox, CivilDate{2081, 9, 22}},
		{StartOfSpring, CivilDate{2091, 2, 3}},
		{SummerSolstice, CivilDate{2091, 6, 21}},
		{StartOfSpring, CivilDate{2100, 2, 4}},
		{SpringEquinox, CivilDate{2100, 3, 20}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.want, tt.term), func(t *testing.T) {
			got := civilFromJDN(termDay(tt.want.Year, tt.term))
			if got != tt.want {
				t.Errorf("%s %d = %s, want %s", tt.term, tt.want.Year, got, tt.want)
			}
		})
	}
}
