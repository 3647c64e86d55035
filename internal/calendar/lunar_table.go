package calendar

import (
	"fmt"
	"sort"
)

// LunarDate is a date in the Chinese lunisolar calendar.
type LunarDate struct {
	Year        int  `json:"year" yaml:"year"`
	Month       int  `json:"month" yaml:"month"`
	IsLeapMonth bool `json:"is_leap_month" yaml:"is_leap_month"`
	Day         int  `json:"day" yaml:"day"`
	MonthDays   int  `json:"month_days" yaml:"month_days"` // 29 or 30
}

// String formats the lunar date as YYYY-MM-DD, with an "L" before the month
// for leap months (e.g. 2023-L02-01).
func (d LunarDate) String() string {
	leap := ""
	if d.IsLeapMonth {
		leap = "L"
	}
	return fmt.Sprintf("%04d-%s%02d-%02d", d.Year, leap, d.Month, d.Day)
}

// LunarMonth is one month of a lunar year.
type LunarMonth struct {
	Month  int  `json:"month" yaml:"month"`
	IsLeap bool `json:"is_leap" yaml:"is_leap"`
	Days   int  `json:"days" yaml:"days"`
	Start  JDN  `json:"start_jdn" yaml:"start_jdn"`
}

// LunarYear is the month layout of one lunar year.
type LunarYear struct {
	Year      int          `json:"year" yaml:"year"`
	Start     JDN          `json:"start_jdn" yaml:"start_jdn"`
	LeapMonth int          `json:"leap_month" yaml:"leap_month"` // 0 when there is none
	Days      int          `json:"days" yaml:"days"`
	Months    []LunarMonth `json:"months" yaml:"months"`
}

// LunisolarTable is a read-only, sorted sequence of lunar years.
type LunisolarTable struct {
	years []LunarYear
}

// NewLunisolarTable decodes the shipped lunar year data. The data is part of
// the source, so a decoding failure is a programming error and panics.
func NewLunisolarTable() *LunisolarTable {
	t, err := newLunisolarTable(lunarYearInfo, lunarTableFirstYear, lunarTableEpoch)
	if err != nil {
		panic(fmt.Sprintf("calendar: shipped lunar table is invalid: %v", err))
	}
	return t
}

func newLunisolarTable(info []uint32, firstYear int, epoch JDN) (*LunisolarTable, error) {
	if len(info) == 0 {
		return nil, fmt.Errorf("lunar table is empty")
	}

	years := make([]LunarYear, 0, len(info))
	start := epoch
	for i, v := range info {
		ly, err := decodeLunarYear(firstYear+i, start, v)
		if err != nil {
			return nil, err
		}
		if i > 0 && ly.Start <= years[i-1].Start {
			return nil, fmt.Errorf("lunar year %d starts at %d, not after %d", ly.Year, ly.Start, years[i-1].Start)
		}
		years = append(years, ly)
		start += JDN(ly.Days)
	}

	return &LunisolarTable{years: years}, nil
}

// decodeLunarYear expands one packed entry (see lunarYearInfo).
func decodeLunarYear(year int, start JDN, info uint32) (LunarYear, error) {
	leap := int(info & 0xf)
	if leap > 12 {
		return LunarYear{}, fmt.Errorf("lunar year %d: leap month %d not in 0-12", year, leap)
	}

	ly := LunarYear{Year: year, Start: start, LeapMonth: leap}
	next := start
	add := func(month int, isLeap bool, days int) {
		ly.Months = append(ly.Months, LunarMonth{Month: month, IsLeap: isLeap, Days: days, Start: next})
		next += JDN(days)
		ly.Days += days
	}

	for m := 1; m <= 12; m++ {
		add(m, false, monthLength(info&(0x10000>>m) != 0))
		if m == leap {
			add(m, true, monthLength(info&0x10000 != 0))
		}
	}

	if !validYearLength(len(ly.Months), ly.Days) {
		return LunarYear{}, fmt.Errorf("lunar year %d: %d months totalling %d days", year, len(ly.Months), ly.Days)
	}
	return ly, nil
}

func monthLength(big bool) int {
	if big {
		return 30
	}
	return 29
}

// validYearLength accepts 12-month years of 353-355 days and 13-month years
// of 383-385 days.
func validYearLength(months, days int) bool {
	switch months {
	case 12:
		return days >= 353 && days <= 355
	case 13:
		return days >= 383 && days <= 385
	}
	return false
}

// Span returns the first and last JDN covered by the table.
func (t *LunisolarTable) Span() (first, last JDN) {
	end := t.years[len(t.years)-1]
	return t.years[0].Start, end.Start + JDN(end.Days) - 1
}

// Years returns the first and last lunar year in the table.
func (t *LunisolarTable) Years() (first, last int) {
	return t.years[0].Year, t.years[len(t.years)-1].Year
}

// Locate finds the lunar date containing j.
//
// A binary search picks the lunar year with the greatest start not after j;
// month lengths are then accumulated until the remaining offset fits.
func (t *LunisolarTable) Locate(j JDN) (LunarDate, error) {
	first, last := t.Span()
	if j < first || j > last {
		return LunarDate{}, t.rangeError(civilFromJDN(j).String())
	}

	i := sort.Search(len(t.years), func(i int) bool { return t.years[i].Start > j }) - 1
	ly := t.years[i]

	offset := int(j - ly.Start)
	for _, m := range ly.Months {
		if offset < m.Days {
			return LunarDate{
				Year:        ly.Year,
				Month:       m.Month,
				IsLeapMonth: m.IsLeap,
				Day:         offset + 1,
				MonthDays:   m.Days,
			}, nil
		}
		offset -= m.Days
	}

	// Unreachable: Span guarantees j lies inside the last year's days.
	return LunarDate{}, t.rangeError(civilFromJDN(j).String())
}

// Year returns the month layout of a lunar year.
func (t *LunisolarTable) Year(year int) (LunarYear, error) {
	firstYear, lastYear := t.Years()
	if year < firstYear || year > lastYear {
		return LunarYear{}, &RangeError{
			What:  "lunar year",
			Value: fmt.Sprint(year),
			Min:   fmt.Sprint(firstYear),
			Max:   fmt.Sprint(lastYear),
		}
	}

	ly := t.years[year-firstYear]
	ly.Months = append([]LunarMonth(nil), ly.Months...)
	return ly, nil
}

// ToJDN converts a lunar date back to the continuous day axis.
// MonthDays on the input is ignored.
func (t *LunisolarTable) ToJDN(d LunarDate) (JDN, error) {
	if d.Month < 1 || d.Month > 12 {
		return 0, invalidf("lunar month %d not in 1-12", d.Month)
	}

	ly, err := t.Year(d.Year)
	if err != nil {
		return 0, err
	}

	for _, m := range ly.Months {
		if m.Month != d.Month || m.IsLeap != d.IsLeapMonth {
			continue
		}
		if d.Day < 1 || d.Day > m.Days {
			return 0, invalidf("lunar day %d not valid for %s", d.Day, LunarDate{Year: d.Year, Month: d.Month, IsLeapMonth: d.IsLeapMonth, Day: 1})
		}
		return m.Start + JDN(d.Day-1), nil
	}

	return 0, invalidf("lunar year %d has no leap month %d", d.Year, d.Month)
}

func (t *LunisolarTable) rangeError(value string) *RangeError {
	first, last := t.Span()
	return &RangeError{
		What:  "lunar table",
		Value: value,
		Min:   civilFromJDN(first).String(),
		Max:   civilFromJDN(last).String(),
	}
}
