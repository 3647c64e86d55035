package labels

import (
	"strings"

	"github.com/zapponejosh/almanac-api/internal/calendar"
)

// NoSolarTerm is shown on days that do not open a solar term.
const NoSolarTerm = "無節氣"

var monthAbbrs = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// Card is one page of a tear-off almanac: every field is display text.
type Card struct {
	Year      int    `json:"year" yaml:"year"`
	Month     int    `json:"month" yaml:"month"`
	MonthSize string `json:"month_size" yaml:"month_size"` // 大 for 31-day months, else 小
	MonthAbbr string `json:"month_abbr" yaml:"month_abbr"`
	Day       int    `json:"day" yaml:"day"`
	Weekday   string `json:"weekday" yaml:"weekday"`
	WeekdayEn string `json:"weekday_en" yaml:"weekday_en"`

	GanZhiYear string `json:"ganzhi_year" yaml:"ganzhi_year"`
	Zodiac     string `json:"zodiac" yaml:"zodiac"`
	LunarMonth string `json:"lunar_month" yaml:"lunar_month"`
	LunarDay   string `json:"lunar_day" yaml:"lunar_day"`

	YearPillar  string `json:"year_pillar" yaml:"year_pillar"`
	MonthPillar string `json:"month_pillar" yaml:"month_pillar"`
	DayPillar   string `json:"day_pillar" yaml:"day_pillar"`
	HourPillar  string `json:"hour_pillar,omitempty" yaml:"hour_pillar,omitempty"`
	DayElement  string `json:"day_element" yaml:"day_element"`
	DayNaYin    string `json:"day_nayin" yaml:"day_nayin"`

	SolarTerm   string `json:"solar_term" yaml:"solar_term"`
	CurrentTerm string `json:"current_term" yaml:"current_term"`

	Officer      string   `json:"officer" yaml:"officer"`
	Auspicious   []string `json:"auspicious" yaml:"auspicious"`
	Inauspicious []string `json:"inauspicious" yaml:"inauspicious"`
	Directions   []string `json:"directions" yaml:"directions"`
	NobleHours   string   `json:"noble_hours" yaml:"noble_hours"`
	LuckyHours   string   `json:"lucky_hours" yaml:"lucky_hours"`
	ClashSha     string   `json:"clash_sha" yaml:"clash_sha"`
	Harmony      string   `json:"harmony" yaml:"harmony"`
	LuckyNumbers [2]int   `json:"lucky_numbers" yaml:"lucky_numbers"`
}

// NewCard renders a DayRecord for display.
func NewCard(rec calendar.DayRecord) Card {
	a := rec.Almanac

	c := Card{
		Year:      rec.Date.Year,
		Month:     rec.Date.Month,
		MonthSize: "小",
		MonthAbbr: monthAbbrs[rec.Date.Month-1],
		Day:       rec.Date.Day,
		Weekday:   Weekday(rec.Weekday),
		WeekdayEn: rec.Weekday.String(),

		GanZhiYear: Pillar(rec.YearPillar),
		Zodiac:     Zodiac(rec.Zodiac),
		LunarMonth: LunarMonth(rec.Lunar.Month, rec.Lunar.IsLeapMonth),
		LunarDay:   LunarDay(rec.Lunar.Day),

		YearPillar:  Pillar(rec.YearPillar),
		MonthPillar: Pillar(rec.MonthPillar),
		DayPillar:   Pillar(rec.DayPillar),
		DayElement:  Element(rec.DayPillar.Stem().Element()),
		DayNaYin:    NaYin(rec.DayPillar),

		SolarTerm:   NoSolarTerm,
		CurrentTerm: SolarTerm(rec.SolarTerm),

		Officer:      Officer(a.Officer),
		Auspicious:   activityNames(a.Auspicious),
		Inauspicious: activityNames(a.Inauspicious),
		NobleHours:   branchList(a.NobleHours),
		LuckyHours:   branchList(a.LuckyHours),
		ClashSha:     "沖" + Zodiac(a.Clash) + " 煞" + Direction(a.ShaDirection),
		Harmony:      Zodiac(a.Harmony),
		LuckyNumbers: [2]int{rec.Date.Day + 2, rec.Date.Day + 8},
	}

	if calendar.DaysInMonth(rec.Date.Year, rec.Date.Month) == 31 {
		c.MonthSize = "大"
	}
	if rec.TermStartsToday {
		c.SolarTerm = SolarTerm(rec.SolarTerm)
	}
	if rec.HourPillar != nil {
		c.HourPillar = Pillar(*rec.HourPillar)
	}
	for _, d := range a.Directions {
		c.Directions = append(c.Directions, Deity(d.Deity)+" "+Direction(d.Direction))
	}

	return c
}

// LunarDate returns the lunar month and day together, e.g. 閏六月初一.
func (c Card) LunarDate() string { return c.LunarMonth + c.LunarDay }

func activityNames(acts []calendar.Activity) []string {
	out := make([]string, 0, len(acts))
	for _, a := range acts {
		out = append(out, Activity(a))
	}
	return out
}

func branchList(bs []calendar.Branch) string {
	names := make([]string, 0, len(bs))
	for _, b := range bs {
		names = append(names, Branch(b))
	}
	return strings.Join(names, " ")
}
