package labels

import (
	"reflect"
	"testing"
	"time"

	"github.com/zapponejosh/almanac-api/internal/calendar"
)

func TestLunarDay(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "初一"}, {9, "初九"}, {10, "初十"}, {11, "十一"}, {15, "十五"},
		{19, "十九"}, {20, "二十"}, {21, "廿一"}, {29, "廿九"}, {30, "三十"},
	}

	for _, tt := range tests {
		if got := LunarDay(tt.day); got != tt.want {
			t.Errorf("LunarDay(%d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestLunarMonth(t *testing.T) {
	tests := []struct {
		month int
		leap  bool
		want  string
	}{
		{1, false, "正月"},
		{6, true, "閏六月"},
		{11, false, "冬月"},
		{12, false, "臘月"},
	}

	for _, tt := range tests {
		if got := LunarMonth(tt.month, tt.leap); got != tt.want {
			t.Errorf("LunarMonth(%d, %v) = %q, want %q", tt.month, tt.leap, got, tt.want)
		}
	}
}

func TestNames(t *testing.T) {
	if got := Pillar(calendar.StemBranchAt(40)); got != "甲辰" {
		t.Errorf("Pillar(40) = %q", got)
	}
	if got := NaYin(calendar.StemBranchAt(40)); got != "覆燈火" {
		t.Errorf("NaYin(40) = %q", got)
	}
	if got := SolarTerm(calendar.StartOfSpring); got != "立春" {
		t.Errorf("SolarTerm(StartOfSpring) = %q", got)
	}
	if got := SolarTerm(calendar.WinterSolstice); got != "冬至" {
		t.Errorf("SolarTerm(WinterSolstice) = %q", got)
	}
	if got := Weekday(time.Saturday); got != "星期六" {
		t.Errorf("Weekday(Saturday) = %q", got)
	}
	if got := Officer(calendar.Full); got != "滿" {
		t.Errorf("Officer(Full) = %q", got)
	}
}

func TestActivity_AllNamed(t *testing.T) {
	for a := calendar.Sacrifice; a <= calendar.Voyage; a++ {
		if Activity(a) == "" {
			t.Errorf("activity %s has no label", a)
		}
	}
}

func TestNewCard(t *testing.T) {
	e, err := calendar.NewEngine(calendar.Era{MinYear: 2024, MaxYear: 2024})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	hour := 12
	rec, err := e.Compute(calendar.CivilDate{Year: 2024, Month: 2, Day: 10}, &hour)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	c := NewCard(rec)

	checks := []struct {
		field, got, want string
	}{
		{"MonthSize", c.MonthSize, "小"},
		{"MonthAbbr", c.MonthAbbr, "FEB"},
		{"Weekday", c.Weekday, "星期六"},
		{"WeekdayEn", c.WeekdayEn, "Saturday"},
		{"GanZhiYear", c.GanZhiYear, "甲辰"},
		{"Zodiac", c.Zodiac, "龍"},
		{"LunarDate", c.LunarDate(), "正月初一"},
		{"MonthPillar", c.MonthPillar, "丙寅"},
		{"DayPillar", c.DayPillar, "甲辰"},
		{"HourPillar", c.HourPillar, "庚午"},
		{"DayElement", c.DayElement, "木"},
		{"SolarTerm", c.SolarTerm, NoSolarTerm},
		{"CurrentTerm", c.CurrentTerm, "立春"},
		{"Officer", c.Officer, "滿"},
		{"NobleHours", c.NobleHours, "丑 未"},
		{"LuckyHours", c.LuckyHours, "寅 辰 巳 申 酉 亥"},
		{"ClashSha", c.ClashSha, "沖狗 煞南"},
		{"Harmony", c.Harmony, "雞"},
	}
	for _, ch := range checks {
		if ch.got != ch.want {
			t.Errorf("%s = %q, want %q", ch.field, ch.got, ch.want)
		}
	}

	wantYi := []string{"祭祀", "祈福", "開市", "交易", "納財", "裁衣"}
	if !reflect.DeepEqual(c.Auspicious, wantYi) {
		t.Errorf("Auspicious = %v, want %v", c.Auspicious, wantYi)
	}
	wantDirs := []string{"喜神 東北", "財神 東北", "福神 北"}
	if !reflect.DeepEqual(c.Directions, wantDirs) {
		t.Errorf("Directions = %v, want %v", c.Directions, wantDirs)
	}
	if c.LuckyNumbers != [2]int{12, 18} {
		t.Errorf("LuckyNumbers = %v", c.LuckyNumbers)
	}
}

func TestNewCard_TermDay(t *testing.T) {
	e, err := calendar.NewEngine(calendar.Era{MinYear: 2024, MaxYear: 2024})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	rec, err := e.Compute(calendar.CivilDate{Year: 2024, Month: 3, Day: 20}, nil)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	c := NewCard(rec)
	if c.SolarTerm != "春分" {
		t.Errorf("SolarTerm = %q, want 春分", c.SolarTerm)
	}
	if c.MonthSize != "大" {
		t.Errorf("MonthSize = %q, want 大", c.MonthSize)
	}
	if c.HourPillar != "" {
		t.Errorf("HourPillar = %q, want empty", c.HourPillar)
	}
}
