package calendar

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestStemBranch_Cycle(t *testing.T) {
	seen := make(map[[2]int]bool)
	for i := 0; i < 60; i++ {
		sb := StemBranchAt(i)
		if sb.Index() != i {
			t.Errorf("StemBranchAt(%d).Index() = %d", i, sb.Index())
		}

		key := [2]int{int(sb.Stem()), int(sb.Branch())}
		if seen[key] {
			t.Errorf("pair %s repeats within the cycle", sb)
		}
		seen[key] = true

		back, err := StemBranchOf(sb.Stem(), sb.Branch())
		if err != nil {
			t.Fatalf("StemBranchOf(%s) failed: %v", sb, err)
		}
		if back != sb {
			t.Errorf("StemBranchOf(%s) = %s", sb, back)
		}
	}

	if got := StemBranchAt(-1); got.Index() != 59 {
		t.Errorf("StemBranchAt(-1) = %d, want 59", got.Index())
	}
	if got := StemBranchAt(59).Next(1); got.Index() != 0 {
		t.Errorf("gui-hai.Next(1) = %s, want jia-zi", got)
	}
}

func TestStemBranchOf_Polarity(t *testing.T) {
	if _, err := StemBranchOf(0, 1); !IsInvalidInput(err) {
		t.Errorf("StemBranchOf(jia, chou) error = %v, want ErrInvalidInput", err)
	}
	if _, err := StemBranchOf(10, 0); !IsInvalidInput(err) {
		t.Errorf("StemBranchOf(10, zi) error = %v, want ErrInvalidInput", err)
	}
}

func TestStemBranch_Names(t *testing.T) {
	tests := []struct {
		idx     int
		want    string
		element Element
		zodiac  Zodiac
		naYin   Element
	}{
		{0, "jia-zi", Wood, Rat, Metal},
		{40, "jia-chen", Wood, Dragon, Fire},
		{59, "gui-hai", Water, Pig, Water},
		{6, "geng-wu", Metal, Horse, Earth},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			sb := StemBranchAt(tt.idx)
			if sb.String() != tt.want {
				t.Errorf("String() = %q, want %q", sb.String(), tt.want)
			}
			if sb.Stem().Element() != tt.element {
				t.Errorf("stem element = %s, want %s", sb.Stem().Element(), tt.element)
			}
			if sb.Branch().Zodiac() != tt.zodiac {
				t.Errorf("zodiac = %s, want %s", sb.Branch().Zodiac(), tt.zodiac)
			}
			if sb.NaYinElement() != tt.naYin {
				t.Errorf("na-yin = %s, want %s", sb.NaYinElement(), tt.naYin)
			}
		})
	}
}

func TestBranch_ClashAndHarmony(t *testing.T) {
	tests := []struct {
		branch  Branch
		clash   Branch
		harmony Branch
	}{
		{0, 6, 1},  // zi: wu, chou
		{2, 8, 11}, // yin: shen, hai
		{4, 10, 9}, // chen: xu, you
		{6, 0, 7},  // wu: zi, wei
		{11, 5, 2}, // hai: si, yin
	}

	for _, tt := range tests {
		if got := tt.branch.Clash(); got != tt.clash {
			t.Errorf("%s.Clash() = %s, want %s", tt.branch, got, tt.clash)
		}
		if got := tt.branch.Harmony(); got != tt.harmony {
			t.Errorf("%s.Harmony() = %s, want %s", tt.branch, got, tt.harmony)
		}
	}
}

func TestYearPillar(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{1984, "jia-zi"},
		{2024, "jia-chen"},
		{2025, "yi-si"},
		{1900, "geng-zi"},
		{1983, "gui-hai"},
	}

	for _, tt := range tests {
		if got := YearPillar(tt.year).String(); got != tt.want {
			t.Errorf("YearPillar(%d) = %s, want %s", tt.year, got, tt.want)
		}
	}
}

func TestDayPillar(t *testing.T) {
	tests := []struct {
		date CivilDate
		idx  int
	}{
		{CivilDate{2000, 1, 7}, 0},
		{CivilDate{2000, 1, 6}, 59},
		{CivilDate{1900, 1, 31}, 40},
		{CivilDate{2024, 2, 10}, 40},
		{CivilDate{2023, 3, 21}, 14},
		{CivilDate{2025, 1, 29}, 34},
		{CivilDate{2025, 10, 17}, 55},
		{CivilDate{1901, 1, 1}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			if got := DayPillar(julianDayNumber(tt.date)).Index(); got != tt.idx {
				t.Errorf("DayPillar(%s) = %d, want %d", tt.date, got, tt.idx)
			}
		})
	}
}

func TestMonthPillar(t *testing.T) {
	tests := []struct {
		name  string
		stem  Stem
		month int
		leap  bool
		want  string
	}{
		{"jia year first month", 0, 1, false, "bing-yin"},
		{"ji year first month", 5, 1, false, "bing-yin"},
		{"yi year first month", 1, 1, false, "wu-yin"},
		{"wu year first month", 4, 1, false, "jia-yin"},
		{"jia year twelfth month", 0, 12, false, "ding-chou"},
		{"leap month shares the ordinary pillar", 1, 6, true, "gui-wei"},
		{"ordinary month six", 1, 6, false, "gui-wei"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthPillar(tt.stem, tt.month, tt.leap)
			if err != nil {
				t.Fatalf("MonthPillar failed: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("MonthPillar(%s, %d) = %s, want %s", tt.stem, tt.month, got, tt.want)
			}
		})
	}

	for _, m := range []int{0, 13} {
		if _, err := MonthPillar(0, m, false); !IsInvalidInput(err) {
			t.Errorf("MonthPillar(month %d) error = %v, want ErrInvalidInput", m, err)
		}
	}
}

func TestHourBranch(t *testing.T) {
	tests := []struct {
		hour int
		want Branch
	}{
		{23, 0}, {0, 0}, {1, 1}, {2, 1}, {3, 2}, {11, 6}, {12, 6}, {13, 7}, {21, 11}, {22, 11},
	}

	for _, tt := range tests {
		got, err := HourBranch(tt.hour)
		if err != nil {
			t.Fatalf("HourBranch(%d) failed: %v", tt.hour, err)
		}
		if got != tt.want {
			t.Errorf("HourBranch(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}

	for _, h := range []int{-1, 24} {
		if _, err := HourBranch(h); !IsInvalidInput(err) {
			t.Errorf("HourBranch(%d) error = %v, want ErrInvalidInput", h, err)
		}
	}
}

func TestHourPillar(t *testing.T) {
	tests := []struct {
		stem   Stem
		branch Branch
		want   string
	}{
		{0, 0, "jia-zi"},
		{5, 0, "jia-zi"},
		{1, 0, "bing-zi"},
		{4, 0, "ren-zi"},
		{0, 6, "geng-wu"},
		{9, 11, "gui-hai"},
	}

	for _, tt := range tests {
		if got := HourPillar(tt.stem, tt.branch).String(); got != tt.want {
			t.Errorf("HourPillar(%s, %s) = %s, want %s", tt.stem, tt.branch, got, tt.want)
		}
	}
}

func TestHourPillarOn_LateZi(t *testing.T) {
	day := julianDayNumber(CivilDate{2000, 1, 7}) // jia-zi day

	pillar := func(j JDN, hour int) StemBranch {
		t.Helper()
		sb, err := hourPillarOn(j, hour)
		if err != nil {
			t.Fatalf("hourPillarOn(%d, %d) failed: %v", j, hour, err)
		}
		return sb
	}

	tests := []struct {
		name string
		j    JDN
		hour int
		want string
	}{
		{"early zi", day, 0, "jia-zi"},
		{"chou", day, 1, "yi-chou"},
		{"hai", day, 22, "yi-hai"},
		{"late zi", day, 23, "bing-zi"},
		{"next early zi", day + 1, 0, "bing-zi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pillar(tt.j, tt.hour).String(); got != tt.want {
				t.Errorf("hour %d = %s, want %s", tt.hour, got, tt.want)
			}
		})
	}

	// The hour cycle runs on without a break across 60 days.
	for j := day; j < day+60; j++ {
		if pillar(j, 23) != pillar(j+1, 0) {
			t.Errorf("day %d: 23:00 %s differs from next 00:00 %s", j, pillar(j, 23), pillar(j+1, 0))
		}
		if pillar(j, 23) == pillar(j, 0) {
			t.Errorf("day %d: 23:00 repeats 00:00 (%s)", j, pillar(j, 0))
		}
		prev := pillar(j, 0)
		for h := 1; h <= 23; h += 2 {
			cur := pillar(j, h)
			if cur != prev.Next(1) {
				t.Errorf("day %d hour %d: %s does not follow %s", j, h, cur, prev)
			}
			prev = cur
		}
	}

	if _, err := hourPillarOn(day, 24); !IsInvalidInput(err) {
		t.Errorf("hour 24 error = %v, want invalid input", err)
	}
}

func TestStemBranch_Marshal(t *testing.T) {
	sb := StemBranchAt(40)

	b, err := json.Marshal(sb)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if want := `{"index":40,"stem":"jia","branch":"chen"}`; string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}

	y, err := yaml.Marshal(sb)
	if err != nil {
		t.Fatalf("yaml.Marshal failed: %v", err)
	}
	if want := "index: 40\nstem: jia\nbranch: chen\n"; string(y) != want {
		t.Errorf("yaml = %q, want %q", y, want)
	}
}
