package calendar

import (
	"reflect"
	"testing"
)

func TestOfficerFor(t *testing.T) {
	tests := []struct {
		day   Branch
		month Branch
		want  Officer
	}{
		{2, 2, Establish},
		{3, 2, Remove},
		{1, 2, Close},
		{4, 2, Full},
		{0, 0, Establish},
		{2, 0, Full},
		{11, 1, Open},
	}

	for _, tt := range tests {
		if got := OfficerFor(tt.day, tt.month); got != tt.want {
			t.Errorf("OfficerFor(%s, %s) = %s, want %s", tt.day, tt.month, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	// 2024-02-10: jia-chen day in the yin month.
	got := Lookup(StemBranchAt(40), StartOfSpring)

	want := AlmanacEntry{
		Officer:      Full,
		Auspicious:   []Activity{Sacrifice, Pray, OpenBusiness, Trade, CollectWealth, TailorClothes},
		Inauspicious: []Activity{Burial, TakeOffice, SeekMedicine, Planting},
		Directions: []LuckyDirection{
			{Deity: JoyDeity, Direction: NorthEast},
			{Deity: WealthDeity, Direction: NorthEast},
			{Deity: FortuneDeity, Direction: North},
		},
		LuckyHours:   []Branch{2, 4, 5, 8, 9, 11},
		NobleHours:   []Branch{1, 7},
		Clash:        Dog,
		ShaDirection: South,
		Harmony:      Rooster,
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup(jia-chen, start_of_spring) =\n%+v\nwant\n%+v", got, want)
	}
}

func TestLookup_SolarMonth(t *testing.T) {
	// Both terms of one solar month give the same officer.
	day := StemBranchAt(14)
	for term := MinorCold; term <= WinterSolstice; term += 2 {
		a, b := Lookup(day, term), Lookup(day, term+1)
		if a.Officer != b.Officer {
			t.Errorf("%s and %s disagree on the officer", term, term+1)
		}
	}
}

func TestLookup_FreshSlices(t *testing.T) {
	first := Lookup(StemBranchAt(0), MinorCold)
	first.Auspicious[0] = Voyage
	first.LuckyHours[0] = 11
	first.Directions[0].Direction = West

	second := Lookup(StemBranchAt(0), MinorCold)
	if second.Auspicious[0] == Voyage {
		t.Error("Auspicious shares storage with the table")
	}
	if second.LuckyHours[0] == 11 {
		t.Error("LuckyHours shares storage between calls")
	}
	if second.Directions[0].Direction == West {
		t.Error("Directions shares storage between calls")
	}
}

func TestLookup_AllDays(t *testing.T) {
	for i := 0; i < 60; i++ {
		for term := MinorCold; term <= WinterSolstice; term++ {
			e := Lookup(StemBranchAt(i), term)
			if len(e.Auspicious) == 0 || len(e.Inauspicious) == 0 {
				t.Errorf("day %d term %s has an empty activity list", i, term)
			}
			if len(e.LuckyHours) != 6 {
				t.Errorf("day %d has %d lucky hours", i, len(e.LuckyHours))
			}
			if len(e.Directions) != 3 {
				t.Errorf("day %d has %d directions", i, len(e.Directions))
			}
			if e.Clash == e.Harmony {
				t.Errorf("day %d clash and harmony are both %s", i, e.Clash)
			}
		}
	}
}

func TestYellowPathHours(t *testing.T) {
	tests := []struct {
		branch Branch
		want   []Branch
	}{
		{0, []Branch{0, 1, 3, 6, 8, 9}},  // zi: zi chou mao wu shen you
		{6, []Branch{0, 1, 3, 6, 8, 9}},  // wu shares zi's hours
		{2, []Branch{0, 1, 4, 5, 7, 10}}, // yin: green dragon at zi
		{4, []Branch{2, 4, 5, 8, 9, 11}},
	}

	for _, tt := range tests {
		if got := yellowPathHours(tt.branch); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("yellowPathHours(%s) = %v, want %v", tt.branch, got, tt.want)
		}
	}
}

func TestAlmanacNames(t *testing.T) {
	if Establish.String() != "establish" || Close.String() != "close" {
		t.Errorf("officer names = %s..%s", Establish, Close)
	}
	if Voyage.String() != "voyage" || SeekHeirs.String() != "seek_heirs" {
		t.Errorf("activity names = %s, %s", Voyage, SeekHeirs)
	}
	if NorthWest.String() != "northwest" {
		t.Errorf("NorthWest = %s", NorthWest)
	}
	if Activity(99).String() != "Activity(99)" {
		t.Errorf("unknown activity = %s", Activity(99))
	}
}
