package calendar

import (
	"reflect"
	"testing"
)

func TestEngine_Anniversaries(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name  string
		month int
		day   int
		leap  bool
		year  int
		want  []CivilDate
	}{
		{
			name: "new year", month: 1, day: 1, year: 2024,
			want: []CivilDate{{2024, 2, 10}},
		},
		{
			name: "twelfth month falls twice", month: 12, day: 1, year: 2024,
			want: []CivilDate{{2024, 1, 11}, {2024, 12, 31}},
		},
		{
			name: "day 30 clamps in a short month", month: 12, day: 30, year: 2025,
			want: []CivilDate{{2025, 1, 28}},
		},
		{
			name: "day 30 of a long month", month: 12, day: 30, year: 2024,
			want: []CivilDate{{2024, 2, 9}},
		},
		{
			name: "leap month present", month: 6, day: 1, leap: true, year: 2025,
			want: []CivilDate{{2025, 7, 25}},
		},
		{
			name: "ordinary month in a leap year", month: 6, day: 1, year: 2025,
			want: []CivilDate{{2025, 6, 25}},
		},
		{
			name: "leap month missing falls back", month: 1, day: 1, leap: true, year: 2024,
			want: []CivilDate{{2024, 2, 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Anniversaries(tt.month, tt.day, tt.leap, tt.year)
			if err != nil {
				t.Fatalf("Anniversaries failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Anniversaries = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_Anniversaries_Errors(t *testing.T) {
	e := testEngine(t)

	if _, err := e.Anniversaries(13, 1, false, 2024); !IsInvalidInput(err) {
		t.Errorf("month 13 error = %v, want ErrInvalidInput", err)
	}
	if _, err := e.Anniversaries(1, 31, false, 2024); !IsInvalidInput(err) {
		t.Errorf("day 31 error = %v, want ErrInvalidInput", err)
	}
	if _, err := e.Anniversaries(1, 1, false, 2101); !IsOutOfRange(err) {
		t.Errorf("year 2101 error = %v, want ErrOutOfRange", err)
	}
}
