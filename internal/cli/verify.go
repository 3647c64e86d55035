package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/almanac-api/internal/calendar"
)

// anchor is a date whose reading is fixed by published almanacs.
type anchor struct {
	date      calendar.CivilDate
	lunar     string // LunarDate.String()
	yearPill  string
	dayPill   string
	term      calendar.SolarTerm
	termToday bool
}

var anchors = []anchor{
	{calendar.CivilDate{Year: 1901, Month: 2, Day: 19}, "1901-01-01", "xin-chou", "wu-chen", calendar.RainWater, true},
	{calendar.CivilDate{Year: 2000, Month: 1, Day: 1}, "1999-11-25", "ji-mao", "wu-wu", calendar.WinterSolstice, false},
	{calendar.CivilDate{Year: 2024, Month: 2, Day: 4}, "2023-12-25", "gui-mao", "wu-xu", calendar.StartOfSpring, true},
	{calendar.CivilDate{Year: 2024, Month: 2, Day: 10}, "2024-01-01", "jia-chen", "jia-chen", calendar.StartOfSpring, false},
	{calendar.CivilDate{Year: 2025, Month: 7, Day: 25}, "2025-L06-01", "yi-si", "yi-wei", calendar.MajorHeat, false},
}

// VerifyReport summarises a verification run.
type VerifyReport struct {
	Era     calendar.Era
	Days    int
	Terms   int
	Anchors int
}

// dayFacts is what the continuity checks need from each day.
type dayFacts struct {
	date      calendar.CivilDate
	lunar     calendar.LunarDate
	dayIndex  int
	term      calendar.SolarTerm
	termStart calendar.CivilDate
	termToday bool
}

// Verify walks every day of the engine's era and checks that consecutive
// days agree: lunar days advance by one or roll over at the month's end, the
// day pillar advances by one, and the solar term only changes on its start
// day. It also checks every year's terms and the fixed anchors. Years are
// computed concurrently.
func Verify(ctx context.Context, e *calendar.Engine) (VerifyReport, error) {
	era := e.Era()
	report := VerifyReport{Era: era}
	years := make([][]dayFacts, era.MaxYear-era.MinYear+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range years {
		i := i
		year := era.MinYear + i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			facts, err := yearFacts(e, year)
			if err != nil {
				return err
			}
			years[i] = facts
			return checkTerms(e, year)
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	var prev *dayFacts
	for _, facts := range years {
		for i := range facts {
			if prev != nil {
				if err := checkContinuity(*prev, facts[i]); err != nil {
					return report, err
				}
			}
			prev = &facts[i]
			report.Days++
		}
	}
	report.Terms = len(years) * calendar.TermsPerYear

	for _, a := range anchors {
		if !era.Contains(a.date.Year) {
			continue
		}
		if err := checkAnchor(e, a); err != nil {
			return report, err
		}
		report.Anchors++
	}

	return report, nil
}

func yearFacts(e *calendar.Engine, year int) ([]dayFacts, error) {
	start := calendar.CivilDate{Year: year, Month: 1, Day: 1}
	days := 365
	if calendar.IsLeapYear(year) {
		days = 366
	}

	out := make([]dayFacts, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDays(i)
		rec, err := e.Compute(d, nil)
		if err != nil {
			return nil, fmt.Errorf("compute %s: %w", d, err)
		}
		out = append(out, dayFacts{
			date:      d,
			lunar:     rec.Lunar,
			dayIndex:  rec.DayPillar.Index(),
			term:      rec.SolarTerm,
			termStart: rec.TermStart,
			termToday: rec.TermStartsToday,
		})
	}
	return out, nil
}

func checkContinuity(prev, cur dayFacts) error {
	l, p := cur.lunar, prev.lunar
	switch {
	case l.Day == p.Day+1:
		if l.Year != p.Year || l.Month != p.Month || l.IsLeapMonth != p.IsLeapMonth {
			return fmt.Errorf("%s: lunar %s does not follow %s", cur.date, l, p)
		}
	case l.Day == 1:
		if p.Day != p.MonthDays {
			return fmt.Errorf("%s: month %s ended on day %d of %d", cur.date, p, p.Day, p.MonthDays)
		}
	default:
		return fmt.Errorf("%s: lunar %s does not follow %s", cur.date, l, p)
	}

	if cur.dayIndex != (prev.dayIndex+1)%60 {
		return fmt.Errorf("%s: day pillar %d does not follow %d", cur.date, cur.dayIndex, prev.dayIndex)
	}

	if cur.termToday {
		if cur.term != (prev.term+1)%calendar.TermsPerYear {
			return fmt.Errorf("%s: term %s does not follow %s", cur.date, cur.term, prev.term)
		}
		if cur.termStart != cur.date {
			return fmt.Errorf("%s: term %s starts on %s", cur.date, cur.term, cur.termStart)
		}
	} else if cur.term != prev.term || cur.termStart != prev.termStart {
		return fmt.Errorf("%s: term changed to %s without a start day", cur.date, cur.term)
	}
	return nil
}

func checkTerms(e *calendar.Engine, year int) error {
	terms, err := e.Terms(year)
	if err != nil {
		return err
	}
	if len(terms) != calendar.TermsPerYear {
		return fmt.Errorf("%d: %d solar terms", year, len(terms))
	}
	for i := 1; i < len(terms); i++ {
		gap := int(terms[i].Date.Time(time.UTC).Sub(terms[i-1].Date.Time(time.UTC)).Hours() / 24)
		if gap < 14 || gap > 16 {
			return fmt.Errorf("%d: %s to %s is %d days", year, terms[i-1].Term, terms[i].Term, gap)
		}
	}
	return nil
}

func checkAnchor(e *calendar.Engine, a anchor) error {
	rec, err := e.Compute(a.date, nil)
	if err != nil {
		return fmt.Errorf("anchor %s: %w", a.date, err)
	}

	var errs []error
	if got := rec.Lunar.String(); got != a.lunar {
		errs = append(errs, fmt.Errorf("lunar %s, want %s", got, a.lunar))
	}
	if got := rec.YearPillar.String(); got != a.yearPill {
		errs = append(errs, fmt.Errorf("year pillar %s, want %s", got, a.yearPill))
	}
	if got := rec.DayPillar.String(); got != a.dayPill {
		errs = append(errs, fmt.Errorf("day pillar %s, want %s", got, a.dayPill))
	}
	if rec.SolarTerm != a.term || rec.TermStartsToday != a.termToday {
		errs = append(errs, fmt.Errorf("term %s (start today %v), want %s (%v)", rec.SolarTerm, rec.TermStartsToday, a.term, a.termToday))
	}
	if len(errs) > 0 {
		return fmt.Errorf("anchor %s: %w", a.date, errors.Join(errs...))
	}
	return nil
}

func verifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the calendar tables for consistency over the whole era",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.Engine()
			if err != nil {
				return err
			}

			report, err := Verify(cmd.Context(), e)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), a.theme, report)
		},
	}
}

func printReport(w io.Writer, t Theme, r VerifyReport) error {
	_, err := fmt.Fprintf(w, "%s era %d-%d: %d days, %d solar terms, %d anchors\n",
		t.Good.Render("OK"), r.Era.MinYear, r.Era.MaxYear, r.Days, r.Terms, r.Anchors)
	return err
}
