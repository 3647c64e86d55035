package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/almanac-api/internal/calendar"
	"github.com/zapponejosh/almanac-api/internal/labels"
)

func termsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "terms <year>",
		Short: "List the 24 solar terms of a Gregorian year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseInt("year", args[0])
			if err != nil {
				return err
			}

			e, err := a.Engine()
			if err != nil {
				return err
			}
			terms, err := e.Terms(year)
			if err != nil {
				return err
			}

			tb := table{
				title:   fmt.Sprintf("%d 二十四節氣", year),
				headers: []string{"節氣", "Term", "Longitude", "Date", "Weekday"},
			}
			for _, t := range terms {
				tb.add(
					labels.SolarTerm(t.Term),
					t.Term.String(),
					fmt.Sprintf("%.0f°", t.Term.Longitude()),
					t.Date.String(),
					labels.Weekday(t.Date.Time(time.UTC).Weekday()),
				)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), tb.render(a.theme))
			return err
		},
	}
}

func lunarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lunar <year>",
		Short: "Show the month layout of a lunar year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseInt("year", args[0])
			if err != nil {
				return err
			}

			e, err := a.Engine()
			if err != nil {
				return err
			}
			ly, err := e.LunarYear(year)
			if err != nil {
				return err
			}

			pillar := calendar.YearPillar(year)
			tb := table{
				title: fmt.Sprintf("農曆 %d %s年 (%s) %d days",
					year, labels.Pillar(pillar), labels.Zodiac(pillar.Branch().Zodiac()), ly.Days),
				headers: []string{"Month", "Days", "First day"},
			}
			for _, m := range ly.Months {
				size := "小"
				if m.Days == 30 {
					size = "大"
				}
				first := "-"
				if d, err := e.LunarToCivil(calendar.LunarDate{Year: year, Month: m.Month, IsLeapMonth: m.IsLeap, Day: 1}); err == nil {
					first = d.String()
				}
				tb.add(labels.LunarMonth(m.Month, m.IsLeap), fmt.Sprintf("%d %s", m.Days, size), first)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), tb.render(a.theme))
			return err
		},
	}
}

func convertCmd(a *app) *cobra.Command {
	var leap bool
	var format string

	c := &cobra.Command{
		Use:   "convert <lunar-year> <month> <day>",
		Short: "Convert a lunar date to its Gregorian date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parts [3]int
			for i, name := range []string{"year", "month", "day"} {
				n, err := parseInt(name, args[i])
				if err != nil {
					return err
				}
				parts[i] = n
			}

			e, err := a.Engine()
			if err != nil {
				return err
			}
			civil, err := e.LunarToCivil(calendar.LunarDate{Year: parts[0], Month: parts[1], IsLeapMonth: leap, Day: parts[2]})
			if err != nil {
				return err
			}

			if format == "date" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), civil)
				return err
			}

			rec, err := e.Compute(civil, nil)
			if err != nil {
				return err
			}
			return printDay(cmd.OutOrStdout(), a.theme, rec, format)
		},
	}

	c.Flags().BoolVar(&leap, "leap", false, "The month is the leap month")
	c.Flags().StringVarP(&format, "format", "f", "date", "Output format: date|card|json|yaml")
	return c
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", calendar.ErrInvalidInput, name, s)
	}
	return n, nil
}
