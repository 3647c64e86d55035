// Package cli implements the almanac command-line tool.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/almanac-api/internal/calendar"
	"github.com/zapponejosh/almanac-api/internal/config"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// app carries the global flags and the engine built from them.
type app struct {
	timeZone string
	minYear  int
	maxYear  int

	theme  Theme
	now    func() time.Time
	engine *calendar.Engine
}

func newApp() *app {
	return &app{
		theme: DefaultTheme(),
		now:   time.Now,
	}
}

// Engine builds the engine on first use so that commands which don't
// need it, like version, start instantly.
func (a *app) Engine() (*calendar.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	e, err := calendar.NewEngine(calendar.Era{MinYear: a.minYear, MaxYear: a.maxYear})
	if err != nil {
		return nil, err
	}
	a.engine = e
	return e, nil
}

// Today returns the current date in the configured time zone.
func (a *app) Today() (calendar.CivilDate, error) {
	loc, err := time.LoadLocation(a.timeZone)
	if err != nil {
		return calendar.CivilDate{}, fmt.Errorf("time zone %q: %w", a.timeZone, err)
	}
	return calendar.CivilDateOf(a.now().In(loc)), nil
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "almanac",
		Short:        "Chinese lunisolar calendar and almanac",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&a.timeZone, "tz", config.DefaultTimeZone, "IANA time zone that decides what today is")
	cmd.PersistentFlags().IntVar(&a.minYear, "era-min", calendar.SupportedMinYear, "first supported Gregorian year")
	cmd.PersistentFlags().IntVar(&a.maxYear, "era-max", calendar.SupportedMaxYear, "last supported Gregorian year")

	cmd.AddCommand(
		dayCmd(a),
		termsCmd(a),
		lunarCmd(a),
		convertCmd(a),
		verifyCmd(a),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "almanac %s (era %d-%d)\n", Version, calendar.SupportedMinYear, calendar.SupportedMaxYear)
		},
	}
}
