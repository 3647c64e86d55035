package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/almanac-api/internal/calendar"
	"github.com/zapponejosh/almanac-api/internal/labels"
)

func dayCmd(a *app) *cobra.Command {
	var hour int
	var format string

	c := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show the almanac for a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var date calendar.CivilDate
			var err error
			if len(args) == 1 {
				date, err = calendar.ParseCivilDate(args[0])
			} else {
				date, err = a.Today()
			}
			if err != nil {
				return err
			}

			var h *int
			if cmd.Flags().Changed("hour") {
				h = &hour
			}

			e, err := a.Engine()
			if err != nil {
				return err
			}
			rec, err := e.Compute(date, h)
			if err != nil {
				return err
			}

			return printDay(cmd.OutOrStdout(), a.theme, rec, format)
		},
	}

	c.Flags().IntVar(&hour, "hour", 0, "Hour of day 0-23 for the hour pillar")
	c.Flags().StringVarP(&format, "format", "f", "card", "Output format: card|json|yaml")
	return c
}

func printDay(w io.Writer, t Theme, rec calendar.DayRecord, format string) error {
	switch format {
	case "card":
		_, err := fmt.Fprintln(w, renderCard(t, labels.NewCard(rec), nil))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want card, json or yaml)", format)
	}
}
