package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"TradingAssistant/internal/controller"
	"TradingAssistant/internal/notifier"
)

func selectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select DATE...",
		Short: "Click one or more calendar dates (YYYY-MM-DD)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				if _, err := a.ctl.ClickDate(raw); err != nil {
					return err
				}
			}
			if err := a.persist(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.ctl.Summary())
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the selected dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.ctl.ResetSelection()
			if err := a.persist(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.ctl.Summary())
			return nil
		},
	}
}

func monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month DELTA",
		Short: "Move the calendar by DELTA months (e.g. 1, -1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("month delta %q: %w", args[0], err)
			}
			title := a.ctl.ChangeMonth(delta)
			if err := a.persist(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), title)
			return nil
		},
	}
}

func yearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year YEAR",
		Short: "Jump the calendar to YEAR, keeping the month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year %q: %w", args[0], err)
			}
			title, err := a.ctl.SetYear(year)
			if err != nil {
				return err
			}
			if err := a.persist(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), title)
			return nil
		},
	}
}

func intervalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interval INTERVAL",
		Short: "Set the candle interval (15min, 30min, 1h, 1.5h, 3h, 1d)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iv, err := a.ctl.SelectInterval(args[0])
			if err != nil {
				return err
			}
			if err := a.persist(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Interval: %s\n", iv.Label())
			return nil
		},
	}
}

func timeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time auto | START END",
		Short: "Use the regular session (auto) or a manual HH:MM window",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 1 && args[0] == "auto":
				a.ctl.SetAutoTime(true)
			case len(args) == 2:
				if err := a.ctl.SetTimes(args[0], args[1]); err != nil {
					return err
				}
			default:
				return errors.New(`expected "auto" or START END`)
			}
			if err := a.persist(); err != nil {
				return err
			}
			w := a.ctl.Status().Window
			fmt.Fprintf(cmd.OutOrStdout(), "Window: %s-%s (auto: %t)\n", w.Start, w.End, w.Auto)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the calendar month, the selection and the analysis settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.ctl.Status()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Calendar: %s\n", st.Month)
			fmt.Fprintln(out, st.Summary)
			fmt.Fprintf(out, "Interval: %s | Window: %s-%s", st.Interval.Label(), st.Window.Start, st.Window.End)
			if st.Window.Auto {
				fmt.Fprint(out, " (auto)")
			}
			fmt.Fprintf(out, "\nSource: %s\n", st.Source)
			return nil
		},
	}
}

func datesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "Ask the data source which dates it covers and jump the calendar there",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := a.ctl.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.persist(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Available: %s → %s\n", dates.MinDate, dates.MaxDate)
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Analyse the selected period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.ctl.RunAnalysis(cmd.Context())
			if errors.Is(err, controller.ErrInvalidRange) {
				return err
			}
			// Analysis failures were already reported by the notifiers.
			if err != nil {
				return errors.New("analysis failed")
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := a.rec.RecentRuns(limit)
			if err != nil {
				return fmt.Errorf("load run history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), notifier.StripHTML(notifier.FormatRunHistory(runs)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
	return cmd
}

