package weedtrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selloa/weed-tracker/internal/service"
)

var todayJSON bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the rolling 24-hour summary and goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			now := tr.Now()
			today := service.TodayAggregate(tr.Entries, tr.Settings, now)
			progress := service.Progress(tr.Entries, tr.Goal, now)
			since := service.TimeSinceLast(tr.Entries, now)

			if todayJSON {
				return printJSON(cmd, map[string]any{
					"today":    today,
					"goal":     progress,
					"lastUsed": since,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Last 24h: %d sessions, %.2fg, %.2f %s\n",
				today.Count, today.Grams, today.Cost, tr.Settings.Currency)
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %.0f%%, %s\n", progress.Percent, progress.Text)
			fmt.Fprintln(cmd.OutOrStdout(), since.Text)
			return nil
		})
	},
}

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show rolling aggregates, streak, and time since last use",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			now := tr.Now()
			today := service.TodayAggregate(tr.Entries, tr.Settings, now)
			week := service.WeekTotals(tr.Entries, now)
			streak := service.Streak(tr.Entries, now)
			since := service.TimeSinceLast(tr.Entries, now)
			progress := service.Progress(tr.Entries, tr.Goal, now)

			if statsJSON {
				return printJSON(cmd, map[string]any{
					"today":    today,
					"week":     week,
					"streak":   streak,
					"lastUsed": since,
					"goal":     progress,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Last 24h: %d sessions, %.2fg, %.2f %s\n",
				today.Count, today.Grams, today.Cost, tr.Settings.Currency)
			fmt.Fprintf(out, "Last 7d:  %d sessions, %.2fg, %.2fg/day average\n",
				week.Count, week.Grams, week.DailyAverage)
			if streak.Count > 0 {
				fmt.Fprintf(out, "Streak:   %d %s\n", streak.Count, streak.Label)
			} else {
				fmt.Fprintf(out, "Streak:   %s\n", streak.Label)
			}
			fmt.Fprintf(out, "Since:    %s\n", since.Text)
			fmt.Fprintf(out, "Goal:     %.0f%%, %s\n", progress.Percent, progress.Text)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd, statsCmd)
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}
