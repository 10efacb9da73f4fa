package weedtrack

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/selloa/weed-tracker/internal/model"
	"github.com/selloa/weed-tracker/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the reduction or stash goal",
}

var (
	goalType   string
	goalWeekly float64
	goalStash  float64
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the active goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			if err := tr.SaveGoal(service.SaveGoalInput{
				GoalType:     goalType,
				WeeklyAmount: goalWeekly,
				StashAmount:  goalStash,
			}); err != nil {
				return err
			}
			if tr.Goal.GoalType == model.GoalStash {
				fmt.Fprintf(cmd.OutOrStdout(), "Goal set: stash of %.2fg\n", tr.Goal.StashAmount)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Goal set: %s, %.2fg per week\n", tr.Goal.GoalType, tr.Goal.WeeklyAmount)
			}
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active goal and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			progress := service.Progress(tr.Entries, tr.Goal, tr.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "Type: %s\n", tr.Goal.GoalType)
			if tr.Goal.GoalType == model.GoalStash {
				fmt.Fprintf(cmd.OutOrStdout(), "Stash: %.2fg", tr.Goal.StashAmount)
				if tr.Goal.StashStartDate != nil {
					fmt.Fprintf(cmd.OutOrStdout(), " since %s", tr.Goal.StashStartDate.Format(time.RFC3339))
				}
				fmt.Fprintln(cmd.OutOrStdout())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Weekly budget: %.2fg\n", tr.Goal.WeeklyAmount)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Progress: %.0f%%, %s\n", progress.Percent, progress.Text)
			return nil
		})
	},
}

var goalResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the goal to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			if err := tr.ResetGoal(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goal reset")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd, goalResetCmd)

	goalSetCmd.Flags().StringVar(&goalType, "type", "reduce", "Goal type: reduce, maintain, quit, stash")
	goalSetCmd.Flags().Float64Var(&goalWeekly, "weekly", 0, "Weekly budget in grams (non-stash goals)")
	goalSetCmd.Flags().Float64Var(&goalStash, "stash", 0, "Total stash in grams (stash goal)")
}
