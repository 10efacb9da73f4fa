package weedtrack

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/selloa/weed-tracker/internal/service"
)

var (
	logAmount float64
	logMethod string
	logNotes  string
	logMood   string
	logAt     string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a consumption entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseTimestampOrNow(logAt)
		if err != nil {
			return err
		}
		return withTracker(func(tr *service.Tracker) error {
			entry, err := tr.AddEntry(service.AddEntryInput{
				Amount: logAmount,
				Method: logMethod,
				Notes:  logNotes,
				Mood:   logMood,
				At:     at,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged entry %d (%.2fg %s at %s)\n",
				entry.ID, entry.Amount, entry.Method, entry.Timestamp.Format("2006-01-02 15:04"))
			return nil
		})
	},
}

var (
	listLimit int
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			entries := tr.Entries
			if listLimit > 0 && len(entries) > listLimit {
				entries = entries[:listLimit]
			}
			if listJSON {
				return printJSON(cmd, entries)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tAMOUNT\tMETHOD\tMOOD\tNOTES")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.2fg\t%s\t%s\t%s\n",
					e.ID, e.Timestamp.Format(time.RFC3339), e.Amount, e.Method, e.Mood, e.Notes)
			}
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEntryIDArg(args[0])
		if err != nil {
			return err
		}
		return withTracker(func(tr *service.Tracker) error {
			if err := tr.DeleteEntry(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd, listCmd, deleteCmd)

	logCmd.Flags().Float64Var(&logAmount, "amount", 0, "Amount in grams (required)")
	logCmd.Flags().StringVar(&logMethod, "method", "", "Method: joint, bong, pipe, cigarette, vape, edible, other (required)")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Free-text notes")
	logCmd.Flags().StringVar(&logMood, "mood", "", "Mood: great, good, neutral, bad, terrible")
	logCmd.Flags().StringVar(&logAt, "at", "", "Consumption time (RFC3339 or YYYY-MM-DD HH:MM), default now")
	_ = logCmd.MarkFlagRequired("amount")
	_ = logCmd.MarkFlagRequired("method")

	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum entries to show (0 = all)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}
