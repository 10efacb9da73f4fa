package weedtrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selloa/weed-tracker/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the stored entries document for corruption",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			report, err := tr.RunDoctor(doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Records:         %d\n", report.TotalRecords)
			fmt.Fprintf(out, "Invalid:         %d\n", report.InvalidRecords)
			fmt.Fprintf(out, "Duplicate ids:   %d\n", report.DuplicateIDs)
			fmt.Fprintf(out, "Sort violations: %d\n", report.SortViolations)
			if report.CorruptDocument {
				fmt.Fprintln(out, "Document is corrupt and could not be parsed")
			}
			if report.FixedRecords > 0 {
				fmt.Fprintf(out, "Fixed %d records\n", report.FixedRecords)
			}
			if doctorFix {
				recheck, err := tr.RunDoctor(false)
				if err != nil {
					return err
				}
				if !recheck.Clean() {
					return fmt.Errorf("entries document still has problems after fix")
				}
				fmt.Fprintln(out, "Entries document is clean")
				return nil
			}
			if !report.Clean() {
				return fmt.Errorf("entries document has problems, run with --fix to repair")
			}
			fmt.Fprintln(out, "Entries document is clean")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Rewrite the cleaned, sorted entry list")
}
