package weedtrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selloa/weed-tracker/internal/service"
)

var backupsJSON bool

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List pre-import backup snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			backups, err := tr.ListBackups()
			if err != nil {
				return err
			}
			if backupsJSON {
				return printJSON(cmd, backups)
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups yet")
				return nil
			}
			for _, b := range backups {
				date := b.BackupDate
				if date == "" {
					date = "unreadable"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d entries\n", b.Key, date, b.EntryCount)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(backupsCmd)
	backupsCmd.Flags().BoolVar(&backupsJSON, "json", false, "Output as JSON")
}
