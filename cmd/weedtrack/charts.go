package weedtrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selloa/weed-tracker/internal/service"
)

var chartKind string

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Print chart-ready series as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			switch chartKind {
			case "last48h":
				return printJSON(cmd, service.Last48hSeries(tr.Entries, tr.Now()))
			case "timeofday":
				return printJSON(cmd, service.TimeOfDayHistogram(tr.Entries))
			case "methods":
				return printJSON(cmd, service.MethodHistogram(tr.Entries))
			default:
				return fmt.Errorf("unknown chart kind %q (expected last48h, timeofday, or methods)", chartKind)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.Flags().StringVar(&chartKind, "kind", "last48h", "Series to print: last48h, timeofday, methods")
}
