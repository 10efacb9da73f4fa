package weedtrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var storePath string

var rootCmd = &cobra.Command{
	Use:   "weedtrack",
	Short: "weedtrack logs cannabis usage and tracks reduction goals from your terminal",
	Long:  "weedtrack is a local-first consumption tracker with rolling statistics, streaks, reduction and stash goals, chart data, and JSON import/export.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "db", "", "Path to local store file")
}
