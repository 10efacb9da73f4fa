package weedtrack

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the weedtrack version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "weedtrack %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
