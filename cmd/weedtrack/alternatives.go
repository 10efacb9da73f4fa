package weedtrack

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/selloa/weed-tracker/internal/service"
)

var alternativesCmd = &cobra.Command{
	Use:   "alternatives",
	Short: "Suggest substitute activities",
}

var (
	altCount int
	altSeed  int64
)

var altSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show a random sample of substitute activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			seed := altSeed
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			picks, err := tr.SuggestAlternatives(altCount, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			for _, p := range picks {
				marker := " "
				if p.Tried {
					marker = "x"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s (%s)\n", marker, p.Category, p.Title, p.Description)
			}
			return nil
		})
	},
}

var altTriedCmd = &cobra.Command{
	Use:   "tried <category> <title>",
	Short: "Mark an activity as tried",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			if err := tr.MarkAlternativeTried(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s: %s as tried\n", args[0], args[1])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(alternativesCmd)
	alternativesCmd.AddCommand(altSuggestCmd, altTriedCmd)

	altSuggestCmd.Flags().IntVar(&altCount, "count", 3, "Number of suggestions")
	altSuggestCmd.Flags().Int64Var(&altSeed, "seed", 0, "Random seed (default: current time)")
}
