package weedtrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selloa/weed-tracker/internal/service"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage price and currency settings",
}

var (
	settingsPrice    float64
	settingsCurrency string
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			price := settingsPrice
			if !cmd.Flags().Changed("price") {
				price = tr.Settings.PricePerGram
			}
			currency := settingsCurrency
			if !cmd.Flags().Changed("currency") {
				currency = tr.Settings.Currency
			}
			if err := tr.SaveSettings(price, currency); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings saved: %.2f %s per gram\n",
				tr.Settings.PricePerGram, tr.Settings.Currency)
			return nil
		})
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Price per gram: %.2f\nCurrency: %s\n",
				tr.Settings.PricePerGram, tr.Settings.Currency)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd, settingsShowCmd)

	settingsSetCmd.Flags().Float64Var(&settingsPrice, "price", 0, "Price per gram")
	settingsSetCmd.Flags().StringVar(&settingsCurrency, "currency", "", "Currency code, e.g. USD")
}
