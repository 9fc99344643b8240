package cmd

import (
	"log"
	"time"

	"github.com/akobyl/KitchenCard/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset for integrity problems",
	Long: `Validate loads the inspection dataset and reports duplicate ids, bad
coordinates, unknown counties or cuisines, inconsistent violation counts,
never-inspected restaurants, impossible dates and staleness. Problems are
warnings, not errors: a flawed dataset still serves.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		_, dataset := loadDataset(cfg)

		summary := validate.Check(dataset, cfg.StalenessThreshold, time.Now())
		for _, w := range summary.Warnings {
			log.Printf("warning: %s", w)
		}
		log.Printf("Checked %d restaurants, %d inspections, %d violations: %d warnings",
			summary.Restaurants, summary.Inspections, summary.Violations, len(summary.Warnings))
	},
}

func init() {
	validateCmd.Flags().Duration("staleness", 720*time.Hour, "How old lastUpdated may be before the dataset counts as stale, zero disables")
	viper.BindPFlag("staleness_threshold", validateCmd.Flags().Lookup("staleness"))

	rootCmd.AddCommand(validateCmd)
}
