package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/akobyl/KitchenCard/internal/cloudstore"
	"github.com/akobyl/KitchenCard/internal/loader"
	"github.com/akobyl/KitchenCard/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "kitchencard",
	Short: "Restaurant health inspection viewer for Summit and Cuyahoga counties",
	Long: `KitchenCard serves, exports and generates restaurant health inspection
data for Summit and Cuyahoga counties in Ohio. It loads a JSON dataset,
filters and sorts the restaurant list, and computes distances from a
user supplied location.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./examples/config.json)")
	rootCmd.PersistentFlags().String("data", "", "dataset path or URL (file, http(s) or s3)")
	viper.BindPFlag("dataset_path", rootCmd.PersistentFlags().Lookup("data"))
}

// loadConfig is shared by the subcommands. Flags are bound to viper keys
// in each command's init, so the returned config already reflects them.
func loadConfig() *models.Config {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLoader builds a dataset loader, attaching an S3 fetcher when the
// configured source lives in a bucket.
func newLoader(cfg *models.Config) *loader.Loader {
	ld := loader.New()
	if strings.HasPrefix(cfg.DatasetPath, "s3://") {
		fetcher, err := cloudstore.NewS3Fetcher(cfg.Export.CloudStorage.Region)
		if err != nil {
			log.Fatalf("Failed to initialise S3 client: %v", err)
		}
		ld.Fetcher = fetcher
	}
	return ld
}

func loadDataset(cfg *models.Config) (*loader.Loader, models.Dataset) {
	ld := newLoader(cfg)
	dataset, err := ld.Load(context.Background(), cfg.DatasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset from %s: %v", cfg.DatasetPath, err)
	}
	return ld, dataset
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
