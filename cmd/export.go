package cmd

import (
	"fmt"
	"log"

	"github.com/akobyl/KitchenCard/internal/models"
	"github.com/akobyl/KitchenCard/internal/output"
	"github.com/akobyl/KitchenCard/internal/view"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered restaurant view to console, JSON, CSV or Parquet",
	Long: `Export loads the inspection dataset, applies the requested filters and
sort, and writes the resulting view through the configured sink. Parquet
output can go to a local file or straight to cloud storage.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		cfg := loadConfig()

		_, dataset := loadDataset(cfg)

		state := view.NewState(dataset)
		applyDefaultSort(state, cfg.DefaultSort)
		if err := applyViewFlags(cmd, state); err != nil {
			log.Fatalf("Invalid view flags: %v", err)
		}

		sink, err := output.ForConfig(cfg)
		if err != nil {
			log.Fatalf("Failed to create output sink: %v", err)
		}

		snap := state.Snapshot()
		if err := sink.WriteSnapshot(snap); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		if err := sink.Close(); err != nil {
			log.Fatalf("Failed to close output sink: %v", err)
		}
		if cfg.Export.Format != "" && cfg.Export.Format != "console" {
			log.Printf("Exported %d of %d restaurants as %s", snap.FilteredCount, snap.TotalCount, cfg.Export.Format)
		}
	},
}

func init() {
	exportCmd.Flags().String("format", "console", "Output format: console, json, csv or parquet")
	exportCmd.Flags().String("out", "", "Output file path")
	exportCmd.Flags().String("folder", "", "Output folder, prefixed to the file name")
	exportCmd.Flags().String("destination", "local", "Where output goes: local or cloud")
	exportCmd.Flags().String("provider", "", "Cloud storage provider")
	exportCmd.Flags().String("bucket", "", "Cloud storage bucket name")
	exportCmd.Flags().String("region", "", "Cloud storage region")

	viper.BindPFlag("export.format", exportCmd.Flags().Lookup("format"))
	viper.BindPFlag("export.output_file_path", exportCmd.Flags().Lookup("out"))
	viper.BindPFlag("export.output_folder", exportCmd.Flags().Lookup("folder"))
	viper.BindPFlag("export.destination", exportCmd.Flags().Lookup("destination"))
	viper.BindPFlag("export.cloud_storage.provider", exportCmd.Flags().Lookup("provider"))
	viper.BindPFlag("export.cloud_storage.bucket_name", exportCmd.Flags().Lookup("bucket"))
	viper.BindPFlag("export.cloud_storage.region", exportCmd.Flags().Lookup("region"))

	addViewFlags(exportCmd)

	rootCmd.AddCommand(exportCmd)
}

// addViewFlags registers the filter, sort and location flags. These are read
// straight from the flag set rather than bound to viper, so they only take
// effect when given on the command line.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("q", "", "Filter by name substring, case-insensitive")
	cmd.Flags().String("county", "", "Filter by exact county name")
	cmd.Flags().String("cuisine", "", "Filter by exact cuisine")
	cmd.Flags().Int("max-critical", 0, "Keep restaurants whose latest inspection has at most this many critical violations")
	cmd.Flags().Float64("max-distance", 0, "Keep restaurants within this many miles, needs --lat and --lng")
	cmd.Flags().Float64("lat", 0, "User latitude for distance")
	cmd.Flags().Float64("lng", 0, "User longitude for distance")
	cmd.Flags().String("sort", "", "Sort column")
	cmd.Flags().String("dir", "", "Sort direction: asc or desc")
}

func applyViewFlags(cmd *cobra.Command, state *view.State) error {
	flags := cmd.Flags()

	var criteria models.FilterCriteria
	criteria.NameQuery, _ = flags.GetString("q")
	criteria.County, _ = flags.GetString("county")
	criteria.Cuisine, _ = flags.GetString("cuisine")
	if flags.Changed("max-critical") {
		v, _ := flags.GetInt("max-critical")
		if v < 0 {
			return fmt.Errorf("--max-critical must not be negative")
		}
		criteria.MaxCriticalViolations = &v
	}
	if flags.Changed("max-distance") {
		v, _ := flags.GetFloat64("max-distance")
		if v < 0 {
			return fmt.Errorf("--max-distance must not be negative")
		}
		criteria.MaxDistanceMiles = &v
	}

	if flags.Changed("lat") != flags.Changed("lng") {
		return fmt.Errorf("--lat and --lng must be given together")
	}
	if flags.Changed("lat") {
		lat, _ := flags.GetFloat64("lat")
		lng, _ := flags.GetFloat64("lng")
		state.SetUserLocation(models.Location{Lat: lat, Lng: lng})
	}

	if criteria.Active() {
		state.SetFilters(criteria)
	}

	if flags.Changed("sort") || flags.Changed("dir") {
		colName, _ := flags.GetString("sort")
		if colName == "" {
			colName = string(models.SortByName)
		}
		col, err := models.ParseSortColumn(colName)
		if err != nil {
			return err
		}
		dirName, _ := flags.GetString("dir")
		dir, err := models.ParseSortDirection(dirName)
		if err != nil {
			return err
		}
		state.SetSortSpec(models.SortSpec{Column: col, Direction: dir})
	}
	return nil
}
