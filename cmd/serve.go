package cmd

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/akobyl/KitchenCard/internal/loader"
	"github.com/akobyl/KitchenCard/internal/metrics"
	"github.com/akobyl/KitchenCard/internal/models"
	"github.com/akobyl/KitchenCard/internal/server"
	"github.com/akobyl/KitchenCard/internal/view"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the restaurant view over HTTP",
	Long: `Serve loads the inspection dataset, then exposes the filtered and
sorted restaurant view as a JSON API with CORS enabled for the frontend.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		cfg := loadConfig()

		ld, dataset := loadDataset(cfg)
		log.Printf("Loaded %d restaurants from %s", len(dataset.Restaurants), cfg.DatasetPath)

		state := view.NewState(dataset)
		applyDefaultSort(state, cfg.DefaultSort)

		srv := server.New(state, cfg.AllowedOrigins)

		if cfg.WatchDataset {
			if isRemote(cfg.DatasetPath) {
				log.Printf("Dataset watching only works for local files, ignoring watch_dataset for %s", cfg.DatasetPath)
			} else {
				go watchDataset(ld, srv, cfg.DatasetPath)
			}
		}

		log.Printf("Server starting on %s", cfg.ListenAddr)
		log.Fatal(http.ListenAndServe(cfg.ListenAddr, srv.Handler()))
	},
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("watch", false, "Reload the dataset when the file changes")
	serveCmd.Flags().StringSlice("origins", nil, "Allowed CORS origins")
	serveCmd.Flags().String("sort", "name", "Initial sort column")

	viper.BindPFlag("listen_addr", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("watch_dataset", serveCmd.Flags().Lookup("watch"))
	viper.BindPFlag("allowed_origins", serveCmd.Flags().Lookup("origins"))
	viper.BindPFlag("default_sort", serveCmd.Flags().Lookup("sort"))

	rootCmd.AddCommand(serveCmd)
}

func applyDefaultSort(state *view.State, column string) {
	col, err := models.ParseSortColumn(column)
	if err != nil {
		log.Printf("Ignoring unknown default sort column %q", column)
		return
	}
	state.SetSortSpec(models.SortSpec{Column: col, Direction: models.SortAscending})
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "s3://")
}

// watchDataset reloads the served view whenever the dataset file changes.
// A reload that fails to parse keeps the previous view.
func watchDataset(ld *loader.Loader, srv *server.Server, path string) {
	ctx := context.Background()
	err := loader.Watch(ctx, path, func() {
		fresh, err := ld.Load(ctx, path)
		if err != nil {
			log.Printf("Dataset reload failed, keeping previous view: %v", err)
			metrics.DatasetReloadFailuresTotal.Inc()
			return
		}
		srv.Reload(fresh)
		log.Printf("Reloaded %d restaurants from %s", len(fresh.Restaurants), path)
	})
	if err != nil {
		log.Printf("Dataset watcher stopped: %v", err)
	}
}
