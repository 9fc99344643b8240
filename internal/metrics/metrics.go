// Package metrics exposes the Prometheus instrumentation for the API
// server, registered on the default registry and served from /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchencard_requests_total",
		Help: "Total API requests by endpoint",
	}, []string{"endpoint"})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kitchencard_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	RestaurantsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kitchencard_restaurants_loaded",
		Help: "Number of restaurants in the loaded dataset",
	})
	DatasetReloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kitchencard_dataset_reloads_total",
		Help: "Total successful dataset reloads",
	})
	DatasetReloadFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kitchencard_dataset_reload_failures_total",
		Help: "Total dataset reloads that failed and kept the previous data",
	})
	GeolocationUpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchencard_geolocation_updates_total",
		Help: "Geolocation reports by outcome",
	}, []string{"status"})
	SortSelectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchencard_sort_selections_total",
		Help: "Sort column selections by column",
	}, []string{"column"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(RestaurantsLoaded)
	prometheus.MustRegister(DatasetReloadsTotal)
	prometheus.MustRegister(DatasetReloadFailuresTotal)
	prometheus.MustRegister(GeolocationUpdatesTotal)
	prometheus.MustRegister(SortSelectionsTotal)
}

// Handler serves the registered metrics for Prometheus to scrape.
func Handler() http.Handler { return promhttp.Handler() }
