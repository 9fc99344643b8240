// Package server hosts the view engine behind a small JSON API. The server
// owns one State and serializes access to it, callers see filter, sort and
// location changes reflected in every response.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/akobyl/KitchenCard/internal/metrics"
	"github.com/akobyl/KitchenCard/internal/models"
	"github.com/akobyl/KitchenCard/internal/view"
	"github.com/rs/cors"
)

type Server struct {
	mu   sync.Mutex
	view *view.State

	allowedOrigins []string
}

func New(state *view.State, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	s := &Server{
		view:           state,
		allowedOrigins: allowedOrigins,
	}
	metrics.RestaurantsLoaded.Set(float64(state.TotalCount()))
	return s
}

// Handler assembles the route table and wraps it with CORS for the browser
// frontend.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/restaurants", s.handleRestaurants)
	mux.HandleFunc("GET /api/restaurants/{id}", s.handleRestaurantByID)
	mux.HandleFunc("POST /api/filters", s.handleSetFilters)
	mux.HandleFunc("POST /api/sort/{column}", s.handleSetSort)
	mux.HandleFunc("POST /api/location", s.handleSetLocation)
	mux.HandleFunc("DELETE /api/location", s.handleClearLocation)
	mux.HandleFunc("GET /api/meta", s.handleMeta)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		AllowCredentials: true,
	})
	return c.Handler(mux)
}

// Reload swaps in a freshly loaded dataset while keeping the active view
// settings.
func (s *Server) Reload(ds models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ReplaceDataset(ds)
	metrics.RestaurantsLoaded.Set(float64(s.view.TotalCount()))
	metrics.DatasetReloadsTotal.Inc()
}

func observe(endpoint string) func() {
	metrics.RequestsTotal.WithLabelValues(endpoint).Inc()
	start := time.Now()
	return func() {
		metrics.RequestDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
