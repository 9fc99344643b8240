package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/akobyl/KitchenCard/internal/metrics"
	"github.com/akobyl/KitchenCard/internal/models"
)

// handleRestaurants returns the current view, first applying any filter,
// sort or location settings named in the query.
func (s *Server) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	defer observe("restaurants")()

	p, err := ParseQueryParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	if p.Location != nil {
		s.view.SetUserLocation(*p.Location)
	}
	if p.HasCriteria {
		s.view.SetFilters(p.Criteria)
	}
	if p.Sort != nil {
		s.view.SetSortSpec(*p.Sort)
	}
	snap := s.view.Snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}

// handleRestaurantByID serves the full record for the details view,
// ignoring active filters.
func (s *Server) handleRestaurantByID(w http.ResponseWriter, r *http.Request) {
	defer observe("restaurant")()

	id := r.PathValue("id")
	s.mu.Lock()
	restaurant, ok := s.view.RestaurantByID(id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	defer observe("filters")()

	var criteria models.FilterCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter criteria: "+err.Error())
		return
	}
	if criteria.MaxCriticalViolations != nil && *criteria.MaxCriticalViolations < 0 {
		writeError(w, http.StatusBadRequest, "maxCriticalViolations must not be negative")
		return
	}
	if criteria.MaxDistanceMiles != nil && *criteria.MaxDistanceMiles < 0 {
		writeError(w, http.StatusBadRequest, "maxDistanceMiles must not be negative")
		return
	}

	s.mu.Lock()
	s.view.SetFilters(criteria)
	snap := s.view.Snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}

// handleSetSort applies the column-click rule: a repeated column toggles
// direction, a new column starts ascending.
func (s *Server) handleSetSort(w http.ResponseWriter, r *http.Request) {
	defer observe("sort")()

	column, err := models.ParseSortColumn(r.PathValue("column"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	metrics.SortSelectionsTotal.WithLabelValues(string(column)).Inc()

	s.mu.Lock()
	s.view.SetSort(column)
	snap := s.view.Snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}

// locationReport is what the browser geolocation callback posts: either a
// position or a failure reason.
type locationReport struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

func (s *Server) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	defer observe("location")()

	var report locationReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeError(w, http.StatusBadRequest, "invalid location report: "+err.Error())
		return
	}

	if report.Error != "" {
		// A failed geolocation request leaves the view untouched, distance
		// behavior stays in the no-location mode.
		log.Printf("geolocation unavailable: %s", report.Error)
		metrics.GeolocationUpdatesTotal.WithLabelValues("error").Inc()
		s.mu.Lock()
		snap := s.view.Snapshot()
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, snap)
		return
	}

	if report.Lat == nil || report.Lng == nil {
		writeError(w, http.StatusBadRequest, "location report needs lat and lng")
		return
	}
	metrics.GeolocationUpdatesTotal.WithLabelValues("ok").Inc()

	s.mu.Lock()
	s.view.SetUserLocation(models.Location{Lat: *report.Lat, Lng: *report.Lng})
	snap := s.view.Snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleClearLocation(w http.ResponseWriter, r *http.Request) {
	defer observe("location")()

	s.mu.Lock()
	s.view.ClearUserLocation()
	snap := s.view.Snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}

// handleMeta serves the dropdown vocabularies and dataset bookkeeping the
// frontend needs to build its controls.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	defer observe("meta")()

	s.mu.Lock()
	meta := map[string]any{
		"counties":     s.view.Counties(),
		"cuisines":     s.view.Cuisines(),
		"sort_columns": models.SortColumns,
		"total_count":  s.view.TotalCount(),
		"last_updated": s.view.LastUpdated(),
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	count := s.view.TotalCount()
	updated := s.view.LastUpdated()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"restaurants":  count,
		"last_updated": updated.Format(time.RFC3339),
	})
}
