// Package view implements the data-view engine: filtering, sorting and
// derived-metric computation over an in-memory inspection dataset. State is
// the single owner of the current view; hosts mutate it through its methods
// and read back plain data.
package view

import (
	"sort"
	"time"

	"github.com/akobyl/KitchenCard/internal/geo"
	"github.com/akobyl/KitchenCard/internal/models"
)

// State holds the loaded dataset together with the active filter criteria,
// sort spec and optional user location, and keeps the derived filtered and
// sorted collection current. Every mutating method recomputes the derived
// view before returning, so readers never observe a filter applied without
// the active sort.
//
// State is not safe for concurrent use. Hosts with concurrent callers
// serialize access themselves, the way the HTTP server does with a mutex.
type State struct {
	dataset  models.Dataset
	byID     map[string]*models.Restaurant
	criteria models.FilterCriteria
	sortSpec models.SortSpec
	userLoc  *models.Location
	filtered []models.Restaurant
}

// NewState builds a view over dataset with no active filters, no user
// location and the default name-ascending sort.
func NewState(dataset models.Dataset) *State {
	s := &State{sortSpec: models.DefaultSort()}
	s.ReplaceDataset(dataset)
	return s
}

// ReplaceDataset swaps in a new dataset, keeping the active criteria, sort
// and user location. Used when the dataset file changes on disk.
func (s *State) ReplaceDataset(dataset models.Dataset) {
	s.dataset = dataset
	s.byID = make(map[string]*models.Restaurant, len(dataset.Restaurants))
	for i := range dataset.Restaurants {
		s.byID[dataset.Restaurants[i].ID] = &dataset.Restaurants[i]
	}
	s.recompute()
}

// SetFilters replaces the filter criteria and recomputes the view.
func (s *State) SetFilters(criteria models.FilterCriteria) {
	s.criteria = criteria
	s.recompute()
}

// SetSort selects a sort column. Selecting the active column again toggles
// the direction, selecting a different column resets to ascending.
func (s *State) SetSort(column models.SortColumn) {
	if s.sortSpec.Column == column {
		s.sortSpec.Direction = s.sortSpec.Direction.Reversed()
	} else {
		s.sortSpec = models.SortSpec{Column: column, Direction: models.SortAscending}
	}
	s.recompute()
}

// SetSortSpec sets the column and direction explicitly, bypassing the
// toggle rule.
func (s *State) SetSortSpec(spec models.SortSpec) {
	s.sortSpec = spec
	s.recompute()
}

// SetUserLocation records the user's position and recomputes the view, which
// activates any pending distance filter and gives the distance sort its keys.
func (s *State) SetUserLocation(loc models.Location) {
	s.userLoc = &loc
	s.recompute()
}

// ClearUserLocation removes the user's position. Distance filters go back to
// being skipped and the distance sort back to a no-op.
func (s *State) ClearUserLocation() {
	s.userLoc = nil
	s.recompute()
}

func (s *State) recompute() {
	s.filtered = Sort(Filter(s.dataset.Restaurants, s.criteria, s.userLoc), s.sortSpec, s.userLoc)
}

// Filtered returns the current filtered and sorted collection.
func (s *State) Filtered() []models.Restaurant {
	return s.filtered
}

// RestaurantByID looks up a restaurant in the full dataset, ignoring any
// active filters.
func (s *State) RestaurantByID(id string) (*models.Restaurant, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Criteria returns the active filter criteria.
func (s *State) Criteria() models.FilterCriteria {
	return s.criteria
}

// Sort returns the active sort spec.
func (s *State) Sort() models.SortSpec {
	return s.sortSpec
}

// UserLocation returns a copy of the user's position, or nil when none is
// set.
func (s *State) UserLocation() *models.Location {
	if s.userLoc == nil {
		return nil
	}
	loc := *s.userLoc
	return &loc
}

// LastUpdated reports when the dataset was collected, zero when the loader
// had no timestamp.
func (s *State) LastUpdated() time.Time {
	return s.dataset.LastUpdated
}

// TotalCount is the size of the full dataset before filtering.
func (s *State) TotalCount() int {
	return len(s.dataset.Restaurants)
}

// Counties returns the distinct county names present in the dataset, sorted.
func (s *State) Counties() []string {
	return distinct(s.dataset.Restaurants, func(r *models.Restaurant) string { return r.County })
}

// Cuisines returns the distinct cuisine names present in the dataset, sorted.
func (s *State) Cuisines() []string {
	return distinct(s.dataset.Restaurants, func(r *models.Restaurant) string { return r.Cuisine })
}

// Snapshot packages the current view as plain data for render sinks and API
// responses.
func (s *State) Snapshot() *models.ViewSnapshot {
	rows := make([]models.RestaurantView, len(s.filtered))
	for i := range s.filtered {
		rows[i] = s.rowFor(&s.filtered[i])
	}
	return &models.ViewSnapshot{
		GeneratedAt:   time.Now().UTC(),
		LastUpdated:   s.dataset.LastUpdated,
		Criteria:      s.criteria,
		Sort:          s.sortSpec,
		UserLocation:  s.UserLocation(),
		TotalCount:    len(s.dataset.Restaurants),
		FilteredCount: len(s.filtered),
		Restaurants:   rows,
	}
}

func (s *State) rowFor(r *models.Restaurant) models.RestaurantView {
	row := models.RestaurantView{
		ID:              r.ID,
		Name:            r.Name,
		Address:         r.Address,
		County:          r.County,
		Cuisine:         r.Cuisine,
		Lat:             r.Lat,
		Lng:             r.Lng,
		InspectionCount: len(r.Inspections),
	}
	if insp := r.LatestInspection(); insp != nil {
		row.LastInspected = insp.Date
		row.CriticalViolations = insp.CriticalViolations
	}
	if s.userLoc != nil {
		d := geo.Miles(*s.userLoc, r.Location())
		row.DistanceMiles = &d
	}
	return row
}

func distinct(rs []models.Restaurant, field func(*models.Restaurant) string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range rs {
		v := field(&rs[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
