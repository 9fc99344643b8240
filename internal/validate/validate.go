// Package validate checks an inspection dataset for problems that would
// degrade the served view. Problems are reported as warnings, a flawed
// dataset still loads and serves.
package validate

import (
	"fmt"
	"time"

	"github.com/akobyl/KitchenCard/internal/models"
)

// Summary is the result of checking one dataset.
type Summary struct {
	Restaurants int
	Inspections int
	Violations  int
	Warnings    []string
}

func (s *Summary) warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// Check runs every integrity check against the dataset. The staleness
// threshold is measured against now, so callers pass time.Now() outside of
// tests.
func Check(ds models.Dataset, staleness time.Duration, now time.Time) Summary {
	var sum Summary
	sum.Restaurants = len(ds.Restaurants)

	if ds.LastUpdated.IsZero() {
		sum.warnf("dataset has no lastUpdated stamp")
	} else if staleness > 0 && now.Sub(ds.LastUpdated) > staleness {
		sum.warnf("dataset is stale, last updated %s", ds.LastUpdated.Format("2006-01-02"))
	}

	seen := make(map[string]bool, len(ds.Restaurants))
	for i := range ds.Restaurants {
		r := &ds.Restaurants[i]
		checkRestaurant(&sum, r, seen, now)
	}
	return sum
}

func checkRestaurant(sum *Summary, r *models.Restaurant, seen map[string]bool, now time.Time) {
	label := r.Name
	if label == "" {
		label = r.ID
	}

	switch {
	case r.ID == "":
		sum.warnf("restaurant %q has no id", label)
	case seen[r.ID]:
		sum.warnf("duplicate restaurant id %q", r.ID)
	default:
		seen[r.ID] = true
	}

	if r.Name == "" {
		sum.warnf("restaurant %s has no name", r.ID)
	}
	if r.Address == "" {
		sum.warnf("restaurant %q has no address", label)
	}
	if !models.KnownCounty(r.County) {
		sum.warnf("restaurant %q has unknown county %q", label, r.County)
	}
	if !models.KnownCuisine(r.Cuisine) {
		sum.warnf("restaurant %q has unknown cuisine %q", label, r.Cuisine)
	}
	if badCoordinates(r.Lat, r.Lng) {
		sum.warnf("restaurant %q has suspicious coordinates (%.4f, %.4f)", label, r.Lat, r.Lng)
	}
	if len(r.Inspections) == 0 {
		sum.warnf("restaurant %q has never been inspected", label)
	}

	for j := range r.Inspections {
		insp := &r.Inspections[j]
		sum.Inspections++
		sum.Violations += len(insp.Violations)
		checkInspection(sum, label, insp, now)
	}
}

func checkInspection(sum *Summary, label string, insp *models.Inspection, now time.Time) {
	switch {
	case insp.Date.IsZero():
		sum.warnf("inspection of %q has no date", label)
	case insp.Date.Time.After(now):
		sum.warnf("inspection of %q is dated in the future: %s", label, insp.Date.Time.Format("2006-01-02"))
	}

	if counted := insp.CountCritical(); counted != insp.CriticalViolations {
		sum.warnf("inspection of %q reports %d critical violations but lists %d",
			label, insp.CriticalViolations, counted)
	}
}

// badCoordinates flags points outside valid degree ranges and the exact
// origin, which in practice means a failed geocode.
func badCoordinates(lat, lng float64) bool {
	if lat == 0 && lng == 0 {
		return true
	}
	return lat < -90 || lat > 90 || lng < -180 || lng > 180
}
