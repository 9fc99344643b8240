package view

import (
	"strings"

	"github.com/akobyl/KitchenCard/internal/geo"
	"github.com/akobyl/KitchenCard/internal/models"
)

// Filter returns the subset of restaurants passing every active criterion,
// preserving the input order. With no active criteria the input is returned
// unchanged.
func Filter(restaurants []models.Restaurant, criteria models.FilterCriteria, userLoc *models.Location) []models.Restaurant {
	if !criteria.Active() {
		return restaurants
	}

	query := strings.ToLower(criteria.NameQuery)
	matched := make([]models.Restaurant, 0, len(restaurants))
	for i := range restaurants {
		if matchesCriteria(&restaurants[i], criteria, query, userLoc) {
			matched = append(matched, restaurants[i])
		}
	}
	return matched
}

func matchesCriteria(r *models.Restaurant, c models.FilterCriteria, query string, userLoc *models.Location) bool {
	if query != "" && !strings.Contains(strings.ToLower(r.Name), query) {
		return false
	}
	if c.County != "" && r.County != c.County {
		return false
	}
	if c.Cuisine != "" && r.Cuisine != c.Cuisine {
		return false
	}
	if c.MaxCriticalViolations != nil {
		// A restaurant that has never been inspected has no current count
		// and cannot satisfy a violation ceiling.
		latest := r.LatestInspection()
		if latest == nil || latest.CriticalViolations > *c.MaxCriticalViolations {
			return false
		}
	}
	if c.MaxDistanceMiles != nil && userLoc != nil {
		if geo.Miles(*userLoc, r.Location()) > *c.MaxDistanceMiles {
			return false
		}
	}
	return true
}
