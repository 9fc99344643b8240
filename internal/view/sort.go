package view

import (
	"sort"
	"strings"
	"time"

	"github.com/akobyl/KitchenCard/internal/geo"
	"github.com/akobyl/KitchenCard/internal/models"
)

// Sort returns a copy of restaurants ordered by spec, never reordering the
// input. The sort is stable, so equal keys keep their prior relative order
// and repeating a sort with unchanged data is idempotent.
func Sort(restaurants []models.Restaurant, spec models.SortSpec, userLoc *models.Location) []models.Restaurant {
	sorted := make([]models.Restaurant, len(restaurants))
	copy(sorted, restaurants)

	less := lessFunc(sorted, spec.Column, userLoc)
	if less == nil {
		// Every key compares equal, leave the order as-is.
		return sorted
	}
	if spec.Direction == models.SortDescending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(sorted, less)
	return sorted
}

func lessFunc(rs []models.Restaurant, column models.SortColumn, userLoc *models.Location) func(i, j int) bool {
	switch column {
	case models.SortByName:
		return func(i, j int) bool {
			return strings.ToLower(rs[i].Name) < strings.ToLower(rs[j].Name)
		}
	case models.SortByAddress:
		return func(i, j int) bool {
			return strings.ToLower(rs[i].Address) < strings.ToLower(rs[j].Address)
		}
	case models.SortByCounty:
		return func(i, j int) bool { return rs[i].County < rs[j].County }
	case models.SortByCuisine:
		return func(i, j int) bool { return rs[i].Cuisine < rs[j].Cuisine }
	case models.SortByDate:
		return func(i, j int) bool {
			return latestDate(&rs[i]).Before(latestDate(&rs[j]))
		}
	case models.SortByViolations:
		return func(i, j int) bool {
			return latestCriticalCount(&rs[i]) < latestCriticalCount(&rs[j])
		}
	case models.SortByDistance:
		if userLoc == nil {
			return nil
		}
		at := *userLoc
		return func(i, j int) bool {
			return geo.Miles(at, rs[i].Location()) < geo.Miles(at, rs[j].Location())
		}
	}
	return nil
}

// latestDate is the date of the most recent inspection, or the zero time for
// a restaurant that has never been inspected so it sorts earliest.
func latestDate(r *models.Restaurant) time.Time {
	if insp := r.LatestInspection(); insp != nil {
		return insp.Date.Time
	}
	return time.Time{}
}

// latestCriticalCount is the critical count of the most recent inspection,
// or zero when there is none.
func latestCriticalCount(r *models.Restaurant) int {
	if insp := r.LatestInspection(); insp != nil {
		return insp.CriticalViolations
	}
	return 0
}
