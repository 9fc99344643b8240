package models

import "time"

// RestaurantView is the plain-data row the engine hands to consumers: the
// restaurant's identity fields plus the derived values (latest inspection
// date, current critical count, distance from the user) that the table and
// map renderers need. The engine never renders anything itself.
type RestaurantView struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Address            string  `json:"address"`
	County             string  `json:"county"`
	Cuisine            string  `json:"cuisine"`
	Lat                float64 `json:"lat"`
	Lng                float64 `json:"lng"`
	LastInspected      Date    `json:"last_inspected"`      // zero when never inspected
	CriticalViolations int     `json:"critical_violations"` // from the latest inspection, 0 when none
	InspectionCount    int     `json:"inspection_count"`
	// DistanceMiles is nil whenever no user location is known.
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

// ViewSnapshot packages the current derived view for render sinks and API
// responses: the filtered+sorted rows together with the state that produced
// them.
type ViewSnapshot struct {
	GeneratedAt   time.Time        `json:"generated_at"`
	LastUpdated   time.Time        `json:"last_updated,omitempty"`
	Criteria      FilterCriteria   `json:"criteria"`
	Sort          SortSpec         `json:"sort"`
	UserLocation  *Location        `json:"user_location,omitempty"`
	TotalCount    int              `json:"total_count"`
	FilteredCount int              `json:"filtered_count"`
	Restaurants   []RestaurantView `json:"restaurants"`
}
