package models

import "fmt"

// FilterCriteria describes which restaurants stay in the derived view. Zero
// values mean "criterion not active": empty strings for the text filters,
// nil for the numeric ceilings.
type FilterCriteria struct {
	// NameQuery is matched case-insensitively as a substring of the name.
	NameQuery string `json:"nameQuery,omitempty"`
	// County and Cuisine are exact matches when non-empty.
	County  string `json:"county,omitempty"`
	Cuisine string `json:"cuisine,omitempty"`
	// MaxCriticalViolations caps the critical count of the latest
	// inspection. Restaurants with no inspections fail this filter when it
	// is set; the absence of data does not count as zero violations.
	MaxCriticalViolations *int `json:"maxCriticalViolations,omitempty"`
	// MaxDistanceMiles has no effect unless a user location is known.
	MaxDistanceMiles *float64 `json:"maxDistanceMiles,omitempty"`
}

// Active reports whether any criterion is set.
func (c FilterCriteria) Active() bool {
	return c.NameQuery != "" || c.County != "" || c.Cuisine != "" ||
		c.MaxCriticalViolations != nil || c.MaxDistanceMiles != nil
}

// SortColumn names a sortable column of the restaurant table.
type SortColumn string

const (
	SortByName       SortColumn = "name"
	SortByAddress    SortColumn = "address"
	SortByCounty     SortColumn = "county"
	SortByCuisine    SortColumn = "cuisine"
	SortByDate       SortColumn = "date"
	SortByViolations SortColumn = "violations"
	SortByDistance   SortColumn = "distance"
)

// SortColumns lists every valid column, in table order.
var SortColumns = []SortColumn{
	SortByName, SortByAddress, SortByCounty, SortByCuisine,
	SortByDate, SortByViolations, SortByDistance,
}

// ParseSortColumn validates a column name from an external trigger.
func ParseSortColumn(s string) (SortColumn, error) {
	for _, col := range SortColumns {
		if s == string(col) {
			return col, nil
		}
	}
	return "", fmt.Errorf("unknown sort column %q", s)
}

// SortDirection is the ordering direction of a sort.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Reversed flips the direction, used when the same column is requested twice
// in a row.
func (d SortDirection) Reversed() SortDirection {
	if d == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// ParseSortDirection validates a direction string; empty means ascending.
func ParseSortDirection(s string) (SortDirection, error) {
	switch s {
	case "", string(SortAscending):
		return SortAscending, nil
	case string(SortDescending):
		return SortDescending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// SortSpec is a column plus a direction.
type SortSpec struct {
	Column    SortColumn    `json:"column"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort is the view's initial ordering: name, ascending.
func DefaultSort() SortSpec {
	return SortSpec{Column: SortByName, Direction: SortAscending}
}
