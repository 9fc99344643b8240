package models

import (
	"fmt"
	"strings"
	"time"
)

// Restaurant is a single establishment in the inspection dataset. The JSON
// tags mirror the dataset contract produced by the offline collection
// pipeline; the collection is immutable after load.
type Restaurant struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Lat         float64      `json:"lat"`
	Lng         float64      `json:"lng"`
	County      string       `json:"county"`
	Cuisine     string       `json:"cuisine"`
	Inspections []Inspection `json:"inspections"`
}

// Inspection is one health-department visit. CriticalViolations is the count
// of violations flagged critical; the collection pipeline keeps it consistent
// with the violation records and this engine assumes rather than enforces
// that.
type Inspection struct {
	Date               Date        `json:"date"`
	CriticalViolations int         `json:"critical_violations"`
	Violations         []Violation `json:"violations"`
}

// Violation is a single cited health-code violation.
type Violation struct {
	Description string `json:"description"`
	Critical    bool   `json:"critical"`
}

// Dataset is the wire shape of the inspection data file.
type Dataset struct {
	LastUpdated time.Time    `json:"lastUpdated,omitempty"`
	Restaurants []Restaurant `json:"restaurants"`
}

// Date wraps time.Time because county exports are inconsistent about whether
// inspection dates carry a time component. Both bare dates (2006-01-02) and
// RFC3339 timestamps unmarshal; marshalling always emits the bare date.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid inspection date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Location returns the restaurant's coordinates as a Location value.
func (r *Restaurant) Location() Location {
	return Location{Lat: r.Lat, Lng: r.Lng}
}

// LatestInspection picks the restaurant's most recent inspection, the single
// record consulted wherever a current violation count or last inspection
// date is needed. Returns nil when the restaurant has no inspections. When
// several inspections share the maximum date the first one encountered wins,
// so the choice is deterministic for a given input order.
func (r *Restaurant) LatestInspection() *Inspection {
	var latest *Inspection
	for i := range r.Inspections {
		insp := &r.Inspections[i]
		if latest == nil || insp.Date.After(latest.Date.Time) {
			latest = insp
		}
	}
	return latest
}

// CountCritical tallies the violations flagged critical. The dataset tools
// use it to cross-check the recorded CriticalViolations figure.
func (i *Inspection) CountCritical() int {
	count := 0
	for _, v := range i.Violations {
		if v.Critical {
			count++
		}
	}
	return count
}
