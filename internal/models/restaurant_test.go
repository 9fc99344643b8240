package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLatestInspectionEmpty(t *testing.T) {
	r := Restaurant{ID: "x"}
	if got := r.LatestInspection(); got != nil {
		t.Errorf("LatestInspection() on empty history = %+v, want nil", got)
	}
}

func TestLatestInspectionSingle(t *testing.T) {
	r := Restaurant{
		Inspections: []Inspection{
			{Date: NewDate(2024, time.March, 1), CriticalViolations: 2},
		},
	}
	got := r.LatestInspection()
	if got == nil || got.CriticalViolations != 2 {
		t.Errorf("LatestInspection() = %+v, want the single inspection", got)
	}
}

func TestLatestInspectionPicksGreaterDate(t *testing.T) {
	r := Restaurant{
		Inspections: []Inspection{
			{Date: NewDate(2024, time.June, 15), CriticalViolations: 1},
			{Date: NewDate(2023, time.January, 5), CriticalViolations: 9},
		},
	}
	got := r.LatestInspection()
	if got == nil || got.CriticalViolations != 1 {
		t.Errorf("LatestInspection() = %+v, want the 2024 inspection", got)
	}
}

func TestLatestInspectionTieKeepsFirstEncountered(t *testing.T) {
	r := Restaurant{
		Inspections: []Inspection{
			{Date: NewDate(2024, time.June, 15), CriticalViolations: 3},
			{Date: NewDate(2024, time.June, 15), CriticalViolations: 7},
		},
	}
	got := r.LatestInspection()
	if got == nil || got.CriticalViolations != 3 {
		t.Errorf("LatestInspection() on tied dates = %+v, want the first encountered", got)
	}
}

func TestCountCritical(t *testing.T) {
	insp := Inspection{
		Violations: []Violation{
			{Description: "Improper cold holding", Critical: true},
			{Description: "Floors not clean", Critical: false},
			{Description: "No soap at hand sink", Critical: true},
		},
	}
	if got := insp.CountCritical(); got != 2 {
		t.Errorf("CountCritical() = %d, want 2", got)
	}
}

func TestDateUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2024-03-01"`, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{`"2024-03-01T10:30:00Z"`, time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)},
		{`""`, time.Time{}},
		{`null`, time.Time{}},
	}
	for _, tc := range cases {
		var d Date
		if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tc.in, err)
			continue
		}
		if !d.Time.Equal(tc.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tc.in, d.Time, tc.want)
		}
	}
}

func TestDateUnmarshalInvalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"next tuesday"`), &d); err == nil {
		t.Error("Unmarshal of garbage date did not fail")
	}
}

func TestDateMarshal(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, time.March, 1))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `"2024-03-01"` {
		t.Errorf("Marshal = %s, want \"2024-03-01\"", b)
	}

	b, err = json.Marshal(Date{})
	if err != nil {
		t.Fatalf("Marshal zero: %v", err)
	}
	if string(b) != `""` {
		t.Errorf("Marshal zero = %s, want \"\"", b)
	}
}

func TestRestaurantUnmarshalWireShape(t *testing.T) {
	raw := `{
		"id": "r1",
		"name": "Pizza Hut",
		"address": "100 Main St, Akron",
		"lat": 41.08,
		"lng": -81.52,
		"county": "Summit",
		"cuisine": "Italian",
		"inspections": [
			{
				"date": "2024-03-01",
				"critical_violations": 1,
				"violations": [
					{"description": "Improper cold holding", "critical": true}
				]
			}
		]
	}`

	var r Restaurant
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.ID != "r1" || r.County != "Summit" {
		t.Errorf("identity fields = %q/%q", r.ID, r.County)
	}
	if len(r.Inspections) != 1 {
		t.Fatalf("got %d inspections, want 1", len(r.Inspections))
	}
	insp := r.Inspections[0]
	if insp.CriticalViolations != 1 {
		t.Errorf("critical_violations = %d, want 1", insp.CriticalViolations)
	}
	if len(insp.Violations) != 1 || !insp.Violations[0].Critical {
		t.Errorf("violations = %+v", insp.Violations)
	}
}
