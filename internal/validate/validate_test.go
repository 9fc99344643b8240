package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/akobyl/KitchenCard/internal/models"
)

var checkNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func cleanRestaurant(id, name string) models.Restaurant {
	return models.Restaurant{
		ID:      id,
		Name:    name,
		Address: "1 Main St, Akron, OH",
		Lat:     41.0814,
		Lng:     -81.5190,
		County:  "Summit",
		Cuisine: "Italian",
		Inspections: []models.Inspection{
			{
				Date:               models.NewDate(2024, time.March, 1),
				CriticalViolations: 1,
				Violations: []models.Violation{
					{Description: "Food not held at proper temperature", Critical: true},
					{Description: "Floors not clean", Critical: false},
				},
			},
		},
	}
}

func cleanDataset(restaurants ...models.Restaurant) models.Dataset {
	return models.Dataset{
		LastUpdated: checkNow.Add(-24 * time.Hour),
		Restaurants: restaurants,
	}
}

func assertWarning(t *testing.T, sum Summary, substr string) {
	t.Helper()
	for _, w := range sum.Warnings {
		if strings.Contains(w, substr) {
			return
		}
	}
	t.Errorf("expected a warning containing %q, got %v", substr, sum.Warnings)
}

func TestCheckCleanDataset(t *testing.T) {
	ds := cleanDataset(cleanRestaurant("r1", "Luigi's Pizzeria"), cleanRestaurant("r2", "Roma Trattoria"))

	sum := Check(ds, 30*24*time.Hour, checkNow)

	if len(sum.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", sum.Warnings)
	}
	if sum.Restaurants != 2 {
		t.Errorf("Restaurants = %d, want 2", sum.Restaurants)
	}
	if sum.Inspections != 2 {
		t.Errorf("Inspections = %d, want 2", sum.Inspections)
	}
	if sum.Violations != 4 {
		t.Errorf("Violations = %d, want 4", sum.Violations)
	}
}

func TestCheckDuplicateIDs(t *testing.T) {
	ds := cleanDataset(cleanRestaurant("r1", "Luigi's Pizzeria"), cleanRestaurant("r1", "Roma Trattoria"))

	sum := Check(ds, 0, checkNow)

	assertWarning(t, sum, `duplicate restaurant id "r1"`)
}

func TestCheckMissingFields(t *testing.T) {
	r := cleanRestaurant("", "Luigi's Pizzeria")
	r.Address = ""
	ds := cleanDataset(r)

	sum := Check(ds, 0, checkNow)

	assertWarning(t, sum, "has no id")
	assertWarning(t, sum, "has no address")
}

func TestCheckUnknownCountyAndCuisine(t *testing.T) {
	r := cleanRestaurant("r1", "Luigi's Pizzeria")
	r.County = "Stark"
	r.Cuisine = "Fusion"
	ds := cleanDataset(r)

	sum := Check(ds, 0, checkNow)

	assertWarning(t, sum, `unknown county "Stark"`)
	assertWarning(t, sum, `unknown cuisine "Fusion"`)
}

func TestCheckSuspiciousCoordinates(t *testing.T) {
	origin := cleanRestaurant("r1", "Luigi's Pizzeria")
	origin.Lat, origin.Lng = 0, 0
	outOfRange := cleanRestaurant("r2", "Roma Trattoria")
	outOfRange.Lat = 123.4
	ds := cleanDataset(origin, outOfRange)

	sum := Check(ds, 0, checkNow)

	if len(sum.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", sum.Warnings)
	}
	assertWarning(t, sum, `"Luigi's Pizzeria" has suspicious coordinates`)
	assertWarning(t, sum, `"Roma Trattoria" has suspicious coordinates`)
}

func TestCheckNeverInspected(t *testing.T) {
	r := cleanRestaurant("r1", "Brand New Cafe")
	r.Inspections = nil
	ds := cleanDataset(r)

	sum := Check(ds, 0, checkNow)

	assertWarning(t, sum, `"Brand New Cafe" has never been inspected`)
	if sum.Inspections != 0 {
		t.Errorf("Inspections = %d, want 0", sum.Inspections)
	}
}

func TestCheckCriticalCountMismatch(t *testing.T) {
	r := cleanRestaurant("r1", "Luigi's Pizzeria")
	r.Inspections[0].CriticalViolations = 5
	ds := cleanDataset(r)

	sum := Check(ds, 0, checkNow)

	assertWarning(t, sum, "reports 5 critical violations but lists 1")
}

func TestCheckInspectionDates(t *testing.T) {
	r := cleanRestaurant("r1", "Luigi's Pizzeria")
	r.Inspections = append(r.Inspections,
		models.Inspection{Date: models.Date{}},
		models.Inspection{Date: models.NewDate(2030, time.January, 1)},
	)
	ds := cleanDataset(r)

	sum := Check(ds, 0, checkNow)

	assertWarning(t, sum, "has no date")
	assertWarning(t, sum, "dated in the future: 2030-01-01")
}

func TestCheckStaleness(t *testing.T) {
	ds := cleanDataset(cleanRestaurant("r1", "Luigi's Pizzeria"))
	ds.LastUpdated = checkNow.Add(-40 * 24 * time.Hour)

	sum := Check(ds, 30*24*time.Hour, checkNow)
	assertWarning(t, sum, "dataset is stale")

	fresh := Check(ds, 0, checkNow)
	for _, w := range fresh.Warnings {
		if strings.Contains(w, "stale") {
			t.Errorf("zero threshold should disable the staleness check, got %q", w)
		}
	}
}

func TestCheckMissingLastUpdated(t *testing.T) {
	ds := cleanDataset(cleanRestaurant("r1", "Luigi's Pizzeria"))
	ds.LastUpdated = time.Time{}

	sum := Check(ds, 30*24*time.Hour, checkNow)

	assertWarning(t, sum, "no lastUpdated stamp")
}
