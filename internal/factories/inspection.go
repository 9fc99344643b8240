package factories

import (
	"time"

	"github.com/akobyl/KitchenCard/internal/models"
)

// Violation descriptions follow Ohio food-code phrasing.
var criticalViolationCatalog = []string{
	"Potentially hazardous food not held at proper cold temperature",
	"No soap or paper towels at hand washing sink",
	"Raw animal food stored over ready-to-eat food",
	"Food contact surfaces not cleaned and sanitized",
	"Employee observed handling ready-to-eat food with bare hands",
	"Toxic chemicals stored above food preparation area",
	"Person in charge unable to demonstrate food safety knowledge",
}

var nonCriticalViolationCatalog = []string{
	"Floors not clean under cooking equipment",
	"Wet wiping cloths not stored in sanitizer solution",
	"No thermometer visible in reach-in cooler",
	"Missing ceiling tile in kitchen area",
	"Light bulbs not shielded in food prep area",
	"Outer door not protected against insect entry",
	"Single-service articles stored on floor",
}

type InspectionFactory struct{}

// CreateHistory fabricates between zero and max inspections dated within
// the past two years. A zero-length history is a real outcome, newly opened
// restaurants have not been inspected yet.
func (f *InspectionFactory) CreateHistory(config *models.Config, now time.Time) []models.Inspection {
	count := rng.Intn(config.Generate.MaxInspections + 1)
	if count == 0 {
		return nil
	}
	inspections := make([]models.Inspection, count)
	for i := range inspections {
		daysAgo := rng.Intn(730)
		inspections[i] = f.CreateInspection(now.AddDate(0, 0, -daysAgo))
	}
	return inspections
}

// CreateInspection fabricates one inspection whose critical_violations
// count always equals the number of critical entries in its violation list.
func (f *InspectionFactory) CreateInspection(date time.Time) models.Inspection {
	criticalCount := skewedCount(len(criticalViolationCatalog))
	nonCriticalCount := skewedCount(len(nonCriticalViolationCatalog))

	violations := make([]models.Violation, 0, criticalCount+nonCriticalCount)
	for _, idx := range rng.Perm(len(criticalViolationCatalog))[:criticalCount] {
		violations = append(violations, models.Violation{
			Description: criticalViolationCatalog[idx],
			Critical:    true,
		})
	}
	for _, idx := range rng.Perm(len(nonCriticalViolationCatalog))[:nonCriticalCount] {
		violations = append(violations, models.Violation{
			Description: nonCriticalViolationCatalog[idx],
		})
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return models.Inspection{
		Date:               models.Date{Time: day},
		CriticalViolations: criticalCount,
		Violations:         violations,
	}
}

// skewedCount favors low counts, clean-ish inspections are the common case.
func skewedCount(max int) int {
	n := rng.Intn(max + 1)
	if n > 3 {
		n = rng.Intn(4)
	}
	return n
}
