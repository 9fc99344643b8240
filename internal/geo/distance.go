// Package geo provides the great-circle math behind the distance column
// and the max-distance filter.
package geo

import (
	"math"

	"github.com/akobyl/KitchenCard/internal/models"
)

const earthRadiusMiles = 3959.0 // Earth's radius in miles

// Miles returns the haversine distance between two points in statute miles.
func Miles(from, to models.Location) float64 {
	lat1 := degreesToRadians(from.Lat)
	lon1 := degreesToRadians(from.Lng)
	lat2 := degreesToRadians(to.Lat)
	lon2 := degreesToRadians(to.Lng)

	// Haversine formula
	dlat := lat2 - lat1
	dlon := lon2 - lon1
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
