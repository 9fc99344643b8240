package factories

import (
	"time"

	"github.com/akobyl/KitchenCard/internal/models"
)

// BuildDataset fabricates a complete dataset split evenly across the
// covered counties. progress, when non-nil, is invoked after each
// restaurant with the number built so far.
func BuildDataset(config *models.Config, progress func(done int)) models.Dataset {
	rf := &RestaurantFactory{}
	inf := &InspectionFactory{}
	now := time.Now().UTC()

	restaurants := make([]models.Restaurant, 0, config.Generate.Restaurants)
	for i := 0; i < config.Generate.Restaurants; i++ {
		seat := models.CountySeats[i%len(models.CountySeats)]
		r := rf.CreateRestaurant(seat, config)
		r.Inspections = inf.CreateHistory(config, now)
		restaurants = append(restaurants, *r)
		if progress != nil {
			progress(i + 1)
		}
	}

	return models.Dataset{
		LastUpdated: now,
		Restaurants: restaurants,
	}
}
