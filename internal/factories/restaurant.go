// Package factories fabricates datasets shaped like the scraped county
// data, for demos and for driving the tool without a live scrape.
package factories

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/akobyl/KitchenCard/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var (
	fake = faker.New()
	rng  = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Seed makes subsequent generation reproducible. Restaurant IDs stay unique
// per run, everything else is derived from the seed.
func Seed(seed int64) {
	fake = faker.NewWithSeed(rand.NewSource(seed))
	rng = rand.New(rand.NewSource(seed))
}

// nameTemplates deliberately lean on the cuisine keyword vocabulary so the
// inferred cuisines spread across the whole dropdown.
var nameTemplates = []string{
	"%s's Pizzeria",
	"%s's Trattoria",
	"%s Wok",
	"Golden %s China House",
	"%s Sushi",
	"%s Hibachi Grill",
	"%s Taco House",
	"%s Cantina",
	"%s Diner",
	"%s Street Grill",
	"%s Steakhouse",
	"%s BBQ Pit",
	"%s Curry House",
	"%s Tandoor",
	"%s Thai Kitchen",
	"%s Gyro Express",
	"%s's Bistro",
	"Cafe %s",
	"%s Family Restaurant",
	"%s Deli",
}

var countyCities = map[string][]string{
	"Summit":   {"Akron", "Cuyahoga Falls", "Hudson", "Barberton", "Stow"},
	"Cuyahoga": {"Cleveland", "Lakewood", "Parma", "Euclid", "Strongsville"},
}

type RestaurantFactory struct {
	nameCache sync.Map // to track used names
}

// CreateRestaurant fabricates a restaurant scattered around the county
// seat, with a cuisine inferred from its generated name the same way the
// scraper infers it.
func (rf *RestaurantFactory) CreateRestaurant(seat models.CountySeat, config *models.Config) *models.Restaurant {
	latRange := config.Generate.UrbanRadius / 111.0
	lonRange := latRange / math.Cos(seat.Lat*math.Pi/180.0)

	latOffset := (rng.Float64()*2 - 1) * latRange
	lonOffset := (rng.Float64()*2 - 1) * lonRange

	name := rf.createUniqueName()
	cities := countyCities[seat.County]
	city := seat.Seat
	if len(cities) > 0 {
		city = cities[rng.Intn(len(cities))]
	}

	return &models.Restaurant{
		ID:      cuid.New(),
		Name:    name,
		Address: fmt.Sprintf("%d %s, %s, OH", fake.IntBetween(100, 9999), fake.Address().StreetName(), city),
		Lat:     seat.Lat + latOffset,
		Lng:     seat.Lng + lonOffset,
		County:  seat.County,
		Cuisine: models.InferCuisine(name),
	}
}

func (rf *RestaurantFactory) createUniqueName() string {
	for {
		template := nameTemplates[rng.Intn(len(nameTemplates))]
		name := fmt.Sprintf(template, fake.Person().LastName())
		if _, exists := rf.nameCache.LoadOrStore(name, true); !exists {
			return name
		}
	}
}
