package models

import "strings"

// CountySeat anchors a covered county to its seat's coordinates. The
// generator scatters restaurants around the seat and distance math in tests
// uses the seats as fixed reference points.
type CountySeat struct {
	County string
	Seat   string
	Lat    float64
	Lng    float64
}

var CountySeats = []CountySeat{
	{County: "Summit", Seat: "Akron", Lat: 41.0814, Lng: -81.5190},
	{County: "Cuyahoga", Seat: "Cleveland", Lat: 41.4993, Lng: -81.6944},
}

// CountyNames returns the covered counties in display order.
func CountyNames() []string {
	names := make([]string, len(CountySeats))
	for i, c := range CountySeats {
		names[i] = c.County
	}
	return names
}

// KnownCounty reports whether name is one of the covered counties.
func KnownCounty(name string) bool {
	for _, c := range CountySeats {
		if c.County == name {
			return true
		}
	}
	return false
}

const CuisineOther = "Other"

// Cuisines lists every value the cuisine field may take, in display order.
var Cuisines = []string{
	"American",
	"Chinese",
	"French",
	"Indian",
	"Italian",
	"Japanese",
	"Mediterranean",
	"Mexican",
	"Thai",
	CuisineOther,
}

// KnownCuisine reports whether name is part of the cuisine vocabulary.
func KnownCuisine(name string) bool {
	for _, c := range Cuisines {
		if c == name {
			return true
		}
	}
	return false
}

// cuisineKeywords is checked in order and the first matching keyword wins.
var cuisineKeywords = []struct {
	cuisine  string
	keywords []string
}{
	{"Italian", []string{"italian", "pizza", "pizzeria", "pasta", "trattoria"}},
	{"Chinese", []string{"chinese", "china", "wok", "dragon"}},
	{"Japanese", []string{"japanese", "sushi", "hibachi", "ramen"}},
	{"Mexican", []string{"mexican", "taco", "burrito", "cantina", "mexico"}},
	{"American", []string{"diner", "grill", "burger", "steakhouse", "bbq", "bar"}},
	{"Indian", []string{"indian", "india", "curry", "tandoor"}},
	{"Thai", []string{"thai", "thailand"}},
	{"Mediterranean", []string{"mediterranean", "greek", "gyro", "kebab"}},
	{"French", []string{"french", "bistro", "cafe"}},
}

// InferCuisine guesses a cuisine from a restaurant name. It is a keyword
// heuristic, names without a recognizable term fall back to Other.
func InferCuisine(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range cuisineKeywords {
		for _, word := range entry.keywords {
			if strings.Contains(lower, word) {
				return entry.cuisine
			}
		}
	}
	return CuisineOther
}
