package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/akobyl/KitchenCard/internal/models"
)

// QueryParams carries the view changes requested through a restaurant list
// query. Sort and Location stay nil when the query does not mention them.
type QueryParams struct {
	Criteria    models.FilterCriteria
	HasCriteria bool
	Sort        *models.SortSpec
	Location    *models.Location
}

var filterKeys = []string{"q", "name", "county", "cuisine", "maxCritical", "maxDistance"}

// ParseQueryParams extracts filter, sort and location settings from the URL
// query. Filter parameters form a complete criteria set, a query that names
// any of them replaces all active criteria.
func ParseQueryParams(query url.Values) (QueryParams, error) {
	var p QueryParams

	for _, key := range filterKeys {
		if query.Has(key) {
			p.HasCriteria = true
			break
		}
	}

	p.Criteria.NameQuery = query.Get("name")
	if p.Criteria.NameQuery == "" {
		p.Criteria.NameQuery = query.Get("q")
	}
	p.Criteria.County = query.Get("county")
	p.Criteria.Cuisine = query.Get("cuisine")

	if v := query.Get("maxCritical"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, fmt.Errorf("invalid maxCritical %q", v)
		}
		p.Criteria.MaxCriticalViolations = &n
	}
	if v := query.Get("maxDistance"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d < 0 {
			return p, fmt.Errorf("invalid maxDistance %q", v)
		}
		p.Criteria.MaxDistanceMiles = &d
	}

	latStr, lngStr := query.Get("lat"), query.Get("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return p, fmt.Errorf("invalid lat/lng %q,%q", latStr, lngStr)
		}
		p.Location = &models.Location{Lat: lat, Lng: lng}
	}

	if v := query.Get("sort"); v != "" {
		column, err := models.ParseSortColumn(v)
		if err != nil {
			return p, err
		}
		direction, err := models.ParseSortDirection(query.Get("dir"))
		if err != nil {
			return p, err
		}
		p.Sort = &models.SortSpec{Column: column, Direction: direction}
	}

	return p, nil
}
