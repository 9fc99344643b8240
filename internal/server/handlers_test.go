package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akobyl/KitchenCard/internal/models"
	"github.com/akobyl/KitchenCard/internal/view"
)

func testDataset() models.Dataset {
	return models.Dataset{
		LastUpdated: time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC),
		Restaurants: []models.Restaurant{
			{
				ID: "tb", Name: "Taco Bell", Address: "1 Euclid Ave", County: "Cuyahoga", Cuisine: "Mexican",
				Lat: 41.4993, Lng: -81.6944,
				Inspections: []models.Inspection{
					{Date: models.NewDate(2024, time.April, 2), CriticalViolations: 6},
				},
			},
			{
				ID: "ph", Name: "Pizza Hut", Address: "100 Main St", County: "Summit", Cuisine: "Italian",
				Lat: 41.09, Lng: -81.52,
				Inspections: []models.Inspection{
					{Date: models.NewDate(2024, time.March, 1), CriticalViolations: 1},
				},
			},
			{
				ID: "new", Name: "Brand New Cafe", Address: "5 Side St", County: "Summit", Cuisine: "French",
				Lat: 41.08, Lng: -81.51,
			},
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(view.NewState(testDataset()), nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getSnapshot(t *testing.T, ts *httptest.Server, path string) models.ViewSnapshot {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s = %d", path, resp.StatusCode)
	}
	var snap models.ViewSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	return snap
}

func postSnapshot(t *testing.T, ts *httptest.Server, path, body string) models.ViewSnapshot {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s = %d", path, resp.StatusCode)
	}
	var snap models.ViewSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	return snap
}

func rowIDs(snap models.ViewSnapshot) []string {
	ids := make([]string, len(snap.Restaurants))
	for i, r := range snap.Restaurants {
		ids[i] = r.ID
	}
	return ids
}

func TestGetRestaurantsDefaultView(t *testing.T) {
	ts := newTestServer(t)

	snap := getSnapshot(t, ts, "/api/restaurants")
	if snap.TotalCount != 3 || snap.FilteredCount != 3 {
		t.Fatalf("counts = %d/%d, want 3/3", snap.FilteredCount, snap.TotalCount)
	}
	// Default name-ascending order.
	ids := rowIDs(snap)
	if ids[0] != "new" || ids[1] != "ph" || ids[2] != "tb" {
		t.Errorf("order = %v", ids)
	}
}

func TestGetRestaurantsWithQueryFilters(t *testing.T) {
	ts := newTestServer(t)

	snap := getSnapshot(t, ts, "/api/restaurants?county=Summit&maxCritical=2")
	ids := rowIDs(snap)
	if len(ids) != 1 || ids[0] != "ph" {
		t.Fatalf("filtered ids = %v, want [ph]", ids)
	}
	if snap.Criteria.County != "Summit" {
		t.Errorf("echoed criteria = %+v", snap.Criteria)
	}

	// An empty filter query resets the criteria.
	snap = getSnapshot(t, ts, "/api/restaurants?county=")
	if snap.FilteredCount != 3 {
		t.Errorf("count after reset = %d, want 3", snap.FilteredCount)
	}
}

func TestGetRestaurantsRejectsBadParams(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{
		"/api/restaurants?maxCritical=banana",
		"/api/restaurants?maxCritical=-1",
		"/api/restaurants?maxDistance=-2",
		"/api/restaurants?sort=rating",
		"/api/restaurants?sort=name&dir=sideways",
		"/api/restaurants?lat=x&lng=-81.5",
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", path, resp.StatusCode)
		}
	}
}

func TestGetRestaurantByID(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/restaurants/ph")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var r models.Restaurant
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		t.Fatal(err)
	}
	if r.Name != "Pizza Hut" || len(r.Inspections) != 1 {
		t.Errorf("restaurant = %+v", r)
	}
}

func TestGetRestaurantByIDNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/restaurants/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["error"] == "" {
		t.Error("404 body has no error message")
	}
}

func TestPostFilters(t *testing.T) {
	ts := newTestServer(t)

	snap := postSnapshot(t, ts, "/api/filters", `{"maxCriticalViolations": 2}`)
	// Uninspected and over-ceiling restaurants drop out.
	ids := rowIDs(snap)
	if len(ids) != 1 || ids[0] != "ph" {
		t.Fatalf("filtered ids = %v, want [ph]", ids)
	}
}

func TestPostFiltersRejectsNegativeCeiling(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/filters", "application/json", bytes.NewBufferString(`{"maxCriticalViolations": -3}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPostSortTogglesDirection(t *testing.T) {
	ts := newTestServer(t)

	snap := postSnapshot(t, ts, "/api/sort/violations", "")
	if snap.Sort.Column != models.SortByViolations || snap.Sort.Direction != models.SortAscending {
		t.Fatalf("first sort = %+v", snap.Sort)
	}
	ids := rowIDs(snap)
	if ids[0] != "new" || ids[2] != "tb" {
		t.Errorf("ascending order = %v", ids)
	}

	snap = postSnapshot(t, ts, "/api/sort/violations", "")
	if snap.Sort.Direction != models.SortDescending {
		t.Fatalf("second sort = %+v", snap.Sort)
	}
	ids = rowIDs(snap)
	if ids[0] != "tb" {
		t.Errorf("descending order = %v", ids)
	}

	snap = postSnapshot(t, ts, "/api/sort/name", "")
	if snap.Sort.Column != models.SortByName || snap.Sort.Direction != models.SortAscending {
		t.Fatalf("new column sort = %+v", snap.Sort)
	}
}

func TestPostSortUnknownColumn(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/sort/rating", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPostLocationEnablesDistance(t *testing.T) {
	ts := newTestServer(t)

	snap := postSnapshot(t, ts, "/api/location", `{"lat": 41.0814, "lng": -81.5190}`)
	if snap.UserLocation == nil {
		t.Fatal("snapshot has no user location")
	}
	for _, row := range snap.Restaurants {
		if row.DistanceMiles == nil {
			t.Errorf("row %s missing distance", row.ID)
		}
	}

	// Distance sort now has keys to work with.
	snap = postSnapshot(t, ts, "/api/sort/distance", "")
	ids := rowIDs(snap)
	if ids[len(ids)-1] != "tb" {
		t.Errorf("distance order = %v, want tb last", ids)
	}
}

func TestPostLocationFailureLeavesStateAlone(t *testing.T) {
	ts := newTestServer(t)

	snap := postSnapshot(t, ts, "/api/location", `{"error": "permission denied"}`)
	if snap.UserLocation != nil {
		t.Fatal("failed geolocation set a user location")
	}
	if snap.FilteredCount != 3 {
		t.Errorf("filtered count = %d, want 3", snap.FilteredCount)
	}
}

func TestDeleteLocation(t *testing.T) {
	ts := newTestServer(t)

	postSnapshot(t, ts, "/api/location", `{"lat": 41.0814, "lng": -81.5190}`)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/location", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var snap models.ViewSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.UserLocation != nil {
		t.Error("user location still set after delete")
	}
	for _, row := range snap.Restaurants {
		if row.DistanceMiles != nil {
			t.Errorf("row %s still has a distance", row.ID)
		}
	}
}

func TestMeta(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/meta")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var meta struct {
		Counties    []string `json:"counties"`
		Cuisines    []string `json:"cuisines"`
		SortColumns []string `json:"sort_columns"`
		TotalCount  int      `json:"total_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		t.Fatal(err)
	}
	if len(meta.Counties) != 2 || meta.Counties[0] != "Cuyahoga" {
		t.Errorf("counties = %v", meta.Counties)
	}
	if len(meta.SortColumns) != 7 {
		t.Errorf("sort columns = %v", meta.SortColumns)
	}
	if meta.TotalCount != 3 {
		t.Errorf("total = %d", meta.TotalCount)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("health = %v", body)
	}
}

func TestCORSHeaders(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/restaurants", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the requesting origin", got)
	}

	req.Header.Set("Origin", "http://evil.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unlisted origin got Access-Control-Allow-Origin = %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "kitchencard_restaurants_loaded") {
		t.Error("metrics output is missing the dataset gauge")
	}
}
