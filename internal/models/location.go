package models

// Location is a geographic point in floating-point degrees. Field names
// follow the dataset contract, which uses lat/lng rather than lat/lon.
type Location struct {
	Lat float64 `json:"lat" parquet:"name=lat,type=DOUBLE"`
	Lng float64 `json:"lng" parquet:"name=lng,type=DOUBLE"`
}
