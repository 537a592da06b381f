package domain

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Venue is an exam venue with a known location.
type Venue struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Coordinates returns the venue's location.
func (v Venue) Coordinates() Coordinates {
	return Coordinates{Lat: v.Lat, Lng: v.Lng}
}

// MapView is an embeddable map URL plus the quota usage after serving it.
type MapView struct {
	URL          string
	RequestCount int
}

// MapUsage reports the map quota consumption for one day.
type MapUsage struct {
	Day   string // "2006-01-02" in the configured time zone
	Count int
	Limit int
}
