package entity

// Restaurant is keyed by the geolocation provider's place id, so two reviews
// of the same place always resolve to the same record.
type Restaurant struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	Address   string
}
