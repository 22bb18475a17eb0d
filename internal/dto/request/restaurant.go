package request

type NearbyRestaurantsRequest struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
	Radius    int     `validate:"min=1,max=50000"`
}
