package response

import "restaurant-review/internal/data/entity"

type RestaurantResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

type ListRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	Count       int                  `json:"count"`
}

func RestaurantToResponse(restaurant *entity.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:        restaurant.ID,
		Name:      restaurant.Name,
		Latitude:  restaurant.Latitude,
		Longitude: restaurant.Longitude,
		Address:   restaurant.Address,
	}
}
