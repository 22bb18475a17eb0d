package wire

import (
	"restaurant-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRestaurant(r chi.Router, restaurantHandler *adaptor.RestaurantHandler, reviewHandler *adaptor.ReviewHandler) {
	r.Route("/restaurants", func(r chi.Router) {
		r.Get("/", restaurantHandler.FindNearby) // ?latitude=&longitude=&radius=
		r.Get("/{id}", restaurantHandler.GetRestaurant)
		r.Get("/{id}/reviews", reviewHandler.GetRestaurantReviews)
	})
}
