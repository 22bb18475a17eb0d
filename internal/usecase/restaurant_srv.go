package usecase

import (
	"context"

	"restaurant-review/internal/data/entity"
	"restaurant-review/internal/data/repository"
	"restaurant-review/internal/dto/request"
	"restaurant-review/internal/dto/response"
	"restaurant-review/internal/provider/geolocation"
	"restaurant-review/pkg/apperror"
	"restaurant-review/pkg/utils"

	"go.uber.org/zap"
)

type RestaurantService interface {
	GetRestaurant(ctx context.Context, restaurantID string) (*response.RestaurantResponse, error)
	// FindNearby queries the provider directly and stores nothing.
	FindNearby(ctx context.Context, req *request.NearbyRestaurantsRequest) (*response.ListRestaurantsResponse, error)
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	geo            geolocation.Provider
	log            *zap.Logger
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository, geo geolocation.Provider, log *zap.Logger) RestaurantService {
	return &restaurantService{
		restaurantRepo: restaurantRepo,
		geo:            geo,
		log:            log.With(zap.String("service", "restaurant")),
	}
}

func (s *restaurantService) GetRestaurant(ctx context.Context, restaurantID string) (*response.RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, storeError(err, "restaurant", apperror.RestaurantStore)
	}

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}

func (s *restaurantService) FindNearby(ctx context.Context, req *request.NearbyRestaurantsRequest) (*response.ListRestaurantsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	places, err := s.geo.NearbyRestaurants(ctx, req.Latitude, req.Longitude, req.Radius)
	if err != nil {
		s.log.Error("Nearby search failed",
			zap.Error(err),
			zap.Float64("latitude", req.Latitude),
			zap.Float64("longitude", req.Longitude),
			zap.Int("radius", req.Radius),
		)
		return nil, apperror.Unavailable(apperror.GeolocationProvider, err)
	}

	restaurants := make([]response.RestaurantResponse, len(places))
	for i, place := range places {
		restaurants[i] = response.RestaurantToResponse(&entity.Restaurant{
			ID:        place.ID,
			Name:      place.Name,
			Latitude:  place.Latitude,
			Longitude: place.Longitude,
			Address:   place.FormattedAddress,
		})
	}

	return &response.ListRestaurantsResponse{Restaurants: restaurants, Count: len(restaurants)}, nil
}
