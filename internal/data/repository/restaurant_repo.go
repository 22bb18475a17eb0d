package repository

import (
	"context"
	"fmt"

	"restaurant-review/internal/data/entity"
	"restaurant-review/pkg/kvstore"

	"go.uber.org/zap"
)

type RestaurantRepository interface {
	Save(ctx context.Context, restaurant *entity.Restaurant) error
	FindByID(ctx context.Context, id string) (*entity.Restaurant, error)
	Delete(ctx context.Context, id string) error
}

type restaurantRepository struct {
	store kvstore.Store
	log   *zap.Logger
}

func NewRestaurantRepository(store kvstore.Store, log *zap.Logger) RestaurantRepository {
	return &restaurantRepository{
		store: store,
		log:   log.With(zap.String("repository", "restaurant")),
	}
}

// Save is an unconditional upsert keyed by the provider place id.
func (r *restaurantRepository) Save(ctx context.Context, restaurant *entity.Restaurant) error {
	item := kvstore.Item{
		"id":        restaurant.ID,
		"name":      restaurant.Name,
		"latitude":  restaurant.Latitude,
		"longitude": restaurant.Longitude,
		"address":   restaurant.Address,
	}

	if err := r.store.Put(ctx, RestaurantTable, restaurant.ID, item); err != nil {
		return fmt.Errorf("save restaurant %s: %w", restaurant.ID, err)
	}
	return nil
}

func (r *restaurantRepository) FindByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	item, err := r.store.Get(ctx, RestaurantTable, id)
	if err != nil {
		return nil, fmt.Errorf("find restaurant %s: %w", id, err)
	}

	return &entity.Restaurant{
		ID:        stringAttr(item, "id"),
		Name:      stringAttr(item, "name"),
		Latitude:  floatAttr(item, "latitude"),
		Longitude: floatAttr(item, "longitude"),
		Address:   stringAttr(item, "address"),
	}, nil
}

func (r *restaurantRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, RestaurantTable, id); err != nil {
		return fmt.Errorf("delete restaurant %s: %w", id, err)
	}
	return nil
}
