package repository

import (
	"context"
	"fmt"

	"restaurant-review/pkg/kvstore"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Restaurant RestaurantRepository
	Review     ReviewRepository
	Session    SessionRepository

	store kvstore.Store
}

func NewRepository(store kvstore.Store, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(store, log),
		Restaurant: NewRestaurantRepository(store, log),
		Review:     NewReviewRepository(store, log),
		Session:    NewSessionRepository(store, log),
		store:      store,
	}
}

// Bootstrap creates every table that does not exist yet.
func (r *Repository) Bootstrap(ctx context.Context) error {
	for _, table := range Tables() {
		if err := r.store.EnsureTable(ctx, table); err != nil {
			return fmt.Errorf("bootstrap %s: %w", table.Name, err)
		}
	}
	return nil
}

// Ping checks the backing store.
func (r *Repository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
