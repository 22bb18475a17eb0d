package repository

import (
	"context"
	"fmt"
	"sort"

	"restaurant-review/internal/data/entity"
	"restaurant-review/pkg/kvstore"

	"go.uber.org/zap"
)

type ReviewRepository interface {
	Save(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id string) (*entity.Review, error)
	FindByUsername(ctx context.Context, username string) ([]*entity.Review, error)
	FindByRestaurantID(ctx context.Context, restaurantID string) ([]*entity.Review, error)
	Delete(ctx context.Context, id string) error
}

type reviewRepository struct {
	store kvstore.Store
	log   *zap.Logger
}

func NewReviewRepository(store kvstore.Store, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		store: store,
		log:   log.With(zap.String("repository", "review")),
	}
}

// Save writes the review with its author and restaurant snapshots. Content
// and PhotoURL are only stored when set.
func (r *reviewRepository) Save(ctx context.Context, review *entity.Review) error {
	item := kvstore.Item{
		"id":            review.ID,
		"created_at":    formatTimestamp(review.CreatedAt),
		"updated_at":    formatTimestamp(review.UpdatedAt),
		"username":      review.Username,
		"restaurant_id": review.RestaurantID,
		"rating":        review.Rating,
		"favorite_food": review.FavoriteFood,
		"starred":       review.Starred,

		"user_id":         review.Author.ID,
		"user_first_name": review.Author.FirstName,
		"user_last_name":  review.Author.LastName,
		"user_email":      review.Author.Email,

		"restaurant_name":      review.Restaurant.Name,
		"restaurant_latitude":  review.Restaurant.Latitude,
		"restaurant_longitude": review.Restaurant.Longitude,
		"restaurant_address":   review.Restaurant.Address,
	}
	if review.Content != nil {
		item["content"] = *review.Content
	}
	if review.PhotoURL != nil {
		item["photo_url"] = *review.PhotoURL
	}

	if err := r.store.Put(ctx, ReviewTable, review.ID, item); err != nil {
		return fmt.Errorf("save review %s for restaurant %s by user %s: %w",
			review.ID, review.RestaurantID, review.Username, err)
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	item, err := r.store.Get(ctx, ReviewTable, id)
	if err != nil {
		return nil, fmt.Errorf("find review %s: %w", id, err)
	}
	return reviewFromItem(item)
}

func (r *reviewRepository) FindByUsername(ctx context.Context, username string) ([]*entity.Review, error) {
	items, err := r.store.Query(ctx, ReviewTable, "username", username)
	if err != nil {
		return nil, fmt.Errorf("find reviews by user %s: %w", username, err)
	}
	return reviewsFromItems(items)
}

func (r *reviewRepository) FindByRestaurantID(ctx context.Context, restaurantID string) ([]*entity.Review, error) {
	items, err := r.store.Query(ctx, ReviewTable, "restaurant_id", restaurantID)
	if err != nil {
		return nil, fmt.Errorf("find reviews by restaurant %s: %w", restaurantID, err)
	}
	return reviewsFromItems(items)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, ReviewTable, id); err != nil {
		return fmt.Errorf("delete review %s: %w", id, err)
	}

	r.log.Info("Review deleted", zap.String("review_id", id))
	return nil
}

// reviewsFromItems decodes items newest first.
func reviewsFromItems(items []kvstore.Item) ([]*entity.Review, error) {
	reviews := make([]*entity.Review, 0, len(items))
	for _, item := range items {
		review, err := reviewFromItem(item)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].ID < reviews[j].ID
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	return reviews, nil
}

func reviewFromItem(item kvstore.Item) (*entity.Review, error) {
	createdAt, err := timeAttr(item, "created_at")
	if err != nil {
		return nil, fmt.Errorf("decode review %s: %w", stringAttr(item, "id"), err)
	}
	updatedAt, err := timeAttr(item, "updated_at")
	if err != nil {
		return nil, fmt.Errorf("decode review %s: %w", stringAttr(item, "id"), err)
	}

	username := stringAttr(item, "username")
	restaurantID := stringAttr(item, "restaurant_id")

	return &entity.Review{
		ID: stringAttr(item, "id"),
		Timestamps: entity.Timestamps{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		Username:     username,
		RestaurantID: restaurantID,
		Rating:       int(floatAttr(item, "rating")),
		FavoriteFood: stringAttr(item, "favorite_food"),
		Starred:      boolAttr(item, "starred"),
		Content:      optionalStringAttr(item, "content"),
		PhotoURL:     optionalStringAttr(item, "photo_url"),
		Author: entity.User{
			ID:        stringAttr(item, "user_id"),
			Username:  username,
			FirstName: stringAttr(item, "user_first_name"),
			LastName:  stringAttr(item, "user_last_name"),
			Email:     stringAttr(item, "user_email"),
		},
		Restaurant: entity.Restaurant{
			ID:        restaurantID,
			Name:      stringAttr(item, "restaurant_name"),
			Latitude:  floatAttr(item, "restaurant_latitude"),
			Longitude: floatAttr(item, "restaurant_longitude"),
			Address:   stringAttr(item, "restaurant_address"),
		},
	}, nil
}
