package usecase

import (
	"context"
	"errors"
	"time"

	"restaurant-review/internal/data/entity"
	"restaurant-review/internal/data/repository"
	"restaurant-review/internal/dto/request"
	"restaurant-review/internal/dto/response"
	"restaurant-review/internal/provider/geolocation"
	"restaurant-review/pkg/apperror"
	"restaurant-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewDetailResponse, error)
	GetReview(ctx context.Context, reviewID string) (*response.ReviewDetailResponse, error)
	UpdateReview(ctx context.Context, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewDetailResponse, error)
	DeleteReview(ctx context.Context, reviewID string) error

	// Images
	SetReviewImage(ctx context.Context, reviewID string, req *request.ReviewImageRequest) (*response.ReviewImageResponse, error)
	DeleteReviewImage(ctx context.Context, reviewID string) error

	// Listings, newest first
	GetUserReviews(ctx context.Context, username string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewDetailResponse], error)
	GetRestaurantReviews(ctx context.Context, restaurantID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewDetailResponse], error)
}

type reviewService struct {
	repo  *repository.Repository
	geo   geolocation.Provider
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

func NewReviewService(repo *repository.Repository, geo geolocation.Provider, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:  repo,
		geo:   geo,
		log:   log.With(zap.String("service", "review")),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// CreateReview resolves the author and the restaurant, creating the
// restaurant from the geolocation provider on first sight, then stores a new
// review. A restaurant written here stays even if the review write fails.
func (s *reviewService) CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error("Failed to load review author", zap.Error(err), zap.String("username", req.Username))
		}
		return nil, storeError(err, "user", apperror.UserStore)
	}

	restaurant, err := s.resolveRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	review := &entity.Review{
		ID: s.newID(),
		Timestamps: entity.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     user.Username,
		RestaurantID: restaurant.ID,
		Rating:       req.Rating,
		FavoriteFood: req.FavoriteFood,
		Starred:      req.Starred,
		Content:      req.Content,
		PhotoURL:     req.PhotoURL,
		Author: entity.User{
			ID:        user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
		Restaurant: *restaurant,
	}

	if err := s.repo.Review.Save(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("username", user.Username),
			zap.String("restaurant_id", restaurant.ID),
		)
		return nil, apperror.Unavailable(apperror.ReviewStore, err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID),
		zap.String("username", user.Username),
		zap.String("restaurant_id", restaurant.ID),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToDetailResponse(review)
	return &resp, nil
}

// resolveRestaurant returns the stored restaurant keyed by externalID. On a
// miss it asks the provider once and upserts the result. Concurrent callers
// may both insert; the last write wins with equivalent data.
func (s *reviewService) resolveRestaurant(ctx context.Context, externalID string) (*entity.Restaurant, error) {
	restaurant, err := s.repo.Restaurant.FindByID(ctx, externalID)
	if err == nil {
		return restaurant, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("Failed to load restaurant", zap.Error(err), zap.String("restaurant_id", externalID))
		return nil, apperror.Unavailable(apperror.RestaurantStore, err)
	}

	place, err := s.geo.PlaceDetails(ctx, externalID)
	if err != nil {
		s.log.Error("Geolocation lookup failed", zap.Error(err), zap.String("restaurant_id", externalID))
		return nil, apperror.Unavailable(apperror.GeolocationProvider, err)
	}

	restaurant = &entity.Restaurant{
		ID:        externalID,
		Name:      place.Name,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Address:   place.FormattedAddress,
	}

	if err := s.repo.Restaurant.Save(ctx, restaurant); err != nil {
		s.log.Error("Failed to store restaurant", zap.Error(err), zap.String("restaurant_id", externalID))
		return nil, apperror.Unavailable(apperror.RestaurantStore, err)
	}

	s.log.Info("Restaurant created",
		zap.String("restaurant_id", restaurant.ID),
		zap.String("name", restaurant.Name),
	)

	return restaurant, nil
}

func (s *reviewService) GetReview(ctx context.Context, reviewID string) (*response.ReviewDetailResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, storeError(err, "review", apperror.ReviewStore)
	}

	resp := response.ReviewToDetailResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, storeError(err, "review", apperror.ReviewStore)
	}

	updated := false

	if req.Rating != nil && *req.Rating != review.Rating {
		review.Rating = *req.Rating
		updated = true
	}

	if req.FavoriteFood != nil && *req.FavoriteFood != review.FavoriteFood {
		review.FavoriteFood = *req.FavoriteFood
		updated = true
	}

	if req.Starred != nil && *req.Starred != review.Starred {
		review.Starred = *req.Starred
		updated = true
	}

	if req.Content != nil {
		review.Content = req.Content
		updated = true
	}

	if req.PhotoURL != nil {
		review.PhotoURL = req.PhotoURL
		updated = true
	}

	if !updated {
		resp := response.ReviewToDetailResponse(review)
		return &resp, nil
	}

	review.UpdatedAt = s.now().UTC()

	if err := s.repo.Review.Save(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, apperror.Unavailable(apperror.ReviewStore, err)
	}

	s.log.Info("Review updated", zap.String("review_id", reviewID))

	resp := response.ReviewToDetailResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		}
		return storeError(err, "review", apperror.ReviewStore)
	}
	return nil
}

func (s *reviewService) SetReviewImage(ctx context.Context, reviewID string, req *request.ReviewImageRequest) (*response.ReviewImageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, storeError(err, "review", apperror.ReviewStore)
	}

	photoURL := req.PhotoURL
	review.PhotoURL = &photoURL
	review.UpdatedAt = s.now().UTC()

	if err := s.repo.Review.Save(ctx, review); err != nil {
		s.log.Error("Failed to set review image", zap.Error(err), zap.String("review_id", reviewID))
		return nil, apperror.Unavailable(apperror.ReviewStore, err)
	}

	return &response.ReviewImageResponse{ReviewID: review.ID, PhotoURL: review.PhotoURL}, nil
}

// DeleteReviewImage reports NotFound when the review has no image.
func (s *reviewService) DeleteReviewImage(ctx context.Context, reviewID string) error {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return storeError(err, "review", apperror.ReviewStore)
	}
	if review.PhotoURL == nil {
		return apperror.NotFound("image")
	}

	review.PhotoURL = nil
	review.UpdatedAt = s.now().UTC()

	if err := s.repo.Review.Save(ctx, review); err != nil {
		s.log.Error("Failed to delete review image", zap.Error(err), zap.String("review_id", reviewID))
		return apperror.Unavailable(apperror.ReviewStore, err)
	}
	return nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, username string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewDetailResponse], error) {
	if _, err := s.repo.User.FindByUsername(ctx, username); err != nil {
		return nil, storeError(err, "user", apperror.UserStore)
	}

	reviews, err := s.repo.Review.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to get user reviews", zap.Error(err), zap.String("username", username))
		return nil, apperror.Unavailable(apperror.ReviewStore, err)
	}

	return paginate(response.ReviewsToDetailResponses(reviews), req), nil
}

func (s *reviewService) GetRestaurantReviews(ctx context.Context, restaurantID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewDetailResponse], error) {
	if _, err := s.repo.Restaurant.FindByID(ctx, restaurantID); err != nil {
		return nil, storeError(err, "restaurant", apperror.RestaurantStore)
	}

	reviews, err := s.repo.Review.FindByRestaurantID(ctx, restaurantID)
	if err != nil {
		s.log.Error("Failed to get restaurant reviews", zap.Error(err), zap.String("restaurant_id", restaurantID))
		return nil, apperror.Unavailable(apperror.ReviewStore, err)
	}

	return paginate(response.ReviewsToDetailResponses(reviews), req), nil
}
