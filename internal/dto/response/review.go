package response

import (
	"time"

	"restaurant-review/internal/data/entity"
)

type ReviewResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	RestaurantID string    `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	FavoriteFood string    `json:"favorite_food"`
	Starred      bool      `json:"starred"`
	Content      *string   `json:"content,omitempty"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReviewDetailResponse embeds the author and the restaurant as they were
// when the review was written.
type ReviewDetailResponse struct {
	ReviewResponse
	User       UserResponse       `json:"user"`
	Restaurant RestaurantResponse `json:"restaurant"`
}

type ReviewImageResponse struct {
	ReviewID string  `json:"review_id"`
	PhotoURL *string `json:"photo_url"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID,
		Username:     review.Username,
		RestaurantID: review.RestaurantID,
		Rating:       review.Rating,
		FavoriteFood: review.FavoriteFood,
		Starred:      review.Starred,
		Content:      review.Content,
		PhotoURL:     review.PhotoURL,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
}

func ReviewToDetailResponse(review *entity.Review) ReviewDetailResponse {
	return ReviewDetailResponse{
		ReviewResponse: ReviewToResponse(review),
		User:           UserToResponse(&review.Author),
		Restaurant:     RestaurantToResponse(&review.Restaurant),
	}
}

func ReviewsToDetailResponses(reviews []*entity.Review) []ReviewDetailResponse {
	out := make([]ReviewDetailResponse, len(reviews))
	for i, review := range reviews {
		out[i] = ReviewToDetailResponse(review)
	}
	return out
}
