package request

type CreateReviewRequest struct {
	Username     string  `json:"username" validate:"required"`
	RestaurantID string  `json:"restaurant_id" validate:"required"`
	Rating       int     `json:"rating" validate:"required,min=1,max=5"`
	FavoriteFood string  `json:"favorite_food" validate:"required,max=200"`
	Starred      bool    `json:"starred"`
	Content      *string `json:"content,omitempty" validate:"omitempty,max=2000"`
	PhotoURL     *string `json:"photo_url,omitempty" validate:"omitempty,max=2048"`
}

// UpdateReviewRequest only changes the fields that are present.
type UpdateReviewRequest struct {
	Rating       *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	FavoriteFood *string `json:"favorite_food,omitempty" validate:"omitempty,min=1,max=200"`
	Starred      *bool   `json:"starred,omitempty"`
	Content      *string `json:"content,omitempty" validate:"omitempty,max=2000"`
	PhotoURL     *string `json:"photo_url,omitempty" validate:"omitempty,max=2048"`
}

type ReviewImageRequest struct {
	PhotoURL string `json:"photo_url" validate:"required,max=2048"`
}
