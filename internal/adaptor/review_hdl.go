package adaptor

import (
	"net/http"

	"restaurant-review/internal/dto/request"
	"restaurant-review/internal/usecase"
	"restaurant-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// GetReview handles GET /reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// UpdateReview handles PUT /reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.service.UpdateReview(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated", review)
}

// DeleteReview handles DELETE /reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}

// UploadImage handles POST /reviews/{id}/image
func (h *ReviewHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewImageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	image, err := h.service.SetReviewImage(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "upload review image")
		return
	}

	utils.ResponseSuccess(w, "Image uploaded", image)
}

// DeleteImage handles DELETE /reviews/{id}/image
func (h *ReviewHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReviewImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete review image")
		return
	}

	utils.ResponseNoContent(w)
}

// GetUserReviews handles GET /users/{username}/reviews
func (h *ReviewHandler) GetUserReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetUserReviews(r.Context(), chi.URLParam(r, "username"), request.NewPaginatedRequest(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get user reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetRestaurantReviews handles GET /restaurants/{id}/reviews
func (h *ReviewHandler) GetRestaurantReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetRestaurantReviews(r.Context(), chi.URLParam(r, "id"), request.NewPaginatedRequest(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get restaurant reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}
