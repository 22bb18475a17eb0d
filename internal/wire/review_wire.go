package wire

import (
	"restaurant-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", reviewHandler.CreateReview)
		r.Get("/{id}", reviewHandler.GetReview)
		r.Put("/{id}", reviewHandler.UpdateReview)
		r.Delete("/{id}", reviewHandler.DeleteReview)
		r.Post("/{id}/image", reviewHandler.UploadImage)
		r.Delete("/{id}/image", reviewHandler.DeleteImage)
	})
}
