package wire

import (
	"net/http"

	"restaurant-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authHandler *adaptor.AuthHandler,
	reviewHandler *adaptor.ReviewHandler,
	authRequired func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/", userHandler.CreateUser)
		r.Post("/login", authHandler.Login)
		r.Get("/{username}", userHandler.GetUser)
		r.Get("/{username}/reviews", reviewHandler.GetUserReviews)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(authRequired)

			r.Post("/logout", authHandler.Logout)
			r.Put("/{username}", userHandler.UpdateUser)    // owner only
			r.Delete("/{username}", userHandler.DeleteUser) // owner only
		})
	})
}
