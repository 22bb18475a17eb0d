package wire

import (
	"context"
	"net/http"
	"time"

	"restaurant-review/internal/adaptor"
	"restaurant-review/internal/data/repository"
	"restaurant-review/internal/provider/geolocation"
	"restaurant-review/internal/usecase"
	"restaurant-review/pkg/middleware"
	"restaurant-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and mounts every route.
func Wiring(repo *repository.Repository, geo geolocation.Provider, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, geo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, repo, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Metrics())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	authRequired := middleware.AuthSession(service.Auth, logger)

	wireUser(r, handler.User, handler.Auth, handler.Review, authRequired)
	wireReview(r, handler.Review)
	wireRestaurant(r, handler.Restaurant, handler.Review)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := repo.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			utils.ResponseServiceUnavailable(w, "store unreachable")
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
