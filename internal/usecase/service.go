package usecase

import (
	"errors"

	"restaurant-review/internal/data/repository"
	"restaurant-review/internal/provider/geolocation"
	"restaurant-review/pkg/apperror"
	"restaurant-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Review     ReviewService
	Restaurant RestaurantService
}

func NewService(repo *repository.Repository, geo geolocation.Provider, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo, config, log),
		User:       NewUserService(repo, log),
		Review:     NewReviewService(repo, geo, log),
		Restaurant: NewRestaurantService(repo.Restaurant, geo, log),
	}
}

// storeError turns a repository failure into NotFound(entity) for a missing
// item and Unavailable(dependency) for anything else.
func storeError(err error, entity, dependency string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(entity)
	}
	return apperror.Unavailable(dependency, err)
}

func validationError(errs map[string]string) error {
	return apperror.Validation("validation failed: " + utils.FormatValidationErrors(errs))
}
