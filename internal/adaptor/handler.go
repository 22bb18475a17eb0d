package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant-review/internal/usecase"
	"restaurant-review/pkg/apperror"
	"restaurant-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Review     *ReviewHandler
	Restaurant *RestaurantHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Review:     NewReviewHandler(service.Review, log),
		Restaurant: NewRestaurantHandler(service.Restaurant, log),
	}
}

// decodeAndValidate writes a 400 response and returns false when the body
// cannot be decoded into req or fails validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// handleServiceError maps service errors to HTTP responses. Unavailable
// dependencies are logged by name and reported as a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch appErr.Kind {
	case apperror.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err), zap.String("operation", operation))
		utils.ResponseNotFound(w, appErr.Message)

	case apperror.KindValidation:
		log.Warn(operation+" validation failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseBadRequest(w, appErr.Message, nil)

	case apperror.KindConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err), zap.String("operation", operation))
		utils.ResponseConflict(w, appErr.Message)

	case apperror.KindUnauthorized:
		log.Warn(operation+" failed - unauthorized", zap.Error(err), zap.String("operation", operation))
		utils.ResponseUnauthorized(w, appErr.Message)

	case apperror.KindForbidden:
		log.Warn(operation+" failed - forbidden", zap.Error(err), zap.String("operation", operation))
		utils.ResponseForbidden(w, appErr.Message)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("dependency", appErr.Subject),
		)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
