package adaptor

import (
	"net/http"
	"strconv"

	"restaurant-review/internal/dto/request"
	"restaurant-review/internal/usecase"
	"restaurant-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RestaurantHandler struct {
	service usecase.RestaurantService
	log     *zap.Logger
}

func NewRestaurantHandler(service usecase.RestaurantService, log *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		log:     log.With(zap.String("handler", "restaurant")),
	}
}

// FindNearby handles GET /restaurants?latitude=&longitude=&radius=
func (h *RestaurantHandler) FindNearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	errs := make(map[string]string)

	latitude, err := strconv.ParseFloat(query.Get("latitude"), 64)
	if err != nil {
		errs["latitude"] = "Must be a number"
	}
	longitude, err := strconv.ParseFloat(query.Get("longitude"), 64)
	if err != nil {
		errs["longitude"] = "Must be a number"
	}
	radius, err := strconv.Atoi(query.Get("radius"))
	if err != nil {
		errs["radius"] = "Must be an integer"
	}
	if len(errs) > 0 {
		utils.ResponseBadRequest(w, "Invalid query supplied", errs)
		return
	}

	req := &request.NearbyRestaurantsRequest{Latitude: latitude, Longitude: longitude, Radius: radius}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	restaurants, err := h.service.FindNearby(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "find nearby restaurants")
		return
	}

	utils.ResponseSuccess(w, "success", restaurants)
}

// GetRestaurant handles GET /restaurants/{id}
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.service.GetRestaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get restaurant")
		return
	}

	utils.ResponseSuccess(w, "success", restaurant)
}
