package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/repository"
	"github.com/dinefind/dinefind/internal/service"
	"github.com/dinefind/dinefind/pkg/httputil"
)

// RestaurantHandler handles HTTP requests for restaurant endpoints.
type RestaurantHandler struct {
	service *service.RestaurantService
	logger  *slog.Logger
}

// NewRestaurantHandler creates a new restaurant HTTP handler.
func NewRestaurantHandler(svc *service.RestaurantService, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: svc,
		logger:  logger,
	}
}

// ListRestaurants handles GET /api/v1/restaurants
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	filter := repository.RestaurantFilter{Page: page, PerPage: perPage}

	if v := r.URL.Query().Get("status"); v != "" {
		if !slices.Contains(domain.ValidRestaurantStatuses(), v) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "INVALID_INPUT",
					Message: "status must be one of: " + strings.Join(domain.ValidRestaurantStatuses(), ", "),
				},
			})
			return
		}
		filter.Status = &v
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}

	restaurants, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(restaurants, total, page, perPage))
}

// GetRestaurant handles GET /api/v1/restaurants/{id}
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	restaurant, err := h.service.Get(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: restaurant})
}

// PopularRestaurants handles GET /api/v1/restaurants/popular
func (h *RestaurantHandler) PopularRestaurants(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "limit must be an integer between 1 and 50"},
			})
			return
		}
		limit = n
	}

	restaurants, err := h.service.Popular(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: restaurants})
}
