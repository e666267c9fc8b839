package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dinefind/dinefind/internal/service"
	"github.com/dinefind/dinefind/pkg/httputil"
	"github.com/dinefind/dinefind/pkg/middleware"
)

// FavoriteHandler handles HTTP requests for favorite endpoints.
type FavoriteHandler struct {
	service *service.FavoriteService
	logger  *slog.Logger
}

// NewFavoriteHandler creates a new favorite HTTP handler.
func NewFavoriteHandler(svc *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: svc,
		logger:  logger,
	}
}

// ToggleResponse reports the favorite state after a toggle.
type ToggleResponse struct {
	RestaurantID string `json:"restaurant_id"`
	Favorited    bool   `json:"favorited"`
}

// Toggle handles POST /api/v1/users/favorites/{restaurantId}/toggle
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := httputil.ParseUUID(w, chi.URLParam(r, "restaurantId"))
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())

	favorited, err := h.service.Toggle(r.Context(), userID, restaurantID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ToggleResponse{
		RestaurantID: restaurantID.String(),
		Favorited:    favorited,
	}})
}

// Status handles GET /api/v1/users/favorites/{restaurantId}
func (h *FavoriteHandler) Status(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := httputil.ParseUUID(w, chi.URLParam(r, "restaurantId"))
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())

	favorited, err := h.service.Status(r.Context(), userID, restaurantID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ToggleResponse{
		RestaurantID: restaurantID.String(),
		Favorited:    favorited,
	}})
}

// List handles GET /api/v1/users/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	page, perPage := parsePagination(r)

	favorites, total, err := h.service.ListByUser(r.Context(), userID, page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(favorites, total, page, perPage))
}
