package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/repository"
	"github.com/dinefind/dinefind/internal/service"
	"github.com/dinefind/dinefind/pkg/httputil"
	"github.com/dinefind/dinefind/pkg/middleware"
	"github.com/dinefind/dinefind/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateReviewRequest is the JSON request body for submitting a review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=500"`
}

// --- Handlers ---

// CreateReview handles POST /api/v1/restaurants/{restaurantId}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := httputil.ParseUUID(w, chi.URLParam(r, "restaurantId"))
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.AddReview(r.Context(), service.AddReviewInput{
		UserID:       userID,
		RestaurantID: restaurantID.String(),
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// ListRestaurantReviews handles GET /api/v1/restaurants/{restaurantId}/reviews
func (h *ReviewHandler) ListRestaurantReviews(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := httputil.ParseUUID(w, chi.URLParam(r, "restaurantId"))
	if !ok {
		return
	}

	page, perPage := parsePagination(r)

	reviews, total, summary, err := h.service.RestaurantReviews(r.Context(), restaurantID.String(), page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := httputil.NewPaginatedResponse(reviews, total, page, perPage)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"data":        resp.Data,
		"summary":     summary,
		"total_count": resp.TotalCount,
		"page":        resp.Page,
		"per_page":    resp.PerPage,
		"total_pages": resp.TotalPages,
	})
}

// DeleteMyReview handles DELETE /api/v1/users/reviews/{id}
func (h *ReviewHandler) DeleteMyReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())

	result, err := h.service.RemoveReview(r.Context(), reviewID.String(), userID, false)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// ListMyReviews handles GET /api/v1/users/reviews
func (h *ReviewHandler) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	page, perPage := parsePagination(r)

	reviews, total, err := h.service.UserReviews(r.Context(), userID, page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(reviews, total, page, perPage))
}

// AdminDeleteReview handles DELETE /api/v1/admin/reviews/{id}
func (h *ReviewHandler) AdminDeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	adminID := middleware.UserIDFromContext(r.Context())

	result, err := h.service.RemoveReview(r.Context(), reviewID.String(), adminID, true)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// AdminListReviews handles GET /api/v1/admin/reviews
func (h *ReviewHandler) AdminListReviews(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	filter := repository.ReviewFilter{Page: page, PerPage: perPage}

	if v := r.URL.Query().Get("restaurant_id"); v != "" {
		filter.RestaurantID = &v
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := r.URL.Query().Get("min_rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil || !domain.IsValidRating(rating) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "min_rating must be an integer between 1 and 5"},
			})
			return
		}
		filter.MinRating = &rating
	}
	if v := r.URL.Query().Get("max_rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil || !domain.IsValidRating(rating) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "max_rating must be an integer between 1 and 5"},
			})
			return
		}
		filter.MaxRating = &rating
	}

	reviews, total, err := h.service.AllReviews(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(reviews, total, page, perPage))
}

func parsePagination(r *http.Request) (page, perPage int) {
	page = 1
	perPage = 20

	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if pp, err := strconv.Atoi(v); err == nil && pp > 0 && pp <= 100 {
			perPage = pp
		}
	}
	return page, perPage
}
