package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/service"
	"github.com/dinefind/dinefind/pkg/health"
	"github.com/dinefind/dinefind/pkg/middleware"
)

// NewRouter creates a chi router with all API routes registered.
func NewRouter(
	restaurantService *service.RestaurantService,
	reviewService *service.ReviewService,
	favoriteService *service.FavoriteService,
	tokenValidator middleware.TokenValidator,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("dinefind"))

	// Health check and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	restaurantHandler := NewRestaurantHandler(restaurantService, logger)
	reviewHandler := NewReviewHandler(reviewService, logger)
	favoriteHandler := NewFavoriteHandler(favoriteService, logger)

	// Public restaurant directory endpoints
	r.Route("/api/v1/restaurants", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", restaurantHandler.ListRestaurants)
		r.Get("/popular", restaurantHandler.PopularRestaurants)
		r.Get("/{id}", restaurantHandler.GetRestaurant)
		r.Get("/{restaurantId}/reviews", reviewHandler.ListRestaurantReviews)

		// Submitting a review requires authentication.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Post("/{restaurantId}/reviews", reviewHandler.CreateReview)
		})
	})

	// Authenticated user endpoints
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/reviews", reviewHandler.ListMyReviews)
		r.Delete("/reviews/{id}", reviewHandler.DeleteMyReview)

		r.Get("/favorites", favoriteHandler.List)
		r.Get("/favorites/{restaurantId}", favoriteHandler.Status)
		r.Post("/favorites/{restaurantId}/toggle", favoriteHandler.Toggle)
	})

	// Admin endpoints
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))
		r.Use(middleware.RequireRole(domain.RoleAdmin))

		r.Get("/reviews", reviewHandler.AdminListReviews)
		r.Delete("/reviews/{id}", reviewHandler.AdminDeleteReview)
	})

	return r
}
