package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/repository"
	"github.com/dinefind/dinefind/internal/service"
	apperrors "github.com/dinefind/dinefind/pkg/errors"
	"github.com/dinefind/dinefind/pkg/health"
	"github.com/dinefind/dinefind/pkg/httputil"
	"github.com/dinefind/dinefind/pkg/middleware"
)

const (
	testRestaurantID = "3f1c9a2e-8d54-4b6f-9c01-2a7e5d8f1b23"
	testUserID       = "7b2d8c4f-1a3e-4f5b-8d6c-9e0f1a2b3c4d"
	testAdminID      = "9c4e1f6a-2b3d-4e5f-8a7b-0c1d2e3f4a5b"
	testReviewID     = "5a6b7c8d-9e0f-4a1b-8c2d-3e4f5a6b7c8d"

	userToken  = "valid-user-token"
	adminToken = "valid-admin-token"
)

// =============================================================================
// Mock repositories
// =============================================================================

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepo) DeleteOwned(ctx context.Context, reviewID, requesterID string, requesterIsAdmin bool) (string, error) {
	args := m.Called(ctx, reviewID, requesterID, requesterIsAdmin)
	return args.String(0), args.Error(1)
}

func (m *mockReviewRepo) RatingsByRestaurant(ctx context.Context, restaurantID string) ([]int, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockReviewRepo) ExistsByUserAndRestaurant(ctx context.Context, userID, restaurantID string) (bool, error) {
	args := m.Called(ctx, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListByRestaurantID(ctx context.Context, restaurantID string, page, perPage int) ([]domain.Review, int, error) {
	args := m.Called(ctx, restaurantID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepo) ListByUserID(ctx context.Context, userID string, page, perPage int) ([]domain.Review, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepo) List(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

type mockRestaurantRepo struct {
	mock.Mock
}

func (m *mockRestaurantRepo) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *mockRestaurantRepo) List(ctx context.Context, filter repository.RestaurantFilter) ([]domain.Restaurant, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Restaurant), args.Int(1), args.Error(2)
}

func (m *mockRestaurantRepo) ListPopular(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *mockRestaurantRepo) UpdateRatingSummary(ctx context.Context, restaurantID string, summary domain.RatingSummary) error {
	args := m.Called(ctx, restaurantID, summary)
	return args.Error(0)
}

type mockFavoriteRepo struct {
	mock.Mock
}

func (m *mockFavoriteRepo) Add(ctx context.Context, userID, restaurantID string) (bool, error) {
	args := m.Called(ctx, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, userID, restaurantID string) (bool, error) {
	args := m.Called(ctx, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepo) Exists(ctx context.Context, userID, restaurantID string) (bool, error) {
	args := m.Called(ctx, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID string, page, perPage int) ([]*domain.Favorite, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Favorite), args.Int(1), args.Error(2)
}

// =============================================================================
// Test helpers
// =============================================================================

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func stubTokenValidator(token string) (*middleware.Claims, error) {
	switch token {
	case userToken:
		return &middleware.Claims{UserID: testUserID, Email: "diner@example.com", Role: domain.RoleUser}, nil
	case adminToken:
		return &middleware.Claims{UserID: testAdminID, Email: "ops@example.com", Role: domain.RoleAdmin}, nil
	default:
		return nil, errors.New("invalid token")
	}
}

type testEnv struct {
	reviews     *mockReviewRepo
	restaurants *mockRestaurantRepo
	favorites   *mockFavoriteRepo
	router      http.Handler
}

func newTestEnv() *testEnv {
	logger := handlerTestLogger()
	reviews := new(mockReviewRepo)
	restaurants := new(mockRestaurantRepo)
	favorites := new(mockFavoriteRepo)

	aggregator := service.NewRatingAggregator(reviews, restaurants, nil, logger)
	reviewService := service.NewReviewService(reviews, restaurants, aggregator, nil, logger)
	favoriteService := service.NewFavoriteService(favorites, restaurants, nil, logger)
	restaurantService := service.NewRestaurantService(restaurants, nil, logger)

	router := NewRouter(
		restaurantService,
		reviewService,
		favoriteService,
		stubTokenValidator,
		health.NewHandler(),
		logger,
		middleware.DefaultCORSConfig(),
	)

	return &testEnv{
		reviews:     reviews,
		restaurants: restaurants,
		favorites:   favorites,
		router:      router,
	}
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func sampleRestaurant() *domain.Restaurant {
	now := time.Now().UTC()
	return &domain.Restaurant{
		ID:            testRestaurantID,
		Name:          "Harvest Table",
		Description:   "Seasonal plates",
		Address:       "12 Market Street",
		Status:        domain.RestaurantStatusActive,
		AverageRating: 4.5,
		TotalReviews:  12,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// =============================================================================
// POST /api/v1/restaurants/{restaurantId}/reviews
// =============================================================================

func TestCreateReview_Success(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).Return(sampleRestaurant(), nil)
	env.reviews.On("ExistsByUserAndRestaurant", mock.Anything, testUserID, testRestaurantID).Return(false, nil)
	env.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	env.reviews.On("RatingsByRestaurant", mock.Anything, testRestaurantID).Return([]int{5}, nil)
	env.restaurants.On("UpdateRatingSummary", mock.Anything, testRestaurantID,
		domain.RatingSummary{AverageRating: 5.0, TotalReviews: 1}).Return(nil)

	rec := env.do(http.MethodPost, "/api/v1/restaurants/"+testRestaurantID+"/reviews", userToken,
		CreateReviewRequest{Rating: 5, Comment: "Fantastic tasting menu"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
	env.reviews.AssertExpectations(t)
	env.restaurants.AssertExpectations(t)
}

func TestCreateReview_Unauthorized(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/v1/restaurants/"+testRestaurantID+"/reviews", "",
		CreateReviewRequest{Rating: 5, Comment: "great"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_InvalidToken(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/v1/restaurants/"+testRestaurantID+"/reviews", "garbage",
		CreateReviewRequest{Rating: 5, Comment: "great"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReview_InvalidRestaurantID(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/v1/restaurants/not-a-uuid/reviews", userToken,
		CreateReviewRequest{Rating: 5, Comment: "great"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestCreateReview_InvalidJSON(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/"+testRestaurantID+"/reviews",
		bytes.NewReader([]byte(`{invalid`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "invalid request body")
}

func TestCreateReview_ValidationError(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/v1/restaurants/"+testRestaurantID+"/reviews", userToken,
		CreateReviewRequest{Rating: 9, Comment: "great"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	env.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	env.restaurants.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreateReview_DuplicateConflict(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).Return(sampleRestaurant(), nil)
	env.reviews.On("ExistsByUserAndRestaurant", mock.Anything, testUserID, testRestaurantID).Return(true, nil)

	rec := env.do(http.MethodPost, "/api/v1/restaurants/"+testRestaurantID+"/reviews", userToken,
		CreateReviewRequest{Rating: 4, Comment: "again"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_REVIEWED", resp.Error.Code)
}

func TestCreateReview_UnknownRestaurant(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).
		Return(nil, apperrors.NotFound("restaurant", testRestaurantID))

	rec := env.do(http.MethodPost, "/api/v1/restaurants/"+testRestaurantID+"/reviews", userToken,
		CreateReviewRequest{Rating: 4, Comment: "good"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// GET /api/v1/restaurants/{restaurantId}/reviews
// =============================================================================

func TestListRestaurantReviews_Success(t *testing.T) {
	env := newTestEnv()

	reviews := []domain.Review{
		{ID: testReviewID, RestaurantID: testRestaurantID, UserID: testUserID, Rating: 5, Comment: "great"},
	}
	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).Return(sampleRestaurant(), nil)
	env.reviews.On("ListByRestaurantID", mock.Anything, testRestaurantID, 1, 20).Return(reviews, 12, nil)

	rec := env.do(http.MethodGet, "/api/v1/restaurants/"+testRestaurantID+"/reviews", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Summary    domain.RatingSummary `json:"summary"`
		TotalCount int                  `json:"total_count"`
		Page       int                  `json:"page"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 4.5, body.Summary.AverageRating)
	assert.Equal(t, 12, body.Summary.TotalReviews)
	assert.Equal(t, 12, body.TotalCount)
	assert.Equal(t, 1, body.Page)
}

// =============================================================================
// DELETE /api/v1/users/reviews/{id}
// =============================================================================

func TestDeleteMyReview_Success(t *testing.T) {
	env := newTestEnv()

	env.reviews.On("DeleteOwned", mock.Anything, testReviewID, testUserID, false).
		Return(testRestaurantID, nil)
	env.reviews.On("RatingsByRestaurant", mock.Anything, testRestaurantID).Return([]int{}, nil)
	env.restaurants.On("UpdateRatingSummary", mock.Anything, testRestaurantID,
		domain.RatingSummary{}).Return(nil)

	rec := env.do(http.MethodDelete, "/api/v1/users/reviews/"+testReviewID, userToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.reviews.AssertExpectations(t)
}

func TestDeleteMyReview_Forbidden(t *testing.T) {
	env := newTestEnv()

	env.reviews.On("DeleteOwned", mock.Anything, testReviewID, testUserID, false).
		Return("", apperrors.Forbidden("you can only delete your own reviews"))

	rec := env.do(http.MethodDelete, "/api/v1/users/reviews/"+testReviewID, userToken, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
}

func TestDeleteMyReview_NotFound(t *testing.T) {
	env := newTestEnv()

	env.reviews.On("DeleteOwned", mock.Anything, testReviewID, testUserID, false).
		Return("", apperrors.NotFound("review", testReviewID))

	rec := env.do(http.MethodDelete, "/api/v1/users/reviews/"+testReviewID, userToken, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// GET /api/v1/users/reviews
// =============================================================================

func TestListMyReviews_Success(t *testing.T) {
	env := newTestEnv()

	reviews := []domain.Review{{ID: testReviewID, UserID: testUserID, Rating: 4}}
	env.reviews.On("ListByUserID", mock.Anything, testUserID, 1, 20).Return(reviews, 1, nil)

	rec := env.do(http.MethodGet, "/api/v1/users/reviews", userToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var paginated httputil.PaginatedResponse[json.RawMessage]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&paginated))
	assert.Equal(t, 1, paginated.TotalCount)
}

// =============================================================================
// Admin review endpoints
// =============================================================================

func TestAdminDeleteReview_Success(t *testing.T) {
	env := newTestEnv()

	env.reviews.On("DeleteOwned", mock.Anything, testReviewID, testAdminID, true).
		Return(testRestaurantID, nil)
	env.reviews.On("RatingsByRestaurant", mock.Anything, testRestaurantID).Return([]int{3}, nil)
	env.restaurants.On("UpdateRatingSummary", mock.Anything, testRestaurantID,
		domain.RatingSummary{AverageRating: 3.0, TotalReviews: 1}).Return(nil)

	rec := env.do(http.MethodDelete, "/api/v1/admin/reviews/"+testReviewID, adminToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.reviews.AssertExpectations(t)
}

func TestAdminDeleteReview_ForbiddenForUserRole(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodDelete, "/api/v1/admin/reviews/"+testReviewID, userToken, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	env.reviews.AssertNotCalled(t, "DeleteOwned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminListReviews_Success(t *testing.T) {
	env := newTestEnv()

	reviews := []domain.Review{{ID: testReviewID, Rating: 2}}
	env.reviews.On("List", mock.Anything, mock.AnythingOfType("repository.ReviewFilter")).
		Return(reviews, 1, nil)

	rec := env.do(http.MethodGet, "/api/v1/admin/reviews?min_rating=1&max_rating=3", adminToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminListReviews_InvalidRatingFilter(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/api/v1/admin/reviews?min_rating=9", adminToken, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.reviews.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

// =============================================================================
// Favorite endpoints
// =============================================================================

func TestToggleFavorite_AddsThenRemoves(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).Return(sampleRestaurant(), nil)
	env.favorites.On("Exists", mock.Anything, testUserID, testRestaurantID).Return(false, nil).Once()
	env.favorites.On("Add", mock.Anything, testUserID, testRestaurantID).Return(true, nil).Once()
	env.favorites.On("Exists", mock.Anything, testUserID, testRestaurantID).Return(true, nil).Once()
	env.favorites.On("Remove", mock.Anything, testUserID, testRestaurantID).Return(true, nil).Once()

	path := "/api/v1/users/favorites/" + testRestaurantID + "/toggle"

	rec := env.do(http.MethodPost, path, userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var first struct {
		Data ToggleResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&first))
	assert.True(t, first.Data.Favorited)

	rec = env.do(http.MethodPost, path, userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var second struct {
		Data ToggleResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))
	assert.False(t, second.Data.Favorited)

	env.favorites.AssertExpectations(t)
}

func TestToggleFavorite_Unauthorized(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/v1/users/favorites/"+testRestaurantID+"/toggle", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestToggleFavorite_UnknownRestaurant(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).
		Return(nil, apperrors.NotFound("restaurant", testRestaurantID))

	rec := env.do(http.MethodPost, "/api/v1/users/favorites/"+testRestaurantID+"/toggle", userToken, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoriteStatus_Success(t *testing.T) {
	env := newTestEnv()

	env.favorites.On("Exists", mock.Anything, testUserID, testRestaurantID).Return(true, nil)

	rec := env.do(http.MethodGet, "/api/v1/users/favorites/"+testRestaurantID, userToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data ToggleResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Data.Favorited)
}

func TestListFavorites_Success(t *testing.T) {
	env := newTestEnv()

	favorites := []*domain.Favorite{
		{UserID: testUserID, RestaurantID: testRestaurantID, CreatedAt: time.Now().UTC()},
	}
	env.favorites.On("ListByUser", mock.Anything, testUserID, 1, 20).Return(favorites, 1, nil)

	rec := env.do(http.MethodGet, "/api/v1/users/favorites", userToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var paginated httputil.PaginatedResponse[json.RawMessage]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&paginated))
	assert.Equal(t, 1, paginated.TotalCount)
}

// =============================================================================
// Restaurant endpoints
// =============================================================================

func TestGetRestaurant_Success(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).Return(sampleRestaurant(), nil)

	rec := env.do(http.MethodGet, "/api/v1/restaurants/"+testRestaurantID, "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
}

func TestGetRestaurant_NotFound(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).
		Return(nil, apperrors.NotFound("restaurant", testRestaurantID))

	rec := env.do(http.MethodGet, "/api/v1/restaurants/"+testRestaurantID, "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestListRestaurants_Success(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("List", mock.Anything, mock.AnythingOfType("repository.RestaurantFilter")).
		Return([]domain.Restaurant{*sampleRestaurant()}, 1, nil)

	rec := env.do(http.MethodGet, "/api/v1/restaurants?status=active", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListRestaurants_InvalidStatus(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/api/v1/restaurants?status=bogus", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.restaurants.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestPopularRestaurants_Success(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("ListPopular", mock.Anything, 10).
		Return([]domain.Restaurant{*sampleRestaurant()}, nil)

	rec := env.do(http.MethodGet, "/api/v1/restaurants/popular", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
}

func TestPopularRestaurants_InvalidLimit(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/api/v1/restaurants/popular?limit=500", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.restaurants.AssertNotCalled(t, "ListPopular", mock.Anything, mock.Anything)
}

// =============================================================================
// Health endpoints
// =============================================================================

func TestHealthLive(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/health/live", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
