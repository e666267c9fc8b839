package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/repository"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) DeleteOwned(ctx context.Context, reviewID, requesterID string, requesterIsAdmin bool) (string, error) {
	args := m.Called(ctx, reviewID, requesterID, requesterIsAdmin)
	return args.String(0), args.Error(1)
}

func (m *mockReviewRepository) RatingsByRestaurant(ctx context.Context, restaurantID string) ([]int, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockReviewRepository) ExistsByUserAndRestaurant(ctx context.Context, userID, restaurantID string) (bool, error) {
	args := m.Called(ctx, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepository) ListByRestaurantID(ctx context.Context, restaurantID string, page, perPage int) ([]domain.Review, int, error) {
	args := m.Called(ctx, restaurantID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) ListByUserID(ctx context.Context, userID string, page, perPage int) ([]domain.Review, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

type mockRestaurantRepository struct {
	mock.Mock
}

func (m *mockRestaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *mockRestaurantRepository) List(ctx context.Context, filter repository.RestaurantFilter) ([]domain.Restaurant, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Restaurant), args.Int(1), args.Error(2)
}

func (m *mockRestaurantRepository) ListPopular(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *mockRestaurantRepository) UpdateRatingSummary(ctx context.Context, restaurantID string, summary domain.RatingSummary) error {
	args := m.Called(ctx, restaurantID, summary)
	return args.Error(0)
}

type mockFavoriteRepository struct {
	mock.Mock
}

func (m *mockFavoriteRepository) Add(ctx context.Context, userID, restaurantID string) (bool, error) {
	args := m.Called(ctx, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepository) Remove(ctx context.Context, userID, restaurantID string) (bool, error) {
	args := m.Called(ctx, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepository) Exists(ctx context.Context, userID, restaurantID string) (bool, error) {
	args := m.Called(ctx, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]*domain.Favorite, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Favorite), args.Int(1), args.Error(2)
}

type mockPopularCache struct {
	mock.Mock
}

func (m *mockPopularCache) Get(ctx context.Context, limit int) ([]domain.Restaurant, bool, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Restaurant), args.Bool(1), args.Error(2)
}

func (m *mockPopularCache) Set(ctx context.Context, limit int, restaurants []domain.Restaurant) error {
	args := m.Called(ctx, limit, restaurants)
	return args.Error(0)
}

func (m *mockPopularCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
