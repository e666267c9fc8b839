package service

import (
	"context"
	"log/slog"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/repository"
)

const defaultPopularLimit = 10

// PopularCache is a read-through cache for the popular restaurant listing.
type PopularCache interface {
	Get(ctx context.Context, limit int) ([]domain.Restaurant, bool, error)
	Set(ctx context.Context, limit int, restaurants []domain.Restaurant) error
}

// RestaurantService serves the restaurant read side of the directory.
type RestaurantService struct {
	restaurants repository.RestaurantRepository
	cache       PopularCache
	logger      *slog.Logger
}

func NewRestaurantService(restaurants repository.RestaurantRepository, cache PopularCache, logger *slog.Logger) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		cache:       cache,
		logger:      logger,
	}
}

// Get returns a single restaurant with its stored rating aggregate.
func (s *RestaurantService) Get(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	return s.restaurants.GetByID(ctx, restaurantID)
}

// List returns a filtered page of restaurants and the total match count.
func (s *RestaurantService) List(ctx context.Context, filter repository.RestaurantFilter) ([]domain.Restaurant, int, error) {
	return s.restaurants.List(ctx, filter)
}

// Popular returns the most-reviewed active restaurants, served from cache when
// possible. Cache failures fall back to the repository.
func (s *RestaurantService) Popular(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, limit)
		if err != nil {
			s.logger.WarnContext(ctx, "popular cache read failed", slog.String("error", err.Error()))
		} else if found {
			return cached, nil
		}
	}

	restaurants, err := s.restaurants.ListPopular(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, limit, restaurants); err != nil {
			s.logger.WarnContext(ctx, "popular cache write failed", slog.String("error", err.Error()))
		}
	}

	return restaurants, nil
}
