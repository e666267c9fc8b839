package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/event"
	"github.com/dinefind/dinefind/internal/repository"
)

// FavoriteService implements the favorite toggle flow. The toggle is a
// read-then-write without a surrounding transaction: the primary key on
// (user_id, restaurant_id) absorbs the races, so a concurrent duplicate
// insert lands as already-favorited and a concurrent double delete lands
// as already-removed, both with a consistent final state.
type FavoriteService struct {
	favorites   repository.FavoriteRepository
	restaurants repository.RestaurantRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewFavoriteService creates a favorite service. producer may be nil.
func NewFavoriteService(
	favorites repository.FavoriteRepository,
	restaurants repository.RestaurantRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *FavoriteService {
	return &FavoriteService{
		favorites:   favorites,
		restaurants: restaurants,
		producer:    producer,
		logger:      logger,
	}
}

// Toggle flips the favorite membership for (user, restaurant) and returns
// the resulting state: true when the restaurant is now favorited.
func (s *FavoriteService) Toggle(ctx context.Context, userID, restaurantID string) (bool, error) {
	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		return false, err
	}

	exists, err := s.favorites.Exists(ctx, userID, restaurantID)
	if err != nil {
		return false, err
	}

	var favorited bool
	if exists {
		if _, err := s.favorites.Remove(ctx, userID, restaurantID); err != nil {
			return false, err
		}
		favorited = false
	} else {
		// inserted=false means a concurrent toggle won the insert; the
		// restaurant is favorited either way.
		if _, err := s.favorites.Add(ctx, userID, restaurantID); err != nil {
			return false, err
		}
		favorited = true
	}

	favoritesToggledTotal.WithLabelValues(strconv.FormatBool(favorited)).Inc()

	if s.producer != nil {
		if err := s.producer.PublishFavoriteToggled(ctx, userID, restaurantID, favorited); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish favorite.toggled event",
				slog.String("user_id", userID),
				slog.String("restaurant_id", restaurantID),
				slog.String("error", err.Error()),
			)
		}
	}

	return favorited, nil
}

// Status reports whether the restaurant is in the user's favorites.
func (s *FavoriteService) Status(ctx context.Context, userID, restaurantID string) (bool, error) {
	return s.favorites.Exists(ctx, userID, restaurantID)
}

// ListByUser returns a page of the user's favorites, newest first.
func (s *FavoriteService) ListByUser(ctx context.Context, userID string, page, perPage int) ([]*domain.Favorite, int, error) {
	return s.favorites.ListByUser(ctx, userID, page, perPage)
}
