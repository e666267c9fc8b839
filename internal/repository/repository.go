package repository

import (
	"context"

	"github.com/dinefind/dinefind/internal/domain"
)

// ReviewFilter defines filter criteria for the admin review listing.
type ReviewFilter struct {
	RestaurantID *string
	UserID       *string
	MinRating    *int
	MaxRating    *int
	Page         int
	PerPage      int
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review. A duplicate (user, restaurant) pair is
	// rejected by the database unique constraint and surfaced as an
	// ALREADY_REVIEWED conflict.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// DeleteOwned deletes a review after verifying the requester owns it
	// (admins may delete any review). The lookup, ownership check, and
	// delete run in one transaction. Returns the restaurant ID the review
	// belonged to so the caller can recompute that restaurant's aggregate.
	DeleteOwned(ctx context.Context, reviewID, requesterID string, requesterIsAdmin bool) (string, error)

	// RatingsByRestaurant returns every rating currently stored for the
	// restaurant. The aggregator derives the summary from this full set.
	RatingsByRestaurant(ctx context.Context, restaurantID string) ([]int, error)

	// ExistsByUserAndRestaurant checks whether the user has already
	// reviewed the restaurant. Advisory only: the unique constraint
	// remains the authority under concurrency.
	ExistsByUserAndRestaurant(ctx context.Context, userID, restaurantID string) (bool, error)

	// ListByRestaurantID returns paginated reviews for a restaurant,
	// newest first, along with the total count.
	ListByRestaurantID(ctx context.Context, restaurantID string, page, perPage int) ([]domain.Review, int, error)

	// ListByUserID returns paginated reviews written by a user, newest
	// first, along with the total count.
	ListByUserID(ctx context.Context, userID string, page, perPage int) ([]domain.Review, int, error)

	// List returns reviews matching the given filter along with the total
	// count.
	List(ctx context.Context, filter ReviewFilter) ([]domain.Review, int, error)
}

// RestaurantFilter defines filter criteria for listing restaurants.
type RestaurantFilter struct {
	Status  *string
	Search  *string
	Page    int
	PerPage int
}

// RestaurantRepository defines the interface for restaurant persistence
// operations.
type RestaurantRepository interface {
	// GetByID retrieves a restaurant by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)

	// List returns restaurants matching the given filter along with the
	// total count.
	List(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, int, error)

	// ListPopular returns active restaurants with at least one review,
	// ordered by review count, then average rating.
	ListPopular(ctx context.Context, limit int) ([]domain.Restaurant, error)

	// UpdateRatingSummary overwrites the restaurant's denormalized rating
	// aggregate. Last write wins.
	UpdateRatingSummary(ctx context.Context, restaurantID string, summary domain.RatingSummary) error
}

// FavoriteRepository defines the interface for favorite persistence
// operations.
type FavoriteRepository interface {
	// Add inserts a favorite. Returns false when the pair already existed
	// (ON CONFLICT DO NOTHING), which a concurrent toggle treats as
	// already-favorited rather than an error.
	Add(ctx context.Context, userID, restaurantID string) (bool, error)

	// Remove deletes a favorite. Returns false when no row existed.
	Remove(ctx context.Context, userID, restaurantID string) (bool, error)

	// Exists checks whether the restaurant is in the user's favorites.
	Exists(ctx context.Context, userID, restaurantID string) (bool, error)

	// ListByUser returns a paginated list of the user's favorites, newest
	// first, along with the total count.
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]*domain.Favorite, int, error)
}
