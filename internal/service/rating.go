package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/repository"
)

// PopularInvalidator drops any cached popular-restaurants listing. The
// aggregator calls it after every successful summary write so the cache
// never outlives an aggregate change for longer than one recompute.
type PopularInvalidator interface {
	Invalidate(ctx context.Context) error
}

// RatingAggregator keeps each restaurant's denormalized rating aggregate
// consistent with its review rows. It always recomputes from the full
// durable review set, never increments, so concurrent recomputes converge
// and retries are safe.
type RatingAggregator struct {
	reviews     repository.ReviewRepository
	restaurants repository.RestaurantRepository
	cache       PopularInvalidator
	logger      *slog.Logger
}

// NewRatingAggregator creates a rating aggregator. cache may be nil.
func NewRatingAggregator(
	reviews repository.ReviewRepository,
	restaurants repository.RestaurantRepository,
	cache PopularInvalidator,
	logger *slog.Logger,
) *RatingAggregator {
	return &RatingAggregator{
		reviews:     reviews,
		restaurants: restaurants,
		cache:       cache,
		logger:      logger,
	}
}

// Recompute reads every rating for the restaurant, derives the aggregate
// (zero summary for an empty set), and overwrites the stored summary.
// Last write wins on the aggregate columns.
func (a *RatingAggregator) Recompute(ctx context.Context, restaurantID string) (domain.RatingSummary, error) {
	ratings, err := a.reviews.RatingsByRestaurant(ctx, restaurantID)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("read ratings for recompute: %w", err)
	}

	summary := Summarize(ratings)

	if err := a.restaurants.UpdateRatingSummary(ctx, restaurantID, summary); err != nil {
		return summary, fmt.Errorf("persist rating summary: %w", err)
	}

	if a.cache != nil {
		if err := a.cache.Invalidate(ctx); err != nil {
			a.logger.WarnContext(ctx, "failed to invalidate popular cache",
				slog.String("restaurant_id", restaurantID),
				slog.String("error", err.Error()),
			)
		}
	}

	a.logger.DebugContext(ctx, "rating summary recomputed",
		slog.String("restaurant_id", restaurantID),
		slog.Float64("average_rating", summary.AverageRating),
		slog.Int("total_reviews", summary.TotalReviews),
	)

	return summary, nil
}

// Summarize derives the rating aggregate from a full rating set. The empty
// set yields the zero summary, not NaN. The average is kept at full float64
// precision; rounding is a presentation concern.
func Summarize(ratings []int) domain.RatingSummary {
	total := len(ratings)
	if total == 0 {
		return domain.RatingSummary{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	return domain.RatingSummary{
		AverageRating: float64(sum) / float64(total),
		TotalReviews:  total,
	}
}
