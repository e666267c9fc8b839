package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/event"
	"github.com/dinefind/dinefind/internal/repository"
	apperrors "github.com/dinefind/dinefind/pkg/errors"
)

// maxCommentLength bounds review comments.
const maxCommentLength = 500

// ReviewService implements the review mutation flow: validate, mutate,
// recompute the restaurant's aggregate. The two steps are sequential, not
// atomic: when the recompute fails after a successful mutation the result
// carries SummaryStale=true and the failure is counted, never compensated.
// A later mutation's recompute repairs the aggregate.
type ReviewService struct {
	reviews     repository.ReviewRepository
	restaurants repository.RestaurantRepository
	aggregator  *RatingAggregator
	producer    *event.Producer
	logger      *slog.Logger
}

// NewReviewService creates a review service. producer may be nil.
func NewReviewService(
	reviews repository.ReviewRepository,
	restaurants repository.RestaurantRepository,
	aggregator *RatingAggregator,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		restaurants: restaurants,
		aggregator:  aggregator,
		producer:    producer,
		logger:      logger,
	}
}

// AddReviewInput holds the parameters for submitting a review.
type AddReviewInput struct {
	UserID       string
	RestaurantID string
	Rating       int
	Comment      string
}

// AddReviewResult is the outcome of a successful review submission.
type AddReviewResult struct {
	Review *domain.Review `json:"review"`
	// Summary is the restaurant aggregate after the recompute. When
	// SummaryStale is true it is the best-known value and the stored
	// aggregate may lag the review rows.
	Summary      domain.RatingSummary `json:"summary"`
	SummaryStale bool                 `json:"summary_stale,omitempty"`
}

// RemoveReviewResult is the outcome of a successful review deletion.
type RemoveReviewResult struct {
	RestaurantID string               `json:"restaurant_id"`
	Summary      domain.RatingSummary `json:"summary"`
	SummaryStale bool                 `json:"summary_stale,omitempty"`
}

// AddReview validates input, creates the review, and recomputes the
// restaurant's aggregate. Uniqueness is enforced by the datastore; the
// repository pre-check only produces the friendly conflict on the common
// path, it is not relied on for correctness.
func (s *ReviewService) AddReview(ctx context.Context, input AddReviewInput) (*AddReviewResult, error) {
	if !domain.IsValidRating(input.Rating) {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, apperrors.InvalidInput("comment is required")
	}
	if len(comment) > maxCommentLength {
		return nil, apperrors.InvalidInput("comment must be at most 500 characters")
	}

	if _, err := s.restaurants.GetByID(ctx, input.RestaurantID); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsByUserAndRestaurant(ctx, input.UserID, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("ALREADY_REVIEWED", "you have already reviewed this restaurant")
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:           uuid.New().String(),
		UserID:       input.UserID,
		RestaurantID: input.RestaurantID,
		Rating:       input.Rating,
		Comment:      comment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique constraint still catches the race the pre-check missed.
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	reviewsCreatedTotal.Inc()

	result := &AddReviewResult{Review: review}
	summary, err := s.aggregator.Recompute(ctx, input.RestaurantID)
	result.Summary = summary
	if err != nil {
		result.SummaryStale = true
		ratingRecomputeFailuresTotal.Inc()
		s.logger.ErrorContext(ctx, "rating recompute failed after review create",
			slog.String("review_id", review.ID),
			slog.String("restaurant_id", input.RestaurantID),
			slog.String("error", err.Error()),
		)
	}

	if s.producer != nil {
		if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.created event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return result, nil
}

// RemoveReview deletes a review owned by the requester (admins may delete
// any review) and recomputes the restaurant's aggregate. Deleting the last
// review resets the aggregate to zero.
func (s *ReviewService) RemoveReview(ctx context.Context, reviewID, requesterID string, requesterIsAdmin bool) (*RemoveReviewResult, error) {
	restaurantID, err := s.reviews.DeleteOwned(ctx, reviewID, requesterID, requesterIsAdmin)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			s.logger.WarnContext(ctx, "review delete denied for non-owner",
				slog.String("review_id", reviewID),
				slog.String("requester_id", requesterID),
			)
		}
		return nil, err
	}

	reviewsDeletedTotal.Inc()

	result := &RemoveReviewResult{RestaurantID: restaurantID}
	summary, err := s.aggregator.Recompute(ctx, restaurantID)
	result.Summary = summary
	if err != nil {
		result.SummaryStale = true
		ratingRecomputeFailuresTotal.Inc()
		s.logger.ErrorContext(ctx, "rating recompute failed after review delete",
			slog.String("review_id", reviewID),
			slog.String("restaurant_id", restaurantID),
			slog.String("error", err.Error()),
		)
	}

	if s.producer != nil {
		if err := s.producer.PublishReviewDeleted(ctx, reviewID, restaurantID, requesterID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.deleted event",
				slog.String("review_id", reviewID),
				slog.String("error", err.Error()),
			)
		}
	}

	return result, nil
}

// RestaurantReviews returns a page of a restaurant's reviews together with
// its current aggregate.
func (s *ReviewService) RestaurantReviews(ctx context.Context, restaurantID string, page, perPage int) ([]domain.Review, int, domain.RatingSummary, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, 0, domain.RatingSummary{}, err
	}

	reviews, total, err := s.reviews.ListByRestaurantID(ctx, restaurantID, page, perPage)
	if err != nil {
		return nil, 0, domain.RatingSummary{}, err
	}

	summary := domain.RatingSummary{
		AverageRating: restaurant.AverageRating,
		TotalReviews:  restaurant.TotalReviews,
	}
	return reviews, total, summary, nil
}

// UserReviews returns a page of the user's reviews, newest first.
func (s *ReviewService) UserReviews(ctx context.Context, userID string, page, perPage int) ([]domain.Review, int, error) {
	return s.reviews.ListByUserID(ctx, userID, page, perPage)
}

// AllReviews returns reviews matching the filter. Admin listing.
func (s *ReviewService) AllReviews(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, int, error) {
	return s.reviews.List(ctx, filter)
}
