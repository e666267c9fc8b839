package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dinefind/dinefind/internal/domain"
	pkgkafka "github.com/dinefind/dinefind/pkg/kafka"
)

// Kafka topic constants for review and favorite domain events.
const (
	TopicReviewCreated   = "dinefind.review.created"
	TopicReviewDeleted   = "dinefind.review.deleted"
	TopicFavoriteToggled = "dinefind.favorite.toggled"
)

// Aggregate type constants.
const (
	AggregateTypeRestaurant = "restaurant"
)

// Source identifier for events originating from this service.
const SourceAPI = "dinefind-api"

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ReviewID     string `json:"review_id"`
	RestaurantID string `json:"restaurant_id"`
	UserID       string `json:"user_id"`
	Rating       int    `json:"rating"`
}

// ReviewDeletedData is the payload for a review.deleted event.
type ReviewDeletedData struct {
	ReviewID     string `json:"review_id"`
	RestaurantID string `json:"restaurant_id"`
	DeletedBy    string `json:"deleted_by"`
}

// FavoriteToggledData is the payload for a favorite.toggled event.
type FavoriteToggledData struct {
	UserID       string `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	Favorited    bool   `json:"favorited"`
}

// Producer publishes review and favorite domain events to Kafka. Events are
// informational: callers log publish failures and move on, they never fail
// the originating request.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewCreated publishes a review.created event keyed by restaurant.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ReviewID:     review.ID,
		RestaurantID: review.RestaurantID,
		UserID:       review.UserID,
		Rating:       review.Rating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.RestaurantID, AggregateTypeRestaurant, SourceAPI, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("restaurant_id", review.RestaurantID),
	)

	return nil
}

// PublishReviewDeleted publishes a review.deleted event keyed by restaurant.
func (p *Producer) PublishReviewDeleted(ctx context.Context, reviewID, restaurantID, deletedBy string) error {
	data := ReviewDeletedData{
		ReviewID:     reviewID,
		RestaurantID: restaurantID,
		DeletedBy:    deletedBy,
	}

	event, err := pkgkafka.NewEvent(TopicReviewDeleted, restaurantID, AggregateTypeRestaurant, SourceAPI, data)
	if err != nil {
		return fmt.Errorf("create review.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewDeleted, event); err != nil {
		return fmt.Errorf("publish review.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.deleted event",
		slog.String("review_id", reviewID),
		slog.String("restaurant_id", restaurantID),
	)

	return nil
}

// PublishFavoriteToggled publishes a favorite.toggled event keyed by restaurant.
func (p *Producer) PublishFavoriteToggled(ctx context.Context, userID, restaurantID string, favorited bool) error {
	data := FavoriteToggledData{
		UserID:       userID,
		RestaurantID: restaurantID,
		Favorited:    favorited,
	}

	event, err := pkgkafka.NewEvent(TopicFavoriteToggled, restaurantID, AggregateTypeRestaurant, SourceAPI, data)
	if err != nil {
		return fmt.Errorf("create favorite.toggled event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicFavoriteToggled, event); err != nil {
		return fmt.Errorf("publish favorite.toggled event: %w", err)
	}

	p.logger.DebugContext(ctx, "published favorite.toggled event",
		slog.String("user_id", userID),
		slog.String("restaurant_id", restaurantID),
		slog.Bool("favorited", favorited),
	)

	return nil
}
