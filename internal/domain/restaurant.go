package domain

import (
	"time"
)

// Restaurant status constants.
const (
	RestaurantStatusActive = "active"
	RestaurantStatusClosed = "closed"
	RestaurantStatusHidden = "hidden"
)

// Restaurant represents a listed restaurant with its denormalized rating
// aggregate. AverageRating and TotalReviews are maintained by the rating
// aggregator, never written directly by request handlers.
type Restaurant struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	OpeningHours  string    `json:"opening_hours,omitempty"`
	Status        string    `json:"status"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RatingSummary is the aggregate derived from a restaurant's reviews.
// An empty review set yields the zero summary.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// ValidRestaurantStatuses returns the set of valid restaurant statuses.
func ValidRestaurantStatuses() []string {
	return []string{RestaurantStatusActive, RestaurantStatusClosed, RestaurantStatusHidden}
}
