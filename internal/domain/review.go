package domain

import (
	"time"
)

// Rating bounds for reviews.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review represents a restaurant review submitted by a user. A user may
// hold at most one review per restaurant.
type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsValidRating checks whether the rating falls within the accepted scale.
func IsValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}
