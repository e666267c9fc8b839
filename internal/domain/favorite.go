package domain

import (
	"time"
)

// Favorite represents a restaurant saved by a user. Membership is keyed by
// the (user, restaurant) pair, so saving twice is a no-op.
type Favorite struct {
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}
