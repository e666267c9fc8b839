package postgres

import (
	"context"
	"fmt"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/pkg/database"
)

// FavoriteRepository implements repository.FavoriteRepository using PostgreSQL.
type FavoriteRepository struct {
	pool database.DBTX
}

// NewFavoriteRepository creates a new PostgreSQL-backed favorite repository.
func NewFavoriteRepository(pool database.DBTX) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Add inserts a favorite. ON CONFLICT DO NOTHING makes a concurrent
// duplicate insert indistinguishable from an earlier one: both report
// inserted=false and the toggle treats the restaurant as favorited.
func (r *FavoriteRepository) Add(ctx context.Context, userID, restaurantID string) (bool, error) {
	query := `
		INSERT INTO favorites (user_id, restaurant_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, restaurant_id) DO NOTHING`

	ct, err := r.pool.Exec(ctx, query, userID, restaurantID)
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// Remove deletes a favorite. Returns false when no row existed, which a
// concurrent toggle treats as already-removed.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, restaurantID string) (bool, error) {
	query := `DELETE FROM favorites WHERE user_id = $1 AND restaurant_id = $2`

	ct, err := r.pool.Exec(ctx, query, userID, restaurantID)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// Exists checks whether the restaurant is in the user's favorites.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, restaurantID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND restaurant_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, restaurantID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check favorite exists: %w", err)
	}

	return exists, nil
}

// ListByUser returns a paginated list of the user's favorites, newest first,
// along with the total count.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]*domain.Favorite, int, error) {
	limit, offset := pageBounds(page, perPage)

	query := `
		SELECT user_id, restaurant_id, created_at,
		       count(*) OVER() AS total_count
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var (
		favorites  []*domain.Favorite
		totalCount int
	)

	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.UserID, &f.RestaurantID, &f.CreatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("scan favorite row: %w", err)
		}
		favorites = append(favorites, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate favorite rows: %w", err)
	}

	if favorites == nil {
		favorites = []*domain.Favorite{}
	}

	return favorites, totalCount, nil
}
