package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dinefind/dinefind/internal/domain"
	"github.com/dinefind/dinefind/internal/repository"
	"github.com/dinefind/dinefind/pkg/database"
	apperrors "github.com/dinefind/dinefind/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = `id, user_id, restaurant_id, rating, comment, created_at, updated_at`

// Create inserts a new review. The unique constraint on
// (user_id, restaurant_id) rejects duplicates regardless of any pre-check
// the caller performed.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, restaurant_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.RestaurantID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("ALREADY_REVIEWED", "you have already reviewed this restaurant")
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var rv domain.Review
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rv.ID,
		&rv.UserID,
		&rv.RestaurantID,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &rv, nil
}

// DeleteOwned deletes a review after checking ownership inside a single
// transaction, so the check cannot race a concurrent delete. Admins skip the
// ownership check. Returns the restaurant the review belonged to.
func (r *ReviewRepository) DeleteOwned(ctx context.Context, reviewID, requesterID string, requesterIsAdmin bool) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID, restaurantID string
	err = tx.QueryRow(ctx,
		`SELECT user_id, restaurant_id FROM reviews WHERE id = $1 FOR UPDATE`,
		reviewID,
	).Scan(&ownerID, &restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NotFound("review", reviewID)
		}
		return "", fmt.Errorf("select review for delete: %w", err)
	}

	if !requesterIsAdmin && ownerID != requesterID {
		return "", apperrors.Forbidden("you can only delete your own reviews")
	}

	ct, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return "", fmt.Errorf("delete review: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return "", apperrors.NotFound("review", reviewID)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}

	return restaurantID, nil
}

// RatingsByRestaurant returns every rating stored for the restaurant.
func (r *ReviewRepository) RatingsByRestaurant(ctx context.Context, restaurantID string) ([]int, error) {
	query := `SELECT rating FROM reviews WHERE restaurant_id = $1`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	ratings := []int{}
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

// ExistsByUserAndRestaurant checks whether the user already reviewed the
// restaurant.
func (r *ReviewRepository) ExistsByUserAndRestaurant(ctx context.Context, userID, restaurantID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1 AND restaurant_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, restaurantID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check review exists: %w", err)
	}

	return exists, nil
}

// ListByRestaurantID returns paginated reviews for a restaurant, newest first,
// along with the total count.
func (r *ReviewRepository) ListByRestaurantID(ctx context.Context, restaurantID string, page, perPage int) ([]domain.Review, int, error) {
	limit, offset := pageBounds(page, perPage)

	query := `
		SELECT ` + reviewColumns + `,
		       count(*) OVER() AS total_count
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, restaurantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	return scanReviewRows(rows)
}

// ListByUserID returns paginated reviews written by a user, newest first,
// along with the total count.
func (r *ReviewRepository) ListByUserID(ctx context.Context, userID string, page, perPage int) ([]domain.Review, int, error) {
	limit, offset := pageBounds(page, perPage)

	query := `
		SELECT ` + reviewColumns + `,
		       count(*) OVER() AS total_count
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list user reviews: %w", err)
	}
	defer rows.Close()

	return scanReviewRows(rows)
}

// List returns reviews matching the filter along with the total count.
func (r *ReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, int, error) {
	limit, offset := pageBounds(filter.Page, filter.PerPage)

	conditions := []string{}
	args := []any{}
	argPos := 1

	if filter.RestaurantID != nil {
		conditions = append(conditions, fmt.Sprintf("restaurant_id = $%d", argPos))
		args = append(args, *filter.RestaurantID)
		argPos++
	}
	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.MinRating != nil {
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", argPos))
		args = append(args, *filter.MinRating)
		argPos++
	}
	if filter.MaxRating != nil {
		conditions = append(conditions, fmt.Sprintf("rating <= $%d", argPos))
		args = append(args, *filter.MaxRating)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT `+reviewColumns+`,
		       count(*) OVER() AS total_count
		FROM reviews
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list all reviews: %w", err)
	}
	defer rows.Close()

	return scanReviewRows(rows)
}

func scanReviewRows(rows pgx.Rows) ([]domain.Review, int, error) {
	var (
		reviews    []domain.Review
		totalCount int
	)

	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.RestaurantID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
			&rv.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, totalCount, nil
}

func pageBounds(page, perPage int) (limit, offset int) {
	limit = perPage
	if limit <= 0 {
		limit = 20
	}
	if page > 1 {
		offset = (page - 1) * limit
	}
	return limit, offset
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
