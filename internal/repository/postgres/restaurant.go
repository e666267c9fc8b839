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

// RestaurantRepository implements repository.RestaurantRepository using PostgreSQL.
type RestaurantRepository struct {
	pool database.DBTX
}

// NewRestaurantRepository creates a new PostgreSQL-backed restaurant repository.
func NewRestaurantRepository(pool database.DBTX) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

const restaurantColumns = `id, name, description, image_url, address, phone, email, opening_hours, status, average_rating, total_reviews, created_at, updated_at`

// GetByID retrieves a restaurant by its ID.
func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	rest, err := scanRestaurant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("restaurant", id)
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}

	return rest, nil
}

// List returns restaurants matching the filter along with the total count.
func (r *RestaurantRepository) List(ctx context.Context, filter repository.RestaurantFilter) ([]domain.Restaurant, int, error) {
	limit, offset := pageBounds(filter.Page, filter.PerPage)

	conditions := []string{}
	args := []any{}
	argPos := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT `+restaurantColumns+`,
		       count(*) OVER() AS total_count
		FROM restaurants
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var (
		restaurants []domain.Restaurant
		totalCount  int
	)

	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(
			&rest.ID,
			&rest.Name,
			&rest.Description,
			&rest.ImageURL,
			&rest.Address,
			&rest.Phone,
			&rest.Email,
			&rest.OpeningHours,
			&rest.Status,
			&rest.AverageRating,
			&rest.TotalReviews,
			&rest.CreatedAt,
			&rest.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan restaurant row: %w", err)
		}
		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate restaurant rows: %w", err)
	}

	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}

	return restaurants, totalCount, nil
}

// ListPopular returns the most-reviewed active restaurants, busiest first.
// Restaurants with a better rating rank higher at equal review counts;
// restaurants without any reviews never appear.
func (r *RestaurantRepository) ListPopular(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE status = 'active' AND total_reviews > 0
		ORDER BY total_reviews DESC, average_rating DESC, name ASC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(
			&rest.ID,
			&rest.Name,
			&rest.Description,
			&rest.ImageURL,
			&rest.Address,
			&rest.Phone,
			&rest.Email,
			&rest.OpeningHours,
			&rest.Status,
			&rest.AverageRating,
			&rest.TotalReviews,
			&rest.CreatedAt,
			&rest.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan popular restaurant row: %w", err)
		}
		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular restaurant rows: %w", err)
	}

	return restaurants, nil
}

// UpdateRatingSummary overwrites the denormalized rating aggregate.
// Last write wins; the value is always derived from the full review set.
func (r *RestaurantRepository) UpdateRatingSummary(ctx context.Context, restaurantID string, summary domain.RatingSummary) error {
	query := `
		UPDATE restaurants
		SET average_rating = $1, total_reviews = $2, updated_at = NOW()
		WHERE id = $3`

	ct, err := r.pool.Exec(ctx, query, summary.AverageRating, summary.TotalReviews, restaurantID)
	if err != nil {
		return fmt.Errorf("update rating summary: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("restaurant", restaurantID)
	}

	return nil
}

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := row.Scan(
		&rest.ID,
		&rest.Name,
		&rest.Description,
		&rest.ImageURL,
		&rest.Address,
		&rest.Phone,
		&rest.Email,
		&rest.OpeningHours,
		&rest.Status,
		&rest.AverageRating,
		&rest.TotalReviews,
		&rest.CreatedAt,
		&rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}
