// Package main implements a standalone seed script that populates the
// dinefind database with realistic test data: a handful of users and
// restaurants, a spread of reviews, and favorites. Rating aggregates are
// recomputed from the seeded reviews at the end so the directory starts
// consistent.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type userDef struct {
	email string
	name  string
	role  string
	id    string // populated after insert
}

type restaurantDef struct {
	name        string
	description string
	address     string
	status      string
	id          string // populated after insert
}

var users = []userDef{
	{email: "alice@example.com", name: "Alice Nguyen", role: "user"},
	{email: "ben@example.com", name: "Ben Carter", role: "user"},
	{email: "carmen@example.com", name: "Carmen Diaz", role: "user"},
	{email: "dev@example.com", name: "Devon Park", role: "user"},
	{email: "admin@example.com", name: "Ops Admin", role: "admin"},
}

var restaurants = []restaurantDef{
	{name: "Harvest Table", description: "Seasonal plates and a long wine list", address: "12 Market Street", status: "active"},
	{name: "Noodle Barn", description: "Hand-pulled noodles, open late", address: "88 Canal Road", status: "active"},
	{name: "La Brasa", description: "Charcoal grill and small plates", address: "5 Ember Lane", status: "active"},
	{name: "Petit Four", description: "Pastry counter and weekend brunch", address: "301 Rue Claire", status: "active"},
	{name: "The Old Mill", description: "Closed for renovation", address: "1 Mill Pond", status: "closed"},
}

var comments = []string{
	"Great food and friendly staff.",
	"A bit noisy but the menu makes up for it.",
	"Would come back for the desserts alone.",
	"Service was slow on a busy night.",
	"Solid neighbourhood spot.",
	"Portions were small for the price.",
	"The tasting menu is worth every penny.",
}

func main() {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "dinefind"),
		getEnv("POSTGRES_PASSWORD", "dinefind_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB_NAME", "dinefind_db"),
		getEnv("POSTGRES_SSL_MODE", "disable"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if err := seedUsers(ctx, pool); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	if err := seedRestaurants(ctx, pool); err != nil {
		log.Fatalf("seed restaurants: %v", err)
	}
	reviewCount, err := seedReviews(ctx, pool, rng)
	if err != nil {
		log.Fatalf("seed reviews: %v", err)
	}
	favoriteCount, err := seedFavorites(ctx, pool, rng)
	if err != nil {
		log.Fatalf("seed favorites: %v", err)
	}
	if err := recomputeAggregates(ctx, pool); err != nil {
		log.Fatalf("recompute aggregates: %v", err)
	}

	log.Printf("seeded %d users, %d restaurants, %d reviews, %d favorites",
		len(users), len(restaurants), reviewCount, favoriteCount)
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	for i := range users {
		u := &users[i]
		err := pool.QueryRow(ctx,
			`INSERT INTO users (email, name, role)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			u.email, u.name, u.role,
		).Scan(&u.id)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.email, err)
		}
	}
	return nil
}

func seedRestaurants(ctx context.Context, pool *pgxpool.Pool) error {
	for i := range restaurants {
		r := &restaurants[i]
		err := pool.QueryRow(ctx,
			`INSERT INTO restaurants (name, description, address, status)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			r.name, r.description, r.address, r.status,
		).Scan(&r.id)
		if err != nil {
			return fmt.Errorf("insert restaurant %s: %w", r.name, err)
		}
	}
	return nil
}

func seedReviews(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) (int, error) {
	count := 0
	for _, r := range restaurants {
		if r.status != "active" {
			continue
		}
		for _, u := range users {
			if u.role == "admin" {
				continue
			}
			// Roughly two thirds of the diners review each place.
			if rng.Intn(3) == 0 {
				continue
			}
			rating := 1 + rng.Intn(5)
			comment := comments[rng.Intn(len(comments))]
			tag, err := pool.Exec(ctx,
				`INSERT INTO reviews (user_id, restaurant_id, rating, comment)
				 VALUES ($1, $2, $3, $4)
				 ON CONFLICT ON CONSTRAINT reviews_user_restaurant_unique DO NOTHING`,
				u.id, r.id, rating, comment,
			)
			if err != nil {
				return count, fmt.Errorf("insert review for %s by %s: %w", r.name, u.email, err)
			}
			count += int(tag.RowsAffected())
		}
	}
	return count, nil
}

func seedFavorites(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) (int, error) {
	count := 0
	for _, r := range restaurants {
		for _, u := range users {
			if rng.Intn(2) == 0 {
				continue
			}
			tag, err := pool.Exec(ctx,
				`INSERT INTO favorites (user_id, restaurant_id)
				 VALUES ($1, $2)
				 ON CONFLICT DO NOTHING`,
				u.id, r.id,
			)
			if err != nil {
				return count, fmt.Errorf("insert favorite for %s by %s: %w", r.name, u.email, err)
			}
			count += int(tag.RowsAffected())
		}
	}
	return count, nil
}

// recomputeAggregates overwrites every restaurant's denormalized rating
// columns from its review rows, the same derivation the API performs after
// each mutation.
func recomputeAggregates(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx,
		`UPDATE restaurants r SET
			average_rating = COALESCE(s.avg_rating, 0),
			total_reviews  = COALESCE(s.review_count, 0),
			updated_at     = NOW()
		 FROM (
			SELECT restaurant_id, AVG(rating)::double precision AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			GROUP BY restaurant_id
		 ) s
		 WHERE r.id = s.restaurant_id`,
	)
	if err != nil {
		return fmt.Errorf("update aggregates: %w", err)
	}
	return nil
}
