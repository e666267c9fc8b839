package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reviewsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviews_created_total",
		Help: "Total number of reviews created",
	})

	reviewsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviews_deleted_total",
		Help: "Total number of reviews deleted",
	})

	favoritesToggledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "favorites_toggled_total",
		Help: "Total number of favorite toggles by resulting state",
	}, []string{"favorited"})

	ratingRecomputeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rating_recompute_failures_total",
		Help: "Total number of rating aggregate recomputes that failed after a successful mutation",
	})
)
