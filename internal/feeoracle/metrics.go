package feeoracle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// FeeLookupsTotal tracks fee oracle lookups by result.
	FeeLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batchlister_feeoracle_lookups_total",
			Help: "Total number of fee oracle lookups",
		},
		[]string{"result"},
	)

	// QuoteCacheHitsTotal tracks fee quote cache hits.
	QuoteCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batchlister_feeoracle_cache_hits_total",
		Help: "Total number of fee quote cache hits",
	})

	// QuoteCacheMissesTotal tracks fee quote cache misses.
	QuoteCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batchlister_feeoracle_cache_misses_total",
		Help: "Total number of fee quote cache misses",
	})
)
