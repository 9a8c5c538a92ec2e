package listing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// RowsGeneratedTotal tracks candidate rows created.
	RowsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batchlister_listing_rows_generated_total",
		Help: "Total number of candidate listing rows generated",
	})

	// RowUpdatesTotal tracks replace-by-key row updates.
	RowUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batchlister_listing_row_updates_total",
		Help: "Total number of candidate listing row updates",
	})

	// RowEvictionsTotal tracks rows evicted because the collection disallows
	// listing on their marketplace.
	RowEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batchlister_listing_row_evictions_total",
		Help: "Total number of rows evicted by fee-oracle rejection",
	})

	// FeeQuotesAppliedTotal tracks fee quotes applied to rows.
	FeeQuotesAppliedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batchlister_listing_fee_quotes_applied_total",
		Help: "Total number of fee quotes applied to rows",
	})
)
