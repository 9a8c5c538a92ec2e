package submit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts submission attempts by terminal status.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batchlister_submit_submissions_total",
		Help: "Total number of submission attempts",
	}, []string{"status"})

	// ProgressEventsTotal counts progress events received from the
	// execution service.
	ProgressEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batchlister_submit_progress_events_total",
		Help: "Total number of execution progress events processed",
	})

	// SubmissionDurationSeconds observes wall time from snapshot to
	// resolution.
	SubmissionDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "batchlister_submit_duration_seconds",
		Help:    "Duration of submission attempts in seconds",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})
)
