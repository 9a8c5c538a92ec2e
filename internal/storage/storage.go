package storage

import (
	"context"

	"github.com/nftfolio/batch-lister/internal/submit"
)

// Storage is the interface for persisting submission attempts.
type Storage interface {
	// RecordAttempt stores a submission attempt.
	RecordAttempt(ctx context.Context, attempt *submit.Attempt) error

	// Close closes the storage connection.
	Close() error
}
