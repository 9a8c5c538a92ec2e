package storage

import (
	"context"
	"fmt"

	"github.com/nftfolio/batch-lister/internal/submit"
	"go.uber.org/zap"
)

// ConsoleStorage implements Storage by pretty-printing to console.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a new console storage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		logger: logger,
	}
}

// RecordAttempt pretty-prints a submission attempt to console.
func (c *ConsoleStorage) RecordAttempt(ctx context.Context, attempt *submit.Attempt) error {
	fmt.Println("\n" + "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("SUBMISSION ATTEMPT\n")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("ID:       %s\n", attempt.ID.String()[:8])
	fmt.Printf("Time:     %s\n", attempt.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Listings: %d\n", attempt.ListingCount)
	if attempt.Status == "complete" {
		fmt.Printf("Status:   ✅ complete\n")
	} else {
		fmt.Printf("Status:   ❌ %s\n", attempt.Status)
		if attempt.Error != "" {
			fmt.Printf("Error:    %s\n", attempt.Error)
		}
	}
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}
