package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/nftfolio/batch-lister/internal/submit"
	"go.uber.org/zap"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// RecordAttempt stores a submission attempt in PostgreSQL.
func (p *PostgresStorage) RecordAttempt(ctx context.Context, attempt *submit.Attempt) error {
	query := `
		INSERT INTO submission_attempts (
			id, created_at, listing_count, status, error
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.CreatedAt,
		attempt.ListingCount,
		attempt.Status,
		attempt.Error,
	)

	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	p.logger.Debug("attempt-stored",
		zap.String("attempt-id", attempt.ID.String()),
		zap.String("status", attempt.Status),
		zap.Int("listing-count", attempt.ListingCount))

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
