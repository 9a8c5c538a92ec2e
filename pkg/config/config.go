package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Execution service
	ExecutionAPIURL string
	ExecutionWSURL  string
	ExecutionChain  uint64

	// Wallet
	RPCURL string

	// Fee oracle
	FeeOracleURL     string
	FeeQuoteCacheTTL time.Duration
	FeeLookupTimeout time.Duration

	// Storage
	StorageMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Execution service defaults
		ExecutionAPIURL: getEnvOrDefault("EXECUTION_API_URL", "https://api.reservoir.tools"),
		ExecutionWSURL:  getEnvOrDefault("EXECUTION_WS_URL", "wss://api.reservoir.tools/ws"),
		ExecutionChain:  uint64(getIntOrDefault("EXECUTION_CHAIN_ID", 1)),

		// Wallet defaults
		RPCURL: getEnvOrDefault("RPC_URL", "https://eth.llamarpc.com"),

		// Fee oracle defaults
		FeeOracleURL:     getEnvOrDefault("FEE_ORACLE_URL", "https://api.opensea.io"),
		FeeQuoteCacheTTL: getDurationOrDefault("FEE_QUOTE_CACHE_TTL", 30*time.Minute),
		FeeLookupTimeout: getDurationOrDefault("FEE_LOOKUP_TIMEOUT", 10*time.Second),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "batchlister"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "batchlister123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "batch_lister"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.ExecutionAPIURL == "" {
		return fmt.Errorf("EXECUTION_API_URL cannot be empty")
	}

	if c.ExecutionWSURL == "" {
		return fmt.Errorf("EXECUTION_WS_URL cannot be empty")
	}

	if c.FeeOracleURL == "" {
		return fmt.Errorf("FEE_ORACLE_URL cannot be empty")
	}

	if c.ExecutionChain == 0 {
		return fmt.Errorf("EXECUTION_CHAIN_ID must be a positive chain id")
	}

	if c.StorageMode != "postgres" && c.StorageMode != "console" {
		return fmt.Errorf("STORAGE_MODE must be 'postgres' or 'console', got %q", c.StorageMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
