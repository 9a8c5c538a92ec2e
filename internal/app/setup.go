package app

import (
	"context"
	"fmt"

	"github.com/nftfolio/batch-lister/internal/execsvc"
	"github.com/nftfolio/batch-lister/internal/feeoracle"
	"github.com/nftfolio/batch-lister/internal/listing"
	"github.com/nftfolio/batch-lister/internal/storage"
	"github.com/nftfolio/batch-lister/internal/submit"
	"github.com/nftfolio/batch-lister/pkg/cache"
	"github.com/nftfolio/batch-lister/pkg/config"
	"github.com/nftfolio/batch-lister/pkg/healthprobe"
	"github.com/nftfolio/batch-lister/pkg/httpserver"
	"github.com/nftfolio/batch-lister/pkg/wallet"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger, opts *Options) (*App, error) {
	if opts == nil {
		opts = &Options{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := setupHealthChecker()

	// Setup cache
	quoteCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	oracle := setupFeeOracle(cfg, quoteCache)
	builder := setupBuilder(logger)
	resolver := setupResolver(cfg, logger, builder, oracle)

	// Setup HTTP server (needs builder for the listings view)
	httpServer := setupHTTPServer(cfg, logger, healthChecker, builder)

	// Setup storage
	attemptStorage, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	// Setup wallet
	walletAdapter, err := setupWallet(cfg, logger, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup wallet: %w", err)
	}

	execClient := setupExecutionClient(cfg, logger)

	submitter, err := setupSubmitter(logger, walletAdapter, execClient, attemptStorage, builder)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup submitter: %w", err)
	}

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		builder:       builder,
		resolver:      resolver,
		feeOracle:     oracle,
		wallet:        walletAdapter,
		execClient:    execClient,
		submitter:     submitter,
		storage:       attemptStorage,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupHealthChecker() *healthprobe.HealthChecker {
	return healthprobe.New()
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	builder *listing.Builder,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Builder:       builder,
	})
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 10000, // 10x expected max items (1000 collections)
		MaxCost:     1000,  // Maximum 1000 items in cache
		BufferItems: 64,    // Buffer size for Get operations
		Logger:      logger,
	})
}

func setupFeeOracle(cfg *config.Config, quoteCache cache.Cache) feeoracle.Oracle {
	client := feeoracle.NewClient(cfg.FeeOracleURL)
	return feeoracle.NewCachedOracle(client, quoteCache, cfg.FeeQuoteCacheTTL)
}

func setupBuilder(logger *zap.Logger) *listing.Builder {
	return listing.New(&listing.Config{
		Logger:     logger,
		Catalog:    listing.DefaultMarketplaces,
		Currencies: listing.DefaultCurrencies,
		Notifier:   &logNotifier{logger: logger},
	})
}

func setupResolver(cfg *config.Config, logger *zap.Logger, builder *listing.Builder, oracle feeoracle.Oracle) *listing.Resolver {
	return listing.NewResolver(&listing.ResolverConfig{
		Builder: builder,
		Oracle:  oracle,
		Logger:  logger,
		Timeout: cfg.FeeLookupTimeout,
	})
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.StorageMode == "postgres" {
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	}

	return storage.NewConsoleStorage(logger), nil
}

func setupWallet(cfg *config.Config, logger *zap.Logger, opts *Options) (wallet.Adapter, error) {
	return wallet.NewKeyWallet(&wallet.KeyWalletConfig{
		PrivateKeyHex: opts.PrivateKeyHex,
		ChainID:       cfg.ExecutionChain,
		RPCURLs: map[uint64]string{
			cfg.ExecutionChain: cfg.RPCURL,
		},
		Logger: logger,
	})
}

func setupExecutionClient(cfg *config.Config, logger *zap.Logger) execsvc.Service {
	return execsvc.NewClient(execsvc.Config{
		APIURL: cfg.ExecutionAPIURL,
		WSURL:  cfg.ExecutionWSURL,
		Logger: logger,
	})
}

func setupSubmitter(
	logger *zap.Logger,
	walletAdapter wallet.Adapter,
	execClient execsvc.Service,
	attemptStorage storage.Storage,
	builder *listing.Builder,
) (*submit.Submitter, error) {
	return submit.New(&submit.Config{
		Wallet:   walletAdapter,
		Service:  execClient,
		Recorder: attemptStorage,
		Logger:   logger,
		OnFinished: func() {
			// A dismissed successful submission clears the working set.
			builder.SetSelectedItems(nil)
		},
	})
}

// logNotifier surfaces builder notices through the structured log.
type logNotifier struct {
	logger *zap.Logger
}

func (n *logNotifier) Notify(title, description string) {
	n.logger.Warn("listing-notice",
		zap.String("title", title),
		zap.String("description", description))
}
