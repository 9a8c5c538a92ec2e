package app

import (
	"context"
	"sync"

	"github.com/nftfolio/batch-lister/internal/execsvc"
	"github.com/nftfolio/batch-lister/internal/feeoracle"
	"github.com/nftfolio/batch-lister/internal/listing"
	"github.com/nftfolio/batch-lister/internal/storage"
	"github.com/nftfolio/batch-lister/internal/submit"
	"github.com/nftfolio/batch-lister/pkg/config"
	"github.com/nftfolio/batch-lister/pkg/healthprobe"
	"github.com/nftfolio/batch-lister/pkg/httpserver"
	"github.com/nftfolio/batch-lister/pkg/wallet"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	builder       *listing.Builder
	resolver      *listing.Resolver
	feeOracle     feeoracle.Oracle
	wallet        wallet.Adapter
	execClient    execsvc.Service
	submitter     *submit.Submitter
	storage       storage.Storage
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Options holds application options.
type Options struct {
	PrivateKeyHex string // optional signer key; without it submissions fail preconditions
}
