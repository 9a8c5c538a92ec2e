package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nftfolio/batch-lister/internal/listing"
	"github.com/nftfolio/batch-lister/internal/submit"
	"go.uber.org/zap"
)

// Run starts the application and blocks until shutdown.
func (a *App) Run() error {
	a.logger.Info("application-starting",
		zap.String("storage-mode", a.cfg.StorageMode),
		zap.String("log-level", a.cfg.LogLevel))

	// Start HTTP server
	a.wg.Add(1)
	go a.runHTTPServer()

	// Mark as ready
	a.healthChecker.SetReady(true)

	a.logger.Info("application-ready",
		zap.String("http-addr", ":"+a.cfg.HTTPPort),
		zap.String("execution-api", a.cfg.ExecutionAPIURL))

	// Wait for shutdown signal
	return a.waitForShutdown()
}

func (a *App) runHTTPServer() {
	defer a.wg.Done()
	err := a.httpServer.Start()
	if err != nil {
		a.logger.Error("http-server-error", zap.Error(err))
	}
}

// Builder exposes the listing model builder for host integrations.
func (a *App) Builder() *listing.Builder {
	return a.builder
}

// Resolver exposes the fee resolver for host integrations.
func (a *App) Resolver() *listing.Resolver {
	return a.resolver
}

// Submitter exposes the batch submitter for host integrations.
func (a *App) Submitter() *submit.Submitter {
	return a.submitter
}

func (a *App) waitForShutdown() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutdown-signal-received", zap.String("signal", sig.String()))
	case <-a.ctx.Done():
		a.logger.Info("context-cancelled")
	}

	return a.Shutdown()
}
