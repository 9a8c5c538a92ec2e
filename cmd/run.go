package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/nftfolio/batch-lister/internal/app"
	"github.com/nftfolio/batch-lister/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the listing service",
	Long: `Starts the batch listing service, which will:
1. Serve the working listing set over HTTP
2. Resolve marketplace fees through the fee oracle
3. Submit finalized listings through the execution service
4. Record submission attempts to storage

Set WALLET_PRIVATE_KEY to enable submissions; without it the service
runs in read-only mode.`,
	RunE: runService,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
}

func runService(cmd *cobra.Command, args []string) error {
	// Load .env if present
	_ = godotenv.Load()

	// Load config
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create logger
	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := &app.Options{
		PrivateKeyHex: os.Getenv("WALLET_PRIVATE_KEY"),
	}

	application, err := app.New(cfg, logger, opts)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	// Run app
	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
