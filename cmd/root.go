package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "batch-lister",
	Short: "NFT batch listing orchestrator",
	Long: `Batch listing orchestrator that maintains a working set of candidate
NFT listings across marketplaces, resolves marketplace fees, derives
pricing and profit, and drives externally-signed submission sequences
through an execution service.

The service exposes the working set over HTTP and records submission
attempts to storage.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	// Flags can be added here if needed
}
