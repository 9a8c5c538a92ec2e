package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nftfolio/batch-lister/internal/listing"
	"github.com/nftfolio/batch-lister/internal/submit"
	"github.com/nftfolio/batch-lister/pkg/types"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <listings.json>",
	Short: "Finalize a listing set into execution payloads",
	Long: `Reads a JSON file holding an array of candidate listings, finalizes
prices into minor-unit amounts, resolves expirations to absolute unix
timestamps, and prints the execution payloads as JSON.

Useful for checking what a listing set would submit without touching
the execution service.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

var snapshotCurrency string

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVarP(&snapshotCurrency, "currency", "c", "ETH", "Settlement currency symbol (ETH or WETH)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read listings file: %w", err)
	}

	var listings []listing.CandidateListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return fmt.Errorf("parse listings file: %w", err)
	}

	currency, found := currencyBySymbol(snapshotCurrency)
	if !found {
		return fmt.Errorf("unknown currency %q", snapshotCurrency)
	}

	snap, err := submit.BuildSnapshot(listings, currency, time.Now())
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}

	out, err := json.MarshalIndent(snap.Payloads(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode payloads: %w", err)
	}

	fmt.Printf("=== Execution Payloads (%d listings, %s) ===\n\n", len(snap.Entries), currency.Symbol)
	fmt.Println(string(out))

	return nil
}

func currencyBySymbol(symbol string) (types.Currency, bool) {
	for _, c := range listing.DefaultCurrencies {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return types.Currency{}, false
}
