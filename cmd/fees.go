package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nftfolio/batch-lister/internal/feeoracle"
	"github.com/spf13/cobra"
)

var feesCmd = &cobra.Command{
	Use:   "fees <collection-id>",
	Short: "Query marketplace fees for a collection",
	Long: `Queries the fee oracle for a collection's marketplace fee quote and
whether listing is enabled for it.`,
	Args: cobra.ExactArgs(1),
	RunE: runFees,
}

var feesOracleURL string

func init() {
	rootCmd.AddCommand(feesCmd)

	feesCmd.Flags().StringVarP(&feesOracleURL, "oracle", "o", "", "Fee oracle base URL (defaults to FEE_ORACLE_URL)")
}

func runFees(cmd *cobra.Command, args []string) error {
	// Load .env
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found\n")
	}

	baseURL := feesOracleURL
	if baseURL == "" {
		baseURL = os.Getenv("FEE_ORACLE_URL")
	}
	if baseURL == "" {
		return fmt.Errorf("fee oracle URL not set (use --oracle or FEE_ORACLE_URL)")
	}

	collectionID := args[0]

	client := feeoracle.NewClient(baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	quote, err := client.CollectionFees(ctx, collectionID)
	if err != nil {
		return fmt.Errorf("fetch collection fees: %w", err)
	}

	fmt.Printf("=== Collection Fees ===\n\n")
	fmt.Printf("Collection:      %s\n", collectionID)
	fmt.Printf("Fee:             %d bps (%.2f%%)\n", quote.Bps, float64(quote.Bps)/100)
	fmt.Printf("Listing enabled: %t\n", quote.ListingEnabled)

	return nil
}
