package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nftfolio/batch-lister/internal/listing"
	"github.com/nftfolio/batch-lister/pkg/types"
)

func TestCurrencyBySymbol(t *testing.T) {
	tests := []struct {
		symbol string
		found  bool
		native bool
	}{
		{"ETH", true, true},
		{"WETH", true, false},
		{"DOGE", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			currency, found := currencyBySymbol(tt.symbol)
			assert.Equal(t, tt.found, found, "lookup result mismatch")
			if found {
				assert.Equal(t, tt.symbol, currency.Symbol)
				assert.Equal(t, tt.native, currency.IsNative(), "native flag mismatch")
			}
		})
	}
}

func TestRunSnapshot(t *testing.T) {
	listings := []listing.CandidateListing{
		{
			Token: types.Token{
				Contract: "0xabc",
				TokenID:  "1",
				Kind:     "erc721",
				Name:     "Token #1",
			},
			Price:     "1.5",
			Quantity:  2,
			Orderbook: "reservoir",
			OrderKind: "seaport-v1.4",
		},
	}

	data, err := json.Marshal(listings)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	snapshotCurrency = "ETH"
	err = runSnapshot(snapshotCmd, []string{path})
	assert.NoError(t, err, "snapshot should finalize a valid listing set")
}

func TestRunSnapshot_BadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	snapshotCurrency = "ETH"
	err := runSnapshot(snapshotCmd, []string{path})
	assert.Error(t, err, "unparseable input should fail")
}

func TestRunSnapshot_UnknownCurrency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	snapshotCurrency = "DOGE"
	err := runSnapshot(snapshotCmd, []string{path})
	assert.Error(t, err, "unknown currency should fail")
}
