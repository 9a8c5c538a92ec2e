package listing

import "github.com/nftfolio/batch-lister/pkg/types"

// DefaultMarketplaces is the fixed marketplace catalog for this deployment.
// Only OpenSea charges a per-collection marketplace fee.
var DefaultMarketplaces = []types.Marketplace{
	{
		Name:      "Reservoir",
		ImageURL:  "https://api.reservoir.tools/redirect/sources/reservoir/logo/v2",
		Orderbook: "reservoir",
		OrderKind: "seaport-v1.4",
	},
	{
		Name:        "OpenSea",
		ImageURL:    "https://api.reservoir.tools/redirect/sources/opensea/logo/v2",
		Orderbook:   "opensea",
		OrderKind:   "seaport-v1.4",
		ChargesFees: true,
	},
}

// DefaultCurrencies is the supported settlement currency catalog. The native
// currency comes first and is the default.
var DefaultCurrencies = []types.Currency{
	{
		Contract: "0x0000000000000000000000000000000000000000",
		Symbol:   "ETH",
		Decimals: 18,
	},
	{
		Contract: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		Symbol:   "WETH",
		Decimals: 18,
	},
}
