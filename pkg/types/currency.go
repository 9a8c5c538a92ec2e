package types

import "github.com/ethereum/go-ethereum/common"

// Currency is a settlement currency for listings.
type Currency struct {
	Contract string `json:"contract"`
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`
}

// IsNative reports whether the currency is the chain's native currency,
// represented by the zero-address sentinel.
func (c Currency) IsNative() bool {
	return common.HexToAddress(c.Contract) == (common.Address{})
}
