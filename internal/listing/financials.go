package listing

// DerivedFinancials are the per-row figures recomputed from current inputs,
// in the settlement currency's display units.
type DerivedFinancials struct {
	CreatorRoyalty float64 `json:"creator_royalty"`
	MarketplaceFee float64 `json:"marketplace_fee"`
	Profit         float64 `json:"profit"`
}

// RowFinancials derives royalty, fee, and profit for one row.
// royalty = royaltyBps * price * quantity / 10000
// fee     = feeBps * price * quantity / 10000
// profit  = price * quantity - fee - royalty
func RowFinancials(l CandidateListing) DerivedFinancials {
	gross := parsePrice(l.Price) * float64(l.Quantity)
	royalty := gross * float64(l.Token.Collection.RoyaltiesBps) / 10000
	fee := gross * float64(l.FeeBps) / 10000

	return DerivedFinancials{
		CreatorRoyalty: royalty,
		MarketplaceFee: fee,
		Profit:         gross - fee - royalty,
	}
}

// TotalProfit sums per-row profit across the working set.
func (b *Builder) TotalProfit() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	var total float64
	for _, l := range b.listings {
		total += RowFinancials(l).Profit
	}
	return total
}
