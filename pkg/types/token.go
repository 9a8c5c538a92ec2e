package types

// Attribute is a single trait on a token, with the floor ask price of the
// cheapest listing sharing that trait (0 when unknown).
type Attribute struct {
	Key           string  `json:"key"`
	Value         string  `json:"value"`
	FloorAskPrice float64 `json:"floor_ask_price,omitempty"`
}

// Collection holds the collection-level data the pricing logic needs.
type Collection struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	RoyaltiesBps  int     `json:"royalties_bps"`
	FloorAskPrice float64 `json:"floor_ask_price,omitempty"` // native units, 0 when no floor
}

// Token is an owned token eligible for listing.
type Token struct {
	Contract   string      `json:"contract"`
	TokenID    string      `json:"token_id"`
	Kind       string      `json:"kind"` // "erc721" or "erc1155"
	Name       string      `json:"name,omitempty"`
	Image      string      `json:"image,omitempty"`
	OwnedCount int         `json:"owned_count"`
	Collection Collection  `json:"collection"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Key returns the token's identity as "contract:tokenId".
func (t Token) Key() string {
	return t.Contract + ":" + t.TokenID
}

// MultiEdition reports whether more than one copy of this token can be listed.
func (t Token) MultiEdition() bool {
	return t.Kind == "erc1155" && t.OwnedCount > 1
}

// TopTraitPrice returns the highest trait floor across the token's attributes,
// or 0 when no attribute carries a floor.
func (t Token) TopTraitPrice() float64 {
	var top float64
	for _, attr := range t.Attributes {
		if attr.FloorAskPrice > top {
			top = attr.FloorAskPrice
		}
	}
	return top
}
