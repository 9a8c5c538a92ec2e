package types

// StepKind distinguishes the two units of work the execution service reports.
type StepKind string

const (
	// StepKindTransaction is an on-chain transaction (e.g. token approval).
	StepKindTransaction StepKind = "transaction"
	// StepKindSignature is an off-chain order signature.
	StepKindSignature StepKind = "signature"
)

// StepItemStatus is the execution service's per-item status.
type StepItemStatus string

const (
	StepItemIncomplete StepItemStatus = "incomplete"
	StepItemComplete   StepItemStatus = "complete"
)

// StepItem is one unit inside a step. OrderIndexes names the snapshot entries
// the item covers; it is nil until the service resolves them.
type StepItem struct {
	Status       StepItemStatus `json:"status"`
	OrderIndexes []int          `json:"orderIndexes,omitempty"`
}

// ExecutionStep is one step of the signing/execution pipeline as reported by
// the execution service. Steps with no items are not yet materialized.
type ExecutionStep struct {
	Kind        StepKind   `json:"kind"`
	Description string     `json:"description"`
	Items       []StepItem `json:"items"`
}

// ListingPayload is a finalized listing, ready for the execution service.
// WeiPrice is the total minor-unit amount (unit price times quantity) as an
// exact integer string.
type ListingPayload struct {
	Token          string `json:"token"` // "contract:tokenId"
	WeiPrice       string `json:"weiPrice"`
	Orderbook      string `json:"orderbook"`
	OrderKind      string `json:"orderKind"`
	Quantity       int    `json:"quantity"`
	ExpirationTime string `json:"expirationTime,omitempty"` // unix seconds, absent = never expires
	Currency       string `json:"currency,omitempty"`       // absent = native currency
}
