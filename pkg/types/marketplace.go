package types

// Marketplace is a static descriptor of a listing destination.
type Marketplace struct {
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	Orderbook   string `json:"orderbook"`
	OrderKind   string `json:"order_kind"`
	ChargesFees bool   `json:"charges_fees"` // marketplace fee resolved per collection
}
