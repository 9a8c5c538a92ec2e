package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/nftfolio/batch-lister/internal/listing"
	"go.uber.org/zap"
)

// ListingsHandler handles HTTP requests for the working listing set.
type ListingsHandler struct {
	builder *listing.Builder
	logger  *zap.Logger
}

// NewListingsHandler creates a new listings handler.
func NewListingsHandler(builder *listing.Builder, logger *zap.Logger) *ListingsHandler {
	return &ListingsHandler{
		builder: builder,
		logger:  logger,
	}
}

// ListingRow represents one candidate listing for the HTTP response.
type ListingRow struct {
	Token          string  `json:"token"`
	TokenName      string  `json:"token_name"`
	Collection     string  `json:"collection"`
	Orderbook      string  `json:"orderbook"`
	OrderKind      string  `json:"order_kind"`
	Price          string  `json:"price"`
	Quantity       int     `json:"quantity"`
	Expiration     string  `json:"expiration"`
	CreatorRoyalty float64 `json:"creator_royalty"`
	MarketplaceFee float64 `json:"marketplace_fee"`
	Profit         float64 `json:"profit"`
}

// ListingsResponse represents the HTTP response for the listing set.
type ListingsResponse struct {
	Currency    string       `json:"currency"`
	Listings    []ListingRow `json:"listings"`
	TotalProfit float64      `json:"total_profit"`
	SubmitReady bool         `json:"submit_ready"`
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleListings handles GET /api/listings requests.
func (h *ListingsHandler) HandleListings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows := h.builder.Listings()
	out := make([]ListingRow, 0, len(rows))

	for _, row := range rows {
		fin := listing.RowFinancials(row)

		out = append(out, ListingRow{
			Token:          row.Token.Key(),
			TokenName:      row.Token.Name,
			Collection:     row.Token.Collection.Name,
			Orderbook:      row.Orderbook,
			OrderKind:      row.OrderKind,
			Price:          row.Price,
			Quantity:       row.Quantity,
			Expiration:     row.ExpirationOption.Text,
			CreatorRoyalty: fin.CreatorRoyalty,
			MarketplaceFee: fin.MarketplaceFee,
			Profit:         fin.Profit,
		})
	}

	response := ListingsResponse{
		Currency:    h.builder.Currency().Symbol,
		Listings:    out,
		TotalProfit: h.builder.TotalProfit(),
		SubmitReady: h.builder.SubmitReady(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
	}
}

// writeError writes a JSON error response.
func (h *ListingsHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{Error: message}
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-error-response", zap.Error(err))
	}
}
