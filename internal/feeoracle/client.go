package feeoracle

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// Quote is a per-collection fee quote: the marketplace fee rate in basis
// points and whether the collection permits third-party listing at all.
type Quote struct {
	Bps            int
	ListingEnabled bool
}

// Oracle resolves marketplace fees per collection.
type Oracle interface {
	CollectionFees(ctx context.Context, collectionID string) (Quote, error)
}

// Client fetches fee quotes from the marketplace fee API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new fee oracle client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CollectionFees fetches the fee quote for a collection.
func (c *Client) CollectionFees(ctx context.Context, collectionID string) (quote Quote, err error) {
	url := fmt.Sprintf("%s/collections/%s/fees", c.baseURL, collectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return quote, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		FeeLookupsTotal.WithLabelValues("error").Inc()
		return quote, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		FeeLookupsTotal.WithLabelValues("error").Inc()
		return quote, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var data struct {
		Fee struct {
			Bps int `json:"bps"`
		} `json:"fee"`
		ListingEnabled bool `json:"listingEnabled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		FeeLookupsTotal.WithLabelValues("error").Inc()
		return quote, fmt.Errorf("decode response: %w", err)
	}

	FeeLookupsTotal.WithLabelValues("ok").Inc()

	quote = Quote{
		Bps:            data.Fee.Bps,
		ListingEnabled: data.ListingEnabled,
	}
	return quote, nil
}
