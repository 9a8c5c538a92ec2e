package execsvc

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/nftfolio/batch-lister/pkg/types"
	"go.uber.org/zap"
)

// Client is the HTTP+WebSocket execution service client. A batch is posted
// to the execution API, then step updates for the attempt are streamed over
// a dedicated WebSocket connection until the service reports a terminal
// status.
type Client struct {
	apiURL     string
	wsURL      string
	httpClient *http.Client
	logger     *zap.Logger
	config     Config
}

// Config holds execution client configuration.
type Config struct {
	APIURL      string
	WSURL       string
	DialTimeout time.Duration
	ReadTimeout time.Duration // per-message; progress events are minutes apart while the wallet waits
	Logger      *zap.Logger
}

// NewClient creates a new execution service client.
func NewClient(cfg Config) *Client {
	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 10 * time.Second
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 10 * time.Minute
	}
	cfg.DialTimeout = dialTimeout
	cfg.ReadTimeout = readTimeout

	return &Client{
		apiURL: cfg.APIURL,
		wsURL:  cfg.WSURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: cfg.Logger,
		config: cfg,
	}
}

type submitRequest struct {
	Maker    string                 `json:"maker"`
	Listings []types.ListingPayload `json:"listings"`
}

type submitResponse struct {
	ExecutionID string `json:"executionId"`
}

// progressMessage is one streamed update for an execution attempt.
type progressMessage struct {
	Status string                `json:"status"` // "pending", "complete", "failed"
	Error  string                `json:"error,omitempty"`
	Steps  []types.ExecutionStep `json:"steps"`
}

// SubmitListings posts the batch and streams progress until terminal.
func (c *Client) SubmitListings(ctx context.Context, payloads []types.ListingPayload, signer common.Address, onProgress ProgressFunc) error {
	executionID, err := c.createExecution(ctx, payloads, signer)
	if err != nil {
		return fmt.Errorf("create execution: %w", err)
	}

	c.logger.Info("execution-created",
		zap.String("execution-id", executionID),
		zap.Int("listings", len(payloads)))

	err = c.streamProgress(ctx, executionID, onProgress)
	if err != nil {
		return fmt.Errorf("stream progress: %w", err)
	}

	return nil
}

func (c *Client) createExecution(ctx context.Context, payloads []types.ListingPayload, signer common.Address) (string, error) {
	body, err := json.Marshal(submitRequest{
		Maker:    signer.Hex(),
		Listings: payloads,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/execute/list", c.apiURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var data submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if data.ExecutionID == "" {
		return "", fmt.Errorf("API returned no execution id")
	}

	return data.ExecutionID, nil
}

// streamProgress reads progress messages for one execution until the
// service reports a terminal status. Events arrive in increasing step
// order; the client forwards each one as-is without buffering.
func (c *Client) streamProgress(ctx context.Context, executionID string, onProgress ProgressFunc) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.DialTimeout,
	}

	url := fmt.Sprintf("%s/executions/%s", c.wsURL, executionID)
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	// Close the connection when the context is cancelled so ReadMessage
	// unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))

		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read message: %w", err)
		}

		var msg progressMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Warn("progress-message-unparseable", zap.Error(err))
			continue
		}

		if onProgress != nil && msg.Steps != nil {
			onProgress(msg.Steps)
		}

		switch msg.Status {
		case "complete":
			c.logger.Info("execution-complete", zap.String("execution-id", executionID))
			return nil
		case "failed":
			c.logger.Warn("execution-failed",
				zap.String("execution-id", executionID),
				zap.String("error", msg.Error))
			if msg.Error == "" {
				msg.Error = "execution failed"
			}
			return fmt.Errorf("%s", msg.Error)
		}
	}
}
