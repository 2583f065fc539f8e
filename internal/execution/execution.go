// Package execution places orders against the CLOB and reads its orderbooks.
package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"polyarb-go/internal/metrics"
	"polyarb-go/internal/signal"
)

const defaultBaseURL = "https://clob.polymarket.com"

// Order is one outbound trade request. Amount and price travel as 4-dp fixed
// strings on the wire.
type Order struct {
	MarketID string
	Side     signal.Action
	Amount   decimal.Decimal
	Price    decimal.Decimal
}

type orderRequest struct {
	MarketID string `json:"market_id"`
	Side     string `json:"side"`
	Amount   string `json:"amount"`
	Price    string `json:"price"`
}

// Client submits orders and fetches orderbooks over HTTP.
type Client struct {
	http       *http.Client
	baseURL    string
	privateKey string
	log        zerolog.Logger
}

// ClientOption configures Client construction parameters.
type ClientOption func(*Client)

// WithBaseURL overrides the CLOB endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient constructs an execution client. privateKey is carried for request
// signing once the venue requires it; order placement itself is plain HTTP.
func NewClient(privateKey string, log zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		http:       &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		privateKey: privateKey,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts an order. Rejections are reported as (false, nil): a blocked
// or failed order is an expected venue outcome, not a pipeline error. Only
// transport-level problems return an error.
func (c *Client) Submit(ctx context.Context, o Order) (bool, error) {
	body, err := json.Marshal(orderRequest{
		MarketID: o.MarketID,
		Side:     string(o.Side),
		Amount:   o.Amount.StringFixed(4),
		Price:    o.Price.StringFixed(4),
	})
	if err != nil {
		return false, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	text := string(respBody)

	if isBlockedResponse(text) {
		c.log.Warn().
			Str("market", o.MarketID).
			Int("status", resp.StatusCode).
			Msg("order blocked by venue edge protection")
		metrics.TradesExecuted.WithLabelValues("blocked").Inc()
		return false, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().
			Str("market", o.MarketID).
			Int("status", resp.StatusCode).
			Str("body", truncate(text, 200)).
			Msg("order rejected")
		metrics.TradesExecuted.WithLabelValues("rejected").Inc()
		return false, nil
	}

	c.log.Info().
		Str("market", o.MarketID).
		Str("side", string(o.Side)).
		Str("amount", o.Amount.StringFixed(4)).
		Str("price", o.Price.StringFixed(4)).
		Msg("order accepted")
	metrics.TradesExecuted.WithLabelValues("real").Inc()
	return true, nil
}

func isBlockedResponse(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "cloudflare") || strings.Contains(lower, "blocked")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
