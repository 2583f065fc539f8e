package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"polyarb-go/internal/history"
)

// HistoryClient fetches real price history from the gamma API for the
// tracker's first-observation backfill.
type HistoryClient struct {
	client  *http.Client
	baseURL string
}

// NewHistoryClient constructs a backfill client against the given gamma base
// URL (the markets endpoint; the per-market history path is derived from it).
func NewHistoryClient(baseURL string, client *http.Client) *HistoryClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultGammaURL
	}
	return &HistoryClient{client: client, baseURL: baseURL}
}

type gammaHistoryResponse struct {
	History []struct {
		Timestamp int64   `json:"t"`
		Price     float64 `json:"p"`
	} `json:"history"`
}

// PriceHistory fetches the recorded price series for one market. An empty
// series is not an error; the tracker falls back to synthetic seeding.
func (h *HistoryClient) PriceHistory(ctx context.Context, marketID string) ([]history.Point, error) {
	url := fmt.Sprintf("%s/%s/price-history", h.baseURL, marketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var decoded gammaHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode price history: %w", err)
	}

	points := make([]history.Point, 0, len(decoded.History))
	for _, p := range decoded.History {
		if p.Price <= 0 || p.Price >= 1 {
			continue
		}
		points = append(points, history.Point{Ts: time.Unix(p.Timestamp, 0), Price: p.Price})
	}
	return points, nil
}
