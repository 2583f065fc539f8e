package execution

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"encoding/json"
)

// Level is one orderbook level.
type Level struct {
	Price float64
	Size  float64
}

type bookLevel struct {
	Price json.Number `json:"price"`
	Size  json.Number `json:"size"`
}

type bookResponse struct {
	Bids []bookLevel `json:"bids"`
	Asks []bookLevel `json:"asks"`
}

const bookDepth = 10

// Book fetches the top of the orderbook for a market. Callers are expected to
// fall back to static levels on error.
func (c *Client) Book(ctx context.Context, marketID string) (bids, asks []Level, err error) {
	url := fmt.Sprintf("%s/orderbook/%s", c.baseURL, marketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build orderbook request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch orderbook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("fetch orderbook: unexpected status %s", resp.Status)
	}

	var body bookResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, nil, fmt.Errorf("decode orderbook: %w", err)
	}

	return parseLevels(body.Bids), parseLevels(body.Asks), nil
}

func parseLevels(raw []bookLevel) []Level {
	levels := make([]Level, 0, bookDepth)
	for _, l := range raw {
		if len(levels) == bookDepth {
			break
		}
		price, err := strconv.ParseFloat(l.Price.String(), 64)
		if err != nil {
			continue
		}
		size, err := strconv.ParseFloat(l.Size.String(), 64)
		if err != nil {
			continue
		}
		levels = append(levels, Level{Price: price, Size: size})
	}
	return levels
}
