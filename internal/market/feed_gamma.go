package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type gammaMarket struct {
	ID               string   `json:"id"`
	Question         string   `json:"question"`
	Description      string   `json:"description"`
	Probability      *float64 `json:"probability"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"created_at"`
	ResolutionSource string   `json:"resolution_source"`
}

type gammaResponse struct {
	Markets []gammaMarket `json:"markets"`
}

func (f *Feed) fetchGamma(ctx context.Context) ([]Market, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.gammaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build gamma request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gamma request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gamma request: unexpected status %s", resp.Status)
	}

	var body gammaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode gamma response: %w", err)
	}

	now := f.clock()
	markets := make([]Market, 0, len(body.Markets))
	for _, gm := range body.Markets {
		// Items missing any required field are skipped, not fatal.
		if gm.ID == "" || gm.Question == "" || gm.Probability == nil || gm.Status != "open" {
			continue
		}

		createdAt := now
		isNew := false
		if gm.CreatedAt == "" {
			isNew = true
		} else if t, perr := time.Parse(time.RFC3339, gm.CreatedAt); perr == nil {
			createdAt = t
			isNew = freshFor(t, now)
		}

		resolution := gm.ResolutionSource
		if resolution == "" {
			if extracted, ok := ExtractResolutionSource(gm.Description); ok {
				resolution = extracted
			}
		}

		markets = append(markets, Market{
			ID:               gm.ID,
			Question:         gm.Question,
			Description:      gm.Description,
			Domain:           Classify(gm.Question, gm.Description),
			Probability:      *gm.Probability * 100,
			ResolutionSource: resolution,
			CreatedAt:        createdAt,
			IsNew:            isNew,
		})
	}
	return markets, nil
}
