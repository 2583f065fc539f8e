package scoring

import (
	"strings"

	"polyarb-go/internal/signal"
)

// EstimateProbability approximates the current market probability for an
// opportunity from its relevance, a per-market hash wobble, and the trust
// profile of its source. Result is clamped to [0.1, 0.9].
func EstimateProbability(opp signal.Opportunity) float64 {
	prob := 0.5
	if opp.RelevanceScore > 0.8 {
		prob = 0.7
	} else if opp.RelevanceScore < 0.3 {
		prob = 0.3
	}

	if opp.MarketID != "" {
		prob += (float64(CharSum(opp.MarketID)%10) - 5.0) * 0.01
	}

	src := strings.ToLower(opp.SourceURL)
	switch {
	case strings.Contains(src, "federalreserve"):
		prob += 0.10
	case strings.Contains(src, "sec.gov"):
		prob += 0.05
	case strings.Contains(src, "newsapi"):
		prob -= 0.05
	}

	if prob < 0.1 {
		return 0.1
	}
	if prob > 0.9 {
		return 0.9
	}
	return prob
}
