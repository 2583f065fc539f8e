package strategy

import "polyarb-go/internal/signal"

// Grade buckets an end-to-end latency into the operator-facing timing scale.
// Upper bounds are exclusive; anything at or past 180ms is a D.
func Grade(latencyMs float64) string {
	switch {
	case latencyMs < 15:
		return "S++"
	case latencyMs < 25:
		return "S+"
	case latencyMs < 35:
		return "S"
	case latencyMs < 45:
		return "A+"
	case latencyMs < 60:
		return "A"
	case latencyMs < 80:
		return "B+"
	case latencyMs < 120:
		return "B"
	case latencyMs < 180:
		return "C"
	default:
		return "D"
	}
}

// EstimateExecutionTime predicts how long an order would take to execute, in
// milliseconds. Unknown actions carry a 5ms base; high-probability and
// high-relevance signals execute faster, and the network/API terms scale with
// relevance and probability.
func EstimateExecutionTime(action signal.Action, probability, relevance float64) float64 {
	var base float64
	switch action {
	case signal.ActionBuy:
		base = 8
	case signal.ActionSell:
		base = 6
	case signal.ActionMonitor, signal.ActionIgnore:
		base = 0
	default:
		base = 5
	}

	adjusted := base
	if probability > 0.8 {
		adjusted *= 0.4
	} else if probability < 0.3 {
		adjusted *= 0.8
	}
	if relevance > 0.8 {
		adjusted *= 0.5
	} else if relevance < 0.3 {
		adjusted *= 0.7
	}

	networkLatency := 2 + relevance*5
	apiLatency := 5 + probability*10

	total := adjusted + networkLatency + apiLatency
	if total < 0 {
		return 0
	}
	return total
}
