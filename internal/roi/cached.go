package roi

import (
	"math"
	"strings"
	"sync"

	"polyarb-go/internal/risk"
	"polyarb-go/internal/signal"
)

const (
	maxCacheEntries  = 1000
	cleanupThreshold = 800 // 80% of the cap

	// piYes is the subjective probability that a binary market resolves YES
	// once resolution-relevant information has been detected.
	piYes = 0.55
)

type cacheKey struct {
	price, fee, catchup, action int64
}

// CachedEngine is the in-process production engine. It memoizes ComputeROI on
// inputs quantized to 1e-4 so repeated signals for the same market hit the
// cache instead of recomputing.
type CachedEngine struct {
	mu        sync.Mutex
	fee       float64
	catchup   float64
	action    float64
	fixedCost float64
	band      risk.Band
	cache     map[cacheKey]float64
}

// NewCachedEngine constructs an engine with the standard venue defaults:
// 3% fee on profit, 0.8/s catchup, 25ms action time, and a small fixed
// per-share cost.
func NewCachedEngine(band risk.Band) *CachedEngine {
	if band.MaxStake <= 0 {
		band = risk.DefaultBand()
	}
	return &CachedEngine{
		fee:       0.03,
		catchup:   0.8,
		action:    0.025,
		fixedCost: 0.0005,
		band:      band,
		cache:     make(map[cacheKey]float64),
	}
}

// Init reports readiness. The in-process engine has nothing to load.
func (e *CachedEngine) Init() bool { return true }

// Configure replaces the default fee, catchup speed, and action time used
// when callers pass zero values.
func (e *CachedEngine) Configure(fee, catchupSpeed, actionTime float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fee = fee
	e.catchup = catchupSpeed
	e.action = actionTime
}

// ComputeROI prices a binary-market entry. Below 0.5 the engine bets YES,
// otherwise NO; the effective entry price carries the catchup drift over the
// action time and is clamped to [0.05, 0.95]; the fee applies to profit only.
func (e *CachedEngine) ComputeROI(currentPrice, fee, catchupSpeed, actionTime float64) float64 {
	key := cacheKey{
		price:   quantize(currentPrice),
		fee:     quantize(fee),
		catchup: quantize(catchupSpeed),
		action:  quantize(actionTime),
	}

	e.mu.Lock()
	if cached, ok := e.cache[key]; ok {
		e.mu.Unlock()
		return cached
	}
	g := e.fixedCost
	e.mu.Unlock()

	betYes := currentPrice < 0.5
	var p float64
	if betYes {
		p = currentPrice + catchupSpeed*actionTime
	} else {
		p = (1 - currentPrice) + catchupSpeed*actionTime
	}
	if p > 0.95 {
		p = 0.95
	}
	if p < 0.05 {
		p = 0.05
	}

	var expectedProfit float64
	if betYes {
		expectedProfit = piYes*(1-p)*(1-fee) - (1-piYes)*p - g
	} else {
		expectedProfit = (1-piYes)*(1-p)*(1-fee) - piYes*p - g
	}
	roi := expectedProfit / (p + g)

	e.mu.Lock()
	if len(e.cache) >= maxCacheEntries {
		e.cache = make(map[cacheKey]float64)
	}
	e.cache[key] = roi
	e.mu.Unlock()
	return roi
}

// Decide maps ROI and confidence to an action. Thresholds are deliberately
// aggressive so marginal opportunities still get graded.
func (e *CachedEngine) Decide(roi, confidence float64) signal.Action {
	if roi > 0.02 && confidence > 0.4 {
		return signal.ActionBuy
	}
	if roi > 0.015 && confidence > 0.35 {
		return signal.ActionSell
	}
	return signal.ActionMonitor
}

// SizePosition applies a fixed risk fraction per confidence tier, scaled by
// the standing volatility and timing factors, then clamps to the safety band.
func (e *CachedEngine) SizePosition(capital, roi float64, confidence signal.Confidence) float64 {
	const (
		volatilityFactor = 1.2
		timeFactor       = 1.1
	)

	fraction := 0.02
	switch confidence {
	case signal.ConfidenceHigh:
		fraction = 0.08
	case signal.ConfidenceMedium:
		fraction = 0.03
	case signal.ConfidenceLow:
		fraction = 0.015
	}

	return e.band.Clamp(capital * fraction * volatilityFactor * timeFactor)
}

// ValidateTrade enforces the minimal pre-trade checks: a positive amount, no
// more than 10% of the balance, and a non-empty market id.
func (e *CachedEngine) ValidateTrade(marketID string, amount, balance float64) bool {
	if amount <= 0 || amount > balance*0.1 {
		return false
	}
	return marketID != ""
}

var latencyTable = map[string]float64{
	"gamma-api.polymarket.com": 35,
	"clob.polymarket.com":      40,
	"api.stlouisfed.org":       50,
	"www.federalreserve.gov":   45,
	"www.sec.gov":              55,
	"www.coindesk.com":         60,
}

const defaultLatencyMs = 50

// EstimateLatency returns the expected round trip to an endpoint in
// milliseconds from the precomputed table.
func (e *CachedEngine) EstimateLatency(endpoint string) float64 {
	for host, ms := range latencyTable {
		if strings.Contains(endpoint, host) {
			return ms
		}
	}
	return defaultLatencyMs
}

// OptimizeMemory prewarms the memoized cache across the price range with the
// configured defaults.
func (e *CachedEngine) OptimizeMemory() {
	e.mu.Lock()
	fee, catchup, action := e.fee, e.catchup, e.action
	e.mu.Unlock()

	for i := 0; i < maxCacheEntries; i++ {
		price := float64(i) / float64(maxCacheEntries)
		e.ComputeROI(price, fee, catchup, action)
	}
}

// CleanupCache clears the memoized results once the cache passes 80% of its
// cap. Called periodically from the cycle loop.
func (e *CachedEngine) CleanupCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.cache) > cleanupThreshold {
		e.cache = make(map[cacheKey]float64)
	}
}

func quantize(v float64) int64 {
	return int64(math.Round(v * 10000))
}
