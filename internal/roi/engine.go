// Package roi defines the computation boundary for return, decision, and
// sizing math. The interface mirrors the lifecycle of a swappable native
// core: callers must Init once at bootstrap, may Configure defaults, and are
// expected to CleanupCache periodically from the cycle loop.
package roi

import "polyarb-go/internal/signal"

// Engine is the pluggable ROI and decision core. All methods are safe for
// concurrent use and cheap enough for per-signal calls.
type Engine interface {
	// Init prepares the engine. A false return is fatal at bootstrap.
	Init() bool
	// Configure sets the default fee, catchup speed, and action time.
	Configure(fee, catchupSpeed, actionTime float64)
	// ComputeROI returns the expected return for entering at currentPrice
	// given the declared costs. Pure with respect to its inputs.
	ComputeROI(currentPrice, fee, catchupSpeed, actionTime float64) float64
	// Decide maps an expected ROI and a confidence score to an action.
	Decide(roi, confidence float64) signal.Action
	// SizePosition returns the stake for a trade, clamped to the safety band.
	SizePosition(capital, roi float64, confidence signal.Confidence) float64
	// ValidateTrade rejects zero/oversized amounts and empty market ids.
	ValidateTrade(marketID string, amount, balance float64) bool
	// EstimateLatency returns the expected round trip to an endpoint in ms.
	EstimateLatency(endpoint string) float64
	// OptimizeMemory prewarms internal tables; optional, never required.
	OptimizeMemory()
	// CleanupCache drops memoized results once the cache runs hot.
	CleanupCache()
}
