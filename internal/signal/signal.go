// Package signal standardizes payloads shared between the scoring, strategy, and ledger layers.
package signal

import "time"

// Confidence buckets opportunity quality into the tiers the scorer emits.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Action enumerates the decisions the ROI engine can return for a signal.
type Action string

const (
	ActionBuy     Action = "buy"
	ActionSell    Action = "sell"
	ActionMonitor Action = "monitor"
	ActionIgnore  Action = "ignore"
)

// Tradable reports whether the action moves money.
func (a Action) Tradable() bool { return a == ActionBuy || a == ActionSell }

// Opportunity is a scored (market, source) pair suspected of carrying
// resolution-relevant information. The full list is rebuilt every cycle.
type Opportunity struct {
	MarketID       string
	Question       string
	SourceURL      string
	RelevanceScore float64
	Confidence     Confidence
	Reason         string
	Domain         string
	Timestamp      time.Time
}

// TradingSignal is the auditable record of one opportunity passing through the
// generator. Executed flips false to true at most once and never reverts.
type TradingSignal struct {
	MarketID       string
	Action         Action
	Confidence     Confidence
	RelevanceScore float64
	Reason         string
	Source         string
	PotentialROI   float64

	InformationValue      bool
	PolymarketProbability float64

	DetectionTime            time.Time
	SignalTime               time.Time
	SignalGenerationTimeMs   float64
	ReactionTimeMs           float64
	EstimatedExecutionTimeMs float64
	TotalLatencyMs           float64
	TimingGrade              string

	Executed    bool
	PnLExpected float64
	StakeAmount float64

	CurrentPrice float64
	CatchupSpeed float64
	SpentPrice   float64
}
