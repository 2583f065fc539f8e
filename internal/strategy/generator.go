// Package strategy turns scored opportunities into graded trading signals.
package strategy

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"polyarb-go/internal/history"
	"polyarb-go/internal/market"
	"polyarb-go/internal/metrics"
	"polyarb-go/internal/report"
	"polyarb-go/internal/roi"
	"polyarb-go/internal/scoring"
	"polyarb-go/internal/signal"
)

// Recorder receives timestamped lines for the trade timing log.
type Recorder interface {
	Append(category, line string)
}

// Generator derives trading signals from opportunities: it estimates the
// market probability, measures its own reaction latency, asks the ROI engine
// for the expected return and decision, and grades the end-to-end timing.
type Generator struct {
	log      zerolog.Logger
	engine   roi.Engine
	history  *history.Tracker
	books    BookSource // may be nil
	recorder Recorder   // may be nil
	fee      float64
	catchup  float64
	clock    func() time.Time
}

// GeneratorOption configures Generator construction parameters.
type GeneratorOption func(*Generator)

// WithBooks attaches an orderbook source for the market-move estimate.
func WithBooks(b BookSource) GeneratorOption {
	return func(g *Generator) { g.books = b }
}

// WithRecorder attaches a category log recorder for timing lines.
func WithRecorder(r Recorder) GeneratorOption {
	return func(g *Generator) { g.recorder = r }
}

// WithCosts overrides the fee and catchup speed fed to the ROI engine.
func WithCosts(fee, catchup float64) GeneratorOption {
	return func(g *Generator) {
		if fee > 0 {
			g.fee = fee
		}
		if catchup > 0 {
			g.catchup = catchup
		}
	}
}

// WithClock injects the time source used for latency measurement.
func WithClock(clock func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// NewGenerator constructs a generator around the given engine and tracker.
func NewGenerator(log zerolog.Logger, engine roi.Engine, tracker *history.Tracker, opts ...GeneratorOption) *Generator {
	g := &Generator{
		log:     log,
		engine:  engine,
		history: tracker,
		fee:     0.02,
		catchup: 0.025,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces one signal per opportunity. Market probabilities are
// recorded into the price history first, then each opportunity is priced,
// decided, sized against the available capital, and graded. Signals are never
// deduplicated against earlier cycles; the ledger handles idempotency.
func (g *Generator) Generate(ctx context.Context, markets []market.Market, opportunities []signal.Opportunity, capital float64) []signal.TradingSignal {
	now := g.clock()
	for _, m := range markets {
		g.history.UpdatePrice(ctx, m.ID, m.Probability, now)
	}

	signals := make([]signal.TradingSignal, 0, len(opportunities))
	for _, opp := range opportunities {
		signals = append(signals, g.generateOne(ctx, opp, capital))
	}
	return signals
}

func (g *Generator) generateOne(ctx context.Context, opp signal.Opportunity, capital float64) signal.TradingSignal {
	start := g.clock()

	infoValue := scoring.InformationValue(opp.MarketID, opp.SourceURL)
	probability := scoring.EstimateProbability(opp)
	currentPrice := probability

	move := g.marketMove(ctx, opp.MarketID)
	direction := "down"
	if infoValue {
		direction = "up"
	}

	reactionMs := float64(g.clock().Sub(start)) / float64(time.Millisecond)
	// Pre-decision estimate: the action is unknown yet, so the default base
	// cost applies.
	estimatedMs := EstimateExecutionTime("", probability, opp.RelevanceScore)
	totalMs := reactionMs + estimatedMs

	expectedROI := g.engine.ComputeROI(currentPrice, g.fee, g.catchup, totalMs/1000)
	if math.IsNaN(expectedROI) || math.IsInf(expectedROI, 0) {
		expectedROI = 0
	}

	action := g.engine.Decide(expectedROI, opp.RelevanceScore)
	stake := g.engine.SizePosition(capital, expectedROI, opp.Confidence)
	pnl := expectedROI * stake

	sourceDomain := report.ExtractDomain(opp.SourceURL)
	reason := enrichedReason(opp.Question, sourceDomain, infoValue)
	grade := Grade(totalMs)

	g.history.UpdatePrice(ctx, opp.MarketID, currentPrice, g.clock())
	g.history.UpdateSpeed(opp.MarketID, g.catchup)

	sig := signal.TradingSignal{
		MarketID:                 opp.MarketID,
		Action:                   action,
		Confidence:               opp.Confidence,
		RelevanceScore:           opp.RelevanceScore,
		Reason:                   reason,
		Source:                   opp.SourceURL,
		PotentialROI:             expectedROI,
		InformationValue:         infoValue,
		PolymarketProbability:    probability,
		DetectionTime:            opp.Timestamp,
		SignalTime:               g.clock(),
		SignalGenerationTimeMs:   reactionMs,
		ReactionTimeMs:           reactionMs,
		EstimatedExecutionTimeMs: estimatedMs,
		TotalLatencyMs:           totalMs,
		TimingGrade:              grade,
		Executed:                 false,
		PnLExpected:              pnl,
		StakeAmount:              stake,
		CurrentPrice:             currentPrice,
		CatchupSpeed:             g.catchup,
		SpentPrice:               currentPrice,
	}

	metrics.SignalsTotal.WithLabelValues(string(action)).Inc()
	g.log.Info().
		Str("market", opp.MarketID).
		Str("action", string(action)).
		Float64("roi", expectedROI).
		Float64("move", move).
		Str("direction", direction).
		Float64("stake", stake).
		Str("grade", grade).
		Msg("signal generated")

	if g.recorder != nil {
		g.recorder.Append("trade_timing.log", fmt.Sprintf(
			"TRADE | %s | %s | reaction=%.0fms | execution=%.0fms | total=%.0fms | grade=%s | roi=%.1f%% | stake=%.2f | pnl=%.2f",
			action, opp.MarketID, reactionMs, estimatedMs, totalMs, grade, expectedROI*100, stake, pnl))
	}
	return sig
}

func enrichedReason(question, sourceDomain string, infoValue bool) string {
	impact := "negative"
	if infoValue {
		impact = "positive"
	}
	return fmt.Sprintf("source %s: keyword %q detected, %s impact on %q",
		sourceDomain, keywordExample(sourceDomain, infoValue), impact, question)
}

func keywordExample(sourceDomain string, infoValue bool) string {
	pick := func(yes, no string) string {
		if infoValue {
			return yes
		}
		return no
	}
	switch sourceDomain {
	case "www.sec.gov":
		return pick("approval", "rejection")
	case "www.federalreserve.gov":
		return pick("cut", "hold")
	case "www.whitehouse.gov":
		return pick("support", "oppose")
	case "www.reuters.com", "www.bbc.com":
		return pick("positive", "negative")
	case "www.coingecko.com", "coinmarketcap.com":
		return pick("bullish", "bearish")
	default:
		return pick("favorable", "unfavorable")
	}
}
