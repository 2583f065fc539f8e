// Package bot wires the full pipeline into the repeating monitoring cycle:
// fetch markets, poll resolution sources, score opportunities, generate
// signals, and settle them against the ledger.
package bot

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"polyarb-go/internal/config"
	"polyarb-go/internal/execution"
	"polyarb-go/internal/history"
	"polyarb-go/internal/ledger"
	"polyarb-go/internal/market"
	"polyarb-go/internal/metrics"
	"polyarb-go/internal/report"
	"polyarb-go/internal/roi"
	"polyarb-go/internal/scoring"
	"polyarb-go/internal/signal"
	"polyarb-go/internal/source"
	"polyarb-go/internal/strategy"
)

// Engine owns one bot instance: the pipeline components plus the signals
// accumulated across cycles. Signals are never cleared; the ledger's
// first-match marking keeps settled ones from re-executing.
type Engine struct {
	cfg       *config.Config
	log       zerolog.Logger
	feed      *market.Feed
	monitor   *source.Monitor
	scorer    *scoring.Scorer
	tracker   *history.Tracker
	generator *strategy.Generator
	ledger    *ledger.Ledger
	roi       roi.Engine
	files     *report.FileLog
	sender    ledger.Sender // nil in simulation mode
	clock     func() time.Time

	registry map[string][]string // nil means the live source registry

	signals     []signal.TradingSignal
	lastMarkets []market.Market
	cycles      int
	streaming   bool
}

// EngineOption configures Engine construction parameters.
type EngineOption func(*Engine)

// WithSender attaches a real order sender; without one, fills are simulated.
func WithSender(s ledger.Sender) EngineOption {
	return func(e *Engine) { e.sender = s }
}

// WithClock injects the time source used for cycle timestamps.
func WithClock(clock func() time.Time) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithRegistry overrides the resolution-source registry (tests pass a local
// or empty set so no live endpoint is touched).
func WithRegistry(registry map[string][]string) EngineOption {
	return func(e *Engine) { e.registry = registry }
}

// WithFeed overrides the market feed (tests use the stub provider).
func WithFeed(f *market.Feed) EngineOption {
	return func(e *Engine) {
		if f != nil {
			e.feed = f
		}
	}
}

// New assembles the pipeline from configuration. The ROI engine is built by
// the caller so it can be initialized and configured before the loop starts.
func New(cfg *config.Config, log zerolog.Logger, engine roi.Engine, rng *rand.Rand, opts ...EngineOption) (*Engine, error) {
	files, err := report.NewFileLog(cfg.App.LogDir)
	if err != nil {
		return nil, err
	}

	feed := market.NewFeed(cfg.Feed.Provider, log,
		market.WithGammaURL(cfg.Feed.GammaURL),
		market.WithWSURL(cfg.Feed.WSURL),
	)

	monitor := source.NewMonitor(log,
		source.WithClient(&http.Client{Timeout: time.Duration(cfg.Monitor.TimeoutMs) * time.Millisecond}),
		source.WithInterRequestDelay(time.Duration(cfg.Monitor.InterRequestDelayMs)*time.Millisecond),
		source.WithMaxConcurrent(cfg.Monitor.MaxConcurrent),
		source.WithRecorder(files),
	)

	var backfill history.Backfill
	if cfg.Feed.Provider == market.ProviderGamma {
		backfill = market.NewHistoryClient(cfg.Feed.GammaURL, nil)
	}
	tracker := history.NewTracker(rng, log, backfill)

	genOpts := []strategy.GeneratorOption{
		strategy.WithRecorder(files),
		strategy.WithCosts(cfg.Trading.Fee, cfg.Trading.CatchupSpeed),
	}
	if cfg.Trading.ClobURL != "" {
		// Orderbook reads need no credentials.
		books := execution.NewClient("", log, execution.WithBaseURL(cfg.Trading.ClobURL))
		genOpts = append(genOpts, strategy.WithBooks(books))
	}
	generator := strategy.NewGenerator(log, engine, tracker, genOpts...)

	e := &Engine{
		cfg:       cfg,
		log:       log,
		feed:      feed,
		monitor:   monitor,
		scorer:    scoring.NewScorer(rng, log),
		tracker:   tracker,
		generator: generator,
		ledger:    ledger.New(cfg.Trading.StartingCapital, rng, log),
		roi:       engine,
		files:     files,
		clock:     time.Now,
	}
	e.ledger.SetRecorder(files)
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Ledger exposes the balance tracker.
func (e *Engine) Ledger() *ledger.Ledger { return e.ledger }

// Signals returns the accumulated signal slice.
func (e *Engine) Signals() []signal.TradingSignal { return e.signals }

// Cycle runs one full monitoring pass. Every phase degrades rather than
// aborts; the cycle itself never fails once the engine is constructed.
func (e *Engine) Cycle(ctx context.Context) {
	e.cycles++
	start := e.clock()
	e.log.Info().Int("cycle", e.cycles).Msg("monitoring cycle started")

	markets, err := e.feed.Fetch(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("market fetch failed")
	}
	e.lastMarkets = markets
	metrics.MarketsFetched.Add(float64(len(markets)))

	registry := e.registry
	if registry == nil {
		registry = source.Registry()
	}
	samples := e.monitor.CheckAll(ctx, registry)

	opportunities := e.scorer.Detect(markets, samples, registry, e.clock())

	fresh := e.generator.Generate(ctx, markets, opportunities, e.ledger.Balance())
	e.signals = append(e.signals, fresh...)

	executed := e.ledger.ExecuteAll(ctx, e.signals, e.sender)

	report.Summary(e.log, e.signals, len(opportunities), e.ledger.Balance(), e.files)

	if e.cycles%e.cfg.Trading.CacheCleanupCycles == 0 {
		e.roi.CleanupCache()
	}

	metrics.CyclesTotal.Inc()
	e.log.Info().
		Int("cycle", e.cycles).
		Int("markets", len(markets)).
		Int("opportunities", len(opportunities)).
		Int("signals_new", len(fresh)).
		Int("trades_executed", executed).
		Dur("elapsed", e.clock().Sub(start)).
		Msg("monitoring cycle complete")
}

// Run repeats cycles with the configured pause until the context is canceled.
// When live prices are enabled, the first cycle's market set seeds a CLOB
// stream that feeds the price tracker between cycles.
func (e *Engine) Run(ctx context.Context) {
	pause := time.Duration(e.cfg.Trading.CyclePauseSecs) * time.Second
	for {
		e.Cycle(ctx)
		e.maybeStreamPrices(ctx)
		select {
		case <-time.After(pause):
		case <-ctx.Done():
			e.log.Info().Int("cycles", e.cycles).Msg("bot stopped")
			if err := e.files.Close(); err != nil {
				e.log.Warn().Err(err).Msg("closing log files")
			}
			return
		}
	}
}

func (e *Engine) maybeStreamPrices(ctx context.Context) {
	if !e.cfg.Feed.LivePrices || e.streaming || len(e.lastMarkets) == 0 {
		return
	}
	e.streaming = true

	ids := make([]string, 0, len(e.lastMarkets))
	for _, m := range e.lastMarkets {
		ids = append(ids, m.ID)
	}

	updates := make(chan market.PriceUpdate, 256)
	go func() {
		if err := e.feed.StreamPrices(ctx, ids, updates); err != nil && ctx.Err() == nil {
			e.log.Warn().Err(err).Msg("price stream ended")
		}
		close(updates)
	}()
	go func() {
		for u := range updates {
			e.tracker.UpdatePrice(ctx, u.MarketID, u.Price, u.Ts)
		}
	}()
}
