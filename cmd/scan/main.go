// Command scan runs a single offline monitoring cycle against the stub
// market set and prints the resulting signals. Useful for smoke-testing the
// pipeline without touching any live endpoint.
package main

import (
	"context"
	"flag"
	"math/rand"
	"time"

	"polyarb-go/internal/bot"
	"polyarb-go/internal/config"
	"polyarb-go/internal/market"
	"polyarb-go/internal/risk"
	"polyarb-go/internal/roi"
	"polyarb-go/internal/util"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to config file")
	seed := flag.Int64("seed", time.Now().UnixNano(), "rng seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback := util.NewLogger("info")
		fallback.Fatal().Err(err).Msg("load config")
	}
	cfg.Feed.Provider = market.ProviderStub
	cfg.Feed.LivePrices = false
	log := util.NewLogger(cfg.App.LogLevel)

	engine := roi.NewCachedEngine(risk.Band{MinStake: cfg.Trading.MinStake, MaxStake: cfg.Trading.MaxStake})
	if !engine.Init() {
		log.Fatal().Msg("roi engine failed to initialize")
	}
	engine.Configure(cfg.Trading.Fee, cfg.Trading.CatchupSpeed, 0.001)

	rng := rand.New(rand.NewSource(*seed))
	b, err := bot.New(cfg, log, engine, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("assemble bot")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	b.Cycle(ctx)

	for _, s := range b.Signals() {
		log.Info().
			Str("market", s.MarketID).
			Str("action", string(s.Action)).
			Float64("roi", s.PotentialROI).
			Float64("stake", s.StakeAmount).
			Str("grade", s.TimingGrade).
			Bool("executed", s.Executed).
			Msg("signal")
	}
	for _, endpoint := range []string{cfg.Feed.GammaURL, cfg.Trading.ClobURL} {
		if endpoint == "" {
			continue
		}
		log.Info().Str("endpoint", endpoint).Float64("latency_ms", engine.EstimateLatency(endpoint)).Msg("endpoint latency estimate")
	}
	log.Info().Float64("balance", b.Ledger().Balance()).Float64("expected_pnl", b.Ledger().ExpectedPnL()).Msg("scan complete")
}
