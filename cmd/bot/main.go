package main

import (
	"bufio"
	"context"
	"flag"
	"math/rand"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"polyarb-go/internal/bot"
	"polyarb-go/internal/config"
	"polyarb-go/internal/execution"
	"polyarb-go/internal/ledger"
	"polyarb-go/internal/metrics"
	"polyarb-go/internal/risk"
	"polyarb-go/internal/roi"
	"polyarb-go/internal/util"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "internal/config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback := util.NewLogger("info")
		fallback.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel)

	if cfg.App.MetricsAddr != "" {
		_ = metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	simulation := promptMode(log, cfg.Trading.SimulationMode)

	var sender ledger.Sender
	if !simulation {
		creds := config.LoadCredentials()
		if !creds.Complete() {
			log.Warn().Msg("real trading credentials incomplete, falling back to simulation")
			simulation = true
		} else {
			sender = execution.NewClient(creds.PrivateKey, log,
				execution.WithBaseURL(cfg.Trading.ClobURL))
		}
	}

	engine := roi.NewCachedEngine(risk.Band{MinStake: cfg.Trading.MinStake, MaxStake: cfg.Trading.MaxStake})
	if !engine.Init() {
		log.Fatal().Msg("roi engine failed to initialize")
	}
	engine.Configure(cfg.Trading.Fee, cfg.Trading.CatchupSpeed, 0.001)
	engine.OptimizeMemory()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	opts := []bot.EngineOption{}
	if sender != nil {
		opts = append(opts, bot.WithSender(sender))
	}
	b, err := bot.New(cfg, log, engine, rng, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("assemble bot")
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mode := "SIMULATION"
	if !simulation {
		mode = "REAL"
	}
	log.Info().
		Str("mode", mode).
		Str("provider", cfg.Feed.Provider).
		Float64("capital", cfg.Trading.StartingCapital).
		Msg("bot started")

	b.Run(ctx)
}

// promptMode asks the operator for the trading mode on stdin. Anything other
// than an explicit "2" keeps simulation.
func promptMode(log zerolog.Logger, defaultSim bool) bool {
	if !defaultSim {
		return false
	}
	log.Info().Msg("select mode: 1 = simulation (default), 2 = real trading")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return true
	}
	return strings.TrimSpace(line) != "2"
}
