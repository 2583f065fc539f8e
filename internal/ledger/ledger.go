// Package ledger tracks the available balance and settles trading signals,
// either against the live venue or a simulated fill model.
package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"polyarb-go/internal/execution"
	"polyarb-go/internal/metrics"
	"polyarb-go/internal/signal"
)

// Simulated fill rates per side.
const (
	buySuccessRate  = 0.90
	sellSuccessRate = 0.85
)

// Sender submits a real order. A nil Sender switches the ledger to simulated
// fills.
type Sender interface {
	Submit(ctx context.Context, o execution.Order) (bool, error)
}

// Recorder receives timestamped lines for the category log files.
type Recorder interface {
	Append(category, line string)
}

// Ledger owns the running balance and the executed/expected PnL tallies.
type Ledger struct {
	mu          sync.Mutex
	balance     float64
	pnlExpected float64
	rng         *rand.Rand
	log         zerolog.Logger
	recorder    Recorder // may be nil
}

// New constructs a ledger with the given starting balance.
func New(startingBalance float64, rng *rand.Rand, log zerolog.Logger) *Ledger {
	return &Ledger{balance: startingBalance, rng: rng, log: log}
}

// SetRecorder attaches a category log recorder.
func (l *Ledger) SetRecorder(r Recorder) { l.recorder = r }

// Balance returns the available balance.
func (l *Ledger) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// ExpectedPnL returns the cumulative expected PnL of executed trades.
func (l *Ledger) ExpectedPnL() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pnlExpected
}

// ExecuteAll settles every unexecuted buy/sell signal in the slice, in order.
// Buys price at the market probability, sells at its complement; the token
// amount is stake divided by price. With a nil sender, fills are simulated at
// the per-side success rates.
//
// Settlement runs in three passes like the books it models: execute, then
// mark, then debit. Marking matches on (market id, source) and flips only the
// first matching signal, so a repeated signal for the same pair stays
// unexecuted until a later cycle settles it separately. All balance checks in
// one call see the balance as of its start; the floor at zero catches the
// case where several fills together overdraw it.
func (l *Ledger) ExecuteAll(ctx context.Context, signals []signal.TradingSignal, sender Sender) int {
	available := l.Balance()

	type fill struct {
		marketID string
		source   string
		stake    float64
		pnl      float64
	}
	var fills []fill

	for i := range signals {
		s := &signals[i]
		if !s.Action.Tradable() || s.Executed {
			continue
		}
		if available < s.StakeAmount {
			l.log.Info().
				Str("market", s.MarketID).
				Float64("stake", s.StakeAmount).
				Float64("balance", available).
				Msg("trade skipped, insufficient balance")
			continue
		}

		price := s.PolymarketProbability
		if s.Action == signal.ActionSell {
			price = 1 - s.PolymarketProbability
		}
		amount := s.StakeAmount / price

		var success bool
		if sender == nil {
			rate := buySuccessRate
			if s.Action == signal.ActionSell {
				rate = sellSuccessRate
			}
			success = l.rng.Float64() < rate
			if success {
				metrics.TradesExecuted.WithLabelValues("sim").Inc()
			}
		} else {
			ok, err := sender.Submit(ctx, execution.Order{
				MarketID: s.MarketID,
				Side:     s.Action,
				Amount:   decimal.NewFromFloat(amount),
				Price:    decimal.NewFromFloat(price),
			})
			if err != nil {
				l.log.Warn().Err(err).Str("market", s.MarketID).Msg("trade submission failed")
			}
			success = ok
		}

		if !success {
			l.log.Warn().Str("market", s.MarketID).Str("action", string(s.Action)).Msg("trade execution failed")
			continue
		}

		fills = append(fills, fill{marketID: s.MarketID, source: s.Source, stake: s.StakeAmount, pnl: s.PnLExpected})
		l.log.Info().
			Str("market", s.MarketID).
			Str("action", string(s.Action)).
			Float64("stake", s.StakeAmount).
			Float64("price", price).
			Float64("expected_pnl", s.PnLExpected).
			Msg("trade executed")
		if l.recorder != nil {
			l.recorder.Append("polymarket.log", fmt.Sprintf("Trade executed: %s | %s | stake %.2f | price %.4f | expected PnL %.2f",
				s.Action, s.MarketID, s.StakeAmount, price, s.PnLExpected))
		}
	}

	for _, f := range fills {
		for i := range signals {
			if signals[i].MarketID == f.marketID && signals[i].Source == f.source {
				signals[i].Executed = true
				break
			}
		}
	}

	l.mu.Lock()
	for _, f := range fills {
		l.balance -= f.stake
		if l.balance < 0 {
			l.balance = 0
		}
		l.pnlExpected += f.pnl
	}
	l.mu.Unlock()

	return len(fills)
}
