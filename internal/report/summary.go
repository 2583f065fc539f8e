package report

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"polyarb-go/internal/signal"
)

// Summary condenses one cycle's accumulated signals for the operator: trade
// counts, ROI totals, stake, expected PnL, average latency, the top trigger
// sources, and the best trade.
func Summary(log zerolog.Logger, signals []signal.TradingSignal, opportunities int, balance float64, files *FileLog) {
	if len(signals) == 0 {
		log.Info().Int("opportunities", opportunities).Float64("balance", balance).Msg("cycle complete, no signals")
		return
	}

	var trading []signal.TradingSignal
	for _, s := range signals {
		if s.Action.Tradable() {
			trading = append(trading, s)
		}
	}

	if len(trading) == 0 {
		log.Info().
			Int("signals", len(signals)).
			Int("opportunities", opportunities).
			Float64("balance", balance).
			Msg("cycle complete, all signals monitoring")
		return
	}

	var totalROI, totalStake, totalPnL, totalLatency float64
	var buys, sells int
	sourceCounts := make(map[string]int)
	best := trading[0]
	for _, s := range trading {
		totalROI += s.PotentialROI
		totalStake += s.StakeAmount
		totalPnL += s.PnLExpected
		totalLatency += s.TotalLatencyMs
		if s.Action == signal.ActionBuy {
			buys++
		} else {
			sells++
		}
		sourceCounts[sourceName(s.Source)]++
		if s.PotentialROI > best.PotentialROI {
			best = s
		}
	}
	avgROI := totalROI / float64(len(trading))
	avgLatency := totalLatency / float64(len(trading))

	log.Info().
		Int("trading_signals", len(trading)).
		Int("total_signals", len(signals)).
		Int("buys", buys).
		Int("sells", sells).
		Float64("total_roi", totalROI).
		Float64("avg_roi", avgROI).
		Float64("total_stake", totalStake).
		Float64("expected_pnl", totalPnL).
		Float64("avg_latency_ms", avgLatency).
		Float64("balance", balance).
		Msg("cycle summary")

	for _, tc := range topSources(sourceCounts, 3) {
		log.Info().Str("source", tc.name).Int("trades", tc.count).Msg("top trigger source")
	}
	log.Info().
		Str("market", best.MarketID).
		Float64("roi", best.PotentialROI).
		Str("source", sourceName(best.Source)).
		Msg("best trade")

	if files != nil {
		files.Append("polymarket.log", fmt.Sprintf(
			"Summary: %d trading signals (%d buy / %d sell) | total ROI %.1f%% | stake %.2f | expected PnL %.2f | avg latency %.0fms | balance %.2f",
			len(trading), buys, sells, totalROI*100, totalStake, totalPnL, avgLatency, balance))
	}
}

type sourceCount struct {
	name  string
	count int
}

func topSources(counts map[string]int, n int) []sourceCount {
	out := make([]sourceCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, sourceCount{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sourceName(source string) string {
	if source == "simulation" {
		return "SIMULATION"
	}
	return ExtractDomain(source)
}
