package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"polyarb-go/internal/signal"
)

func TestSummaryWritesLogLine(t *testing.T) {
	dir := t.TempDir()
	fl, err := NewFileLog(dir)
	if err != nil {
		t.Fatalf("NewFileLog returned error: %v", err)
	}
	defer fl.Close()

	signals := []signal.TradingSignal{
		{MarketID: "m1", Action: signal.ActionBuy, Source: "https://www.sec.gov/a", PotentialROI: 0.05, StakeAmount: 2, PnLExpected: 0.1, TotalLatencyMs: 20},
		{MarketID: "m2", Action: signal.ActionSell, Source: "simulation", PotentialROI: 0.03, StakeAmount: 1, PnLExpected: 0.03, TotalLatencyMs: 30},
		{MarketID: "m3", Action: signal.ActionMonitor},
	}

	Summary(zerolog.Nop(), signals, 3, 97, fl)

	data, err := os.ReadFile(filepath.Join(dir, "polymarket.log"))
	if err != nil {
		t.Fatalf("summary line missing: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "2 trading signals (1 buy / 1 sell)") {
		t.Fatalf("unexpected summary line: %s", line)
	}
}

func TestSummaryNoSignals(t *testing.T) {
	dir := t.TempDir()
	fl, err := NewFileLog(dir)
	if err != nil {
		t.Fatalf("NewFileLog returned error: %v", err)
	}
	defer fl.Close()

	Summary(zerolog.Nop(), nil, 0, 100, fl)
	if _, err := os.Stat(filepath.Join(dir, "polymarket.log")); !os.IsNotExist(err) {
		t.Fatalf("no summary line expected without signals")
	}
}

func TestTopSources(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 3, "c": 3, "d": 2}
	top := topSources(counts, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	// Count descending, name ascending on ties.
	if top[0].name != "b" || top[1].name != "c" || top[2].name != "d" {
		t.Fatalf("unexpected order: %+v", top)
	}
}

func TestSourceName(t *testing.T) {
	if got := sourceName("simulation"); got != "SIMULATION" {
		t.Fatalf("simulation source should display as SIMULATION, got %s", got)
	}
	if got := sourceName("https://www.sec.gov/a"); got != "www.sec.gov" {
		t.Fatalf("unexpected source name: %s", got)
	}
}
