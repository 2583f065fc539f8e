package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Name != "polyarb-test" {
		t.Fatalf("unexpected App.Name: %s", cfg.App.Name)
	}
	if cfg.Feed.Provider != "stub" {
		t.Fatalf("unexpected Feed.Provider: %s", cfg.Feed.Provider)
	}
	if cfg.Monitor.TimeoutMs != 2000 {
		t.Fatalf("unexpected Monitor.TimeoutMs: %d", cfg.Monitor.TimeoutMs)
	}
	if cfg.Monitor.InterRequestDelayMs != 100 {
		t.Fatalf("unexpected Monitor.InterRequestDelayMs: %d", cfg.Monitor.InterRequestDelayMs)
	}
	if cfg.Monitor.MaxConcurrent != 4 {
		t.Fatalf("unexpected Monitor.MaxConcurrent: %d", cfg.Monitor.MaxConcurrent)
	}
	if !cfg.Trading.SimulationMode {
		t.Fatalf("expected simulation mode")
	}
	if cfg.Trading.StartingCapital != 250 {
		t.Fatalf("unexpected starting capital: %.2f", cfg.Trading.StartingCapital)
	}
	if cfg.Trading.Fee != 0.03 {
		t.Fatalf("unexpected fee: %.3f", cfg.Trading.Fee)
	}
	if cfg.Trading.MinStake != 1 || cfg.Trading.MaxStake != 5 {
		t.Fatalf("unexpected stake band: %.2f/%.2f", cfg.Trading.MinStake, cfg.Trading.MaxStake)
	}
	if cfg.Trading.CacheCleanupCycles != 7 {
		t.Fatalf("unexpected cache cleanup cycles: %d", cfg.Trading.CacheCleanupCycles)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	if err := os.WriteFile(path, []byte("app:\n  name: minimal\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Feed.Provider != "gamma" {
		t.Fatalf("expected gamma default provider, got %s", cfg.Feed.Provider)
	}
	if cfg.Monitor.InterRequestDelayMs != 500 {
		t.Fatalf("expected 500ms default delay, got %d", cfg.Monitor.InterRequestDelayMs)
	}
	if cfg.Monitor.MaxConcurrent != 1 {
		t.Fatalf("expected sequential default, got %d", cfg.Monitor.MaxConcurrent)
	}
	if cfg.Trading.MinStake != 0.5 || cfg.Trading.MaxStake != 8.0 {
		t.Fatalf("expected default stake band, got %.2f/%.2f", cfg.Trading.MinStake, cfg.Trading.MaxStake)
	}
	if cfg.Trading.CyclePauseSecs != 10 {
		t.Fatalf("expected 10s default pause, got %d", cfg.Trading.CyclePauseSecs)
	}
	if cfg.Trading.CacheCleanupCycles != 10 {
		t.Fatalf("expected cleanup every 10 cycles, got %d", cfg.Trading.CacheCleanupCycles)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCredentialsComplete(t *testing.T) {
	c := Credentials{PrivateKey: "k", WalletAddress: "w", RPCURL: "r"}
	if !c.Complete() {
		t.Fatalf("expected complete credentials")
	}
	c.RPCURL = ""
	if c.Complete() {
		t.Fatalf("expected incomplete credentials")
	}
}
