// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string
	Env         string
	MetricsAddr string
	LogLevel    string
	LogDir      string `yaml:"log_dir"`
}

// Feed describes where market snapshots and live prices come from.
type Feed struct {
	Provider   string `yaml:"provider"` // stub|gamma
	GammaURL   string `yaml:"gamma_url"`
	WSURL      string `yaml:"ws_url"`
	LivePrices bool   `yaml:"live_prices"`
}

// Monitor tunes the resolution-source polling loop.
type Monitor struct {
	TimeoutMs           int `yaml:"timeout_ms"`
	InterRequestDelayMs int `yaml:"inter_request_delay_ms"`
	MaxConcurrent       int `yaml:"max_concurrent"`
}

// Trading groups the capital, cost, and cadence knobs of the cycle loop.
type Trading struct {
	SimulationMode     bool    `yaml:"simulation_mode"`
	StartingCapital    float64 `yaml:"starting_capital"`
	Fee                float64 `yaml:"fee"`
	CatchupSpeed       float64 `yaml:"catchup_speed"`
	MinStake           float64 `yaml:"min_stake"`
	MaxStake           float64 `yaml:"max_stake"`
	ClobURL            string  `yaml:"clob_url"`
	CyclePauseSecs     int     `yaml:"cycle_pause_secs"`
	CacheCleanupCycles int     `yaml:"cache_cleanup_cycles"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App     App     `yaml:"app"`
	Feed    Feed    `yaml:"feed"`
	Monitor Monitor `yaml:"monitor"`
	Trading Trading `yaml:"trading"`
}

// Load reads a YAML file from disk, hydrates a Config struct, and fills in
// defaults for anything left unset.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.LogDir == "" {
		c.App.LogDir = "logs"
	}
	if c.Feed.Provider == "" {
		c.Feed.Provider = "gamma"
	}
	if c.Monitor.TimeoutMs <= 0 {
		c.Monitor.TimeoutMs = 10000
	}
	if c.Monitor.InterRequestDelayMs <= 0 {
		c.Monitor.InterRequestDelayMs = 500
	}
	if c.Monitor.MaxConcurrent <= 0 {
		c.Monitor.MaxConcurrent = 1
	}
	if c.Trading.StartingCapital <= 0 {
		c.Trading.StartingCapital = 100
	}
	if c.Trading.Fee <= 0 {
		c.Trading.Fee = 0.02
	}
	if c.Trading.CatchupSpeed <= 0 {
		c.Trading.CatchupSpeed = 0.025
	}
	if c.Trading.MinStake <= 0 {
		c.Trading.MinStake = 0.5
	}
	if c.Trading.MaxStake <= 0 {
		c.Trading.MaxStake = 8.0
	}
	if c.Trading.CyclePauseSecs <= 0 {
		c.Trading.CyclePauseSecs = 10
	}
	if c.Trading.CacheCleanupCycles <= 0 {
		c.Trading.CacheCleanupCycles = 10
	}
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
