// Package config loads the YAML configuration for the backtesting lab and
// applies environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for backlab.
type Config struct {
	Storage    Storage          `yaml:"storage"`
	Alpaca     Alpaca           `yaml:"alpaca"`
	Logging    Logging          `yaml:"logging"`
	Gather     Gather           `yaml:"gather"`
	Backtest   Backtest         `yaml:"backtest"`
	Strategies []StrategyConfig `yaml:"strategies"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Gather controls the daily-bar gathering job.
type Gather struct {
	Symbols         []string `yaml:"symbols"`
	StartDate       string   `yaml:"start_date"`
	BatchSize       int      `yaml:"batch_size"`
	RateLimitPerMin int      `yaml:"rate_limit_per_min"`
	MaxAttempts     int      `yaml:"max_attempts"`
}

// Backtest defines the simulation parameters.
type Backtest struct {
	InitialBalance  float64 `yaml:"initial_balance"`
	Threshold       float64 `yaml:"threshold"`
	PositionSizePct float64 `yaml:"position_size_pct"`
	TransactionCost float64 `yaml:"transaction_cost"`
}

// StrategyConfig selects one strategy and its weight in the combined signal.
// Parameter fields left at zero fall back to the strategy's defaults.
type StrategyConfig struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`

	ShortWindow int `yaml:"short_window"`
	LongWindow  int `yaml:"long_window"`

	FastPeriod    int     `yaml:"fast_period"`
	SlowPeriod    int     `yaml:"slow_period"`
	SignalPeriod  int     `yaml:"signal_period"`
	MACDThreshold float64 `yaml:"macd_threshold"`

	RSIPeriod  int     `yaml:"rsi_period"`
	Oversold   float64 `yaml:"oversold"`
	Overbought float64 `yaml:"overbought"`

	BollingerWindow int `yaml:"bollinger_window"`
}

// Default returns the built-in configuration used when no file is supplied:
// a 50/50 blend of the crossover and MACD strategies with the standard
// simulation parameters.
func Default() *Config {
	return &Config{
		Storage: Storage{
			DataDir:    "data",
			SQLitePath: "backlab.db",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Gather: Gather{
			StartDate:       "2020-01-01",
			BatchSize:       200,
			RateLimitPerMin: 200,
			MaxAttempts:     3,
		},
		Backtest: Backtest{
			InitialBalance:  1000,
			Threshold:       0.15,
			PositionSizePct: 0.95,
			TransactionCost: 0.001,
		},
		Strategies: []StrategyConfig{
			{Name: "ma-cross", Weight: 0.5},
			{Name: "macd", Weight: 0.5},
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, merges it over
// the defaults, and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	// Canonical Alpaca env vars used by the SDK take highest priority.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
