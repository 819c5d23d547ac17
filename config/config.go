package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ctpsim/market"
	"ctpsim/sim"
)

// Config is the complete simulation configuration.
type Config struct {
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// EngineConfig parameterizes the simulated account engine. The cadence
// fields are duration strings ("1s", "500ms").
type EngineConfig struct {
	Symbol         string  `json:"symbol" yaml:"symbol"`
	InitialPrice   float64 `json:"initial_price" yaml:"initial_price"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`

	PriceInterval string `json:"price_interval" yaml:"price_interval"`
	TradeInterval string `json:"trade_interval" yaml:"trade_interval"`

	PriceJitter      float64 `json:"price_jitter" yaml:"price_jitter"`
	CloseProbability float64 `json:"close_probability" yaml:"close_probability"`
	MaxTradeVolume   int     `json:"max_trade_volume" yaml:"max_trade_volume"`

	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// JournalConfig selects how the event streams are recorded.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file and
// validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// YAML first, JSON fallback.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects a broken configuration before an engine can be built.
func (c *Config) Validate() error {
	if c.Engine.Symbol == "" {
		return fmt.Errorf("engine.symbol is required")
	}
	if _, ok := market.Instruments[c.Engine.Symbol]; !ok {
		return fmt.Errorf("unknown instrument: %s", c.Engine.Symbol)
	}
	if c.Engine.InitialCapital <= 0 {
		return fmt.Errorf("engine.initial_capital must be positive")
	}
	if c.Engine.InitialPrice <= 0 {
		return fmt.Errorf("engine.initial_price must be positive")
	}
	if d, err := parseInterval(c.Engine.PriceInterval); err != nil || d <= 0 {
		return fmt.Errorf("engine.price_interval must be a positive duration")
	}
	if d, err := parseInterval(c.Engine.TradeInterval); err != nil || d <= 0 {
		return fmt.Errorf("engine.trade_interval must be a positive duration")
	}
	if c.Engine.PriceJitter <= 0 {
		return fmt.Errorf("engine.price_jitter must be positive")
	}
	if c.Engine.CloseProbability < 0 || c.Engine.CloseProbability > 1 {
		return fmt.Errorf("engine.close_probability must be between 0 and 1")
	}
	if c.Engine.MaxTradeVolume < 1 {
		return fmt.Errorf("engine.max_trade_volume must be at least 1")
	}

	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Options converts a validated config into engine options.
func (c *Config) Options() (sim.Options, error) {
	if err := c.Validate(); err != nil {
		return sim.Options{}, err
	}

	priceEvery, _ := parseInterval(c.Engine.PriceInterval)
	tradeEvery, _ := parseInterval(c.Engine.TradeInterval)

	return sim.Options{
		Symbol:           c.Engine.Symbol,
		InitialPrice:     c.Engine.InitialPrice,
		InitialCapital:   c.Engine.InitialCapital,
		PriceInterval:    priceEvery,
		TradeInterval:    tradeEvery,
		PriceJitter:      c.Engine.PriceJitter,
		CloseProbability: c.Engine.CloseProbability,
		MaxTradeVolume:   c.Engine.MaxTradeVolume,
		Seed:             c.Engine.Seed,
	}, nil
}

// SaveToFile writes the configuration to a file, as YAML unless the path
// ends in .json.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if isJSONPath(path) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Default returns a configuration matching the original mock service:
// 3500 starting price, 100k capital, 1s market ticks, 10s trade ticks.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Symbol:           market.DefaultSymbol,
			InitialPrice:     sim.DefaultInitialPrice,
			InitialCapital:   sim.DefaultInitialCapital,
			PriceInterval:    "1s",
			TradeInterval:    "10s",
			PriceJitter:      sim.DefaultPriceJitter,
			CloseProbability: sim.DefaultCloseProbability,
			MaxTradeVolume:   sim.DefaultMaxTradeVolume,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}

func parseInterval(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	return time.ParseDuration(s)
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(path, ".json")
}
