package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tradebook-importer/internal/types"
)

type Config struct {
	Session struct {
		Open  string `yaml:"open"`
		Close string `yaml:"close"`
	} `yaml:"session"`
	Symbols struct {
		Equities   []string `yaml:"equities"`
		Indices    []string `yaml:"indices"`
		CacheFile  string   `yaml:"cache_file"`
		RefreshURL string   `yaml:"refresh_url"`
	} `yaml:"symbols"`
	Bounds struct {
		OptionPremiumMin float64 `yaml:"option_premium_min"`
		OptionPremiumMax float64 `yaml:"option_premium_max"`
		EquityPriceMin   float64 `yaml:"equity_price_min"`
		EquityPriceMax   float64 `yaml:"equity_price_max"`
		IndexLevelMin    float64 `yaml:"index_level_min"`
		IndexLevelMax    float64 `yaml:"index_level_max"`
	} `yaml:"bounds"`
	Extraction struct {
		Provider      string  `yaml:"provider"`
		Model         string  `yaml:"model"`
		MaxTokens     int     `yaml:"max_tokens"`
		Temperature   float32 `yaml:"temperature"`
		MinConfidence float64 `yaml:"min_confidence"`
	} `yaml:"extraction"`
	Journal struct {
		RetentionDays int `yaml:"retention_days"`
	} `yaml:"journal"`
}

func (c *Config) Validate() error {
	if _, err := types.ParseClock(c.Session.Open); err != nil {
		return fmt.Errorf("invalid session.open '%s': %w", c.Session.Open, err)
	}
	if _, err := types.ParseClock(c.Session.Close); err != nil {
		return fmt.Errorf("invalid session.close '%s': %w", c.Session.Close, err)
	}
	open, _ := types.ParseClock(c.Session.Open)
	close, _ := types.ParseClock(c.Session.Close)
	if !open.Before(close) {
		return fmt.Errorf("session.open %s must precede session.close %s", c.Session.Open, c.Session.Close)
	}
	if c.Extraction.Provider != "CLAUDE" && c.Extraction.Provider != "NOOP" {
		return fmt.Errorf("extraction.provider must be 'CLAUDE' or 'NOOP', got '%s'", c.Extraction.Provider)
	}
	if c.Extraction.MinConfidence < 0 || c.Extraction.MinConfidence > 1 {
		return fmt.Errorf("extraction.min_confidence must be in [0,1], got %.2f", c.Extraction.MinConfidence)
	}
	if c.Bounds.OptionPremiumMin >= c.Bounds.OptionPremiumMax {
		return fmt.Errorf("bounds.option_premium_min must be below bounds.option_premium_max")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	// Merge the symbol cache written by symbolsync, when present.
	if c.Symbols.CacheFile != "" {
		if cached, err := loadSymbolCache(c.Symbols.CacheFile); err == nil {
			c.Symbols.Equities = mergeSymbols(c.Symbols.Equities, cached.Equities)
			c.Symbols.Indices = mergeSymbols(c.Symbols.Indices, cached.Indices)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Session.Open == "" {
		c.Session.Open = "09:15"
	}
	if c.Session.Close == "" {
		c.Session.Close = "15:30"
	}
	if len(c.Symbols.Indices) == 0 {
		c.Symbols.Indices = []string{"NIFTY", "BANKNIFTY", "FINNIFTY", "MIDCPNIFTY", "SENSEX"}
	}
	if c.Bounds.OptionPremiumMin == 0 {
		c.Bounds.OptionPremiumMin = 0.05
	}
	if c.Bounds.OptionPremiumMax == 0 {
		c.Bounds.OptionPremiumMax = 5000
	}
	if c.Bounds.EquityPriceMin == 0 {
		c.Bounds.EquityPriceMin = 1
	}
	if c.Bounds.EquityPriceMax == 0 {
		c.Bounds.EquityPriceMax = 150000
	}
	if c.Bounds.IndexLevelMin == 0 {
		c.Bounds.IndexLevelMin = 1000
	}
	if c.Bounds.IndexLevelMax == 0 {
		c.Bounds.IndexLevelMax = 120000
	}
	if c.Extraction.Provider == "" {
		c.Extraction.Provider = "NOOP"
	}
	if c.Extraction.MaxTokens == 0 {
		c.Extraction.MaxTokens = 4096
	}
	if c.Journal.RetentionDays == 0 {
		c.Journal.RetentionDays = 30
	}
}

// Window returns the trading-hours bound the normalizer and validator apply.
func (c *Config) Window() types.SessionWindow {
	open, _ := types.ParseClock(c.Session.Open)
	close, _ := types.ParseClock(c.Session.Close)
	return types.SessionWindow{Open: open, Close: close}
}

// PriceBounds returns the segment-aware plausibility limits.
func (c *Config) PriceBounds() types.PriceBounds {
	return types.PriceBounds{
		OptionPremiumMin: c.Bounds.OptionPremiumMin,
		OptionPremiumMax: c.Bounds.OptionPremiumMax,
		EquityPriceMin:   c.Bounds.EquityPriceMin,
		EquityPriceMax:   c.Bounds.EquityPriceMax,
		IndexLevelMin:    c.Bounds.IndexLevelMin,
		IndexLevelMax:    c.Bounds.IndexLevelMax,
	}
}
