package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Universe struct {
		Static []string `yaml:"static"`
	} `yaml:"universe"`
	MarketData struct {
		Source          string `yaml:"source"` // MOCK or LIVE
		HistoryYears    int    `yaml:"history_years"`
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
		SnapshotDB      string `yaml:"snapshot_db"` // optional sqlite path; empty disables persistence
		ScrapeFallback  bool   `yaml:"scrape_fallback"`
	} `yaml:"marketdata"`
	Risk struct {
		WindowDays     int  `yaml:"window_days"`
		MinWindowObs   int  `yaml:"min_window_obs"`
		FallbackObs    int  `yaml:"fallback_obs"`
		WeeklyResample bool `yaml:"weekly_resample"`
	} `yaml:"risk"`
	Profile struct {
		Path string `yaml:"path"` // JSON behavioral profile; empty uses the built-in default
	} `yaml:"profile"`
}

func (c *Config) Validate() error {
	if c.MarketData.Source != "MOCK" && c.MarketData.Source != "LIVE" {
		return fmt.Errorf("invalid marketdata.source '%s': must be 'MOCK' or 'LIVE'", c.MarketData.Source)
	}
	if len(c.Universe.Static) == 0 {
		return errors.New("universe.static cannot be empty")
	}
	if c.MarketData.HistoryYears <= 0 {
		return fmt.Errorf("marketdata.history_years must be positive, got %d", c.MarketData.HistoryYears)
	}
	if c.MarketData.CacheTTLMinutes < 0 {
		return fmt.Errorf("marketdata.cache_ttl_minutes cannot be negative, got %d", c.MarketData.CacheTTLMinutes)
	}
	if c.Risk.WindowDays <= 0 {
		return fmt.Errorf("risk.window_days must be positive, got %d", c.Risk.WindowDays)
	}
	if c.Risk.MinWindowObs <= 0 || c.Risk.FallbackObs <= 0 {
		return errors.New("risk.min_window_obs and risk.fallback_obs must be positive")
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
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	applyDefaults(&c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// applyDefaults fills zero values with the documented defaults so a minimal
// config.yaml still validates.
func applyDefaults(c *Config) {
	if c.MarketData.Source == "" {
		c.MarketData.Source = "MOCK"
	}
	if c.MarketData.HistoryYears == 0 {
		c.MarketData.HistoryYears = 5
	}
	if c.Risk.WindowDays == 0 {
		c.Risk.WindowDays = 365
	}
	if c.Risk.MinWindowObs == 0 {
		c.Risk.MinWindowObs = 50
	}
	if c.Risk.FallbackObs == 0 {
		c.Risk.FallbackObs = 252
	}
}
