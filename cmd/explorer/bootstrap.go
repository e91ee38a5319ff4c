package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"stock-risk-explorer/internal/analyzer"
	"stock-risk-explorer/internal/analyzer/analyzerobs"
	"stock-risk-explorer/internal/classify"
	"stock-risk-explorer/internal/interfaces"
	"stock-risk-explorer/internal/logger"
	"stock-risk-explorer/internal/marketdata"
	"stock-risk-explorer/internal/marketdata/marketdataobs"
	"stock-risk-explorer/internal/profile"
	"stock-risk-explorer/internal/risk"
	"stock-risk-explorer/internal/store"
	"stock-risk-explorer/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeProvider builds the market data provider stack: base source,
// optional scrape fallback, TTL cache, optional snapshot persistence,
// observability wrapper.
func initializeProvider(ctx context.Context, cfg *store.Config) (interfaces.MarketDataProvider, func(), error) {
	var provider interfaces.MarketDataProvider
	if cfg.MarketData.Source == "MOCK" {
		logger.Info(ctx, "Using MOCK market data for testing")
		provider = marketdata.NewMockProvider()
	} else {
		logger.Info(ctx, "Using LIVE market data from Yahoo Finance")
		provider = marketdata.NewYahooProvider()
		if cfg.MarketData.ScrapeFallback {
			logger.Info(ctx, "Scrape fallback enabled for fundamentals")
			scraper := marketdata.NewScrapeProvider(15 * time.Second)
			provider = marketdata.NewFallbackProvider(provider, scraper)
		}
	}

	cleanup := func() {}
	if cfg.MarketData.CacheTTLMinutes > 0 {
		var snapshots *marketdata.SnapshotStore
		if cfg.MarketData.SnapshotDB != "" {
			var err error
			snapshots, err = marketdata.OpenSnapshotStore(cfg.MarketData.SnapshotDB)
			if err != nil {
				logger.Warn(ctx, "Snapshot store unavailable, continuing without persistence", "error", err)
			} else {
				cleanup = func() { snapshots.Close() }
			}
		}
		ttl := time.Duration(cfg.MarketData.CacheTTLMinutes) * time.Minute
		provider = marketdata.NewCachedProvider(provider, ttl, snapshots)
	}

	// Wrap with observability middleware
	return marketdataobs.Wrap(provider), cleanup, nil
}

// initializeAnalyzer wires the classifier, matcher and assessor into the
// analysis pipeline with observability
func initializeAnalyzer(ctx context.Context, cfg *store.Config, provider interfaces.MarketDataProvider) (interfaces.StockAnalyzer, error) {
	investor, err := profile.LoadProfile(cfg.Profile.Path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load investor profile", err, "path", cfg.Profile.Path)
		return nil, err
	}
	logger.Info(ctx, "Investor profile loaded",
		"investor", investor.InvestorName,
		"risk_tolerance", investor.RiskTolerance,
	)

	opts := risk.WindowOptions{
		WindowDays:   cfg.Risk.WindowDays,
		MinWindowObs: cfg.Risk.MinWindowObs,
		FallbackObs:  cfg.Risk.FallbackObs,
		Sampling:     risk.SamplingDaily,
	}
	if cfg.Risk.WeeklyResample {
		opts.Sampling = risk.SamplingWeekly
	}

	a := analyzer.NewAnalyzer(
		classify.NewClassifier(provider),
		profile.NewMatcher(investor),
		risk.NewAssessor(provider, opts, cfg.MarketData.HistoryYears),
	)

	// Wrap with observability middleware
	return analyzerobs.Wrap(a), nil
}
