package classify

import (
	"context"
	"strings"

	"stock-risk-explorer/internal/logger"
	"stock-risk-explorer/internal/types"
)

// FundamentalsSource supplies fundamental fields for a symbol. Implemented
// by the marketdata providers.
type FundamentalsSource interface {
	FetchFundamentals(ctx context.Context, symbol string) (*types.Fundamentals, error)
}

// Classifier derives investment style and market-cap tier from fetched
// fundamentals.
type Classifier struct {
	source FundamentalsSource
}

// NewClassifier creates a classifier reading fundamentals from source.
func NewClassifier(source FundamentalsSource) *Classifier {
	return &Classifier{source: source}
}

// Classify fetches fundamentals for ticker and derives the classified
// record. Fetch failures never propagate: they surface as a record with
// all derived fields empty, Error populated and the ticker uppercased.
func (c *Classifier) Classify(ctx context.Context, ticker string) types.ClassifiedStock {
	fundamentals, err := c.source.FetchFundamentals(ctx, ticker)
	if err != nil {
		logger.Warn(ctx, "Fundamentals fetch failed", "ticker", ticker, "error", err)
		return types.ClassifiedStock{
			Ticker: strings.ToUpper(ticker),
			Error:  err.Error(),
		}
	}
	if fundamentals == nil {
		return types.ClassifiedStock{
			Ticker: strings.ToUpper(ticker),
			Error:  "no fundamentals data returned",
		}
	}
	return ClassifyFundamentals(ticker, *fundamentals)
}

// ClassifyFundamentals is the pure derivation: unit normalization, then
// market-cap tiering, then style classification.
func ClassifyFundamentals(ticker string, f types.Fundamentals) types.ClassifiedStock {
	shortName := f.ShortName
	if shortName == "" {
		shortName = ticker
	}
	sector := f.Sector
	if sector == "" {
		sector = "Unknown"
	}

	dividendYield := normalizeYield(f.DividendYield)
	revenueGrowth := normalizeGrowth(f.RevenueGrowth)
	earningsGrowth := normalizeGrowth(f.EarningsGrowth)

	return types.ClassifiedStock{
		Ticker:         strings.ToUpper(ticker),
		ShortName:      shortName,
		Style:          classifyStyle(f.TrailingPE, dividendYield, earningsGrowth),
		Sector:         sector,
		MarketCapTier:  MarketCapTier(f.MarketCap),
		PERatio:        copyPtr(f.TrailingPE),
		DividendYield:  dividendYield,
		RevenueGrowth:  revenueGrowth,
		EarningsGrowth: earningsGrowth,
		MarketCap:      copyPtr(f.MarketCap),
	}
}

// normalizeYield converts a percentage-looking dividend yield to a decimal
// fraction: values above 1 are assumed to be percentages and divided by
// 100 exactly once. Values already in decimal form pass through unchanged.
// This is a documented heuristic, not ground truth; a yield reported as
// exactly 1.5 (meaning 1.5%) would be misread as 150%.
func normalizeYield(v *float64) *float64 {
	if v != nil && *v > 1 {
		n := *v / 100
		return &n
	}
	return copyPtr(v)
}

// normalizeGrowth converts a percentage-looking growth rate to a decimal
// fraction: values above 10 are assumed to be percentages.
func normalizeGrowth(v *float64) *float64 {
	if v != nil && *v > 10 {
		n := *v / 100
		return &n
	}
	return copyPtr(v)
}

// Market-cap tier thresholds in USD. Boundary values classify upward.
const (
	megaCapFloor  = 2_000_000_000_000
	largeCapFloor = 300_000_000_000
	midCapFloor   = 50_000_000_000
	smallCapFloor = 5_000_000_000
)

// MarketCapTier buckets a market capitalization into a size tier.
func MarketCapTier(marketCap *float64) string {
	if marketCap == nil {
		return types.TierUnknown
	}
	switch {
	case *marketCap >= megaCapFloor:
		return types.TierMega
	case *marketCap >= largeCapFloor:
		return types.TierLarge
	case *marketCap >= midCapFloor:
		return types.TierMid
	case *marketCap >= smallCapFloor:
		return types.TierSmall
	default:
		return types.TierMicro
	}
}

// classifyStyle applies the ordered style heuristics; the first matching
// rule wins. All three inputs must be present (already normalized to
// decimal fractions), otherwise the style defaults to Blend.
func classifyStyle(pe, dividendYield, earningsGrowth *float64) string {
	if pe == nil || dividendYield == nil || earningsGrowth == nil {
		return types.StyleBlend
	}
	switch {
	case *dividendYield > 0.03 && *pe < 20:
		return types.StyleDividend
	case *dividendYield > 0.025:
		return types.StyleDividend
	case *earningsGrowth > 0.15 && *pe > 20:
		return types.StyleGrowth
	case *pe < 15 && *dividendYield < 0.02:
		return types.StyleValue
	default:
		return types.StyleBlend
	}
}

func copyPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
