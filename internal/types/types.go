package types

import "time"

// PricePoint is a single daily observation of a traded instrument.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is a chronologically ascending daily series, one point per
// trading day, no duplicate dates.
type PriceSeries []PricePoint

// Last returns the most recent observation. Callers must check len first.
func (s PriceSeries) Last() PricePoint { return s[len(s)-1] }

// Fundamentals is a sparse snapshot of a company's fundamental fields as
// returned by the market-data provider. A nil pointer (or empty string)
// means the provider did not report the field; it is never assumed present.
type Fundamentals struct {
	ShortName      string   `json:"short_name,omitempty"`
	Sector         string   `json:"sector,omitempty"`
	MarketCap      *float64 `json:"market_cap,omitempty"`
	TrailingPE     *float64 `json:"trailing_pe,omitempty"`
	DividendYield  *float64 `json:"dividend_yield,omitempty"`
	RevenueGrowth  *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"`
}

// Investment styles assigned by the classifier.
const (
	StyleGrowth   = "Growth"
	StyleValue    = "Value"
	StyleDividend = "Dividend"
	StyleBlend    = "Blend"
)

// Market-cap tiers. Boundary values classify into the upper tier.
const (
	TierMega    = "Mega-cap"
	TierLarge   = "Large-cap"
	TierMid     = "Mid-cap"
	TierSmall   = "Small-cap"
	TierMicro   = "Micro-cap"
	TierUnknown = "Unknown"
)

// ClassifiedStock is the classifier's output for one ticker. On fetch
// failure every derived field is nil/empty, Error is populated and the
// ticker is still echoed uppercased.
type ClassifiedStock struct {
	Ticker         string   `json:"ticker"`
	ShortName      string   `json:"short_name,omitempty"`
	Style          string   `json:"style,omitempty"`
	Sector         string   `json:"sector,omitempty"`
	MarketCapTier  string   `json:"market_cap_tier,omitempty"`
	PERatio        *float64 `json:"pe_ratio,omitempty"`
	DividendYield  *float64 `json:"dividend_yield,omitempty"`
	RevenueGrowth  *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"`
	MarketCap      *float64 `json:"market_cap,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// FitResult is the profile matcher's assessment of one classified stock
// against an investor profile. FitScore is nil when the input carried an
// error or the alignment math failed; Error holds the cause.
type FitResult struct {
	Ticker          string   `json:"ticker"`
	FitScore        *float64 `json:"fit_score,omitempty"`
	FitLabel        string   `json:"fit_label"`
	FitEmoji        string   `json:"fit_emoji"`
	StyleAlignment  *float64 `json:"style_alignment,omitempty"`
	SectorAlignment *float64 `json:"sector_alignment,omitempty"`
	TraitAlignment  *float64 `json:"trait_alignment,omitempty"`
	StockStyle      string   `json:"stock_style,omitempty"`
	StockSector     string   `json:"stock_sector,omitempty"`
	RiskTolerance   string   `json:"risk_tolerance"`
	Reasoning       string   `json:"reasoning"`
	Error           string   `json:"error,omitempty"`
}

// Float returns a pointer to v. Convenience for building sparse records.
func Float(v float64) *float64 { return &v }
