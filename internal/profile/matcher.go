package profile

import (
	"fmt"
	"math"
	"strings"

	"stock-risk-explorer/internal/types"
)

// Fit labels and their emoji indicators, by descending fit tier.
const (
	LabelExcellent = "Excellent Fit"
	LabelGood      = "Good Fit"
	LabelDecent    = "Decent Fit"
	LabelPoor      = "Poor Fit"
	LabelError     = "Error"

	EmojiExcellent = "🎯"
	EmojiGood      = "✅"
	EmojiDecent    = "⚠️"
	EmojiPoor      = "❌"
	EmojiError     = "❌"
)

// Overall fit weights: style dominates, then sector, then traits.
const (
	weightStyle  = 0.5
	weightSector = 0.3
	weightTrait  = 0.2
)

// neutralSectors score 0.50 when the stock's sector matches none of the
// investor's preferences but is a mainstream sector.
var neutralSectors = []string{"Technology", "Healthcare", "Financials", "Industrials"}

// Matcher scores a classified stock against one investor profile. The
// alignment functions are held as fields so tests can instrument them;
// they default to the package-level implementations.
type Matcher struct {
	profile  InvestorProfile
	styleFn  func(style string, p *InvestorProfile) float64
	sectorFn func(sector string, p *InvestorProfile) float64
	traitFn  func(stock *types.ClassifiedStock) float64
}

// NewMatcher creates a matcher for the given profile.
func NewMatcher(p InvestorProfile) *Matcher {
	return &Matcher{
		profile:  p,
		styleFn:  StyleAlignment,
		sectorFn: SectorAlignment,
		traitFn:  TraitAlignment,
	}
}

// Profile returns the profile this matcher scores against.
func (m *Matcher) Profile() InvestorProfile { return m.profile }

// Match computes alignment scores and the overall fit assessment. An input
// carrying a fetch error short-circuits to an error result without any
// alignment computation, and a panic inside the alignment math is
// recovered into a degraded result; no failure crosses this boundary.
func (m *Matcher) Match(stock types.ClassifiedStock) (result types.FitResult) {
	if stock.Error != "" {
		ticker := stock.Ticker
		if ticker == "" {
			ticker = "UNKNOWN"
		}
		return types.FitResult{
			Ticker:        ticker,
			FitLabel:      LabelError,
			FitEmoji:      EmojiError,
			RiskTolerance: m.profile.RiskTolerance,
			Reasoning:     "Unable to fetch stock data.",
			Error:         stock.Error,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result = types.FitResult{
				Ticker:        stock.Ticker,
				FitLabel:      LabelError,
				FitEmoji:      EmojiError,
				StockStyle:    stock.Style,
				StockSector:   stock.Sector,
				RiskTolerance: m.profile.RiskTolerance,
				Reasoning:     "Error computing fit assessment.",
				Error:         fmt.Sprintf("%v", r),
			}
		}
	}()

	styleAlign := m.styleFn(stock.Style, &m.profile)
	sectorAlign := m.sectorFn(stock.Sector, &m.profile)
	traitAlign := m.traitFn(&stock)
	overall := OverallFit(styleAlign, sectorAlign, traitAlign)

	return types.FitResult{
		Ticker:          stock.Ticker,
		FitScore:        types.Float(overall),
		FitLabel:        FitLabel(overall),
		FitEmoji:        FitEmoji(overall),
		StyleAlignment:  types.Float(styleAlign),
		SectorAlignment: types.Float(sectorAlign),
		TraitAlignment:  types.Float(traitAlign),
		StockStyle:      stock.Style,
		StockSector:     stock.Sector,
		RiskTolerance:   m.profile.RiskTolerance,
		Reasoning:       GenerateReasoning(stock, &m.profile, overall),
	}
}

// StyleAlignment scores how well an investment style fits the profile's
// growth focus g: growth-focused profiles reward Growth stocks and
// penalize Value/Dividend stocks, and vice versa. Unknown styles are
// neutral.
func StyleAlignment(style string, p *InvestorProfile) float64 {
	g := p.GrowthFocusScore
	switch style {
	case types.StyleGrowth:
		return 0.95 * g
	case types.StyleBlend:
		return 0.70 * g
	case types.StyleValue:
		return 0.40 * (1 - g)
	case types.StyleDividend:
		return 0.35 * (1 - g)
	default:
		return 0.50
	}
}

// SectorAlignment scores sector fit against the profile's preferred
// sectors: direct case-insensitive substring match in either direction
// scores 0.95, a shared keyword token 0.75, a mainstream neutral sector
// 0.50, anything else 0.30.
func SectorAlignment(sector string, p *InvestorProfile) float64 {
	s := strings.ToLower(sector)

	for _, pref := range p.SectorPreferences {
		pl := strings.ToLower(pref)
		if strings.Contains(s, pl) || strings.Contains(pl, s) {
			return 0.95
		}
	}

	prefTokens := make(map[string]bool)
	for _, pref := range p.SectorPreferences {
		for _, tok := range strings.Fields(strings.ToLower(pref)) {
			prefTokens[tok] = true
		}
	}
	for _, tok := range strings.Fields(s) {
		if prefTokens[tok] {
			return 0.75
		}
	}

	for _, neutral := range neutralSectors {
		if strings.Contains(s, strings.ToLower(neutral)) {
			return 0.50
		}
	}
	return 0.30
}

// TraitAlignment scores fundamentals against the profile's behavioral
// traits, starting from a neutral 0.50: established large caps and clear,
// strong fundamentals suit a long-term analytical investor; tiny caps,
// shrinking earnings and extreme P/E work against it.
func TraitAlignment(stock *types.ClassifiedStock) float64 {
	alignment := 0.50

	switch stock.MarketCapTier {
	case types.TierMega, types.TierLarge:
		alignment += 0.15
	case types.TierMid:
		alignment += 0.10
	case types.TierSmall, types.TierMicro:
		alignment -= 0.10
	}

	if eg := stock.EarningsGrowth; eg != nil {
		if *eg > 0.10 {
			alignment += 0.10
		} else if *eg < 0 {
			alignment -= 0.10
		}
	}

	if pe := stock.PERatio; pe != nil {
		if *pe >= 15 && *pe <= 30 {
			alignment += 0.10
		} else if *pe > 50 {
			alignment -= 0.05
		}
	}

	return clamp01(alignment)
}

// OverallFit is the weighted combination of the three alignments, clamped
// to [0,1].
func OverallFit(styleAlign, sectorAlign, traitAlign float64) float64 {
	overall := weightStyle*styleAlign + weightSector*sectorAlign + weightTrait*traitAlign
	return clamp01(overall)
}

// FitLabel maps an overall fit score to its qualitative label.
func FitLabel(fitScore float64) string {
	switch {
	case fitScore >= 0.80:
		return LabelExcellent
	case fitScore >= 0.65:
		return LabelGood
	case fitScore >= 0.50:
		return LabelDecent
	default:
		return LabelPoor
	}
}

// FitEmoji maps an overall fit score to its emoji indicator.
func FitEmoji(fitScore float64) string {
	switch {
	case fitScore >= 0.80:
		return EmojiExcellent
	case fitScore >= 0.65:
		return EmojiGood
	case fitScore >= 0.50:
		return EmojiDecent
	default:
		return EmojiPoor
	}
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
