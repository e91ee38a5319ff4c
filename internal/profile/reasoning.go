package profile

import (
	"fmt"
	"strings"

	"stock-risk-explorer/internal/types"
)

// preferenceSummary is the parenthetical recap of the default profile's
// sector preferences used in reasoning text.
const preferenceSummary = "Sports & Entertainment, Real Estate, Impact Bonds"

// GenerateReasoning assembles the human-readable explanation of a fit
// assessment. It is a pure function of (style, sector membership,
// market-cap tier, overall fit) producing fixed sentence fragments per
// branch; no free-form generation.
func GenerateReasoning(stock types.ClassifiedStock, p *InvestorProfile, overallFit float64) string {
	name := p.FirstName()
	growthPct := fmt.Sprintf("%.0f%%", p.GrowthFocusScore*100)

	var b strings.Builder
	fmt.Fprintf(&b, "%s is a %s stock in %s. ", stock.Ticker, stock.Style, stock.Sector)

	switch stock.Style {
	case types.StyleGrowth:
		fmt.Fprintf(&b, "Its Growth style aligns excellently with %s's %s risk tolerance and high growth focus (%s). ",
			name, p.RiskTolerance, growthPct)
	case types.StyleValue:
		fmt.Fprintf(&b, "As a Value stock, it aligns less well with %s's %s profile and growth focus (%s). ",
			name, p.RiskTolerance, growthPct)
	case types.StyleDividend:
		fmt.Fprintf(&b, "Its Dividend character suggests income focus, which is secondary to %s's growth orientation (%s). ",
			name, growthPct)
	default:
		fmt.Fprintf(&b, "As a Blend stock, it has mixed alignment with %s's growth-focused profile. ", name)
	}

	if sectorPreferred(stock.Sector, p) {
		fmt.Fprintf(&b, "%s is within %s's stated sector preferences (%s). ", stock.Sector, name, preferenceSummary)
	} else {
		fmt.Fprintf(&b, "%s is outside %s's stated sector preferences (%s). ", stock.Sector, name, preferenceSummary)
	}

	switch stock.MarketCapTier {
	case types.TierMega, types.TierLarge:
		fmt.Fprintf(&b, "The %s scale and solid fundamentals fit %s's long-term, analytical approach and preference for established companies. ",
			stock.MarketCapTier, name)
	case types.TierMid:
		fmt.Fprintf(&b, "The %s scale offers growth potential while maintaining reasonable stability for %s's long-term approach. ",
			stock.MarketCapTier, name)
	default:
		fmt.Fprintf(&b, "The %s scale may lack the stability %s typically seeks for long-term holdings. ",
			stock.MarketCapTier, name)
	}

	switch {
	case overallFit >= 0.80:
		b.WriteString("Overall: Excellent match—strong alignment across style, sector, and fundamentals.")
	case overallFit >= 0.65:
		b.WriteString("Overall: Good fit. Consider whether the sector or style aligns with your portfolio diversification goals.")
	case overallFit >= 0.50:
		b.WriteString("Overall: Decent fit but with notable misalignments. Evaluate against other opportunities.")
	default:
		b.WriteString("Overall: Poor fit. Consider whether your investment thesis overrides the profile misalignments.")
	}

	return b.String()
}

// sectorPreferred is the one-directional membership test used only for
// reasoning text: a preference phrase contained in the sector string.
// Deliberately narrower than SectorAlignment's bidirectional match.
func sectorPreferred(sector string, p *InvestorProfile) bool {
	s := strings.ToLower(sector)
	for _, pref := range p.SectorPreferences {
		if strings.Contains(s, strings.ToLower(pref)) {
			return true
		}
	}
	return false
}
