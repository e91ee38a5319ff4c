package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// InvestorProfile is the static behavioral profile a stock is matched
// against. Loaded once per run and never mutated.
type InvestorProfile struct {
	InvestorName           string   `json:"investor_name"`
	RiskTolerance          string   `json:"risk_tolerance"`
	Traits                 []string `json:"traits"`
	Biases                 []string `json:"biases"`
	SectorPreferences      []string `json:"sector_preferences"`
	GrowthFocusScore       float64  `json:"growth_focus_score"`
	MomentumBias           float64  `json:"momentum_bias"`
	InvestmentHorizonYears int      `json:"investment_horizon_years"`
	MarketCapPreference    string   `json:"market_cap_preference"`
	LiquidityPreference    string   `json:"liquidity_preference"`
}

// FirstName returns the investor's first name for use in reasoning text.
func (p *InvestorProfile) FirstName() string {
	fields := strings.Fields(p.InvestorName)
	if len(fields) == 0 {
		return "Investor"
	}
	return fields[0]
}

// DefaultProfile returns the built-in behavioral profile used when no
// stored profile exists. The constants are load-bearing for score
// compatibility and must not drift.
func DefaultProfile() InvestorProfile {
	return InvestorProfile{
		InvestorName:  "Connor Barwin",
		RiskTolerance: "Aggressive",
		Traits: []string{
			"Long-Term Oriented",
			"Hands-On/Operational",
			"Socially Conscious",
			"Diligent/Analytical",
		},
		Biases: []string{
			"Affinity Bias",
			"Narrative Fallacy",
			"Survivorship Bias",
		},
		SectorPreferences: []string{
			"Sports & Entertainment",
			"Urban Real Estate/Development",
			"Social Impact Bonds",
		},
		GrowthFocusScore:       0.67,
		MomentumBias:           0.60,
		InvestmentHorizonYears: 10,
		MarketCapPreference:    "Mid to Large Cap",
		LiquidityPreference:    "Lower (prefers illiquid, long-term holds)",
	}
}

// LoadProfile reads a behavioral profile from a JSON file. A missing file
// (or empty path) falls back to DefaultProfile; a malformed file is an
// error.
func LoadProfile(path string) (InvestorProfile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProfile(), nil
		}
		return InvestorProfile{}, err
	}
	var p InvestorProfile
	if err := json.Unmarshal(b, &p); err != nil {
		return InvestorProfile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}
