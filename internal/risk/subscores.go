package risk

import (
	"encoding/json"
	"math"
)

// Subscores are the four 0-100 risk components feeding the ASI.
// Higher always means riskier. A subscore is NaN when its underlying
// metric was undefined and no override was supplied.
type Subscores struct {
	Volatility float64
	Drawdown   float64
	Growth     float64
	Liquidity  float64
}

// MarshalJSON encodes undefined (NaN) subscores as null.
func (s Subscores) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Volatility *float64 `json:"volatility"`
		Drawdown   *float64 `json:"drawdown"`
		Growth     *float64 `json:"growth"`
		Liquidity  *float64 `json:"liquidity"`
	}{
		nanToPtr(s.Volatility),
		nanToPtr(s.Drawdown),
		nanToPtr(s.Growth),
		nanToPtr(s.Liquidity),
	})
}

// Overrides carries user-supplied subscores (0-100) for what-if
// recomputation. A nil field means "derive from the raw metric".
type Overrides struct {
	Volatility *float64
	Drawdown   *float64
	Growth     *float64
	Liquidity  *float64
}

// VolatilityScore maps annualized volatility (fraction) to a risk bucket.
func VolatilityScore(annualVol float64, override *float64) float64 {
	if override != nil {
		return clampScore(*override)
	}
	switch {
	case math.IsNaN(annualVol):
		return math.NaN()
	case annualVol < 0.15:
		return 20
	case annualVol < 0.25:
		return 40
	case annualVol < 0.40:
		return 65
	default:
		return 90
	}
}

// DrawdownScore maps max drawdown (percent) to a risk bucket.
func DrawdownScore(maxDD float64, override *float64) float64 {
	if override != nil {
		return clampScore(*override)
	}
	switch {
	case math.IsNaN(maxDD):
		return math.NaN()
	case maxDD < 10:
		return 20
	case maxDD < 25:
		return 45
	case maxDD < 45:
		return 70
	default:
		return 95
	}
}

// LiquidityScore maps average daily volume to a risk bucket. Higher volume
// means lower risk, so the buckets run inverted relative to the others.
func LiquidityScore(avgVolume float64, override *float64) float64 {
	if override != nil {
		return clampScore(*override)
	}
	switch {
	case math.IsNaN(avgVolume):
		return math.NaN()
	case avgVolume > 5_000_000:
		return 20
	case avgVolume > 1_000_000:
		return 40
	case avgVolume > 200_000:
		return 65
	default:
		return 90
	}
}

// GrowthScore maps the window return (percent) to a continuous score:
// 50 + clamped/4 with the return clamped to [-50, 200]. The asymmetric
// clamp (losses capped at -50, gains at 200) mirrors the view that extreme
// gains signal risk; extreme losses stop adding risk past the lower bound.
func GrowthScore(windowReturn float64, override *float64) float64 {
	if override != nil {
		return clampScore(*override)
	}
	if math.IsNaN(windowReturn) {
		return math.NaN()
	}
	clamped := math.Min(math.Max(windowReturn, -50), 200)
	return 50 + clamped/4
}

// MapSubscores derives all four subscores, honoring per-component
// overrides.
func MapSubscores(m Metrics, o Overrides) Subscores {
	return Subscores{
		Volatility: VolatilityScore(m.AnnualVolatility, o.Volatility),
		Drawdown:   DrawdownScore(m.MaxDrawdown, o.Drawdown),
		Growth:     GrowthScore(m.WindowReturn, o.Growth),
		Liquidity:  LiquidityScore(m.AvgDailyVolume, o.Liquidity),
	}
}

func clampScore(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
