package risk

import "math"

// Weights combining the subscores into the Asset Stability Index. They sum
// to 1.0. Both the actual and the hypothetical (override-driven) paths go
// through Aggregate with these same weights; there is no second copy of
// the formula.
const (
	WeightVolatility = 0.40
	WeightDrawdown   = 0.25
	WeightGrowth     = 0.20
	WeightLiquidity  = 0.15
)

// Aggregate combines subscores into the 0-100 ASI (higher = riskier).
// Undefined (NaN) subscores are excluded and the remaining weights
// renormalized; if every subscore is undefined the ASI is NaN. With all
// subscores defined the result is already in [0,100] by construction and
// is not re-clamped.
func Aggregate(s Subscores) float64 {
	total, weightSum := 0.0, 0.0
	add := func(score, weight float64) {
		if math.IsNaN(score) {
			return
		}
		total += score * weight
		weightSum += weight
	}
	add(s.Volatility, WeightVolatility)
	add(s.Drawdown, WeightDrawdown)
	add(s.Growth, WeightGrowth)
	add(s.Liquidity, WeightLiquidity)
	if weightSum == 0 {
		return math.NaN()
	}
	return total / weightSum
}

// BlendSentiment linearly blends the rule-based ASI with an ML sentiment
// score. fraction 0 is rule-only, 1 is sentiment-only. The sentiment input
// is currently always the zero stub; the blend math is kept for the
// presentation layer's blend control.
func BlendSentiment(asi, sentiment, fraction float64) float64 {
	fraction = math.Min(1, math.Max(0, fraction))
	return asi*(1-fraction) + sentiment*fraction
}
