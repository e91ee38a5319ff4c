package risk

import (
	"math"
	"testing"

	"stock-risk-explorer/internal/types"
)

func TestVolatilityScoreBuckets(t *testing.T) {
	cases := []struct {
		vol  float64
		want float64
	}{
		{0.10, 20},
		{0.1499, 20},
		{0.15, 40},
		{0.2499, 40},
		{0.25, 65},
		{0.3999, 65},
		{0.40, 90},
		{1.20, 90},
	}
	for _, c := range cases {
		if got := VolatilityScore(c.vol, nil); got != c.want {
			t.Errorf("VolatilityScore(%f): expected %f, got %f", c.vol, c.want, got)
		}
	}
}

func TestDrawdownScoreBuckets(t *testing.T) {
	cases := []struct {
		dd   float64
		want float64
	}{
		{5, 20},
		{9.99, 20},
		{10, 45},
		{24.99, 45},
		{25, 70},
		{44.99, 70},
		{45, 95},
		{80, 95},
	}
	for _, c := range cases {
		if got := DrawdownScore(c.dd, nil); got != c.want {
			t.Errorf("DrawdownScore(%f): expected %f, got %f", c.dd, c.want, got)
		}
	}
}

func TestLiquidityScoreBuckets(t *testing.T) {
	cases := []struct {
		volume float64
		want   float64
	}{
		{10_000_000, 20},
		{5_000_001, 20},
		{5_000_000, 40}, // boundary is exclusive
		{1_000_001, 40},
		{1_000_000, 65},
		{200_001, 65},
		{200_000, 90},
		{1_000, 90},
	}
	for _, c := range cases {
		if got := LiquidityScore(c.volume, nil); got != c.want {
			t.Errorf("LiquidityScore(%f): expected %f, got %f", c.volume, c.want, got)
		}
	}
}

func TestGrowthScoreContinuous(t *testing.T) {
	cases := []struct {
		ret  float64
		want float64
	}{
		{0, 50},
		{100, 75},
		{200, 100},
		{500, 100}, // gains clamp at 200
		{-50, 37.5},
		{-90, 37.5}, // losses clamp at -50
		{20, 55},
	}
	for _, c := range cases {
		if got := GrowthScore(c.ret, nil); got != c.want {
			t.Errorf("GrowthScore(%f): expected %f, got %f", c.ret, c.want, got)
		}
	}
}

func TestScoresPropagateNaN(t *testing.T) {
	nan := math.NaN()
	if got := VolatilityScore(nan, nil); !math.IsNaN(got) {
		t.Errorf("Expected NaN volatility score, got %f", got)
	}
	if got := DrawdownScore(nan, nil); !math.IsNaN(got) {
		t.Errorf("Expected NaN drawdown score, got %f", got)
	}
	if got := LiquidityScore(nan, nil); !math.IsNaN(got) {
		t.Errorf("Expected NaN liquidity score, got %f", got)
	}
	if got := GrowthScore(nan, nil); !math.IsNaN(got) {
		t.Errorf("Expected NaN growth score, got %f", got)
	}
}

func TestOverridesClampAndBeatNaN(t *testing.T) {
	if got := VolatilityScore(math.NaN(), types.Float(150)); got != 100 {
		t.Errorf("Expected override clamped to 100, got %f", got)
	}
	if got := GrowthScore(math.NaN(), types.Float(-10)); got != 0 {
		t.Errorf("Expected override clamped to 0, got %f", got)
	}
	if got := DrawdownScore(80, types.Float(33)); got != 33 {
		t.Errorf("Expected override 33 to replace derived score, got %f", got)
	}
}

func TestMapSubscores(t *testing.T) {
	m := Metrics{
		AnnualVolatility: 0.30,
		WindowReturn:     40,
		MaxDrawdown:      12,
		AvgDailyVolume:   3_000_000,
	}
	s := MapSubscores(m, Overrides{Liquidity: types.Float(10)})

	if s.Volatility != 65 {
		t.Errorf("Expected volatility 65, got %f", s.Volatility)
	}
	if s.Drawdown != 45 {
		t.Errorf("Expected drawdown 45, got %f", s.Drawdown)
	}
	if s.Growth != 60 {
		t.Errorf("Expected growth 60, got %f", s.Growth)
	}
	if s.Liquidity != 10 {
		t.Errorf("Expected overridden liquidity 10, got %f", s.Liquidity)
	}
}
