package risk

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"stock-risk-explorer/internal/types"
)

func TestAggregateWeightedSum(t *testing.T) {
	s := Subscores{Volatility: 20, Drawdown: 45, Growth: 70, Liquidity: 95}
	// 20*0.40 + 45*0.25 + 70*0.20 + 95*0.15
	want := 47.5
	if got := Aggregate(s); !almostEqual(got, want, 1e-9) {
		t.Errorf("Expected ASI %f, got %f", want, got)
	}
}

func TestAggregateRenormalizesAroundNaN(t *testing.T) {
	s := Subscores{Volatility: math.NaN(), Drawdown: 45, Growth: 70, Liquidity: 95}
	// (45*0.25 + 70*0.20 + 95*0.15) / 0.60
	want := (45*0.25 + 70*0.20 + 95*0.15) / 0.60
	if got := Aggregate(s); !almostEqual(got, want, 1e-9) {
		t.Errorf("Expected renormalized ASI %f, got %f", want, got)
	}
}

func TestAggregateAllNaN(t *testing.T) {
	nan := math.NaN()
	s := Subscores{Volatility: nan, Drawdown: nan, Growth: nan, Liquidity: nan}
	if got := Aggregate(s); !math.IsNaN(got) {
		t.Errorf("Expected NaN ASI when every subscore is undefined, got %f", got)
	}
}

func TestBlendSentiment(t *testing.T) {
	if got := BlendSentiment(80, 20, 0.5); got != 50 {
		t.Errorf("Expected blend 50, got %f", got)
	}
	if got := BlendSentiment(80, 20, 0); got != 80 {
		t.Errorf("Expected rule-only blend 80, got %f", got)
	}
	// Fraction clamps to [0, 1]
	if got := BlendSentiment(80, 20, 2); got != 20 {
		t.Errorf("Expected clamped blend 20, got %f", got)
	}
	if got := BlendSentiment(80, 20, -1); got != 80 {
		t.Errorf("Expected clamped blend 80, got %f", got)
	}
}

type stubHistorySource struct {
	series types.PriceSeries
	err    error
}

func (s *stubHistorySource) FetchDailyHistory(ctx context.Context, symbol string, years int) (types.PriceSeries, error) {
	return s.series, s.err
}

func TestAssessFetchFailure(t *testing.T) {
	assessor := NewAssessor(&stubHistorySource{err: errors.New("network down")}, DefaultWindowOptions(), 5)

	a := assessor.Assess(context.Background(), "aapl")

	if a.Ticker != "AAPL" {
		t.Errorf("Expected uppercased ticker AAPL, got %s", a.Ticker)
	}
	if a.Error != "network down" {
		t.Errorf("Expected error message to be carried, got %q", a.Error)
	}
	if !math.IsNaN(a.ASI) {
		t.Errorf("Expected NaN ASI on fetch failure, got %f", a.ASI)
	}
	if !math.IsNaN(a.Subscores.Volatility) || !math.IsNaN(a.Metrics.AnnualVolatility) {
		t.Error("Expected NaN subscores and metrics on fetch failure")
	}
}

func TestHypotheticalMatchesActualWithEmptyOverrides(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/7)
	}
	series := makeSeries(start, closes, 3_000_000)
	source := &stubHistorySource{series: series}
	assessor := NewAssessor(source, WindowOptions{WindowDays: 365, MinWindowObs: 2, FallbackObs: 252}, 5)

	actual := assessor.Assess(context.Background(), "MSFT")
	hypothetical := assessor.AssessWithOverrides(context.Background(), "MSFT", Overrides{})

	if actual.ASI != hypothetical.ASI {
		t.Errorf("Expected identical ASI with empty overrides: %f vs %f", actual.ASI, hypothetical.ASI)
	}
	if actual.Subscores != hypothetical.Subscores {
		t.Errorf("Expected identical subscores: %+v vs %+v", actual.Subscores, hypothetical.Subscores)
	}
}

func TestAssessWithOverridesChangesOnlyOverriddenComponent(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 50 + float64(i%11)
	}
	source := &stubHistorySource{series: makeSeries(start, closes, 500_000)}
	assessor := NewAssessor(source, WindowOptions{WindowDays: 365, MinWindowObs: 2, FallbackObs: 252}, 5)

	base := assessor.Assess(context.Background(), "JNJ")
	adjusted := assessor.AssessWithOverrides(context.Background(), "JNJ", Overrides{Volatility: types.Float(5)})

	if adjusted.Subscores.Volatility != 5 {
		t.Errorf("Expected overridden volatility 5, got %f", adjusted.Subscores.Volatility)
	}
	if adjusted.Subscores.Drawdown != base.Subscores.Drawdown {
		t.Error("Expected non-overridden subscores to be unchanged")
	}
	if adjusted.ASI >= base.ASI {
		t.Errorf("Expected lower ASI after lowering volatility: %f vs %f", adjusted.ASI, base.ASI)
	}
}

func TestAssessmentJSONEncodesNaNAsNull(t *testing.T) {
	nan := math.NaN()
	a := Assessment{
		Ticker:    "XYZ",
		Metrics:   Metrics{AnnualVolatility: nan, WindowReturn: 12.5, MaxDrawdown: nan, AvgDailyVolume: 1000},
		Subscores: Subscores{Volatility: nan, Drawdown: 45, Growth: 53.125, Liquidity: 65},
		ASI:       nan,
		Error:     "partial data",
	}

	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(b)

	if !strings.Contains(s, `"annual_volatility":null`) {
		t.Errorf("Expected null annual_volatility, got %s", s)
	}
	if !strings.Contains(s, `"asi":null`) {
		t.Errorf("Expected null asi, got %s", s)
	}
	if !strings.Contains(s, `"drawdown":45`) {
		t.Errorf("Expected numeric drawdown, got %s", s)
	}
}
