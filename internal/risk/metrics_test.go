package risk

import (
	"math"
	"testing"
	"time"

	"stock-risk-explorer/internal/types"
)

func makeSeries(start time.Time, closes []float64, volume float64) types.PriceSeries {
	series := make(types.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = types.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Close:  c,
			Volume: volume,
		}
	}
	return series
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestExtractMetricsKnownValues(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	// Returns are exactly +10%, -10%, +10%
	series := makeSeries(start, []float64{100, 110, 99, 108.9}, 2_000_000)

	opts := WindowOptions{WindowDays: 365, MinWindowObs: 2, FallbackObs: 252, Sampling: SamplingDaily}
	m := ExtractMetrics(series, opts)

	// Sample stddev of {0.1, -0.1, 0.1} is sqrt(0.2/15), annualized by sqrt(252)
	wantVol := math.Sqrt(0.2/15.0) * math.Sqrt(252)
	if !almostEqual(m.AnnualVolatility, wantVol, 1e-9) {
		t.Errorf("Expected annual volatility %f, got %f", wantVol, m.AnnualVolatility)
	}

	// Worst decline: peak 110 down to 99
	wantDD := (110.0 - 99.0) / 110.0 * 100
	if !almostEqual(m.MaxDrawdown, wantDD, 1e-9) {
		t.Errorf("Expected max drawdown %f, got %f", wantDD, m.MaxDrawdown)
	}

	if m.AvgDailyVolume != 2_000_000 {
		t.Errorf("Expected avg volume 2000000, got %f", m.AvgDailyVolume)
	}

	// Anchor is the first observation, so 100 -> 108.9
	if !almostEqual(m.WindowReturn, 8.9, 1e-9) {
		t.Errorf("Expected window return 8.9, got %f", m.WindowReturn)
	}
}

func TestWindowReturnUsesNearestAnchor(t *testing.T) {
	last := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	series := types.PriceSeries{
		{Date: last.AddDate(0, 0, -400), Close: 50, Volume: 1000},
		{Date: last.AddDate(0, 0, -370), Close: 80, Volume: 1000},
		{Date: last.AddDate(0, 0, -10), Close: 95, Volume: 1000},
		{Date: last.AddDate(0, 0, -5), Close: 98, Volume: 1000},
		{Date: last, Close: 100, Volume: 1000},
	}

	opts := WindowOptions{WindowDays: 365, MinWindowObs: 2, FallbackObs: 252, Sampling: SamplingDaily}
	m := ExtractMetrics(series, opts)

	// Window start is 365 days back; the observation 370 days back is the
	// nearest one, beating the in-window point 10 days back.
	want := (100.0/80.0 - 1) * 100
	if !almostEqual(m.WindowReturn, want, 1e-9) {
		t.Errorf("Expected window return %f, got %f", want, m.WindowReturn)
	}
}

func TestShortSeriesYieldsNaN(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	series := makeSeries(start, []float64{100}, 5000)

	m := ExtractMetrics(series, DefaultWindowOptions())

	if !math.IsNaN(m.AnnualVolatility) {
		t.Errorf("Expected NaN volatility for single observation, got %f", m.AnnualVolatility)
	}
	if !math.IsNaN(m.MaxDrawdown) {
		t.Errorf("Expected NaN drawdown for single observation, got %f", m.MaxDrawdown)
	}
	if m.WindowReturn != 0 {
		t.Errorf("Expected zero window return against itself, got %f", m.WindowReturn)
	}
	if m.AvgDailyVolume != 5000 {
		t.Errorf("Expected avg volume 5000, got %f", m.AvgDailyVolume)
	}
}

func TestEmptySeriesAllNaN(t *testing.T) {
	m := ExtractMetrics(nil, DefaultWindowOptions())
	for name, v := range map[string]float64{
		"volatility": m.AnnualVolatility,
		"return":     m.WindowReturn,
		"drawdown":   m.MaxDrawdown,
		"volume":     m.AvgDailyVolume,
	} {
		if !math.IsNaN(v) {
			t.Errorf("Expected NaN %s for empty series, got %f", name, v)
		}
	}
}

func TestWindowFallsBackToRecentObservations(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	series := makeSeries(start, closes, 1000)

	// Only 30 observations exist; MinWindowObs of 50 forces the fallback.
	opts := WindowOptions{WindowDays: 365, MinWindowObs: 50, FallbackObs: 252, Sampling: SamplingDaily}
	m := ExtractMetrics(series, opts)

	if math.IsNaN(m.AnnualVolatility) {
		t.Error("Expected volatility from the fallback window, got NaN")
	}
	// Monotonically rising closes never draw down
	if m.MaxDrawdown != 0 {
		t.Errorf("Expected zero drawdown, got %f", m.MaxDrawdown)
	}
}

func TestMaxDrawdownSkipsZeroPeak(t *testing.T) {
	start := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	series := makeSeries(start, []float64{0, 10, 5}, 1000)

	dd := maxDrawdown(series)
	if !almostEqual(dd, 50, 1e-9) {
		t.Errorf("Expected drawdown 50, got %f", dd)
	}
}

func TestResampleWeekly(t *testing.T) {
	// Two full Monday-Friday weeks
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	series := make(types.PriceSeries, 0, 10)
	for week := 0; week < 2; week++ {
		for day := 0; day < 5; day++ {
			series = append(series, types.PricePoint{
				Date:   start.AddDate(0, 0, week*7+day),
				Close:  float64(100 + week*10 + day),
				Volume: 100,
			})
		}
	}

	weekly := ResampleWeekly(series)
	if len(weekly) != 2 {
		t.Fatalf("Expected 2 weekly observations, got %d", len(weekly))
	}

	if weekly[0].Close != 104 {
		t.Errorf("Expected first week to close at 104, got %f", weekly[0].Close)
	}
	if weekly[1].Close != 114 {
		t.Errorf("Expected second week to close at 114, got %f", weekly[1].Close)
	}
	if weekly[0].Volume != 500 {
		t.Errorf("Expected summed weekly volume 500, got %f", weekly[0].Volume)
	}
	if !weekly[0].Date.Equal(start.AddDate(0, 0, 4)) {
		t.Errorf("Expected week stamped with its last trading day, got %v", weekly[0].Date)
	}
}

func TestSamplingPeriodsPerYear(t *testing.T) {
	if got := SamplingDaily.PeriodsPerYear(); got != 252 {
		t.Errorf("Expected 252 daily periods, got %f", got)
	}
	if got := SamplingWeekly.PeriodsPerYear(); got != 52 {
		t.Errorf("Expected 52 weekly periods, got %f", got)
	}
}
