package marketdata

import (
	"context"
	"math/rand"
	"time"

	"stock-risk-explorer/internal/types"
)

// MockProvider generates deterministic synthetic market data per symbol,
// for tests and offline runs. The same symbol always yields the same
// fundamentals and the same price path shape.
type MockProvider struct{}

// NewMockProvider creates a new mock provider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

var mockSectors = []string{
	"Technology",
	"Healthcare",
	"Financial Services",
	"Real Estate",
	"Consumer Cyclical",
	"Industrials",
	"Utilities",
	"Communication Services",
}

// symbolSeed derives a stable per-symbol seed so mock data is
// reproducible across runs.
func symbolSeed(symbol string) int64 {
	seed := int64(0)
	for _, c := range symbol {
		seed = seed*31 + int64(c)
	}
	return seed
}

// FetchFundamentals generates mock fundamentals for a symbol. Roughly one
// field in five is reported absent to exercise the sparse-field handling.
func (m *MockProvider) FetchFundamentals(ctx context.Context, symbol string) (*types.Fundamentals, error) {
	r := rand.New(rand.NewSource(symbolSeed(symbol)))

	f := &types.Fundamentals{
		ShortName: symbol + " Inc.",
		Sector:    mockSectors[r.Intn(len(mockSectors))],
	}

	marketCap := 1_000_000_000 * (1 + r.Float64()*3000) // $1B to ~$3T
	f.MarketCap = types.Float(marketCap)

	if r.Float64() < 0.8 {
		f.TrailingPE = types.Float(8 + r.Float64()*60)
	}
	if r.Float64() < 0.8 {
		f.DividendYield = types.Float(r.Float64() * 0.05)
	}
	if r.Float64() < 0.8 {
		f.RevenueGrowth = types.Float(-0.10 + r.Float64()*0.50)
	}
	if r.Float64() < 0.8 {
		f.EarningsGrowth = types.Float(-0.20 + r.Float64()*0.60)
	}

	return f, nil
}

// FetchDailyHistory generates a mock daily random walk ending today,
// weekends excluded.
func (m *MockProvider) FetchDailyHistory(ctx context.Context, symbol string, years int) (types.PriceSeries, error) {
	if years <= 0 {
		years = 5
	}
	r := rand.New(rand.NewSource(symbolSeed(symbol) + 1))

	price := 20 + r.Float64()*480
	dailyVol := 0.005 + r.Float64()*0.03
	drift := -0.0002 + r.Float64()*0.001
	baseVolume := 100_000 + r.Float64()*9_900_000

	start := time.Now().AddDate(-years, 0, 0)
	series := make(types.PriceSeries, 0, years*252)
	for d := start; !d.After(time.Now()); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		price *= 1 + drift + r.NormFloat64()*dailyVol
		if price < 1 {
			price = 1
		}
		volume := baseVolume * (0.5 + r.Float64())
		series = append(series, types.PricePoint{
			Date:   time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Close:  price,
			Volume: volume,
		})
	}
	return series, nil
}
