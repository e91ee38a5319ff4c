package marketdata

import (
	"context"
	"testing"
	"time"

	"stock-risk-explorer/internal/types"
)

// countingProvider counts upstream calls so cache behavior is observable.
type countingProvider struct {
	fundamentalsCalls int
	historyCalls      int
}

func (p *countingProvider) FetchFundamentals(ctx context.Context, symbol string) (*types.Fundamentals, error) {
	p.fundamentalsCalls++
	return &types.Fundamentals{ShortName: symbol + " Corp", Sector: "Technology"}, nil
}

func (p *countingProvider) FetchDailyHistory(ctx context.Context, symbol string, years int) (types.PriceSeries, error) {
	p.historyCalls++
	return types.PriceSeries{
		{Date: time.Now().AddDate(0, 0, -1), Close: 100, Volume: 1000},
		{Date: time.Now(), Close: 101, Volume: 1000},
	}, nil
}

func TestCachedProviderAvoidsRefetch(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cached.FetchFundamentals(ctx, "AAPL"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, err := cached.FetchDailyHistory(ctx, "AAPL", 5); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	if inner.fundamentalsCalls != 1 {
		t.Errorf("Expected 1 upstream fundamentals call, got %d", inner.fundamentalsCalls)
	}
	if inner.historyCalls != 1 {
		t.Errorf("Expected 1 upstream history call, got %d", inner.historyCalls)
	}
}

func TestCachedProviderKeyIsCaseInsensitive(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, time.Minute, nil)
	ctx := context.Background()

	cached.FetchFundamentals(ctx, "aapl")
	cached.FetchFundamentals(ctx, "AAPL")
	cached.FetchFundamentals(ctx, " aapl ")

	if inner.fundamentalsCalls != 1 {
		t.Errorf("Expected symbol variants to share one cache entry, got %d calls", inner.fundamentalsCalls)
	}
}

func TestCachedProviderExpires(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 50*time.Millisecond, nil)
	ctx := context.Background()

	cached.FetchFundamentals(ctx, "MSFT")
	time.Sleep(80 * time.Millisecond)
	cached.FetchFundamentals(ctx, "MSFT")

	if inner.fundamentalsCalls != 2 {
		t.Errorf("Expected expired entry to refetch, got %d calls", inner.fundamentalsCalls)
	}
}
