package interfaces

import (
	"context"

	"stock-risk-explorer/internal/types"
)

// MarketDataProvider is the external market-data boundary. A non-nil error
// means the data is unavailable (network failure, unknown ticker) and is
// distinguishable from empty-but-valid data.
type MarketDataProvider interface {
	// FetchFundamentals returns the fundamental fields known for a symbol.
	// Absent fields are nil in the returned record, never zero-filled.
	FetchFundamentals(ctx context.Context, symbol string) (*types.Fundamentals, error)

	// FetchDailyHistory returns up to `years` years of daily price/volume
	// history, chronologically ascending.
	FetchDailyHistory(ctx context.Context, symbol string, years int) (types.PriceSeries, error)
}
