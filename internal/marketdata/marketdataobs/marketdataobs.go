package marketdataobs

import (
	"context"

	"stock-risk-explorer/internal/interfaces"
	"stock-risk-explorer/internal/logger"
	"stock-risk-explorer/internal/trace"
	"stock-risk-explorer/internal/types"
)

// observableProvider wraps a MarketDataProvider with observability (logging & tracing)
type observableProvider struct {
	provider interfaces.MarketDataProvider
}

// Compile-time interface check
var _ interfaces.MarketDataProvider = (*observableProvider)(nil)

// Wrap wraps a market data provider with observability middleware
func Wrap(provider interfaces.MarketDataProvider) interfaces.MarketDataProvider {
	return &observableProvider{
		provider: provider,
	}
}

// FetchFundamentals fetches fundamentals with observability
func (op *observableProvider) FetchFundamentals(ctx context.Context, symbol string) (*types.Fundamentals, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.FetchFundamentals")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching fundamentals", "symbol", symbol)

	fundamentals, err := op.provider.FetchFundamentals(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch fundamentals", err, "symbol", symbol)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Fundamentals fetched successfully", "symbol", symbol)
	return fundamentals, nil
}

// FetchDailyHistory fetches price history with observability
func (op *observableProvider) FetchDailyHistory(ctx context.Context, symbol string, years int) (types.PriceSeries, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.FetchDailyHistory")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching price history", "symbol", symbol, "years", years)

	series, err := op.provider.FetchDailyHistory(ctx, symbol, years)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch price history", err, "symbol", symbol, "years", years)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Price history fetched successfully", "symbol", symbol, "points", len(series))
	return series, nil
}
