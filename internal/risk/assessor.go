package risk

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"stock-risk-explorer/internal/types"
)

// HistorySource supplies daily price history for a symbol. Implemented by
// the marketdata providers.
type HistorySource interface {
	FetchDailyHistory(ctx context.Context, symbol string, years int) (types.PriceSeries, error)
}

// Assessment is the full risk picture for one ticker: raw metrics, the
// four subscores and the aggregate ASI. On fetch failure Error is set and
// every numeric field is NaN.
type Assessment struct {
	Ticker    string    `json:"ticker"`
	Metrics   Metrics   `json:"metrics"`
	Subscores Subscores `json:"subscores"`
	ASI       float64   `json:"asi"`
	Error     string    `json:"error,omitempty"`
}

// MarshalJSON encodes an undefined (NaN) ASI as null.
func (a Assessment) MarshalJSON() ([]byte, error) {
	type alias Assessment
	return json.Marshal(struct {
		alias
		ASI *float64 `json:"asi"`
	}{alias(a), nanToPtr(a.ASI)})
}

// Assessor computes risk assessments from fetched price history.
type Assessor struct {
	source       HistorySource
	opts         WindowOptions
	historyYears int
}

// NewAssessor creates an assessor reading history from source.
func NewAssessor(source HistorySource, opts WindowOptions, historyYears int) *Assessor {
	if historyYears <= 0 {
		historyYears = 5
	}
	return &Assessor{source: source, opts: opts, historyYears: historyYears}
}

// Assess fetches history for symbol and computes the actual ASI.
func (a *Assessor) Assess(ctx context.Context, symbol string) Assessment {
	return a.AssessWithOverrides(ctx, symbol, Overrides{})
}

// AssessWithOverrides fetches history and computes a hypothetical ASI with
// user-supplied subscores in place of derived ones. With empty overrides it
// is identical to Assess; both paths share the one Aggregate routine.
func (a *Assessor) AssessWithOverrides(ctx context.Context, symbol string, o Overrides) Assessment {
	ticker := strings.ToUpper(symbol)
	series, err := a.source.FetchDailyHistory(ctx, symbol, a.historyYears)
	if err != nil {
		nan := math.NaN()
		return Assessment{
			Ticker:    ticker,
			Metrics:   Metrics{AnnualVolatility: nan, WindowReturn: nan, MaxDrawdown: nan, AvgDailyVolume: nan},
			Subscores: Subscores{Volatility: nan, Drawdown: nan, Growth: nan, Liquidity: nan},
			ASI:       nan,
			Error:     err.Error(),
		}
	}
	if a.opts.Sampling == SamplingWeekly {
		series = ResampleWeekly(series)
	}
	return AssessSeries(ticker, series, a.opts, o)
}

// AssessSeries is the pure scoring path over an already-materialized
// series.
func AssessSeries(ticker string, series types.PriceSeries, opts WindowOptions, o Overrides) Assessment {
	metrics := ExtractMetrics(series, opts)
	subscores := MapSubscores(metrics, o)
	return Assessment{
		Ticker:    strings.ToUpper(ticker),
		Metrics:   metrics,
		Subscores: subscores,
		ASI:       Aggregate(subscores),
	}
}
