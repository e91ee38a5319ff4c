package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"stock-risk-explorer/internal/api"
	"stock-risk-explorer/internal/logger"
	"stock-risk-explorer/internal/types"
)

// YahooProvider fetches fundamentals and price history from the public
// Yahoo Finance JSON endpoints. Data may be delayed; this is a research
// feed, not a trading feed.
type YahooProvider struct {
	client *api.Client
}

// NewYahooProvider creates a provider against the public Yahoo endpoints.
func NewYahooProvider() *YahooProvider {
	client := api.NewClient(
		api.WithBaseURL("https://query1.finance.yahoo.com"),
		api.WithTimeout(30*time.Second),
		api.WithHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		api.WithHeader("Accept", "application/json"),
		api.WithLogging(true),
	)
	return &YahooProvider{client: client}
}

// rawValue is Yahoo's number envelope: {"raw": 1.23, "fmt": "1.23%"}.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				ShortName string   `json:"shortName"`
				MarketCap rawValue `json:"marketCap"`
			} `json:"price"`
			AssetProfile *struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
			SummaryDetail *struct {
				TrailingPE    rawValue `json:"trailingPE"`
				DividendYield rawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			FinancialData *struct {
				RevenueGrowth  rawValue `json:"revenueGrowth"`
				EarningsGrowth rawValue `json:"earningsGrowth"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchFundamentals retrieves the fundamental fields for a symbol. Fields
// Yahoo does not report stay nil in the returned record.
func (y *YahooProvider) FetchFundamentals(ctx context.Context, symbol string) (*types.Fundamentals, error) {
	op := logger.StartOperation(ctx, "yahoo.FetchFundamentals", "symbol", symbol)
	defer op.End()

	endpoint := fmt.Sprintf("/v10/finance/quoteSummary/%s?modules=price,assetProfile,summaryDetail,financialData",
		url.PathEscape(symbol))

	var resp quoteSummaryResponse
	if err := y.client.GetJSON(op.Context(), endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch fundamentals for %s: %w", symbol, err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo error for %s: %s", symbol, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no fundamentals data for %s", symbol)
	}

	result := resp.QuoteSummary.Result[0]
	f := &types.Fundamentals{}
	if result.Price != nil {
		f.ShortName = result.Price.ShortName
		f.MarketCap = result.Price.MarketCap.Raw
	}
	if result.AssetProfile != nil {
		f.Sector = result.AssetProfile.Sector
	}
	if result.SummaryDetail != nil {
		f.TrailingPE = result.SummaryDetail.TrailingPE.Raw
		f.DividendYield = result.SummaryDetail.DividendYield.Raw
	}
	if result.FinancialData != nil {
		f.RevenueGrowth = result.FinancialData.RevenueGrowth.Raw
		f.EarningsGrowth = result.FinancialData.EarningsGrowth.Raw
	}
	return f, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyHistory retrieves up to `years` years of daily closes and
// volumes. Sessions Yahoo reports with a null close are skipped.
func (y *YahooProvider) FetchDailyHistory(ctx context.Context, symbol string, years int) (types.PriceSeries, error) {
	op := logger.StartOperation(ctx, "yahoo.FetchDailyHistory", "symbol", symbol, "years", years)
	defer op.End()

	if years <= 0 {
		years = 5
	}
	endpoint := fmt.Sprintf("/v8/finance/chart/%s?range=%dy&interval=1d", url.PathEscape(symbol), years)

	var resp chartResponse
	if err := y.client.GetJSON(op.Context(), endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error for %s: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no price history for %s", symbol)
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := make(types.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		volume := 0.0
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		series = append(series, types.PricePoint{
			Date:   time.Unix(ts, 0).UTC(),
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("empty price history for %s", symbol)
	}
	return series, nil
}
