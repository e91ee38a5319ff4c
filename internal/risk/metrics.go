package risk

import (
	"encoding/json"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"stock-risk-explorer/internal/types"
)

// Sampling is the observation frequency of the series the metrics are
// computed from. It controls the annualization factor for volatility.
type Sampling int

const (
	SamplingDaily Sampling = iota
	SamplingWeekly
)

// PeriodsPerYear returns the number of trading periods per year for the
// sampling frequency (252 daily sessions, 52 weeks).
func (s Sampling) PeriodsPerYear() float64 {
	if s == SamplingWeekly {
		return 52
	}
	return 252
}

// WindowOptions controls the analysis window for windowed statistics.
// If fewer than MinWindowObs observations fall inside the calendar window,
// the window falls back to the most recent FallbackObs observations.
type WindowOptions struct {
	WindowDays   int
	MinWindowObs int
	FallbackObs  int
	Sampling     Sampling
}

// DefaultWindowOptions returns the standard one-year daily window.
func DefaultWindowOptions() WindowOptions {
	return WindowOptions{
		WindowDays:   365,
		MinWindowObs: 50,
		FallbackObs:  252,
		Sampling:     SamplingDaily,
	}
}

// Metrics are the raw statistics derived from a price/volume series.
// A metric the series cannot support is NaN, never a fabricated zero.
type Metrics struct {
	AnnualVolatility float64 // stddev of per-period returns, annualized (fraction)
	WindowReturn     float64 // percent change from window start to latest close
	MaxDrawdown      float64 // worst peak-to-trough decline in the window (percent)
	AvgDailyVolume   float64 // mean traded volume over the full series
}

// MarshalJSON encodes undefined (NaN) metrics as null.
func (m Metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AnnualVolatility *float64 `json:"annual_volatility"`
		WindowReturn     *float64 `json:"window_return"`
		MaxDrawdown      *float64 `json:"max_drawdown"`
		AvgDailyVolume   *float64 `json:"avg_daily_volume"`
	}{
		nanToPtr(m.AnnualVolatility),
		nanToPtr(m.WindowReturn),
		nanToPtr(m.MaxDrawdown),
		nanToPtr(m.AvgDailyVolume),
	})
}

func nanToPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// ExtractMetrics derives volatility, return, drawdown and liquidity
// statistics from a daily series. Window return and average volume are
// computed against the full series so the anchor point stays accurate even
// when the volatility/drawdown window had to be truncated.
func ExtractMetrics(series types.PriceSeries, opts WindowOptions) Metrics {
	nan := math.NaN()
	m := Metrics{AnnualVolatility: nan, WindowReturn: nan, MaxDrawdown: nan, AvgDailyVolume: nan}
	if len(series) == 0 {
		return m
	}

	m.AvgDailyVolume = meanVolume(series)

	last := series.Last()
	windowStart := last.Date.AddDate(0, 0, -opts.WindowDays)
	m.WindowReturn = windowReturn(series, windowStart)

	window := windowSlice(series, windowStart, opts)
	if len(window) >= 2 {
		m.AnnualVolatility = annualizedVolatility(window, opts.Sampling.PeriodsPerYear())
		m.MaxDrawdown = maxDrawdown(window)
	}
	return m
}

// windowReturn is the percent change from the close nearest windowStart
// (nearest-date lookup, not exact match) to the most recent close.
func windowReturn(series types.PriceSeries, windowStart time.Time) float64 {
	anchor := nearest(series, windowStart)
	if anchor.Close == 0 {
		return math.NaN()
	}
	return (series.Last().Close/anchor.Close - 1) * 100
}

// nearest returns the observation whose date is closest to t.
func nearest(series types.PriceSeries, t time.Time) types.PricePoint {
	best := series[0]
	bestDist := absDuration(series[0].Date.Sub(t))
	for _, p := range series[1:] {
		d := absDuration(p.Date.Sub(t))
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// windowSlice returns the observations inside the calendar window, falling
// back to the most recent FallbackObs observations when too few exist.
func windowSlice(series types.PriceSeries, windowStart time.Time, opts WindowOptions) types.PriceSeries {
	start := len(series)
	for i, p := range series {
		if !p.Date.Before(windowStart) {
			start = i
			break
		}
	}
	window := series[start:]
	if len(window) < opts.MinWindowObs {
		n := opts.FallbackObs
		if n > len(series) {
			n = len(series)
		}
		window = series[len(series)-n:]
	}
	return window
}

// annualizedVolatility is the sample standard deviation of per-period
// fractional returns scaled by the square root of periods per year.
func annualizedVolatility(window types.PriceSeries, periodsPerYear float64) float64 {
	returns := make([]float64, 0, len(window)-1)
	for i := 1; i < len(window); i++ {
		prev := window[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, window[i].Close/prev-1)
	}
	if len(returns) < 2 {
		return math.NaN()
	}
	return stat.StdDev(returns, nil) * math.Sqrt(periodsPerYear)
}

// maxDrawdown is the largest percentage decline from a running peak. A zero
// running peak contributes zero rather than dividing by zero.
func maxDrawdown(window types.PriceSeries) float64 {
	peak := window[0].Close
	worst := 0.0
	for _, p := range window {
		if p.Close > peak {
			peak = p.Close
		}
		if peak == 0 {
			continue
		}
		dd := (peak - p.Close) / peak * 100
		if dd > worst {
			worst = dd
		}
	}
	return worst
}

func meanVolume(series types.PriceSeries) float64 {
	volumes := make([]float64, len(series))
	for i, p := range series {
		volumes[i] = p.Volume
	}
	return stat.Mean(volumes, nil)
}

// ResampleWeekly collapses a daily series to one observation per ISO week,
// keeping the last close of the week and the summed volume. Use together
// with SamplingWeekly so volatility is annualized with the right factor.
func ResampleWeekly(series types.PriceSeries) types.PriceSeries {
	if len(series) == 0 {
		return series
	}
	out := make(types.PriceSeries, 0, len(series)/5+1)
	curYear, curWeek := series[0].Date.ISOWeek()
	agg := series[0]
	for _, p := range series[1:] {
		y, w := p.Date.ISOWeek()
		if y == curYear && w == curWeek {
			agg.Date = p.Date
			agg.Close = p.Close
			agg.Volume += p.Volume
			continue
		}
		out = append(out, agg)
		curYear, curWeek = y, w
		agg = p
	}
	return append(out, agg)
}
