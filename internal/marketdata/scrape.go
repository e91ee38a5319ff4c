package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"stock-risk-explorer/internal/interfaces"
	"stock-risk-explorer/internal/logger"
	"stock-risk-explorer/internal/types"
)

// ScrapeProvider extracts fundamentals from a public quote page as a
// fallback when the JSON API is unavailable. It only covers fundamentals;
// price history has no scrape fallback.
type ScrapeProvider struct {
	source  scrapeSource
	timeout time.Duration
}

// scrapeSource describes one quote page layout.
type scrapeSource struct {
	Name          string
	URL           string // {symbol} is replaced with the uppercased ticker
	TableSelector string
	NameSelector  string
}

func defaultScrapeSource() scrapeSource {
	return scrapeSource{
		Name:          "StockAnalysis",
		URL:           "https://stockanalysis.com/stocks/{symbol}/",
		TableSelector: "table",
		NameSelector:  "h1",
	}
}

// NewScrapeProvider creates a scraper against the default quote page.
func NewScrapeProvider(timeout time.Duration) *ScrapeProvider {
	return &ScrapeProvider{source: defaultScrapeSource(), timeout: timeout}
}

// FetchFundamentals scrapes the quote page's statistics tables into a
// sparse fundamentals record. Fields the page does not show stay nil.
func (s *ScrapeProvider) FetchFundamentals(ctx context.Context, symbol string) (*types.Fundamentals, error) {
	pageURL := strings.ReplaceAll(s.source.URL, "{symbol}", strings.ToUpper(symbol))
	logger.Debug(ctx, "Scraping fundamentals", "source", s.source.Name, "url", pageURL)

	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
	)
	c.SetRequestTimeout(s.timeout)

	f := &types.Fundamentals{}
	found := false

	c.OnHTML(s.source.NameSelector, func(e *colly.HTMLElement) {
		if f.ShortName == "" {
			f.ShortName = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML(s.source.TableSelector, func(e *colly.HTMLElement) {
		e.DOM.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}
			label := strings.TrimSpace(cells.First().Text())
			value := strings.TrimSpace(cells.Eq(1).Text())
			if applyStatField(f, label, value) {
				found = true
			}
		})
	})

	var fetchErr error
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", pageURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", pageURL, fetchErr)
	}
	if !found {
		return nil, fmt.Errorf("no fundamentals found on %s for %s", s.source.Name, symbol)
	}
	return f, nil
}

// applyStatField maps a scraped label/value pair onto the fundamentals
// record. Returns true if the label was recognized and parsed.
func applyStatField(f *types.Fundamentals, label, value string) bool {
	switch strings.ToLower(label) {
	case "market cap":
		if v, ok := parseAbbrevNumber(value); ok {
			f.MarketCap = types.Float(v)
			return true
		}
	case "pe ratio", "p/e ratio", "trailing pe":
		if v, ok := parsePlainNumber(value); ok {
			f.TrailingPE = types.Float(v)
			return true
		}
	case "dividend yield":
		if v, ok := parsePercent(value); ok {
			f.DividendYield = types.Float(v)
			return true
		}
	case "revenue growth", "revenue growth (yoy)":
		if v, ok := parsePercent(value); ok {
			f.RevenueGrowth = types.Float(v)
			return true
		}
	case "earnings growth", "earnings growth (yoy)", "eps growth":
		if v, ok := parsePercent(value); ok {
			f.EarningsGrowth = types.Float(v)
			return true
		}
	case "sector":
		if value != "" && value != "n/a" {
			f.Sector = value
			return true
		}
	}
	return false
}

// parseAbbrevNumber parses values like "2.95T", "412.5B" or "18,400M".
func parseAbbrevNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || strings.EqualFold(s, "n/a") {
		return 0, false
	}
	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "T"):
		multiplier, s = 1e12, strings.TrimSuffix(s, "T")
	case strings.HasSuffix(s, "B"):
		multiplier, s = 1e9, strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "M"):
		multiplier, s = 1e6, strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "K"):
		multiplier, s = 1e3, strings.TrimSuffix(s, "K")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v * multiplier, true
}

// parsePercent parses "1.85%" to the decimal fraction 0.0185. Values
// without a percent sign are passed through as-is for the classifier's
// magnitude heuristic to normalize.
func parsePercent(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || strings.EqualFold(s, "n/a") {
		return 0, false
	}
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if percent {
		v /= 100
	}
	return v, true
}

func parsePlainNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || strings.EqualFold(s, "n/a") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FallbackProvider tries a primary provider first and falls back to the
// scraper for fundamentals when the primary fails. History has no scrape
// path and always goes to the primary.
type FallbackProvider struct {
	primary interfaces.MarketDataProvider
	scraper *ScrapeProvider
}

// NewFallbackProvider combines a primary provider with a scrape fallback.
func NewFallbackProvider(primary interfaces.MarketDataProvider, scraper *ScrapeProvider) *FallbackProvider {
	return &FallbackProvider{primary: primary, scraper: scraper}
}

func (p *FallbackProvider) FetchFundamentals(ctx context.Context, symbol string) (*types.Fundamentals, error) {
	f, err := p.primary.FetchFundamentals(ctx, symbol)
	if err == nil {
		return f, nil
	}
	logger.Warn(ctx, "Primary fundamentals fetch failed, trying scrape fallback", "symbol", symbol, "error", err)
	f, scrapeErr := p.scraper.FetchFundamentals(ctx, symbol)
	if scrapeErr != nil {
		return nil, fmt.Errorf("all sources failed for %s: %w", symbol, err)
	}
	return f, nil
}

func (p *FallbackProvider) FetchDailyHistory(ctx context.Context, symbol string, years int) (types.PriceSeries, error) {
	return p.primary.FetchDailyHistory(ctx, symbol, years)
}
