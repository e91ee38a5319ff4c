package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"stock-risk-explorer/internal/classify"
	"stock-risk-explorer/internal/profile"
	"stock-risk-explorer/internal/risk"
	"stock-risk-explorer/internal/types"
)

// Report is the combined view of a single stock: its classification, how
// well it fits the investor profile, and its risk assessment.
type Report struct {
	Ticker string                `json:"ticker"`
	Stock  types.ClassifiedStock `json:"stock"`
	Fit    types.FitResult       `json:"fit"`
	Risk   risk.Assessment       `json:"risk"`
}

// BatchResult holds the reports for a full universe run, sorted by fit
// score descending with error records last.
type BatchResult struct {
	AnalysisDate  time.Time `json:"analysis_date"`
	TotalAnalyzed int       `json:"total_analyzed"`
	ErrorCount    int       `json:"error_count"`
	Reports       []Report  `json:"reports"`
}

// Analyzer runs classification, profile matching and risk assessment
// over a universe of stocks.
type Analyzer struct {
	classifier *classify.Classifier
	matcher    *profile.Matcher
	assessor   *risk.Assessor
}

// NewAnalyzer creates an analyzer from its three components.
func NewAnalyzer(classifier *classify.Classifier, matcher *profile.Matcher, assessor *risk.Assessor) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		matcher:    matcher,
		assessor:   assessor,
	}
}

// Profile returns the investor profile the analyzer matches against.
func (a *Analyzer) Profile() profile.InvestorProfile {
	return a.matcher.Profile()
}

// AnalyzeSymbol produces the full report for one symbol. Data failures
// are carried inside the report rather than returned as errors.
func (a *Analyzer) AnalyzeSymbol(ctx context.Context, symbol string) Report {
	return a.AnalyzeSymbolWithOverrides(ctx, symbol, risk.Overrides{})
}

// AnalyzeSymbolWithOverrides is AnalyzeSymbol with manual subscore
// overrides applied to the risk assessment.
func (a *Analyzer) AnalyzeSymbolWithOverrides(ctx context.Context, symbol string, o risk.Overrides) Report {
	stock := a.classifier.Classify(ctx, symbol)
	fit := a.matcher.Match(stock)
	assessment := a.assessor.AssessWithOverrides(ctx, symbol, o)

	return Report{
		Ticker: stock.Ticker,
		Stock:  stock,
		Fit:    fit,
		Risk:   assessment,
	}
}

// Analyze runs the full pipeline over a list of symbols.
func (a *Analyzer) Analyze(ctx context.Context, symbols []string) (*BatchResult, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols provided")
	}

	reports := make([]Report, 0, len(symbols))
	errorCount := 0
	for _, symbol := range symbols {
		report := a.AnalyzeSymbol(ctx, symbol)
		if report.Stock.Error != "" {
			errorCount++
		}
		reports = append(reports, report)
	}

	// Sort by fit score (descending), error records last
	sort.SliceStable(reports, func(i, j int) bool {
		return fitValue(reports[i]) > fitValue(reports[j])
	})

	return &BatchResult{
		AnalysisDate:  time.Now(),
		TotalAnalyzed: len(reports),
		ErrorCount:    errorCount,
		Reports:       reports,
	}, nil
}

// GetTopFits returns the top N reports by fit score.
func (a *Analyzer) GetTopFits(ctx context.Context, symbols []string, topN int) ([]Report, error) {
	result, err := a.Analyze(ctx, symbols)
	if err != nil {
		return nil, err
	}

	// Already sorted by fit score
	if len(result.Reports) <= topN {
		return result.Reports, nil
	}
	return result.Reports[:topN], nil
}

// fitValue extracts a sortable fit score; reports without one sort last.
func fitValue(r Report) float64 {
	if r.Fit.FitScore == nil {
		return -1
	}
	return *r.Fit.FitScore
}
