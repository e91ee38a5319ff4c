package analyzerobs

import (
	"context"
	"time"

	"stock-risk-explorer/internal/analyzer"
	"stock-risk-explorer/internal/interfaces"
	"stock-risk-explorer/internal/logger"
	"stock-risk-explorer/internal/trace"
)

// observableAnalyzer wraps StockAnalyzer with logging and tracing
type observableAnalyzer struct {
	inner interfaces.StockAnalyzer
}

// Compile-time interface check
var _ interfaces.StockAnalyzer = (*observableAnalyzer)(nil)

// Wrap wraps a StockAnalyzer with observability middleware
func Wrap(a interfaces.StockAnalyzer) interfaces.StockAnalyzer {
	return &observableAnalyzer{inner: a}
}

// Analyze wraps the Analyze method with logging and tracing
func (o *observableAnalyzer) Analyze(ctx context.Context, symbols []string) (*analyzer.BatchResult, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.Analyze")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting universe analysis", "symbol_count", len(symbols))
	start := time.Now()

	result, err := o.inner.Analyze(ctx, symbols)

	duration := time.Since(start)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Universe analysis failed", err,
			"symbol_count", len(symbols),
			"duration_ms", duration.Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Universe analysis completed",
		"total_analyzed", result.TotalAnalyzed,
		"error_count", result.ErrorCount,
		"duration_ms", duration.Milliseconds(),
	)
	return result, nil
}

// AnalyzeSymbol wraps the AnalyzeSymbol method with logging and tracing
func (o *observableAnalyzer) AnalyzeSymbol(ctx context.Context, symbol string) analyzer.Report {
	ctx, span := trace.StartSpan(ctx, "analyzer.AnalyzeSymbol")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Analyzing symbol", "symbol", symbol)
	start := time.Now()

	report := o.inner.AnalyzeSymbol(ctx, symbol)

	fields := []any{
		"symbol", symbol,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if report.Stock.Error != "" {
		fields = append(fields, "data_error", report.Stock.Error)
	}
	if report.Fit.FitScore != nil {
		fields = append(fields, "fit_score", *report.Fit.FitScore)
	}
	logger.DebugSkip(ctx, 1, "Symbol analysis completed", fields...)

	return report
}

// GetTopFits wraps the GetTopFits method with logging and tracing
func (o *observableAnalyzer) GetTopFits(ctx context.Context, symbols []string, topN int) ([]analyzer.Report, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.GetTopFits")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Selecting top fits", "symbol_count", len(symbols), "top_n", topN)

	reports, err := o.inner.GetTopFits(ctx, symbols, topN)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Top fit selection failed", err, "top_n", topN)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Top fits selected", "returned", len(reports))
	return reports, nil
}
