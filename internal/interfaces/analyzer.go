package interfaces

import (
	"context"

	"stock-risk-explorer/internal/analyzer"
)

// StockAnalyzer defines the interface for the combined classification,
// profile fit and risk assessment pipeline
type StockAnalyzer interface {
	// Analyze runs the full pipeline over a list of symbols
	Analyze(ctx context.Context, symbols []string) (*analyzer.BatchResult, error)

	// AnalyzeSymbol produces the full report for a single symbol
	AnalyzeSymbol(ctx context.Context, symbol string) analyzer.Report

	// GetTopFits returns the top N reports by fit score
	GetTopFits(ctx context.Context, symbols []string, topN int) ([]analyzer.Report, error)
}
