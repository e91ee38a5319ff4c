package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"stock-risk-explorer/internal/analyzer"
	"stock-risk-explorer/internal/logger"
	"stock-risk-explorer/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	defer trace.Shutdown(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║       Stock Risk Explorer - Classification & Fit Report      ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()

	provider, cleanup, err := initializeProvider(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize market data: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	stockAnalyzer, err := initializeAnalyzer(ctx, cfg, provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize analyzer: %v\n", err)
		os.Exit(1)
	}

	symbols := cfg.Universe.Static
	if len(symbols) == 0 {
		fmt.Println("⚠️  No symbols configured for analysis")
		os.Exit(1)
	}

	fmt.Printf("🔍 Analyzing %d symbols...\n\n", len(symbols))

	result, err := stockAnalyzer.Analyze(ctx, symbols)
	if err != nil {
		logger.ErrorWithErr(ctx, "Analysis failed", err)
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	printResults(result)

	// Optionally save to JSON file
	if len(os.Args) > 1 && os.Args[1] == "--json" {
		saveResultsJSON(result, "explorer_results.json")
	}
}

func printResults(result *analyzer.BatchResult) {
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                      ANALYSIS SUMMARY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("Analysis Date:      %s\n", result.AnalysisDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Total Analyzed:     %d stocks\n", result.TotalAnalyzed)
	if result.ErrorCount > 0 {
		fmt.Printf("Data Errors:        %d stocks\n", result.ErrorCount)
	}
	fmt.Println()

	for i, report := range result.Reports {
		printReport(i+1, &report)
		fmt.Println()
	}

	fmt.Println("═══════════════════════════════════════════════════════════════")
}

func printReport(rank int, report *analyzer.Report) {
	stock := &report.Stock
	fit := &report.Fit

	if stock.Error != "" {
		fmt.Printf("❌ Rank #%d: %s\n", rank, report.Ticker)
		fmt.Println("─────────────────────────────────────────────────────────────")
		fmt.Printf("  ⚠️  Data error: %s\n", stock.Error)
		return
	}

	fmt.Printf("%s Rank #%d: %s (%s)\n", fit.FitEmoji, rank, report.Ticker, stock.ShortName)
	fmt.Println("─────────────────────────────────────────────────────────────")

	// Classification
	fmt.Printf("  🏷️  Style:            %s\n", stock.Style)
	fmt.Printf("  🏢 Sector:           %s\n", stock.Sector)
	fmt.Printf("  📐 Market Cap Tier:  %s\n", stock.MarketCapTier)

	// Profile fit
	if fit.FitScore != nil {
		fmt.Printf("  🤝 Profile Fit:      %.0f%% - %s\n", *fit.FitScore*100, fit.FitLabel)
	} else {
		fmt.Printf("  🤝 Profile Fit:      n/a - %s\n", fit.FitLabel)
	}

	// Risk
	fmt.Println()
	fmt.Println("  Risk Subscores:")
	fmt.Printf("    • Volatility:     %s/100\n", fmtScore(report.Risk.Subscores.Volatility))
	fmt.Printf("    • Drawdown:       %s/100\n", fmtScore(report.Risk.Subscores.Drawdown))
	fmt.Printf("    • Growth:         %s/100\n", fmtScore(report.Risk.Subscores.Growth))
	fmt.Printf("    • Liquidity:      %s/100\n", fmtScore(report.Risk.Subscores.Liquidity))
	fmt.Printf("  ⚖️  Aggregate Risk:   %s/100\n", fmtScore(report.Risk.ASI))
	if report.Risk.Error != "" {
		fmt.Printf("  ⚠️  Risk data error: %s\n", report.Risk.Error)
	}

	// Reasoning
	fmt.Println()
	fmt.Printf("  📝 %s\n", fit.Reasoning)
}

// fmtScore renders a 0-100 score, showing undefined (NaN) values as n/a.
func fmtScore(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}

func saveResultsJSON(result *analyzer.BatchResult, filename string) {
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create JSON file: %v\n", err)
		return
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write JSON: %v\n", err)
		return
	}

	fmt.Printf("💾 Results saved to %s\n", filename)
}
