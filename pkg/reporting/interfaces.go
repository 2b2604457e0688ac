package reporting

import (
	"github.com/quantfold/swingbot/internal/backtest"
)

// ConsoleReporter renders results for a terminal audience.
type ConsoleReporter interface {
	OutputResults(symbol string, result *backtest.Result, report *backtest.Report)
	OutputTrades(symbol string, trades []backtest.Trade, topTrades int)
	OutputPortfolioSummary(rows []SummaryRow)
}

// FileReporter persists results as artifacts on disk.
type FileReporter interface {
	WriteTradesCSV(trades []backtest.Trade, path string) error
	WriteWorkbook(symbol string, result *backtest.Result, report *backtest.Report, path string) error
	WriteReportJSON(symbol string, report *backtest.Report, path string) error
}

// SummaryRow is one symbol's line in the portfolio summary table.
type SummaryRow struct {
	Symbol         string
	TotalTrades    int
	WinRatePct     float64
	TotalReturnPct float64
	MaxDrawdownPct float64
	SharpeRatio    float64
	FinalBalance   float64
	NoTrades       bool
}

// ReportingConfig selects which outputs a run produces.
type ReportingConfig struct {
	OutputDir     string
	EnableConsole bool
	CSVEnabled    bool
	ExcelEnabled  bool
	JSONEnabled   bool
	TopTrades     int
}
