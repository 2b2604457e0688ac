package reporting

import (
	"path/filepath"

	"github.com/quantfold/swingbot/internal/backtest"
)

// DefaultReporter bundles the console and file reporters.
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	json    *DefaultJSONFormatter
}

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		json:    NewDefaultJSONFormatter(),
	}
}

func (r *DefaultReporter) OutputResults(symbol string, result *backtest.Result, report *backtest.Report) {
	r.console.OutputResults(symbol, result, report)
}

func (r *DefaultReporter) OutputTrades(symbol string, trades []backtest.Trade, topTrades int) {
	r.console.OutputTrades(symbol, trades, topTrades)
}

func (r *DefaultReporter) OutputPortfolioSummary(rows []SummaryRow) {
	r.console.OutputPortfolioSummary(rows)
}

func (r *DefaultReporter) WriteTradesCSV(trades []backtest.Trade, path string) error {
	return r.csv.WriteTradesCSV(trades, path)
}

func (r *DefaultReporter) WriteWorkbook(symbol string, result *backtest.Result, report *backtest.Report, path string) error {
	return r.excel.WriteWorkbook(symbol, result, report, path)
}

func (r *DefaultReporter) WriteReportJSON(symbol string, report *backtest.Report, path string) error {
	return r.json.WriteReportJSON(symbol, report, path)
}

// ReportingManager drives a full reporting pass according to configuration.
type ReportingManager struct {
	reporter *DefaultReporter
	config   ReportingConfig
}

// NewReportingManager creates a new reporting manager with configuration
func NewReportingManager(config ReportingConfig) *ReportingManager {
	return &ReportingManager{
		reporter: NewDefaultReporter(),
		config:   config,
	}
}

// ReportSymbol outputs one symbol's results according to configuration.
// report may be nil when the run closed no trades; file artifacts that need
// a report are skipped in that case.
func (m *ReportingManager) ReportSymbol(symbol string, result *backtest.Result, report *backtest.Report) error {
	if m.config.EnableConsole && report != nil {
		m.reporter.OutputResults(symbol, result, report)
		m.reporter.OutputTrades(symbol, result.Trades, m.config.TopTrades)
	}

	outputDir := DefaultOutputDir(m.config.OutputDir, symbol)

	if m.config.CSVEnabled && len(result.Trades) > 0 {
		if err := m.reporter.WriteTradesCSV(result.Trades, filepath.Join(outputDir, "trades.csv")); err != nil {
			return err
		}
	}

	if report == nil {
		return nil
	}

	if m.config.ExcelEnabled {
		if err := m.reporter.WriteWorkbook(symbol, result, report, filepath.Join(outputDir, "backtest.xlsx")); err != nil {
			return err
		}
	}

	if m.config.JSONEnabled {
		if err := m.reporter.WriteReportJSON(symbol, report, filepath.Join(outputDir, "report.json")); err != nil {
			return err
		}
	}

	return nil
}

// ReportSummary prints the portfolio summary table.
func (m *ReportingManager) ReportSummary(rows []SummaryRow) {
	if m.config.EnableConsole {
		m.reporter.OutputPortfolioSummary(rows)
	}
}
