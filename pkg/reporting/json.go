package reporting

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quantfold/swingbot/internal/backtest"
)

// ReportDocument is the JSON projection of a symbol's performance report.
type ReportDocument struct {
	Symbol         string  `json:"symbol"`
	InitialBalance float64 `json:"initial_balance"`
	FinalBalance   float64 `json:"final_balance"`
	TotalProfit    float64 `json:"total_profit"`
	TotalReturnPct float64 `json:"total_return_pct"`
	TotalTrades    int     `json:"total_trades"`
	WinningTrades  int     `json:"winning_trades"`
	LosingTrades   int     `json:"losing_trades"`
	WinRatePct     float64 `json:"win_rate_pct"`
	AvgProfit      float64 `json:"avg_profit"`
	MaxProfit      float64 `json:"max_profit"`
	MaxLoss        float64 `json:"max_loss"`
	ProfitFactor   float64 `json:"profit_factor"`
	AvgHoldDays    float64 `json:"avg_hold_days"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
}

// DefaultJSONFormatter implements JSON report output
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// FormatReport renders the report as indented JSON.
func (f *DefaultJSONFormatter) FormatReport(symbol string, report *backtest.Report) ([]byte, error) {
	doc := ReportDocument{
		Symbol:         symbol,
		InitialBalance: report.InitialBalance,
		FinalBalance:   report.FinalBalance,
		TotalProfit:    report.TotalProfit,
		TotalReturnPct: report.TotalReturnPct,
		TotalTrades:    report.TotalTrades,
		WinningTrades:  report.WinningTrades,
		LosingTrades:   report.LosingTrades,
		WinRatePct:     report.WinRatePct,
		AvgProfit:      report.AvgProfit,
		MaxProfit:      report.MaxProfit,
		MaxLoss:        report.MaxLoss,
		ProfitFactor:   report.ProfitFactor,
		AvgHoldDays:    report.AvgHoldDays,
		SharpeRatio:    report.SharpeRatio,
		MaxDrawdownPct: report.MaxDrawdownPct,
	}

	return json.MarshalIndent(doc, "", "  ")
}

// WriteReportJSON writes the report document to disk.
func (f *DefaultJSONFormatter) WriteReportJSON(symbol string, report *backtest.Report, path string) error {
	data, err := f.FormatReport(symbol, report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
