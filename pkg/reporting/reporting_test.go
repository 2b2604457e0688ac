package reporting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/swingbot/internal/backtest"
)

func sampleTrades() []backtest.Trade {
	entry := time.Date(2023, 3, 6, 0, 0, 0, 0, time.UTC)
	return []backtest.Trade{
		{
			Symbol:     "AAPL",
			EntryDate:  entry,
			ExitDate:   entry.AddDate(0, 0, 4),
			EntryPrice: 150,
			ExitPrice:  158,
			Qty:        100,
			Profit:     800,
			ProfitPct:  5.3333,
			DaysHeld:   4,
			ExitReason: backtest.ExitSignal,
		},
		{
			Symbol:     "AAPL",
			EntryDate:  entry.AddDate(0, 0, 10),
			ExitDate:   entry.AddDate(0, 0, 12),
			EntryPrice: 160,
			ExitPrice:  152,
			Qty:        50,
			Profit:     -400,
			ProfitPct:  -5,
			DaysHeld:   2,
			ExitReason: backtest.ExitStopLoss,
		},
	}
}

// TestWriteTradesCSV_RoundTrip tests that a written trade log reads back
func TestWriteTradesCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trades.csv")
	trades := sampleTrades()

	require.NoError(t, NewDefaultCSVReporter().WriteTradesCSV(trades, path))

	rows, err := ReadTradesCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "AAPL", rows[0].Symbol)
	assert.Equal(t, "2023-03-06", rows[0].EntryDate)
	assert.Equal(t, 100, rows[0].Qty)
	assert.InDelta(t, 800.0, rows[0].Profit, 1e-9)
	assert.Equal(t, "stop_loss", rows[1].ExitReason)
}

// TestWriteReportJSON tests the JSON report document
func TestWriteReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	report := &backtest.Report{
		InitialBalance: 100000,
		FinalBalance:   100400,
		TotalProfit:    400,
		TotalReturnPct: 0.4,
		TotalTrades:    2,
		WinningTrades:  1,
		LosingTrades:   1,
		WinRatePct:     50,
		ProfitFactor:   2,
	}

	require.NoError(t, NewDefaultJSONFormatter().WriteReportJSON("AAPL", report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"symbol": "AAPL"`)
	assert.Contains(t, string(data), `"total_trades": 2`)
	assert.Contains(t, string(data), `"win_rate_pct": 50`)
}

// TestWriteWorkbook tests that the Excel artifact is produced
func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backtest.xlsx")
	entry := time.Date(2023, 3, 6, 0, 0, 0, 0, time.UTC)

	result := &backtest.Result{
		Symbol:         "AAPL",
		InitialBalance: 100000,
		FinalBalance:   100400,
		Trades:         sampleTrades(),
		EquityCurve: []backtest.EquityPoint{
			{Timestamp: entry, Balance: 100000},
			{Timestamp: entry.AddDate(0, 0, 4), Balance: 100800},
			{Timestamp: entry.AddDate(0, 0, 12), Balance: 100400},
		},
	}
	report, err := backtest.CalculateMetrics(result)
	require.NoError(t, err)

	require.NoError(t, NewDefaultExcelReporter().WriteWorkbook("AAPL", result, report, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// TestDefaultOutputDir tests the per-symbol directory convention
func TestDefaultOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("results", "AAPL"), DefaultOutputDir("results", "aapl"))
	assert.Equal(t, filepath.Join("out", "MSFT"), DefaultOutputDir("out", " msft "))
	assert.Equal(t, filepath.Join("results", "UNKNOWN"), DefaultOutputDir("", ""))
}

// TestReportingManager_SkipsFilesWithoutReport tests that a no-trade run
// produces no report artifacts
func TestReportingManager_SkipsFilesWithoutReport(t *testing.T) {
	dir := t.TempDir()
	m := NewReportingManager(ReportingConfig{
		OutputDir:    dir,
		CSVEnabled:   true,
		ExcelEnabled: true,
		JSONEnabled:  true,
	})

	result := &backtest.Result{Symbol: "AAPL", InitialBalance: 100000, FinalBalance: 100000}
	require.NoError(t, m.ReportSymbol("AAPL", result, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
