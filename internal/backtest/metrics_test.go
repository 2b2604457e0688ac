package backtest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balanceCurve(balances ...float64) []EquityPoint {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	curve := make([]EquityPoint, len(balances))
	for i, b := range balances {
		curve[i] = EquityPoint{Timestamp: start.AddDate(0, 0, i), Balance: b}
	}
	return curve
}

// TestCalculateMetrics_NoTrades tests the explicit no-trades sentinel
func TestCalculateMetrics_NoTrades(t *testing.T) {
	result := &Result{
		Symbol:         "AAPL",
		InitialBalance: 100000,
		FinalBalance:   100000,
		EquityCurve:    balanceCurve(100000, 100000),
	}

	report, err := CalculateMetrics(result)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, ErrNoTrades))
}

// TestCalculateMetrics_TradeAggregates tests the trade-derived fields
func TestCalculateMetrics_TradeAggregates(t *testing.T) {
	result := &Result{
		InitialBalance: 100000,
		FinalBalance:   100600,
		Trades: []Trade{
			{Profit: 500, DaysHeld: 4},
			{Profit: -200, DaysHeld: 2},
			{Profit: 400, DaysHeld: 6},
			{Profit: -100, DaysHeld: 0},
		},
		EquityCurve: balanceCurve(100000, 100500, 100300, 100700, 100600),
	}

	report, err := CalculateMetrics(result)
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalTrades)
	assert.Equal(t, 2, report.WinningTrades)
	assert.Equal(t, 2, report.LosingTrades)
	assert.InDelta(t, 50.0, report.WinRatePct, 1e-9)
	assert.InDelta(t, 600.0, report.TotalProfit, 1e-9)
	assert.InDelta(t, 150.0, report.AvgProfit, 1e-9)
	assert.InDelta(t, 500.0, report.MaxProfit, 1e-9)
	assert.InDelta(t, -200.0, report.MaxLoss, 1e-9)
	assert.InDelta(t, 3.0, report.ProfitFactor, 1e-9) // 900 / 300
	assert.InDelta(t, 3.0, report.AvgHoldDays, 1e-9)
	assert.InDelta(t, 0.6, report.TotalReturnPct, 1e-9)
}

// TestCalculateMetrics_ProfitFactorNoLosses tests the division guard: no
// losing trades yields 0, not infinity
func TestCalculateMetrics_ProfitFactorNoLosses(t *testing.T) {
	result := &Result{
		InitialBalance: 100000,
		FinalBalance:   101000,
		Trades: []Trade{
			{Profit: 600, DaysHeld: 1},
			{Profit: 400, DaysHeld: 3},
		},
		EquityCurve: balanceCurve(100000, 100600, 101000),
	}

	report, err := CalculateMetrics(result)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, report.ProfitFactor, 1e-9)
	assert.InDelta(t, 100.0, report.WinRatePct, 1e-9)
}

// TestCalculateMetrics_HandComputedCurve tests drawdown and Sharpe against
// hand-computed values for a fixed five-point balance curve
func TestCalculateMetrics_HandComputedCurve(t *testing.T) {
	result := &Result{
		InitialBalance: 100000,
		FinalBalance:   103000,
		Trades:         []Trade{{Profit: 3000, DaysHeld: 4}},
		EquityCurve:    balanceCurve(100000, 102000, 101000, 99000, 103000),
	}

	report, err := CalculateMetrics(result)
	require.NoError(t, err)

	// Running max peaks at 102000; trough 99000 -> -3000/102000 = -2.9412%.
	assert.InDelta(t, -2.9412, report.MaxDrawdownPct, 1e-3)

	// Step returns: 0.02, -0.009804, -0.019802, 0.040404.
	// mean = 0.0076995, population std = 0.0238935,
	// Sharpe = mean/std * sqrt(252) = 5.116.
	assert.InDelta(t, 5.116, report.SharpeRatio, 1e-2)

	assert.InDelta(t, 3.0, report.TotalReturnPct, 1e-9)
}

// TestCalculateMetrics_ZeroVolatility tests the flat-returns Sharpe guard
func TestCalculateMetrics_ZeroVolatility(t *testing.T) {
	// Constant 10% step growth: identical returns, zero deviation.
	result := &Result{
		InitialBalance: 100000,
		FinalBalance:   121000,
		Trades:         []Trade{{Profit: 21000, DaysHeld: 2}},
		EquityCurve:    balanceCurve(100000, 110000, 121000),
	}

	report, err := CalculateMetrics(result)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, report.SharpeRatio, 1e-9)
	assert.InDelta(t, 0.0, report.MaxDrawdownPct, 1e-9) // never below the peak
}

// TestCalculateMetrics_SingleWinningTrade tests a minimal one-trade report
func TestCalculateMetrics_SingleWinningTrade(t *testing.T) {
	result := &Result{
		InitialBalance: 100000,
		FinalBalance:   101600,
		Trades: []Trade{
			{Symbol: "AAPL", Profit: 1600, ProfitPct: 4, DaysHeld: 2},
		},
		EquityCurve: balanceCurve(100000, 60000, 101600),
	}

	report, err := CalculateMetrics(result)
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalTrades)
	assert.Equal(t, 1, report.WinningTrades)
	assert.Equal(t, 0, report.LosingTrades)
	assert.InDelta(t, 1600.0, report.MaxProfit, 1e-9)
	assert.InDelta(t, 1600.0, report.MaxLoss, 1e-9) // max and min coincide
	assert.InDelta(t, 1.6, report.TotalReturnPct, 1e-9)
}
