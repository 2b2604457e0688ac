package backtest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/swingbot/internal/strategy"
	"github.com/quantfold/swingbot/pkg/types"
)

var testStart = time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

func dailyCandles(closes ...float64) []types.OHLCV {
	data := make([]types.OHLCV, len(closes))
	for i, c := range closes {
		data[i] = types.OHLCV{
			Timestamp: testStart.AddDate(0, 0, i),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
		}
	}
	return data
}

// signalsFor builds a signal series aligned with data; steps absent from
// instructions carry SignalNone.
func signalsFor(data []types.OHLCV, instructions map[int]strategy.Signal) []strategy.SignalEvent {
	signals := make([]strategy.SignalEvent, len(data))
	for i := range data {
		signals[i] = strategy.SignalEvent{Timestamp: data[i].Timestamp, Signal: instructions[i]}
	}
	return signals
}

// TestEngine_Run_SignalRoundTrip tests a full buy-then-sell cycle
func TestEngine_Run_SignalRoundTrip(t *testing.T) {
	prices := dailyCandles(100, 102, 104)
	signals := signalsFor(prices, map[int]strategy.Signal{
		0: strategy.SignalBuy,
		2: strategy.SignalSell,
	})

	engine := NewEngine(DefaultConfig(100000))
	result := engine.Run("AAPL", prices, signals)

	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.Equal(t, "AAPL", trade.Symbol)
	// budget 2000, stop 95 -> price risk 5 -> 400 shares
	assert.Equal(t, 400, trade.Qty)
	assert.InDelta(t, 100.0, trade.EntryPrice, 1e-9)
	assert.InDelta(t, 104.0, trade.ExitPrice, 1e-9)
	assert.InDelta(t, 1600.0, trade.Profit, 1e-9)
	assert.InDelta(t, 4.0, trade.ProfitPct, 1e-9)
	assert.Equal(t, 2, trade.DaysHeld)
	assert.Equal(t, ExitSignal, trade.ExitReason)

	assert.InDelta(t, 101600.0, result.FinalBalance, 1e-9)
	assert.Equal(t, 0, engine.Ledger().OpenPositionCount())

	// Curve: starting balance, then one snapshot per step.
	require.Len(t, result.EquityCurve, 4)
	assert.InDelta(t, 100000.0, result.EquityCurve[0].Balance, 1e-9)
	assert.InDelta(t, 60000.0, result.EquityCurve[1].Balance, 1e-9) // 400 @ 100 deducted
	assert.InDelta(t, 60000.0, result.EquityCurve[2].Balance, 1e-9)
	assert.InDelta(t, 101600.0, result.EquityCurve[3].Balance, 1e-9)
}

// TestEngine_Run_TakeProfitExit tests the target trigger closing without a
// sell signal
func TestEngine_Run_TakeProfitExit(t *testing.T) {
	prices := dailyCandles(100, 105, 111)
	signals := signalsFor(prices, map[int]strategy.Signal{0: strategy.SignalBuy})

	result := NewEngine(DefaultConfig(100000)).Run("AAPL", prices, signals)

	require.Len(t, result.Trades, 1)
	assert.Equal(t, ExitTakeProfit, result.Trades[0].ExitReason)
	assert.InDelta(t, 111.0, result.Trades[0].ExitPrice, 1e-9)
	assert.InDelta(t, 4400.0, result.Trades[0].Profit, 1e-9) // 400 * 11
}

// TestEngine_Run_StopLossExit tests the stop trigger closing a losing position
func TestEngine_Run_StopLossExit(t *testing.T) {
	prices := dailyCandles(100, 98, 94)
	signals := signalsFor(prices, map[int]strategy.Signal{0: strategy.SignalBuy})

	result := NewEngine(DefaultConfig(100000)).Run("AAPL", prices, signals)

	require.Len(t, result.Trades, 1)
	assert.Equal(t, ExitStopLoss, result.Trades[0].ExitReason)
	assert.InDelta(t, 94.0, result.Trades[0].ExitPrice, 1e-9)
	assert.InDelta(t, -2400.0, result.Trades[0].Profit, 1e-9) // 400 * -6
	assert.InDelta(t, 97600.0, result.FinalBalance, 1e-9)
}

// TestEngine_Run_SameStepExit tests that the exit check runs after signal
// processing within the same step: a position whose threshold is already
// satisfied at its entry price closes immediately with zero days held
func TestEngine_Run_SameStepExit(t *testing.T) {
	cfg := DefaultConfig(100000)
	cfg.TakeProfitPct = 0 // target == entry, satisfied at the entry step

	prices := dailyCandles(100, 100)
	signals := signalsFor(prices, map[int]strategy.Signal{0: strategy.SignalBuy})

	engine := NewEngine(cfg)
	result := engine.Run("AAPL", prices, signals)

	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.Equal(t, ExitTakeProfit, trade.ExitReason)
	assert.Equal(t, 0, trade.DaysHeld)
	assert.Equal(t, trade.EntryDate, trade.ExitDate)
	assert.InDelta(t, 0.0, trade.Profit, 1e-9)
	assert.Equal(t, 0, engine.Ledger().OpenPositionCount())
	assert.InDelta(t, 100000.0, result.FinalBalance, 1e-9)
}

// TestEngine_Run_Determinism tests that identical inputs produce identical
// trade lists and equity curves
func TestEngine_Run_Determinism(t *testing.T) {
	prices := dailyCandles(100, 103, 99, 94, 101, 108, 112, 105, 99, 103)
	signals := signalsFor(prices, map[int]strategy.Signal{
		0: strategy.SignalBuy,
		4: strategy.SignalBuy,
		7: strategy.SignalSell,
		8: strategy.SignalBuy,
	})

	first := NewEngine(DefaultConfig(100000)).Run("AAPL", prices, signals)
	second := NewEngine(DefaultConfig(100000)).Run("AAPL", prices, signals)

	assert.Equal(t, first, second)
}

// TestEngine_Run_NoBuySignals tests the explicit no-trades outcome
func TestEngine_Run_NoBuySignals(t *testing.T) {
	prices := dailyCandles(100, 101, 102, 103)
	signals := signalsFor(prices, map[int]strategy.Signal{1: strategy.SignalSell})

	result := NewEngine(DefaultConfig(100000)).Run("AAPL", prices, signals)

	assert.Empty(t, result.Trades)
	assert.InDelta(t, 100000.0, result.FinalBalance, 1e-9)

	_, err := CalculateMetrics(result)
	assert.True(t, errors.Is(err, ErrNoTrades))
}

// TestEngine_Run_CashReserveCap tests that position cost is capped to keep
// the liquidity reserve in cash
func TestEngine_Run_CashReserveCap(t *testing.T) {
	cfg := Config{
		InitialBalance: 1000,
		RiskPerTrade:   0.5, // risk budget far larger than available cash
		MaxPositions:   5,
		StopLossPct:    0.05,
		TakeProfitPct:  0.10,
		CashReservePct: 0.10,
	}

	prices := dailyCandles(100, 100)
	signals := signalsFor(prices, map[int]strategy.Signal{
		0: strategy.SignalBuy,
		1: strategy.SignalSell,
	})

	result := NewEngine(cfg).Run("AAPL", prices, signals)

	require.Len(t, result.Trades, 1)
	// Unconstrained sizing gives 100 shares ($10000); the 90% cash cap
	// shrinks that to 9 shares.
	assert.Equal(t, 9, result.Trades[0].Qty)
	assert.InDelta(t, 100.0, result.EquityCurve[1].Balance, 1e-9)
}

// TestEngine_Run_AlignmentIntersection tests that iteration is restricted to
// timestamps present in both series
func TestEngine_Run_AlignmentIntersection(t *testing.T) {
	prices := dailyCandles(100, 101, 102, 103, 104)
	// Signals only exist for steps 0, 2 and 4.
	signals := []strategy.SignalEvent{
		{Timestamp: prices[0].Timestamp, Signal: strategy.SignalBuy},
		{Timestamp: prices[2].Timestamp, Signal: strategy.SignalNone},
		{Timestamp: prices[4].Timestamp, Signal: strategy.SignalSell},
	}

	result := NewEngine(DefaultConfig(100000)).Run("AAPL", prices, signals)

	// Three aligned steps plus the starting snapshot.
	assert.Len(t, result.EquityCurve, 4)
	require.Len(t, result.Trades, 1)
	assert.Equal(t, prices[4].Timestamp, result.Trades[0].ExitDate)
}

// TestEngine_Run_SellWhenFlat tests that a sell signal with no open position
// is ignored
func TestEngine_Run_SellWhenFlat(t *testing.T) {
	prices := dailyCandles(100, 101)
	signals := signalsFor(prices, map[int]strategy.Signal{0: strategy.SignalSell})

	result := NewEngine(DefaultConfig(100000)).Run("AAPL", prices, signals)

	assert.Empty(t, result.Trades)
	assert.InDelta(t, 100000.0, result.FinalBalance, 1e-9)
}

// TestEngine_Run_BuyWhileOpenIgnored tests that repeated buy signals do not
// pyramid into an existing position
func TestEngine_Run_BuyWhileOpenIgnored(t *testing.T) {
	prices := dailyCandles(100, 101, 102, 104)
	signals := signalsFor(prices, map[int]strategy.Signal{
		0: strategy.SignalBuy,
		1: strategy.SignalBuy,
		2: strategy.SignalBuy,
		3: strategy.SignalSell,
	})

	engine := NewEngine(DefaultConfig(100000))
	result := engine.Run("AAPL", prices, signals)

	require.Len(t, result.Trades, 1)
	assert.InDelta(t, 100.0, result.Trades[0].EntryPrice, 1e-9)
	assert.Equal(t, 400, result.Trades[0].Qty)
}
