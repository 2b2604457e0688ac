package backtest

import "time"

// ExitReason labels which of the three triggers closed a trade.
type ExitReason int

const (
	ExitSignal ExitReason = iota
	ExitStopLoss
	ExitTakeProfit
)

func (r ExitReason) String() string {
	switch r {
	case ExitSignal:
		return "signal"
	case ExitStopLoss:
		return "stop_loss"
	case ExitTakeProfit:
		return "take_profit"
	default:
		return "unknown"
	}
}

// Trade is the immutable record of a closed position. It is created exactly
// once, at the moment the position closes, and never mutated afterward.
type Trade struct {
	Symbol     string
	EntryDate  time.Time
	EntryPrice float64
	ExitDate   time.Time
	ExitPrice  float64
	Qty        int
	Profit     float64
	ProfitPct  float64
	DaysHeld   int
	ExitReason ExitReason
}

// EquityPoint is one cash-balance snapshot. One point is appended per
// simulated step; the curve is never truncated.
type EquityPoint struct {
	Timestamp time.Time
	Balance   float64
}

// Result is the output of replaying one symbol's signal series: the closed
// trades in order and the balance curve, with point zero being the balance
// at the start of the run.
type Result struct {
	Symbol         string
	InitialBalance float64
	FinalBalance   float64
	Trades         []Trade
	EquityCurve    []EquityPoint
}
