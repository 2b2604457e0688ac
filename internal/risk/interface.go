package risk

import "time"

// Ledger is the integration surface consumed by whatever drives trades: the
// backtest engine here, or an execution gateway calling in before and after
// submitting real orders. The ledger never initiates orders itself.
type Ledger interface {
	// CanOpenPosition reports whether a new position in symbol is allowed.
	CanOpenPosition(symbol string) bool

	// ValidateTrade gates a proposed trade against the ledger's limits.
	// It never mutates the ledger.
	ValidateTrade(symbol string, qty int, entry, stop float64) (bool, string)

	// AddPosition inserts a position. The caller must have validated first;
	// the ledger does not re-validate.
	AddPosition(symbol string, qty int, entry, stop, takeProfit float64, entryTime time.Time)

	// RemovePosition deletes a position; removing an unknown symbol is a
	// logged no-op.
	RemovePosition(symbol string)

	// CheckStopLoss reports whether an open position's stop is hit at price.
	CheckStopLoss(symbol string, price float64) bool

	// CheckTakeProfit reports whether an open position's target is reached.
	CheckTakeProfit(symbol string, price float64) bool

	// RiskExposure returns the current aggregate exposure.
	RiskExposure() Exposure

	// UpdateBalance replaces the account balance. Risk figures of positions
	// already open are not rescaled.
	UpdateBalance(balance float64)

	// Balance returns the current account balance.
	Balance() float64

	// Position returns the open position for symbol, if any.
	Position(symbol string) (Position, bool)

	// OpenPositionCount returns the number of open positions.
	OpenPositionCount() int
}
