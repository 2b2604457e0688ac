package risk

import "time"

// Position is one currently-open holding. Positions are owned exclusively by
// the Manager: created by AddPosition, destroyed by RemovePosition, at most
// one per symbol at any time.
type Position struct {
	Symbol     string
	Qty        int
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64
	EntryTime  time.Time

	// MaxLoss is Qty * (EntryPrice - StopLoss), fixed at entry. Exposure
	// accounting adds and subtracts this recorded figure, never a recomputed
	// one.
	MaxLoss float64
}

// Exposure is the ledger's aggregate risk picture, derived on request rather
// than stored.
type Exposure struct {
	TotalRisk      float64
	RiskPercentage float64
	AccountBalance float64
	MaxAllowedRisk float64
}
