package risk

import (
	"log"
	"math"
)

// Position sizing helpers. These are pure functions: same inputs, same
// outputs, no ledger access.

// StopLossPrice returns the stop price pct below the entry price.
func StopLossPrice(entry, pct float64) float64 {
	return entry * (1 - pct)
}

// TakeProfitPrice returns the target price pct above the entry price.
func TakeProfitPrice(entry, pct float64) float64 {
	return entry * (1 + pct)
}

// PositionSize returns the share quantity whose worst-case loss at the stop
// equals the per-trade risk budget. The quantity is truncated down so the
// budget is never exceeded.
func PositionSize(balance, riskPerTrade, entry, stop float64) int {
	riskAmount := balance * riskPerTrade
	priceRisk := math.Abs(entry - stop)

	if priceRisk == 0 {
		log.Printf("⚠️ Price risk is zero (entry %.2f), returning 0 position size", entry)
		return 0
	}

	return int(math.Floor(riskAmount / priceRisk))
}
