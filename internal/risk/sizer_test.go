package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPositionSize tests the risk-budgeted share quantity calculation
func TestPositionSize(t *testing.T) {
	// balance=100000, risk=2% -> budget $2000; price risk 7.5 -> floor(266.67)
	size := PositionSize(100000, 0.02, 150, 142.5)
	assert.Equal(t, 266, size)
}

// TestPositionSize_TruncatesDown tests that sizing never exceeds the budget
func TestPositionSize_TruncatesDown(t *testing.T) {
	size := PositionSize(10000, 0.01, 100, 97)
	// budget $100, price risk 3 -> 33.33 shares, truncated to 33
	assert.Equal(t, 33, size)
	assert.LessOrEqual(t, float64(size)*3, 100.0)
}

// TestPositionSize_ZeroPriceRisk tests the division-by-zero guard
func TestPositionSize_ZeroPriceRisk(t *testing.T) {
	assert.Equal(t, 0, PositionSize(100000, 0.02, 150, 150))
	assert.Equal(t, 0, PositionSize(50000, 0.05, 1, 1))
}

// TestPositionSize_StopAboveEntry tests that sizing uses the absolute price risk
func TestPositionSize_StopAboveEntry(t *testing.T) {
	below := PositionSize(100000, 0.02, 150, 142.5)
	above := PositionSize(100000, 0.02, 142.5, 150)
	assert.Equal(t, below, above)
}

// TestStopLossPrice tests the stop-loss price derivation
func TestStopLossPrice(t *testing.T) {
	assert.InDelta(t, 142.5, StopLossPrice(150, 0.05), 1e-9)
	assert.InDelta(t, 95.0, StopLossPrice(100, 0.05), 1e-9)
}

// TestTakeProfitPrice tests the take-profit price derivation
func TestTakeProfitPrice(t *testing.T) {
	assert.InDelta(t, 165.0, TakeProfitPrice(150, 0.10), 1e-9)
	assert.InDelta(t, 110.0, TakeProfitPrice(100, 0.10), 1e-9)
}
