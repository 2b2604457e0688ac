package risk

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"
)

// Manager is the risk ledger. It owns the set of currently-open positions and
// the running aggregate risk exposure.
//
// A Manager instance belongs to exactly one simulation or trading context and
// is not safe for concurrent use. When several symbols share one Manager,
// mutations interleave strictly in call order, so the order of symbol
// processing shapes the balance trajectory; callers wanting independent
// per-symbol capital must construct one Manager per symbol.
type Manager struct {
	accountBalance    float64
	riskPerTrade      float64
	maxPositions      int
	openPositions     map[string]Position
	totalRiskExposure float64
}

var _ Ledger = (*Manager)(nil)

// NewManager creates a risk ledger for the given account balance, per-trade
// risk fraction and open-position cap.
func NewManager(accountBalance, riskPerTrade float64, maxPositions int) *Manager {
	return &Manager{
		accountBalance: accountBalance,
		riskPerTrade:   riskPerTrade,
		maxPositions:   maxPositions,
		openPositions:  make(map[string]Position),
	}
}

// CanOpenPosition reports whether a new position in symbol is allowed: the
// position cap must not be reached and the symbol must not already be open.
func (m *Manager) CanOpenPosition(symbol string) bool {
	if len(m.openPositions) >= m.maxPositions {
		log.Printf("⚠️ Max positions (%d) reached", m.maxPositions)
		return false
	}
	if _, exists := m.openPositions[symbol]; exists {
		log.Printf("⚠️ Position in %s already exists", symbol)
		return false
	}
	return true
}

// ValidateTrade gates a proposed trade, short-circuiting on the first failed
// check. Rejections are policy outcomes, not errors: the caller decides
// whether to retry with different parameters. ValidateTrade never mutates the
// ledger.
func (m *Manager) ValidateTrade(symbol string, qty int, entry, stop float64) (bool, string) {
	if !m.CanOpenPosition(symbol) {
		return false, fmt.Sprintf("cannot open position in %s", symbol)
	}

	riskAmount := float64(qty) * math.Abs(entry-stop)
	maxRisk := m.accountBalance * m.riskPerTrade
	if riskAmount > maxRisk {
		return false, fmt.Sprintf("risk ($%.2f) exceeds max ($%.2f)", riskAmount, maxRisk)
	}

	maxTotalRisk := m.accountBalance * m.riskPerTrade * float64(m.maxPositions)
	if m.totalRiskExposure+riskAmount > maxTotalRisk {
		return false, "total risk would exceed maximum"
	}

	return true, "trade validated"
}

// AddPosition inserts a new open position and increments the aggregate
// exposure by the position's max loss. The caller must have validated first.
func (m *Manager) AddPosition(symbol string, qty int, entry, stop, takeProfit float64, entryTime time.Time) {
	position := Position{
		Symbol:     symbol,
		Qty:        qty,
		EntryPrice: entry,
		StopLoss:   stop,
		TakeProfit: takeProfit,
		EntryTime:  entryTime,
		MaxLoss:    float64(qty) * (entry - stop),
	}

	m.openPositions[symbol] = position
	m.totalRiskExposure += position.MaxLoss

	log.Printf("Position added: %s, Qty: %d, Entry: $%.2f, SL: $%.2f, TP: $%.2f",
		symbol, qty, entry, stop, takeProfit)
}

// RemovePosition deletes a closed position and decrements the aggregate
// exposure by exactly the max loss recorded at entry. Removing a symbol with
// no open position is a logged no-op, never a failure.
func (m *Manager) RemovePosition(symbol string) {
	position, exists := m.openPositions[symbol]
	if !exists {
		log.Printf("⚠️ Position %s not found", symbol)
		return
	}

	m.totalRiskExposure -= position.MaxLoss
	delete(m.openPositions, symbol)
	log.Printf("Position removed: %s", symbol)
}

// CheckStopLoss reports whether symbol has an open position whose stop is hit
// at price. No open position means false, not an error.
func (m *Manager) CheckStopLoss(symbol string, price float64) bool {
	position, exists := m.openPositions[symbol]
	return exists && price <= position.StopLoss
}

// CheckTakeProfit reports whether symbol has an open position whose target is
// reached at price.
func (m *Manager) CheckTakeProfit(symbol string, price float64) bool {
	position, exists := m.openPositions[symbol]
	return exists && price >= position.TakeProfit
}

// RiskExposure returns the aggregate exposure derived from the current
// position set and balance.
func (m *Manager) RiskExposure() Exposure {
	riskPct := 0.0
	if m.accountBalance > 0 {
		riskPct = m.totalRiskExposure / m.accountBalance * 100
	}
	return Exposure{
		TotalRisk:      m.totalRiskExposure,
		RiskPercentage: riskPct,
		AccountBalance: m.accountBalance,
		MaxAllowedRisk: m.accountBalance * m.riskPerTrade * float64(m.maxPositions),
	}
}

// UpdateBalance replaces the account balance. Risk figures of positions
// already open keep the max loss recorded at entry.
func (m *Manager) UpdateBalance(balance float64) {
	m.accountBalance = balance
}

// Balance returns the current account balance.
func (m *Manager) Balance() float64 {
	return m.accountBalance
}

// Position returns the open position for symbol, if any.
func (m *Manager) Position(symbol string) (Position, bool) {
	position, exists := m.openPositions[symbol]
	return position, exists
}

// OpenPositionCount returns the number of currently-open positions.
func (m *Manager) OpenPositionCount() int {
	return len(m.openPositions)
}

// Positions returns copies of all open positions, ordered by symbol.
func (m *Manager) Positions() []Position {
	positions := make([]Position, 0, len(m.openPositions))
	for _, position := range m.openPositions {
		positions = append(positions, position)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})
	return positions
}
