package strategy

import (
	"fmt"

	"github.com/quantfold/swingbot/internal/indicators"
	"github.com/quantfold/swingbot/pkg/types"
)

// SMACross emits BUY when the fast moving average crosses above the slow one
// and SELL when it crosses back below. Steps without a crossing, and steps
// before both averages have enough history, emit NONE.
type SMACross struct {
	fast *indicators.SMA
	slow *indicators.SMA
	name string
}

// NewSMACross creates a moving-average crossover generator. fastPeriod must
// be shorter than slowPeriod.
func NewSMACross(fastPeriod, slowPeriod int) *SMACross {
	return &SMACross{
		fast: indicators.NewSMA(fastPeriod),
		slow: indicators.NewSMA(slowPeriod),
		name: fmt.Sprintf("SMA Cross (%d/%d)", fastPeriod, slowPeriod),
	}
}

// GenerateSignals walks the series and marks fast/slow crossings.
func (s *SMACross) GenerateSignals(data []types.OHLCV) []SignalEvent {
	signals := make([]SignalEvent, len(data))

	for i := range data {
		signals[i] = SignalEvent{Timestamp: data[i].Timestamp, Signal: SignalNone}

		fastPrev, err := s.fast.At(data, i-1)
		if err != nil {
			continue
		}
		slowPrev, err := s.slow.At(data, i-1)
		if err != nil {
			continue
		}
		fastCur, err := s.fast.At(data, i)
		if err != nil {
			continue
		}
		slowCur, err := s.slow.At(data, i)
		if err != nil {
			continue
		}

		switch {
		case fastPrev <= slowPrev && fastCur > slowCur:
			signals[i].Signal = SignalBuy
		case fastPrev >= slowPrev && fastCur < slowCur:
			signals[i].Signal = SignalSell
		}
	}

	return signals
}

// GetName returns the generator name
func (s *SMACross) GetName() string {
	return s.name
}
