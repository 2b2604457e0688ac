package strategy

import (
	"fmt"

	"github.com/quantfold/swingbot/internal/indicators"
	"github.com/quantfold/swingbot/pkg/types"
)

// RSIThreshold emits BUY while the RSI is below the oversold level and SELL
// while it is above the overbought level. Repeated instructions are fine: the
// simulator ignores BUY when a position is already open and SELL when flat.
type RSIThreshold struct {
	rsi        *indicators.RSI
	oversold   float64
	overbought float64
	name       string
}

// NewRSIThreshold creates an RSI threshold generator with the usual 30/70
// style levels.
func NewRSIThreshold(period int, oversold, overbought float64) *RSIThreshold {
	return &RSIThreshold{
		rsi:        indicators.NewRSI(period),
		oversold:   oversold,
		overbought: overbought,
		name:       fmt.Sprintf("RSI %d (%.0f/%.0f)", period, oversold, overbought),
	}
}

// GenerateSignals walks the series and marks threshold breaches.
func (r *RSIThreshold) GenerateSignals(data []types.OHLCV) []SignalEvent {
	signals := make([]SignalEvent, len(data))

	for i := range data {
		signals[i] = SignalEvent{Timestamp: data[i].Timestamp, Signal: SignalNone}

		value, err := r.rsi.At(data, i)
		if err != nil {
			continue
		}

		switch {
		case value < r.oversold:
			signals[i].Signal = SignalBuy
		case value > r.overbought:
			signals[i].Signal = SignalSell
		}
	}

	return signals
}

// GetName returns the generator name
func (r *RSIThreshold) GetName() string {
	return r.name
}
