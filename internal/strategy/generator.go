package strategy

import (
	"github.com/quantfold/swingbot/pkg/types"
)

// Generator produces a signal series from candle data. Implementations emit
// one SignalEvent per candle so the output stays time-aligned with the input;
// steps with nothing to say carry SignalNone.
type Generator interface {
	// GenerateSignals analyzes the full series and returns the aligned
	// signal series.
	GenerateSignals(data []types.OHLCV) []SignalEvent

	// GetName returns the name of the generator
	GetName() string
}
