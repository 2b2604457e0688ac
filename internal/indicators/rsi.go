package indicators

import (
	"errors"
	"math"

	"github.com/quantfold/swingbot/pkg/types"
)

// RSI calculates the Relative Strength Index
type RSI struct {
	period int
}

// NewRSI creates a new RSI instance with the given period
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// At computes the RSI for the window ending at index i, averaging the last
// period gains and losses. An all-gain window returns 100.
func (r *RSI) At(data []types.OHLCV, i int) (float64, error) {
	if i < r.period || i >= len(data) {
		return 0, errors.New("insufficient data for RSI calculation")
	}

	avgGain := 0.0
	avgLoss := 0.0
	for j := i - r.period + 1; j <= i; j++ {
		change := data[j].Close - data[j-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += math.Abs(change)
		}
	}
	avgGain /= float64(r.period)
	avgLoss /= float64(r.period)

	if avgLoss == 0 {
		return 100, nil
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), nil
}

// Calculate computes the RSI value at the end of the series
func (r *RSI) Calculate(data []types.OHLCV) (float64, error) {
	return r.At(data, len(data)-1)
}

// GetName returns the indicator name
func (r *RSI) GetName() string {
	return "RSI"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (r *RSI) GetRequiredPeriods() int {
	return r.period + 1
}
