package indicators

import (
	"errors"

	"github.com/quantfold/swingbot/pkg/types"
)

// SMA represents the Simple Moving Average technical indicator
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// At calculates the SMA of closing prices for the window ending at index i
func (s *SMA) At(data []types.OHLCV, i int) (float64, error) {
	if i+1 < s.period || i >= len(data) {
		return 0, errors.New("insufficient data for SMA calculation")
	}

	sum := 0.0
	for j := i - s.period + 1; j <= i; j++ {
		sum += data[j].Close
	}
	return sum / float64(s.period), nil
}

// Calculate calculates the SMA value at the end of the series
func (s *SMA) Calculate(data []types.OHLCV) (float64, error) {
	return s.At(data, len(data)-1)
}

// GetName returns the indicator name
func (s *SMA) GetName() string {
	return "SMA"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (s *SMA) GetRequiredPeriods() int {
	return s.period
}
