package types

import "time"

// OHLCV is one candle of already-fetched market data. The core never fetches
// prices itself; series arrive through a data provider and are assumed to be
// sorted by timestamp with no duplicates.
type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}
