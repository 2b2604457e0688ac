package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantfold/swingbot/pkg/types"
)

// FilterByPeriod trims data to the trailing period, measured back from the
// last candle. A non-positive period returns the data unchanged.
func FilterByPeriod(data []types.OHLCV, period time.Duration) []types.OHLCV {
	if period <= 0 || len(data) == 0 {
		return data
	}

	cutoff := data[len(data)-1].Timestamp.Add(-period)

	startIdx := 0
	for i, candle := range data {
		if !candle.Timestamp.Before(cutoff) {
			startIdx = i
			break
		}
	}

	return data[startIdx:]
}

// FilterByDateRange keeps candles with start <= timestamp <= end.
func FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV {
	var filtered []types.OHLCV
	for _, candle := range data {
		if !candle.Timestamp.Before(start) && !candle.Timestamp.After(end) {
			filtered = append(filtered, candle)
		}
	}
	return filtered
}

// ParseTrailingPeriod parses a human period like "90d", "6m" or "2y" into a
// duration. Months count as 30 days and years as 365.
func ParseTrailingPeriod(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid period %q: expected forms like 90d, 6m, 2y", s)
	}

	value, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid period %q: expected a positive count", s)
	}

	day := 24 * time.Hour
	switch s[len(s)-1] {
	case 'd':
		return time.Duration(value) * day, nil
	case 'w':
		return time.Duration(value) * 7 * day, nil
	case 'm':
		return time.Duration(value) * 30 * day, nil
	case 'y':
		return time.Duration(value) * 365 * day, nil
	default:
		return 0, fmt.Errorf("invalid period unit in %q: use d, w, m or y", s)
	}
}
