package backtest

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrNoTrades reports a backtest that closed no trades. Callers use it to
// tell "no signal activity" apart from a zero-valued report.
var ErrNoTrades = errors.New("no trades executed in backtest")

const tradingDaysPerYear = 252

// Report is the aggregate performance of one backtest run. Every field is a
// deterministic function of the trades and equity curve it was derived from.
type Report struct {
	InitialBalance float64
	FinalBalance   float64
	TotalProfit    float64
	TotalReturnPct float64

	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRatePct    float64

	AvgProfit    float64
	MaxProfit    float64
	MaxLoss      float64
	ProfitFactor float64
	AvgHoldDays  float64

	SharpeRatio    float64
	MaxDrawdownPct float64
}

// CalculateMetrics reduces a result's trade list and equity curve to a
// Report. An empty trade list returns ErrNoTrades rather than a zero report.
func CalculateMetrics(result *Result) (*Report, error) {
	if len(result.Trades) == 0 {
		return nil, ErrNoTrades
	}

	report := &Report{
		InitialBalance: result.InitialBalance,
		FinalBalance:   result.FinalBalance,
		TotalTrades:    len(result.Trades),
		MaxProfit:      math.Inf(-1),
		MaxLoss:        math.Inf(1),
	}

	grossProfit := 0.0
	grossLoss := 0.0
	totalHoldDays := 0

	for _, trade := range result.Trades {
		report.TotalProfit += trade.Profit
		totalHoldDays += trade.DaysHeld

		switch {
		case trade.Profit > 0:
			report.WinningTrades++
			grossProfit += trade.Profit
		case trade.Profit < 0:
			report.LosingTrades++
			grossLoss += math.Abs(trade.Profit)
		}

		if trade.Profit > report.MaxProfit {
			report.MaxProfit = trade.Profit
		}
		if trade.Profit < report.MaxLoss {
			report.MaxLoss = trade.Profit
		}
	}

	report.WinRatePct = float64(report.WinningTrades) / float64(report.TotalTrades) * 100
	report.AvgProfit = report.TotalProfit / float64(report.TotalTrades)
	report.AvgHoldDays = float64(totalHoldDays) / float64(report.TotalTrades)

	// Profit factor is 0 with no losing trades: a division guard, not a
	// claim of infinite quality.
	if grossLoss > 0 {
		report.ProfitFactor = grossProfit / grossLoss
	}

	report.SharpeRatio = sharpeRatio(result.EquityCurve)
	report.MaxDrawdownPct = maxDrawdownPct(result.EquityCurve)

	if result.InitialBalance != 0 {
		report.TotalReturnPct = (result.FinalBalance - result.InitialBalance) / result.InitialBalance * 100
	}

	return report, nil
}

// sharpeRatio annualizes mean step return over its population standard
// deviation by √252 trading days. Zero volatility yields 0.
func sharpeRatio(curve []EquityPoint) float64 {
	if len(curve) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Balance
		if prev == 0 {
			return 0
		}
		returns = append(returns, (curve[i].Balance-prev)/prev)
	}

	mean := stat.Mean(returns, nil)
	std := math.Sqrt(stat.PopVariance(returns, nil))
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(tradingDaysPerYear)
}

// maxDrawdownPct is the deepest peak-to-trough decline of the curve as a
// (negative) percentage of the running maximum.
func maxDrawdownPct(curve []EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}

	runningMax := curve[0].Balance
	minDrawdown := 0.0
	for _, point := range curve {
		if point.Balance > runningMax {
			runningMax = point.Balance
		}
		if runningMax > 0 {
			drawdown := (point.Balance - runningMax) / runningMax
			if drawdown < minDrawdown {
				minDrawdown = drawdown
			}
		}
	}
	return minDrawdown * 100
}
