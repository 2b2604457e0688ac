package main

import (
	"flag"
	"fmt"
)

// Flags holds all command line flags for the backtest command
type Flags struct {
	// Configuration
	ConfigFile *string
	Symbol     *string
	DataFile   *string

	// Account settings
	InitialBalance *float64
	RiskPerTrade   *float64
	MaxPositions   *int

	// Exit thresholds
	StopLossPct    *float64
	TakeProfitPct  *float64
	CashReservePct *float64

	// Strategy selection
	Strategy      *string
	FastPeriod    *int
	SlowPeriod    *int
	RSIPeriod     *int
	RSIOversold   *float64
	RSIOverbought *float64

	// Run options
	Period     *string
	LedgerMode *string

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	TopTrades   *int
	EnvFile     *string
	MetricsAddr *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewFlags creates and registers all command line flags
func NewFlags() *Flags {
	return &Flags{
		ConfigFile: flag.String("config", "", "Path to JSON configuration file"),
		Symbol:     flag.String("symbol", "", "Trading symbol (single-symbol mode)"),
		DataFile:   flag.String("data", "", "Path to historical CSV data file (single-symbol mode)"),

		InitialBalance: flag.Float64("balance", 100000, "Initial account balance"),
		RiskPerTrade:   flag.Float64("risk", 0.02, "Fraction of balance risked per trade (0.02 = 2%)"),
		MaxPositions:   flag.Int("max-positions", 5, "Maximum concurrent open positions"),

		StopLossPct:    flag.Float64("stop-loss", 0.05, "Stop loss distance below entry (0.05 = 5%)"),
		TakeProfitPct:  flag.Float64("take-profit", 0.10, "Take profit distance above entry (0.10 = 10%)"),
		CashReservePct: flag.Float64("cash-reserve", 0.10, "Fraction of cash never deployed (0.10 = 10%)"),

		Strategy:      flag.String("strategy", "sma_cross", "Signal strategy (sma_cross, rsi_threshold)"),
		FastPeriod:    flag.Int("fast", 10, "Fast SMA period"),
		SlowPeriod:    flag.Int("slow", 30, "Slow SMA period"),
		RSIPeriod:     flag.Int("rsi-period", 14, "RSI period"),
		RSIOversold:   flag.Float64("rsi-oversold", 30, "RSI oversold threshold"),
		RSIOverbought: flag.Float64("rsi-overbought", 70, "RSI overbought threshold"),

		Period:     flag.String("period", "", "Trailing data window (e.g. 90d, 6m, 2y; empty = all data)"),
		LedgerMode: flag.String("ledger", "shared", "Multi-symbol ledger mode (shared, isolated)"),

		OutputDir:   flag.String("output", "results", "Directory for result artifacts"),
		ConsoleOnly: flag.Bool("console-only", false, "Skip file outputs"),
		TopTrades:   flag.Int("top-trades", 5, "Number of top winners/losers to show"),
		EnvFile:     flag.String("env", ".env", "Environment file to load"),
		MetricsAddr: flag.String("metrics-addr", "", "Address to serve Prometheus metrics after the run (e.g. :9090)"),

		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}
}

// Validate checks flag combinations before the run starts.
func (f *Flags) Validate() error {
	if *f.ConfigFile == "" {
		if *f.Symbol == "" || *f.DataFile == "" {
			return fmt.Errorf("either -config or both -symbol and -data must be provided")
		}
	}
	return nil
}

// PrintUsageExamples prints common invocations for the help output.
func PrintUsageExamples() {
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Single symbol with SMA crossover signals")
	fmt.Println("  backtest -symbol AAPL -data data/AAPL.csv")
	fmt.Println()
	fmt.Println("  # RSI thresholds with a tighter stop")
	fmt.Println("  backtest -symbol AAPL -data data/AAPL.csv -strategy rsi_threshold -stop-loss 0.03")
	fmt.Println()
	fmt.Println("  # Multi-symbol portfolio from a config file, isolated capital")
	fmt.Println("  backtest -config configs/portfolio.json -ledger isolated")
	fmt.Println()
	fmt.Println("  # Last six months only")
	fmt.Println("  backtest -symbol MSFT -data data/MSFT.csv -period 6m")
	fmt.Println()
}
