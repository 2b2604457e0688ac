package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantfold/swingbot/internal/backtest"
)

// SymbolConfig binds a symbol to the CSV file holding its candles.
type SymbolConfig struct {
	Symbol   string `json:"symbol"`
	DataFile string `json:"data_file"`
}

// RiskSection carries the ledger and sizing parameters.
type RiskSection struct {
	InitialBalance float64 `json:"initial_balance"`
	RiskPerTrade   float64 `json:"risk_per_trade"`
	MaxPositions   int     `json:"max_positions"`
	StopLossPct    float64 `json:"stop_loss_pct"`
	TakeProfitPct  float64 `json:"take_profit_pct"`
	CashReservePct float64 `json:"cash_reserve_pct"`
}

// StrategySection selects and parameterizes the signal generator.
type StrategySection struct {
	Name string `json:"name"` // "sma_cross" or "rsi_threshold"

	// sma_cross parameters
	FastPeriod int `json:"fast_period"`
	SlowPeriod int `json:"slow_period"`

	// rsi_threshold parameters
	RSIPeriod     int     `json:"rsi_period"`
	RSIOversold   float64 `json:"rsi_oversold"`
	RSIOverbought float64 `json:"rsi_overbought"`
}

// ReportingSection controls which output artifacts are written.
type ReportingSection struct {
	OutputDir   string `json:"output_dir"`
	WriteCSV    bool   `json:"write_csv"`
	WriteExcel  bool   `json:"write_excel"`
	WriteJSON   bool   `json:"write_json"`
	TopTrades   int    `json:"top_trades"`
	QuietTables bool   `json:"quiet_tables"`
}

// SimulationConfig is the top-level configuration for a backtest run.
type SimulationConfig struct {
	Symbols    []SymbolConfig   `json:"symbols"`
	LedgerMode string           `json:"ledger_mode"` // "shared" or "isolated"
	Period     string           `json:"period"`      // trailing window, e.g. "90d", "" for all
	Risk       RiskSection      `json:"risk"`
	Strategy   StrategySection  `json:"strategy"`
	Reporting  ReportingSection `json:"reporting"`
}

// Strategy names accepted by StrategySection.Name.
const (
	StrategySMACross     = "sma_cross"
	StrategyRSIThreshold = "rsi_threshold"
)

// NewDefaultConfig returns a configuration with the standard swing-trade
// parameters filled in. Symbols must still be supplied.
func NewDefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		LedgerMode: "shared",
		Risk: RiskSection{
			InitialBalance: 100000,
			RiskPerTrade:   backtest.DefaultRiskPerTrade,
			MaxPositions:   backtest.DefaultMaxPositions,
			StopLossPct:    backtest.DefaultStopLossPct,
			TakeProfitPct:  backtest.DefaultTakeProfitPct,
			CashReservePct: backtest.DefaultCashReservePct,
		},
		Strategy: StrategySection{
			Name:          StrategySMACross,
			FastPeriod:    10,
			SlowPeriod:    30,
			RSIPeriod:     14,
			RSIOversold:   30,
			RSIOverbought: 70,
		},
		Reporting: ReportingSection{
			OutputDir: "results",
			WriteCSV:  true,
			WriteJSON: true,
			TopTrades: 5,
		},
	}
}

// Load reads a JSON configuration file on top of the defaults and validates
// the result.
func Load(path string) (*SimulationConfig, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration as indented JSON, creating the target
// directory if needed.
func (c *SimulationConfig) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return os.WriteFile(path, data, 0644)
}

// LedgerModeValue maps the configured mode string onto a backtest.LedgerMode.
func (c *SimulationConfig) LedgerModeValue() (backtest.LedgerMode, error) {
	switch c.LedgerMode {
	case "", "shared":
		return backtest.LedgerShared, nil
	case "isolated":
		return backtest.LedgerIsolated, nil
	default:
		return 0, fmt.Errorf("unknown ledger mode %q: use shared or isolated", c.LedgerMode)
	}
}

// EngineConfig maps the risk section onto the simulator configuration.
func (c *SimulationConfig) EngineConfig() backtest.Config {
	return backtest.Config{
		InitialBalance: c.Risk.InitialBalance,
		RiskPerTrade:   c.Risk.RiskPerTrade,
		MaxPositions:   c.Risk.MaxPositions,
		StopLossPct:    c.Risk.StopLossPct,
		TakeProfitPct:  c.Risk.TakeProfitPct,
		CashReservePct: c.Risk.CashReservePct,
	}
}
