package config

import (
	"fmt"
)

// Validation bounds for the risk and strategy sections.
const (
	MaxRiskPerTrade = 0.5
	MaxPct          = 1.0
	MinSMAPeriod    = 2
	MinRSIPeriod    = 2
	MaxRSIValue     = 100
)

// Validate performs comprehensive validation on the simulation configuration.
func (c *SimulationConfig) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("at least one symbol must be configured")
	}

	seen := make(map[string]bool, len(c.Symbols))
	for i, s := range c.Symbols {
		if s.Symbol == "" {
			return fmt.Errorf("symbol at index %d has an empty name", i)
		}
		if s.DataFile == "" {
			return fmt.Errorf("symbol %s has no data file", s.Symbol)
		}
		if seen[s.Symbol] {
			return fmt.Errorf("symbol %s is configured twice", s.Symbol)
		}
		seen[s.Symbol] = true
	}

	if _, err := c.LedgerModeValue(); err != nil {
		return err
	}

	if err := c.validateRisk(); err != nil {
		return err
	}

	return c.validateStrategy()
}

func (c *SimulationConfig) validateRisk() error {
	r := c.Risk

	if r.InitialBalance <= 0 {
		return fmt.Errorf("initial balance must be positive, got: %.2f", r.InitialBalance)
	}

	if r.RiskPerTrade <= 0 || r.RiskPerTrade > MaxRiskPerTrade {
		return fmt.Errorf("risk per trade must be within (0, %.2f], got: %.4f", MaxRiskPerTrade, r.RiskPerTrade)
	}

	if r.MaxPositions <= 0 {
		return fmt.Errorf("max positions must be positive, got: %d", r.MaxPositions)
	}

	if r.StopLossPct <= 0 || r.StopLossPct >= MaxPct {
		return fmt.Errorf("stop loss percent must be within (0, %.2f), got: %.4f", MaxPct, r.StopLossPct)
	}

	if r.TakeProfitPct < 0 || r.TakeProfitPct >= MaxPct {
		return fmt.Errorf("take profit percent must be within [0, %.2f), got: %.4f", MaxPct, r.TakeProfitPct)
	}

	if r.CashReservePct < 0 || r.CashReservePct >= MaxPct {
		return fmt.Errorf("cash reserve percent must be within [0, %.2f), got: %.4f", MaxPct, r.CashReservePct)
	}

	return nil
}

func (c *SimulationConfig) validateStrategy() error {
	s := c.Strategy

	switch s.Name {
	case StrategySMACross:
		if s.FastPeriod < MinSMAPeriod || s.SlowPeriod < MinSMAPeriod {
			return fmt.Errorf("SMA periods must be at least %d, got: fast=%d, slow=%d", MinSMAPeriod, s.FastPeriod, s.SlowPeriod)
		}
		if s.FastPeriod >= s.SlowPeriod {
			return fmt.Errorf("SMA fast period (%d) must be less than slow period (%d)", s.FastPeriod, s.SlowPeriod)
		}
	case StrategyRSIThreshold:
		if s.RSIPeriod < MinRSIPeriod {
			return fmt.Errorf("RSI period must be at least %d, got: %d", MinRSIPeriod, s.RSIPeriod)
		}
		if s.RSIOversold <= 0 || s.RSIOversold >= MaxRSIValue {
			return fmt.Errorf("RSI oversold must be between 0 and %d, got: %.1f", MaxRSIValue, s.RSIOversold)
		}
		if s.RSIOverbought <= 0 || s.RSIOverbought >= MaxRSIValue {
			return fmt.Errorf("RSI overbought must be between 0 and %d, got: %.1f", MaxRSIValue, s.RSIOverbought)
		}
		if s.RSIOversold >= s.RSIOverbought {
			return fmt.Errorf("RSI oversold (%.1f) must be less than overbought (%.1f)", s.RSIOversold, s.RSIOverbought)
		}
	default:
		return fmt.Errorf("unknown strategy %q: use %s or %s", s.Name, StrategySMACross, StrategyRSIThreshold)
	}

	return nil
}
