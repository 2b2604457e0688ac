package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantfold/swingbot/internal/backtest"
	"github.com/quantfold/swingbot/internal/monitoring"
	"github.com/quantfold/swingbot/internal/strategy"
	"github.com/quantfold/swingbot/pkg/config"
	datamanager "github.com/quantfold/swingbot/pkg/data"
	"github.com/quantfold/swingbot/pkg/reporting"
)

const (
	AppName    = "Swing Backtest"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	if err := flags.Validate(); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	printHeader()
	loadEnvironment(*flags.EnvFile)

	cfg, err := loadConfiguration(flags)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("❌ Backtest error: %v", err)
	}

	if *flags.MetricsAddr != "" {
		serveMetrics(*flags.MetricsAddr)
	}
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Risk-Bounded Swing Trade Simulator\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  backtest [OPTIONS]\n\n")
	PrintUsageExamples()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

// loadConfiguration builds the run configuration from the config file when
// one is given, otherwise from the command line flags.
func loadConfiguration(flags *Flags) (*config.SimulationConfig, error) {
	if *flags.ConfigFile != "" {
		return config.Load(*flags.ConfigFile)
	}

	cfg := config.NewDefaultConfig()
	cfg.Symbols = []config.SymbolConfig{{Symbol: *flags.Symbol, DataFile: *flags.DataFile}}
	cfg.LedgerMode = *flags.LedgerMode
	cfg.Period = *flags.Period
	cfg.Risk = config.RiskSection{
		InitialBalance: *flags.InitialBalance,
		RiskPerTrade:   *flags.RiskPerTrade,
		MaxPositions:   *flags.MaxPositions,
		StopLossPct:    *flags.StopLossPct,
		TakeProfitPct:  *flags.TakeProfitPct,
		CashReservePct: *flags.CashReservePct,
	}
	cfg.Strategy = config.StrategySection{
		Name:          *flags.Strategy,
		FastPeriod:    *flags.FastPeriod,
		SlowPeriod:    *flags.SlowPeriod,
		RSIPeriod:     *flags.RSIPeriod,
		RSIOversold:   *flags.RSIOversold,
		RSIOverbought: *flags.RSIOverbought,
	}
	cfg.Reporting.OutputDir = *flags.OutputDir
	cfg.Reporting.TopTrades = *flags.TopTrades
	if *flags.ConsoleOnly {
		cfg.Reporting.WriteCSV = false
		cfg.Reporting.WriteExcel = false
		cfg.Reporting.WriteJSON = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildStrategy constructs the configured signal generator.
func buildStrategy(cfg *config.SimulationConfig) (strategy.Generator, error) {
	switch cfg.Strategy.Name {
	case config.StrategySMACross:
		return strategy.NewSMACross(cfg.Strategy.FastPeriod, cfg.Strategy.SlowPeriod), nil
	case config.StrategyRSIThreshold:
		return strategy.NewRSIThreshold(cfg.Strategy.RSIPeriod, cfg.Strategy.RSIOversold, cfg.Strategy.RSIOverbought), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy.Name)
	}
}

func run(cfg *config.SimulationConfig) error {
	generator, err := buildStrategy(cfg)
	if err != nil {
		return err
	}
	log.Printf("Strategy: %s", generator.GetName())

	var window time.Duration
	if cfg.Period != "" {
		window, err = datamanager.ParseTrailingPeriod(cfg.Period)
		if err != nil {
			return err
		}
	}

	provider := datamanager.NewCSVProvider()
	series := make([]backtest.SymbolSeries, 0, len(cfg.Symbols))
	for _, sym := range cfg.Symbols {
		candles, err := provider.LoadData(sym.DataFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", sym.Symbol, err)
		}
		if err := provider.ValidateData(candles); err != nil {
			return fmt.Errorf("validating %s: %w", sym.Symbol, err)
		}
		candles = datamanager.FilterByPeriod(candles, window)
		log.Printf("%s: %d candles loaded from %s", sym.Symbol, len(candles), sym.DataFile)

		series = append(series, backtest.SymbolSeries{
			Symbol:  sym.Symbol,
			Prices:  candles,
			Signals: generator.GenerateSignals(candles),
		})
	}

	mode, err := cfg.LedgerModeValue()
	if err != nil {
		return err
	}
	log.Printf("Running %d symbol(s), %s ledger", len(series), mode)

	results := backtest.RunPortfolio(cfg.EngineConfig(), series, mode)

	manager := reporting.NewReportingManager(reporting.ReportingConfig{
		OutputDir:     cfg.Reporting.OutputDir,
		EnableConsole: !cfg.Reporting.QuietTables,
		CSVEnabled:    cfg.Reporting.WriteCSV,
		ExcelEnabled:  cfg.Reporting.WriteExcel,
		JSONEnabled:   cfg.Reporting.WriteJSON,
		TopTrades:     cfg.Reporting.TopTrades,
	})

	summary := make([]reporting.SummaryRow, 0, len(series))
	for _, s := range series {
		result := results[s.Symbol]

		report, err := backtest.CalculateMetrics(result)
		if errors.Is(err, backtest.ErrNoTrades) {
			log.Printf("⚠️  %s: no trades executed", s.Symbol)
			summary = append(summary, reporting.SummaryRow{
				Symbol:       s.Symbol,
				FinalBalance: result.FinalBalance,
				NoTrades:     true,
			})
			continue
		}
		if err != nil {
			return fmt.Errorf("metrics for %s: %w", s.Symbol, err)
		}

		if err := manager.ReportSymbol(s.Symbol, result, report); err != nil {
			return fmt.Errorf("reporting %s: %w", s.Symbol, err)
		}

		summary = append(summary, reporting.SummaryRow{
			Symbol:         s.Symbol,
			TotalTrades:    report.TotalTrades,
			WinRatePct:     report.WinRatePct,
			TotalReturnPct: report.TotalReturnPct,
			MaxDrawdownPct: report.MaxDrawdownPct,
			SharpeRatio:    report.SharpeRatio,
			FinalBalance:   report.FinalBalance,
		})
	}

	if len(series) > 1 {
		manager.ReportSummary(summary)
	}

	return nil
}

// serveMetrics keeps the process alive so collected run metrics can be
// scraped.
func serveMetrics(addr string) {
	log.Printf("Serving Prometheus metrics on %s/metrics (Ctrl+C to exit)", addr)
	http.Handle("/metrics", monitoring.NewMetricsHandler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("❌ Metrics server error: %v", err)
	}
}
