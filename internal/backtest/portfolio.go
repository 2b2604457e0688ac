package backtest

import (
	"runtime"
	"sync"

	"github.com/quantfold/swingbot/internal/strategy"
	"github.com/quantfold/swingbot/pkg/types"
)

// LedgerMode selects how capital is shared across symbols in a portfolio run.
// The source system reused one engine and balance sequentially across
// symbols; that behavior is kept available, but only as an explicit choice.
type LedgerMode int

const (
	// LedgerShared runs every symbol through one engine and one cash pool,
	// strictly in the order given. Symbols compete for capital and the
	// outcome depends on that order.
	LedgerShared LedgerMode = iota

	// LedgerIsolated gives each symbol its own engine and starting balance.
	// Runs share no mutable state and execute in parallel.
	LedgerIsolated
)

func (m LedgerMode) String() string {
	switch m {
	case LedgerShared:
		return "shared"
	case LedgerIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// SymbolSeries is one symbol's aligned price and signal input.
type SymbolSeries struct {
	Symbol  string
	Prices  []types.OHLCV
	Signals []strategy.SignalEvent
}

// RunPortfolio replays each symbol's series under the chosen ledger mode and
// returns per-symbol results keyed by symbol.
func RunPortfolio(cfg Config, series []SymbolSeries, mode LedgerMode) map[string]*Result {
	if mode == LedgerShared {
		return runShared(cfg, series)
	}
	return runIsolated(cfg, series)
}

func runShared(cfg Config, series []SymbolSeries) map[string]*Result {
	engine := NewEngine(cfg)
	results := make(map[string]*Result, len(series))
	for _, s := range series {
		results[s.Symbol] = engine.Run(s.Symbol, s.Prices, s.Signals)
	}
	return results
}

// runIsolated fans the symbols out over a bounded worker pool. Each worker
// builds a private engine per job, so nothing is shared beyond the immutable
// input series.
func runIsolated(cfg Config, series []SymbolSeries) map[string]*Result {
	workerCount := runtime.NumCPU()
	if workerCount > len(series) {
		workerCount = len(series)
	}

	jobs := make(chan SymbolSeries, len(series))
	out := make(chan *Result, len(series))

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				out <- NewEngine(cfg).Run(s.Symbol, s.Prices, s.Signals)
			}
		}()
	}

	for _, s := range series {
		jobs <- s
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make(map[string]*Result, len(series))
	for r := range out {
		results[r.Symbol] = r
	}
	return results
}
