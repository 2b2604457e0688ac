package backtest

import (
	"log"
	"time"

	"github.com/quantfold/swingbot/internal/monitoring"
	"github.com/quantfold/swingbot/internal/risk"
	"github.com/quantfold/swingbot/internal/strategy"
	"github.com/quantfold/swingbot/pkg/types"
)

// Default simulation conventions: stops 5% below entry, targets 10% above,
// 2% of cash risked per trade, at most five open positions, 10% of cash held
// back as liquidity.
const (
	DefaultRiskPerTrade   = 0.02
	DefaultMaxPositions   = 5
	DefaultStopLossPct    = 0.05
	DefaultTakeProfitPct  = 0.10
	DefaultCashReservePct = 0.10
)

// Config holds the simulation parameters. All values are explicit; there is
// no global configuration state.
type Config struct {
	InitialBalance float64
	RiskPerTrade   float64
	MaxPositions   int
	StopLossPct    float64
	TakeProfitPct  float64
	CashReservePct float64
}

// DefaultConfig returns a Config carrying the default conventions for the
// given starting balance.
func DefaultConfig(initialBalance float64) Config {
	return Config{
		InitialBalance: initialBalance,
		RiskPerTrade:   DefaultRiskPerTrade,
		MaxPositions:   DefaultMaxPositions,
		StopLossPct:    DefaultStopLossPct,
		TakeProfitPct:  DefaultTakeProfitPct,
		CashReservePct: DefaultCashReservePct,
	}
}

// Engine replays a signal series against a historical price series for one
// symbol at a time, driving position transitions through its risk ledger.
//
// Each symbol is a two-state machine, flat or open, and every aligned step
// evaluates the three triggers in fixed order: signal processing, then the
// stop/target exit check (so a position opened this step can close this
// step), then the unconditional balance snapshot. The run is single-threaded
// and synchronous; identical inputs produce identical outputs.
//
// An Engine may be reused across symbols, in which case they share its ledger
// and cash pool sequentially: results then depend on the order of Run calls.
// Callers wanting independent per-symbol capital construct one Engine per
// symbol (see RunPortfolio).
type Engine struct {
	cfg    Config
	ledger *risk.Manager
}

// NewEngine creates a simulator with a fresh ledger for cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:    cfg,
		ledger: risk.NewManager(cfg.InitialBalance, cfg.RiskPerTrade, cfg.MaxPositions),
	}
}

// Ledger exposes the engine's risk ledger.
func (e *Engine) Ledger() *risk.Manager {
	return e.ledger
}

// Run replays the aligned (price, signal) series for symbol. Iteration is
// restricted to timestamps present in both series, in price-series order.
// A run with no buy signals is a valid outcome: it reports zero trades, and
// metrics calculation surfaces that explicitly.
func (e *Engine) Run(symbol string, prices []types.OHLCV, signals []strategy.SignalEvent) *Result {
	log.Printf("Starting backtest for %s (%d candles, %d signals)", symbol, len(prices), len(signals))

	signalAt := make(map[time.Time]strategy.Signal, len(signals))
	for _, ev := range signals {
		signalAt[ev.Timestamp] = ev.Signal
	}

	result := &Result{
		Symbol:         symbol,
		InitialBalance: e.ledger.Balance(),
	}

	for _, candle := range prices {
		signal, aligned := signalAt[candle.Timestamp]
		if !aligned {
			continue
		}

		price := candle.Close
		ts := candle.Timestamp

		if result.EquityCurve == nil {
			result.EquityCurve = append(result.EquityCurve, EquityPoint{Timestamp: ts, Balance: e.ledger.Balance()})
		}

		// Trigger 1: signal processing.
		_, open := e.ledger.Position(symbol)
		switch {
		case signal == strategy.SignalBuy && !open:
			e.executeBuy(symbol, ts, price)
		case signal == strategy.SignalSell && open:
			result.Trades = append(result.Trades, e.closePosition(symbol, ts, price, ExitSignal))
		}

		// Trigger 2: stop/target exits, same step. A position opened above
		// can already satisfy its threshold here.
		if e.ledger.CheckStopLoss(symbol, price) {
			log.Printf("%s: STOP LOSS %s @ $%.2f", ts.Format("2006-01-02"), symbol, price)
			result.Trades = append(result.Trades, e.closePosition(symbol, ts, price, ExitStopLoss))
		} else if e.ledger.CheckTakeProfit(symbol, price) {
			log.Printf("%s: TAKE PROFIT %s @ $%.2f", ts.Format("2006-01-02"), symbol, price)
			result.Trades = append(result.Trades, e.closePosition(symbol, ts, price, ExitTakeProfit))
		}

		// Trigger 3: balance snapshot, once per step, transition or not.
		result.EquityCurve = append(result.EquityCurve, EquityPoint{Timestamp: ts, Balance: e.ledger.Balance()})
	}

	result.FinalBalance = e.ledger.Balance()

	if len(result.Trades) == 0 {
		log.Printf("No trades executed in backtest for %s", symbol)
	}
	return result
}

// executeBuy sizes, caps, validates and opens a position at price. A zero
// size or a validation rejection leaves the machine flat.
func (e *Engine) executeBuy(symbol string, ts time.Time, price float64) {
	balance := e.ledger.Balance()
	stop := risk.StopLossPrice(price, e.cfg.StopLossPct)
	target := risk.TakeProfitPrice(price, e.cfg.TakeProfitPct)

	qty := risk.PositionSize(balance, e.cfg.RiskPerTrade, price, stop)
	if qty <= 0 {
		return
	}

	// Cap the cost so a liquidity reserve stays in cash.
	maxCost := balance * (1 - e.cfg.CashReservePct)
	if float64(qty)*price > maxCost {
		qty = int(maxCost / price)
	}
	if qty <= 0 {
		return
	}

	if ok, reason := e.ledger.ValidateTrade(symbol, qty, price, stop); !ok {
		monitoring.RecordValidation("rejected")
		log.Printf("%s: BUY %s rejected: %s", ts.Format("2006-01-02"), symbol, reason)
		return
	}
	monitoring.RecordValidation("accepted")

	e.ledger.AddPosition(symbol, qty, price, stop, target, ts)
	e.ledger.UpdateBalance(balance - float64(qty)*price)
	log.Printf("%s: BUY %s %d @ $%.2f", ts.Format("2006-01-02"), symbol, qty, price)
}

// closePosition books the Trade for symbol's open position at price, credits
// the proceeds and removes the position from the ledger.
func (e *Engine) closePosition(symbol string, ts time.Time, price float64, reason ExitReason) Trade {
	position, _ := e.ledger.Position(symbol)

	profit := float64(position.Qty) * (price - position.EntryPrice)
	trade := Trade{
		Symbol:     symbol,
		EntryDate:  position.EntryTime,
		EntryPrice: position.EntryPrice,
		ExitDate:   ts,
		ExitPrice:  price,
		Qty:        position.Qty,
		Profit:     profit,
		ProfitPct:  (price - position.EntryPrice) / position.EntryPrice * 100,
		DaysHeld:   int(ts.Sub(position.EntryTime).Hours() / 24),
		ExitReason: reason,
	}

	e.ledger.UpdateBalance(e.ledger.Balance() + float64(position.Qty)*price)
	e.ledger.RemovePosition(symbol)

	monitoring.RecordTrade(symbol, reason.String(), profit)
	exposure := e.ledger.RiskExposure()
	monitoring.UpdateExposure(exposure.TotalRisk, exposure.AccountBalance)

	log.Printf("%s: SELL %s %d @ $%.2f | Profit: $%.2f (%.2f%%)",
		ts.Format("2006-01-02"), symbol, trade.Qty, price, trade.Profit, trade.ProfitPct)
	return trade
}
