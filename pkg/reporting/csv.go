package reporting

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/quantfold/swingbot/internal/backtest"
)

// TradeRow is the CSV projection of a closed trade.
type TradeRow struct {
	Symbol     string  `csv:"symbol"`
	EntryDate  string  `csv:"entry_date"`
	ExitDate   string  `csv:"exit_date"`
	DaysHeld   int     `csv:"days_held"`
	Qty        int     `csv:"qty"`
	EntryPrice float64 `csv:"entry_price"`
	ExitPrice  float64 `csv:"exit_price"`
	Profit     float64 `csv:"profit"`
	ProfitPct  float64 `csv:"profit_pct"`
	ExitReason string  `csv:"exit_reason"`
}

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteTradesCSV writes the trade log to a CSV file
func (r *DefaultCSVReporter) WriteTradesCSV(trades []backtest.Trade, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	rows := make([]*TradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, &TradeRow{
			Symbol:     t.Symbol,
			EntryDate:  t.EntryDate.Format("2006-01-02"),
			ExitDate:   t.ExitDate.Format("2006-01-02"),
			DaysHeld:   t.DaysHeld,
			Qty:        t.Qty,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			Profit:     t.Profit,
			ProfitPct:  t.ProfitPct,
			ExitReason: t.ExitReason.String(),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trades CSV: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed to write trades CSV: %w", err)
	}

	return nil
}

// ReadTradesCSV loads a previously written trade log, mainly for tooling
// that post-processes results.
func ReadTradesCSV(path string) ([]*TradeRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trades CSV: %w", err)
	}
	defer f.Close()

	var rows []*TradeRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse trades CSV: %w", err)
	}

	return rows, nil
}
