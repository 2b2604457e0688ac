package reporting

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quantfold/swingbot/internal/backtest"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputResults prints one symbol's backtest results block
func (r *DefaultConsoleReporter) OutputResults(symbol string, result *backtest.Result, report *backtest.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("BACKTEST RESULTS: %s", symbol))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"💰 Initial Balance", fmt.Sprintf("$%.2f", report.InitialBalance)},
		{"💰 Final Balance", fmt.Sprintf("$%.2f", report.FinalBalance)},
		{"📈 Total Return", fmt.Sprintf("%.2f%%", report.TotalReturnPct)},
		{"📈 Total Profit", fmt.Sprintf("$%.2f", report.TotalProfit)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"🔄 Total Trades", fmt.Sprintf("%d", report.TotalTrades)},
		{"✅ Winning Trades", fmt.Sprintf("%d (%.1f%%)", report.WinningTrades, report.WinRatePct)},
		{"❌ Losing Trades", fmt.Sprintf("%d", report.LosingTrades)},
		{"💹 Profit Factor", fmt.Sprintf("%.2f", report.ProfitFactor)},
		{"⏱ Avg Hold", fmt.Sprintf("%.1f days", report.AvgHoldDays)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"📊 Sharpe Ratio", fmt.Sprintf("%.2f", report.SharpeRatio)},
		{"📉 Max Drawdown", fmt.Sprintf("%.2f%%", report.MaxDrawdownPct)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 20, Align: text.AlignLeft},
		{Number: 2, WidthMin: 18, Align: text.AlignRight},
	})

	t.Render()
	fmt.Println()
}

// OutputTrades prints the full trade log plus the top winners and losers
func (r *DefaultConsoleReporter) OutputTrades(symbol string, trades []backtest.Trade, topTrades int) {
	if len(trades) == 0 {
		fmt.Printf("No trades for %s\n", symbol)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("TRADES: %s", symbol))
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Entry", "Exit", "Days", "Qty", "Entry $", "Exit $", "P/L $", "P/L %", "Exit Via"})

	for i, tr := range trades {
		t.AppendRow(table.Row{
			i + 1,
			tr.EntryDate.Format("2006-01-02"),
			tr.ExitDate.Format("2006-01-02"),
			tr.DaysHeld,
			tr.Qty,
			fmt.Sprintf("%.2f", tr.EntryPrice),
			fmt.Sprintf("%.2f", tr.ExitPrice),
			fmt.Sprintf("%.2f", tr.Profit),
			fmt.Sprintf("%.2f", tr.ProfitPct),
			tr.ExitReason.String(),
		})
	}
	t.Render()

	if topTrades > 0 && len(trades) > 1 {
		r.outputRanked(symbol, trades, topTrades)
	}
	fmt.Println()
}

func (r *DefaultConsoleReporter) outputRanked(symbol string, trades []backtest.Trade, topTrades int) {
	ranked := make([]backtest.Trade, len(trades))
	copy(ranked, trades)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Profit > ranked[j].Profit
	})

	n := topTrades
	if n > len(ranked) {
		n = len(ranked)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("TOP %d WINNERS / LOSERS: %s", n, symbol))
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rank", "Winner P/L $", "Winner Exit", "Loser P/L $", "Loser Exit"})

	for i := 0; i < n; i++ {
		winner := ranked[i]
		loser := ranked[len(ranked)-1-i]
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.2f", winner.Profit),
			winner.ExitDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", loser.Profit),
			loser.ExitDate.Format("2006-01-02"),
		})
	}
	t.Render()
}

// OutputPortfolioSummary prints the per-symbol summary table for a
// multi-symbol run
func (r *DefaultConsoleReporter) OutputPortfolioSummary(rows []SummaryRow) {
	if len(rows) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("PORTFOLIO SUMMARY")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Symbol", "Trades", "Win %", "Return %", "Max DD %", "Sharpe", "Final $"})

	for _, row := range rows {
		if row.NoTrades {
			t.AppendRow(table.Row{row.Symbol, 0, "-", "-", "-", "-", fmt.Sprintf("%.2f", row.FinalBalance)})
			continue
		}
		t.AppendRow(table.Row{
			row.Symbol,
			row.TotalTrades,
			fmt.Sprintf("%.1f", row.WinRatePct),
			fmt.Sprintf("%.2f", row.TotalReturnPct),
			fmt.Sprintf("%.2f", row.MaxDrawdownPct),
			fmt.Sprintf("%.2f", row.SharpeRatio),
			fmt.Sprintf("%.2f", row.FinalBalance),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 7, Align: text.AlignRight},
	})

	t.Render()
	fmt.Println()
}
