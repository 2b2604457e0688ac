package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/quantfold/swingbot/internal/backtest"
)

// ExcelStyles holds the style IDs used across workbook sheets.
type ExcelStyles struct {
	HeaderStyle   int
	CurrencyStyle int
	PercentStyle  int
}

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteWorkbook writes a workbook with a trade sheet, a metrics sheet and
// the equity curve.
func (r *DefaultExcelReporter) WriteWorkbook(symbol string, result *backtest.Result, report *backtest.Report, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const tradesSheet = "Trades"
	const metricsSheet = "Metrics"
	const equitySheet = "Equity Curve"

	fx.SetSheetName(fx.GetSheetName(0), tradesSheet)
	fx.NewSheet(metricsSheet)
	fx.NewSheet(equitySheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeTradesSheet(fx, tradesSheet, result.Trades, styles); err != nil {
		return err
	}
	if err := r.writeMetricsSheet(fx, metricsSheet, symbol, report, styles); err != nil {
		return err
	}
	if err := r.writeEquitySheet(fx, equitySheet, result.EquityCurve, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 7,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 10,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	return styles, err
}

func (r *DefaultExcelReporter) writeTradesSheet(fx *excelize.File, sheet string, trades []backtest.Trade, styles ExcelStyles) error {
	headers := []string{"Symbol", "Entry Date", "Exit Date", "Days Held", "Qty", "Entry Price", "Exit Price", "Profit", "Profit %", "Exit Via"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	headerRange, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := fx.SetCellStyle(sheet, "A1", headerRange, styles.HeaderStyle); err != nil {
		return err
	}

	for i, t := range trades {
		row := i + 2
		values := []interface{}{
			t.Symbol,
			t.EntryDate.Format("2006-01-02"),
			t.ExitDate.Format("2006-01-02"),
			t.DaysHeld,
			t.Qty,
			t.EntryPrice,
			t.ExitPrice,
			t.Profit,
			t.ProfitPct / 100,
			t.ExitReason.String(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}

		profitCell, _ := excelize.CoordinatesToCellName(8, row)
		if err := fx.SetCellStyle(sheet, profitCell, profitCell, styles.CurrencyStyle); err != nil {
			return err
		}
		pctCell, _ := excelize.CoordinatesToCellName(9, row)
		if err := fx.SetCellStyle(sheet, pctCell, pctCell, styles.PercentStyle); err != nil {
			return err
		}
	}

	return fx.SetColWidth(sheet, "A", "J", 14)
}

func (r *DefaultExcelReporter) writeMetricsSheet(fx *excelize.File, sheet, symbol string, report *backtest.Report, styles ExcelStyles) error {
	rows := []struct {
		label string
		value interface{}
		style int
	}{
		{"Symbol", symbol, 0},
		{"Initial Balance", report.InitialBalance, styles.CurrencyStyle},
		{"Final Balance", report.FinalBalance, styles.CurrencyStyle},
		{"Total Profit", report.TotalProfit, styles.CurrencyStyle},
		{"Total Return %", report.TotalReturnPct / 100, styles.PercentStyle},
		{"Total Trades", report.TotalTrades, 0},
		{"Winning Trades", report.WinningTrades, 0},
		{"Losing Trades", report.LosingTrades, 0},
		{"Win Rate %", report.WinRatePct / 100, styles.PercentStyle},
		{"Avg Profit", report.AvgProfit, styles.CurrencyStyle},
		{"Max Profit", report.MaxProfit, styles.CurrencyStyle},
		{"Max Loss", report.MaxLoss, styles.CurrencyStyle},
		{"Profit Factor", report.ProfitFactor, 0},
		{"Avg Hold Days", report.AvgHoldDays, 0},
		{"Sharpe Ratio", report.SharpeRatio, 0},
		{"Max Drawdown %", report.MaxDrawdownPct / 100, styles.PercentStyle},
	}

	if err := fx.SetCellValue(sheet, "A1", "Metric"); err != nil {
		return err
	}
	if err := fx.SetCellValue(sheet, "B1", "Value"); err != nil {
		return err
	}
	if err := fx.SetCellStyle(sheet, "A1", "B1", styles.HeaderStyle); err != nil {
		return err
	}

	for i, row := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+2)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := fx.SetCellValue(sheet, labelCell, row.label); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, valueCell, row.value); err != nil {
			return err
		}
		if row.style != 0 {
			if err := fx.SetCellStyle(sheet, valueCell, valueCell, row.style); err != nil {
				return err
			}
		}
	}

	return fx.SetColWidth(sheet, "A", "B", 18)
}

func (r *DefaultExcelReporter) writeEquitySheet(fx *excelize.File, sheet string, curve []backtest.EquityPoint, styles ExcelStyles) error {
	if err := fx.SetCellValue(sheet, "A1", "Date"); err != nil {
		return err
	}
	if err := fx.SetCellValue(sheet, "B1", "Balance"); err != nil {
		return err
	}
	if err := fx.SetCellStyle(sheet, "A1", "B1", styles.HeaderStyle); err != nil {
		return err
	}

	for i, point := range curve {
		dateCell, _ := excelize.CoordinatesToCellName(1, i+2)
		balanceCell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := fx.SetCellValue(sheet, dateCell, point.Timestamp.Format("2006-01-02")); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, balanceCell, point.Balance); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, balanceCell, balanceCell, styles.CurrencyStyle); err != nil {
			return err
		}
	}

	return fx.SetColWidth(sheet, "A", "B", 14)
}
