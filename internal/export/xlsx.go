package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finance/internal/core"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	ledgerSheet  = "Ledger"
	moneyFormat  = 2 // built-in "0.00"
)

// XLSXExporter writes each statement to <dir>/<period-slug>.xlsx, replacing
// an earlier export of the same period.
type XLSXExporter struct {
	dir string
}

func NewXLSXExporter(dir string) *XLSXExporter {
	return &XLSXExporter{dir: dir}
}

func (x *XLSXExporter) Name() string {
	return "xlsx"
}

// Path returns the file the statement is written to.
func (x *XLSXExporter) Path(st core.Statement) string {
	return filepath.Join(x.dir, st.Period.Slug()+".xlsx")
}

func (x *XLSXExporter) Export(ctx context.Context, st core.Statement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(x.dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	summaryIdx, err := f.NewSheet(summarySheet)
	if err != nil {
		return fmt.Errorf("create %s sheet: %w", summarySheet, err)
	}
	if _, err := f.NewSheet(ledgerSheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", ledgerSheet, err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(summaryIdx)

	if err := writeRows(f, summarySheet, summaryRows(st)); err != nil {
		return err
	}
	if err := writeRows(f, ledgerSheet, ledgerRows(st)); err != nil {
		return err
	}
	if err := x.style(f, len(st.Ledger)); err != nil {
		return err
	}

	path := x.Path(st)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	slog.InfoContext(ctx, "Statement exported", "destination", x.Name(), "path", path, "movements", len(st.Ledger))
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// style bolds the headers and applies a two-decimal format to amounts.
func (x *XLSXExporter) style(f *excelize.File, movements int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	if err := f.SetCellStyle(summarySheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "B4", "B6", money); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, "A1", "F1", bold); err != nil {
		return err
	}
	if movements > 0 {
		last := fmt.Sprintf("F%d", movements+1)
		if err := f.SetCellStyle(ledgerSheet, "E2", last, money); err != nil {
			return err
		}
	}
	return f.SetColWidth(ledgerSheet, "D", "D", 40)
}
