package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/cryptofolio/internal/portfolio"
	"github.com/mtlprog/cryptofolio/internal/reqid"
)

// XLSX encodes the portfolio as an .xlsx workbook with a single sheet.
func XLSX(ctx context.Context, view portfolio.View) ([]byte, error) {
	rqID := reqid.FromContext(ctx)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("closing workbook", "error", err, "rqID", rqID)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	rows := Rows(view)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}
	totalRow := fmt.Sprint(len(rows))
	if err := f.SetCellStyle(SheetName, "A"+totalRow, lastCol+totalRow, bold); err != nil {
		return nil, fmt.Errorf("styling totals: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, 16); err != nil {
		return nil, fmt.Errorf("sizing columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}

	slog.Debug("portfolio workbook generated", "positions", len(view.Positions), "bytes", buf.Len(), "rqID", rqID)
	return buf.Bytes(), nil
}
