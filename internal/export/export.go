package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/cryptofolio/internal/portfolio"
)

// SheetName is the worksheet the portfolio is written to.
const SheetName = "Portfolio"

// ViewSource provides the portfolio to export.
type ViewSource interface {
	View() portfolio.View
}

// SheetWriter writes spreadsheet rows to a destination.
type SheetWriter interface {
	Write(ctx context.Context, rows [][]any) error
}

// Service exports the current portfolio through a SheetWriter.
type Service struct {
	source ViewSource
	writer SheetWriter
}

// NewService creates a new export Service.
func NewService(source ViewSource, writer SheetWriter) *Service {
	return &Service{source: source, writer: writer}
}

// Export writes the current portfolio.
func (s *Service) Export(ctx context.Context) error {
	view := s.source.View()
	if len(view.Positions) == 0 {
		slog.Warn("export: portfolio is empty, writing header only")
	}
	if err := s.writer.Write(ctx, Rows(view)); err != nil {
		return fmt.Errorf("exporting portfolio: %w", err)
	}
	return nil
}

// Rows builds the sheet: a header, one row per position and a totals row.
// Columns: Code | Name | Amount | Value (EUR) | Value (<rate>)
func Rows(view portfolio.View) [][]any {
	header := []any{"Code", "Name", "Amount", "Value (EUR)", fmt.Sprintf("Value (%s)", view.Rate.CurrencyCode)}

	body := lo.Map(view.Positions, func(p portfolio.PositionRow, _ int) []any {
		return []any{p.Code, p.Name, p.Amount, toFloat(p.ValueEUR), toFloat(p.Converted)}
	})

	total := []any{"Total", "", lo.SumBy(view.Positions, func(p portfolio.PositionRow) int { return p.Amount }),
		toFloat(view.TotalEUR), toFloat(view.TotalConverted)}

	rows := make([][]any, 0, len(body)+2)
	rows = append(rows, header)
	rows = append(rows, body...)
	rows = append(rows, total)
	return rows
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
