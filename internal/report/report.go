// Package report renders listings and portfolios as markdown for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mtlprog/cryptofolio/internal/domain"
	"github.com/mtlprog/cryptofolio/internal/portfolio"
)

// Listing renders the converted currency list as a markdown table.
func Listing(l portfolio.Listing) string {
	code := l.Rate.CurrencyCode

	var b strings.Builder
	fmt.Fprintf(&b, "## Currencies in %s (rate %s)\n\n", code, l.Rate.Rate.String())
	fmt.Fprintf(&b, "| Code | Name | Value (EUR) | Value (%s) |\n", code)
	b.WriteString("|---|---|---:|---:|\n")
	for _, row := range l.Currencies {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", escape(row.Code), escape(row.Name), row.ValueEUR.String(), row.Converted.String())
	}
	fmt.Fprintf(&b, "\nAvailable rates: %s\n", strings.Join(l.RateCodes, ", "))
	return b.String()
}

// Portfolio renders the portfolio view as a markdown table with totals.
func Portfolio(v portfolio.View) string {
	code := v.Rate.CurrencyCode

	var b strings.Builder
	fmt.Fprintf(&b, "## Portfolio in %s\n\n", code)
	if len(v.Positions) == 0 {
		b.WriteString("_No positions._\n")
		return b.String()
	}

	fmt.Fprintf(&b, "| Amount | Code | Name | Value (EUR) | Value (%s) |\n", code)
	b.WriteString("|---:|---|---|---:|---:|\n")
	for _, row := range v.Positions {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", row.Amount, escape(row.Code), escape(row.Name), row.ValueEUR.String(), row.Converted.String())
	}
	fmt.Fprintf(&b, "\n**Total:** %s / %s\n",
		domain.FormatFiat(v.TotalEUR, domain.BaseCurrency),
		domain.FormatFiat(v.TotalConverted, code))
	return b.String()
}

// Render formats markdown for an ANSI terminal.
func Render(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
