package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/cryptofolio/internal/domain"
	"github.com/mtlprog/cryptofolio/internal/portfolio"
)

func TestListing(t *testing.T) {
	l := portfolio.Listing{
		Rate:      domain.NewExchangeRate("CHF", decimal.RequireFromString("1.151")),
		RateCodes: []string{"CHF", "EUR"},
		Currencies: []portfolio.CurrencyRow{
			{Code: "BTC", Name: "Bitcoin", ValueEUR: decimal.RequireFromString("17724.08"), Converted: decimal.RequireFromString("20400.41608")},
		},
	}

	md := Listing(l)

	for _, want := range []string{
		"## Currencies in CHF (rate 1.151)",
		"| Code | Name | Value (EUR) | Value (CHF) |",
		"| BTC | Bitcoin | 17724.08 | 20400.41608 |",
		"Available rates: CHF, EUR",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestPortfolioEmpty(t *testing.T) {
	md := Portfolio(portfolio.View{Rate: domain.BaseRate()})
	if !strings.Contains(md, "_No positions._") {
		t.Errorf("markdown = %q, want empty marker", md)
	}
}

func TestPortfolio(t *testing.T) {
	v := portfolio.View{
		Rate: domain.NewExchangeRate("USD", decimal.RequireFromString("1.124")),
		Positions: []portfolio.PositionRow{
			{Code: "ETH", Name: "Ether|eum", Amount: 2, ValueEUR: decimal.RequireFromString("2401"), Converted: decimal.RequireFromString("2698.724")},
		},
		TotalEUR:       decimal.RequireFromString("2401"),
		TotalConverted: decimal.RequireFromString("2698.724"),
	}

	md := Portfolio(v)

	for _, want := range []string{
		"## Portfolio in USD",
		`| 2 | ETH | Ether\|eum | 2401 | 2698.724 |`,
		"$2,698.72",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nbody", 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output = %q, want title text", out)
	}
}
