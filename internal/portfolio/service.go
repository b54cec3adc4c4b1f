package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/cryptofolio/internal/domain"
	"github.com/mtlprog/cryptofolio/internal/market"
)

var (
	ErrUnknownRate     = errors.New("unknown exchange rate")
	ErrUnknownCurrency = errors.New("unknown currency")
)

// Loader defines the market data source used by Service.
type Loader interface {
	Load(ctx context.Context) (market.Data, error)
}

// CurrencyRow is one entry of the currency list with its converted value.
type CurrencyRow struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	ValueEUR  decimal.Decimal `json:"valueEUR"`
	Converted decimal.Decimal `json:"converted"`
	Label     string          `json:"label"`
}

// Listing is the currency list converted into the selected fiat.
type Listing struct {
	Rate       domain.ExchangeRate `json:"rate"`
	RateCodes  []string            `json:"rateCodes"`
	Currencies []CurrencyRow       `json:"currencies"`
}

// PositionRow is one held position with its EUR and converted valuation.
type PositionRow struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    int             `json:"amount"`
	ValueEUR  decimal.Decimal `json:"valueEUR"`
	Converted decimal.Decimal `json:"converted"`
}

// View is a read-only rendering of the portfolio.
type View struct {
	Rate           domain.ExchangeRate `json:"rate"`
	Positions      []PositionRow       `json:"positions"`
	TotalEUR       decimal.Decimal     `json:"totalEUR"`
	TotalConverted decimal.Decimal     `json:"totalConverted"`
}

// Service is the application state: one portfolio, the converter for the
// selected rate and the last loaded market data. All methods are safe for
// concurrent use; network calls are made outside the lock.
type Service struct {
	loader      Loader
	defaultRate string

	mu         sync.Mutex
	portfolio  *domain.Portfolio
	converter  *domain.Converter
	currencies map[string]*domain.Currency
	rates      map[string]domain.ExchangeRate
}

// NewService creates a Service with an empty portfolio converting to EUR.
func NewService(loader Loader, defaultRate string) *Service {
	if defaultRate == "" {
		defaultRate = domain.BaseCurrency
	}
	return &Service{
		loader:      loader,
		defaultRate: defaultRate,
		portfolio:   domain.NewPortfolio(),
		converter:   domain.NewConverter(domain.BaseRate()),
	}
}

// Listing reloads market data and converts every currency into rateCode.
// An empty rateCode selects the default rate.
func (s *Service) Listing(ctx context.Context, rateCode string) (Listing, error) {
	data, err := s.loader.Load(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("loading market data: %w", err)
	}

	code := strings.TrimSpace(rateCode)
	if code == "" {
		code = s.defaultRate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.currencies = data.Currencies
	s.rates = data.Rates

	rate, ok := s.rates[code]
	if !ok {
		return Listing{}, fmt.Errorf("%w: %s", ErrUnknownRate, code)
	}
	s.converter.SetExchangeRate(rate)

	codes := lo.Keys(s.currencies)
	sort.Strings(codes)
	rows := lo.Map(codes, func(c string, _ int) CurrencyRow {
		cur := s.currencies[c]
		converted := s.converter.Convert(*cur)
		return CurrencyRow{
			Code:      cur.Code,
			Name:      cur.Name,
			ValueEUR:  cur.ValueEUR,
			Converted: converted,
			Label:     fmt.Sprintf("%s - (%s)", cur.String(), converted.String()),
		}
	})

	return Listing{
		Rate:       rate,
		RateCodes:  s.rateCodesLocked(),
		Currencies: rows,
	}, nil
}

// Rates returns the exchange rates of the last load, loading once if needed.
func (s *Service) Rates(ctx context.Context) ([]domain.ExchangeRate, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Map(s.rateCodesLocked(), func(code string, _ int) domain.ExchangeRate {
		return s.rates[code]
	}), nil
}

// Add buys one unit of the currency with the given code.
func (s *Service) Add(ctx context.Context, code string) (View, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.currencies[code]
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	s.portfolio.AddPosition(cur)
	return s.viewLocked(), nil
}

// Sell sells one unit of code. Unknown codes are ignored.
func (s *Service) Sell(code string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolio.SellPosition(code)
	return s.viewLocked()
}

// Delete drops the whole position for code. Unknown codes are ignored.
func (s *Service) Delete(code string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolio.DeletePosition(code)
	return s.viewLocked()
}

// Reset empties the portfolio.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolio.Clear()
}

// View returns the current portfolio valued in the selected rate.
func (s *Service) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

// SelectedRate returns the rate the converter currently targets.
func (s *Service) SelectedRate() domain.ExchangeRate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.converter.ExchangeRate()
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.currencies != nil
	s.mu.Unlock()
	if loaded {
		return nil
	}

	data, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading market data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currencies == nil {
		s.currencies = data.Currencies
		s.rates = data.Rates
	}
	return nil
}

func (s *Service) rateCodesLocked() []string {
	codes := lo.Keys(s.rates)
	sort.Strings(codes)
	return codes
}

func (s *Service) viewLocked() View {
	rows := lo.Map(s.portfolio.Positions(), func(p domain.Position, _ int) PositionRow {
		return PositionRow{
			Code:      p.Code(),
			Name:      p.Currency.Name,
			Amount:    p.Amount,
			ValueEUR:  p.Value(),
			Converted: s.converter.ConvertPosition(p),
		}
	})

	totalConverted := lo.Reduce(rows, func(acc decimal.Decimal, r PositionRow, _ int) decimal.Decimal {
		return acc.Add(r.Converted)
	}, decimal.Zero)

	return View{
		Rate:           s.converter.ExchangeRate(),
		Positions:      rows,
		TotalEUR:       s.portfolio.TotalEUR(),
		TotalConverted: totalConverted,
	}
}
