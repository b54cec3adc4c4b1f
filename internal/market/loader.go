package market

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mtlprog/cryptofolio/internal/domain"
	"github.com/mtlprog/cryptofolio/internal/reqid"
)

// Source names used in FetchError.
const (
	SourceCurrencies = "currencies"
	SourceRates      = "exchange rates"
)

// Fetcher defines the raw endpoints the Loader reads.
type Fetcher interface {
	FetchCurrencies(ctx context.Context) ([]byte, error)
	FetchRates(ctx context.Context) ([]byte, error)
}

// Data is one consistent load of both datasets.
type Data struct {
	Currencies map[string]*domain.Currency
	Rates      map[string]domain.ExchangeRate
}

// FetchError reports which dataset could not be loaded.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Loader fetches and deserializes both datasets concurrently.
type Loader struct {
	fetcher Fetcher
}

// NewLoader creates a new Loader.
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load returns both datasets or, if either fetch fails, a *FetchError.
// The first failure cancels the other request.
func (l *Loader) Load(ctx context.Context) (Data, error) {
	var data Data

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := l.fetcher.FetchCurrencies(gctx)
		if err != nil {
			return &FetchError{Source: SourceCurrencies, Err: err}
		}
		currencies, err := DeserializeCurrencies(body)
		if err != nil {
			return &FetchError{Source: SourceCurrencies, Err: err}
		}
		data.Currencies = currencies
		return nil
	})
	g.Go(func() error {
		body, err := l.fetcher.FetchRates(gctx)
		if err != nil {
			return &FetchError{Source: SourceRates, Err: err}
		}
		rates, err := DeserializeExchangeRates(body)
		if err != nil {
			return &FetchError{Source: SourceRates, Err: err}
		}
		data.Rates = rates
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("market data load failed", "error", err, "rqID", reqid.FromContext(ctx))
		return Data{}, err
	}

	slog.Debug("market data loaded", "currencies", len(data.Currencies), "rates", len(data.Rates), "rqID", reqid.FromContext(ctx))
	return data, nil
}
