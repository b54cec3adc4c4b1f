package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/cryptofolio/internal/domain"
)

type mockFetcher struct {
	currencies    []byte
	rates         []byte
	currenciesErr error
	ratesErr      error
}

func (m *mockFetcher) FetchCurrencies(_ context.Context) ([]byte, error) {
	return m.currencies, m.currenciesErr
}

func (m *mockFetcher) FetchRates(_ context.Context) ([]byte, error) {
	return m.rates, m.ratesErr
}

const (
	btcList = `[{"code":"BTC","nom":"Bitcoin","valeurEUR":"17724.08"}]`
	chfRate = `{"CHF":"1.151"}`
)

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(&mockFetcher{currencies: []byte(btcList), rates: []byte(chfRate)})

	data, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Currencies) != 1 || data.Currencies["BTC"] == nil {
		t.Fatalf("currencies = %v, want BTC", data.Currencies)
	}
	if len(data.Rates) != 2 {
		t.Errorf("rates = %d, want 2 (CHF + EUR)", len(data.Rates))
	}

	conv := domain.NewConverter(data.Rates["CHF"])
	if got := conv.Convert(*data.Currencies["BTC"]); !got.Equal(decimal.RequireFromString("20400.41608")) {
		t.Errorf("BTC in CHF = %s, want 20400.41608", got)
	}
	conv.SetExchangeRate(data.Rates["EUR"])
	if got := conv.Convert(*data.Currencies["BTC"]); !got.Equal(decimal.RequireFromString("17724.08")) {
		t.Errorf("BTC in EUR = %s, want 17724.08", got)
	}
}

func TestLoaderFetchFailure(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name    string
		fetcher *mockFetcher
		source  string
	}{
		{"currencies fail", &mockFetcher{currenciesErr: cause, rates: []byte(chfRate)}, SourceCurrencies},
		{"rates fail", &mockFetcher{currencies: []byte(btcList), ratesErr: cause}, SourceRates},
		{"currencies malformed", &mockFetcher{currencies: []byte(`nope`), rates: []byte(chfRate)}, SourceCurrencies},
		{"rates malformed", &mockFetcher{currencies: []byte(btcList), rates: []byte(`[]`)}, SourceRates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := NewLoader(tt.fetcher).Load(context.Background())
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error = %T, want *FetchError", err)
			}
			if fetchErr.Source != tt.source {
				t.Errorf("Source = %q, want %q", fetchErr.Source, tt.source)
			}
			if data.Currencies != nil || data.Rates != nil {
				t.Error("failed load should return empty Data")
			}
		})
	}
}

func TestLoaderWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	_, err := NewLoader(&mockFetcher{currenciesErr: cause, rates: []byte(chfRate)}).Load(context.Background())
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false for %v", err)
	}
}

// barrierFetcher only answers once both requests are in flight.
type barrierFetcher struct {
	wg sync.WaitGroup
}

func (b *barrierFetcher) wait(ctx context.Context) error {
	b.wg.Done()
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *barrierFetcher) FetchCurrencies(ctx context.Context) ([]byte, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return []byte(btcList), nil
}

func (b *barrierFetcher) FetchRates(ctx context.Context) ([]byte, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return []byte(chfRate), nil
}

func TestLoaderFetchesConcurrently(t *testing.T) {
	f := &barrierFetcher{}
	f.wg.Add(2)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := NewLoader(f).Load(ctx); err != nil {
		t.Fatalf("fetches did not overlap: %v", err)
	}
}

func TestLoaderWithHTTPClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cryptos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(btcList))
	})
	mux.HandleFunc("/taux", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := NewLoader(newTestClient(server.URL)).Load(context.Background())

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Source != SourceRates {
		t.Errorf("error = %v, want rates FetchError", err)
	}
}
