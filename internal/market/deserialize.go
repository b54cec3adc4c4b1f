package market

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/cryptofolio/internal/domain"
)

// rawCurrency is one record of the currency list endpoint, e.g.
// {"code":"BTC","nom":"Bitcoin","valeurEUR":"17724.080"}.
type rawCurrency struct {
	Code      string          `json:"code"`
	Nom       string          `json:"nom"`
	ValeurEUR decimal.Decimal `json:"valeurEUR"`
}

// DeserializeCurrencies builds a code -> Currency mapping from either a JSON
// array of records or a JSON object whose values are records. When two
// records share a code the later one wins.
func DeserializeCurrencies(data []byte) (map[string]*domain.Currency, error) {
	records, err := decodeCurrencyRecords(data)
	if err != nil {
		return nil, fmt.Errorf("parsing currency list: %w", err)
	}

	currencies := make(map[string]*domain.Currency, len(records))
	for _, r := range records {
		currencies[r.Code] = domain.NewCurrency(r.Code, r.Nom, r.ValeurEUR)
	}
	return currencies, nil
}

// DeserializeExchangeRates builds a code -> ExchangeRate mapping from
// {"CHF":"1.151","USD":"1.124",...}. EUR -> 1 is always present and replaces
// any EUR rate sent by the server.
func DeserializeExchangeRates(data []byte) (map[string]domain.ExchangeRate, error) {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing exchange rates: %w", err)
	}

	rates := make(map[string]domain.ExchangeRate, len(raw)+1)
	for code, rate := range raw {
		rates[code] = domain.NewExchangeRate(code, rate)
	}
	rates[domain.BaseCurrency] = domain.BaseRate()
	return rates, nil
}

// decodeCurrencyRecords keeps the document order for both arrays and objects,
// which is what makes "last wins" well defined.
func decodeCurrencyRecords(data []byte) ([]rawCurrency, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}

	switch trimmed[0] {
	case '[':
		var records []rawCurrency
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	case '{':
		return decodeObjectValues(trimmed)
	default:
		return nil, fmt.Errorf("unexpected JSON value starting with %q", trimmed[0])
	}
}

func decodeObjectValues(data []byte) ([]rawCurrency, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var records []rawCurrency
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var r rawCurrency
		if err := dec.Decode(&r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return records, nil
}
