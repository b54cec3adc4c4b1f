package market

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mtlprog/cryptofolio/internal/reqid"
)

// Client fetches the raw currency list and exchange rates. It does not retry.
type Client struct {
	client         *resty.Client
	currenciesPath string
	ratesPath      string
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL        string
	CurrenciesPath string
	RatesPath      string
	Timeout        time.Duration
	Debug          bool
}

// NewClient creates a new market data client.
func NewClient(opts ClientOptions) *Client {
	client := resty.New().
		SetDebug(opts.Debug).
		SetTimeout(opts.Timeout).
		SetBaseURL(opts.BaseURL)
	return &Client{
		client:         client,
		currenciesPath: opts.CurrenciesPath,
		ratesPath:      opts.RatesPath,
	}
}

// FetchCurrencies returns the raw JSON body of the currency list endpoint.
func (c *Client) FetchCurrencies(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.currenciesPath)
}

// FetchRates returns the raw JSON body of the exchange-rate endpoint.
func (c *Client) FetchRates(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.ratesPath)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	rqID := reqid.FromContext(ctx)
	slog.Debug("market request", "path", path, "rqID", rqID)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("executing request to %s: %w", path, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode(), path, resp.String())
	}

	slog.Debug("market request complete", "path", path, "status", resp.StatusCode(), "duration", resp.Time(), "rqID", rqID)
	return resp.Body(), nil
}
