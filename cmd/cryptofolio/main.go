package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/cryptofolio/internal/api"
	"github.com/mtlprog/cryptofolio/internal/config"
	"github.com/mtlprog/cryptofolio/internal/export"
	"github.com/mtlprog/cryptofolio/internal/market"
	"github.com/mtlprog/cryptofolio/internal/portfolio"
	"github.com/mtlprog/cryptofolio/internal/report"
)

const terminalWidth = 100

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	rateFlag := &cli.StringFlag{
		Name:    "rate",
		Aliases: []string{"r"},
		Usage:   "fiat currency code to convert into",
		Value:   cfg.DefaultRate,
	}

	app := &cli.App{
		Name:  "cryptofolio",
		Usage: "track a portfolio of crypto currencies valued in fiat",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the web UI and JSON API",
				Action: func(c *cli.Context) error {
					return serve(c.Context, cfg)
				},
			},
			{
				Name:  "list",
				Usage: "print the currency list converted into --rate",
				Flags: []cli.Flag{rateFlag},
				Action: func(c *cli.Context) error {
					return list(c.Context, cfg, c.String("rate"))
				},
			},
			{
				Name:      "export",
				Usage:     "build a portfolio from currency codes and export it",
				ArgsUsage: "CODE...",
				Flags: []cli.Flag{
					rateFlag,
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the portfolio as an xlsx workbook"},
					&cli.BoolFlag{Name: "sheets", Usage: "write the portfolio to the configured Google Sheet"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return cli.Exit("at least one currency code is required", 2)
					}
					return exportPortfolio(c.Context, cfg, c.String("rate"), c.Args().Slice(), c.String("out"), c.Bool("sheets"))
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newService(cfg config.Config) *portfolio.Service {
	client := market.NewClient(market.ClientOptions{
		BaseURL:        cfg.Market.URL,
		CurrenciesPath: cfg.Market.CurrenciesPath,
		RatesPath:      cfg.Market.RatesPath,
		Timeout:        cfg.Market.Timeout,
		Debug:          cfg.Market.Debug,
	})
	return portfolio.NewService(market.NewLoader(client), cfg.DefaultRate)
}

func newSheetsExport(ctx context.Context, cfg config.Config, svc *portfolio.Service) (*export.Service, error) {
	if !cfg.Sheets.Enabled() {
		return nil, nil
	}
	writer, err := export.NewSheetsWriter(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsJSON)
	if err != nil {
		return nil, err
	}
	return export.NewService(svc, writer), nil
}

func serve(ctx context.Context, cfg config.Config) error {
	svc := newService(cfg)

	sheets, err := newSheetsExport(ctx, cfg, svc)
	if err != nil {
		return err
	}
	if sheets == nil {
		slog.Info("Google Sheets export disabled")
	}

	srv := api.NewServer(cfg.HTTPPort, svc, sheets)
	errCh := make(chan error, 1)

	go func() {
		slog.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func list(ctx context.Context, cfg config.Config, rate string) error {
	listing, err := newService(cfg).Listing(ctx, rate)
	if err != nil {
		return err
	}
	return printMarkdown(report.Listing(listing))
}

func exportPortfolio(ctx context.Context, cfg config.Config, rate string, codes []string, out string, toSheets bool) error {
	svc := newService(cfg)

	// selects the rate and loads market data once
	if _, err := svc.Listing(ctx, rate); err != nil {
		return err
	}
	for _, code := range codes {
		if _, err := svc.Add(ctx, code); err != nil {
			return err
		}
	}

	view := svc.View()
	if err := printMarkdown(report.Portfolio(view)); err != nil {
		return err
	}

	if out != "" {
		data, err := export.XLSX(ctx, view)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		slog.Info("workbook written", "path", out)
	}

	if toSheets {
		sheets, err := newSheetsExport(ctx, cfg, svc)
		if err != nil {
			return err
		}
		if sheets == nil {
			return errors.New("GOOGLE_SHEETS_ID and GOOGLE_CREDENTIALS_JSON must be set for --sheets")
		}
		if err := sheets.Export(ctx); err != nil {
			return err
		}
		slog.Info("portfolio exported to Google Sheets", "spreadsheet", cfg.Sheets.SpreadsheetID)
	}

	return nil
}

func printMarkdown(md string) error {
	out, err := report.Render(md, terminalWidth)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}
