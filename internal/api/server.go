package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mtlprog/cryptofolio/internal/export"
	"github.com/mtlprog/cryptofolio/internal/portfolio"
	"github.com/mtlprog/cryptofolio/internal/static"
)

// NewServer creates an HTTP server with all routes configured.
// sheets may be nil when Google Sheets export is not configured.
func NewServer(port string, svc *portfolio.Service, sheets *export.Service) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(svc, sheets),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewRouter wires the HTML pages and the JSON API.
func NewRouter(svc *portfolio.Service, sheets *export.Service) http.Handler {
	handler := NewHandler(svc, sheets)
	pages := NewPages(svc)

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", pages.Index)
	r.Post("/positions/{code}", pages.Add)
	r.Post("/positions/{code}/sell", pages.Sell)
	r.Post("/positions/{code}/delete", pages.Delete)
	r.Get("/portfolio.xlsx", handler.ExportXLSX)
	r.Get("/api.md", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write(static.APIDoc)
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/currencies", handler.ListCurrencies)
		api.Get("/rates", handler.ListRates)

		api.Route("/portfolio", func(p chi.Router) {
			p.Get("/", handler.GetPortfolio)
			p.Get("/export.xlsx", handler.ExportXLSX)
			if sheets != nil {
				p.Post("/export/sheets", handler.ExportSheets)
			}
			p.Post("/{code}", handler.AddPosition)
			p.Post("/{code}/sell", handler.SellPosition)
			p.Delete("/{code}", handler.DeletePosition)
		})
	})

	return r
}
