package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mtlprog/cryptofolio/internal/domain"
	"github.com/mtlprog/cryptofolio/internal/portfolio"
	"github.com/mtlprog/cryptofolio/internal/reqid"
	"github.com/mtlprog/cryptofolio/internal/static"
)

var indexTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"fiat": domain.FormatFiat}).
		ParseFS(static.Templates, "templates/index.html"),
)

type indexData struct {
	Rate      string
	RateCodes []string
	Listing   portfolio.Listing
	Portfolio portfolio.View
	Error     string
}

// Pages serves the server-rendered UI. Every action redirects back to the
// index, which reloads market data and re-renders both lists.
type Pages struct {
	svc *portfolio.Service
}

// NewPages creates the HTML handlers.
func NewPages(svc *portfolio.Service) *Pages {
	return &Pages{svc: svc}
}

// Index handles GET /.
func (p *Pages) Index(w http.ResponseWriter, r *http.Request) {
	data := indexData{}
	status := http.StatusOK

	listing, err := p.svc.Listing(r.Context(), r.URL.Query().Get("rate"))
	if err != nil {
		status, data.Error = errorStatus(err)
		slog.Error("failed to load currency list", "error", err, "rqID", reqid.FromContext(r.Context()))
	} else {
		data.Listing = listing
		data.RateCodes = listing.RateCodes
	}

	data.Portfolio = p.svc.View()
	data.Rate = data.Portfolio.Rate.CurrencyCode
	if len(data.RateCodes) == 0 {
		data.RateCodes = []string{data.Rate}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		slog.Error("failed to render index", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Add handles POST /positions/{code}.
func (p *Pages) Add(w http.ResponseWriter, r *http.Request) {
	if _, err := p.svc.Add(r.Context(), chi.URLParam(r, "code")); err != nil {
		status, msg := errorStatus(err)
		slog.Warn("failed to add position", "code", chi.URLParam(r, "code"), "error", err, "rqID", reqid.FromContext(r.Context()))
		http.Error(w, msg, status)
		return
	}
	p.redirect(w, r)
}

// Sell handles POST /positions/{code}/sell.
func (p *Pages) Sell(w http.ResponseWriter, r *http.Request) {
	p.svc.Sell(chi.URLParam(r, "code"))
	p.redirect(w, r)
}

// Delete handles POST /positions/{code}/delete.
func (p *Pages) Delete(w http.ResponseWriter, r *http.Request) {
	p.svc.Delete(chi.URLParam(r, "code"))
	p.redirect(w, r)
}

func (p *Pages) redirect(w http.ResponseWriter, r *http.Request) {
	rate := r.FormValue("rate")
	if rate == "" {
		rate = p.svc.SelectedRate().CurrencyCode
	}
	http.Redirect(w, r, "/?rate="+url.QueryEscape(rate), http.StatusSeeOther)
}
