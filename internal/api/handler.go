package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mtlprog/cryptofolio/internal/export"
	"github.com/mtlprog/cryptofolio/internal/market"
	"github.com/mtlprog/cryptofolio/internal/portfolio"
	"github.com/mtlprog/cryptofolio/internal/reqid"
)

// Handler provides the JSON API.
type Handler struct {
	svc    *portfolio.Service
	sheets *export.Service
}

// NewHandler creates a new API handler.
func NewHandler(svc *portfolio.Service, sheets *export.Service) *Handler {
	return &Handler{svc: svc, sheets: sheets}
}

// ListCurrencies handles GET /api/v1/currencies.
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.Listing(r.Context(), r.URL.Query().Get("rate"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// ListRates handles GET /api/v1/rates.
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.Rates(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

// GetPortfolio handles GET /api/v1/portfolio.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.View())
}

// AddPosition handles POST /api/v1/portfolio/{code}.
func (h *Handler) AddPosition(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Add(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SellPosition handles POST /api/v1/portfolio/{code}/sell.
func (h *Handler) SellPosition(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Sell(chi.URLParam(r, "code")))
}

// DeletePosition handles DELETE /api/v1/portfolio/{code}.
func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Delete(chi.URLParam(r, "code")))
}

// ExportXLSX handles GET /api/v1/portfolio/export.xlsx and GET /portfolio.xlsx.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := export.XLSX(r.Context(), h.svc.View())
	if err != nil {
		slog.Error("failed to generate workbook", "error", err, "rqID", reqid.FromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "failed to generate workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write workbook", "error", err)
	}
}

// ExportSheets handles POST /api/v1/portfolio/export/sheets.
func (h *Handler) ExportSheets(w http.ResponseWriter, r *http.Request) {
	if err := h.sheets.Export(r.Context()); err != nil {
		slog.Error("failed to export to Google Sheets", "error", err, "rqID", reqid.FromContext(r.Context()))
		writeError(w, http.StatusBadGateway, "failed to export portfolio")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "exported"})
}

// errorStatus maps service errors to an HTTP status and a public message.
func errorStatus(err error) (int, string) {
	var fetchErr *market.FetchError
	switch {
	case errors.Is(err, portfolio.ErrUnknownRate):
		return http.StatusBadRequest, "unknown exchange rate"
	case errors.Is(err, portfolio.ErrUnknownCurrency):
		return http.StatusNotFound, "unknown currency"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "market data unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "error", err, "rqID", reqid.FromContext(r.Context()))
	}
	writeError(w, status, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
