package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/castlemilk/taxdoc/internal/rules"
	"github.com/castlemilk/taxdoc/internal/store"
)

// Routes returns the HTTP API for the service.
func (s *TaxService) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/documents", func(r chi.Router) {
		r.Post("/", s.handleIngestDocument)
		r.Get("/", s.handleListDocuments)
		r.Get("/{id}", s.handleGetDocument)
		r.Delete("/{id}", s.handleDeleteDocument)
		r.Post("/{id}/reverify", s.handleReverifyDocument)
	})

	r.Route("/years/{year}", func(r chi.Router) {
		r.Get("/analysis", s.handleAnalyzeYear)
		r.Get("/washsales", s.handleWashSales)
		r.Get("/export", s.handleExport)
	})

	r.Get("/rules/{year}/contribution-limit", s.handleContributionLimit)

	return r
}

func (s *TaxService) handleIngestDocument(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	doc, err := s.IngestDocument(r.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateDocument) {
			s.writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, doc)
}

func (s *TaxService) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	taxYear := 0
	if y := r.URL.Query().Get("tax_year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid tax_year")
			return
		}
		taxYear = parsed
	}
	docs, err := s.ListDocuments(r.Context(), taxYear)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"documents": docs, "count": len(docs)})
}

func (s *TaxService) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *TaxService) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.DeleteDocument(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *TaxService) handleReverifyDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.ReverifyDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *TaxService) handleAnalyzeYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	status := rules.ParseFilingStatus(r.URL.Query().Get("filing_status"))
	analysis, err := s.AnalyzeYear(r.Context(), year, status)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

func (s *TaxService) handleWashSales(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	report, err := s.DetectWashSales(r.Context(), year)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *TaxService) handleExport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	status := rules.ParseFilingStatus(r.URL.Query().Get("filing_status"))
	format := ExportFormat(r.URL.Query().Get("format"))
	export, err := s.ExportReport(r.Context(), year, status, format)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}

func (s *TaxService) handleContributionLimit(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	account := r.URL.Query().Get("account")
	age := 30
	if a := r.URL.Query().Get("age"); a != "" {
		parsed, err := strconv.Atoi(a)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid age")
			return
		}
		age = parsed
	}
	catalog := s.rules.ForYear(year)
	limit, err := catalog.MaxContribution(account, age)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"account_type": account,
		"tax_year":     catalog.Year,
		"age":          age,
		"limit":        limit,
	})
}

func (s *TaxService) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *TaxService) writeError(w http.ResponseWriter, status int, message string) {
	if status >= 500 {
		s.logger.Error("request failed", "status", status, "error", message)
	} else {
		s.logger.Warn("request failed", "status", status, "error", message)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
