package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aristath/valuator/internal/database/repositories"
	"github.com/aristath/valuator/internal/modules/companies"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "valuator",
	})
}

// runValuationRequest is the POST /api/valuation body
type runValuationRequest struct {
	Ticker string `json:"ticker"`
	Save   bool   `json:"save"`
}

// handleRunValuation runs a fresh valuation for one company
func (s *Server) handleRunValuation(w http.ResponseWriter, r *http.Request) {
	var req runValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Ticker) == "" {
		s.writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	facts, err := s.loader.Load(req.Ticker)
	if err != nil {
		if errors.Is(err, companies.ErrCompanyNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result := s.reports.Generate(facts)

	if req.Save {
		if err := s.valuations.Save(result); err != nil {
			s.log.Error().Err(err).Str("ticker", result.Ticker).Msg("Failed to persist valuation")
			s.writeError(w, http.StatusInternalServerError, "failed to persist valuation")
			return
		}
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleGetValuation returns the most recent stored valuation for a ticker
func (s *Server) handleGetValuation(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	result, err := s.valuations.Latest(ticker)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to load valuation")
		s.writeError(w, http.StatusInternalServerError, "failed to load valuation")
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleValuationHistory returns past valuation summaries for a ticker
func (s *Server) handleValuationHistory(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	history, err := s.valuations.History(ticker, limit)
	if err != nil {
		s.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to load history")
		s.writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":  ticker,
		"history": history,
	})
}

// handleListValuations returns the newest stored valuation per company
func (s *Server) handleListValuations(w http.ResponseWriter, r *http.Request) {
	valuations, err := s.valuations.LatestPerTicker()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list valuations")
		s.writeError(w, http.StatusInternalServerError, "failed to list valuations")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(valuations),
		"valuations": valuations,
	})
}

// handleListCompanies returns the tickers with available data files
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	tickers, err := s.loader.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list companies")
		s.writeError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(tickers),
		"companies": tickers,
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
