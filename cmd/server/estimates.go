package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradebid/tradebid/internal/rates"
	"github.com/tradebid/tradebid/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write json response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// customRatesFor loads the caller's saved rates; a load failure falls back
// to industry defaults so estimation is never blocked by the rates store.
func (s *server) customRatesFor(r *http.Request) rates.CustomRates {
	custom, err := s.store.GetCustomRates(sessionEmail(r))
	if err != nil {
		log.Printf("load custom rates: %v", err)
		return rates.CustomRates{}
	}
	return custom
}

type estimateRequest struct {
	Trade  string          `json:"trade"`
	Title  string          `json:"title"`
	Notes  string          `json:"notes"`
	Params json.RawMessage `json:"params"`
}

type estimateResponse struct {
	store.Estimate
	Params json.RawMessage `json:"params"`
	Totals json.RawMessage `json:"totals"`
}

func toResponse(e store.Estimate) estimateResponse {
	return estimateResponse{Estimate: e, Params: json.RawMessage(e.Params), Totals: json.RawMessage(e.Totals)}
}

func (s *server) handleListEstimates(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListEstimates(r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("list estimates: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list estimates")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *server) handleCreateEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := computeSnapshot(req.Trade, req.Params, s.customRatesFor(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.CreateEstimate(store.Estimate{
		Trade:     req.Trade,
		Title:     req.Title,
		Notes:     req.Notes,
		Params:    snap.Params,
		Totals:    snap.Totals,
		Total:     snap.Total,
		RangeLow:  snap.RangeLow,
		RangeHigh: snap.RangeHigh,
	})
	if err != nil {
		log.Printf("create estimate: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create estimate")
		return
	}

	created, err := s.store.GetEstimate(id)
	if err != nil {
		log.Printf("load created estimate: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load estimate")
		return
	}
	respondJSON(w, http.StatusCreated, toResponse(created))
}

func (s *server) handleGetEstimate(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.GetEstimate(chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "estimate not found")
		return
	}
	if err != nil {
		log.Printf("get estimate: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load estimate")
		return
	}
	respondJSON(w, http.StatusOK, toResponse(e))
}

func (s *server) handleUpdateEstimate(w http.ResponseWriter, r *http.Request) {
	existing, err := s.store.GetEstimate(chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "estimate not found")
		return
	}
	if err != nil {
		log.Printf("get estimate for update: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load estimate")
		return
	}

	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := existing.Params
	if len(req.Params) > 0 {
		params = req.Params
	}

	// The trade of an estimate is fixed at creation.
	snap, err := computeSnapshot(existing.Trade, params, s.customRatesFor(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing.Params = snap.Params
	existing.Totals = snap.Totals
	existing.Total = snap.Total
	existing.RangeLow = snap.RangeLow
	existing.RangeHigh = snap.RangeHigh
	if req.Title != "" {
		existing.Title = req.Title
	}
	if req.Notes != "" {
		existing.Notes = req.Notes
	}

	if err := s.store.UpdateEstimate(existing); err != nil {
		log.Printf("update estimate: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to update estimate")
		return
	}

	updated, err := s.store.GetEstimate(existing.ID)
	if err != nil {
		log.Printf("load updated estimate: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load estimate")
		return
	}
	respondJSON(w, http.StatusOK, toResponse(updated))
}

func (s *server) handleDeleteEstimate(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteEstimate(chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "estimate not found")
		return
	}
	if err != nil {
		log.Printf("delete estimate: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to delete estimate")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	custom, err := s.store.GetCustomRates(sessionEmail(r))
	if err != nil {
		log.Printf("get custom rates: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load rates")
		return
	}
	respondJSON(w, http.StatusOK, custom)
}

func (s *server) handleSaveRates(w http.ResponseWriter, r *http.Request) {
	var custom rates.CustomRates
	if err := json.NewDecoder(r.Body).Decode(&custom); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.store.SaveCustomRates(sessionEmail(r), custom); err != nil {
		log.Printf("save custom rates: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to save rates")
		return
	}
	respondJSON(w, http.StatusOK, custom)
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid, err := s.auth.validateCredentials(req.Email, req.Password)
	if err != nil {
		log.Printf("validate credentials: %v", err)
		respondError(w, http.StatusInternalServerError, "authentication error")
		return
	}
	if !valid {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.auth.setSessionCookie(w, req.Email)
	respondJSON(w, http.StatusOK, map[string]string{"email": req.Email})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
