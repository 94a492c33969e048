package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/concord/internal/carbon"
	"github.com/MikeSquared-Agency/concord/internal/negotiation"
	"github.com/MikeSquared-Agency/concord/internal/store"
)

// DefaultParticipants is assumed when an estimate omits participantCount.
const DefaultParticipants = 2

// EstimateRequest is the body of POST /carbon/estimate.
type EstimateRequest struct {
	Model            string `json:"model"`
	TokenCount       int    `json:"tokenCount"`
	ExecutionTimeMs  int64  `json:"executionTimeMs"`
	ParticipantCount int    `json:"participantCount"`
}

type AggregateRequest struct {
	History []carbon.HistoryEntry `json:"history"`
}

type AggregateResponse struct {
	Footprint carbon.CumulativeFootprint `json:"footprint"`
	Badges    []carbon.Badge             `json:"badges"`
}

type OffsetRequest struct {
	CO2Grams float64 `json:"co2Grams"`
}

type HistoryResponse struct {
	Entries []carbon.HistoryEntry `json:"entries"`
	Count   int                   `json:"count"`
}

func (s *Server) carbonEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	switch {
	case req.TokenCount < 0:
		writeError(w, http.StatusBadRequest, "tokenCount must be non-negative")
		return
	case req.ExecutionTimeMs < 0:
		writeError(w, http.StatusBadRequest, "executionTimeMs must be non-negative")
		return
	case req.ParticipantCount < 0:
		writeError(w, http.StatusBadRequest, "participantCount must be non-negative")
		return
	}
	if req.Model == "" {
		req.Model = string(negotiation.DefaultModel)
	}
	if req.ParticipantCount == 0 {
		req.ParticipantCount = DefaultParticipants
	}

	writeJSON(w, http.StatusOK, carbon.Estimate(req.Model, req.TokenCount, req.ExecutionTimeMs, req.ParticipantCount))
}

func (s *Server) carbonRecommendations(w http.ResponseWriter, r *http.Request) {
	var m carbon.Metrics
	if !decodeJSON(w, r, &m) {
		return
	}
	writeJSON(w, http.StatusOK, carbon.DetailedRecommendations(m))
}

func (s *Server) carbonAggregate(w http.ResponseWriter, r *http.Request) {
	var req AggregateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	footprint := carbon.Aggregate(req.History)
	writeJSON(w, http.StatusOK, AggregateResponse{Footprint: footprint, Badges: carbon.Badges(footprint)})
}

func (s *Server) carbonOffsets(w http.ResponseWriter, r *http.Request) {
	var req OffsetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CO2Grams < 0 {
		writeError(w, http.StatusBadRequest, "co2Grams must be non-negative")
		return
	}
	writeJSON(w, http.StatusOK, carbon.OffsetOptions(req.CO2Grams))
}

// carbonHistory handles GET /carbon/history?limit=N
func (s *Server) carbonHistory(w http.ResponseWriter, r *http.Request) {
	entries, ok := s.listHistory(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries, Count: len(entries)})
}

// carbonHistorySummary handles GET /carbon/history/summary?limit=N
func (s *Server) carbonHistorySummary(w http.ResponseWriter, r *http.Request) {
	entries, ok := s.listHistory(w, r)
	if !ok {
		return
	}
	footprint := carbon.Aggregate(entries)
	writeJSON(w, http.StatusOK, AggregateResponse{Footprint: footprint, Badges: carbon.Badges(footprint)})
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) ([]carbon.HistoryEntry, bool) {
	if s.deps.History == nil {
		writeError(w, http.StatusServiceUnavailable, "carbon history is not configured")
		return nil, false
	}

	var limit int
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return nil, false
		}
		limit = n
	}

	entries, err := s.deps.History.ListHistory(r.Context(), limit)
	if errors.Is(err, store.ErrNotConfigured) {
		writeError(w, http.StatusServiceUnavailable, "carbon history is not configured")
		return nil, false
	}
	if err != nil {
		s.logger.Error("failed to list carbon history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list carbon history")
		return nil, false
	}
	return entries, true
}
