package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/concord/internal/carbon"
	"github.com/MikeSquared-Agency/concord/internal/hermes"
	"github.com/MikeSquared-Agency/concord/internal/metrics"
	"github.com/MikeSquared-Agency/concord/internal/negotiation"
	"github.com/MikeSquared-Agency/concord/internal/orchestrator"
	"github.com/MikeSquared-Agency/concord/internal/store"
)

// HeaderSimulationID carries the ID assigned to each simulation.
const HeaderSimulationID = "X-Simulation-ID"

// simulate handles POST /simulate
func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	var req negotiation.BasicRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.New()
	resp, stats, err := s.deps.Simulator.Simulate(r.Context(), &req)
	if err != nil {
		s.simulationFailed(w, id, err)
		return
	}

	s.completed(r.Context(), id, stats, resp.Scores, nil)

	w.Header().Set(HeaderSimulationID, id.String())
	writeJSON(w, http.StatusOK, resp)
}

// simulateAdvanced handles POST /simulate/advanced
func (s *Server) simulateAdvanced(w http.ResponseWriter, r *http.Request) {
	var req negotiation.AdvancedRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.New()
	resp, stats, err := s.deps.Simulator.SimulateAdvanced(r.Context(), &req)
	if err != nil {
		s.simulationFailed(w, id, err)
		return
	}

	s.completed(r.Context(), id, stats, resp.Scores, resp.CarbonFootprint)

	w.Header().Set(HeaderSimulationID, id.String())
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) simulationFailed(w http.ResponseWriter, id uuid.UUID, err error) {
	if errors.Is(err, negotiation.ErrInvalidRequest) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("simulation failed", "simulation_id", id, "error", err)
	writeError(w, http.StatusInternalServerError, "simulation failed")
}

// completed records metrics, history and the completion event. Failures
// here never fail the request, and the caller hanging up does not drop them.
func (s *Server) completed(ctx context.Context, id uuid.UUID, stats orchestrator.Stats, scores negotiation.Scores, footprint *carbon.Metrics) {
	ctx = context.WithoutCancel(ctx)
	var grams *float64
	if footprint != nil {
		g := footprint.TotalCO2Grams
		grams = &g
	}

	if s.deps.Metrics != nil {
		sim := metrics.Simulation{
			Mode:      string(stats.Mode),
			Model:     stats.Model,
			Fallbacks: stats.Fallbacks,
			Seconds:   stats.Duration.Seconds(),
		}
		if grams != nil {
			sim.CarbonGrams = *grams
			sim.Tracked = true
		}
		s.deps.Metrics.ObserveSimulation(sim)
	}

	if footprint != nil && s.deps.History != nil {
		rec := store.HistoryRecord{
			SimulationID: id,
			Entry:        carbon.EntryFromMetrics(*footprint, string(stats.Mode), time.Now().UTC()),
			TokenCount:   footprint.TokenCount,
			PartyCount:   stats.Parties,
		}
		if _, err := s.deps.History.InsertHistory(ctx, rec); err != nil && !errors.Is(err, store.ErrNotConfigured) {
			s.logger.Warn("failed to record carbon history", "simulation_id", id, "error", err)
		}
	}

	if s.deps.Events != nil {
		ev := hermes.SimulationCompleted{
			SimulationID: id.String(),
			Mode:         string(stats.Mode),
			Model:        stats.Model,
			Parties:      stats.Parties,
			Scores:       scores,
			CO2Grams:     grams,
			Fallbacks:    stats.Fallbacks,
			Tokens:       stats.Tokens,
			DurationMs:   stats.Duration.Milliseconds(),
			CompletedAt:  time.Now().UTC(),
		}
		if err := s.deps.Events.PublishSimulation(ev); err != nil {
			s.logger.Warn("failed to publish simulation event", "simulation_id", id, "error", err)
		}
	}

	s.logger.Info("simulation served",
		"simulation_id", id,
		"mode", stats.Mode,
		"fallbacks", stats.Fallbacks,
		"duration_ms", stats.Duration.Milliseconds(),
	)
}
