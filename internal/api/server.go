package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/concord/internal/carbon"
	"github.com/MikeSquared-Agency/concord/internal/hermes"
	"github.com/MikeSquared-Agency/concord/internal/metrics"
	"github.com/MikeSquared-Agency/concord/internal/negotiation"
	"github.com/MikeSquared-Agency/concord/internal/orchestrator"
	"github.com/MikeSquared-Agency/concord/internal/store"
)

// Simulator runs negotiation simulations.
type Simulator interface {
	Simulate(ctx context.Context, req *negotiation.BasicRequest) (*negotiation.BasicResponse, orchestrator.Stats, error)
	SimulateAdvanced(ctx context.Context, req *negotiation.AdvancedRequest) (*negotiation.AdvancedResponse, orchestrator.Stats, error)
}

// HistoryStore persists carbon footprints of tracked simulations.
type HistoryStore interface {
	InsertHistory(ctx context.Context, rec store.HistoryRecord) (uuid.UUID, error)
	ListHistory(ctx context.Context, limit int) ([]carbon.HistoryEntry, error)
}

// EventPublisher announces finished simulations.
type EventPublisher interface {
	PublishSimulation(ev hermes.SimulationCompleted) error
}

// Deps are the collaborators of a Server. Only Simulator is required.
type Deps struct {
	Simulator Simulator
	History   HistoryStore
	Events    EventPublisher
	Metrics   *metrics.Metrics
	APIToken  string
	// Live reports whether generation calls reach the provider; when false
	// every simulation is served from canned texts.
	Live   bool
	Logger *slog.Logger
}

type Server struct {
	router *chi.Mux
	port   int
	deps   Deps
	logger *slog.Logger
	srv    *http.Server
}

func NewServer(port int, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		deps:   deps,
		logger: deps.Logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/concord/status", s.status)
	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	router.Group(func(r chi.Router) {
		r.Use(BearerAuthMiddleware(deps.APIToken))

		r.Post("/simulate", s.simulate)
		r.Post("/simulate/advanced", s.simulateAdvanced)

		r.Route("/carbon", func(r chi.Router) {
			r.Post("/estimate", s.carbonEstimate)
			r.Post("/recommendations", s.carbonRecommendations)
			r.Post("/aggregate", s.carbonAggregate)
			r.Post("/offsets", s.carbonOffsets)
			r.Get("/history", s.carbonHistory)
			r.Get("/history/summary", s.carbonHistorySummary)
		})
	})

	return s
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("API server starting", "addr", addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	mode := "live"
	if !s.deps.Live {
		mode = "fallback-only"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":   "concord",
		"status":  mode,
		"history": s.deps.History != nil,
		"events":  s.deps.Events != nil,
		"metrics": s.deps.Metrics != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return false
	}
	return true
}
