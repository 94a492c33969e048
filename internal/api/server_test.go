package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/concord/internal/carbon"
	"github.com/MikeSquared-Agency/concord/internal/hermes"
	"github.com/MikeSquared-Agency/concord/internal/metrics"
	"github.com/MikeSquared-Agency/concord/internal/negotiation"
	"github.com/MikeSquared-Agency/concord/internal/openai"
	"github.com/MikeSquared-Agency/concord/internal/orchestrator"
	"github.com/MikeSquared-Agency/concord/internal/scoring"
	"github.com/MikeSquared-Agency/concord/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fallbackSimulator runs the real pipeline without credentials, so every
// generated text is canned.
func fallbackSimulator() Simulator {
	llm := openai.NewClient("", openai.WithLogger(testLogger()))
	return orchestrator.New(llm, scoring.NewEngine(scoring.NoJitter{}), orchestrator.Config{}, testLogger())
}

type fakeHistory struct {
	mu       sync.Mutex
	inserted []store.HistoryRecord
	entries  []carbon.HistoryEntry
	err      error
	limit    int
	ctxErrs  []error
}

func (f *fakeHistory) InsertHistory(ctx context.Context, rec store.HistoryRecord) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, rec)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	return uuid.New(), f.err
}

func (f *fakeHistory) ListHistory(_ context.Context, limit int) ([]carbon.HistoryEntry, error) {
	f.limit = limit
	return f.entries, f.err
}

type fakeEvents struct {
	events []hermes.SimulationCompleted
}

func (f *fakeEvents) PublishSimulation(ev hermes.SimulationCompleted) error {
	f.events = append(f.events, ev)
	return nil
}

type failingSimulator struct{ err error }

func (f failingSimulator) Simulate(context.Context, *negotiation.BasicRequest) (*negotiation.BasicResponse, orchestrator.Stats, error) {
	return nil, orchestrator.Stats{}, f.err
}

func (f failingSimulator) SimulateAdvanced(context.Context, *negotiation.AdvancedRequest) (*negotiation.AdvancedResponse, orchestrator.Stats, error) {
	return nil, orchestrator.Stats{}, f.err
}

func newTestServer(deps Deps) *Server {
	if deps.Simulator == nil {
		deps.Simulator = fallbackSimulator()
	}
	deps.Logger = testLogger()
	return NewServer(3001, deps)
}

func do(srv *Server, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

const basicBody = `{
	"partyA": {"name": "Acme", "goals": "Profit", "constraints": "Budget"},
	"partyB": {"name": "Town", "goals": "Jobs", "constraints": "Zoning"},
	"esg": {"environmental": 60, "social": 40, "governance": 80}
}`

const advancedBody = `{
	"parties": [
		{"name": "Acme", "goals": "Lower cost", "constraints": "Budget"},
		{"name": "Harbor Council", "goals": "Jobs", "constraints": "Zoning",
		 "empathyProfile": {"emotionalState": "defensive", "trustLevel": 40}},
		{"name": "Greenwatch", "goals": "Wetlands", "constraints": "None"}
	],
	"esg": {"environmental": 80, "social": 50, "governance": 40},
	"includeRiskAnalysis": true,
	"includeEmpathyMapping": true,
	"trackCarbon": true,
	"negotiationRound": 2,
	"previousRoundFeedback": "Too slow"
}`

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(Deps{})

	w := do(srv, "GET", "/health", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(Deps{History: &fakeHistory{}})

	w := do(srv, "GET", "/api/v1/concord/status", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["agent"] != "concord" {
		t.Errorf("expected agent concord, got %v", body["agent"])
	}
	if body["status"] != "fallback-only" {
		t.Errorf("expected status fallback-only, got %v", body["status"])
	}
	if body["history"] != true || body["events"] != false {
		t.Errorf("unexpected backend flags: %v", body)
	}
}

func TestNotFoundEndpoint(t *testing.T) {
	srv := newTestServer(Deps{})

	w := do(srv, "GET", "/nonexistent", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSimulateFallbackOnly(t *testing.T) {
	events := &fakeEvents{}
	srv := newTestServer(Deps{Events: events})

	w := do(srv, "POST", "/simulate", basicBody)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, err := uuid.Parse(w.Header().Get(HeaderSimulationID)); err != nil {
		t.Errorf("expected simulation id header, got %q", w.Header().Get(HeaderSimulationID))
	}

	var resp negotiation.BasicResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.EconomicCompromise == "" || resp.SocialCompromise == "" || resp.BalancedCompromise == "" {
		t.Errorf("expected all compromises filled, got %+v", resp)
	}
	want := scoring.Basic(negotiation.ESG{Environmental: 60, Social: 40, Governance: 80})
	if resp.Scores != want {
		t.Errorf("expected scores %+v, got %+v", want, resp.Scores)
	}

	if len(events.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.events))
	}
	ev := events.events[0]
	if ev.Mode != "basic" || ev.Fallbacks != 3 || ev.CO2Grams != nil {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.SimulationID != w.Header().Get(HeaderSimulationID) {
		t.Errorf("event id %s does not match header", ev.SimulationID)
	}
}

func TestSimulateValidation(t *testing.T) {
	srv := newTestServer(Deps{})

	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/simulate", `{"partyA":`},
		{"missing party name", "/simulate", `{"partyA":{"goals":"g","constraints":"c"},"partyB":{"name":"B","goals":"g","constraints":"c"},"esg":{}}`},
		{"esg out of range", "/simulate", strings.Replace(basicBody, `"governance": 80`, `"governance": 180`, 1)},
		{"one party", "/simulate/advanced", `{"parties":[{"name":"A","goals":"g","constraints":"c"}],"esg":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(srv, "POST", tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestSimulateInternalError(t *testing.T) {
	srv := newTestServer(Deps{Simulator: failingSimulator{err: errors.New("boom")}})

	w := do(srv, "POST", "/simulate", basicBody)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Error("internal error detail leaked to client")
	}
}

func TestSimulateAdvancedRecordsHistory(t *testing.T) {
	history := &fakeHistory{}
	m := metrics.New(nil)
	srv := newTestServer(Deps{History: history, Metrics: m})

	w := do(srv, "POST", "/simulate/advanced", advancedBody)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp negotiation.AdvancedResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RiskAssessment == nil {
		t.Error("expected risk assessment")
	}
	if len(resp.EmpathyInsights) != 3 {
		t.Errorf("expected 3 empathy insights, got %d", len(resp.EmpathyInsights))
	}
	if resp.SentimentAnalysis != nil || resp.PowerBalanceReport != nil {
		t.Error("expected unrequested analyses omitted")
	}
	if resp.NegotiationRoundNumber != 2 {
		t.Errorf("expected round 2, got %d", resp.NegotiationRoundNumber)
	}
	if resp.CarbonFootprint == nil {
		t.Fatal("expected carbon footprint")
	}
	if resp.CarbonFootprint.TokenCount != 0 {
		t.Errorf("expected no tokens without credentials, got %d", resp.CarbonFootprint.TokenCount)
	}

	if len(history.inserted) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history.inserted))
	}
	rec := history.inserted[0]
	if rec.SimulationID.String() != w.Header().Get(HeaderSimulationID) {
		t.Errorf("history simulation id mismatch")
	}
	if rec.PartyCount != 3 || rec.Entry.SimulationType != "advanced" {
		t.Errorf("unexpected history record %+v", rec)
	}

	mw := do(srv, "GET", "/metrics", "")
	if !strings.Contains(mw.Body.String(), `concord_simulations_total{mode="advanced"} 1`) {
		t.Errorf("expected advanced simulation counted, got:\n%s", mw.Body.String())
	}
}

func TestSimulateAdvancedRecordsHistoryAfterHangup(t *testing.T) {
	history := &fakeHistory{}
	srv := newTestServer(Deps{History: history})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest("POST", "/simulate/advanced", strings.NewReader(advancedBody)).WithContext(ctx)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(history.inserted) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history.inserted))
	}
	if history.ctxErrs[0] != nil {
		t.Errorf("expected live context for history write, got %v", history.ctxErrs[0])
	}
}

func TestSimulateAdvancedWithoutCarbonSkipsHistory(t *testing.T) {
	history := &fakeHistory{}
	srv := newTestServer(Deps{History: history})

	body := strings.Replace(advancedBody, `"trackCarbon": true`, `"trackCarbon": false`, 1)
	w := do(srv, "POST", "/simulate/advanced", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(history.inserted) != 0 {
		t.Errorf("expected no history, got %d", len(history.inserted))
	}
}

func TestBearerAuth(t *testing.T) {
	srv := newTestServer(Deps{APIToken: "secret"})

	if w := do(srv, "POST", "/simulate", basicBody); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := do(srv, "POST", "/simulate", basicBody, "Authorization", "Bearer wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong token, got %d", w.Code)
	}
	if w := do(srv, "POST", "/carbon/offsets", `{"co2Grams":10}`, "Authorization", "Bearer secret"); w.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", w.Code)
	}
	if w := do(srv, "GET", "/health", ""); w.Code != http.StatusOK {
		t.Errorf("expected health to stay public, got %d", w.Code)
	}
}

func TestCarbonEstimate(t *testing.T) {
	srv := newTestServer(Deps{})

	w := do(srv, "POST", "/carbon/estimate", `{"model":"gpt-4","tokenCount":1000,"executionTimeMs":2000,"participantCount":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got carbon.Metrics
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := carbon.Estimate("gpt-4", 1000, 2000, 2)
	if got.TotalCO2Grams != want.TotalCO2Grams || got.GreenScore != want.GreenScore {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	if w := do(srv, "POST", "/carbon/estimate", `{"tokenCount":-1,"participantCount":2}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative tokens, got %d", w.Code)
	}
	if w := do(srv, "POST", "/carbon/estimate", `{"tokenCount":10,"participantCount":-1}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative participants, got %d", w.Code)
	}
}

func TestCarbonEstimateDefaultsParticipants(t *testing.T) {
	srv := newTestServer(Deps{})

	w := do(srv, "POST", "/carbon/estimate", `{"tokenCount":10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got carbon.Metrics
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := carbon.Estimate("gpt-4o-mini", 10, 0, DefaultParticipants)
	if got.CarbonSavingsVsTraditional != want.CarbonSavingsVsTraditional {
		t.Errorf("expected savings for %d participants %v, got %v", DefaultParticipants, want.CarbonSavingsVsTraditional, got.CarbonSavingsVsTraditional)
	}
	if got.ModelUsed != "gpt-4o-mini" {
		t.Errorf("expected default model, got %q", got.ModelUsed)
	}
}

func TestCarbonRecommendationsAndOffsets(t *testing.T) {
	srv := newTestServer(Deps{})

	m, _ := json.Marshal(carbon.Estimate("gpt-4", 3000, 9000, 2))
	w := do(srv, "POST", "/carbon/recommendations", string(m))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var recs []carbon.Recommendation
	if err := json.NewDecoder(w.Body).Decode(&recs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(recs) == 0 {
		t.Error("expected recommendations for a heavy gpt-4 run")
	}

	w = do(srv, "POST", "/carbon/offsets", `{"co2Grams":40000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var offsets carbon.Offsets
	if err := json.NewDecoder(w.Body).Decode(&offsets); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if offsets != carbon.OffsetOptions(40000) {
		t.Errorf("expected %+v, got %+v", carbon.OffsetOptions(40000), offsets)
	}

	if w := do(srv, "POST", "/carbon/offsets", `{"co2Grams":-1}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative grams, got %d", w.Code)
	}
}

func TestCarbonAggregate(t *testing.T) {
	srv := newTestServer(Deps{})

	w := do(srv, "POST", "/carbon/aggregate", `{"history":[]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp AggregateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Footprint.TotalSimulations != 0 || resp.Footprint.Trend != carbon.TrendStable {
		t.Errorf("unexpected empty aggregate %+v", resp.Footprint)
	}
}

func TestCarbonHistory(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	history := &fakeHistory{entries: []carbon.HistoryEntry{
		{ID: "a", Timestamp: ts, CO2Grams: 2, EnergyKWh: 0.001, ModelUsed: "gpt-4o-mini", SimulationType: "advanced", GreenScore: 90},
		{ID: "b", Timestamp: ts.Add(time.Hour), CO2Grams: 1, EnergyKWh: 0.001, ModelUsed: "gpt-4o-mini", SimulationType: "advanced", GreenScore: 95},
	}}
	srv := newTestServer(Deps{History: history})

	w := do(srv, "GET", "/carbon/history?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if history.limit != 5 {
		t.Errorf("expected limit 5 passed through, got %d", history.limit)
	}
	var list HistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if list.Count != 2 || list.Entries[1].ID != "b" {
		t.Errorf("unexpected history %+v", list)
	}

	w = do(srv, "GET", "/carbon/history/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var summary AggregateResponse
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if summary.Footprint.TotalSimulations != 2 {
		t.Errorf("expected 2 simulations, got %d", summary.Footprint.TotalSimulations)
	}

	if w := do(srv, "GET", "/carbon/history?limit=zero", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", w.Code)
	}
}

func TestCarbonHistoryUnavailable(t *testing.T) {
	for name, deps := range map[string]Deps{
		"no store":       {},
		"not configured": {History: &fakeHistory{err: store.ErrNotConfigured}},
	} {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(deps)
			for _, path := range []string{"/carbon/history", "/carbon/history/summary"} {
				if w := do(srv, "GET", path, ""); w.Code != http.StatusServiceUnavailable {
					t.Errorf("%s: expected 503, got %d", path, w.Code)
				}
			}
		})
	}
}
