package hermes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/concord/internal/negotiation"
)

func TestSimulationCompletedParsing(t *testing.T) {
	raw := `{
		"simulation_id": "sim-001",
		"mode": "advanced",
		"model": "gpt-4",
		"parties": 3,
		"scores": {"economic": 61, "social": 70, "environmental": 82},
		"co2_grams": 1.25,
		"fallbacks": 2,
		"tokens": 1400,
		"duration_ms": 5300,
		"completed_at": "2026-03-01T12:00:00Z"
	}`

	var ev SimulationCompleted
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("failed to parse SimulationCompleted: %v", err)
	}

	if ev.SimulationID != "sim-001" {
		t.Errorf("expected simulation_id 'sim-001', got '%s'", ev.SimulationID)
	}
	if ev.Mode != "advanced" {
		t.Errorf("expected mode 'advanced', got '%s'", ev.Mode)
	}
	if ev.Parties != 3 {
		t.Errorf("expected 3 parties, got %d", ev.Parties)
	}
	if ev.Scores != (negotiation.Scores{Economic: 61, Social: 70, Environmental: 82}) {
		t.Errorf("unexpected scores %+v", ev.Scores)
	}
	if ev.CO2Grams == nil || *ev.CO2Grams != 1.25 {
		t.Errorf("expected co2_grams 1.25, got %v", ev.CO2Grams)
	}
	if ev.Fallbacks != 2 {
		t.Errorf("expected 2 fallbacks, got %d", ev.Fallbacks)
	}
	if !ev.CompletedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected completed_at %s", ev.CompletedAt)
	}
}

func TestSimulationCompletedOmitsUntrackedCarbon(t *testing.T) {
	data, err := json.Marshal(SimulationCompleted{SimulationID: "sim-002", Mode: "basic"})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := fields["co2_grams"]; ok {
		t.Errorf("expected co2_grams to be omitted, got %s", data)
	}
}

func TestSubjectSimulationCompletedConstant(t *testing.T) {
	if SubjectSimulationCompleted != "concord.simulation.completed" {
		t.Errorf("expected SubjectSimulationCompleted 'concord.simulation.completed', got '%s'", SubjectSimulationCompleted)
	}
}
