package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/concord/internal/negotiation"
)

// SubjectSimulationCompleted is the NATS subject for finished simulations.
const SubjectSimulationCompleted = "concord.simulation.completed"

// SimulationCompleted is emitted after every simulation so downstream
// dashboards can track volume, quality and footprint.
type SimulationCompleted struct {
	SimulationID string             `json:"simulation_id"`
	Mode         string             `json:"mode"`
	Model        string             `json:"model"`
	Parties      int                `json:"parties"`
	Scores       negotiation.Scores `json:"scores"`
	CO2Grams     *float64           `json:"co2_grams,omitempty"`
	Fallbacks    int                `json:"fallbacks"`
	Tokens       int                `json:"tokens"`
	DurationMs   int64              `json:"duration_ms"`
	CompletedAt  time.Time          `json:"completed_at"`
}
