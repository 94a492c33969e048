package scoring

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/concord/internal/negotiation"
)

const (
	maxPhases       = 5
	maxAlternatives = 3
)

// ImplementationPhases lays out a rollout plan. Phase numbers and timing
// follow the running phase count.
func ImplementationPhases(esg negotiation.ESG) []string {
	phases := []string{
		"Phase 1: Stakeholder alignment and agreement finalization (Weeks 1-2)",
		"Phase 2: Resource allocation and infrastructure setup (Weeks 3-6)",
	}

	if esg.Environmental > 60 {
		phases = append(phases, "Phase 3: Environmental impact assessment and sustainability measures (Weeks 7-10)")
	}
	if esg.Social > 60 {
		n := len(phases)
		phases = append(phases, fmt.Sprintf("Phase %d: Social programs and community engagement initiatives (Weeks %d-%d)",
			n+1, n*4+3, n*4+6))
	}

	n := len(phases)
	month := int(math.Ceil(float64(n) * 1.5))
	phases = append(phases, fmt.Sprintf("Phase %d: Pilot program launch and initial monitoring (Month %d)", n+1, month))

	n = len(phases)
	month = int(math.Ceil(float64(n) * 1.5))
	phases = append(phases, fmt.Sprintf("Phase %d: Full-scale implementation and ongoing evaluation (Month %d onwards)", n+1, month+2))

	if len(phases) > maxPhases {
		phases = phases[:maxPhases]
	}
	return phases
}

// AlternativeOptions suggests other paths to agreement. risk may be nil.
func AlternativeOptions(req *negotiation.AdvancedRequest, risk *negotiation.RiskAssessment) []string {
	var alts []string

	if len(req.Parties) > 2 {
		alts = append(alts, "Consider bilateral sub-agreements between specific parties before full multi-party agreement")
	}
	if len(req.CustomMetrics) > 0 {
		alts = append(alts, "Adjust custom metric priorities to explore different optimization paths")
	}
	if req.ESG.Environmental > 70 {
		alts = append(alts, "Explore carbon offset programs or renewable energy partnerships")
	}
	if req.ESG.Social > 70 {
		alts = append(alts, "Implement pilot social programs with selected communities before full rollout")
	}
	if risk != nil && risk.RiskLevel == negotiation.RiskHigh {
		alts = append(alts, "Break negotiation into smaller, lower-risk phases with go/no-go decision points")
	}

	if len(alts) > maxAlternatives {
		alts = alts[:maxAlternatives]
	}
	return alts
}

// ImprovementSuggestions returns follow-up advice for rounds after the first
// that carry feedback. It returns nil otherwise.
func ImprovementSuggestions(req *negotiation.AdvancedRequest) []string {
	if req.Round() <= 1 || req.PreviousRoundFeedback == "" {
		return nil
	}

	out := []string{"Consider feedback from previous round and adjust party priorities accordingly"}
	if len(req.CustomMetrics) > 0 {
		out = append(out, "Fine-tune custom metric weights based on stakeholder input")
	}
	return append(out,
		"Explore additional compromise options that address unresolved concerns",
		"Strengthen risk mitigation strategies for identified high-priority risks",
	)
}
