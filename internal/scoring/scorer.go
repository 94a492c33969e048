// Package scoring turns request priorities into heuristic scores and
// planning hints. Nothing here looks at generated text.
package scoring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/MikeSquared-Agency/concord/internal/negotiation"
)

const (
	// ScoreJitterWidth is the width of the jitter applied to advanced scores.
	ScoreJitterWidth = 15.0
	// MetricJitterWidth is the width of the jitter applied to custom metrics.
	MetricJitterWidth = 10.0

	minConstraintFactor = 0.8
)

// Basic scores a two-party simulation. It is a pure function of esg.
func Basic(esg negotiation.ESG) negotiation.Scores {
	total := esg.Total()
	if total == 0 {
		return negotiation.Scores{Economic: 70, Social: 70, Environmental: 70}
	}

	return negotiation.Scores{
		Economic:      round(math.Max(50, 100-total/3)),
		Social:        round(math.Min(95, (esg.Social+esg.Governance)/2*0.9+20)),
		Environmental: round(math.Min(95, esg.Environmental*0.9+10)),
	}
}

// Engine scores advanced simulations using an injected jitter source.
type Engine struct {
	jitter Jitter
}

// NewEngine returns an Engine. A nil jitter uses RandomJitter.
func NewEngine(j Jitter) *Engine {
	if j == nil {
		j = RandomJitter{}
	}
	return &Engine{jitter: j}
}

// BaseScores returns the weighted dimension scores before any factor.
func BaseScores(esg negotiation.ESG) (economic, social, environmental float64) {
	e, s, g := esg.Environmental, esg.Social, esg.Governance
	economic = 0.6*g + 0.2*e + 0.2*s
	social = 0.7*s + 0.2*g + 0.1*e
	environmental = 0.7*e + 0.2*s + 0.1*g
	return
}

// ComplexityFactor lowers scores by 5% for each party beyond two.
func ComplexityFactor(parties int) float64 {
	return 1 - 0.05*float64(parties-2)
}

// ConstraintFactor multiplies in a penalty for every party with deal-breakers,
// a budget cap, or a timeline shorter than a year. The result never drops
// below 0.8.
func ConstraintFactor(parties []negotiation.AdvancedParty) float64 {
	f := 1.0
	for _, p := range parties {
		c := p.AdvancedConstraints
		if c.HasDealBreakers() {
			f *= 0.95
		}
		if c.HasBudget() {
			f *= 0.97
		}
		if c.HasTimeline() && *c.TimelineMonths < 12 {
			f *= 0.96
		}
	}
	return math.Max(minConstraintFactor, f)
}

// Advanced scores a multi-party simulation. Each dimension draws its own
// jitter.
func (e *Engine) Advanced(req *negotiation.AdvancedRequest) negotiation.Scores {
	econ, soc, env := BaseScores(req.ESG)
	k := ComplexityFactor(len(req.Parties)) * ConstraintFactor(req.Parties)

	final := func(base float64) int {
		return round(clamp(base*k+e.jitter.Draw(ScoreJitterWidth), 0, 100))
	}
	return negotiation.Scores{
		Economic:      final(econ),
		Social:        final(soc),
		Environmental: final(env),
	}
}

// CustomMetrics scores each custom metric against the global ESG total.
func (e *Engine) CustomMetrics(req *negotiation.AdvancedRequest) []negotiation.CustomMetricScore {
	if len(req.CustomMetrics) == 0 {
		return nil
	}

	esgInfluence := req.ESG.Total() / 6
	out := make([]negotiation.CustomMetricScore, 0, len(req.CustomMetrics))
	for _, m := range req.CustomMetrics {
		score := min(100, round(50+m.Priority/2+esgInfluence+e.jitter.Draw(MetricJitterWidth)))
		out = append(out, negotiation.CustomMetricScore{
			Name:        m.Name,
			Score:       score,
			Explanation: metricExplanation(m, score, len(req.Parties)),
		})
	}
	return out
}

func metricExplanation(m negotiation.CustomMetric, score, parties int) string {
	label := "Needs improvement"
	switch {
	case score >= 80:
		label = "Strong"
	case score >= 60:
		label = "Moderate"
	}
	return fmt.Sprintf("%s alignment with %s goals across all %d parties. Priority weight of %s/100 considered.",
		label, m.Name, parties, strconv.FormatFloat(m.Priority, 'f', -1, 64))
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
