package negotiation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest wraps every validation failure.
var ErrInvalidRequest = errors.New("invalid request")

const (
	MinParties   = 2
	MaxParties   = 5
	MinRound     = 1
	MaxRound     = 5
	MinMaxTokens = 100
	MaxMaxTokens = 2000
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func (e ESG) validate(field string) error {
	components := []struct {
		name  string
		value float64
	}{
		{"environmental", e.Environmental},
		{"social", e.Social},
		{"governance", e.Governance},
	}
	for _, c := range components {
		if !inRange(c.value, 0, 100) {
			return invalid("%s.%s must be between 0 and 100", field, c.name)
		}
	}
	return nil
}

// Clamped returns e with every component forced into [0,100].
func (e ESG) Clamped() ESG {
	c := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 100 {
			return 100
		}
		return v
	}
	return ESG{Environmental: c(e.Environmental), Social: c(e.Social), Governance: c(e.Governance)}
}

func (p Party) validate(field string) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("%s.name is required", field)
	}
	if strings.TrimSpace(p.Goals) == "" {
		return invalid("%s.goals is required", field)
	}
	if strings.TrimSpace(p.Constraints) == "" {
		return invalid("%s.constraints is required", field)
	}
	return nil
}

// Validate checks a basic request.
func (r *BasicRequest) Validate() error {
	if r == nil {
		return invalid("empty body")
	}
	if err := r.PartyA.validate("partyA"); err != nil {
		return err
	}
	if err := r.PartyB.validate("partyB"); err != nil {
		return err
	}
	return r.ESG.validate("esg")
}

// Validate checks an advanced request.
func (r *AdvancedRequest) Validate() error {
	if r == nil {
		return invalid("empty body")
	}
	if n := len(r.Parties); n < MinParties || n > MaxParties {
		return invalid("parties must contain between %d and %d entries, got %d", MinParties, MaxParties, n)
	}
	for i, p := range r.Parties {
		field := fmt.Sprintf("parties[%d]", i)
		if err := (Party{Name: p.Name, Goals: p.Goals, Constraints: p.Constraints}).validate(field); err != nil {
			return err
		}
		if p.IndividualESGPriorities != nil {
			if err := p.IndividualESGPriorities.validate(field + ".individualEsgPriorities"); err != nil {
				return err
			}
		}
		if err := p.AdvancedConstraints.validate(field + ".advancedConstraints"); err != nil {
			return err
		}
		if err := p.EmpathyProfile.validate(field + ".empathyProfile"); err != nil {
			return err
		}
	}
	if err := r.ESG.validate("esg"); err != nil {
		return err
	}
	if err := r.AIConfig.validate(); err != nil {
		return err
	}
	if r.Industry != "" && !r.Industry.Valid() {
		return invalid("unknown industry %q", r.Industry)
	}
	for i, m := range r.CustomMetrics {
		if strings.TrimSpace(m.Name) == "" {
			return invalid("customMetrics[%d].name is required", i)
		}
		if !inRange(m.Priority, 0, 100) {
			return invalid("customMetrics[%d].priority must be between 0 and 100", i)
		}
	}
	if r.NegotiationRound != 0 && (r.NegotiationRound < MinRound || r.NegotiationRound > MaxRound) {
		return invalid("negotiationRound must be between %d and %d", MinRound, MaxRound)
	}
	return nil
}

func (c *Constraints) validate(field string) error {
	if c == nil {
		return nil
	}
	if c.BudgetMax != nil && *c.BudgetMax < 0 {
		return invalid("%s.budgetMax must not be negative", field)
	}
	if c.TimelineMonths != nil && *c.TimelineMonths < 0 {
		return invalid("%s.timelineMonths must not be negative", field)
	}
	return nil
}

func (p *EmpathyProfile) validate(field string) error {
	if p == nil {
		return nil
	}
	if p.EmotionalState != "" && !p.EmotionalState.Valid() {
		return invalid("%s.emotionalState %q is not recognised", field, p.EmotionalState)
	}
	if p.PowerDynamic != "" && !p.PowerDynamic.Valid() {
		return invalid("%s.powerDynamic %q is not recognised", field, p.PowerDynamic)
	}
	if p.NegotiationStyle != "" && !p.NegotiationStyle.Valid() {
		return invalid("%s.negotiationStyle %q is not recognised", field, p.NegotiationStyle)
	}
	if p.CulturalContext != "" && !p.CulturalContext.Valid() {
		return invalid("%s.culturalContext %q is not recognised", field, p.CulturalContext)
	}
	if p.TrustLevel != nil && !inRange(*p.TrustLevel, 0, 100) {
		return invalid("%s.trustLevel must be between 0 and 100", field)
	}
	if p.StressLevel != nil && !inRange(*p.StressLevel, 0, 100) {
		return invalid("%s.stressLevel must be between 0 and 100", field)
	}
	return nil
}

func (c *AIConfig) validate() error {
	if c == nil {
		return nil
	}
	if c.Model != "" && !c.Model.Valid() {
		return invalid("aiConfig.model %q is not supported", c.Model)
	}
	if c.Tone != "" && !c.Tone.Valid() {
		return invalid("aiConfig.tone %q is not recognised", c.Tone)
	}
	if c.Temperature != nil && !inRange(*c.Temperature, 0, 2) {
		return invalid("aiConfig.temperature must be between 0 and 2")
	}
	if c.Creativity != nil && !inRange(*c.Creativity, 0, 100) {
		return invalid("aiConfig.creativity must be between 0 and 100")
	}
	if c.MaxTokens != 0 && (c.MaxTokens < MinMaxTokens || c.MaxTokens > MaxMaxTokens) {
		return invalid("aiConfig.maxTokens must be between %d and %d", MinMaxTokens, MaxMaxTokens)
	}
	return nil
}

// Normalize returns a copy of r with numeric fields forced into their
// ranges. It never fails; Validate is the strict check.
func (r *AdvancedRequest) Normalize() *AdvancedRequest {
	out := *r
	out.ESG = r.ESG.Clamped()

	out.Parties = make([]AdvancedParty, len(r.Parties))
	copy(out.Parties, r.Parties)
	for i, p := range out.Parties {
		if p.IndividualESGPriorities != nil {
			e := p.IndividualESGPriorities.Clamped()
			out.Parties[i].IndividualESGPriorities = &e
		}
	}

	if out.NegotiationRound > MaxRound {
		out.NegotiationRound = MaxRound
	}
	if out.NegotiationRound < 0 {
		out.NegotiationRound = 0
	}

	if r.AIConfig != nil {
		cfg := *r.AIConfig
		if cfg.MaxTokens != 0 {
			cfg.MaxTokens = max(MinMaxTokens, min(MaxMaxTokens, cfg.MaxTokens))
		}
		out.AIConfig = &cfg
	}
	return &out
}
