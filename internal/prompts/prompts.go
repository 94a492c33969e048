// Package prompts renders the system and user messages for every generation
// call. All functions are pure.
package prompts

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/concord/internal/negotiation"
)

// Prompt is a system/user message pair.
type Prompt struct {
	System string
	User   string
}

// Basic renders a two-party compromise prompt. Non-compromise kinds render
// as balanced.
func Basic(kind negotiation.Kind, req *negotiation.BasicRequest) Prompt {
	if !kind.IsCompromise() {
		kind = negotiation.KindBalanced
	}

	var b strings.Builder
	if kind == negotiation.KindBalanced {
		b.WriteString("Analyze this negotiation between two parties and provide a balanced, sustainable compromise proposal.\n\n")
	} else {
		fmt.Fprintf(&b, "Analyze this negotiation between two parties and provide a %s-optimized compromise proposal.\n\n", kind)
	}

	for i, p := range []negotiation.Party{req.PartyA, req.PartyB} {
		fmt.Fprintf(&b, "**Party %s: %s**\n", negotiation.Label(i), p.Name)
		fmt.Fprintf(&b, "- Goals: %s\n", p.Goals)
		fmt.Fprintf(&b, "- Constraints: %s\n\n", p.Constraints)
	}

	b.WriteString("**ESG Priorities (0-100 scale):**\n")
	writeESG(&b, req.ESG)
	b.WriteString("\n")

	switch kind {
	case negotiation.KindEconomic:
		b.WriteString("Provide a concise compromise proposal (3-5 sentences) that prioritizes economic efficiency and financial optimization while respecting both parties' constraints. Be specific and actionable.")
	case negotiation.KindSocial:
		b.WriteString("Provide a concise compromise proposal (3-5 sentences) that prioritizes social impact, fairness, and ethical considerations while respecting both parties' constraints. Be specific and actionable.")
	default:
		b.WriteString("Provide a concise compromise proposal (3-5 sentences) that balances economic, social, and environmental factors according to the ESG priorities. The proposal should be sustainable and fair to both parties. Be specific and actionable.")
	}

	return Prompt{System: Persona(kind), User: b.String()}
}

// AdvancedSystem builds the system prompt for an advanced compromise:
// persona, industry guidance, tone, then a note for later rounds.
func AdvancedSystem(kind negotiation.Kind, req *negotiation.AdvancedRequest) string {
	parts := []string{Persona(kind)}
	if ctx := IndustryContext(req.Industry); ctx != "" {
		parts = append(parts, ctx)
	}

	var tone negotiation.Tone
	if req.AIConfig != nil {
		tone = req.AIConfig.Tone
	}
	parts = append(parts, ToneInstruction(tone))

	if req.NegotiationRound > 1 {
		parts = append(parts, fmt.Sprintf("This is negotiation round %d. Consider the feedback from previous rounds and show improvement.", req.NegotiationRound))
	}
	return strings.Join(parts, "\n\n")
}

// Advanced renders a multi-party compromise prompt.
func Advanced(kind negotiation.Kind, req *negotiation.AdvancedRequest) Prompt {
	if !kind.IsCompromise() {
		kind = negotiation.KindBalanced
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this %d-party negotiation and provide a %s-optimized compromise proposal.\n\n", len(req.Parties), kind)

	for i, p := range req.Parties {
		fmt.Fprintf(&b, "**Party %s: %s**\n", negotiation.Label(i), p.Name)
		fmt.Fprintf(&b, "- Goals: %s\n", p.Goals)
		fmt.Fprintf(&b, "- Constraints: %s\n", p.Constraints)

		if c := p.AdvancedConstraints; c != nil {
			if c.HasDealBreakers() {
				fmt.Fprintf(&b, "- Deal Breakers: %s\n", strings.Join(c.DealBreakers, ", "))
			}
			if c.HasBudget() {
				fmt.Fprintf(&b, "- Budget Limit: $%s\n", grouped(*c.BudgetMax))
			}
			if c.HasTimeline() {
				fmt.Fprintf(&b, "- Timeline: %s months\n", num(*c.TimelineMonths))
			}
			if c.RegulatoryRequirements != "" {
				fmt.Fprintf(&b, "- Regulatory: %s\n", c.RegulatoryRequirements)
			}
		}

		if e := p.IndividualESGPriorities; e != nil {
			fmt.Fprintf(&b, "- Individual ESG Priorities: Environmental %s, Social %s, Governance %s\n",
				num(e.Environmental), num(e.Social), num(e.Governance))
		}
		b.WriteString("\n")
	}

	b.WriteString("**Global ESG Priorities (0-100 scale):**\n")
	writeESG(&b, req.ESG)
	b.WriteString("\n")

	if len(req.CustomMetrics) > 0 {
		b.WriteString("**Custom Success Metrics:**\n")
		for _, m := range req.CustomMetrics {
			fmt.Fprintf(&b, "- %s (Priority: %s/100): %s\n", m.Name, num(m.Priority), m.Description)
		}
		b.WriteString("\n")
	}

	if !req.Industry.IsGeneral() {
		fmt.Fprintf(&b, "**Industry Context:** %s\n\n", req.Industry)
	}

	if req.PreviousRoundFeedback != "" {
		fmt.Fprintf(&b, "**Feedback from Previous Round:**\n%s\n\n", req.PreviousRoundFeedback)
	}

	fmt.Fprintf(&b, "Provide a comprehensive compromise proposal (5-8 sentences) that prioritizes %s ", focusPhrases[kind])
	b.WriteString("while respecting all parties' constraints and deal-breakers. ")
	if len(req.CustomMetrics) > 0 {
		b.WriteString("Address the custom metrics in your proposal. ")
	}
	b.WriteString("Be specific, actionable, and realistic.")
	if req.IncludeMitigationStrategies {
		b.WriteString(" Include risk mitigation strategies.")
	}

	return Prompt{System: AdvancedSystem(kind, req), User: b.String()}
}

func writeESG(b *strings.Builder, esg negotiation.ESG) {
	fmt.Fprintf(b, "- Environmental: %s\n", num(esg.Environmental))
	fmt.Fprintf(b, "- Social: %s\n", num(esg.Social))
	fmt.Fprintf(b, "- Governance: %s\n", num(esg.Governance))
}
