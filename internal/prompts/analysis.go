package prompts

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/concord/internal/negotiation"
)

const riskSchema = `Provide your assessment in the following JSON format:
{
  "riskLevel": "low|medium|high",
  "potentialRisks": ["risk1", "risk2", "risk3"],
  "mitigationStrategies": ["strategy1", "strategy2", "strategy3"],
  "confidenceScore": 85
}

Identify 3-5 key risks and provide practical mitigation strategies for each.`

const empathySchema = `
Provide your analysis in JSON format:
{
  "emotionalNeeds": ["need1", "need2", "need3"],
  "communicationRecommendations": ["recommendation1", "recommendation2"],
  "conflictRisks": ["risk1", "risk2"],
  "bridgingStrategies": ["strategy1", "strategy2", "strategy3"]
}

Be specific and actionable. Consider their emotional state, power position, and cultural context.`

const sentimentSchema = `
Provide analysis in JSON format:
{
  "overallSentiment": "positive|neutral|negative",
  "emotionalTone": "brief description of tone",
  "empathyScore": 85,
  "inclusivityScore": 78,
  "recommendations": ["recommendation1", "recommendation2"]
}

Rate empathy (how well it considers feelings) and inclusivity (how well it addresses all parties) on 0-100 scale.`

const powerSchema = `Provide analysis in JSON format:
{
  "currentDynamics": "description of power distribution",
  "imbalances": ["imbalance1", "imbalance2"],
  "balancingStrategies": ["strategy1", "strategy2", "strategy3"],
  "equityScore": 75
}

Rate equity (fairness of power distribution) on 0-100 scale. Suggest concrete strategies to balance power.`

const culturalSchema = `Provide analysis in JSON format:
{
  "culturalTensions": ["tension1", "tension2"],
  "communicationAdjustments": ["adjustment1", "adjustment2"],
  "protocolRecommendations": ["protocol1", "protocol2"],
  "successFactors": ["factor1", "factor2", "factor3"]
}

Identify potential misunderstandings and provide specific communication adaptations.`

// Risk renders the risk assessment prompt.
func Risk(req *negotiation.AdvancedRequest) Prompt {
	var b strings.Builder
	b.WriteString("Analyze the risks in this negotiation and provide a structured risk assessment.\n\n")
	for i, p := range req.Parties {
		fmt.Fprintf(&b, "**Party %s: %s**\n", negotiation.Label(i), p.Name)
		fmt.Fprintf(&b, "- Goals: %s\n", p.Goals)
		fmt.Fprintf(&b, "- Constraints: %s\n\n", p.Constraints)
	}
	b.WriteString(riskSchema)
	return Prompt{System: riskPersona, User: b.String()}
}

// Empathy renders the per-party psychological profile prompt. The party must
// carry an empathy profile.
func Empathy(party negotiation.AdvancedParty) Prompt {
	var b strings.Builder
	b.WriteString("Analyze the emotional and psychological profile of this negotiating party:\n\n")
	fmt.Fprintf(&b, "**Party: %s**\n", party.Name)
	fmt.Fprintf(&b, "Goals: %s\n\n", party.Goals)

	if p := party.EmpathyProfile; p != nil {
		if p.EmotionalState != "" {
			fmt.Fprintf(&b, "Emotional State: %s\n", p.EmotionalState)
		}
		if p.PowerDynamic != "" {
			fmt.Fprintf(&b, "Power Dynamic: %s\n", p.PowerDynamic)
		}
		if p.NegotiationStyle != "" {
			fmt.Fprintf(&b, "Negotiation Style: %s\n", p.NegotiationStyle)
		}
		if p.CulturalContext != "" {
			fmt.Fprintf(&b, "Cultural Context: %s\n", p.CulturalContext)
		}
		if p.TrustLevel != nil {
			fmt.Fprintf(&b, "Trust Level: %s/100\n", num(*p.TrustLevel))
		}
		if p.StressLevel != nil {
			fmt.Fprintf(&b, "Stress Level: %s/100\n", num(*p.StressLevel))
		}
		if len(p.EmotionalTriggers) > 0 {
			fmt.Fprintf(&b, "Emotional Triggers: %s\n", strings.Join(p.EmotionalTriggers, ", "))
		}
		if len(p.CoreValues) > 0 {
			fmt.Fprintf(&b, "Core Values: %s\n", strings.Join(p.CoreValues, ", "))
		}
		if p.PastExperiences != "" {
			fmt.Fprintf(&b, "Past Experiences: %s\n", p.PastExperiences)
		}
	}

	b.WriteString(empathySchema)
	return Prompt{System: empathyPersona, User: b.String()}
}

// Sentiment renders the prompt that rates the emotional intelligence of
// proposal.
func Sentiment(proposal string, req *negotiation.AdvancedRequest) Prompt {
	var b strings.Builder
	b.WriteString("Analyze the emotional intelligence and sentiment of this negotiation proposal:\n\n")
	b.WriteString(`"` + proposal + "\"\n\n")
	b.WriteString("Consider the negotiating parties:\n")
	for _, p := range req.Parties {
		b.WriteString("- " + p.Name)
		if p.EmpathyProfile != nil && p.EmpathyProfile.EmotionalState != "" {
			fmt.Fprintf(&b, " (%s)", p.EmpathyProfile.EmotionalState)
		}
		b.WriteString("\n")
	}
	b.WriteString(sentimentSchema)
	return Prompt{System: sentimentPersona, User: b.String()}
}

// Power renders the power-dynamics prompt.
func Power(req *negotiation.AdvancedRequest) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the power dynamics in this %d-party negotiation:\n\n", len(req.Parties))
	for i, p := range req.Parties {
		fmt.Fprintf(&b, "**Party %s: %s**\n", negotiation.Label(i), p.Name)
		fmt.Fprintf(&b, "Goals: %s\n", p.Goals)
		if ep := p.EmpathyProfile; ep != nil {
			if ep.PowerDynamic != "" {
				fmt.Fprintf(&b, "Power Dynamic: %s\n", ep.PowerDynamic)
			}
			if ep.NegotiationStyle != "" {
				fmt.Fprintf(&b, "Negotiation Style: %s\n", ep.NegotiationStyle)
			}
		}
		if p.AdvancedConstraints.HasBudget() {
			fmt.Fprintf(&b, "Budget: $%s\n", grouped(*p.AdvancedConstraints.BudgetMax))
		}
		b.WriteString("\n")
	}
	b.WriteString(powerSchema)
	return Prompt{System: powerPersona, User: b.String()}
}

// Cultural renders the cross-cultural bridging prompt.
func Cultural(req *negotiation.AdvancedRequest) Prompt {
	var b strings.Builder
	b.WriteString("Analyze cultural communication differences in this negotiation:\n\n")

	var cultures []string
	for _, p := range req.Parties {
		if p.EmpathyProfile != nil && p.EmpathyProfile.CulturalContext != "" {
			cultures = append(cultures, fmt.Sprintf("%s: %s", p.Name, p.EmpathyProfile.CulturalContext))
		}
	}
	if len(cultures) == 0 {
		b.WriteString("No specific cultural contexts provided. Assume multicultural business setting.\n\n")
	} else {
		b.WriteString("Cultural Contexts:\n")
		for _, c := range cultures {
			b.WriteString("- " + c + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(culturalSchema)
	return Prompt{System: culturalPersona, User: b.String()}
}
