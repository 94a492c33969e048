// Package fallback holds the fixed content substituted when a generation
// call cannot produce usable output.
package fallback

import (
	"encoding/json"

	"github.com/MikeSquared-Agency/concord/internal/negotiation"
)

var basicCompromise = map[negotiation.Kind]string{
	negotiation.KindEconomic: "Economic compromise: Allocate resources based on ROI projections, implement cost-sharing mechanisms, and establish performance-based incentives to maximize financial efficiency for both parties.",
	negotiation.KindSocial:   "Social compromise: Prioritize fair labor practices, ensure equitable benefit distribution, invest in community development programs, and establish transparent governance structures that benefit all stakeholders.",
	negotiation.KindBalanced: "Balanced sustainable compromise: Implement a phased approach that balances immediate economic needs with long-term sustainability goals, ensuring environmental protection, social equity, and good governance practices throughout the agreement.",
}

var advancedCompromise = map[negotiation.Kind]string{
	negotiation.KindEconomic: "Economic compromise: Implement a phased investment approach with clear ROI milestones, establish cost-sharing mechanisms based on benefit distribution, and create performance-based incentives to maximize financial efficiency while ensuring sustainable operations for all parties involved.",
	negotiation.KindSocial:   "Social compromise: Prioritize stakeholder welfare through equitable benefit distribution, establish transparent governance structures with regular community engagement, invest in workforce development and fair labor practices, and ensure that all parties have meaningful representation in decision-making processes.",
	negotiation.KindBalanced: "Balanced sustainable compromise: Adopt an integrated approach that phases economic investments to align with environmental protection timelines, implements social equity measures throughout all operations, and establishes multi-stakeholder governance to ensure accountability and long-term sustainability for all parties.",
}

// riskText is shorter than Risk(): it stands in for a failed call, while
// Risk() stands in for an unparseable reply.
const riskText = `{"riskLevel":"medium","potentialRisks":["Stakeholder misalignment","Resource constraints","Timeline delays"],"mitigationStrategies":["Regular communication and alignment meetings","Contingency budget allocation","Flexible milestone scheduling"],"confidenceScore":75}`

// Text returns the substitute reply for a failed call of kind in mode.
// Structured kinds return JSON that decodes to their fallback object.
func Text(kind negotiation.Kind, mode negotiation.Mode) string {
	switch kind {
	case negotiation.KindEconomic, negotiation.KindSocial, negotiation.KindBalanced:
		if mode == negotiation.ModeBasic {
			return basicCompromise[kind]
		}
		return advancedCompromise[kind]
	case negotiation.KindRisk:
		return riskText
	case negotiation.KindEmpathy:
		return mustJSON(Empathy(""))
	case negotiation.KindSentiment:
		return mustJSON(Sentiment())
	case negotiation.KindPower:
		return mustJSON(Power())
	case negotiation.KindCultural:
		return mustJSON(Cultural())
	}
	if mode == negotiation.ModeBasic {
		return basicCompromise[negotiation.KindBalanced]
	}
	return advancedCompromise[negotiation.KindBalanced]
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Risk is the assessment used when a risk reply cannot be parsed.
func Risk() negotiation.RiskAssessment {
	return negotiation.RiskAssessment{
		RiskLevel: negotiation.RiskMedium,
		PotentialRisks: []string{
			"Misalignment of stakeholder priorities",
			"Budget or resource constraints",
			"Timeline execution challenges",
			"Regulatory or compliance issues",
		},
		MitigationStrategies: []string{
			"Establish regular alignment meetings and clear communication channels",
			"Create contingency budgets and resource buffer pools",
			"Implement flexible milestone scheduling with early warning systems",
			"Conduct thorough regulatory review and engage compliance experts",
		},
		ConfidenceScore: 75,
	}
}

// Empathy is the generic insight for a profiled party whose analysis failed.
func Empathy(partyName string) negotiation.EmpathyInsight {
	return negotiation.EmpathyInsight{
		PartyName:                    partyName,
		EmotionalNeeds:               []string{"Recognition and respect", "Clear communication", "Fair treatment"},
		CommunicationRecommendations: []string{"Use active listening techniques", "Acknowledge their perspective", "Be transparent about constraints"},
		ConflictRisks:                []string{"Misalignment of expectations", "Communication breakdowns", "Trust issues"},
		BridgingStrategies:           []string{"Establish common ground early", "Create safe space for concerns", "Use collaborative problem-solving"},
	}
}

// Unprofiled is the placeholder for a party without an empathy profile. No
// call is made for such parties.
func Unprofiled(partyName string) negotiation.EmpathyInsight {
	return negotiation.EmpathyInsight{
		PartyName:                    partyName,
		EmotionalNeeds:               []string{"Not specified"},
		CommunicationRecommendations: []string{"Use standard professional communication"},
		ConflictRisks:                []string{"Unknown - no empathy profile provided"},
		BridgingStrategies:           []string{"Establish rapport through open dialogue"},
	}
}

func Sentiment() negotiation.SentimentAnalysis {
	return negotiation.SentimentAnalysis{
		OverallSentiment: negotiation.SentimentNeutral,
		EmotionalTone:    "Professional and balanced",
		EmpathyScore:     70,
		InclusivityScore: 70,
		Recommendations: []string{
			"Consider acknowledging emotional stakes",
			"Ensure all parties feel heard",
			"Use inclusive language",
		},
	}
}

func Power() negotiation.PowerBalanceReport {
	return negotiation.PowerBalanceReport{
		CurrentDynamics: "Power distribution appears relatively balanced",
		Imbalances: []string{
			"Some parties may have more resources",
			"Experience levels may vary",
		},
		BalancingStrategies: []string{
			"Ensure equal voice in discussions",
			"Provide information access to all parties",
			"Use neutral facilitation",
		},
		EquityScore: 70,
	}
}

func Cultural() negotiation.CulturalBridge {
	return negotiation.CulturalBridge{
		CulturalTensions: []string{
			"Different communication styles",
			"Varying decision-making norms",
		},
		CommunicationAdjustments: []string{
			"Be explicit about expectations",
			"Allow time for consensus building",
			"Respect cultural protocols",
		},
		ProtocolRecommendations: []string{
			"Establish clear meeting structures",
			"Use culturally neutral language",
			"Build personal relationships",
		},
		SuccessFactors: []string{
			"Mutual respect and understanding",
			"Patience with different styles",
			"Focus on shared goals",
		},
	}
}
