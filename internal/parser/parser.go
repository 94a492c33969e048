package parser

import (
	"fmt"

	"github.com/MikeSquared-Agency/concord/internal/fallback"
	"github.com/MikeSquared-Agency/concord/internal/negotiation"
)

const (
	defaultConfidence = 70
	defaultScore      = 70
)

// Risk parses a risk assessment. On error the full fallback assessment is
// returned alongside it.
func Risk(raw string) (negotiation.RiskAssessment, error) {
	f, err := Object(raw)
	if err != nil {
		return fallback.Risk(), err
	}

	level := negotiation.RiskLevel(str(f, "riskLevel", ""))
	if !level.Valid() {
		level = negotiation.RiskMedium
	}
	return negotiation.RiskAssessment{
		RiskLevel:            level,
		PotentialRisks:       list(f, "potentialRisks"),
		MitigationStrategies: list(f, "mitigationStrategies"),
		ConfidenceScore:      score(f, "confidenceScore", defaultConfidence),
	}, nil
}

// Empathy parses one party's insight. The party name always comes from the
// caller, never from the reply.
func Empathy(raw, partyName string) (negotiation.EmpathyInsight, error) {
	f, err := Object(raw)
	if err != nil {
		return fallback.Empathy(partyName), err
	}
	return negotiation.EmpathyInsight{
		PartyName:                    partyName,
		EmotionalNeeds:               list(f, "emotionalNeeds"),
		CommunicationRecommendations: list(f, "communicationRecommendations"),
		ConflictRisks:                list(f, "conflictRisks"),
		BridgingStrategies:           list(f, "bridgingStrategies"),
	}, nil
}

func Sentiment(raw string) (negotiation.SentimentAnalysis, error) {
	f, err := Object(raw)
	if err != nil {
		return fallback.Sentiment(), err
	}

	s := negotiation.Sentiment(str(f, "overallSentiment", ""))
	if !s.Valid() {
		s = negotiation.SentimentNeutral
	}
	return negotiation.SentimentAnalysis{
		OverallSentiment: s,
		EmotionalTone:    str(f, "emotionalTone", "Professional and balanced"),
		EmpathyScore:     score(f, "empathyScore", defaultScore),
		InclusivityScore: score(f, "inclusivityScore", defaultScore),
		Recommendations:  list(f, "recommendations"),
	}, nil
}

func Power(raw string) (negotiation.PowerBalanceReport, error) {
	f, err := Object(raw)
	if err != nil {
		return fallback.Power(), err
	}
	return negotiation.PowerBalanceReport{
		CurrentDynamics:     str(f, "currentDynamics", "Mixed power distribution"),
		Imbalances:          list(f, "imbalances"),
		BalancingStrategies: list(f, "balancingStrategies"),
		EquityScore:         score(f, "equityScore", defaultScore),
	}, nil
}

func Cultural(raw string) (negotiation.CulturalBridge, error) {
	f, err := Object(raw)
	if err != nil {
		return fallback.Cultural(), err
	}
	return negotiation.CulturalBridge{
		CulturalTensions:         list(f, "culturalTensions"),
		CommunicationAdjustments: list(f, "communicationAdjustments"),
		ProtocolRecommendations:  list(f, "protocolRecommendations"),
		SuccessFactors:           list(f, "successFactors"),
	}, nil
}

// Parse dispatches on kind. Compromise kinds have no structure and are
// rejected.
func Parse(raw string, kind negotiation.Kind) (any, error) {
	switch kind {
	case negotiation.KindRisk:
		return Risk(raw)
	case negotiation.KindEmpathy:
		return Empathy(raw, "")
	case negotiation.KindSentiment:
		return Sentiment(raw)
	case negotiation.KindPower:
		return Power(raw)
	case negotiation.KindCultural:
		return Cultural(raw)
	}
	return nil, fmt.Errorf("kind %q has no structured form", kind)
}
