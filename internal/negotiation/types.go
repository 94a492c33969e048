package negotiation

import "github.com/MikeSquared-Agency/concord/internal/carbon"

// ESG holds the three 0-100 priority sliders.
type ESG struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

// Total returns E+S+G.
func (e ESG) Total() float64 {
	return e.Environmental + e.Social + e.Governance
}

// IsZero reports whether all three components are exactly zero.
func (e ESG) IsZero() bool {
	return e.Environmental == 0 && e.Social == 0 && e.Governance == 0
}

// Party is a participant in a basic two-party simulation.
type Party struct {
	Name        string `json:"name"`
	Goals       string `json:"goals"`
	Constraints string `json:"constraints"`
}

// BasicRequest is the payload for POST /simulate.
type BasicRequest struct {
	PartyA Party `json:"partyA"`
	PartyB Party `json:"partyB"`
	ESG    ESG   `json:"esg"`
}

// Constraints are the structured limits a party brings to the table.
type Constraints struct {
	DealBreakers           []string `json:"dealBreakers,omitempty"`
	BudgetMax              *float64 `json:"budgetMax,omitempty"`
	TimelineMonths         *float64 `json:"timelineMonths,omitempty"`
	RegulatoryRequirements string   `json:"regulatoryRequirements,omitempty"`
}

// HasDealBreakers reports whether at least one deal-breaker is listed.
func (c *Constraints) HasDealBreakers() bool {
	return c != nil && len(c.DealBreakers) > 0
}

// HasBudget reports whether a positive budget cap is set.
func (c *Constraints) HasBudget() bool {
	return c != nil && c.BudgetMax != nil && *c.BudgetMax > 0
}

// HasTimeline reports whether a positive timeline is set.
func (c *Constraints) HasTimeline() bool {
	return c != nil && c.TimelineMonths != nil && *c.TimelineMonths > 0
}

// EmpathyProfile captures the emotional and cultural attributes of a party.
type EmpathyProfile struct {
	EmotionalState    EmotionalState   `json:"emotionalState,omitempty"`
	PowerDynamic      PowerDynamic     `json:"powerDynamic,omitempty"`
	NegotiationStyle  NegotiationStyle `json:"negotiationStyle,omitempty"`
	CulturalContext   CulturalContext  `json:"culturalContext,omitempty"`
	EmotionalTriggers []string         `json:"emotionalTriggers,omitempty"`
	CoreValues        []string         `json:"coreValues,omitempty"`
	PastExperiences   string           `json:"pastExperiences,omitempty"`
	TrustLevel        *float64         `json:"trustLevel,omitempty"`
	StressLevel       *float64         `json:"stressLevel,omitempty"`
}

// AdvancedParty is a participant in a 2-5 party simulation.
type AdvancedParty struct {
	Name                    string          `json:"name"`
	Goals                   string          `json:"goals"`
	Constraints             string          `json:"constraints"`
	AdvancedConstraints     *Constraints    `json:"advancedConstraints,omitempty"`
	IndividualESGPriorities *ESG            `json:"individualEsgPriorities,omitempty"`
	EmpathyProfile          *EmpathyProfile `json:"empathyProfile,omitempty"`
}

// AIConfig tunes the generation calls of an advanced simulation.
type AIConfig struct {
	Model       Model    `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Creativity  *float64 `json:"creativity,omitempty"`
	Tone        Tone     `json:"tone,omitempty"`
	MaxTokens   int      `json:"maxTokens,omitempty"`
}

// CustomMetric is a user-defined success KPI.
type CustomMetric struct {
	Name        string  `json:"name"`
	Priority    float64 `json:"priority"`
	Description string  `json:"description"`
}

// AdvancedRequest is the payload for POST /simulate/advanced.
type AdvancedRequest struct {
	Parties       []AdvancedParty `json:"parties"`
	ESG           ESG             `json:"esg"`
	AIConfig      *AIConfig       `json:"aiConfig,omitempty"`
	Industry      Industry        `json:"industry,omitempty"`
	CustomMetrics []CustomMetric  `json:"customMetrics,omitempty"`

	IncludeRiskAnalysis         bool `json:"includeRiskAnalysis,omitempty"`
	IncludeMitigationStrategies bool `json:"includeMitigationStrategies,omitempty"`
	IncludeEmpathyMapping       bool `json:"includeEmpathyMapping,omitempty"`
	IncludeSentimentAnalysis    bool `json:"includeSentimentAnalysis,omitempty"`
	IncludePowerBalancing       bool `json:"includePowerBalancing,omitempty"`
	IncludeCulturalBridging     bool `json:"includeCulturalBridging,omitempty"`
	TrackCarbon                 bool `json:"trackCarbon,omitempty"`

	NegotiationRound      int    `json:"negotiationRound,omitempty"`
	PreviousRoundFeedback string `json:"previousRoundFeedback,omitempty"`
}

// Round returns the effective round number; an unset round counts as 1.
func (r *AdvancedRequest) Round() int {
	if r.NegotiationRound < 1 {
		return 1
	}
	return r.NegotiationRound
}

// WantsRisk reports whether a risk assessment should be generated.
func (r *AdvancedRequest) WantsRisk() bool {
	return r.IncludeRiskAnalysis || r.IncludeMitigationStrategies
}

// Scores is the economic/social/environmental triple, each 0-100.
type Scores struct {
	Economic      int `json:"economic"`
	Social        int `json:"social"`
	Environmental int `json:"environmental"`
}

// BasicResponse is returned by a basic simulation.
type BasicResponse struct {
	EconomicCompromise string `json:"economic_compromise"`
	SocialCompromise   string `json:"social_compromise"`
	BalancedCompromise string `json:"balanced_compromise"`
	Scores             Scores `json:"scores"`
}

// RiskAssessment is the structured output of the risk analysis.
type RiskAssessment struct {
	RiskLevel            RiskLevel `json:"riskLevel"`
	PotentialRisks       []string  `json:"potentialRisks"`
	MitigationStrategies []string  `json:"mitigationStrategies"`
	ConfidenceScore      float64   `json:"confidenceScore"`
}

// CustomMetricScore scores one CustomMetric.
type CustomMetricScore struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// EmpathyInsight is the per-party emotional analysis.
type EmpathyInsight struct {
	PartyName                    string   `json:"partyName"`
	EmotionalNeeds               []string `json:"emotionalNeeds"`
	CommunicationRecommendations []string `json:"communicationRecommendations"`
	ConflictRisks                []string `json:"conflictRisks"`
	BridgingStrategies           []string `json:"bridgingStrategies"`
}

// SentimentAnalysis rates the emotional intelligence of a proposal.
type SentimentAnalysis struct {
	OverallSentiment Sentiment `json:"overallSentiment"`
	EmotionalTone    string    `json:"emotionalTone"`
	EmpathyScore     float64   `json:"empathyScore"`
	InclusivityScore float64   `json:"inclusivityScore"`
	Recommendations  []string  `json:"recommendations"`
}

// PowerBalanceReport describes power distribution between parties.
type PowerBalanceReport struct {
	CurrentDynamics     string   `json:"currentDynamics"`
	Imbalances          []string `json:"imbalances"`
	BalancingStrategies []string `json:"balancingStrategies"`
	EquityScore         float64  `json:"equityScore"`
}

// CulturalBridge lists cross-cultural adjustments.
type CulturalBridge struct {
	CulturalTensions         []string `json:"culturalTensions"`
	CommunicationAdjustments []string `json:"communicationAdjustments"`
	ProtocolRecommendations  []string `json:"protocolRecommendations"`
	SuccessFactors           []string `json:"successFactors"`
}

// AdvancedResponse is returned by an advanced simulation. Optional sections
// are nil/empty when not requested and are dropped from the JSON body.
type AdvancedResponse struct {
	EconomicCompromise string `json:"economic_compromise"`
	SocialCompromise   string `json:"social_compromise"`
	BalancedCompromise string `json:"balanced_compromise"`
	Scores             Scores `json:"scores"`

	RiskAssessment         *RiskAssessment     `json:"riskAssessment,omitempty"`
	CustomMetricScores     []CustomMetricScore `json:"customMetricScores,omitempty"`
	ImplementationPhases   []string            `json:"implementationPhases,omitempty"`
	AlternativeOptions     []string            `json:"alternativeOptions,omitempty"`
	NegotiationRoundNumber int                 `json:"negotiationRoundNumber,omitempty"`
	ImprovementSuggestions []string            `json:"improvementSuggestions,omitempty"`

	EmpathyInsights    []EmpathyInsight    `json:"empathyInsights,omitempty"`
	SentimentAnalysis  *SentimentAnalysis  `json:"sentimentAnalysis,omitempty"`
	PowerBalanceReport *PowerBalanceReport `json:"powerBalanceReport,omitempty"`
	CulturalBridge     *CulturalBridge     `json:"culturalBridge,omitempty"`

	CarbonFootprint *carbon.Metrics `json:"carbonFootprint,omitempty"`
}
