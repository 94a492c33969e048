package negotiation

// Model identifies a text-generation model.
type Model string

const (
	ModelGPT4      Model = "gpt-4"
	ModelGPT4oMini Model = "gpt-4o-mini"
	ModelGPT35     Model = "gpt-3.5-turbo"
)

// DefaultModel is used when the request does not name one.
const DefaultModel = ModelGPT4oMini

func (m Model) Valid() bool {
	switch m {
	case ModelGPT4, ModelGPT4oMini, ModelGPT35:
		return true
	}
	return false
}

// Tone selects the register of generated proposals.
type Tone string

const (
	ToneFormal     Tone = "formal"
	ToneCasual     Tone = "casual"
	ToneTechnical  Tone = "technical"
	ToneDiplomatic Tone = "diplomatic"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneFormal, ToneCasual, ToneTechnical, ToneDiplomatic:
		return true
	}
	return false
}

// Industry tags the sector a negotiation happens in.
type Industry string

const (
	IndustryTechnology    Industry = "technology"
	IndustryHealthcare    Industry = "healthcare"
	IndustryFinance       Industry = "finance"
	IndustryRealEstate    Industry = "real-estate"
	IndustryManufacturing Industry = "manufacturing"
	IndustryGovernment    Industry = "government"
	IndustryRetail        Industry = "retail"
	IndustryEnergy        Industry = "energy"
	IndustryGeneral       Industry = "general"
)

func (i Industry) Valid() bool {
	switch i {
	case IndustryTechnology, IndustryHealthcare, IndustryFinance, IndustryRealEstate,
		IndustryManufacturing, IndustryGovernment, IndustryRetail, IndustryEnergy, IndustryGeneral:
		return true
	}
	return false
}

// IsGeneral reports whether the industry carries no specific context.
func (i Industry) IsGeneral() bool {
	return i == "" || i == IndustryGeneral
}

type EmotionalState string

const (
	EmotionCollaborative EmotionalState = "collaborative"
	EmotionDefensive     EmotionalState = "defensive"
	EmotionAggressive    EmotionalState = "aggressive"
	EmotionAnxious       EmotionalState = "anxious"
	EmotionOptimistic    EmotionalState = "optimistic"
	EmotionSkeptical     EmotionalState = "skeptical"
	EmotionDesperate     EmotionalState = "desperate"
	EmotionConfident     EmotionalState = "confident"
)

func (e EmotionalState) Valid() bool {
	switch e {
	case EmotionCollaborative, EmotionDefensive, EmotionAggressive, EmotionAnxious,
		EmotionOptimistic, EmotionSkeptical, EmotionDesperate, EmotionConfident:
		return true
	}
	return false
}

type PowerDynamic string

const (
	PowerEqual       PowerDynamic = "equal"
	PowerDominant    PowerDynamic = "dominant"
	PowerSubordinate PowerDynamic = "subordinate"
	PowerDependent   PowerDynamic = "dependent"
	PowerIndependent PowerDynamic = "independent"
)

func (p PowerDynamic) Valid() bool {
	switch p {
	case PowerEqual, PowerDominant, PowerSubordinate, PowerDependent, PowerIndependent:
		return true
	}
	return false
}

type NegotiationStyle string

const (
	StyleCompeting     NegotiationStyle = "competing"
	StyleCollaborating NegotiationStyle = "collaborating"
	StyleCompromising  NegotiationStyle = "compromising"
	StyleAvoiding      NegotiationStyle = "avoiding"
	StyleAccommodating NegotiationStyle = "accommodating"
)

func (s NegotiationStyle) Valid() bool {
	switch s {
	case StyleCompeting, StyleCollaborating, StyleCompromising, StyleAvoiding, StyleAccommodating:
		return true
	}
	return false
}

type CulturalContext string

const (
	CultureWesternDirect   CulturalContext = "western-direct"
	CultureEasternIndirect CulturalContext = "eastern-indirect"
	CultureMiddleEastern   CulturalContext = "middle-eastern"
	CultureLatinAmerican   CulturalContext = "latin-american"
	CultureAfrican         CulturalContext = "african"
	CultureScandinavian    CulturalContext = "scandinavian"
	CultureMulticultural   CulturalContext = "multicultural"
)

func (c CulturalContext) Valid() bool {
	switch c {
	case CultureWesternDirect, CultureEasternIndirect, CultureMiddleEastern, CultureLatinAmerican,
		CultureAfrican, CultureScandinavian, CultureMulticultural:
		return true
	}
	return false
}

// RiskLevel is the coarse outcome of a risk assessment.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// Sentiment is the overall tone classification of a proposal.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}
