package negotiation

// Kind identifies one generation call and selects its prompt and fallback.
type Kind string

const (
	KindEconomic  Kind = "economic"
	KindSocial    Kind = "social"
	KindBalanced  Kind = "balanced"
	KindRisk      Kind = "risk"
	KindEmpathy   Kind = "empathy"
	KindSentiment Kind = "sentiment"
	KindPower     Kind = "power"
	KindCultural  Kind = "cultural"
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{
	KindEconomic, KindSocial, KindBalanced,
	KindRisk, KindEmpathy, KindSentiment, KindPower, KindCultural,
}

// CompromiseKinds are the three focuses generated on every simulation.
var CompromiseKinds = []Kind{KindEconomic, KindSocial, KindBalanced}

// IsCompromise reports whether k produces free-text proposals rather than a
// JSON analysis.
func (k Kind) IsCompromise() bool {
	return k == KindEconomic || k == KindSocial || k == KindBalanced
}

// Mode distinguishes basic two-party simulations from advanced ones.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeAdvanced Mode = "advanced"
)

// Label returns the party letter for position i: A, B, C...
func Label(i int) string {
	return string(rune('A' + i))
}
