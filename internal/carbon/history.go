package carbon

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Trend describes the direction of a footprint history.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendWorsening Trend = "worsening"
)

// HistoryEntry is one recorded simulation footprint.
type HistoryEntry struct {
	ID             string    `json:"id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	CO2Grams       float64   `json:"co2Grams"`
	EnergyKWh      float64   `json:"energyKWh"`
	ModelUsed      string    `json:"modelUsed"`
	SimulationType string    `json:"simulationType"`
	GreenScore     float64   `json:"greenScore"`
}

// EntryFromMetrics turns an estimate into a history entry stamped at ts.
func EntryFromMetrics(m Metrics, simulationType string, ts time.Time) HistoryEntry {
	return HistoryEntry{
		Timestamp:      ts,
		CO2Grams:       m.TotalCO2Grams,
		EnergyKWh:      m.EnergyKWh,
		ModelUsed:      m.ModelUsed,
		SimulationType: simulationType,
		GreenScore:     m.GreenScore,
	}
}

type Comparison struct {
	TraditionalCO2Kg  float64 `json:"traditionalCO2Kg"`
	AICO2Kg           float64 `json:"aiCO2Kg"`
	SavingsPercentage float64 `json:"savingsPercentage"`
}

// CumulativeFootprint summarises a history.
type CumulativeFootprint struct {
	TotalCO2Kg              float64    `json:"totalCO2Kg"`
	TotalEnergyKWh          float64    `json:"totalEnergyKWh"`
	TotalSimulations        int        `json:"totalSimulations"`
	AverageGreenScore       float64    `json:"averageGreenScore"`
	Trend                   Trend      `json:"trend"`
	ComparisonToTraditional Comparison `json:"comparisonToTraditional"`
}

// Aggregate sums a history in chronological order (oldest first).
//
// The trend compares the mean CO2 of the newest 30% of entries with the
// oldest 30%, both divided by the same slice length. Histories too short to
// yield a slice are stable. Traditional savings assume two participants per
// entry.
func Aggregate(history []HistoryEntry) CumulativeFootprint {
	n := len(history)
	if n == 0 {
		return CumulativeFootprint{Trend: TrendStable}
	}

	var co2, energy, green float64
	for _, e := range history {
		co2 += e.CO2Grams
		energy += e.EnergyKWh
		green += e.GreenScore
	}

	trad := float64(n) * TraditionalMeetingGrams * 2 / 1000
	ai := co2 / 1000

	return CumulativeFootprint{
		TotalCO2Kg:        ai,
		TotalEnergyKWh:    energy,
		TotalSimulations:  n,
		AverageGreenScore: green / float64(n),
		Trend:             trend(history),
		ComparisonToTraditional: Comparison{
			TraditionalCO2Kg:  trad,
			AICO2Kg:           ai,
			SavingsPercentage: (trad - ai) / trad * 100,
		},
	}
}

func trend(history []HistoryEntry) Trend {
	k := int(math.Floor(float64(len(history)) * 0.3))
	if k == 0 {
		return TrendStable
	}

	var recent, old float64
	for _, e := range history[len(history)-k:] {
		recent += e.CO2Grams
	}
	for _, e := range history[:k] {
		old += e.CO2Grams
	}
	recent /= float64(k)
	old /= float64(k)

	switch {
	case recent < old*0.9:
		return TrendImproving
	case recent > old*1.1:
		return TrendWorsening
	default:
		return TrendStable
	}
}

// BadgeCategory groups badges by the rule that awarded them.
type BadgeCategory string

const (
	BadgeSavings    BadgeCategory = "savings"
	BadgeGreenScore BadgeCategory = "green-score"
	BadgeTrend      BadgeCategory = "trend"
	BadgeVolume     BadgeCategory = "volume"
)

type Badge struct {
	Category    BadgeCategory `json:"category"`
	Badge       string        `json:"badge"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Level       int           `json:"level"`
}

// Badges awards achievements for a cumulative footprint, at most one per
// category, in category order.
func Badges(c CumulativeFootprint) []Badge {
	var out []Badge

	savings := c.ComparisonToTraditional.SavingsPercentage
	savingsDesc := fmt.Sprintf("Saved %.1f%% CO2 vs traditional meetings", savings)
	switch {
	case savings > 99:
		out = append(out, Badge{BadgeSavings, "🌍", "Planet Protector", savingsDesc, 5})
	case savings > 95:
		out = append(out, Badge{BadgeSavings, "🌿", "Eco Warrior", savingsDesc, 4})
	}

	greenDesc := fmt.Sprintf("Average Green Score: %.1f", c.AverageGreenScore)
	switch {
	case c.AverageGreenScore > 90:
		out = append(out, Badge{BadgeGreenScore, "⭐", "Green AI Master", greenDesc, 5})
	case c.AverageGreenScore > 80:
		out = append(out, Badge{BadgeGreenScore, "✨", "Green AI Expert", greenDesc, 4})
	}

	if c.Trend == TrendImproving {
		out = append(out, Badge{BadgeTrend, "📈", "Continuous Improver", "Your carbon footprint is decreasing over time", 3})
	}

	volumeDesc := fmt.Sprintf("%d sustainable simulations completed", c.TotalSimulations)
	switch {
	case c.TotalSimulations > 100:
		out = append(out, Badge{BadgeVolume, "🏆", "Green AI Champion", volumeDesc, 4})
	case c.TotalSimulations > 50:
		out = append(out, Badge{BadgeVolume, "🥇", "Sustainability Leader", volumeDesc, 3})
	}

	return out
}

type TreePlanting struct {
	Trees       int     `json:"trees"`
	CostUSD     float64 `json:"costUSD"`
	Description string  `json:"description"`
}

type RenewableEnergy struct {
	KWh         float64 `json:"kWh"`
	CostUSD     float64 `json:"costUSD"`
	Description string  `json:"description"`
}

type DirectCapture struct {
	Grams       float64 `json:"grams"`
	CostUSD     float64 `json:"costUSD"`
	Description string  `json:"description"`
}

// Offsets lists ways to compensate a footprint.
type Offsets struct {
	TreePlanting    TreePlanting    `json:"treePlanting"`
	RenewableEnergy RenewableEnergy `json:"renewableEnergy"`
	DirectCapture   DirectCapture   `json:"directCapture"`
}

// OffsetOptions prices offsets for co2Grams. A tree absorbs about 20 kg a
// year and costs $1.50; renewable credits are $0.05/kWh; direct air capture
// is $600 per tonne.
func OffsetOptions(co2Grams float64) Offsets {
	kg := co2Grams / 1000
	trees := int(math.Ceil(kg / 20))
	kwh := kg / (GridGramsPerKWh / 1000)

	return Offsets{
		TreePlanting: TreePlanting{
			Trees:       trees,
			CostUSD:     float64(trees) * 1.5,
			Description: "Plant trees through verified reforestation programs",
		},
		RenewableEnergy: RenewableEnergy{
			KWh:         kwh,
			CostUSD:     kwh * 0.05,
			Description: "Fund renewable energy projects (solar, wind)",
		},
		DirectCapture: DirectCapture{
			Grams:       co2Grams,
			CostUSD:     kg * 0.6,
			Description: "Support direct air capture technology",
		},
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is a categorised, costed green-AI tip.
type Recommendation struct {
	Category                 string   `json:"category"`
	Priority                 Priority `json:"priority"`
	Title                    string   `json:"title"`
	Description              string   `json:"description"`
	PotentialSavingsCO2Grams float64  `json:"potentialSavingsCO2Grams"`
	ImplementationDifficulty string   `json:"implementationDifficulty"`
}

// DetailedRecommendations expands an estimate into costed tips ordered
// high, medium, low. Ties keep rule order.
func DetailedRecommendations(m Metrics) []Recommendation {
	co2 := m.TotalCO2Grams
	var recs []Recommendation

	if resolve(m.ModelUsed) == "gpt-4" {
		recs = append(recs, Recommendation{
			Category:                 "model-selection",
			Priority:                 PriorityHigh,
			Title:                    "Switch to More Efficient Model",
			Description:              "Use gpt-4o-mini for 46% carbon reduction or gpt-3.5-turbo for 71% reduction",
			PotentialSavingsCO2Grams: co2 * 0.46,
			ImplementationDifficulty: "easy",
		})
	}
	if m.TokenCount > 1000 {
		recs = append(recs, Recommendation{
			Category:                 "optimization",
			Priority:                 PriorityMedium,
			Title:                    "Optimize Prompt Length",
			Description:              "Reduce token usage by writing more concise prompts and limiting max_tokens",
			PotentialSavingsCO2Grams: co2 * 0.3,
			ImplementationDifficulty: "easy",
		})
	}
	recs = append(recs,
		Recommendation{
			Category:                 "caching",
			Priority:                 PriorityMedium,
			Title:                    "Implement Response Caching",
			Description:              "Cache similar negotiations to avoid redundant API calls",
			PotentialSavingsCO2Grams: co2 * 0.5,
			ImplementationDifficulty: "medium",
		},
		Recommendation{
			Category:                 "timing",
			Priority:                 PriorityLow,
			Title:                    "Use Renewable Energy Hours",
			Description:              "Schedule batch operations during peak renewable energy production (10am-4pm)",
			PotentialSavingsCO2Grams: co2 * 0.2,
			ImplementationDifficulty: "easy",
		},
		Recommendation{
			Category:                 "offset",
			Priority:                 PriorityHigh,
			Title:                    "Purchase Carbon Offsets",
			Description:              fmt.Sprintf("Offset %.2fg CO2 through verified carbon credit programs", co2),
			PotentialSavingsCO2Grams: co2,
			ImplementationDifficulty: "easy",
		},
	)

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.rank() < recs[j].Priority.rank()
	})
	return recs
}
