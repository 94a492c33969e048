// Package carbon estimates the footprint of text-generation calls and
// aggregates a caller-held history of those estimates.
package carbon

import (
	"fmt"
	"math"
)

const (
	// OverheadGrams is charged once per estimate for transport and API overhead.
	OverheadGrams = 0.5
	// TraditionalMeetingGrams is the in-person baseline per participant.
	TraditionalMeetingGrams = 5000.0
	// GridGramsPerKWh is the global average grid intensity.
	GridGramsPerKWh = 475.0

	defaultModel = "gpt-4o-mini"
)

type tier struct {
	carbonPer1k float64 // g CO2 per 1000 tokens
	energyPer1k float64 // kWh per 1000 tokens
	penalty     float64
}

var tiers = map[string]tier{
	"gpt-4":         {carbonPer1k: 0.0052, energyPer1k: 0.0047, penalty: 20},
	"gpt-4o-mini":   {carbonPer1k: 0.0028, energyPer1k: 0.0025, penalty: 10},
	"gpt-3.5-turbo": {carbonPer1k: 0.0015, energyPer1k: 0.0013, penalty: 5},
}

// resolve maps unknown models onto the middle tier.
func resolve(model string) string {
	if _, ok := tiers[model]; ok {
		return model
	}
	return defaultModel
}

func tierFor(model string) tier {
	return tiers[resolve(model)]
}

// Equivalents expresses a footprint in everyday units.
type Equivalents struct {
	TreeHoursNeeded   float64 `json:"treeHoursNeeded"`
	DrivingMeters     float64 `json:"drivingMeters"`
	SmartphoneCharges float64 `json:"smartphoneCharges"`
	LightBulbHours    float64 `json:"lightBulbHours"`
}

// Metrics is the footprint of one simulation's generation calls.
type Metrics struct {
	TotalCO2Grams              float64     `json:"totalCO2Grams"`
	EnergyKWh                  float64     `json:"energyKWh"`
	TokenCount                 int         `json:"tokenCount"`
	ModelUsed                  string      `json:"modelUsed"`
	ExecutionTimeMs            int64       `json:"executionTimeMs"`
	GreenScore                 float64     `json:"greenScore"`
	EquivalentMetrics          Equivalents `json:"equivalentMetrics"`
	Recommendations            []string    `json:"recommendations"`
	CarbonSavingsVsTraditional float64     `json:"carbonSavingsVsTraditional"`
}

// Estimate computes the footprint of tokenCount tokens generated by model in
// executionTimeMs, compared against an in-person meeting of participants.
func Estimate(model string, tokenCount int, executionTimeMs int64, participants int) Metrics {
	return EstimateByModel(model, map[string]int{model: tokenCount}, executionTimeMs, participants)
}

// EstimateByModel is Estimate for a simulation whose calls ran on more than
// one model. Each model's tokens are charged at that model's intensity; the
// score and recommendations follow model, the one the caller chose.
func EstimateByModel(model string, tokens map[string]int, executionTimeMs int64, participants int) Metrics {
	if executionTimeMs < 0 {
		executionTimeMs = 0
	}
	var (
		tokenCount int
		grams      float64
		energy     float64
	)
	for m, n := range tokens {
		if n <= 0 {
			continue
		}
		t := tierFor(m)
		k := float64(n) / 1000
		tokenCount += n
		grams += k * t.carbonPer1k
		energy += k * t.energyPer1k
	}

	total := grams + OverheadGrams
	score := GreenScore(model, tokenCount, executionTimeMs)

	return Metrics{
		TotalCO2Grams:   total,
		EnergyKWh:       energy,
		TokenCount:      tokenCount,
		ModelUsed:       model,
		ExecutionTimeMs: executionTimeMs,
		GreenScore:      score,
		EquivalentMetrics: Equivalents{
			TreeHoursNeeded:   total / 21,
			DrivingMeters:     total / 0.12,
			SmartphoneCharges: total / 8,
			LightBulbHours:    energy * 1000 / 60,
		},
		Recommendations:            Recommendations(model, tokenCount, score),
		CarbonSavingsVsTraditional: TraditionalMeetingGrams*float64(participants) - total,
	}
}

// GreenScore rates how carbon-efficient a call was, 0-100. Unknown models
// take the gpt-4o-mini penalty of 10, not the lowest tier's 5.
func GreenScore(model string, tokenCount int, executionTimeMs int64) float64 {
	score := 100 - tierFor(model).penalty

	switch {
	case tokenCount > 2000:
		score -= 30
	case tokenCount > 1000:
		score -= 15
	case tokenCount > 500:
		score -= 5
	}

	switch {
	case executionTimeMs > 60000:
		score -= 20
	case executionTimeMs > 30000:
		score -= 10
	case executionTimeMs > 10000:
		score -= 5
	}

	return clamp(score, 0, 100)
}

// Recommendations returns the ordered list of short green-AI tips.
func Recommendations(model string, tokenCount int, greenScore float64) []string {
	var recs []string

	switch resolve(model) {
	case "gpt-4":
		recs = append(recs,
			"🌱 Switch to gpt-4o-mini to reduce CO2 emissions by 46% with similar quality",
			"💡 Use gpt-3.5-turbo for simple negotiations to reduce emissions by 71%",
		)
	case "gpt-4o-mini":
		recs = append(recs, "✅ Good choice! Consider gpt-3.5-turbo for simpler scenarios to save 46% more CO2")
	default:
		recs = append(recs, "🌟 Excellent! You're using the most carbon-efficient model")
	}

	switch {
	case tokenCount > 1500:
		recs = append(recs,
			"📉 Reduce token usage by being more concise in prompts and limiting response length",
			"⚡ Consider caching repeated analyses to avoid redundant API calls",
		)
	case tokenCount > 800:
		recs = append(recs, "👍 Reasonable token usage. Fine-tune prompts to optimize further")
	default:
		recs = append(recs, "🎯 Excellent token efficiency!")
	}

	if greenScore < 70 {
		recs = append(recs,
			"🌍 Run simulations during off-peak hours when renewable energy is more available",
			"♻️ Batch multiple simulations together to reduce overhead",
		)
	}

	trees := int(math.Ceil(float64(tokenCount) / 10000))
	recs = append(recs, fmt.Sprintf("🌳 Plant %d tree(s) to offset your AI carbon footprint", trees))
	return recs
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
