package carbon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate_OverheadOnly(t *testing.T) {
	m := Estimate("gpt-4", 0, 0, 2)

	assert.Equal(t, 0.5, m.TotalCO2Grams)
	assert.Equal(t, 80.0, m.GreenScore)
	assert.Equal(t, 0.0, m.EnergyKWh)
	assert.Equal(t, 9999.5, m.CarbonSavingsVsTraditional)
	assert.Equal(t, "🌳 Plant 0 tree(s) to offset your AI carbon footprint", m.Recommendations[len(m.Recommendations)-1])
}

func TestEstimate_Intensities(t *testing.T) {
	tests := []struct {
		model  string
		co2    float64
		energy float64
	}{
		{"gpt-4", 0.0052*2 + 0.5, 0.0047 * 2},
		{"gpt-4o-mini", 0.0028*2 + 0.5, 0.0025 * 2},
		{"gpt-3.5-turbo", 0.0015*2 + 0.5, 0.0013 * 2},
		{"claude-unknown", 0.0028*2 + 0.5, 0.0025 * 2},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			m := Estimate(tt.model, 2000, 0, 2)
			assert.InDelta(t, tt.co2, m.TotalCO2Grams, 1e-9)
			assert.InDelta(t, tt.energy, m.EnergyKWh, 1e-9)
			assert.Equal(t, tt.model, m.ModelUsed)
		})
	}
}

func TestEstimateByModel_ChargesEachModel(t *testing.T) {
	m := EstimateByModel("gpt-4", map[string]int{"gpt-4": 2000, "gpt-4o-mini": 1000}, 0, 2)

	assert.InDelta(t, 0.0052*2+0.0028+0.5, m.TotalCO2Grams, 1e-9)
	assert.InDelta(t, 0.0047*2+0.0025, m.EnergyKWh, 1e-9)
	assert.Equal(t, 3000, m.TokenCount)
	assert.Equal(t, "gpt-4", m.ModelUsed)
	assert.Equal(t, GreenScore("gpt-4", 3000, 0), m.GreenScore)
	assert.Less(t, m.TotalCO2Grams, Estimate("gpt-4", 3000, 0, 2).TotalCO2Grams)
}

func TestEstimateByModel_SingleModelMatchesEstimate(t *testing.T) {
	assert.Equal(t,
		Estimate("gpt-3.5-turbo", 1500, 12000, 3),
		EstimateByModel("gpt-3.5-turbo", map[string]int{"gpt-3.5-turbo": 1500}, 12000, 3))
}

func TestGreenScore_UnknownModelTakesMiddlePenalty(t *testing.T) {
	assert.Equal(t, 90.0, GreenScore("claude-3-haiku", 0, 0))
	assert.Equal(t, 90.0, Estimate("claude-3-haiku", 0, 0, 2).GreenScore)
}

func TestEstimate_Equivalents(t *testing.T) {
	m := Estimate("gpt-4o-mini", 1000, 0, 1)

	co2 := 0.0028 + 0.5
	assert.InDelta(t, co2/21, m.EquivalentMetrics.TreeHoursNeeded, 1e-9)
	assert.InDelta(t, co2/0.12, m.EquivalentMetrics.DrivingMeters, 1e-9)
	assert.InDelta(t, co2/8, m.EquivalentMetrics.SmartphoneCharges, 1e-9)
	assert.InDelta(t, 0.0025*1000/60, m.EquivalentMetrics.LightBulbHours, 1e-9)
}

func TestGreenScore(t *testing.T) {
	tests := []struct {
		name   string
		model  string
		tokens int
		ms     int64
		want   float64
	}{
		{"gpt-4 idle", "gpt-4", 0, 0, 80},
		{"mini idle", "gpt-4o-mini", 0, 0, 90},
		{"turbo idle", "gpt-3.5-turbo", 0, 0, 95},
		{"unknown uses middle tier", "mystery", 0, 0, 90},
		{"tokens over 500", "gpt-3.5-turbo", 501, 0, 90},
		{"tokens over 1000", "gpt-3.5-turbo", 1001, 0, 80},
		{"tokens over 2000", "gpt-3.5-turbo", 2001, 0, 65},
		{"boundary 500 not penalised", "gpt-3.5-turbo", 500, 0, 95},
		{"time over 10s", "gpt-3.5-turbo", 0, 10001, 90},
		{"time over 30s", "gpt-3.5-turbo", 0, 30001, 85},
		{"time over 60s", "gpt-3.5-turbo", 0, 60001, 75},
		{"worst case", "gpt-4", 5000, 90000, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GreenScore(tt.model, tt.tokens, tt.ms))
		})
	}
}

func TestRecommendations(t *testing.T) {
	t.Run("gpt-4 heavy usage", func(t *testing.T) {
		recs := Recommendations("gpt-4", 25000, 50)
		require.Len(t, recs, 7)
		assert.Contains(t, recs[0], "Switch to gpt-4o-mini")
		assert.Contains(t, recs[2], "Reduce token usage")
		assert.Contains(t, recs[4], "off-peak hours")
		assert.Equal(t, "🌳 Plant 3 tree(s) to offset your AI carbon footprint", recs[6])
	})

	t.Run("mini moderate usage", func(t *testing.T) {
		recs := Recommendations("gpt-4o-mini", 900, 85)
		assert.Equal(t, []string{
			"✅ Good choice! Consider gpt-3.5-turbo for simpler scenarios to save 46% more CO2",
			"👍 Reasonable token usage. Fine-tune prompts to optimize further",
			"🌳 Plant 1 tree(s) to offset your AI carbon footprint",
		}, recs)
	})

	t.Run("turbo light usage", func(t *testing.T) {
		recs := Recommendations("gpt-3.5-turbo", 100, 95)
		assert.Equal(t, "🌟 Excellent! You're using the most carbon-efficient model", recs[0])
		assert.Equal(t, "🎯 Excellent token efficiency!", recs[1])
	})
}

func entries(co2 ...float64) []HistoryEntry {
	out := make([]HistoryEntry, len(co2))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, g := range co2 {
		out[i] = HistoryEntry{
			Timestamp:  base.Add(time.Duration(i) * time.Hour),
			CO2Grams:   g,
			EnergyKWh:  g / 1000,
			ModelUsed:  "gpt-4o-mini",
			GreenScore: 80,
		}
	}
	return out
}

func TestAggregate_SingleEntryRoundTrip(t *testing.T) {
	m := Estimate("gpt-4o-mini", 1200, 12000, 3)
	c := Aggregate([]HistoryEntry{EntryFromMetrics(m, "advanced", time.Now())})

	assert.Equal(t, m.GreenScore, c.AverageGreenScore)
	assert.Equal(t, 1, c.TotalSimulations)
	assert.Equal(t, TrendStable, c.Trend)
	assert.InDelta(t, m.TotalCO2Grams/1000, c.TotalCO2Kg, 1e-12)
}

func TestAggregate_Empty(t *testing.T) {
	c := Aggregate(nil)

	assert.Equal(t, TrendStable, c.Trend)
	assert.Zero(t, c.TotalSimulations)
	assert.Zero(t, c.AverageGreenScore)
	assert.Zero(t, c.ComparisonToTraditional.SavingsPercentage)
}

func TestAggregate_Trend(t *testing.T) {
	tests := []struct {
		name    string
		history []HistoryEntry
		want    Trend
	}{
		{"too short", entries(10, 1, 1), TrendStable},
		{"improving", entries(10, 10, 10, 5, 5, 5, 5, 1, 1, 1), TrendImproving},
		{"worsening", entries(1, 1, 1, 5, 5, 5, 5, 10, 10, 10), TrendWorsening},
		{"within ten percent", entries(10, 10, 10, 10, 10, 10, 10, 10.5, 10.5, 10.5), TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.history).Trend)
		})
	}
}

func TestAggregate_Comparison(t *testing.T) {
	c := Aggregate(entries(1000, 1000))

	assert.Equal(t, 20.0, c.ComparisonToTraditional.TraditionalCO2Kg)
	assert.Equal(t, 2.0, c.ComparisonToTraditional.AICO2Kg)
	assert.InDelta(t, 90.0, c.ComparisonToTraditional.SavingsPercentage, 1e-9)
}

func TestBadges(t *testing.T) {
	c := CumulativeFootprint{
		TotalSimulations:        120,
		AverageGreenScore:       92,
		Trend:                   TrendImproving,
		ComparisonToTraditional: Comparison{SavingsPercentage: 99.99},
	}

	badges := Badges(c)
	require.Len(t, badges, 4)
	assert.Equal(t, "Planet Protector", badges[0].Title)
	assert.Equal(t, "Saved 100.0% CO2 vs traditional meetings", badges[0].Description)
	assert.Equal(t, "Green AI Master", badges[1].Title)
	assert.Equal(t, BadgeTrend, badges[2].Category)
	assert.Equal(t, "Green AI Champion", badges[3].Title)
	assert.Equal(t, "120 sustainable simulations completed", badges[3].Description)
}

func TestBadges_LowerTiers(t *testing.T) {
	c := CumulativeFootprint{
		TotalSimulations:        60,
		AverageGreenScore:       85,
		Trend:                   TrendStable,
		ComparisonToTraditional: Comparison{SavingsPercentage: 96},
	}

	var titles []string
	for _, b := range Badges(c) {
		titles = append(titles, b.Title)
	}
	assert.Equal(t, []string{"Eco Warrior", "Green AI Expert", "Sustainability Leader"}, titles)
}

func TestBadges_None(t *testing.T) {
	assert.Empty(t, Badges(CumulativeFootprint{Trend: TrendStable}))
}

func TestOffsetOptions(t *testing.T) {
	o := OffsetOptions(50000)

	assert.Equal(t, 3, o.TreePlanting.Trees)
	assert.InDelta(t, 4.5, o.TreePlanting.CostUSD, 1e-9)
	assert.InDelta(t, 50/0.475, o.RenewableEnergy.KWh, 1e-9)
	assert.InDelta(t, 50/0.475*0.05, o.RenewableEnergy.CostUSD, 1e-9)
	assert.Equal(t, 50000.0, o.DirectCapture.Grams)
	assert.InDelta(t, 30.0, o.DirectCapture.CostUSD, 1e-9)
}

func TestDetailedRecommendations_Order(t *testing.T) {
	m := Estimate("gpt-4", 1500, 0, 2)
	recs := DetailedRecommendations(m)

	var cats []string
	for _, r := range recs {
		cats = append(cats, r.Category)
	}
	assert.Equal(t, []string{"model-selection", "offset", "optimization", "caching", "timing"}, cats)
	assert.InDelta(t, m.TotalCO2Grams*0.46, recs[0].PotentialSavingsCO2Grams, 1e-12)
	assert.Equal(t, "medium", recs[3].ImplementationDifficulty)
}

func TestDetailedRecommendations_Minimal(t *testing.T) {
	recs := DetailedRecommendations(Estimate("gpt-3.5-turbo", 0, 0, 2))

	require.Len(t, recs, 3)
	assert.Equal(t, "offset", recs[0].Category)
	assert.Equal(t, "Offset 0.50g CO2 through verified carbon credit programs", recs[0].Description)
}
