package openai

import "github.com/MikeSquared-Agency/concord/internal/negotiation"

const (
	DefaultTemperature       = 0.7
	BasicMaxTokens           = 300
	AdvancedDefaultMaxTokens = 500
	maxCreativityTemperature = 1.5
)

// Temperature resolves the sampling temperature for an advanced request: an
// explicit temperature clamped to [0,2], else creativity mapped onto
// [0,1.5], else 0.7.
func Temperature(cfg *negotiation.AIConfig) float64 {
	if cfg == nil {
		return DefaultTemperature
	}
	if cfg.Temperature != nil {
		return min(max(*cfg.Temperature, 0), 2)
	}
	if cfg.Creativity != nil {
		return *cfg.Creativity / 100 * maxCreativityTemperature
	}
	return DefaultTemperature
}

// Model returns the configured model or fallbackModel when unset.
func Model(cfg *negotiation.AIConfig, fallbackModel string) string {
	if cfg != nil && cfg.Model != "" {
		return string(cfg.Model)
	}
	return fallbackModel
}

// MaxTokens returns the configured token cap or the advanced default.
func MaxTokens(cfg *negotiation.AIConfig) int {
	if cfg != nil && cfg.MaxTokens > 0 {
		return cfg.MaxTokens
	}
	return AdvancedDefaultMaxTokens
}
