package orchestrator

import (
	"time"

	"github.com/MikeSquared-Agency/concord/internal/negotiation"
	"github.com/MikeSquared-Agency/concord/internal/openai"
	"github.com/MikeSquared-Agency/concord/internal/prompts"
)

// Config holds generation defaults.
type Config struct {
	DefaultModel    string
	BasicTimeout    time.Duration
	AdvancedTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.DefaultModel == "" {
		c.DefaultModel = string(negotiation.DefaultModel)
	}
	if c.BasicTimeout <= 0 {
		c.BasicTimeout = 30 * time.Second
	}
	if c.AdvancedTimeout <= 0 {
		c.AdvancedTimeout = 60 * time.Second
	}
	return c
}

// analysisSettings are fixed per analysis kind and ignore aiConfig.
var analysisSettings = map[negotiation.Kind]struct {
	temperature float64
	maxTokens   int
}{
	negotiation.KindEmpathy:   {0.8, 400},
	negotiation.KindSentiment: {0.6, 300},
	negotiation.KindPower:     {0.7, 400},
	negotiation.KindCultural:  {0.7, 400},
}

func (o *Orchestrator) basicRequest(kind negotiation.Kind, p prompts.Prompt) openai.Request {
	return openai.Request{
		Kind:        kind,
		Mode:        negotiation.ModeBasic,
		Model:       o.cfg.DefaultModel,
		Temperature: openai.DefaultTemperature,
		MaxTokens:   openai.BasicMaxTokens,
		Timeout:     o.cfg.BasicTimeout,
		System:      p.System,
		User:        p.User,
	}
}

// advancedRequest configures compromise and risk calls from aiConfig.
func (o *Orchestrator) advancedRequest(kind negotiation.Kind, req *negotiation.AdvancedRequest, p prompts.Prompt) openai.Request {
	return openai.Request{
		Kind:        kind,
		Mode:        negotiation.ModeAdvanced,
		Model:       openai.Model(req.AIConfig, o.cfg.DefaultModel),
		Temperature: openai.Temperature(req.AIConfig),
		MaxTokens:   openai.MaxTokens(req.AIConfig),
		Timeout:     o.cfg.AdvancedTimeout,
		System:      p.System,
		User:        p.User,
	}
}

func (o *Orchestrator) analysisRequest(kind negotiation.Kind, p prompts.Prompt) openai.Request {
	s := analysisSettings[kind]
	return openai.Request{
		Kind:        kind,
		Mode:        negotiation.ModeAdvanced,
		Model:       string(negotiation.DefaultModel),
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Timeout:     o.cfg.AdvancedTimeout,
		System:      p.System,
		User:        p.User,
	}
}
