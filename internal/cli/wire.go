package cli

import (
	"github.com/MikeSquared-Agency/concord/internal/openai"
	"github.com/MikeSquared-Agency/concord/internal/orchestrator"
	"github.com/MikeSquared-Agency/concord/internal/scoring"
)

func newCompletionClient(app *App, opts ...openai.Option) *openai.Client {
	base := []openai.Option{openai.WithLogger(app.Logger)}
	if app.Config.OpenAIBaseURL != "" {
		base = append(base, openai.WithBaseURL(app.Config.OpenAIBaseURL))
	}
	return openai.NewClient(app.Config.OpenAIAPIKey, append(base, opts...)...)
}

func newOrchestrator(app *App, llm orchestrator.Completer, jitter scoring.Jitter) *orchestrator.Orchestrator {
	return orchestrator.New(llm, scoring.NewEngine(jitter), orchestrator.Config{
		DefaultModel:    app.Config.DefaultModel,
		BasicTimeout:    app.Config.BasicTimeout,
		AdvancedTimeout: app.Config.AdvancedTimeout,
	}, app.Logger)
}
