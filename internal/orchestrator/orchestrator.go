// Package orchestrator runs a simulation end to end: prompts, concurrent
// generation, parsing, scoring and carbon accounting.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/concord/internal/carbon"
	"github.com/MikeSquared-Agency/concord/internal/fallback"
	"github.com/MikeSquared-Agency/concord/internal/negotiation"
	"github.com/MikeSquared-Agency/concord/internal/openai"
	"github.com/MikeSquared-Agency/concord/internal/parser"
	"github.com/MikeSquared-Agency/concord/internal/prompts"
	"github.com/MikeSquared-Agency/concord/internal/scoring"
)

// Completer performs one generation call and always yields usable text.
type Completer interface {
	Complete(ctx context.Context, req openai.Request) openai.Result
}

type Orchestrator struct {
	llm    Completer
	engine *scoring.Engine
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

func New(llm Completer, engine *scoring.Engine, cfg Config, logger *slog.Logger) *Orchestrator {
	if engine == nil {
		engine = scoring.NewEngine(nil)
	}
	return &Orchestrator{
		llm:    llm,
		engine: engine,
		cfg:    cfg.withDefaults(),
		logger: logger,
		now:    time.Now,
	}
}

// Stats summarises the generation calls behind one simulation.
type Stats struct {
	Mode      negotiation.Mode
	Model     string
	Parties   int
	Calls     int
	Fallbacks int
	CacheHits int
	Tokens    int
	Duration  time.Duration
}

// tally accumulates Stats from concurrent calls. byModel splits Tokens by
// the model each call ran on.
type tally struct {
	mu sync.Mutex
	Stats
	byModel map[string]int
}

func newTally(s Stats) *tally {
	return &tally{Stats: s, byModel: make(map[string]int)}
}

// goSafe runs fn on g and reports a panic in fn as g's error.
func goSafe(g *errgroup.Group, name string, fn func()) {
	g.Go(func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("%s: panic: %v", name, p)
			}
		}()
		fn()
		return nil
	})
}

// call runs one generation. In-flight calls are bounded by their own timeout
// only; a caller going away does not abort them.
func (o *Orchestrator) call(ctx context.Context, t *tally, req openai.Request) string {
	res := o.llm.Complete(context.WithoutCancel(ctx), req)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.Calls++
	if res.Fallback {
		t.Fallbacks++
	}
	if res.Cached {
		t.CacheHits++
	}
	t.Tokens += res.Usage.TotalTokens
	t.byModel[req.Model] += res.Usage.TotalTokens
	return res.Text
}

// Simulate runs a basic two-party simulation.
func (o *Orchestrator) Simulate(ctx context.Context, req *negotiation.BasicRequest) (*negotiation.BasicResponse, Stats, error) {
	if req == nil {
		return nil, Stats{}, fmt.Errorf("%w: nil request", negotiation.ErrInvalidRequest)
	}
	start := o.now()
	t := newTally(Stats{Mode: negotiation.ModeBasic, Model: o.cfg.DefaultModel, Parties: 2})

	r := *req
	r.ESG = req.ESG.Clamped()

	o.logger.Info("starting simulation", "mode", negotiation.ModeBasic)

	texts := make([]string, len(negotiation.CompromiseKinds))
	var g errgroup.Group
	for i, kind := range negotiation.CompromiseKinds {
		goSafe(&g, string(kind), func() {
			texts[i] = o.call(ctx, t, o.basicRequest(kind, prompts.Basic(kind, &r)))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, fmt.Errorf("generate compromises: %w", err)
	}

	resp := &negotiation.BasicResponse{
		EconomicCompromise: texts[0],
		SocialCompromise:   texts[1],
		BalancedCompromise: texts[2],
		Scores:             scoring.Basic(r.ESG),
	}

	t.Duration = o.now().Sub(start)
	o.logger.Info("simulation complete",
		"mode", negotiation.ModeBasic,
		"calls", t.Calls,
		"fallbacks", t.Fallbacks,
		"duration_ms", t.Duration.Milliseconds(),
	)
	return resp, t.Stats, nil
}

// SimulateAdvanced runs a multi-party simulation with the optional analyses
// selected by the request flags. Analyses run concurrently with the
// compromises; sentiment waits for the balanced compromise it rates.
func (o *Orchestrator) SimulateAdvanced(ctx context.Context, req *negotiation.AdvancedRequest) (*negotiation.AdvancedResponse, Stats, error) {
	if req == nil {
		return nil, Stats{}, fmt.Errorf("%w: nil request", negotiation.ErrInvalidRequest)
	}
	if n := len(req.Parties); n < negotiation.MinParties || n > negotiation.MaxParties {
		return nil, Stats{}, fmt.Errorf("%w: %d parties", negotiation.ErrInvalidRequest, n)
	}

	start := o.now()
	r := req.Normalize()
	model := openai.Model(r.AIConfig, o.cfg.DefaultModel)
	t := newTally(Stats{Mode: negotiation.ModeAdvanced, Model: model, Parties: len(r.Parties)})

	o.logger.Info("starting simulation",
		"mode", negotiation.ModeAdvanced,
		"parties", len(r.Parties),
		"round", r.Round(),
	)

	var (
		texts     = make([]string, len(negotiation.CompromiseKinds))
		risk      *negotiation.RiskAssessment
		empathy   []negotiation.EmpathyInsight
		sentiment *negotiation.SentimentAnalysis
		power     *negotiation.PowerBalanceReport
		cultural  *negotiation.CulturalBridge
		g         errgroup.Group
	)

	for i, kind := range negotiation.CompromiseKinds {
		goSafe(&g, string(kind), func() {
			texts[i] = o.call(ctx, t, o.advancedRequest(kind, r, prompts.Advanced(kind, r)))
			if kind == negotiation.KindBalanced && r.IncludeSentimentAnalysis {
				sentiment = o.sentiment(ctx, t, texts[i], r)
			}
		})
	}

	if r.WantsRisk() {
		goSafe(&g, string(negotiation.KindRisk), func() {
			risk = o.risk(ctx, t, r)
		})
	}
	if r.IncludeEmpathyMapping {
		goSafe(&g, string(negotiation.KindEmpathy), func() {
			empathy = o.empathy(ctx, t, r)
		})
	}
	if r.IncludePowerBalancing {
		goSafe(&g, string(negotiation.KindPower), func() {
			power = o.power(ctx, t, r)
		})
	}
	if r.IncludeCulturalBridging {
		goSafe(&g, string(negotiation.KindCultural), func() {
			cultural = o.cultural(ctx, t, r)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Stats{}, fmt.Errorf("generate analyses: %w", err)
	}

	resp := &negotiation.AdvancedResponse{
		EconomicCompromise:     texts[0],
		SocialCompromise:       texts[1],
		BalancedCompromise:     texts[2],
		Scores:                 o.engine.Advanced(r),
		RiskAssessment:         risk,
		CustomMetricScores:     o.engine.CustomMetrics(r),
		ImplementationPhases:   scoring.ImplementationPhases(r.ESG),
		AlternativeOptions:     scoring.AlternativeOptions(r, risk),
		ImprovementSuggestions: scoring.ImprovementSuggestions(r),
		EmpathyInsights:        empathy,
		SentimentAnalysis:      sentiment,
		PowerBalanceReport:     power,
		CulturalBridge:         cultural,
	}
	if r.NegotiationRound > 0 {
		resp.NegotiationRoundNumber = r.NegotiationRound
	}

	t.Duration = o.now().Sub(start)
	if r.TrackCarbon {
		m := carbon.EstimateByModel(model, t.byModel, t.Duration.Milliseconds(), len(r.Parties))
		resp.CarbonFootprint = &m
	}

	o.logger.Info("simulation complete",
		"mode", negotiation.ModeAdvanced,
		"calls", t.Calls,
		"fallbacks", t.Fallbacks,
		"tokens", t.Tokens,
		"duration_ms", t.Duration.Milliseconds(),
	)
	return resp, t.Stats, nil
}

func (o *Orchestrator) risk(ctx context.Context, t *tally, r *negotiation.AdvancedRequest) *negotiation.RiskAssessment {
	text := o.call(ctx, t, o.advancedRequest(negotiation.KindRisk, r, prompts.Risk(r)))
	ra, err := parser.Risk(text)
	if err != nil {
		o.logger.Warn("risk assessment unparseable, using fallback", "error", err)
	}
	return &ra
}

// empathy analyses each party in order. Parties without a profile get a
// placeholder and no call.
func (o *Orchestrator) empathy(ctx context.Context, t *tally, r *negotiation.AdvancedRequest) []negotiation.EmpathyInsight {
	out := make([]negotiation.EmpathyInsight, 0, len(r.Parties))
	for _, p := range r.Parties {
		if p.EmpathyProfile == nil {
			out = append(out, fallback.Unprofiled(p.Name))
			continue
		}
		text := o.call(ctx, t, o.analysisRequest(negotiation.KindEmpathy, prompts.Empathy(p)))
		insight, err := parser.Empathy(text, p.Name)
		if err != nil {
			o.logger.Warn("empathy insight unparseable, using fallback", "party", p.Name, "error", err)
		}
		out = append(out, insight)
	}
	return out
}

func (o *Orchestrator) sentiment(ctx context.Context, t *tally, proposal string, r *negotiation.AdvancedRequest) *negotiation.SentimentAnalysis {
	text := o.call(ctx, t, o.analysisRequest(negotiation.KindSentiment, prompts.Sentiment(proposal, r)))
	s, err := parser.Sentiment(text)
	if err != nil {
		o.logger.Warn("sentiment analysis unparseable, using fallback", "error", err)
	}
	return &s
}

func (o *Orchestrator) power(ctx context.Context, t *tally, r *negotiation.AdvancedRequest) *negotiation.PowerBalanceReport {
	text := o.call(ctx, t, o.analysisRequest(negotiation.KindPower, prompts.Power(r)))
	p, err := parser.Power(text)
	if err != nil {
		o.logger.Warn("power balance unparseable, using fallback", "error", err)
	}
	return &p
}

func (o *Orchestrator) cultural(ctx context.Context, t *tally, r *negotiation.AdvancedRequest) *negotiation.CulturalBridge {
	text := o.call(ctx, t, o.analysisRequest(negotiation.KindCultural, prompts.Cultural(r)))
	c, err := parser.Cultural(text)
	if err != nil {
		o.logger.Warn("cultural bridge unparseable, using fallback", "error", err)
	}
	return &c
}
