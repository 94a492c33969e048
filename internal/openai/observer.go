package openai

import "time"

// Outcome labels how a Complete call was satisfied.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeFallback Outcome = "fallback"
	OutcomeCache    Outcome = "cache"
)

// CallEvent describes one finished Complete call.
type CallEvent struct {
	Kind      string
	Mode      string
	Model     string
	Outcome   Outcome
	ErrorCode string
	Latency   time.Duration
	Tokens    int
}

// Observer receives an event after every Complete call.
type Observer interface {
	OnCallComplete(CallEvent)
}

type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
