package openai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MikeSquared-Agency/concord/internal/fallback"
)

// Cache stores successful completion texts by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Result is the outcome of Complete. Text is always usable. When Fallback is
// set, Text is the fixed substitute for the kind and Err holds the cause.
type Result struct {
	Text     string
	Usage    Usage
	Fallback bool
	Cached   bool
	Err      error
}

// Complete runs req and substitutes the kind's fallback on any failure. It
// never returns an empty Text.
func (c *Client) Complete(ctx context.Context, req Request) Result {
	start := time.Now()
	key := CacheKey(req)

	if c.cache != nil && c.HasCredential() {
		if text, ok := c.cache.Get(ctx, key); ok && text != "" {
			c.observe(req, OutcomeCache, nil, start, 0)
			return Result{Text: text, Cached: true}
		}
	}

	text, usage, err := c.Chat(ctx, req)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			c.logger.Debug("no api key, using fallback", "kind", req.Kind, "mode", req.Mode)
		} else {
			c.logger.Warn("completion failed, using fallback", "kind", req.Kind, "mode", req.Mode, "error", err)
		}
		c.observe(req, OutcomeFallback, err, start, 0)
		return Result{Text: fallback.Text(req.Kind, req.Mode), Fallback: true, Err: err}
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, text)
	}
	c.observe(req, OutcomeOK, nil, start, usage.TotalTokens)
	return Result{Text: text, Usage: usage}
}

func (c *Client) observe(req Request, outcome Outcome, err error, start time.Time, tokens int) {
	c.observer.OnCallComplete(CallEvent{
		Kind:      string(req.Kind),
		Mode:      string(req.Mode),
		Model:     req.Model,
		Outcome:   outcome,
		ErrorCode: ErrorCode(err),
		Latency:   time.Since(start),
		Tokens:    tokens,
	})
}

// CacheKey derives a stable key from everything that shapes the reply.
func CacheKey(req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%s\x00%s",
		req.Model, strconv.FormatFloat(req.Temperature, 'g', -1, 64), req.MaxTokens, req.System, req.User)
	return "concord:completion:" + hex.EncodeToString(h.Sum(nil))
}
