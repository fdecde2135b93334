package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"legalynx/internal/port"
)

// link is one provider in a chain together with its rate-limit backoff.
type link struct {
	name   string
	engine port.ReasoningEngine

	mu           sync.Mutex
	blockedUntil time.Time
}

func (l *link) blocked(now time.Time) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blockedUntil, now.Before(l.blockedUntil)
}

// backOff never shortens a block another request already recorded.
func (l *link) backOff(until time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if until.After(l.blockedUntil) {
		l.blockedUntil = until
	}
}

// pass summarizes one walk over the chain.
type pass struct {
	lastErr     error
	onlyLimited bool
	soonest     time.Time
}

func (p *pass) limitedUntil(t time.Time) {
	if p.soonest.IsZero() || t.Before(p.soonest) {
		p.soonest = t
	}
}

// FallbackEngine asks each provider in order until one completes. A provider that answered
// with a rate limit is skipped until its Retry-After has passed.
type FallbackEngine struct {
	links []*link
}

// NewFallbackEngine chains engines in order; names[i] labels engines[i] in logs and errors.
func NewFallbackEngine(engines []port.ReasoningEngine, names []string) *FallbackEngine {
	links := make([]*link, len(engines))
	for i, e := range engines {
		links[i] = &link{name: names[i], engine: e}
	}
	return &FallbackEngine{links: links}
}

func (f *FallbackEngine) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	now := time.Now()
	p := pass{onlyLimited: true}

	for _, l := range f.links {
		if until, blocked := l.blocked(now); blocked {
			slog.Info("engine.FallbackEngine: provider backing off",
				"provider", l.name, "until", until.Format(time.RFC3339))
			p.limitedUntil(until)
			continue
		}

		out, err := l.engine.Complete(ctx, input)
		if err == nil {
			return out, nil
		}

		// Once the request deadline has passed the rest of the chain would fail the same way,
		// and the provider must not be backed off for the caller's timeout.
		if ctxErr := ctx.Err(); ctxErr != nil {
			slog.Warn("engine.FallbackEngine: request ended during provider call",
				"provider", l.name, "error", ctxErr)
			return nil, fmt.Errorf("%s: %w", l.name, err)
		}

		slog.Warn("engine.FallbackEngine: provider failed", "provider", l.name, "error", err)
		p.lastErr = err

		var limited *RateLimitError
		if errors.As(err, &limited) {
			until := now.Add(limited.RetryAfter)
			l.backOff(until)
			p.limitedUntil(until)
			continue
		}
		p.onlyLimited = false
	}

	if p.onlyLimited {
		wait := time.Until(p.soonest)
		if wait < time.Second {
			wait = time.Second
		}
		return nil, RateLimited("all", wait, errors.New("every provider is rate limited"))
	}
	return nil, fmt.Errorf("all engines failed: %w", p.lastErr)
}
