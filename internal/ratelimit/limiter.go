// Package ratelimit implements the process-wide sliding-window limiter
// on the embedding/completion interface described in spec.md §5: a
// sliding 60s window of 3000 calls, excess callers sleep until the
// window opens. golang.org/x/time/rate's token bucket approximates a
// sliding window by refilling continuously rather than in discrete
// buckets, which is the behavior spec.md asks for ("sleep until the
// window opens", not "reject").
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
}

// New builds a limiter allowing maxCalls over windowSeconds, refilled
// continuously (maxCalls/windowSeconds tokens per second), with burst
// equal to the full window so a cold start doesn't immediately stall.
func New(windowSeconds, maxCalls int) *Limiter {
	if windowSeconds <= 0 {
		windowSeconds = 60
	}
	if maxCalls <= 0 {
		maxCalls = 3000
	}
	rps := float64(maxCalls) / float64(windowSeconds)
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), maxCalls)}
}

// Wait blocks until a call is permitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
