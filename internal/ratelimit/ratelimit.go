package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key fits in its budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Policy is a request budget: Limit requests per Window.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Factory builds one Limiter per policy so every route keeps its own counters.
type Factory interface {
	New(policy Policy) Limiter
}

// MemoryLimiter keeps a token bucket per key in process memory.
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter allows at most policy.Limit requests in any span of
// policy.Window. The bucket holds policy.Limit tokens and regains one per
// window, so a drained client waits a full window for each extra request.
func NewMemoryLimiter(policy Policy) *MemoryLimiter {
	return &MemoryLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Every(policy.Window),
		burst:    policy.Limit,
		idleTTL:  policy.Window,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictIdle(now)

	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1), nil
}

// evictIdle drops buckets untouched for a whole window. The next request
// starts a full bucket, which cannot share a window with earlier requests.
// Callers hold mu.
func (l *MemoryLimiter) evictIdle(now time.Time) {
	for key, e := range l.limiters {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.limiters, key)
		}
	}
}

// MemoryFactory creates MemoryLimiters.
type MemoryFactory struct{}

func (MemoryFactory) New(policy Policy) Limiter {
	return NewMemoryLimiter(policy)
}
