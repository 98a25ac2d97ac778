package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter is a per key token bucket; a non positive rate disables limiting
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewLimiter creates a limiter allowing rps per key with burst
func NewLimiter(rps float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Enabled reports whether Wait can block
func (l *Limiter) Enabled() bool { return l != nil && l.rps > 0 }

// Wait blocks until key may proceed or ctx is done
func (l *Limiter) Wait(ctx context.Context, key string) error {
	if !l.Enabled() {
		return nil
	}
	return l.get(key).Wait(ctx)
}

// Allow reports whether key may proceed now, consuming a token if so
func (l *Limiter) Allow(key string) bool {
	if !l.Enabled() {
		return true
	}
	return l.get(key).Allow()
}

// TODO: evict idle buckets; per client keys grow with distinct remote hosts
func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[key] = lim
	}
	return lim
}
