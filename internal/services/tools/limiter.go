package tools

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"aura/internal/domain"
)

// Limiters holds one token bucket per tool, shared by every investigation.
type Limiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	catalog  map[string]domain.Tool
}

func NewLimiters(catalog []domain.Tool) *Limiters {
	l := &Limiters{
		limiters: make(map[string]*rate.Limiter, len(catalog)),
		catalog:  make(map[string]domain.Tool, len(catalog)),
	}
	for _, t := range catalog {
		l.catalog[t.ID] = t
	}
	return l
}

func (l *Limiters) get(toolID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.limiters[toolID]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Inf, 0)
	if t, ok := l.catalog[toolID]; ok && t.RatePerMinute > 0 {
		burst := t.RatePerMinute / 10
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(float64(t.RatePerMinute)/60.0), burst)
	}
	l.limiters[toolID] = lim
	return lim
}

// Wait blocks until toolID may run or ctx is done.
func (l *Limiters) Wait(ctx context.Context, toolID string) error {
	return l.get(toolID).Wait(ctx)
}
