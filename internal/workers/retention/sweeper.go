package retention

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper drops investigations older than maxAge and reports how many went.
type Sweeper interface {
	Sweep(now time.Time, maxAge time.Duration) int
}

// Run sweeps the store every interval until ctx is done.
func Run(ctx context.Context, store Sweeper, maxAge, interval time.Duration, log *zap.SugaredLogger) {
	if interval <= 0 || maxAge <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := store.Sweep(now, maxAge); n > 0 {
				log.Infow("investigations swept", "removed", n, "max_age", maxAge)
			}
		}
	}
}
