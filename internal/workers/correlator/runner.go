package correlator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"aura/internal/ports"
)

// Processor correlates one profile and returns the identity it ended up in.
type Processor interface {
	Process(ctx context.Context, profileID int64) (int64, error)
}

// EngineProcessor correlates through the engine and refreshes the risk score
// of the resulting identity.
type EngineProcessor struct {
	Engine ports.Correlation
	Log    *zap.SugaredLogger
}

func (p EngineProcessor) Process(ctx context.Context, profileID int64) (int64, error) {
	id, err := p.Engine.CorrelateProfile(ctx, profileID)
	if err != nil {
		return 0, err
	}
	score, err := p.Engine.CalculateRiskScore(ctx, id)
	if err != nil {
		return id, err
	}
	p.Log.Debugw("profile correlated", "profile_id", profileID, "identity_id", id, "risk_score", score)
	return id, nil
}

// Run claims uncorrelated profiles every pollInterval and hands them to
// concurrency workers. It returns once ctx is done and the workers drained.
func Run(ctx context.Context, queue ports.CorrelationQueue, processor Processor, concurrency int, pollInterval time.Duration, log *zap.SugaredLogger) {
	if concurrency < 1 {
		return
	}
	jobsCh := make(chan ports.CorrelationJob, concurrency)

	go func() {
		defer close(jobsCh)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			for {
				job, found, err := queue.ClaimNext(ctx)
				if err != nil {
					if ctx.Err() == nil {
						log.Warnw("correlation claim failed", "error", err)
					}
					break
				}
				if !found {
					break
				}
				select {
				case jobsCh <- job:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for job := range jobsCh {
				if _, err := ProcessInline(ctx, queue, processor, job.ProfileID); err != nil {
					log.Warnw("correlation failed", "worker", idx, "profile_id", job.ProfileID, "attempt", job.Attempts, "error", err)
				}
			}
		}(i)
	}
	wg.Wait()
}

// ProcessInline correlates a profile synchronously with the same processor the
// workers use and records the failure reason on the queue.
func ProcessInline(ctx context.Context, queue ports.CorrelationQueue, processor Processor, profileID int64) (int64, error) {
	id, err := processor.Process(ctx, profileID)
	if err != nil {
		if mErr := queue.MarkFailed(ctx, profileID, err.Error()); mErr != nil {
			return id, fmt.Errorf("%w (mark failed: %v)", err, mErr)
		}
		return id, err
	}
	return id, nil
}
