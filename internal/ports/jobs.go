package ports

import "context"

type CorrelationJob struct {
	ProfileID int64
	Attempts  int
}

// CorrelationQueue hands out profiles that do not belong to an identity yet.
type CorrelationQueue interface {
	// ClaimNext claims one uncorrelated profile and bumps its attempt counter.
	ClaimNext(ctx context.Context) (job CorrelationJob, found bool, err error)
	MarkFailed(ctx context.Context, profileID int64, reason string) error
}
