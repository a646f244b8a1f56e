package ports

import (
	"context"
	"time"

	"aura/internal/domain"
)

// ProfileRepository stores scraped platform profiles, keyed by (platform, username).
type ProfileRepository interface {
	UpsertProfile(ctx context.Context, p domain.Profile) (domain.Profile, error)
	GetProfile(ctx context.Context, id int64) (domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
}

// IdentityRepository manages unified identities and their membership.
type IdentityRepository interface {
	// CreateIdentity inserts an identity owning members. Members owned by
	// another identity yield domain.ErrMergeConflict.
	CreateIdentity(ctx context.Context, masterHash string, members []int64) (int64, error)
	// ApplyMerge folds plan.Sources into plan.Target in one transaction.
	ApplyMerge(ctx context.Context, plan domain.MergePlan) error
	GetIdentity(ctx context.Context, id int64) (domain.IdentityDetail, error)
	ListIdentities(ctx context.Context, q domain.IdentityQuery) ([]domain.IdentitySummary, error)
	RiskInputs(ctx context.Context, id int64, toxicAbove float64) (domain.RiskInputs, error)
	SetRiskScore(ctx context.Context, id int64, score float64) error
}

// ActivityRepository stores alerts and comments attached to identities.
type ActivityRepository interface {
	AddAlert(ctx context.Context, a domain.Alert) (domain.Alert, error)
	AddComment(ctx context.Context, c domain.Comment) (domain.Comment, error)
	CommentsSince(ctx context.Context, since time.Time) ([]domain.Comment, error)
}

// TargetRepository records investigated targets.
type TargetRepository interface {
	RecordInvestigation(ctx context.Context, t domain.Target) error
	GetTarget(ctx context.Context, value string, tt domain.TargetType) (domain.Target, error)
}

// CorrelationStore is the full persistence surface; both the postgres and
// sqlite adapters implement it.
type CorrelationStore interface {
	ProfileRepository
	IdentityRepository
	ActivityRepository
	TargetRepository
	CorrelationQueue
	Ping(ctx context.Context) error
	Close() error
}
