package ports

import (
	"context"

	"aura/internal/domain"
)

// Observer is notified of an investigation id before any of its events are published.
type Observer interface {
	Follow(investigationID string)
}

type StartRequest struct {
	Target     string
	TargetType string
	Tools      []string
	Options    map[string]any
	Observer   Observer
}

type ExecuteRequest struct {
	ToolID string
	Target string
	Params map[string]any
}

// Investigations starts, tracks and stops OSINT investigations.
type Investigations interface {
	Start(ctx context.Context, req StartRequest) (domain.Started, error)
	Stop(ctx context.Context, id string) (domain.StatusReport, error)
	Status(ctx context.Context, id string) (domain.StatusReport, error)
	Results(ctx context.Context, id string) (domain.Investigation, error)
	Wait(ctx context.Context, id string) error
	ExecuteTool(ctx context.Context, req ExecuteRequest) (domain.ToolResult, error)
}

// Subscription receives the events of the investigations it follows.
type Subscription interface {
	Events() <-chan domain.Event
	Follow(investigationID string)
	Unfollow(investigationID string)
	Close()
}

type EventSource interface {
	Subscribe(buffer int) Subscription
}

// ToolCatalog exposes the static tool registry.
type ToolCatalog interface {
	Get(id string) (domain.Tool, bool)
	List() []domain.Tool
	ByCategory(category domain.ToolCategory) []domain.Tool
	Categories() []domain.ToolCategory
}

// Correlation folds profiles into unified identities and scores them.
type Correlation interface {
	IngestProfile(ctx context.Context, p domain.Profile) (domain.Profile, error)
	GetProfile(ctx context.Context, id int64) (domain.Profile, error)
	CorrelateProfile(ctx context.Context, profileID int64) (int64, error)
	CalculateRiskScore(ctx context.Context, identityID int64) (float64, error)
	DetectCoordinatedNetworks(ctx context.Context) ([]domain.CoordinatedNetwork, error)
	GetIdentity(ctx context.Context, id int64) (domain.IdentityDetail, error)
	ListIdentities(ctx context.Context, q domain.IdentityQuery) ([]domain.IdentitySummary, error)
	AddAlert(ctx context.Context, a domain.Alert) (domain.Alert, error)
	AddComment(ctx context.Context, c domain.Comment) (domain.Comment, error)
}

// FindingsIngestor receives every investigation that completed.
type FindingsIngestor interface {
	Ingest(ctx context.Context, inv domain.Investigation) error
}
