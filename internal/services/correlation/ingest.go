package correlation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"aura/internal/domain"
	"aura/internal/ports"
)

var _ ports.FindingsIngestor = (*Ingestor)(nil)

// Ingestor turns the results of a completed investigation into stored
// profiles and records the investigated target. New profiles are picked up
// by the correlation queue.
type Ingestor struct {
	engine  *Engine
	targets ports.TargetRepository
	log     *zap.SugaredLogger
}

func NewIngestor(engine *Engine, targets ports.TargetRepository, log *zap.SugaredLogger) *Ingestor {
	return &Ingestor{engine: engine, targets: targets, log: log}
}

func (i *Ingestor) Ingest(ctx context.Context, inv domain.Investigation) error {
	var errs []error
	profiles := 0
	for _, run := range inv.Runs {
		if run.Status != domain.RunSucceeded || run.Result == nil {
			continue
		}
		for _, p := range profilesFrom(inv, run.Result.Data) {
			if _, err := i.engine.IngestProfile(ctx, p); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", run.ToolID, err))
				continue
			}
			profiles++
		}
	}

	t := domain.Target{
		Value:               inv.Target,
		Type:                inv.TargetType,
		LastInvestigationID: inv.ID,
	}
	if inv.Summary != nil {
		t.LastFindings = inv.Summary.TotalFindings
		t.LastConfidence = inv.Summary.OverallConfidence
	}
	if inv.CompletedAt != nil {
		t.LastSeen = *inv.CompletedAt
	}
	if err := i.targets.RecordInvestigation(ctx, t); err != nil {
		errs = append(errs, fmt.Errorf("record target: %w", err))
	}
	i.log.Infow("investigation ingested", "investigation_id", inv.ID, "profiles", profiles, "errors", len(errs))
	return errors.Join(errs...)
}

func profilesFrom(inv domain.Investigation, data domain.ToolData) []domain.Profile {
	var out []domain.Profile
	for _, fp := range domain.FoundProfiles(data) {
		markers := map[string]string{}
		for k, v := range fp.Markers {
			markers[k] = v
		}
		if fp.URL != "" {
			markers["url"] = fp.URL
		}
		if inv.TargetType == domain.TargetEmail {
			markers["email"] = inv.Target
		}
		out = append(out, domain.Profile{Platform: fp.Platform, Username: fp.Username, Bio: fp.Bio, IdentityMarkers: markers})
	}
	if d, ok := data.(domain.EmailData); ok {
		email := d.Email
		if email == "" {
			email = inv.Target
		}
		for _, site := range d.RegisteredSites {
			site = strings.TrimSpace(site)
			if site == "" {
				continue
			}
			out = append(out, domain.Profile{Platform: site, Username: email, IdentityMarkers: map[string]string{"email": email}})
		}
	}
	return out
}
