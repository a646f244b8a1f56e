package correlation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"aura/internal/domain"
	"aura/internal/ports"
	"aura/internal/services/lexicon"
)

var _ ports.Correlation = (*Engine)(nil)

// Engine folds profiles into unified identities, scores identities and
// detects coordinated networks.
type Engine struct {
	store      ports.CorrelationStore
	weights    Weights
	thresholds Thresholds
	log        *zap.SugaredLogger
	now        func() time.Time
}

func NewEngine(store ports.CorrelationStore, w Weights, th Thresholds, log *zap.SugaredLogger) *Engine {
	return &Engine{store: store, weights: w, thresholds: th, log: log, now: time.Now}
}

// IngestProfile upserts a scraped profile keyed by (platform, username).
func (e *Engine) IngestProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	p.Platform = strings.ToLower(strings.TrimSpace(p.Platform))
	p.Username = strings.TrimPrefix(strings.TrimSpace(p.Username), "@")
	if p.Platform == "" {
		return domain.Profile{}, domain.Invalid("platform", "must not be empty")
	}
	if p.Username == "" {
		return domain.Profile{}, domain.Invalid("username", "must not be empty")
	}
	markers := make(map[string]string, len(p.IdentityMarkers))
	for k, v := range p.IdentityMarkers {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		if k == "email" {
			v = strings.ToLower(v)
		}
		markers[k] = v
	}
	p.IdentityMarkers = markers
	if p.EvidenceHash == "" {
		p.EvidenceHash = EvidenceHash(p)
	}
	if p.CollectedAt.IsZero() {
		p.CollectedAt = e.now()
	}
	p.UnifiedIdentityID = nil
	out, err := e.store.UpsertProfile(ctx, p)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("upsert profile %s/%s: %w", p.Platform, p.Username, err)
	}
	return out, nil
}

func (e *Engine) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	return e.store.GetProfile(ctx, id)
}

// CorrelateProfile attaches the profile to a unified identity and returns its
// id. A merge that races with another writer is retried once.
func (e *Engine) CorrelateProfile(ctx context.Context, profileID int64) (int64, error) {
	id, err := e.correlateOnce(ctx, profileID)
	if errors.Is(err, domain.ErrMergeConflict) {
		e.log.Infow("merge conflict, retrying", "profile_id", profileID)
		id, err = e.correlateOnce(ctx, profileID)
	}
	if err != nil {
		return 0, fmt.Errorf("correlate profile %d: %w", profileID, err)
	}
	return id, nil
}

func (e *Engine) correlateOnce(ctx context.Context, profileID int64) (int64, error) {
	p, err := e.store.GetProfile(ctx, profileID)
	if err != nil {
		return 0, err
	}
	all, err := e.store.ListProfiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}
	byID := make(map[int64]domain.Profile, len(all))
	for _, o := range all {
		byID[o.ID] = o
	}

	high := highConfidence(Signals(p, all, e.thresholds), e.thresholds.HighConfidence)

	links := map[int64]int{}
	if p.UnifiedIdentityID != nil {
		links[*p.UnifiedIdentityID] = 0
	}
	unowned := []int64{}
	seen := map[int64]bool{}
	for _, s := range high {
		o := byID[s.Target]
		if o.UnifiedIdentityID != nil {
			links[*o.UnifiedIdentityID]++
			continue
		}
		if !seen[o.ID] {
			seen[o.ID] = true
			unowned = append(unowned, o.ID)
		}
	}

	if len(links) == 0 {
		members := append([]int64{p.ID}, unowned...)
		id, err := e.store.CreateIdentity(ctx, MasterHash(pick(byID, members)), members)
		if err != nil {
			return 0, err
		}
		e.log.Infow("identity created", "identity_id", id, "profiles", members, "signals", len(high))
		return id, nil
	}

	target := mostConnected(links)
	var sources []int64
	for id := range links {
		if id != target {
			sources = append(sources, id)
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	attach := unowned
	if p.UnifiedIdentityID == nil || *p.UnifiedIdentityID != target {
		attach = append([]int64{p.ID}, unowned...)
	}
	if len(sources) == 0 && len(attach) == 0 {
		return target, nil
	}

	var members []domain.Profile
	involved := map[int64]bool{target: true}
	for _, s := range sources {
		involved[s] = true
	}
	for _, o := range all {
		if o.UnifiedIdentityID != nil && involved[*o.UnifiedIdentityID] {
			members = append(members, o)
		}
	}
	members = append(members, pick(byID, attach)...)

	plan := domain.MergePlan{Target: target, Sources: sources, Attach: attach, MasterHash: MasterHash(members)}
	if err := e.store.ApplyMerge(ctx, plan); err != nil {
		return 0, err
	}
	e.log.Infow("identity merged", "identity_id", target, "merged", sources, "attached", attach)
	return target, nil
}

func mostConnected(links map[int64]int) int64 {
	best, bestN := int64(0), -1
	for id, n := range links {
		if n > bestN || (n == bestN && id < best) {
			best, bestN = id, n
		}
	}
	return best
}

func pick(byID map[int64]domain.Profile, ids []int64) []domain.Profile {
	out := make([]domain.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// CalculateRiskScore recomputes the identity's risk from its members, alerts
// and comments and caches it.
func (e *Engine) CalculateRiskScore(ctx context.Context, identityID int64) (float64, error) {
	in, err := e.store.RiskInputs(ctx, identityID, e.thresholds.ToxicAbove)
	if err != nil {
		return 0, fmt.Errorf("risk inputs for identity %d: %w", identityID, err)
	}
	score := RiskScore(in, e.weights)
	if err := e.store.SetRiskScore(ctx, identityID, score); err != nil {
		return 0, fmt.Errorf("store risk score for identity %d: %w", identityID, err)
	}
	return score, nil
}

func (e *Engine) DetectCoordinatedNetworks(ctx context.Context) ([]domain.CoordinatedNetwork, error) {
	comments, err := e.store.CommentsSince(ctx, e.now().Add(-e.thresholds.NetworkLookback))
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	out := TemporalNetworks(comments, e.thresholds.ProximityWindow, e.thresholds.MinTemporal)
	out = append(out, ContentNetworks(comments, e.thresholds.MinContent)...)
	if out == nil {
		out = []domain.CoordinatedNetwork{}
	}
	return out, nil
}

func (e *Engine) GetIdentity(ctx context.Context, id int64) (domain.IdentityDetail, error) {
	return e.store.GetIdentity(ctx, id)
}

func (e *Engine) ListIdentities(ctx context.Context, q domain.IdentityQuery) ([]domain.IdentitySummary, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 500 {
		q.Limit = 500
	}
	q.Platform = strings.ToLower(q.Platform)
	return e.store.ListIdentities(ctx, q)
}

func (e *Engine) AddAlert(ctx context.Context, a domain.Alert) (domain.Alert, error) {
	a.Severity = domain.Severity(strings.ToLower(string(a.Severity)))
	if a.Severity.Rank() == 0 {
		return domain.Alert{}, domain.Invalid("severity", "must be one of low, medium, high, critical")
	}
	if strings.TrimSpace(a.Title) == "" {
		return domain.Alert{}, domain.Invalid("title", "must not be empty")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = e.now()
	}
	return e.store.AddAlert(ctx, a)
}

// AddComment stores a comment. A negative toxicity score means the comment
// arrived unscored; the lexical pre-filter scores it instead.
func (e *Engine) AddComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	if strings.TrimSpace(c.Content) == "" {
		return domain.Comment{}, domain.Invalid("content", "must not be empty")
	}
	if c.ToxicityScore < 0 {
		c.ToxicityScore = lexicon.Score(c.Content)
	}
	if c.ToxicityScore > 1 {
		c.ToxicityScore = 1
	}
	if c.ContentHash == "" {
		c.ContentHash = ContentHash(c.Content)
	}
	if c.PostedAt.IsZero() {
		c.PostedAt = e.now()
	}
	return e.store.AddComment(ctx, c)
}
