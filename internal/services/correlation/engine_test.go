package correlation

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aura/internal/adapters/sqlite"
	"aura/internal/domain"
)

func newTestEngine(t *testing.T) (*Engine, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "aura.db"), zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEngine(db, DefaultWeights(), DefaultThresholds(), zap.NewNop().Sugar()), db
}

func ingest(t *testing.T, e *Engine, platform, username, bio string, markers map[string]string) domain.Profile {
	t.Helper()
	p, err := e.IngestProfile(context.Background(), domain.Profile{Platform: platform, Username: username, Bio: bio, IdentityMarkers: markers})
	require.NoError(t, err)
	return p
}

func owner(t *testing.T, e *Engine, id int64) int64 {
	t.Helper()
	p, err := e.GetProfile(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p.UnifiedIdentityID, "profile %d has no identity", id)
	return *p.UnifiedIdentityID
}

func TestCorrelateWithoutSignalsCreatesIdentity(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	p := ingest(t, e, "twitter", "loner", "", nil)

	id, err := e.CorrelateProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, id, owner(t, e, p.ID))

	again, err := e.CorrelateProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	detail, err := e.GetIdentity(ctx, id)
	require.NoError(t, err)
	assert.Len(t, detail.Profiles, 1)
	assert.Len(t, detail.MasterHash, 64)
}

func TestCorrelateEmailMatchJoinsIdentity(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	a := ingest(t, e, "twitter", "shadow", "", map[string]string{"email": "Shadow@Example.com"})
	b := ingest(t, e, "reddit", "sh4dow", "", map[string]string{"email": "shadow@example.com"})
	c := ingest(t, e, "github", "unrelated", "", nil)

	first, err := e.CorrelateProfile(ctx, a.ID)
	require.NoError(t, err)
	// b was an unowned match, so it joined a's new identity
	assert.Equal(t, first, owner(t, e, b.ID))

	second, err := e.CorrelateProfile(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := e.CorrelateProfile(ctx, c.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestCorrelateMergesIdentities(t *testing.T) {
	e, db := newTestEngine(t)
	ctx := context.Background()
	bio := "Security researcher from Lyon. Coffee, CTFs and open source."
	a := ingest(t, e, "twitter", "alpha", bio, nil)
	b := ingest(t, e, "reddit", "beta", "", map[string]string{"email": "ab@example.com"})
	x, err := db.CreateIdentity(ctx, "hx", []int64{a.ID})
	require.NoError(t, err)
	y, err := db.CreateIdentity(ctx, "hy", []int64{b.ID})
	require.NoError(t, err)
	_, err = e.AddAlert(ctx, domain.Alert{UnifiedIdentityID: y, Severity: "critical", Title: "threats"})
	require.NoError(t, err)

	// bridges both: same bio as a, same email as b
	bridge := ingest(t, e, "github", "gamma", bio, map[string]string{"email": "ab@example.com"})
	id, err := e.CorrelateProfile(ctx, bridge.ID)
	require.NoError(t, err)
	assert.Equal(t, x, id, "tie resolves to the lowest identity id")

	for _, p := range []domain.Profile{a, b, bridge} {
		assert.Equal(t, x, owner(t, e, p.ID))
	}
	_, err = e.GetIdentity(ctx, y)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// merging again changes nothing
	again, err := e.CorrelateProfile(ctx, bridge.ID)
	require.NoError(t, err)
	assert.Equal(t, x, again)

	detail, err := e.GetIdentity(ctx, x)
	require.NoError(t, err)
	assert.Len(t, detail.Profiles, 3)

	score, err := e.CalculateRiskScore(ctx, x)
	require.NoError(t, err)
	// 3 platforms 0.3 + 1 alert 0.05 + critical 0.5
	assert.InDelta(t, 0.85, score, 1e-9)
}

// racingStore fails the first n identity writes with a merge conflict, as if
// another writer had changed ownership between read and write.
type racingStore struct {
	*sqlite.DB
	conflicts int
	creates   int
	merges    int
}

func (s *racingStore) CreateIdentity(ctx context.Context, masterHash string, members []int64) (int64, error) {
	s.creates++
	if s.creates+s.merges <= s.conflicts {
		return 0, domain.ErrMergeConflict
	}
	return s.DB.CreateIdentity(ctx, masterHash, members)
}

func (s *racingStore) ApplyMerge(ctx context.Context, plan domain.MergePlan) error {
	s.merges++
	if s.creates+s.merges <= s.conflicts {
		return domain.ErrMergeConflict
	}
	return s.DB.ApplyMerge(ctx, plan)
}

func newRacingEngine(t *testing.T, conflicts int) (*Engine, *racingStore) {
	t.Helper()
	_, db := newTestEngine(t)
	store := &racingStore{DB: db, conflicts: conflicts}
	return NewEngine(store, DefaultWeights(), DefaultThresholds(), zap.NewNop().Sugar()), store
}

func TestCorrelateRetriesConflictOnce(t *testing.T) {
	e, store := newRacingEngine(t, 1)
	ctx := context.Background()
	p := ingest(t, e, "twitter", "loner", "", nil)

	id, err := e.CorrelateProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, store.creates)
	assert.Equal(t, id, owner(t, e, p.ID))
}

func TestCorrelateSurfacesSecondConflict(t *testing.T) {
	e, store := newRacingEngine(t, 2)
	ctx := context.Background()
	p := ingest(t, e, "twitter", "loner", "", nil)

	_, err := e.CorrelateProfile(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMergeConflict))
	assert.Equal(t, 2, store.creates)

	got, err := e.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UnifiedIdentityID)
}

func TestCorrelateRetriesMergeConflict(t *testing.T) {
	e, store := newRacingEngine(t, 0)
	ctx := context.Background()
	a := ingest(t, e, "twitter", "shadow", "", map[string]string{"email": "s@example.com"})
	x, err := store.DB.CreateIdentity(ctx, "hx", []int64{a.ID})
	require.NoError(t, err)
	b := ingest(t, e, "reddit", "sh4dow", "", map[string]string{"email": "s@example.com"})

	store.conflicts = 1
	id, err := e.CorrelateProfile(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, x, id)
	assert.Equal(t, 2, store.merges)
	assert.Zero(t, store.creates)
	assert.Equal(t, x, owner(t, e, b.ID))

	store.conflicts, store.merges = 2, 0
	c := ingest(t, e, "github", "shad0w", "", map[string]string{"email": "s@example.com"})
	_, err = e.CorrelateProfile(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrMergeConflict)
	assert.Equal(t, 2, store.merges)
}

func TestRiskScoreIdempotentAndBounded(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	p := ingest(t, e, "twitter", "troll", "", nil)
	id, err := e.CorrelateProfile(ctx, p.ID)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		_, err := e.AddAlert(ctx, domain.Alert{UnifiedIdentityID: id, Severity: domain.SeverityCritical, Title: "x"})
		require.NoError(t, err)
	}
	for _, text := range []string{"I will kill you", "you idiot", "nice day"} {
		_, err := e.AddComment(ctx, domain.Comment{ProfileID: p.ID, Content: text, ToxicityScore: -1})
		require.NoError(t, err)
	}

	first, err := e.CalculateRiskScore(ctx, id)
	require.NoError(t, err)
	second, err := e.CalculateRiskScore(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0.0)
	assert.LessOrEqual(t, first, 1.0)

	detail, err := e.GetIdentity(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, detail.RiskScore)
	assert.Equal(t, first, *detail.RiskScore)

	_, err = e.CalculateRiskScore(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDetectCoordinatedNetworks(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Hour).Add(-2 * time.Hour).Add(10 * time.Minute)

	var profiles []domain.Profile
	for _, name := range []string{"one", "two", "three"} {
		p := ingest(t, e, "twitter", name, "", nil)
		_, err := e.CorrelateProfile(ctx, p.ID)
		require.NoError(t, err)
		profiles = append(profiles, p)
	}
	for i, p := range profiles {
		_, err := e.AddComment(ctx, domain.Comment{ProfileID: p.ID, Content: "post " + p.Username, PostedAt: base.Add(time.Duration(i*20) * time.Second)})
		require.NoError(t, err)
	}
	for _, p := range profiles[:2] {
		_, err := e.AddComment(ctx, domain.Comment{ProfileID: p.ID, Content: "Boycott  THIS brand", PostedAt: base.Add(-90 * time.Minute)})
		require.NoError(t, err)
	}

	nets, err := e.DetectCoordinatedNetworks(ctx)
	require.NoError(t, err)
	require.Len(t, nets, 2)
	assert.Equal(t, domain.NetworkTemporal, nets[0].Type)
	assert.Len(t, nets[0].Members, 3)
	assert.Equal(t, 3, nets[0].Strength)
	assert.Equal(t, domain.NetworkContent, nets[1].Type)
	assert.Len(t, nets[1].Members, 2)
	assert.Equal(t, 2, nets[1].Strength)
}

func TestIngestorStoresProfilesAndTarget(t *testing.T) {
	e, db := newTestEngine(t)
	ctx := context.Background()
	done := time.Now()
	inv := domain.Investigation{
		ID: "INV-1", Target: "victim@example.com", TargetType: domain.TargetEmail, Status: domain.StatusCompleted,
		CompletedAt: &done,
		Summary:     &domain.Summary{TotalFindings: 2, OverallConfidence: 85},
		Runs: []domain.ToolRun{
			{ToolID: "holehe", Status: domain.RunSucceeded, Result: &domain.ToolResult{
				Data: domain.EmailData{Email: "victim@example.com", RegisteredSites: []string{"twitter", "spotify"}},
			}},
			{ToolID: "h8mail", Status: domain.RunFailed, Error: "timeout"},
		},
	}
	require.NoError(t, NewIngestor(e, db, zap.NewNop().Sugar()).Ingest(ctx, inv))

	profiles, err := db.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "victim@example.com", profiles[0].Email())

	target, err := db.GetTarget(ctx, "victim@example.com", domain.TargetEmail)
	require.NoError(t, err)
	assert.Equal(t, "INV-1", target.LastInvestigationID)
	assert.Equal(t, 85.0, target.LastConfidence)

	// both registrations share the email, so they correlate into one identity
	id, err := e.CorrelateProfile(ctx, profiles[0].ID)
	require.NoError(t, err)
	assert.Equal(t, id, owner(t, e, profiles[1].ID))
}

func TestValidation(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	_, err := e.IngestProfile(ctx, domain.Profile{Platform: "", Username: "x"})
	assert.Error(t, err)
	_, err = e.AddAlert(ctx, domain.Alert{UnifiedIdentityID: 1, Severity: "apocalyptic", Title: "x"})
	assert.Error(t, err)
	_, err = e.AddComment(ctx, domain.Comment{ProfileID: 1, Content: "  "})
	assert.Error(t, err)
}
