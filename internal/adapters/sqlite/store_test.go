package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aura/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func mustProfile(t *testing.T, db *DB, platform, username string, markers map[string]string) domain.Profile {
	t.Helper()
	p, err := db.UpsertProfile(context.Background(), domain.Profile{
		Platform: platform, Username: username, IdentityMarkers: markers, CollectedAt: time.Now(),
	})
	require.NoError(t, err)
	return p
}

func TestUpsertProfileKeepsOwnership(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := mustProfile(t, db, "twitter", "shadow", map[string]string{"email": "s@example.com"})
	assert.Equal(t, "s@example.com", p.Email())
	id, err := db.CreateIdentity(ctx, "h1", []int64{p.ID})
	require.NoError(t, err)

	again, err := db.UpsertProfile(ctx, domain.Profile{Platform: "twitter", Username: "shadow", Bio: "updated", CollectedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
	assert.Equal(t, "updated", again.Bio)
	require.NotNil(t, again.UnifiedIdentityID)
	assert.Equal(t, id, *again.UnifiedIdentityID)

	_, err = db.GetProfile(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateIdentityConflict(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	a := mustProfile(t, db, "twitter", "a", nil)
	b := mustProfile(t, db, "reddit", "b", nil)

	_, err := db.CreateIdentity(ctx, "h1", []int64{a.ID})
	require.NoError(t, err)
	_, err = db.CreateIdentity(ctx, "h2", []int64{b.ID, a.ID})
	assert.ErrorIs(t, err, domain.ErrMergeConflict)

	// the failed transaction left b unowned
	got, err := db.GetProfile(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UnifiedIdentityID)
}

func TestApplyMergeMovesEverything(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	a := mustProfile(t, db, "twitter", "a", nil)
	b := mustProfile(t, db, "reddit", "b", nil)
	c := mustProfile(t, db, "github", "c", nil)

	x, err := db.CreateIdentity(ctx, "hx", []int64{a.ID})
	require.NoError(t, err)
	y, err := db.CreateIdentity(ctx, "hy", []int64{b.ID})
	require.NoError(t, err)
	_, err = db.AddAlert(ctx, domain.Alert{UnifiedIdentityID: y, Severity: domain.SeverityHigh, Title: "doxxing", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = db.AddComment(ctx, domain.Comment{ProfileID: b.ID, Content: "hi", ContentHash: "h", PostedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, db.SetRiskScore(ctx, x, 0.4))

	plan := domain.MergePlan{Target: x, Sources: []int64{y}, Attach: []int64{c.ID}, MasterHash: "merged"}
	require.NoError(t, db.ApplyMerge(ctx, plan))

	detail, err := db.GetIdentity(ctx, x)
	require.NoError(t, err)
	assert.Equal(t, "merged", detail.MasterHash)
	assert.Nil(t, detail.RiskScore)
	assert.Len(t, detail.Profiles, 3)

	_, err = db.GetIdentity(ctx, y)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in, err := db.RiskInputs(ctx, x, 0.7)
	require.NoError(t, err)
	assert.Equal(t, 3, in.PlatformCount)
	assert.Equal(t, 1, in.AlertCount)
	assert.Equal(t, 1, in.CommentCount)
	assert.Equal(t, domain.SeverityHigh, in.MaxSeverity)

	// replaying the plan finds the source gone
	assert.ErrorIs(t, db.ApplyMerge(ctx, plan), domain.ErrMergeConflict)
}

func TestApplyMergeRejectsForeignProfile(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	a := mustProfile(t, db, "twitter", "a", nil)
	b := mustProfile(t, db, "reddit", "b", nil)
	x, err := db.CreateIdentity(ctx, "hx", []int64{a.ID})
	require.NoError(t, err)
	_, err = db.CreateIdentity(ctx, "hy", []int64{b.ID})
	require.NoError(t, err)

	err = db.ApplyMerge(ctx, domain.MergePlan{Target: x, Attach: []int64{b.ID}, MasterHash: "m"})
	assert.ErrorIs(t, err, domain.ErrMergeConflict)
}

func TestApplyMergeRollsBackOnConflict(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	a := mustProfile(t, db, "twitter", "a", nil)
	b := mustProfile(t, db, "reddit", "b", nil)
	c := mustProfile(t, db, "github", "c", nil)
	d := mustProfile(t, db, "gitlab", "d", nil)
	x, err := db.CreateIdentity(ctx, "hx", []int64{a.ID})
	require.NoError(t, err)
	y, err := db.CreateIdentity(ctx, "hy", []int64{b.ID})
	require.NoError(t, err)
	z, err := db.CreateIdentity(ctx, "hz", []int64{d.ID})
	require.NoError(t, err)

	// c is free, b belongs to y which is not part of the merge
	err = db.ApplyMerge(ctx, domain.MergePlan{Target: x, Sources: []int64{z}, Attach: []int64{c.ID, b.ID}, MasterHash: "m"})
	require.ErrorIs(t, err, domain.ErrMergeConflict)

	got, err := db.GetProfile(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UnifiedIdentityID, "first attach was rolled back")

	got, err = db.GetProfile(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UnifiedIdentityID)
	assert.Equal(t, y, *got.UnifiedIdentityID)

	got, err = db.GetProfile(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UnifiedIdentityID)
	assert.Equal(t, z, *got.UnifiedIdentityID)

	detail, err := db.GetIdentity(ctx, x)
	require.NoError(t, err)
	assert.Equal(t, "hx", detail.MasterHash)
	assert.Len(t, detail.Profiles, 1)
}

func TestListIdentities(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	a := mustProfile(t, db, "twitter", "a", nil)
	b := mustProfile(t, db, "reddit", "b", nil)
	c := mustProfile(t, db, "twitter", "c", nil)
	x, _ := db.CreateIdentity(ctx, "hx", []int64{a.ID, b.ID})
	y, _ := db.CreateIdentity(ctx, "hy", []int64{c.ID})
	require.NoError(t, db.SetRiskScore(ctx, x, 0.2))
	require.NoError(t, db.SetRiskScore(ctx, y, 0.9))

	all, err := db.ListIdentities(ctx, domain.IdentityQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, y, all[0].ID)
	assert.Equal(t, []string{"reddit", "twitter"}, all[1].Platforms)

	risky, err := db.ListIdentities(ctx, domain.IdentityQuery{MinRisk: 0.5, Limit: 10})
	require.NoError(t, err)
	require.Len(t, risky, 1)

	reddit, err := db.ListIdentities(ctx, domain.IdentityQuery{Platform: "reddit", Limit: 10})
	require.NoError(t, err)
	require.Len(t, reddit, 1)
	assert.Equal(t, x, reddit[0].ID)
}

func TestClaimNext(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	a := mustProfile(t, db, "twitter", "a", nil)
	b := mustProfile(t, db, "reddit", "b", nil)
	_, err := db.CreateIdentity(ctx, "hb", []int64{b.ID})
	require.NoError(t, err)

	job, found, err := db.ClaimNext(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, a.ID, job.ProfileID)
	assert.Equal(t, 1, job.Attempts)

	// claimed profiles are leased
	_, found, err = db.ClaimNext(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	for i := 2; i <= 3; i++ {
		require.NoError(t, db.MarkFailed(ctx, a.ID, "boom"))
		job, found, err = db.ClaimNext(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, i, job.Attempts)
	}
	require.NoError(t, db.MarkFailed(ctx, a.ID, "boom"))
	_, found, err = db.ClaimNext(ctx)
	require.NoError(t, err)
	assert.False(t, found, "attempts exhausted")
}

func TestRecordInvestigation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.RecordInvestigation(ctx, domain.Target{Value: "a@b.io", Type: domain.TargetEmail, LastInvestigationID: "INV-1", LastFindings: 3, LastConfidence: 85}))
	require.NoError(t, db.RecordInvestigation(ctx, domain.Target{Value: "a@b.io", Type: domain.TargetEmail, LastInvestigationID: "INV-2", LastFindings: 1, LastConfidence: 40}))

	got, err := db.GetTarget(ctx, "a@b.io", domain.TargetEmail)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Investigations)
	assert.Equal(t, "INV-2", got.LastInvestigationID)
	assert.Equal(t, 40.0, got.LastConfidence)

	_, err = db.GetTarget(ctx, "a@b.io", domain.TargetUsername)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommentsAndAlertsValidateOwners(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.AddAlert(ctx, domain.Alert{UnifiedIdentityID: 42, Severity: domain.SeverityLow, Title: "x", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = db.AddComment(ctx, domain.Comment{ProfileID: 42, Content: "x", ContentHash: "x", PostedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := mustProfile(t, db, "twitter", "a", nil)
	old := time.Now().Add(-48 * time.Hour)
	_, err = db.AddComment(ctx, domain.Comment{ProfileID: p.ID, Content: "old", ContentHash: "o", PostedAt: old})
	require.NoError(t, err)
	_, err = db.AddComment(ctx, domain.Comment{ProfileID: p.ID, Content: "new", ContentHash: "n", PostedAt: time.Now()})
	require.NoError(t, err)

	recent, err := db.CommentsSince(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].Content)
	assert.Nil(t, recent[0].UnifiedIdentityID)
}
