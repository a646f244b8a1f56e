package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"aura/internal/domain"
)

const profileColumns = `id, platform, username, bio, identity_markers, evidence_hash, unified_identity_id, collected_at`

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var (
		p       domain.Profile
		markers []byte
	)
	if err := row.Scan(&p.ID, &p.Platform, &p.Username, &p.Bio, &markers, &p.EvidenceHash, &p.UnifiedIdentityID, &p.CollectedAt); err != nil {
		return p, err
	}
	if len(markers) > 0 {
		if err := json.Unmarshal(markers, &p.IdentityMarkers); err != nil {
			return p, fmt.Errorf("decode markers of profile %d: %w", p.ID, err)
		}
	}
	return p, nil
}

func (db *DB) UpsertProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	markers, err := json.Marshal(p.IdentityMarkers)
	if err != nil {
		return domain.Profile{}, err
	}
	return scanProfile(db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (platform, username, bio, email, identity_markers, evidence_hash, collected_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
		ON CONFLICT (platform, username) DO UPDATE SET
			bio = EXCLUDED.bio,
			email = EXCLUDED.email,
			identity_markers = EXCLUDED.identity_markers,
			evidence_hash = EXCLUDED.evidence_hash,
			collected_at = EXCLUDED.collected_at
		RETURNING `+profileColumns,
		p.Platform, p.Username, p.Bio, p.Email(), string(markers), p.EvidenceHash, p.CollectedAt))
}

func (db *DB) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	p, err := scanProfile(db.Pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return p, domain.ErrNotFound
	}
	return p, err
}

func (db *DB) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return db.queryProfiles(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY id`)
}

func (db *DB) queryProfiles(ctx context.Context, query string, args ...any) ([]domain.Profile, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (db *DB) CreateIdentity(ctx context.Context, masterHash string, members []int64) (id int64, err error) {
	err = db.withTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `INSERT INTO unified_identities (master_hash) VALUES ($1) RETURNING id`, masterHash).Scan(&id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE profiles SET unified_identity_id = $1 WHERE id = ANY($2) AND unified_identity_id IS NULL
		`, id, members)
		if err != nil {
			return err
		}
		if int(tag.RowsAffected()) != len(members) {
			return domain.ErrMergeConflict
		}
		_, err = tx.Exec(ctx, `UPDATE comments SET unified_identity_id = $1 WHERE profile_id = ANY($2)`, id, members)
		return err
	})
	return id, err
}

// ApplyMerge locks the identities involved, checks that ownership still
// matches the plan and moves everything onto the target.
func (db *DB) ApplyMerge(ctx context.Context, plan domain.MergePlan) error {
	return db.withTx(ctx, func(tx pgx.Tx) error {
		involved := append([]int64{plan.Target}, plan.Sources...)
		rows, err := tx.Query(ctx, `SELECT id FROM unified_identities WHERE id = ANY($1) ORDER BY id FOR UPDATE`, involved)
		if err != nil {
			return err
		}
		locked, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return err
		}
		if len(locked) != len(involved) {
			return domain.ErrMergeConflict
		}

		if len(plan.Attach) > 0 {
			tag, err := tx.Exec(ctx, `
				UPDATE profiles SET unified_identity_id = $1
				WHERE id = ANY($2) AND (unified_identity_id IS NULL OR unified_identity_id = ANY($3))
			`, plan.Target, plan.Attach, involved)
			if err != nil {
				return err
			}
			if int(tag.RowsAffected()) != len(plan.Attach) {
				return domain.ErrMergeConflict
			}
			if _, err := tx.Exec(ctx, `UPDATE comments SET unified_identity_id = $1 WHERE profile_id = ANY($2)`, plan.Target, plan.Attach); err != nil {
				return err
			}
		}

		if len(plan.Sources) > 0 {
			for _, q := range []string{
				`UPDATE profiles SET unified_identity_id = $1 WHERE unified_identity_id = ANY($2)`,
				`UPDATE comments SET unified_identity_id = $1 WHERE unified_identity_id = ANY($2)`,
				`UPDATE alerts SET unified_identity_id = $1 WHERE unified_identity_id = ANY($2)`,
			} {
				if _, err := tx.Exec(ctx, q, plan.Target, plan.Sources); err != nil {
					return err
				}
			}
			if _, err := tx.Exec(ctx, `DELETE FROM unified_identities WHERE id = ANY($1)`, plan.Sources); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `
			UPDATE unified_identities SET master_hash = $2, risk_score = NULL, updated_at = now() WHERE id = $1
		`, plan.Target, plan.MasterHash)
		return err
	})
}

func (db *DB) GetIdentity(ctx context.Context, id int64) (domain.IdentityDetail, error) {
	var u domain.UnifiedIdentity
	err := db.Pool.QueryRow(ctx, `
		SELECT id, master_hash, risk_score, created_at, updated_at FROM unified_identities WHERE id = $1
	`, id).Scan(&u.ID, &u.MasterHash, &u.RiskScore, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.IdentityDetail{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.IdentityDetail{}, err
	}
	profiles, err := db.queryProfiles(ctx, `SELECT `+profileColumns+` FROM profiles WHERE unified_identity_id = $1 ORDER BY id`, id)
	if err != nil {
		return domain.IdentityDetail{}, err
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return domain.IdentityDetail{UnifiedIdentity: u, Profiles: profiles}, nil
}

func (db *DB) ListIdentities(ctx context.Context, q domain.IdentityQuery) ([]domain.IdentitySummary, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT u.id, u.master_hash, u.risk_score, u.created_at, u.updated_at,
			(SELECT COUNT(*) FROM alerts a WHERE a.unified_identity_id = u.id) AS alert_count,
			COALESCE((SELECT array_agg(DISTINCT p.platform ORDER BY p.platform) FROM profiles p WHERE p.unified_identity_id = u.id), '{}')
		FROM unified_identities u
		WHERE COALESCE(u.risk_score, 0) >= $1
			AND ($2 = '' OR EXISTS (SELECT 1 FROM profiles p WHERE p.unified_identity_id = u.id AND p.platform = $2))
		ORDER BY COALESCE(u.risk_score, 0) DESC, alert_count DESC, u.id
		LIMIT $3
	`, q.MinRisk, q.Platform, q.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.IdentitySummary{}
	for rows.Next() {
		var s domain.IdentitySummary
		if err := rows.Scan(&s.ID, &s.MasterHash, &s.RiskScore, &s.CreatedAt, &s.UpdatedAt, &s.AlertCount, &s.Platforms); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (db *DB) RiskInputs(ctx context.Context, id int64, toxicAbove float64) (domain.RiskInputs, error) {
	var (
		in     domain.RiskInputs
		exists bool
		rank   int
	)
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM unified_identities WHERE id = $1),
			(SELECT COUNT(DISTINCT platform) FROM profiles WHERE unified_identity_id = $1),
			(SELECT COUNT(*) FROM comments WHERE unified_identity_id = $1),
			(SELECT COUNT(*) FILTER (WHERE toxicity_score > $2) FROM comments WHERE unified_identity_id = $1),
			(SELECT COUNT(*) FROM alerts WHERE unified_identity_id = $1),
			(SELECT COALESCE(MAX(CASE severity
				WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 WHEN 'critical' THEN 4 END), 0)
			FROM alerts WHERE unified_identity_id = $1)
	`, id, toxicAbove).Scan(&exists, &in.PlatformCount, &in.CommentCount, &in.ToxicComments, &in.AlertCount, &rank)
	if err != nil {
		return in, err
	}
	if !exists {
		return in, domain.ErrNotFound
	}
	in.MaxSeverity = severityOfRank(rank)
	return in, nil
}

func severityOfRank(rank int) domain.Severity {
	for _, s := range []domain.Severity{domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh, domain.SeverityCritical} {
		if s.Rank() == rank {
			return s
		}
	}
	return ""
}

func (db *DB) SetRiskScore(ctx context.Context, id int64, score float64) error {
	tag, err := db.Pool.Exec(ctx, `UPDATE unified_identities SET risk_score = $2, updated_at = now() WHERE id = $1`, id, score)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (db *DB) AddAlert(ctx context.Context, a domain.Alert) (domain.Alert, error) {
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE unified_identities SET risk_score = NULL, updated_at = now() WHERE id = $1`, a.UnifiedIdentityID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return tx.QueryRow(ctx, `
			INSERT INTO alerts (unified_identity_id, severity, title, created_at) VALUES ($1, $2, $3, $4) RETURNING id
		`, a.UnifiedIdentityID, string(a.Severity), a.Title, a.CreatedAt).Scan(&a.ID)
	})
	return a, err
}

func (db *DB) AddComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT unified_identity_id FROM profiles WHERE id = $1`, c.ProfileID).Scan(&c.UnifiedIdentityID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if c.UnifiedIdentityID != nil {
			if _, err := tx.Exec(ctx, `UPDATE unified_identities SET risk_score = NULL WHERE id = $1`, *c.UnifiedIdentityID); err != nil {
				return err
			}
		}
		return tx.QueryRow(ctx, `
			INSERT INTO comments (profile_id, unified_identity_id, content, content_hash, toxicity_score, posted_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id
		`, c.ProfileID, c.UnifiedIdentityID, c.Content, c.ContentHash, c.ToxicityScore, c.PostedAt).Scan(&c.ID)
	})
	return c, err
}

func (db *DB) CommentsSince(ctx context.Context, since time.Time) ([]domain.Comment, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, profile_id, unified_identity_id, content, content_hash, toxicity_score, posted_at
		FROM comments WHERE posted_at >= $1 ORDER BY posted_at, id
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.UnifiedIdentityID, &c.Content, &c.ContentHash, &c.ToxicityScore, &c.PostedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// RecordInvestigation upserts the target row of a completed investigation.
func (db *DB) RecordInvestigation(ctx context.Context, t domain.Target) error {
	seen := t.LastSeen
	if seen.IsZero() {
		seen = time.Now()
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO targets (value, target_type, last_investigation_id, investigations, last_findings, last_confidence, first_seen, last_seen)
		VALUES ($1, $2, $3, 1, $4, $5, $6, $6)
		ON CONFLICT (value, target_type) DO UPDATE SET
			last_investigation_id = EXCLUDED.last_investigation_id,
			investigations = targets.investigations + 1,
			last_findings = EXCLUDED.last_findings,
			last_confidence = EXCLUDED.last_confidence,
			last_seen = EXCLUDED.last_seen
	`, t.Value, string(t.Type), t.LastInvestigationID, t.LastFindings, t.LastConfidence, seen)
	return err
}

func (db *DB) GetTarget(ctx context.Context, value string, tt domain.TargetType) (domain.Target, error) {
	var t domain.Target
	var typ string
	err := db.Pool.QueryRow(ctx, `
		SELECT id, value, target_type, last_investigation_id, investigations, last_findings, last_confidence, first_seen, last_seen
		FROM targets WHERE value = $1 AND target_type = $2
	`, value, string(tt)).Scan(&t.ID, &t.Value, &typ, &t.LastInvestigationID, &t.Investigations, &t.LastFindings, &t.LastConfidence, &t.FirstSeen, &t.LastSeen)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, domain.ErrNotFound
	}
	t.Type = domain.TargetType(typ)
	return t, err
}
