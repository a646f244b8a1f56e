package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"aura/internal/domain"
)

const profileColumns = `id, platform, username, bio, identity_markers, evidence_hash, unified_identity_id, collected_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (domain.Profile, error) {
	var (
		p         domain.Profile
		markers   string
		identity  sql.NullInt64
		collected int64
	)
	if err := row.Scan(&p.ID, &p.Platform, &p.Username, &p.Bio, &markers, &p.EvidenceHash, &identity, &collected); err != nil {
		return p, err
	}
	if markers != "" {
		if err := json.Unmarshal([]byte(markers), &p.IdentityMarkers); err != nil {
			return p, fmt.Errorf("decode markers of profile %d: %w", p.ID, err)
		}
	}
	if identity.Valid {
		id := identity.Int64
		p.UnifiedIdentityID = &id
	}
	p.CollectedAt = fromMS(collected)
	return p, nil
}

func (d *DB) UpsertProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	markers, err := json.Marshal(p.IdentityMarkers)
	if err != nil {
		return domain.Profile{}, err
	}
	row := d.db.QueryRowContext(ctx, `
		INSERT INTO profiles (platform, username, bio, email, identity_markers, evidence_hash, collected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (platform, username) DO UPDATE SET
			bio = excluded.bio,
			email = excluded.email,
			identity_markers = excluded.identity_markers,
			evidence_hash = excluded.evidence_hash,
			collected_at = excluded.collected_at
		RETURNING `+profileColumns,
		p.Platform, p.Username, p.Bio, p.Email(), string(markers), p.EvidenceHash, ms(p.CollectedAt))
	return scanProfile(row)
}

func (d *DB) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	p, err := scanProfile(d.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.ErrNotFound
	}
	return p, err
}

func (d *DB) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return d.queryProfiles(ctx, d.db, `SELECT `+profileColumns+` FROM profiles ORDER BY id`)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (d *DB) queryProfiles(ctx context.Context, q querier, query string, args ...any) ([]domain.Profile, error) {
	rows, err := q.QueryContext(ctx, query, args...)
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

func (d *DB) CreateIdentity(ctx context.Context, masterHash string, members []int64) (id int64, err error) {
	now := ms(d.now())
	err = d.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO unified_identities (master_hash, created_at, updated_at) VALUES (?, ?, ?) RETURNING id
		`, masterHash, now, now).Scan(&id); err != nil {
			return err
		}
		for _, pid := range members {
			res, err := tx.ExecContext(ctx, `UPDATE profiles SET unified_identity_id = ? WHERE id = ? AND unified_identity_id IS NULL`, id, pid)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return domain.ErrMergeConflict
			}
		}
		if len(members) == 0 {
			return nil
		}
		list, args := in(members)
		_, err := tx.ExecContext(ctx, `UPDATE comments SET unified_identity_id = ? WHERE profile_id IN `+list, append([]any{id}, args...)...)
		return err
	})
	return id, err
}

func (d *DB) ApplyMerge(ctx context.Context, plan domain.MergePlan) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		all := append([]int64{plan.Target}, plan.Sources...)
		list, args := in(all)
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM unified_identities WHERE id IN `+list, args...).Scan(&n); err != nil {
			return err
		}
		if n != len(all) {
			return domain.ErrMergeConflict
		}

		for _, pid := range plan.Attach {
			q := `UPDATE profiles SET unified_identity_id = ? WHERE id = ? AND (unified_identity_id IS NULL OR unified_identity_id IN ` + list + `)`
			res, err := tx.ExecContext(ctx, q, append([]any{plan.Target, pid}, args...)...)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return domain.ErrMergeConflict
			}
		}
		if len(plan.Attach) > 0 {
			alist, aargs := in(plan.Attach)
			if _, err := tx.ExecContext(ctx, `UPDATE comments SET unified_identity_id = ? WHERE profile_id IN `+alist, append([]any{plan.Target}, aargs...)...); err != nil {
				return err
			}
		}

		if len(plan.Sources) > 0 {
			slist, sargs := in(plan.Sources)
			move := append([]any{plan.Target}, sargs...)
			for _, q := range []string{
				`UPDATE profiles SET unified_identity_id = ? WHERE unified_identity_id IN ` + slist,
				`UPDATE comments SET unified_identity_id = ? WHERE unified_identity_id IN ` + slist,
				`UPDATE alerts SET unified_identity_id = ? WHERE unified_identity_id IN ` + slist,
			} {
				if _, err := tx.ExecContext(ctx, q, move...); err != nil {
					return err
				}
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM unified_identities WHERE id IN `+slist, sargs...); err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx, `UPDATE unified_identities SET master_hash = ?, risk_score = NULL, updated_at = ? WHERE id = ?`,
			plan.MasterHash, ms(d.now()), plan.Target)
		return err
	})
}

func scanIdentity(row scanner, extra ...any) (domain.UnifiedIdentity, error) {
	var (
		u                domain.UnifiedIdentity
		risk             sql.NullFloat64
		created, updated int64
	)
	dest := append([]any{&u.ID, &u.MasterHash, &risk, &created, &updated}, extra...)
	if err := row.Scan(dest...); err != nil {
		return u, err
	}
	if risk.Valid {
		r := risk.Float64
		u.RiskScore = &r
	}
	u.CreatedAt, u.UpdatedAt = fromMS(created), fromMS(updated)
	return u, nil
}

func (d *DB) GetIdentity(ctx context.Context, id int64) (domain.IdentityDetail, error) {
	u, err := scanIdentity(d.db.QueryRowContext(ctx, `
		SELECT id, master_hash, risk_score, created_at, updated_at FROM unified_identities WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.IdentityDetail{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.IdentityDetail{}, err
	}
	profiles, err := d.queryProfiles(ctx, d.db, `SELECT `+profileColumns+` FROM profiles WHERE unified_identity_id = ? ORDER BY id`, id)
	if err != nil {
		return domain.IdentityDetail{}, err
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return domain.IdentityDetail{UnifiedIdentity: u, Profiles: profiles}, nil
}

func (d *DB) ListIdentities(ctx context.Context, q domain.IdentityQuery) ([]domain.IdentitySummary, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT u.id, u.master_hash, u.risk_score, u.created_at, u.updated_at,
			(SELECT COUNT(*) FROM alerts a WHERE a.unified_identity_id = u.id) AS alert_count,
			COALESCE((SELECT GROUP_CONCAT(DISTINCT p.platform) FROM profiles p WHERE p.unified_identity_id = u.id), '')
		FROM unified_identities u
		WHERE COALESCE(u.risk_score, 0) >= ?
			AND (? = '' OR EXISTS (SELECT 1 FROM profiles p WHERE p.unified_identity_id = u.id AND p.platform = ?))
		ORDER BY COALESCE(u.risk_score, 0) DESC, alert_count DESC, u.id
		LIMIT ?
	`, q.MinRisk, q.Platform, q.Platform, q.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.IdentitySummary{}
	for rows.Next() {
		var (
			s         domain.IdentitySummary
			platforms string
		)
		s.UnifiedIdentity, err = scanIdentity(rows, &s.AlertCount, &platforms)
		if err != nil {
			return nil, err
		}
		s.Platforms = []string{}
		if platforms != "" {
			s.Platforms = strings.Split(platforms, ",")
			sort.Strings(s.Platforms)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (d *DB) RiskInputs(ctx context.Context, id int64, toxicAbove float64) (domain.RiskInputs, error) {
	var in domain.RiskInputs
	var exists int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM unified_identities WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return in, err
	}
	if exists == 0 {
		return in, domain.ErrNotFound
	}
	if err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT platform) FROM profiles WHERE unified_identity_id = ?
	`, id).Scan(&in.PlatformCount); err != nil {
		return in, err
	}
	if err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN toxicity_score > ? THEN 1 ELSE 0 END), 0)
		FROM comments WHERE unified_identity_id = ?
	`, toxicAbove, id).Scan(&in.CommentCount, &in.ToxicComments); err != nil {
		return in, err
	}
	var rank int
	if err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MAX(CASE severity
			WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 WHEN 'critical' THEN 4 END), 0)
		FROM alerts WHERE unified_identity_id = ?
	`, id).Scan(&in.AlertCount, &rank); err != nil {
		return in, err
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

func (d *DB) SetRiskScore(ctx context.Context, id int64, score float64) error {
	res, err := d.db.ExecContext(ctx, `UPDATE unified_identities SET risk_score = ?, updated_at = ? WHERE id = ?`, score, ms(d.now()), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (d *DB) AddAlert(ctx context.Context, a domain.Alert) (domain.Alert, error) {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE unified_identities SET risk_score = NULL, updated_at = ? WHERE id = ?`, ms(d.now()), a.UnifiedIdentityID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		return tx.QueryRowContext(ctx, `
			INSERT INTO alerts (unified_identity_id, severity, title, created_at) VALUES (?, ?, ?, ?) RETURNING id
		`, a.UnifiedIdentityID, string(a.Severity), a.Title, ms(a.CreatedAt)).Scan(&a.ID)
	})
	return a, err
}

func (d *DB) AddComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var identity sql.NullInt64
		err := tx.QueryRowContext(ctx, `SELECT unified_identity_id FROM profiles WHERE id = ?`, c.ProfileID).Scan(&identity)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		c.UnifiedIdentityID = nil
		if identity.Valid {
			id := identity.Int64
			c.UnifiedIdentityID = &id
			if _, err := tx.ExecContext(ctx, `UPDATE unified_identities SET risk_score = NULL WHERE id = ?`, id); err != nil {
				return err
			}
		}
		return tx.QueryRowContext(ctx, `
			INSERT INTO comments (profile_id, unified_identity_id, content, content_hash, toxicity_score, posted_at)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING id
		`, c.ProfileID, identity, c.Content, c.ContentHash, c.ToxicityScore, ms(c.PostedAt)).Scan(&c.ID)
	})
	return c, err
}

func (d *DB) CommentsSince(ctx context.Context, since time.Time) ([]domain.Comment, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, profile_id, unified_identity_id, content, content_hash, toxicity_score, posted_at
		FROM comments WHERE posted_at >= ? ORDER BY posted_at, id
	`, ms(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Comment
	for rows.Next() {
		var (
			c        domain.Comment
			identity sql.NullInt64
			posted   int64
		)
		if err := rows.Scan(&c.ID, &c.ProfileID, &identity, &c.Content, &c.ContentHash, &c.ToxicityScore, &posted); err != nil {
			return nil, err
		}
		if identity.Valid {
			id := identity.Int64
			c.UnifiedIdentityID = &id
		}
		c.PostedAt = fromMS(posted)
		out = append(out, c)
	}
	return out, rows.Err()
}
