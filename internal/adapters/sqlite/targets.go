package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"aura/internal/domain"
)

// RecordInvestigation upserts the target row of a completed investigation.
func (d *DB) RecordInvestigation(ctx context.Context, t domain.Target) error {
	seen := t.LastSeen
	if seen.IsZero() {
		seen = d.now()
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO targets (value, target_type, last_investigation_id, investigations, last_findings, last_confidence, first_seen, last_seen)
		VALUES (?, ?, ?, 1, ?, ?, ?, ?)
		ON CONFLICT (value, target_type) DO UPDATE SET
			last_investigation_id = excluded.last_investigation_id,
			investigations = targets.investigations + 1,
			last_findings = excluded.last_findings,
			last_confidence = excluded.last_confidence,
			last_seen = excluded.last_seen
	`, t.Value, string(t.Type), t.LastInvestigationID, t.LastFindings, t.LastConfidence, ms(seen), ms(seen))
	return err
}

func (d *DB) GetTarget(ctx context.Context, value string, tt domain.TargetType) (domain.Target, error) {
	var (
		t           domain.Target
		first, last int64
		typ         string
	)
	err := d.db.QueryRowContext(ctx, `
		SELECT id, value, target_type, last_investigation_id, investigations, last_findings, last_confidence, first_seen, last_seen
		FROM targets WHERE value = ? AND target_type = ?
	`, value, string(tt)).Scan(&t.ID, &t.Value, &typ, &t.LastInvestigationID, &t.Investigations, &t.LastFindings, &t.LastConfidence, &first, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.ErrNotFound
	}
	if err != nil {
		return t, err
	}
	t.Type = domain.TargetType(typ)
	t.FirstSeen, t.LastSeen = fromMS(first), fromMS(last)
	return t, nil
}
