package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"aura/internal/ports"
)

var _ ports.CorrelationStore = (*DB)(nil)

const (
	maxCorrelationAttempts = 3
	claimLease             = 5 * time.Minute
)

// ClaimNext claims the oldest uncorrelated profile. A claim expires after
// claimLease so profiles held by a crashed worker are retried.
func (d *DB) ClaimNext(ctx context.Context) (job ports.CorrelationJob, found bool, err error) {
	now := d.now()
	err = d.db.QueryRowContext(ctx, `
		UPDATE profiles
		SET correlation_attempts = correlation_attempts + 1, correlation_claimed_at = ?
		WHERE id = (
			SELECT id FROM profiles
			WHERE unified_identity_id IS NULL
				AND correlation_attempts < ?
				AND (correlation_claimed_at IS NULL OR correlation_claimed_at < ?)
			ORDER BY id
			LIMIT 1
		)
		RETURNING id, correlation_attempts
	`, ms(now), maxCorrelationAttempts, ms(now.Add(-claimLease))).Scan(&job.ProfileID, &job.Attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}
	return job, true, nil
}

func (d *DB) MarkFailed(ctx context.Context, profileID int64, reason string) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE profiles SET correlation_claimed_at = NULL, correlation_error = ? WHERE id = ?
	`, reason, profileID)
	return err
}
