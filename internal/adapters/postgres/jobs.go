package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"aura/internal/ports"
)

const (
	maxCorrelationAttempts = 3
	claimLease             = 5 * time.Minute
)

// ClaimNext selects the next uncorrelated profile using SKIP LOCKED and leases it.
func (db *DB) ClaimNext(ctx context.Context) (job ports.CorrelationJob, found bool, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		SELECT id FROM profiles
		WHERE unified_identity_id IS NULL
			AND correlation_attempts < $1
			AND (correlation_claimed_at IS NULL OR correlation_claimed_at < $2)
		ORDER BY id
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`, maxCorrelationAttempts, time.Now().Add(-claimLease)).Scan(&job.ProfileID)
	if errors.Is(err, pgx.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE profiles SET correlation_attempts = correlation_attempts + 1, correlation_claimed_at = now()
		WHERE id = $1
		RETURNING correlation_attempts
	`, job.ProfileID).Scan(&job.Attempts)
	if err != nil {
		return job, false, err
	}
	return job, true, nil
}

func (db *DB) MarkFailed(ctx context.Context, profileID int64, reason string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE profiles SET correlation_claimed_at = NULL, correlation_error = $2 WHERE id = $1
	`, profileID, reason)
	return err
}
