package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// AlertRepository is the durable dedup set of already-alerted messages.
// Rows survive restarts so a replayed message is never alerted twice.
type AlertRepository struct {
	db *sqlx.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(database *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: database}
}

// MarkAlerted records a message as alerted. Returns true if the message was
// newly marked, false if it was already present. The insert and the check
// are a single statement so concurrent callers cannot both win.
func (r *AlertRepository) MarkAlerted(ctx context.Context, sourceID, messageID, senderID int64) (bool, error) {
	var inserted bool
	err := withRetry(ctx, func() error {
		query := `
			INSERT INTO alerted (source_id, message_id, sender_id, alerted_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (source_id, message_id) DO NOTHING
		`
		result, err := r.db.ExecContext(ctx, query, sourceID, messageID, senderID, time.Now().UTC())
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("mark alerted: %w", err)}
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		inserted = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// WasAlerted checks whether a message is already in the dedup set
func (r *AlertRepository) WasAlerted(ctx context.Context, sourceID, messageID int64) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one,
		"SELECT 1 FROM alerted WHERE source_id = ? AND message_id = ?", sourceID, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check alerted: %w", err)
	}
	return true, nil
}

// PruneOlderThan removes dedup entries older than the horizon to bound
// table growth. Returns the number of removed rows.
func (r *AlertRepository) PruneOlderThan(ctx context.Context, horizon time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-horizon)
	result, err := r.db.ExecContext(ctx, "DELETE FROM alerted WHERE alerted_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune alerted: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return affected, nil
}
