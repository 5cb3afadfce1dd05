package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ScheduleStateRepository persists the last fire time of each digest
// schedule so restarts never double-fire or lose a window.
type ScheduleStateRepository struct {
	db *sqlx.DB
}

// NewScheduleStateRepository creates a new schedule state repository
func NewScheduleStateRepository(database *sqlx.DB) *ScheduleStateRepository {
	return &ScheduleStateRepository{db: database}
}

// GetLastRun returns the persisted last fire time for a schedule key,
// zero time when the schedule has never fired.
func (r *ScheduleStateRepository) GetLastRun(ctx context.Context, key string) (time.Time, error) {
	var lastRun time.Time
	err := r.db.GetContext(ctx, &lastRun, "SELECT last_run FROM digest_state WHERE schedule_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get last run: %w", err)
	}
	return lastRun, nil
}

// GetAllLastRuns returns the persisted fire times for all known schedules
func (r *ScheduleStateRepository) GetAllLastRuns(ctx context.Context) (map[string]time.Time, error) {
	var rows []struct {
		Key     string    `db:"schedule_key"`
		LastRun time.Time `db:"last_run"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT schedule_key, last_run FROM digest_state"); err != nil {
		return nil, fmt.Errorf("get last runs: %w", err)
	}

	result := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		result[row.Key] = row.LastRun
	}
	return result, nil
}

// SetLastRun records the fire time for a schedule key. Single atomic
// upsert, never a multi-step update.
func (r *ScheduleStateRepository) SetLastRun(ctx context.Context, key string, t time.Time) error {
	return withRetry(ctx, func() error {
		query := `
			INSERT INTO digest_state (schedule_key, last_run) VALUES (?, ?)
			ON CONFLICT(schedule_key) DO UPDATE SET last_run = excluded.last_run
		`
		if _, err := r.db.ExecContext(ctx, query, key, t.UTC()); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("set last run: %w", err)}
		}
		return nil
	})
}
