package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/chatscope/pkg/domain"
)

// DeliveryRepository is the append-only log of delivery attempts.
// Concurrent sinks record attempts simultaneously; every write goes
// through the lock-retry path so none is lost to SQLITE_BUSY.
type DeliveryRepository struct {
	db *sqlx.DB
}

// attemptSQL represents a delivery attempt row
type attemptSQL struct {
	ID            int64     `db:"id"`
	GroupID       string    `db:"group_id"`
	ProfileID     int64     `db:"profile_id"`
	TargetKind    string    `db:"target_kind"`
	TargetID      string    `db:"target_id"`
	PayloadHash   string    `db:"payload_hash"`
	AttemptNumber int       `db:"attempt_number"`
	Status        string    `db:"status"`
	HTTPStatus    int       `db:"http_status"`
	LatencyMs     int64     `db:"latency_ms"`
	Error         string    `db:"error"`
	CreatedAt     time.Time `db:"created_at"`
}

// NewDeliveryRepository creates a new delivery repository
func NewDeliveryRepository(database *sqlx.DB) *DeliveryRepository {
	return &DeliveryRepository{db: database}
}

// RecordAttempt appends one delivery attempt row and sets its ID
func (r *DeliveryRepository) RecordAttempt(ctx context.Context, attempt *domain.DeliveryAttempt) error {
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	return withRetry(ctx, func() error {
		query := `
			INSERT INTO delivery_attempts (
				group_id, profile_id, target_kind, target_id, payload_hash,
				attempt_number, status, http_status, latency_ms, error, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		result, err := r.db.ExecContext(ctx, query,
			attempt.GroupID, attempt.ProfileID, string(attempt.TargetKind), attempt.TargetID,
			attempt.PayloadHash, attempt.AttemptNumber, string(attempt.Status),
			attempt.HTTPStatus, attempt.LatencyMs, attempt.Error, attempt.CreatedAt)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("record attempt: %w", err)}
		}
		id, err := result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		attempt.ID = id
		return nil
	})
}

// Recent returns the latest attempts, newest first. profileID 0 means all
// profiles.
func (r *DeliveryRepository) Recent(ctx context.Context, profileID int64, limit int) ([]domain.DeliveryAttempt, error) {
	if limit <= 0 {
		limit = 50
	}

	query := "SELECT * FROM delivery_attempts"
	args := []interface{}{}
	if profileID != 0 {
		query += " WHERE profile_id = ?"
		args = append(args, profileID)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	var rows []attemptSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get recent attempts: %w", err)
	}

	attempts := make([]domain.DeliveryAttempt, len(rows))
	for i, row := range rows {
		attempts[i] = toDomainAttempt(row)
	}
	return attempts, nil
}

// GroupAttempts returns all attempts of one delivery group, oldest first
func (r *DeliveryRepository) GroupAttempts(ctx context.Context, groupID string) ([]domain.DeliveryAttempt, error) {
	var rows []attemptSQL
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM delivery_attempts WHERE group_id = ? ORDER BY attempt_number", groupID)
	if err != nil {
		return nil, fmt.Errorf("get group attempts: %w", err)
	}

	attempts := make([]domain.DeliveryAttempt, len(rows))
	for i, row := range rows {
		attempts[i] = toDomainAttempt(row)
	}
	return attempts, nil
}

// PruneOlderThan removes attempts beyond the retention horizon
func (r *DeliveryRepository) PruneOlderThan(ctx context.Context, horizon time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-horizon)
	result, err := r.db.ExecContext(ctx, "DELETE FROM delivery_attempts WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune attempts: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return affected, nil
}

func toDomainAttempt(row attemptSQL) domain.DeliveryAttempt {
	return domain.DeliveryAttempt{
		ID:            row.ID,
		GroupID:       row.GroupID,
		ProfileID:     row.ProfileID,
		TargetKind:    domain.TargetKind(row.TargetKind),
		TargetID:      row.TargetID,
		PayloadHash:   row.PayloadHash,
		AttemptNumber: row.AttemptNumber,
		Status:        domain.AttemptStatus(row.Status),
		HTTPStatus:    row.HTTPStatus,
		LatencyMs:     row.LatencyMs,
		Error:         row.Error,
		CreatedAt:     row.CreatedAt,
	}
}
