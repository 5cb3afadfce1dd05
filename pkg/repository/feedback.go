package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/chatscope/pkg/domain"
)

// FeedbackRepository stores user feedback events and the durable recompute
// queue. Queue writes are synchronous with the mutation so a crash right
// after a call loses nothing.
type FeedbackRepository struct {
	db *sqlx.DB
}

// feedbackSQL represents a feedback row
type feedbackSQL struct {
	ID        int64     `db:"id"`
	ProfileID int64     `db:"profile_id"`
	SourceID  int64     `db:"source_id"`
	MessageID int64     `db:"message_id"`
	Type      string    `db:"type"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(database *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: database}
}

// AddFeedback stores a feedback event and sets its ID
func (r *FeedbackRepository) AddFeedback(ctx context.Context, fb *domain.Feedback) error {
	return withRetry(ctx, func() error {
		query := `
			INSERT INTO feedback (profile_id, source_id, message_id, type, text, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		result, err := r.db.ExecContext(ctx, query,
			fb.ProfileID, fb.SourceID, fb.MessageID, string(fb.Type), fb.Text, time.Now().UTC())
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("add feedback: %w", err)}
		}
		id, err := result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		fb.ID = id
		return nil
	})
}

// RecentFeedback returns the latest feedback for a profile, newest first.
// Empty feedbackType means all types.
func (r *FeedbackRepository) RecentFeedback(ctx context.Context, profileID int64, feedbackType string, limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = 50
	}

	query := "SELECT * FROM feedback WHERE profile_id = ?"
	args := []interface{}{profileID}
	if feedbackType != "" {
		query += " AND type = ?"
		args = append(args, feedbackType)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	var rows []feedbackSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get recent feedback: %w", err)
	}

	feedbacks := make([]domain.Feedback, len(rows))
	for i, row := range rows {
		feedbacks[i] = domain.Feedback{
			ID:        row.ID,
			ProfileID: row.ProfileID,
			SourceID:  row.SourceID,
			MessageID: row.MessageID,
			Type:      domain.FeedbackType(row.Type),
			Text:      row.Text,
			CreatedAt: row.CreatedAt,
		}
	}
	return feedbacks, nil
}

// Enqueue adds a profile id to the recompute queue. Idempotent, a profile
// already pending stays pending with its original queue time.
func (r *FeedbackRepository) Enqueue(ctx context.Context, profileID int64) error {
	return withRetry(ctx, func() error {
		query := `
			INSERT INTO feedback_queue (profile_id, queued_at) VALUES (?, ?)
			ON CONFLICT(profile_id) DO NOTHING
		`
		if _, err := r.db.ExecContext(ctx, query, profileID, time.Now().UTC()); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("enqueue recompute: %w", err)}
		}
		return nil
	})
}

// Pending returns the profile ids currently queued for recompute
func (r *FeedbackRepository) Pending(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, "SELECT profile_id FROM feedback_queue ORDER BY queued_at, profile_id"); err != nil {
		return nil, fmt.Errorf("get pending queue: %w", err)
	}
	return ids, nil
}

// DrainQueue atomically swaps the pending set for an empty one and returns
// the drained profile ids. Select and delete run in one transaction so
// feedback arriving during recompute lands in the next batch.
func (r *FeedbackRepository) DrainQueue(ctx context.Context) ([]int64, error) {
	var ids []int64

	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("begin drain tx: %w", err)}
		}
		defer func() { _ = tx.Rollback() }()

		ids = ids[:0]
		if err := tx.SelectContext(ctx, &ids, "SELECT profile_id FROM feedback_queue ORDER BY queued_at, profile_id"); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("select queue: %w", err)}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM feedback_queue"); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("clear queue: %w", err)}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("commit drain: %w", err)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
