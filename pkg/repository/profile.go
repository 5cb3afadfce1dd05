package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/chatscope/pkg/domain"
)

// ErrProfileNotFound is returned when a profile id does not exist
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository handles profile-related database operations
type ProfileRepository struct {
	db *sqlx.DB
}

// profileSQL represents a profile row for SQL operations
type profileSQL struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Level     string    `db:"level"`
	SourceID  *int64    `db:"source_id"`
	SenderID  *int64    `db:"sender_id"`
	Priority  int       `db:"priority"`
	Enabled   bool      `db:"enabled"`
	Rules     string    `db:"rules"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(database *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// CreateProfile inserts a new profile and sets its ID
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	rulesJSON, err := json.Marshal(profile.Rules)
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}

	query := `
		INSERT INTO profiles (name, level, source_id, sender_id, priority, enabled, rules, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		profile.Name, string(profile.Level), profile.SourceID, profile.SenderID,
		profile.Priority, profile.Enabled, string(rulesJSON), now, now)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	profile.ID = id
	profile.CreatedAt = now
	profile.UpdatedAt = now
	return nil
}

// GetProfile retrieves a profile by ID
func (r *ProfileRepository) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	var row profileSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM profiles WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return r.toDomainProfile(&row)
}

// GetProfiles retrieves all profiles, optionally enabled only
func (r *ProfileRepository) GetProfiles(ctx context.Context, enabledOnly bool) ([]*domain.Profile, error) {
	query := "SELECT * FROM profiles"
	if enabledOnly {
		query += " WHERE enabled = 1"
	}
	query += " ORDER BY priority, id"

	var rows []profileSQL
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}
	return r.toDomainProfiles(rows)
}

// GetCandidates retrieves enabled profiles applicable to a (source, sender)
// context, ordered by level specificity (channel, user, profile, global),
// then priority, then id. Profiles with unparsable rules are skipped by
// the caller, not here.
func (r *ProfileRepository) GetCandidates(ctx context.Context, sourceID, senderID int64) ([]*domain.Profile, error) {
	query := `
		SELECT * FROM profiles
		WHERE enabled = 1
		AND (
			(level = 'channel' AND source_id = ?) OR
			(level = 'user' AND sender_id = ?) OR
			level IN ('profile', 'global')
		)
		ORDER BY
			CASE level
				WHEN 'channel' THEN 0
				WHEN 'user' THEN 1
				WHEN 'profile' THEN 2
				ELSE 3
			END,
			priority, id
	`
	var rows []profileSQL
	if err := r.db.SelectContext(ctx, &rows, query, sourceID, senderID); err != nil {
		return nil, fmt.Errorf("get candidate profiles: %w", err)
	}
	return r.toDomainProfiles(rows)
}

// UpdateProfile replaces name, priority, enabled state and rules of a profile
func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	rulesJSON, err := json.Marshal(profile.Rules)
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}

	return withRetry(ctx, func() error {
		query := `
			UPDATE profiles
			SET name = ?, priority = ?, enabled = ?, rules = ?, updated_at = ?
			WHERE id = ?
		`
		result, err := r.db.ExecContext(ctx, query,
			profile.Name, profile.Priority, profile.Enabled, string(rulesJSON), time.Now().UTC(), profile.ID)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update profile: %w", err)}
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		if affected == 0 {
			return &criticalError{err: ErrProfileNotFound}
		}
		return nil
	})
}

// DeleteProfile removes a profile
func (r *ProfileRepository) DeleteProfile(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// toDomainProfile converts a profile row, parsing the rules JSON
func (r *ProfileRepository) toDomainProfile(row *profileSQL) (*domain.Profile, error) {
	var rules domain.Rules
	if err := json.Unmarshal([]byte(row.Rules), &rules); err != nil {
		return nil, fmt.Errorf("unmarshal rules for profile %d: %w", row.ID, err)
	}

	return &domain.Profile{
		ID:        row.ID,
		Name:      row.Name,
		Level:     domain.ProfileLevel(row.Level),
		SourceID:  row.SourceID,
		SenderID:  row.SenderID,
		Priority:  row.Priority,
		Enabled:   row.Enabled,
		Rules:     rules,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// toDomainProfiles converts rows, skipping ones with malformed rules.
// A malformed profile must not take down resolution for the whole context,
// the resolver falls back to the remaining candidates.
func (r *ProfileRepository) toDomainProfiles(rows []profileSQL) ([]*domain.Profile, error) {
	profiles := make([]*domain.Profile, 0, len(rows))
	var parseErr error
	for i := range rows {
		p, err := r.toDomainProfile(&rows[i])
		if err != nil {
			parseErr = err
			continue
		}
		profiles = append(profiles, p)
	}
	if len(profiles) == 0 && parseErr != nil {
		return nil, parseErr
	}
	if parseErr != nil {
		return profiles, &MalformedProfileError{Err: parseErr}
	}
	return profiles, nil
}

// MalformedProfileError reports that some candidate profiles were skipped
// due to unparsable rules while others were returned successfully.
type MalformedProfileError struct {
	Err error
}

func (e *MalformedProfileError) Error() string { return e.Err.Error() }

func (e *MalformedProfileError) Unwrap() error { return e.Err }
