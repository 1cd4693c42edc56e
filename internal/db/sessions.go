package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// SessionRecord is a row of conversation_sessions. Messages and
// LastRecommendations hold raw JSON.
type SessionRecord struct {
	ID                  string
	Messages            []byte
	LastRecommendations []byte
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// GetSession returns the session updated at or after since, or nil when there is none
func (db *DB) GetSession(ctx context.Context, id string, since time.Time) (*SessionRecord, error) {
	var rec SessionRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, messages, last_recommendations, created_at, updated_at
		 FROM conversation_sessions
		 WHERE id = $1 AND updated_at >= $2`,
		id, since,
	).Scan(&rec.ID, &rec.Messages, &rec.LastRecommendations, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &rec, nil
}

// UpsertSession inserts or replaces a session row
func (db *DB) UpsertSession(ctx context.Context, rec *SessionRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO conversation_sessions (id, messages, last_recommendations, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   messages = EXCLUDED.messages,
		   last_recommendations = EXCLUDED.last_recommendations,
		   updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.Messages, rec.LastRecommendations, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// DeleteSession removes a session; deleting a missing id is not an error
func (db *DB) DeleteSession(ctx context.Context, id string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM conversation_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteSessionsBefore removes sessions last updated before cutoff
func (db *DB) DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM conversation_sessions WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountSessionsSince counts sessions updated at or after since
func (db *DB) CountSessionsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversation_sessions WHERE updated_at >= $1`, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}
