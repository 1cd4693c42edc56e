package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/career-advisor/internal/db"
	"github.com/jonathan/career-advisor/internal/types"
)

// PostgresStore keeps sessions in the conversation_sessions table. Rows idle
// for longer than the TTL are invisible to Get and deleted by Sweep.
type PostgresStore struct {
	db  *db.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore creates a store on an open database
func NewPostgresStore(database *db.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: database, ttl: ttl, now: time.Now}
}

// cutoff is the oldest updated_at still considered live
func (p *PostgresStore) cutoff() time.Time {
	if p.ttl <= 0 {
		return time.Time{}
	}
	return p.now().Add(-p.ttl)
}

// Get implements Store
func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	rec, err := p.db.GetSession(ctx, id, p.cutoff())
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	s := &Session{ID: rec.ID, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
	if err := json.Unmarshal(rec.Messages, &s.Messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	if len(rec.LastRecommendations) > 0 {
		var bundle types.RecommendationBundle
		if err := json.Unmarshal(rec.LastRecommendations, &bundle); err != nil {
			return nil, fmt.Errorf("failed to decode recommendations: %w", err)
		}
		s.LastRecommendations = &bundle
	}
	return s, nil
}

// Put implements Store
func (p *PostgresStore) Put(ctx context.Context, s *Session) error {
	messages, err := json.Marshal(s.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}

	var recs []byte
	if s.LastRecommendations != nil {
		if recs, err = json.Marshal(s.LastRecommendations); err != nil {
			return fmt.Errorf("failed to encode recommendations: %w", err)
		}
	}

	return p.db.UpsertSession(ctx, &db.SessionRecord{
		ID:                  s.ID,
		Messages:            messages,
		LastRecommendations: recs,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	})
}

// Delete implements Store
func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	return p.db.DeleteSession(ctx, id)
}

// Sweep implements Store
func (p *PostgresStore) Sweep(ctx context.Context) (int, error) {
	if p.ttl <= 0 {
		return 0, nil
	}
	n, err := p.db.DeleteSessionsBefore(ctx, p.cutoff())
	return int(n), err
}

// Count implements Store
func (p *PostgresStore) Count(ctx context.Context) (int, error) {
	return p.db.CountSessionsSince(ctx, p.cutoff())
}
