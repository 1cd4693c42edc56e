// Package session keeps per-session conversation history and orchestrates a
// chat turn: user message, assistant reply, profile and recommendation refresh.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/career-advisor/internal/types"
)

// ErrNotFound is returned by a Store when a session does not exist or has expired
var ErrNotFound = errors.New("session not found")

// Session is the stored state of one conversation
type Session struct {
	ID                  string                      `json:"id"`
	Messages            []types.Message             `json:"messages"`
	LastRecommendations *types.RecommendationBundle `json:"lastRecommendations,omitempty"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
}

// Clone returns a copy whose message slice can be appended to independently
func (s *Session) Clone() *Session {
	c := *s
	c.Messages = append([]types.Message(nil), s.Messages...)
	return &c
}

// Store persists sessions by id. Implementations must be safe for concurrent use;
// serializing updates of a single session is the Manager's job.
type Store interface {
	// Get returns ErrNotFound for unknown or expired ids
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	// Delete is idempotent
	Delete(ctx context.Context, id string) error
	// Sweep removes expired sessions and returns how many were removed
	Sweep(ctx context.Context) (int, error)
	// Count returns the number of live sessions
	Count(ctx context.Context) (int, error)
}
