package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-advisor/internal/llm"
	"github.com/jonathan/career-advisor/internal/profile"
	"github.com/jonathan/career-advisor/internal/types"
	"go.uber.org/zap"
)

// RecommendAfter is the message count from which each chat turn refreshes
// the session's recommendations
const RecommendAfter = 4

// Recommender turns a profile into a recommendation bundle
type Recommender interface {
	Recommend(p types.Profile) types.RecommendationBundle
}

// Manager orchestrates conversations. Turns on the same session id are
// serialized; turns on different ids run concurrently.
type Manager struct {
	store       Store
	replies     llm.ReplyGenerator
	recommender Recommender
	locks       *keyedMutex
	logger      *zap.Logger
	now         func() time.Time
}

// NewManager creates a Manager
func NewManager(store Store, replies llm.ReplyGenerator, recommender Recommender, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:       store,
		replies:     replies,
		recommender: recommender,
		locks:       newKeyedMutex(),
		logger:      logger,
		now:         time.Now,
	}
}

// Create starts an empty session with a fresh id
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	now := m.now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		Messages:  []types.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

// PostMessage appends a user message, generates the assistant reply and, once
// the conversation has at least RecommendAfter messages, refreshes the
// recommendations from the full history. Unknown ids start a new session.
func (m *Manager) PostMessage(ctx context.Context, id, text string, explicit *types.PartialProfile) (*types.ChatResult, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	// 1. Load or start the session
	s, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Append the user message
	s.Messages = append(s.Messages, types.Message{
		Role:      types.RoleUser,
		Content:   text,
		Timestamp: m.now().UTC(),
	})

	// 3. Generate the reply; generation failures never fail the turn
	reply, err := m.replies.GenerateReply(ctx, s.Messages, explicit)
	if err != nil {
		m.logger.Warn("reply generator failed, using fallback reply",
			zap.String("session_id", id), zap.Error(err))
		reply = llm.FallbackReply(text)
	}
	assistant := types.Message{
		Role:      types.RoleAssistant,
		Content:   reply,
		Timestamp: m.now().UTC(),
	}
	s.Messages = append(s.Messages, assistant)

	// 4. Refresh recommendations
	if len(s.Messages) >= RecommendAfter {
		bundle := m.recommender.Recommend(profile.Extract(s.Messages, explicit))
		s.LastRecommendations = &bundle
	}

	// 5. Persist
	s.UpdatedAt = m.now().UTC()
	if err := m.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &types.ChatResult{
		Message:            assistant,
		Recommendations:    s.LastRecommendations,
		ConversationLength: len(s.Messages),
	}, nil
}

// History returns the messages of a session, empty for unknown ids
func (m *Manager) History(ctx context.Context, id string) ([]types.Message, error) {
	s, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return []types.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s.Messages == nil {
		return []types.Message{}, nil
	}
	return s.Messages, nil
}

// Clear drops a session with its history and cached recommendations
func (m *Manager) Clear(ctx context.Context, id string) error {
	unlock := m.locks.Lock(id)
	defer unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Recommendations builds a bundle from the session history (if any) and the
// explicit profile. The session itself is not modified.
func (m *Manager) Recommendations(ctx context.Context, id string, explicit *types.PartialProfile) (types.RecommendationBundle, error) {
	var history []types.Message
	if id != "" {
		var err error
		history, err = m.History(ctx, id)
		if err != nil {
			return types.RecommendationBundle{}, err
		}
	}
	return m.recommender.Recommend(profile.Extract(history, explicit)), nil
}

// Sweep removes expired sessions from the store
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	return m.store.Sweep(ctx)
}

// Count returns the number of live sessions
func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.store.Count(ctx)
}

func (m *Manager) load(ctx context.Context, id string) (*Session, error) {
	s, err := m.store.Get(ctx, id)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	now := m.now().UTC()
	return &Session{ID: id, Messages: []types.Message{}, CreatedAt: now}, nil
}
