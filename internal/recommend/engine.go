package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/profile"
	"github.com/jonathan/career-advisor/internal/resume"
	"github.com/jonathan/career-advisor/internal/session"
	"github.com/jonathan/career-advisor/internal/types"
)

// Engine is the application boundary used by the HTTP handlers and the CLI
type Engine struct {
	catalog  *catalog.Catalog
	composer *Composer
	sessions *session.Manager
}

// NewEngine wires an Engine. sessions may be nil for callers that never chat,
// such as the one-shot CLI commands.
func NewEngine(c *catalog.Catalog, composer *Composer, sessions *session.Manager) *Engine {
	return &Engine{catalog: c, composer: composer, sessions: sessions}
}

// CVReport is the result of analyzing an uploaded résumé
type CVReport struct {
	resume.Analysis
	Profile         types.Profile              `json:"profile"`
	Recommendations types.RecommendationBundle `json:"recommendations"`
}

// PostChatMessage runs one chat turn on the session
func (e *Engine) PostChatMessage(ctx context.Context, sessionID, message string, explicit *types.PartialProfile) (*types.ChatResult, error) {
	if err := e.requireSessions(); err != nil {
		return nil, err
	}
	return e.sessions.PostMessage(ctx, sessionID, message, explicit)
}

// GetRecommendations builds a bundle from the session history (if any) and
// the explicit profile
func (e *Engine) GetRecommendations(ctx context.Context, sessionID string, explicit *types.PartialProfile) (types.RecommendationBundle, error) {
	if e.sessions == nil || sessionID == "" {
		return e.composer.Recommend(profile.Extract(nil, explicit)), nil
	}
	return e.sessions.Recommendations(ctx, sessionID, explicit)
}

// RecommendForProfile builds a bundle for an already extracted profile
func (e *Engine) RecommendForProfile(p types.Profile) types.RecommendationBundle {
	return e.composer.Recommend(p)
}

// SearchJobs searches the catalog by keyword and filters
func (e *Engine) SearchJobs(query string, filters types.SearchFilters) []types.JobListing {
	return e.catalog.Search(query, filters)
}

// LearningResources returns resources for a job title, or for the skills
// when no title is given. With neither the result is empty.
func (e *Engine) LearningResources(jobTitle string, skillNames []string) []types.LearningResource {
	switch {
	case strings.TrimSpace(jobTitle) != "":
		return e.composer.Resources([]string{jobTitle}, nil)
	case len(skillNames) > 0:
		return e.composer.Resources(nil, skillNames)
	default:
		return []types.LearningResource{}
	}
}

// MentorshipRecommendations returns mentors for the job titles, or the first
// three platforms when no titles are given
func (e *Engine) MentorshipRecommendations(jobTitles []string) []types.MentorRecommendation {
	return e.composer.Mentors(jobTitles)
}

// PlatformsByCategory lists mentorship platforms, optionally filtered by category
func (e *Engine) PlatformsByCategory(category string) []types.MentorshipPlatform {
	if category == "" {
		return e.catalog.Platforms()
	}
	return e.catalog.PlatformsByCategory(category)
}

// CreateSession starts an empty session and returns its id
func (e *Engine) CreateSession(ctx context.Context) (string, error) {
	if err := e.requireSessions(); err != nil {
		return "", err
	}
	s, err := e.sessions.Create(ctx)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

// ClearSession deletes a session and its history
func (e *Engine) ClearSession(ctx context.Context, sessionID string) error {
	if err := e.requireSessions(); err != nil {
		return err
	}
	return e.sessions.Clear(ctx, sessionID)
}

// SessionHistory returns the messages of a session, empty for unknown ids
func (e *Engine) SessionHistory(ctx context.Context, sessionID string) ([]types.Message, error) {
	if err := e.requireSessions(); err != nil {
		return nil, err
	}
	return e.sessions.History(ctx, sessionID)
}

// AnalyzeCV extracts the text of a résumé, runs the keyword analysis and
// builds a full recommendation bundle from the profile found in the text
func (e *Engine) AnalyzeCV(mime string, data []byte) (*CVReport, error) {
	text, err := resume.ExtractText(mime, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract cv text: %w", err)
	}
	return e.AnalyzeCVText(text), nil
}

// AnalyzeCVText is AnalyzeCV for text that has already been extracted
func (e *Engine) AnalyzeCVText(text string) *CVReport {
	p := profile.ExtractText(text, nil)
	return &CVReport{
		Analysis:        resume.Analyze(text, e.catalog.Jobs()),
		Profile:         p,
		Recommendations: e.composer.Recommend(p),
	}
}

func (e *Engine) requireSessions() error {
	if e.sessions == nil {
		return fmt.Errorf("session manager not configured")
	}
	return nil
}
