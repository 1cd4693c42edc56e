package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/llm"
	"github.com/jonathan/career-advisor/internal/resume"
	"github.com/jonathan/career-advisor/internal/session"
	"github.com/jonathan/career-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	composer := NewComposer(c)
	manager := session.NewManager(session.NewMemoryStore(time.Hour), llm.FallbackGenerator{}, composer, zaptest.NewLogger(t))
	return NewEngine(c, composer, manager)
}

func TestEngine_ChatFlow(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	res, err := e.PostChatMessage(ctx, "s1", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ConversationLength)
	assert.Nil(t, res.Recommendations)
	assert.Equal(t, llm.FallbackReply("hello"), res.Message.Content)

	res, err = e.PostChatMessage(ctx, "s1", "I know javascript and react", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.ConversationLength)
	require.NotNil(t, res.Recommendations)
	require.NotEmpty(t, res.Recommendations.Jobs)
	assert.Equal(t, "Software Developer", res.Recommendations.Jobs[0].Title)

	history, err := e.SessionHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, history, 4)

	require.NoError(t, e.ClearSession(ctx, "s1"))
	history, err = e.SessionHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestEngine_GetRecommendationsWithoutSession(t *testing.T) {
	e := newTestEngine(t)

	bundle, err := e.GetRecommendations(context.Background(), "", &types.PartialProfile{Skills: []string{"Python", "SQL"}})
	require.NoError(t, err)
	require.Len(t, bundle.Jobs, 3)
	assert.Equal(t, "15-1132", bundle.Jobs[0].ID)
}

func TestEngine_GetRecommendationsUnknownSession(t *testing.T) {
	e := newTestEngine(t)

	bundle, err := e.GetRecommendations(context.Background(), "missing", nil)
	require.NoError(t, err)
	assert.Len(t, bundle.Jobs, 3, "no skills falls back to the first three jobs")
}

func TestEngine_LearningResources(t *testing.T) {
	e := newTestEngine(t)

	assert.Empty(t, e.LearningResources("", nil))

	titles := resourceTitles(e.LearningResources("Web Developer", []string{"python"}))
	assert.Equal(t, []string{
		"The Complete Web Developer Course 2024",
		"freeCodeCamp - Responsive Web Design",
		"MDN Web Docs",
		"CSS-Tricks",
		"LinkedIn Learning - Career Development",
		"Harvard Business Review - Career Management",
	}, titles)

	titles = resourceTitles(e.LearningResources("", []string{"React"}))
	assert.Equal(t, []string{
		"React - The Complete Guide",
		"React Official Documentation",
		"LinkedIn Learning - Career Development",
		"Harvard Business Review - Career Management",
	}, titles)
}

func TestEngine_MentorshipRecommendations(t *testing.T) {
	e := newTestEngine(t)

	mentors := e.MentorshipRecommendations(nil)
	assert.Equal(t, []string{"ADPList", "MentorCruise", "LinkedIn"}, mentorPlatforms(mentors))

	mentors = e.MentorshipRecommendations([]string{"Senior Marketing Manager"})
	assert.Equal(t, []string{"LinkedIn", "ADPList", "SCORE"}, mentorPlatforms(mentors))
}

func TestEngine_PlatformsByCategory(t *testing.T) {
	e := newTestEngine(t)

	assert.Len(t, e.PlatformsByCategory(""), 6)

	names := []string{}
	for _, p := range e.PlatformsByCategory("business") {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"MentorCruise", "SCORE"}, names)
}

func TestEngine_SearchJobs(t *testing.T) {
	e := newTestEngine(t)

	jobs := e.SearchJobs("", types.SearchFilters{Category: "design", Level: "entry"})
	require.Len(t, jobs, 1)
	assert.Equal(t, "Graphic Designer", jobs[0].Title)
}

func TestEngine_CreateSession(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	id, err := e.CreateSession(ctx)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	history, err := e.SessionHistory(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestEngine_AnalyzeCV(t *testing.T) {
	e := newTestEngine(t)
	cv := "Software engineer with 4 years of experience in Python, SQL, Docker, AWS and Git."

	report, err := e.AnalyzeCV(resume.MIMEText, []byte(cv))
	require.NoError(t, err)

	assert.Contains(t, report.Keywords, "python")
	assert.Empty(t, report.CourseSuggestion)
	assert.NotEmpty(t, report.RecommendedJobs)
	assert.Equal(t, types.ExperienceMid, report.Profile.Experience)
	assert.Contains(t, report.Profile.Skills, "python")
	assert.NotEmpty(t, report.Recommendations.Jobs)

	_, err = e.AnalyzeCV("image/png", []byte{1})
	assert.ErrorIs(t, err, resume.ErrUnsupportedType)
}

func TestEngine_WithoutSessions(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	e := NewEngine(c, NewComposer(c), nil)

	_, err = e.PostChatMessage(context.Background(), "s1", "hi", nil)
	assert.Error(t, err)

	bundle, err := e.GetRecommendations(context.Background(), "s1", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.Jobs)
}

func TestEngine_RecommendForProfile(t *testing.T) {
	e := newTestEngine(t)

	bundle := e.RecommendForProfile(types.Profile{Skills: []string{"figma"}, Interests: []string{"design"}})
	require.NotEmpty(t, bundle.Jobs)
	assert.Equal(t, "Web and Digital Interface Designer", bundle.Jobs[0].Title)
}
