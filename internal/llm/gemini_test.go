package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/career-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestProfileContext_Defaults(t *testing.T) {
	out := ProfileContext(&types.PartialProfile{Skills: []string{"Go", "SQL"}})

	assert.Contains(t, out, "- Name: Not provided")
	assert.Contains(t, out, "- Current Role: Not specified")
	assert.Contains(t, out, "- Skills: Go, SQL")
	assert.Contains(t, out, "- Location: Not specified")
}

func TestSystemInstruction(t *testing.T) {
	content := systemInstruction(nil)
	require.Len(t, content.Parts, 1)

	content = systemInstruction(&types.PartialProfile{Name: "Ana"})
	require.Len(t, content.Parts, 2)
	assert.Contains(t, string(content.Parts[1].(genai.Text)), "- Name: Ana")
}

func TestBuildHistory(t *testing.T) {
	history := buildHistory([]types.Message{
		{Role: types.RoleUser, Content: "hi"},
		{Role: types.RoleAssistant, Content: "hello"},
	})

	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, genai.Text("hello"), history[1].Parts[0])
}

func TestLastUserMessage(t *testing.T) {
	_, ok := lastUserMessage(nil)
	assert.False(t, ok)

	_, ok = lastUserMessage([]types.Message{{Role: types.RoleAssistant, Content: "x"}})
	assert.False(t, ok)

	m, ok := lastUserMessage([]types.Message{{Role: types.RoleUser, Content: "x"}})
	assert.True(t, ok)
	assert.Equal(t, "x", m.Content)
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello "), genai.Text("there ")}},
		}},
	}
	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}}}},
	})
	assert.Error(t, err)
}
