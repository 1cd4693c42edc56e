package llm

import (
	"context"
	"testing"

	"github.com/jonathan/career-advisor/internal/prompts"
	"github.com/jonathan/career-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackReply(t *testing.T) {
	tests := []struct {
		message string
		key     string
	}{
		{"I need a new JOB", prompts.KeyFallbackCareer},
		{"I want to learn Go", prompts.KeyFallbackLearning},
		{"Tell me about skills", prompts.KeyFallbackLearning},
		{"my background is in retail", prompts.KeyFallbackBackground},
		{"what about the future?", prompts.KeyFallbackGoals},
		{"Hey there", prompts.KeyFallbackGreeting},
		{"this", prompts.KeyFallbackGreeting},
		{"xyz", prompts.KeyFallbackDefault},
		{"", prompts.KeyFallbackDefault},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, prompts.Chat(tt.key), FallbackReply(tt.message))
		})
	}
}

func TestFallbackReply_RuleOrder(t *testing.T) {
	// career keywords win over learning keywords
	assert.Equal(t, prompts.Chat(prompts.KeyFallbackCareer), FallbackReply("I want to learn skills for work"))
}

func TestFallbackGenerator(t *testing.T) {
	history := []types.Message{
		{Role: types.RoleUser, Content: "hello"},
		{Role: types.RoleAssistant, Content: "hi"},
		{Role: types.RoleUser, Content: "what career suits me?"},
	}

	reply, err := FallbackGenerator{}.GenerateReply(context.Background(), history, nil)
	require.NoError(t, err)
	assert.Equal(t, "I'd love to help you with your career! Could you tell me about your current skills and what type of work interests you?", reply)

	reply, err = FallbackGenerator{}.GenerateReply(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, prompts.Chat(prompts.KeyFallbackDefault), reply)
}
