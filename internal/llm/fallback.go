package llm

import (
	"context"
	"strings"

	"github.com/jonathan/career-advisor/internal/prompts"
	"github.com/jonathan/career-advisor/internal/types"
)

// fallbackRules are checked in order against the lower-cased user message.
// Matching is plain substring search, so "hi" also fires inside "this".
var fallbackRules = []struct {
	keywords []string
	key      string
}{
	{[]string{"job", "career", "work"}, prompts.KeyFallbackCareer},
	{[]string{"skill", "learn", "study"}, prompts.KeyFallbackLearning},
	{[]string{"experience", "background"}, prompts.KeyFallbackBackground},
	{[]string{"goal", "future", "want"}, prompts.KeyFallbackGoals},
	{[]string{"hello", "hi", "hey"}, prompts.KeyFallbackGreeting},
}

// FallbackReply picks a canned reply for a user message by keyword
func FallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return prompts.Chat(rule.key)
			}
		}
	}
	return prompts.Chat(prompts.KeyFallbackDefault)
}

// FallbackGenerator answers with keyword-triggered canned replies. It never fails.
type FallbackGenerator struct{}

// GenerateReply implements ReplyGenerator
func (FallbackGenerator) GenerateReply(_ context.Context, history []types.Message, _ *types.PartialProfile) (string, error) {
	var text string
	if len(history) > 0 {
		text = history[len(history)-1].Content
	}
	return FallbackReply(text), nil
}
