package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/career-advisor/internal/prompts"
	"github.com/jonathan/career-advisor/internal/types"
	"google.golang.org/api/option"
)

// GeminiGenerator implements ReplyGenerator with Google Gemini
type GeminiGenerator struct {
	client *genai.Client
	config *Config
}

// NewGeminiGenerator creates a new Gemini-backed generator
func NewGeminiGenerator(ctx context.Context, config *Config, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		config: config,
	}, nil
}

// GenerateReply sends the conversation to Gemini as a chat session. The career
// system prompt and the optional profile context are passed as system instructions.
func (g *GeminiGenerator) GenerateReply(ctx context.Context, history []types.Message, profile *types.PartialProfile) (string, error) {
	last, ok := lastUserMessage(history)
	if !ok {
		return "", ErrNoUserMessage
	}

	model := g.client.GenerativeModel(g.config.Model)
	model.SetTemperature(g.config.Temperature)
	model.SetMaxOutputTokens(g.config.MaxOutputTokens)
	model.SystemInstruction = systemInstruction(profile)

	chat := model.StartChat()
	chat.History = buildHistory(history[:len(history)-1])

	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func systemInstruction(profile *types.PartialProfile) *genai.Content {
	parts := []genai.Part{genai.Text(prompts.Chat(prompts.KeyCareerSystem))}
	if !profile.IsEmpty() {
		parts = append(parts, genai.Text(ProfileContext(profile)))
	}
	return &genai.Content{Parts: parts}
}

// ProfileContext renders the user-supplied profile for the model
func ProfileContext(profile *types.PartialProfile) string {
	orDefault := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}

	return prompts.Format(prompts.Chat(prompts.KeyProfileContext), map[string]string{
		"Name":       orDefault(profile.Name, "Not provided"),
		"Title":      orDefault(profile.Title, "Not specified"),
		"Skills":     orDefault(strings.Join(profile.Skills, ", "), "Not specified"),
		"Experience": orDefault(profile.Experience, "Not specified"),
		"Education":  orDefault(profile.Education, "Not specified"),
		"Location":   orDefault(profile.Location, "Not specified"),
	})
}

// buildHistory maps conversation messages to Gemini chat contents
func buildHistory(messages []types.Message) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == types.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", fmt.Errorf("empty text in response")
	}
	return text, nil
}
