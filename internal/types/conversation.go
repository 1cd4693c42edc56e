package types

import "time"

// Role identifies the author of a conversation message
type Role string

// Message roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatResult is returned after a user message has been processed
type ChatResult struct {
	Message            Message               `json:"message"`
	Recommendations    *RecommendationBundle `json:"recommendations"`
	ConversationLength int                   `json:"conversationLength"`
}
