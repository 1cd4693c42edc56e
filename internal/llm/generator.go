package llm

import (
	"context"
	"errors"

	"github.com/jonathan/career-advisor/internal/types"
)

// ErrNoUserMessage is returned when the history does not end with a user message
var ErrNoUserMessage = errors.New("conversation must end with a user message")

// ReplyGenerator produces the assistant reply for a conversation.
// history is ordered oldest first and ends with the user message being answered.
// profile carries optional user-supplied context and may be nil.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, history []types.Message, profile *types.PartialProfile) (string, error)
}

// lastUserMessage returns the final message when it was written by the user
func lastUserMessage(history []types.Message) (types.Message, bool) {
	if len(history) == 0 {
		return types.Message{}, false
	}
	last := history[len(history)-1]
	return last, last.Role == types.RoleUser
}
