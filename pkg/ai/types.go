package ai

import "context"

// Message roles understood by assistants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of an assistant conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Assistant describes a chat model that answers a conversation with a single
// reply. The first message is expected to carry the system prompt.
type Assistant interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
