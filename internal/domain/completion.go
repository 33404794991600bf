package domain

import "context"

// Role tags a chat message with its author.
type Role string

// Chat roles understood by the completion provider.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged entry of a completion request.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest is a bounded list of messages plus generation limits.
// Zero Temperature leaves the provider default.
type CompletionRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// CompletionResult carries generated text and token usage.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// Completer sends a completion request to a language-model provider.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)
}

// SystemMessage builds a system message.
func SystemMessage(content string) Message { return Message{Role: RoleSystem, Content: content} }

// UserMessage builds a user message.
func UserMessage(content string) Message { return Message{Role: RoleUser, Content: content} }
