package llm

import "context"

// Role identifies a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation message.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest holds the parameters for a completion call.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionResponse holds the result of a completion call.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// Provider is the text-generation service used for answer synthesis.
// Implementations may be slow (seconds) and may fail transiently; the
// orchestrator treats every failure as recoverable.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the provider's name.
	Name() string
}
