package ai

import "context"

// Message represents a chat message
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// Provider defines the interface for model backends
type Provider interface {
	// Chat sends the full message history and returns the assistant reply.
	Chat(ctx context.Context, messages []Message) (string, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// ListModels returns the model names the backend can serve.
	ListModels(ctx context.Context) ([]string, error)
}
