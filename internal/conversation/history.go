package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/bluebird3624/install-agent/internal/ai"
)

// Message is a single turn in the conversation.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// History holds the rolling conversation context sent to the model.
type History struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Name is the file name the history was loaded from, if any.
	Name string `json:"-"`

	systemPrompt string
	limit        int
}

// NewHistory creates an empty history. limit caps how many messages are
// kept; older ones are dropped first. A limit of 0 keeps everything.
func NewHistory(systemPrompt string, limit int) *History {
	now := time.Now()
	return &History{
		ID:           uuid.New().String(),
		Messages:     []Message{},
		CreatedAt:    now,
		UpdatedAt:    now,
		systemPrompt: systemPrompt,
		limit:        limit,
	}
}

// Add appends a message, trimming the oldest entries past the limit.
func (h *History) Add(role, content string) {
	h.Messages = append(h.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})

	if h.limit > 0 && len(h.Messages) > h.limit {
		h.Messages = h.Messages[len(h.Messages)-h.limit:]
	}

	h.UpdatedAt = time.Now()
}

// ChatMessages returns the history formatted for the chat endpoint,
// with the system prompt first.
func (h *History) ChatMessages() []ai.Message {
	messages := make([]ai.Message, 0, len(h.Messages)+1)
	messages = append(messages, ai.Message{Role: "system", Content: h.systemPrompt})

	for _, msg := range h.Messages {
		messages = append(messages, ai.Message{Role: msg.Role, Content: msg.Content})
	}

	return messages
}
