package llm

import (
	"time"

	"github.com/google/uuid"
)

// Role constants for the Message.Role field.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single message in a provider-agnostic conversation.
// Immutable once created; transcript order is chronological order.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // One of RoleSystem, RoleUser, RoleAssistant.
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAssistantMessage mints a fresh assistant message wrapping a provider's
// reply text.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// Provider selector values accepted by the relay.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
	ProviderCustom    = "custom"
)
