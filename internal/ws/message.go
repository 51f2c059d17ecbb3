package ws

import "time"

// MessageType discriminates WebSocket messages.
type MessageType string

const (
	MessageCampaignCreated MessageType = "campaign.created"
	MessageCampaignUpdated MessageType = "campaign.updated"
	MessageCampaignDeleted MessageType = "campaign.deleted"
	MessageChatCompleted   MessageType = "chat.completed"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data"`
}

// ChatCompletedData is the payload for chat.completed messages. Only
// routing metadata crosses the socket; message content never does.
type ChatCompletedData struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
