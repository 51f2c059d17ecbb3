package ws

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func newTestClient(id string) *Client {
	return &Client{
		conn:   nil, // Not needed for hub tests
		id:     id,
		send:   make(chan Message, 256),
		logger: testLogger(),
	}
}

func TestRegisterAndUnregister(t *testing.T) {
	hub := NewHub(testLogger())
	client := newTestClient("c-1")

	hub.Register(client)
	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}

	// Verify channel is closed by attempting to receive.
	if _, ok := <-client.send; ok {
		t.Error("client.send channel is not closed")
	}
}

func TestUnregisterNotRegistered(t *testing.T) {
	hub := NewHub(testLogger())
	client := newTestClient("c-1")

	// Unregister without registering first should not panic.
	hub.Unregister(client)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(testLogger())
	a := newTestClient("c-1")
	b := newTestClient("c-2")
	hub.Register(a)
	hub.Register(b)

	msg := Message{
		Type:      MessageChatCompleted,
		Timestamp: time.Now().UTC(),
		Data:      ChatCompletedData{Provider: "openai", Model: "gpt-3.5-turbo"},
	}
	hub.Broadcast(msg)

	for _, c := range []*Client{a, b} {
		select {
		case got := <-c.send:
			if got.Type != MessageChatCompleted {
				t.Errorf("client %s got type %q, want %q", c.id, got.Type, MessageChatCompleted)
			}
		default:
			t.Errorf("client %s received no message", c.id)
		}
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(testLogger())
	client := &Client{id: "c-1", send: make(chan Message, 1), logger: testLogger()}
	hub.Register(client)

	hub.Broadcast(Message{Type: MessageCampaignCreated})
	hub.Broadcast(Message{Type: MessageCampaignUpdated})

	// The second message is dropped rather than blocking the hub.
	if got := <-client.send; got.Type != MessageCampaignCreated {
		t.Errorf("got type %q, want %q", got.Type, MessageCampaignCreated)
	}
	select {
	case extra := <-client.send:
		t.Errorf("unexpected extra message %q", extra.Type)
	default:
	}
}
