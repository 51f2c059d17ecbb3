// Package ws streams dashboard events (campaign changes, chat relay
// completions) to connected browsers over WebSocket.
package ws

import (
	"context"
	"net/http"

	"github.com/admybrand/pulseboard/internal/campaigns"
	"github.com/admybrand/pulseboard/internal/chat"
	"github.com/admybrand/pulseboard/pkg/plugin"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler provides the WebSocket endpoint for real-time dashboard updates.
type Handler struct {
	hub    *Hub
	bus    plugin.EventBus
	logger *zap.Logger
}

// Compile-time check that Handler implements the server interface.
var _ interface {
	RegisterRoutes(mux *http.ServeMux)
} = (*Handler)(nil)

// NewHandler creates a WebSocket handler and subscribes to dashboard events.
func NewHandler(bus plugin.EventBus, logger *zap.Logger) *Handler {
	h := &Handler{
		hub:    NewHub(logger),
		bus:    bus,
		logger: logger,
	}
	h.subscribeToEvents()
	return h
}

// RegisterRoutes registers WebSocket routes on the server mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/ws/events", h.handleEventStream)
}

// handleEventStream upgrades the connection and streams dashboard events.
func (h *Handler) handleEventStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The stream carries no account data, so any origin may connect.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		id:     uuid.NewString(),
		send:   make(chan Message, 256),
		logger: h.logger,
	}

	h.hub.Register(client)

	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		close(done)
	}()

	// readPump blocks until the client disconnects.
	client.readPump(ctx)

	h.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

// subscribeToEvents forwards bus events to all connected clients.
func (h *Handler) subscribeToEvents() {
	if h.bus == nil {
		return
	}

	campaignTopics := map[string]MessageType{
		campaigns.TopicCampaignCreated: MessageCampaignCreated,
		campaigns.TopicCampaignUpdated: MessageCampaignUpdated,
		campaigns.TopicCampaignDeleted: MessageCampaignDeleted,
	}
	for topic, msgType := range campaignTopics {
		mt := msgType
		h.bus.Subscribe(topic, func(_ context.Context, event plugin.Event) {
			campaign, ok := event.Payload.(*campaigns.Campaign)
			if !ok {
				return
			}
			h.hub.Broadcast(Message{
				Type:      mt,
				Timestamp: event.Timestamp,
				Data:      campaign,
			})
		})
	}

	h.bus.Subscribe(chat.TopicChatCompleted, func(_ context.Context, event plugin.Event) {
		completed, ok := event.Payload.(chat.CompletedEvent)
		if !ok {
			return
		}
		h.hub.Broadcast(Message{
			Type:      MessageChatCompleted,
			Timestamp: event.Timestamp,
			Data: ChatCompletedData{
				Provider: completed.Provider,
				Model:    completed.Model,
			},
		})
	})
}
