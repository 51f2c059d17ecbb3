package support

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

// FrameType discriminates WebSocket frames in both directions.
type FrameType string

const (
	// Client to server.
	FrameMessage  FrameType = "message"
	FrameOption   FrameType = "option"
	FrameFeedback FrameType = "feedback"
	FrameReset    FrameType = "reset"

	// Server to client.
	FrameReply      FrameType = "message"
	FrameSessionEnd FrameType = "session_end"
	FrameError      FrameType = "error"
)

// ClientFrame is a frame received from the browser widget.
type ClientFrame struct {
	Type      FrameType `json:"type"`
	Text      string    `json:"text,omitempty"`
	Action    string    `json:"action,omitempty"`
	MessageID string    `json:"messageId,omitempty"`
	Verdict   string    `json:"verdict,omitempty"`
}

// ServerFrame is a frame sent to the browser widget.
type ServerFrame struct {
	Type      FrameType `json:"type"`
	Message   *Message  `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// handleWS upgrades the connection and runs one session per socket. The
// session dies with the connection; transcripts are never persisted.
func (m *Module) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Sessions are anonymous and hold no account data, so any
		// origin may connect.
		InsecureSkipVerify: true,
	})
	if err != nil {
		m.logger.Error("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	session := NewSession(m.sessionConfig())
	ctx := r.Context()

	// Send the greeting before reading anything, mirroring the widget
	// opening with a welcome message.
	greeting := session.Transcript()[0]
	if err := m.writeFrame(ctx, conn, ServerFrame{Type: FrameReply, Message: &greeting}); err != nil {
		return
	}

	for {
		var frame ClientFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return
		}
		if err := m.dispatch(ctx, conn, session, frame); err != nil {
			return
		}
	}
}

// dispatch handles one client frame. A returned error means the connection
// is unusable; protocol-level problems are reported in-band instead.
func (m *Module) dispatch(ctx context.Context, conn *websocket.Conn, session *Session, frame ClientFrame) error {
	var (
		reply *Message
		err   error
	)

	switch frame.Type {
	case FrameMessage:
		reply, err = session.Submit(ctx, frame.Text)
	case FrameOption:
		reply, err = session.SelectOption(ctx, frame.Action)
		if err == nil && reply == nil && frame.Action == ActionEndChat {
			if werr := m.writeFrame(ctx, conn, ServerFrame{Type: FrameSessionEnd}); werr != nil {
				return werr
			}
			greeting := session.Transcript()[0]
			return m.writeFrame(ctx, conn, ServerFrame{Type: FrameReply, Message: &greeting})
		}
	case FrameFeedback:
		reply, err = session.Feedback(ctx, frame.MessageID, frame.Verdict)
	case FrameReset:
		session.Reset()
		greeting := session.Transcript()[0]
		reply = &greeting
	default:
		err = errors.New("support: unknown frame type")
	}

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return m.writeFrame(ctx, conn, ServerFrame{Type: FrameError, Error: err.Error()})
	}
	if reply == nil {
		// Feedback no-op: nothing to send.
		return nil
	}
	return m.writeFrame(ctx, conn, ServerFrame{Type: FrameReply, Message: reply})
}

func (m *Module) writeFrame(ctx context.Context, conn *websocket.Conn, frame ServerFrame) error {
	frame.Timestamp = time.Now().UTC()
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return wsjson.Write(writeCtx, conn, frame)
}
