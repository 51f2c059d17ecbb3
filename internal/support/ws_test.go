package support

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

// dialWS starts the support WebSocket handler with zero pacing and dials it.
func dialWS(t *testing.T) (*websocket.Conn, context.Context) {
	t.Helper()

	m := &Module{logger: zap.NewNop()}
	srv := httptest.NewServer(http.HandlerFunc(m.handleWS))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.Dial(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })

	return conn, ctx
}

func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) ServerFrame {
	t.Helper()
	var frame ServerFrame
	if err := wsjson.Read(ctx, conn, &frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame
}

func writeFrame(t *testing.T, ctx context.Context, conn *websocket.Conn, frame ClientFrame) {
	t.Helper()
	if err := wsjson.Write(ctx, conn, frame); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func TestWSGreetingSentFirst(t *testing.T) {
	conn, ctx := dialWS(t)

	frame := readFrame(t, ctx, conn)
	if frame.Type != FrameReply {
		t.Fatalf("frame type = %q, want %q", frame.Type, FrameReply)
	}
	if frame.Message == nil || frame.Message.Role != RoleBot {
		t.Fatalf("greeting = %+v, want bot message", frame.Message)
	}
	if !frame.Message.ShowOptions || len(frame.Message.Options) == 0 {
		t.Error("greeting should carry conversation starters")
	}
}

func TestWSMessageGetsReply(t *testing.T) {
	conn, ctx := dialWS(t)
	readFrame(t, ctx, conn) // greeting

	writeFrame(t, ctx, conn, ClientFrame{Type: FrameMessage, Text: "tell me about pricing"})

	frame := readFrame(t, ctx, conn)
	if frame.Type != FrameReply {
		t.Fatalf("frame type = %q, want %q", frame.Type, FrameReply)
	}
	if frame.Message == nil || frame.Message.Role != RoleBot || frame.Message.Content == "" {
		t.Fatalf("reply = %+v, want non-empty bot message", frame.Message)
	}
}

func TestWSEndChatSendsSessionEndThenGreeting(t *testing.T) {
	conn, ctx := dialWS(t)
	readFrame(t, ctx, conn) // greeting

	writeFrame(t, ctx, conn, ClientFrame{Type: FrameOption, Action: ActionEndChat})

	end := readFrame(t, ctx, conn)
	if end.Type != FrameSessionEnd {
		t.Fatalf("frame type = %q, want %q", end.Type, FrameSessionEnd)
	}

	greeting := readFrame(t, ctx, conn)
	if greeting.Type != FrameReply {
		t.Fatalf("frame type = %q, want %q", greeting.Type, FrameReply)
	}
	if greeting.Message == nil || !greeting.Message.ShowOptions {
		t.Errorf("post-end frame = %+v, want fresh greeting with options", greeting.Message)
	}
}

func TestWSResetSendsGreeting(t *testing.T) {
	conn, ctx := dialWS(t)
	readFrame(t, ctx, conn) // greeting

	writeFrame(t, ctx, conn, ClientFrame{Type: FrameReset})

	frame := readFrame(t, ctx, conn)
	if frame.Type != FrameReply || frame.Message == nil || !frame.Message.ShowOptions {
		t.Fatalf("frame = %+v, want fresh greeting", frame)
	}
}

func TestWSErrorsReportedInBand(t *testing.T) {
	conn, ctx := dialWS(t)
	readFrame(t, ctx, conn) // greeting

	// A blank message is a protocol-level problem, not a connection error.
	writeFrame(t, ctx, conn, ClientFrame{Type: FrameMessage, Text: "   "})

	frame := readFrame(t, ctx, conn)
	if frame.Type != FrameError || frame.Error == "" {
		t.Fatalf("frame = %+v, want error frame", frame)
	}

	// The connection stays usable afterwards.
	writeFrame(t, ctx, conn, ClientFrame{Type: FrameMessage, Text: "hello"})
	reply := readFrame(t, ctx, conn)
	if reply.Type != FrameReply || reply.Message == nil {
		t.Fatalf("frame after error = %+v, want reply", reply)
	}
}

func TestWSUnknownFrameType(t *testing.T) {
	conn, ctx := dialWS(t)
	readFrame(t, ctx, conn) // greeting

	writeFrame(t, ctx, conn, ClientFrame{Type: "bogus"})

	frame := readFrame(t, ctx, conn)
	if frame.Type != FrameError {
		t.Fatalf("frame type = %q, want %q", frame.Type, FrameError)
	}
	if !strings.Contains(frame.Error, "unknown frame type") {
		t.Errorf("error = %q, want unknown frame type", frame.Error)
	}
}
