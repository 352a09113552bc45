package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	frameSendQueue    = 32
	frameWriteTimeout = 5 * time.Second
)

var frameUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// socketWindow adapts a websocket connection to gis.FrameWindow.
// PostMessage never blocks; a full or closed queue reports the frame as unreachable.
type socketWindow struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newSocketWindow(conn *websocket.Conn) *socketWindow {
	return &socketWindow{conn: conn, send: make(chan []byte, frameSendQueue)}
}

func (s *socketWindow) PostMessage(msg gis.HostMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return gis.ErrFrameUnreachable
	}
	select {
	case s.send <- raw:
		return nil
	default:
		return fmt.Errorf("%w: send queue full", gis.ErrFrameUnreachable)
	}
}

func (s *socketWindow) writeLoop() {
	for raw := range s.send {
		_ = s.conn.SetWriteDeadline(time.Now().Add(frameWriteTimeout))
		if err := s.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			s.close()
		}
	}
}

func (s *socketWindow) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

// HandleFrameSocket connects the embedded map frame to a view. Host messages
// flow down the socket; mapReady and layerStateUpdate flow back up.
func (h *Handlers) HandleFrameSocket(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := h.Sessions.Session(sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	conn, err := frameUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger().Debug("frame upgrade failed", zap.Error(err))
		return
	}
	conn.SetReadLimit(gis.MaxFrameMessageBytes)

	win := newSocketWindow(conn)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		win.writeLoop()
	}()

	ctx := r.Context()
	defer func() {
		win.close()
		<-writerDone
		_ = conn.Close()
	}()
	if err := session.AttachFrame(ctx, win); err != nil {
		h.logger().Warn("frame attach failed", zap.String("session", sessionID), zap.Error(err))
		return
	}
	defer session.DetachFrame(ctx, win)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		session.Receive(ctx, raw)
	}
}
