package gis

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// StateEvent is published whenever a session's state or frame status changes.
type StateEvent struct {
	SessionID string   `json:"session_id"`
	Kind      string   `json:"kind"`
	Snapshot  Snapshot `json:"snapshot"`
}

// Event kinds.
const (
	EventVisibility   = "visibility"
	EventFilter       = "filter"
	EventAutoReset    = "filter_auto_reset"
	EventActiveLayers = "active_layers"
	EventMapReady     = "map_ready"
	EventFrame        = "frame"
	EventClosed       = "closed"
)

// StateHook receives state events.
type StateHook interface {
	StateChanged(ctx context.Context, event StateEvent) error
}

type noopStateHook struct{}

func (noopStateHook) StateChanged(context.Context, StateEvent) error { return nil }

type subscriber struct {
	session string
	ch      chan StateEvent
}

// BroadcastHook fans state events out to in-process subscribers.
// Slow subscribers miss events rather than block publishers.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]subscriber
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{subs: make(map[int]subscriber)}
}

// StateChanged satisfies StateHook.
func (h *BroadcastHook) StateChanged(_ context.Context, event StateEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.session != "" && sub.session != event.SessionID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns events for one session (or all sessions when sessionID is empty) and a cancel func.
func (h *BroadcastHook) Subscribe(sessionID string) (<-chan StateEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan StateEvent, 16)
	h.subs[id] = subscriber{session: sessionID, ch: ch}
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.ch)
		}
	}
	return ch, cancel
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams the session's state events as JSON.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := h.Subscribe(sessionID)
	defer unsubscribe()

	// hijacked connections do not cancel r.Context, so a read error marks the disconnect
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE streams the session's state events as Server-Sent Events.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request, sessionID string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe(sessionID)
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			_, _ = w.Write([]byte("event: " + event.Kind + "\ndata: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			_, _ = w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
			if event.Kind == EventClosed {
				return
			}
		}
	}
}
