package gis

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastHookFiltersBySession(t *testing.T) {
	hook := NewBroadcastHook()
	mine, cancelMine := hook.Subscribe("s1")
	defer cancelMine()
	all, cancelAll := hook.Subscribe("")
	defer cancelAll()

	ctx := context.Background()
	require.NoError(t, hook.StateChanged(ctx, StateEvent{SessionID: "s2", Kind: EventFilter}))
	require.NoError(t, hook.StateChanged(ctx, StateEvent{SessionID: "s1", Kind: EventVisibility}))

	assert.Equal(t, EventVisibility, (<-mine).Kind)
	assert.Equal(t, "s2", (<-all).SessionID)
	assert.Equal(t, "s1", (<-all).SessionID)
	select {
	case ev := <-mine:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestBroadcastHookDropsForSlowSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe("s1")
	for i := 0; i < 100; i++ {
		require.NoError(t, hook.StateChanged(context.Background(), StateEvent{SessionID: "s1"}))
	}
	cancel()
	cancel()
}

func TestServeSSEStreamsUntilClosed(t *testing.T) {
	hook := NewBroadcastHook()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hook.ServeSSE(w, r, "s1")
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// the handler has flushed headers, so the subscription is live
	require.Eventually(t, func() bool {
		hook.mu.RLock()
		defer hook.mu.RUnlock()
		return len(hook.subs) == 1
	}, waitFor, tick)
	require.NoError(t, hook.StateChanged(context.Background(), StateEvent{SessionID: "s1", Kind: EventFilter}))
	require.NoError(t, hook.StateChanged(context.Background(), StateEvent{SessionID: "s1", Kind: EventClosed}))

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "event: ") {
			lines = append(lines, line)
		}
	}
	assert.Equal(t, []string{"event: filter", "event: closed"}, lines)
}

func TestServeWebSocketWritesEvents(t *testing.T) {
	hook := NewBroadcastHook()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hook.ServeWebSocket(w, r, "s1")
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		hook.mu.RLock()
		defer hook.mu.RUnlock()
		return len(hook.subs) == 1
	}, waitFor, tick)
	require.NoError(t, hook.StateChanged(context.Background(), StateEvent{SessionID: "s1", Kind: EventMapReady}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	var event StateEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventMapReady, event.Kind)
}

func TestServeWebSocketEndsWhenClientLeaves(t *testing.T) {
	hook := NewBroadcastHook()
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(done)
		hook.ServeWebSocket(w, r, "s1")
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		hook.mu.RLock()
		defer hook.mu.RUnlock()
		return len(hook.subs) == 1
	}, waitFor, tick)

	require.NoError(t, conn.Close())
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatalf("ServeWebSocket still running after the client disconnected")
	}
	hook.mu.RLock()
	defer hook.mu.RUnlock()
	assert.Empty(t, hook.subs)
}
