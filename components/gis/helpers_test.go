package gis

import (
	"context"
	"errors"
	"sync"
)

type recordedEvent struct {
	name    string
	payload map[string]any
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{name: event, payload: payload})
}

func (r *recordingTelemetry) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.name == name {
			n++
		}
	}
	return n
}

// recordingWindow collects posted messages. The first failFirst posts fail.
type recordingWindow struct {
	mu        sync.Mutex
	msgs      []HostMessage
	calls     int
	failFirst int
	panics    bool
}

func (w *recordingWindow) PostMessage(msg HostMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.panics {
		panic("window gone")
	}
	if w.calls <= w.failFirst {
		return errors.New("not ready")
	}
	w.msgs = append(w.msgs, msg)
	return nil
}

func (w *recordingWindow) messages() []HostMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]HostMessage(nil), w.msgs...)
}

func (w *recordingWindow) callCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}

type recordingHook struct {
	mu     sync.Mutex
	events []StateEvent
}

func (h *recordingHook) StateChanged(_ context.Context, event StateEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHook) kinds() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	for i, e := range h.events {
		out[i] = e.Kind
	}
	return out
}

// threeLayerRegistry is {A: residential, B: residential, C: other}.
func threeLayerRegistry() *LayerRegistry {
	return MustLayerRegistry([]LayerDescriptor{
		{ID: "A", Name: "A", Category: CategoryResidential},
		{ID: "B", Name: "B", Category: CategoryResidential},
		{ID: "C", Name: "C", Category: CategoryOther},
	})
}

func bulkOf(t interface{ Fatalf(string, ...any) }, msg HostMessage) BulkVisibilityUpdate {
	bulk, ok := msg.(BulkVisibilityUpdate)
	if !ok {
		t.Fatalf("expected BulkVisibilityUpdate, got %T", msg)
	}
	return bulk
}
