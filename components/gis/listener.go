package gis

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrListenerInstalled is returned when Listen is called twice.
var ErrListenerInstalled = errors.New("gis: frame listener already installed")

// FrameHandler observes decoded frame messages after the listener state was updated.
type FrameHandler func(ctx context.Context, msg FrameMessage)

// ListenerOptions configures a Listener.
type ListenerOptions struct {
	Validator *FrameMessageValidator
	Logger    *zap.Logger
	Telemetry Telemetry
}

// Listener is the frame to host side of the channel. It keeps the readiness flag and the
// frame-reported active layer ids, which are never reconciled with the host's visibility state.
type Listener struct {
	mu        sync.RWMutex
	validator *FrameMessageValidator
	logger    *zap.Logger
	telemetry Telemetry

	handler   FrameHandler
	installed bool
	closed    bool
	ready     bool
	active    []string
}

// NewListener builds a listener. It ignores input until Listen is called.
func NewListener(opts ListenerOptions) *Listener {
	return &Listener{
		validator: opts.Validator,
		logger:    normalizeLogger(opts.Logger).Named("listener"),
		telemetry: normalizeTelemetry(opts.Telemetry),
		active:    []string{},
	}
}

// Listen installs the subscription. handler may be nil.
func (l *Listener) Listen(handler FrameHandler) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrSessionClosed
	}
	if l.installed {
		return ErrListenerInstalled
	}
	l.installed = true
	l.handler = handler
	return nil
}

// Receive handles one raw inbound message. Malformed input is recorded and ignored.
func (l *Listener) Receive(ctx context.Context, raw []byte) {
	l.mu.RLock()
	live := l.installed && !l.closed
	l.mu.RUnlock()
	if !live {
		return
	}

	msg, err := DecodeFrameMessage(raw, l.validator)
	if err != nil {
		l.logger.Debug("ignoring frame message", zap.Error(err), zap.Int("bytes", len(raw)))
		l.telemetry.Record(ctx, "gis.frame.malformed", map[string]any{"bytes": len(raw)})
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	switch m := msg.(type) {
	case MapReady:
		l.ready = true
	case LayerStateUpdate:
		l.active = append([]string{}, m.ActiveLayerIDs...)
	}
	handler := l.handler
	l.mu.Unlock()

	if handler != nil {
		handler(ctx, msg)
	}
}

// Ready reports whether the frame announced mapReady.
func (l *Listener) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ready
}

// ActiveLayerIDs returns the last reported active layer ids.
func (l *Listener) ActiveLayerIDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string{}, l.active...)
}

// Close tears the subscription down.
func (l *Listener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.handler = nil
}

// ResetReady clears the readiness flag, for when a new frame document loads.
func (l *Listener) ResetReady() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ready = false
}
