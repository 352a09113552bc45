package gis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	DefaultRetryDelay        = 100 * time.Millisecond
	DefaultSettleDelay       = 2 * time.Second
	DefaultHighlightDelay    = 50 * time.Millisecond
	defaultMaxPendingRetries = 256
)

// FrameWindow is the content window of the embedded map. PostMessage must not block for long;
// an error means the window is unreachable for now.
type FrameWindow interface {
	PostMessage(msg HostMessage) error
}

// FrameWindowFunc adapts a function to FrameWindow.
type FrameWindowFunc func(msg HostMessage) error

func (f FrameWindowFunc) PostMessage(msg HostMessage) error { return f(msg) }

// GateState tracks whether a frame window is attached.
type GateState int

const (
	GateNotReady GateState = iota
	GateReady
)

func (s GateState) String() string {
	if s == GateReady {
		return "ready"
	}
	return "not_ready"
}

// MessengerOptions configures a Messenger. Zero values fall back to defaults.
type MessengerOptions struct {
	Clock             clockwork.Clock
	RetryDelay        time.Duration
	SettleDelay       time.Duration
	MaxPendingRetries int
	Logger            *zap.Logger
	Telemetry         Telemetry
}

// MessengerStats counts delivery outcomes. Attempts include retries.
type MessengerStats struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Retried   int `json:"retried"`
	Dropped   int `json:"dropped"`
	Pending   int `json:"pending"`
}

// Messenger is the best-effort host to frame channel. A failed post is retried exactly once after
// RetryDelay and then dropped with a diagnostic. Send never fails from the caller's point of view.
type Messenger struct {
	mu          sync.Mutex
	clock       clockwork.Clock
	retryDelay  time.Duration
	settleDelay time.Duration
	maxPending  int
	logger      *zap.Logger
	telemetry   Telemetry

	source      func() HostMessage
	window      FrameWindow
	closed      bool
	timers      map[uint64]clockwork.Timer
	nextTimer   uint64
	replayTimer uint64
	retries     int
	stats       MessengerStats
}

// NewMessenger builds a messenger. source produces the full-state message replayed after the
// frame finishes loading; it may be nil.
func NewMessenger(source func() HostMessage, opts MessengerOptions) *Messenger {
	m := &Messenger{
		clock:       opts.Clock,
		retryDelay:  opts.RetryDelay,
		settleDelay: opts.SettleDelay,
		maxPending:  opts.MaxPendingRetries,
		logger:      normalizeLogger(opts.Logger).Named("messenger"),
		telemetry:   normalizeTelemetry(opts.Telemetry),
		source:      source,
		timers:      make(map[uint64]clockwork.Timer),
	}
	if m.clock == nil {
		m.clock = clockwork.NewRealClock()
	}
	if m.retryDelay <= 0 {
		m.retryDelay = DefaultRetryDelay
	}
	if m.settleDelay <= 0 {
		m.settleDelay = DefaultSettleDelay
	}
	if m.maxPending <= 0 {
		m.maxPending = defaultMaxPendingRetries
	}
	return m
}

// Attach opens the gate for a frame window.
func (m *Messenger) Attach(win FrameWindow) {
	if win == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.window = win
}

// Detach closes the gate if win is still the attached window.
func (m *Messenger) Detach(win FrameWindow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.window == win {
		m.window = nil
	}
}

// Gate reports whether a frame window is attached.
func (m *Messenger) Gate() GateState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.window != nil {
		return GateReady
	}
	return GateNotReady
}

// Send posts msg to the frame, scheduling one retry on failure.
func (m *Messenger) Send(ctx context.Context, msg HostMessage) {
	if msg == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	win := m.window
	m.stats.Attempted++
	m.mu.Unlock()

	err := post(win, msg)
	if err == nil {
		m.delivered()
		return
	}
	m.scheduleRetry(ctx, msg, err)
}

// SendAfter sends msg once delay elapses. The pending send is cancelled by Close.
func (m *Messenger) SendAfter(ctx context.Context, msg HostMessage, delay time.Duration) {
	if delay <= 0 {
		m.Send(ctx, msg)
		return
	}
	ctx = context.WithoutCancel(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.afterLocked(delay, func(uint64) { m.Send(ctx, msg) })
}

// FrameLoaded schedules a replay of the full current state after the settle delay, giving the
// map engine time to initialize. A later load replaces a pending replay.
func (m *Messenger) FrameLoaded(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.source == nil {
		return
	}
	if m.replayTimer != 0 {
		m.stopLocked(m.replayTimer)
	}
	m.replayTimer = m.afterLocked(m.settleDelay, func(id uint64) {
		m.mu.Lock()
		if m.replayTimer == id {
			m.replayTimer = 0
		}
		source := m.source
		m.mu.Unlock()
		msg := source()
		m.telemetry.Record(ctx, "gis.frame.replay", map[string]any{"type": string(msg.HostType())})
		m.Send(ctx, msg)
	})
}

// Close stops every pending timer and detaches the window. Later sends are ignored.
func (m *Messenger) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id := range m.timers {
		m.stopLocked(id)
	}
	m.replayTimer = 0
	m.retries = 0
	m.window = nil
}

// Stats returns a snapshot of the delivery counters.
func (m *Messenger) Stats() MessengerStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.stats
	stats.Pending = len(m.timers)
	return stats
}

func (m *Messenger) scheduleRetry(ctx context.Context, msg HostMessage, cause error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if m.retries >= m.maxPending {
		m.mu.Unlock()
		m.drop(ctx, msg, fmt.Errorf("retry queue full: %w", cause))
		return
	}
	m.retries++
	m.stats.Retried++
	m.afterLocked(m.retryDelay, func(uint64) { m.retry(ctx, msg) })
	m.mu.Unlock()

	m.telemetry.Record(ctx, "gis.frame.retry", map[string]any{
		"type":  string(msg.HostType()),
		"cause": cause.Error(),
	})
}

func (m *Messenger) retry(ctx context.Context, msg HostMessage) {
	m.mu.Lock()
	if m.retries > 0 {
		m.retries--
	}
	if m.closed {
		m.mu.Unlock()
		return
	}
	win := m.window
	m.stats.Attempted++
	m.mu.Unlock()

	if err := post(win, msg); err != nil {
		m.drop(ctx, msg, err)
		return
	}
	m.delivered()
}

func (m *Messenger) delivered() {
	m.mu.Lock()
	m.stats.Delivered++
	m.mu.Unlock()
}

func (m *Messenger) drop(ctx context.Context, msg HostMessage, cause error) {
	m.mu.Lock()
	m.stats.Dropped++
	m.mu.Unlock()
	m.logger.Warn("dropping frame message",
		zap.String("type", string(msg.HostType())),
		zap.Error(cause),
	)
	m.telemetry.Record(ctx, "gis.frame.drop", map[string]any{
		"type":  string(msg.HostType()),
		"cause": cause.Error(),
	})
}

// afterLocked registers a one-shot timer. fn runs without the lock held and only if the timer
// was not stopped first.
func (m *Messenger) afterLocked(d time.Duration, fn func(id uint64)) uint64 {
	m.nextTimer++
	id := m.nextTimer
	m.timers[id] = m.clock.AfterFunc(d, func() {
		m.mu.Lock()
		_, live := m.timers[id]
		delete(m.timers, id)
		closed := m.closed
		m.mu.Unlock()
		if !live || closed {
			return
		}
		fn(id)
	})
	return id
}

func (m *Messenger) stopLocked(id uint64) {
	if t, ok := m.timers[id]; ok {
		t.Stop()
		delete(m.timers, id)
	}
}

func post(win FrameWindow, msg HostMessage) (err error) {
	if win == nil {
		return ErrFrameUnreachable
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gis: frame post panicked: %v", r)
		}
	}()
	return win.PostMessage(msg)
}
