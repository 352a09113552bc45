package gis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// AppState is the host-owned, serializable state of one dashboard view.
type AppState struct {
	Filter     Category        `json:"filter"`
	Visibility VisibilityState `json:"visibility"`
}

// Snapshot is a read model of a session for transports.
type Snapshot struct {
	ID              string          `json:"id"`
	Filter          Category        `json:"filter"`
	Visibility      VisibilityState `json:"visibility"`
	VisibleLayerIDs []string        `json:"visible_layer_ids"`
	ActiveLayerIDs  []string        `json:"active_layer_ids"`
	MapReady        bool            `json:"map_ready"`
	Gate            string          `json:"gate"`
	Stats           AssetStats      `json:"stats"`
	KPIs            []KPICard       `json:"kpis"`
	Delivery        MessengerStats  `json:"delivery"`
}

// SessionOptions configures a Session.
type SessionOptions struct {
	ID             string
	Registry       *LayerRegistry
	AlwaysOn       AlwaysOnSet
	Weights        LayerWeights
	Clock          clockwork.Clock
	RetryDelay     time.Duration
	SettleDelay    time.Duration
	HighlightDelay time.Duration
	Validator      *FrameMessageValidator
	Hook           StateHook
	Logger         *zap.Logger
	Telemetry      Telemetry
}

// Session owns the state of one dashboard view and the two channels to its map frame.
// State transitions are applied under one lock. Their frame messages are queued in the same
// order and sent after the lock is released, so a frame window may call back into the session.
type Session struct {
	id        string
	mu        sync.Mutex
	policy    FilterPolicy
	weights   LayerWeights
	state     AppState
	closed    bool
	outbox    []ScheduledMessage
	flushing  bool
	messenger *Messenger
	listener  *Listener
	hook      StateHook
	logger    *zap.Logger
	telemetry Telemetry
}

// NewSession builds a session with every layer visible and no filter.
func NewSession(opts SessionOptions) (*Session, error) {
	if opts.ID == "" {
		return nil, fmt.Errorf("gis: session id is required")
	}
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	weights := opts.Weights
	if weights == nil {
		weights = DefaultLayerWeights()
	}
	highlight := opts.HighlightDelay
	if highlight <= 0 {
		highlight = DefaultHighlightDelay
	}
	logger := normalizeLogger(opts.Logger).With(zap.String("session", opts.ID))
	telemetry := normalizeTelemetry(opts.Telemetry)

	s := &Session{
		id: opts.ID,
		policy: FilterPolicy{
			Registry:       reg,
			AlwaysOn:       opts.AlwaysOn,
			HighlightDelay: highlight,
		},
		weights:   weights,
		hook:      opts.Hook,
		logger:    logger,
		telemetry: telemetry,
	}
	if s.hook == nil {
		s.hook = noopStateHook{}
	}
	s.state = AppState{Filter: NoFilter, Visibility: reg.InitialVisibility()}
	for id := range opts.AlwaysOn {
		if reg.Has(id) {
			s.state.Visibility[id] = true
		}
	}

	s.messenger = NewMessenger(s.replayMessage, MessengerOptions{
		Clock:       opts.Clock,
		RetryDelay:  opts.RetryDelay,
		SettleDelay: opts.SettleDelay,
		Logger:      logger,
		Telemetry:   telemetry,
	})
	s.listener = NewListener(ListenerOptions{
		Validator: opts.Validator,
		Logger:    logger,
		Telemetry: telemetry,
	})
	if err := s.listener.Listen(s.onFrameMessage); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Registry returns the layer catalog the session was built with.
func (s *Session) Registry() *LayerRegistry { return s.policy.Registry }

// State returns a copy of the host-owned state.
func (s *Session) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AppState{Filter: s.state.Filter, Visibility: s.state.Visibility.Clone()}
}

// Snapshot builds the read model, including stats from the frame-reported active layers.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	filter := s.state.Filter
	visibility := s.state.Visibility.Clone()
	s.mu.Unlock()

	active := s.listener.ActiveLayerIDs()
	stats := Aggregate(active, s.weights)
	return Snapshot{
		ID:              s.id,
		Filter:          filter,
		Visibility:      visibility,
		VisibleLayerIDs: visibility.VisibleIDs(s.policy.Registry),
		ActiveLayerIDs:  active,
		MapReady:        s.listener.Ready(),
		Gate:            s.messenger.Gate().String(),
		Stats:           stats,
		KPIs:            KPICards(stats),
		Delivery:        s.messenger.Stats(),
	}
}

// ToggleLayer flips one layer. It may reset the active filter, see FilterPolicy.ToggleLayer.
func (s *Session) ToggleLayer(ctx context.Context, layerID string) (Transition, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Transition{}, ErrSessionClosed
	}
	t, err := s.policy.ToggleLayer(s.state.Visibility, s.state.Filter, layerID)
	if err != nil {
		s.mu.Unlock()
		return Transition{}, fmt.Errorf("%w: %s", err, layerID)
	}
	s.applyLocked(t)
	s.mu.Unlock()
	s.flush(ctx)

	kind := EventVisibility
	if t.AutoReset {
		kind = EventAutoReset
		s.telemetry.Record(ctx, "gis.filter.autoreset", map[string]any{"session": s.id, "layer": layerID})
	}
	s.publish(ctx, kind)
	return t, nil
}

// SetFilter applies a property-type filter; NoFilter shows everything.
func (s *Session) SetFilter(ctx context.Context, filter Category) (Transition, error) {
	if filter.IsSet() && !filter.Valid() {
		return Transition{}, fmt.Errorf("%w: %q", ErrInvalidCategory, filter)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Transition{}, ErrSessionClosed
	}
	t := s.policy.ApplyFilter(s.state.Filter, filter)
	s.applyLocked(t)
	s.mu.Unlock()
	s.flush(ctx)

	s.telemetry.Record(ctx, "gis.filter.applied", map[string]any{"session": s.id, "filter": string(filter)})
	s.publish(ctx, EventFilter)
	return t, nil
}

// SetCategoryVisibility shows or hides a whole category.
func (s *Session) SetCategoryVisibility(ctx context.Context, category Category, visible bool) (Transition, error) {
	if !category.Valid() {
		return Transition{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Transition{}, ErrSessionClosed
	}
	t := s.policy.SetCategoryVisibility(s.state.Visibility, s.state.Filter, category, visible)
	s.applyLocked(t)
	s.mu.Unlock()
	s.flush(ctx)

	s.publish(ctx, EventVisibility)
	return t, nil
}

// AttachFrame connects a loaded frame window. The full state is replayed once the frame settles.
func (s *Session) AttachFrame(ctx context.Context, win FrameWindow) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	s.listener.ResetReady()
	s.messenger.Attach(win)
	s.messenger.FrameLoaded(ctx)
	s.logger.Info("frame attached")
	s.publish(ctx, EventFrame)
	return nil
}

// DetachFrame disconnects win if it is still the attached window.
func (s *Session) DetachFrame(ctx context.Context, win FrameWindow) {
	s.messenger.Detach(win)
	s.logger.Info("frame detached")
	s.publish(ctx, EventFrame)
}

// Receive feeds one raw frame message to the listener.
func (s *Session) Receive(ctx context.Context, raw []byte) {
	s.listener.Receive(ctx, raw)
}

// Close tears down the listener and cancels every pending frame timer.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.listener.Close()
	s.messenger.Close()
	s.publish(ctx, EventClosed)
}

func (s *Session) applyLocked(t Transition) {
	s.state = AppState{Filter: t.Filter, Visibility: t.State}
	s.outbox = append(s.outbox, t.Messages...)
}

// flush sends queued messages outside s.mu. Only one caller drains at a time, which keeps
// the frame seeing messages in the order their transitions were applied.
func (s *Session) flush(ctx context.Context) {
	s.mu.Lock()
	if s.flushing {
		s.mu.Unlock()
		return
	}
	s.flushing = true
	for len(s.outbox) > 0 {
		batch := s.outbox
		s.outbox = nil
		s.mu.Unlock()
		for _, scheduled := range batch {
			if scheduled.Delay > 0 {
				s.messenger.SendAfter(ctx, scheduled.Message, scheduled.Delay)
				continue
			}
			s.messenger.Send(ctx, scheduled.Message)
		}
		s.mu.Lock()
	}
	s.flushing = false
	s.mu.Unlock()
}

func (s *Session) replayMessage() HostMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BulkVisibilityUpdate{Updates: s.state.Visibility.Updates(s.policy.Registry)}
}

func (s *Session) onFrameMessage(ctx context.Context, msg FrameMessage) {
	switch msg.(type) {
	case MapReady:
		s.logger.Info("map ready")
		s.publish(ctx, EventMapReady)
	case LayerStateUpdate:
		s.publish(ctx, EventActiveLayers)
	}
}

func (s *Session) publish(ctx context.Context, kind string) {
	event := StateEvent{SessionID: s.id, Kind: kind, Snapshot: s.Snapshot()}
	if err := s.hook.StateChanged(ctx, event); err != nil {
		s.logger.Warn("state hook failed", zap.String("kind", kind), zap.Error(err))
	}
}
