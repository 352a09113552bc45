package gis

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// WardSource supplies ward collection figures.
type WardSource interface {
	FetchWards(ctx context.Context) ([]Ward, error)
}

type staticWards []Ward

func (w staticWards) FetchWards(context.Context) ([]Ward, error) {
	return append([]Ward(nil), w...), nil
}

// Options configures the Service. Zero values fall back to the bundled fixtures.
type Options struct {
	Registry       *LayerRegistry
	Weights        LayerWeights
	AlwaysOn       []string
	MapFolder      string
	Clock          clockwork.Clock
	RetryDelay     time.Duration
	SettleDelay    time.Duration
	HighlightDelay time.Duration
	Hook           StateHook
	Logger         *zap.Logger
	Telemetry      Telemetry
	Properties     []PropertyRecord
	SearchIndex    []SearchResult
	Report         *ExportTable
	WardSource     WardSource
	Boundaries     []WardBoundary
	Charts         *ChartRenderer
	NewID          func() string
}

// Service owns the dashboard sessions and the read-only datasets behind them.
type Service struct {
	opts      Options
	alwaysOn  AlwaysOnSet
	validator *FrameMessageValidator
	logger    *zap.Logger
	telemetry Telemetry

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService builds a service with safe defaults.
func NewService(opts Options) (*Service, error) {
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry()
	}
	if opts.Weights == nil {
		opts.Weights = DefaultLayerWeights()
	}
	if opts.MapFolder == "" {
		opts.MapFolder = DefaultMapFolder
	}
	if opts.Properties == nil {
		opts.Properties = DefaultProperties()
	}
	if opts.SearchIndex == nil {
		opts.SearchIndex = DefaultSearchIndex()
	}
	if opts.Report == nil {
		report := DefaultTaxReport()
		opts.Report = &report
	}
	if opts.WardSource == nil {
		opts.WardSource = staticWards(DefaultWards())
	}
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer(DefaultAnalyticsData())
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Hook == nil {
		opts.Hook = noopStateHook{}
	}
	validator, err := NewFrameMessageValidator()
	if err != nil {
		return nil, err
	}
	return &Service{
		opts:      opts,
		alwaysOn:  NewAlwaysOnSet(opts.Registry, opts.AlwaysOn...),
		validator: validator,
		logger:    normalizeLogger(opts.Logger),
		telemetry: normalizeTelemetry(opts.Telemetry),
		sessions:  make(map[string]*Session),
	}, nil
}

// Registry returns the layer catalog.
func (s *Service) Registry() *LayerRegistry { return s.opts.Registry }

// Weights returns the KPI contribution of each layer.
func (s *Service) Weights() LayerWeights { return s.opts.Weights }

// MapFramePath is the iframe source of the configured export.
func (s *Service) MapFramePath() string { return MapFramePath(s.opts.MapFolder) }

// MapFolder is the configured export folder.
func (s *Service) MapFolder() string { return s.opts.MapFolder }

// OpenSession starts a new dashboard view.
func (s *Service) OpenSession(ctx context.Context) (*Session, error) {
	session, err := NewSession(SessionOptions{
		ID:             s.opts.NewID(),
		Registry:       s.opts.Registry,
		AlwaysOn:       s.alwaysOn,
		Weights:        s.opts.Weights,
		Clock:          s.opts.Clock,
		RetryDelay:     s.opts.RetryDelay,
		SettleDelay:    s.opts.SettleDelay,
		HighlightDelay: s.opts.HighlightDelay,
		Validator:      s.validator,
		Hook:           s.opts.Hook,
		Logger:         s.logger,
		Telemetry:      s.telemetry,
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()
	s.telemetry.Record(ctx, "gis.session.opened", map[string]any{"session": session.ID()})
	return session, nil
}

// Session resolves an open session.
func (s *Service) Session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return session, nil
}

// SessionIDs lists open sessions, sorted.
func (s *Service) SessionIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CloseSession tears a session down and forgets it.
func (s *Service) CloseSession(ctx context.Context, id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	session.Close(ctx)
	s.telemetry.Record(ctx, "gis.session.closed", map[string]any{"session": id})
	return nil
}

// Close tears down every session.
func (s *Service) Close(ctx context.Context) {
	for _, id := range s.SessionIDs() {
		_ = s.CloseSession(ctx, id)
	}
}

// LayerView is a registry entry resolved for a locale.
type LayerView struct {
	LayerDescriptor
	DisplayName   string `json:"display_name"`
	CategoryLabel string `json:"category_label"`
	AlwaysOn      bool   `json:"always_on"`
}

// Layers lists the registry for display.
func (s *Service) Layers(locale string) []LayerView {
	layers := s.opts.Registry.All()
	out := make([]LayerView, 0, len(layers))
	for _, l := range layers {
		out = append(out, LayerView{
			LayerDescriptor: l,
			DisplayName:     l.NameForLocale(locale),
			CategoryLabel:   l.Category.LabelForLocale(locale),
			AlwaysOn:        s.alwaysOn.Contains(l.ID),
		})
	}
	return out
}

// Properties renders the marker map for q.
func (s *Service) Properties(q PropertyQuery) MarkerLayer {
	return RenderMarkers(s.opts.Properties, q)
}

// Search runs the quick search.
func (s *Service) Search(query string) []SearchResult {
	return Search(s.opts.SearchIndex, query)
}

// Wards compares the wards reported by the ward source.
func (s *Service) Wards(ctx context.Context) (WardComparison, error) {
	wards, err := s.opts.WardSource.FetchWards(ctx)
	if err != nil {
		return WardComparison{}, fmt.Errorf("gis: fetch wards: %w", err)
	}
	return CompareWards(wards), nil
}

// Boundaries returns the configured ward outlines, or the built-in rectangles.
func (s *Service) Boundaries(ctx context.Context) ([]WardBoundary, error) {
	if len(s.opts.Boundaries) > 0 {
		return append([]WardBoundary(nil), s.opts.Boundaries...), nil
	}
	wards, err := s.opts.WardSource.FetchWards(ctx)
	if err != nil {
		return nil, fmt.Errorf("gis: fetch wards: %w", err)
	}
	return WardBoundaries(wards), nil
}

// Chart renders an analytics chart.
func (s *Service) Chart(ctx context.Context, name string) (string, error) {
	var wards []Ward
	if name == ChartWardCollection || name == ChartWardComparison {
		var err error
		if wards, err = s.opts.WardSource.FetchWards(ctx); err != nil {
			return "", fmt.Errorf("gis: fetch wards: %w", err)
		}
	}
	return s.opts.Charts.Render(ctx, name, wards)
}

// Report returns the export table.
func (s *Service) Report() ExportTable {
	return *s.opts.Report
}
