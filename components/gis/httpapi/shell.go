package httpapi

import (
	"net/http"
	"strconv"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	"go.uber.org/zap"
)

var shellEventKinds = []string{
	gis.EventVisibility,
	gis.EventFilter,
	gis.EventAutoReset,
	gis.EventActiveLayers,
	gis.EventMapReady,
	gis.EventFrame,
}

type shellSource interface {
	Layers(locale string) []gis.LayerView
	MapFramePath() string
	Registry() *gis.LayerRegistry
	Weights() gis.LayerWeights
}

// Shell renders the dashboard page that hosts the map frame.
type Shell struct {
	Source shellSource
	// FramePrefix is prepended to the map frame path.
	FramePrefix string
	Title       string
	Logger      *zap.Logger
	// Renderer defaults to the embedded shell templates.
	Renderer gis.Renderer
}

func (s *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	reg := s.Source.Registry()
	visible := reg.InitialVisibility().VisibleIDs(reg)

	categories := make([]map[string]any, 0, len(gis.Categories()))
	for _, c := range gis.Categories() {
		categories = append(categories, map[string]any{"value": string(c), "label": c.LabelForLocale(locale)})
	}
	views := s.Source.Layers(locale)
	layers := make([]map[string]any, 0, len(views))
	for _, l := range views {
		layers = append(layers, map[string]any{"id": l.ID, "name": l.DisplayName, "color": l.Color, "always_on": l.AlwaysOn})
	}
	cards := gis.KPICards(gis.Aggregate(visible, s.Source.Weights()))
	kpis := make([]map[string]any, 0, len(cards))
	for _, c := range cards {
		kpis = append(kpis, map[string]any{"key": c.Key, "label": c.Label, "value": c.Value})
	}
	title := s.Title
	if title == "" {
		title = "Property Tax GIS"
	}

	renderer := s.Renderer
	if renderer == nil {
		var err error
		if renderer, err = defaultRenderer(); err != nil {
			s.warn("shell renderer unavailable", err)
			http.Error(w, "template unavailable", http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := renderer.Render("shell", map[string]any{
		"title":       title,
		"locale":      localeOrDefault(locale),
		"frame_path":  s.FramePrefix + s.Source.MapFramePath(),
		"center_lat":  strconv.FormatFloat(gis.MapCenter.Lat, 'f', -1, 64),
		"center_lng":  strconv.FormatFloat(gis.MapCenter.Lng, 'f', -1, 64),
		"layers":      layers,
		"categories":  categories,
		"kpis":        kpis,
		"event_kinds": shellEventKinds,
	}, w)
	if err != nil {
		s.warn("shell render failed", err)
	}
}

func (s *Shell) warn(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(msg, zap.Error(err))
	}
}

func localeOrDefault(locale string) string {
	if locale == "" {
		return "mr"
	}
	return locale
}
