package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-gis-dashboard/components/gis"
	"github.com/goliatone/go-gis-dashboard/components/gis/commands"
	"github.com/goliatone/go-gis-dashboard/components/gis/queries"
	"go.uber.org/zap"
)

// MapPrefix is where the map export is served.
const MapPrefix = "/map"

// RouterConfig tunes NewRouter.
type RouterConfig struct {
	// ExportRoot is the directory that contains the map export folder. Empty disables /map.
	ExportRoot string
	Title      string
	Logger     *zap.Logger
	Telemetry  commands.Telemetry
	Now        func() time.Time
}

// NewHandlers wires commands and queries over a service.
func NewHandlers(service *gis.Service, hook *gis.BroadcastHook, cfg RouterConfig) *Handlers {
	return &Handlers{
		Views:      service,
		Sessions:   service,
		Events:     hook,
		Toggle:     commands.NewToggleLayerCommand(service, cfg.Telemetry),
		Filter:     commands.NewApplyFilterCommand(service, cfg.Telemetry),
		Category:   commands.NewSetCategoryVisibilityCommand(service, cfg.Telemetry),
		CloseView:  commands.NewCloseViewCommand(service, cfg.Telemetry),
		Snapshot:   queries.NewSnapshotQuery(service),
		Layers:     queries.NewLayersQuery(service),
		Properties: queries.NewPropertiesQuery(service),
		Search:     queries.NewSearchQuery(service),
		Wards:      queries.NewWardsQuery(service),
		Boundaries: queries.NewBoundariesQuery(service),
		Chart:      queries.NewChartQuery(service),
		Report:     service.Report,
		Logger:     cfg.Logger,
		Now:        cfg.Now,
	}
}

// NewRouter mounts the dashboard page, the map export and the JSON API.
func NewRouter(service *gis.Service, hook *gis.BroadcastHook, cfg RouterConfig) chi.Router {
	h := NewHandlers(service, hook, cfg)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger()))

	r.Method(http.MethodGet, "/", &Shell{Source: service, FramePrefix: MapPrefix, Title: cfg.Title, Logger: cfg.Logger})
	if cfg.ExportRoot != "" {
		r.Handle(MapPrefix+"/*", http.StripPrefix(MapPrefix, http.FileServer(http.Dir(cfg.ExportRoot))))
	}
	r.Route("/api", func(r chi.Router) {
		Mount(r, h)
	})
	return r
}

// Mount registers the API routes on r.
func Mount(r chi.Router, h *Handlers) {
	r.Get("/layers", h.HandleLayers)
	r.Post("/views", h.HandleOpenView)
	r.Route("/views/{id}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			h.HandleGetView(w, req, chi.URLParam(req, "id"))
		})
		r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
			h.HandleCloseView(w, req, chi.URLParam(req, "id"))
		})
		r.Post("/layers/{layerID}/toggle", func(w http.ResponseWriter, req *http.Request) {
			h.HandleToggleLayer(w, req, chi.URLParam(req, "id"), chi.URLParam(req, "layerID"))
		})
		r.Put("/filter", func(w http.ResponseWriter, req *http.Request) {
			h.HandleSetFilter(w, req, chi.URLParam(req, "id"))
		})
		r.Put("/categories/{category}", func(w http.ResponseWriter, req *http.Request) {
			h.HandleSetCategoryVisibility(w, req, chi.URLParam(req, "id"), chi.URLParam(req, "category"))
		})
		r.Get("/frame", func(w http.ResponseWriter, req *http.Request) {
			h.HandleFrameSocket(w, req, chi.URLParam(req, "id"))
		})
		r.Get("/events", func(w http.ResponseWriter, req *http.Request) {
			h.HandleEvents(w, req, chi.URLParam(req, "id"))
		})
	})
	r.Get("/properties", h.HandleProperties)
	r.Get("/search", h.HandleSearch)
	r.Get("/wards", h.HandleWards)
	r.Get("/wards/boundaries", h.HandleBoundaries)
	r.Get("/analytics/{chart}", func(w http.ResponseWriter, req *http.Request) {
		h.HandleChart(w, req, chi.URLParam(req, "chart"))
	})
	r.Get("/export/csv", h.HandleExportCSV)
	r.Get("/export/report", h.HandleExportReport)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
