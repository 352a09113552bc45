package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gis-dashboard/components/gis"
	"github.com/goliatone/go-gis-dashboard/components/gis/commands"
	"github.com/goliatone/go-gis-dashboard/components/gis/queries"
	"go.uber.org/zap"
)

type viewOpener interface {
	OpenSession(ctx context.Context) (*gis.Session, error)
}

type sessionResolver interface {
	Session(id string) (*gis.Session, error)
}

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Views      viewOpener
	Sessions   sessionResolver
	Events     *gis.BroadcastHook
	Toggle     gocommand.Commander[commands.ToggleLayerInput]
	Filter     gocommand.Commander[commands.ApplyFilterInput]
	Category   gocommand.Commander[commands.SetCategoryVisibilityInput]
	CloseView  gocommand.Commander[commands.CloseViewInput]
	Snapshot   gocommand.Querier[queries.SnapshotInput, gis.Snapshot]
	Layers     gocommand.Querier[queries.LayersInput, []gis.LayerView]
	Properties gocommand.Querier[queries.PropertiesInput, gis.MarkerLayer]
	Search     gocommand.Querier[queries.SearchInput, []gis.SearchResult]
	Wards      gocommand.Querier[struct{}, gis.WardComparison]
	Boundaries gocommand.Querier[struct{}, []gis.WardBoundary]
	Chart      gocommand.Querier[queries.ChartInput, string]
	Report     func() gis.ExportTable
	Logger     *zap.Logger
	Now        func() time.Time
}

func (h *Handlers) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Handlers) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Handlers) HandleOpenView(w http.ResponseWriter, r *http.Request) {
	session, err := h.Views.OpenSession(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session.Snapshot())
}

func (h *Handlers) HandleGetView(w http.ResponseWriter, r *http.Request, sessionID string) {
	snapshot, err := h.Snapshot.Query(r.Context(), queries.SnapshotInput{SessionID: sessionID})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handlers) HandleCloseView(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.CloseView.Execute(r.Context(), commands.CloseViewInput{SessionID: sessionID}); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleToggleLayer(w http.ResponseWriter, r *http.Request, sessionID, layerID string) {
	input := commands.ToggleLayerInput{SessionID: sessionID, LayerID: layerID}
	if err := h.Toggle.Execute(r.Context(), input); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondSnapshot(w, r, sessionID)
}

type filterPayload struct {
	Category string `json:"category"`
}

func (h *Handlers) HandleSetFilter(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload filterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.ApplyFilterInput{SessionID: sessionID, Category: payload.Category}
	if err := h.Filter.Execute(r.Context(), input); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondSnapshot(w, r, sessionID)
}

type categoryPayload struct {
	Visible bool `json:"visible"`
}

func (h *Handlers) HandleSetCategoryVisibility(w http.ResponseWriter, r *http.Request, sessionID, category string) {
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.SetCategoryVisibilityInput{SessionID: sessionID, Category: category, Visible: payload.Visible}
	if err := h.Category.Execute(r.Context(), input); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondSnapshot(w, r, sessionID)
}

func (h *Handlers) HandleEvents(w http.ResponseWriter, r *http.Request, sessionID string) {
	if _, err := h.Sessions.Session(sessionID); err != nil {
		h.writeError(w, err)
		return
	}
	h.Events.ServeSSE(w, r, sessionID)
}

func (h *Handlers) HandleLayers(w http.ResponseWriter, r *http.Request) {
	layers, err := h.Layers.Query(r.Context(), queries.LayersInput{Locale: r.URL.Query().Get("locale")})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layers)
}

func (h *Handlers) HandleProperties(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	input := queries.PropertiesInput{
		Wards:        values["ward"],
		Types:        values["type"],
		Status:       values.Get("status"),
		PaymentLayer: parseBool(values.Get("payment_layer")),
		ToggleWard:   values.Get("toggle_ward"),
		ToggleType:   values.Get("toggle_type"),
	}
	layer, err := h.Properties.Query(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layer)
}

func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := h.Search.Query(r.Context(), queries.SearchInput{Text: r.URL.Query().Get("q")})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handlers) HandleWards(w http.ResponseWriter, r *http.Request) {
	comparison, err := h.Wards.Query(r.Context(), struct{}{})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

func (h *Handlers) HandleBoundaries(w http.ResponseWriter, r *http.Request) {
	boundaries, err := h.Boundaries.Query(r.Context(), struct{}{})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boundaries)
}

func (h *Handlers) HandleChart(w http.ResponseWriter, r *http.Request, name string) {
	html, err := h.Chart.Query(r.Context(), queries.ChartInput{Name: name})
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (h *Handlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+gis.ExportFileName(h.now())+`"`)
	if err := gis.WriteCSV(w, h.Report(), gis.CSVOptions{IncludeTitle: true}); err != nil {
		h.logger().Warn("csv export failed", zap.Error(err))
	}
}

func (h *Handlers) HandleExportReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := gis.WritePrintableReport(w, h.Report(), h.now()); err != nil {
		h.logger().Warn("report export failed", zap.Error(err))
	}
}

func (h *Handlers) respondSnapshot(w http.ResponseWriter, r *http.Request, sessionID string) {
	if h.Snapshot == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	snapshot, err := h.Snapshot.Query(r.Context(), queries.SnapshotInput{SessionID: sessionID})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger().Error("request failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, gis.ErrUnknownSession),
		errors.Is(err, gis.ErrUnknownLayer),
		errors.Is(err, gis.ErrUnknownChart):
		return http.StatusNotFound
	case errors.Is(err, gis.ErrInvalidCategory),
		errors.Is(err, gis.ErrInvalidPropertyType),
		errors.Is(err, gis.ErrInvalidTaxStatus):
		return http.StatusBadRequest
	case errors.Is(err, gis.ErrSessionClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
