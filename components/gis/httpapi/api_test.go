package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	"github.com/goliatone/go-gis-dashboard/components/gis/commands"
	"github.com/goliatone/go-gis-dashboard/components/gis/queries"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(ctx context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type stubQuerier[T any, R any] struct {
	last   T
	result R
	err    error
}

func (s *stubQuerier[T, R]) Query(ctx context.Context, msg T) (R, error) {
	s.last = msg
	return s.result, s.err
}

func TestHandleToggleLayer(t *testing.T) {
	toggle := &stubCommander[commands.ToggleLayerInput]{}
	snapshot := &stubQuerier[queries.SnapshotInput, gis.Snapshot]{result: gis.Snapshot{ID: "v1"}}
	api := &Handlers{Toggle: toggle, Snapshot: snapshot}
	req := httptest.NewRequest(http.MethodPost, "/views/v1/layers/layer__6/toggle", nil)
	rec := httptest.NewRecorder()
	api.HandleToggleLayer(rec, req, "v1", "layer__6")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if toggle.last.LayerID != "layer__6" || toggle.last.SessionID != "v1" {
		t.Fatalf("expected ids propagated, got %+v", toggle.last)
	}
	var snap gis.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil || snap.ID != "v1" {
		t.Fatalf("expected snapshot body, got %s", rec.Body.String())
	}
}

func TestHandleSetFilter(t *testing.T) {
	filter := &stubCommander[commands.ApplyFilterInput]{}
	api := &Handlers{Filter: filter}
	buf, _ := json.Marshal(map[string]string{"category": "vacant"})
	req := httptest.NewRequest(http.MethodPut, "/views/v1/filter", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleSetFilter(rec, req, "v1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if filter.last.Category != "vacant" {
		t.Fatalf("expected category propagation")
	}

	req = httptest.NewRequest(http.MethodPut, "/views/v1/filter", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	api.HandleSetFilter(rec, req, "v1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", rec.Code)
	}
}

func TestHandleSetCategoryVisibility(t *testing.T) {
	category := &stubCommander[commands.SetCategoryVisibilityInput]{}
	api := &Handlers{Category: category}
	req := httptest.NewRequest(http.MethodPut, "/views/v1/categories/vacant", strings.NewReader(`{"visible":true}`))
	rec := httptest.NewRecorder()
	api.HandleSetCategoryVisibility(rec, req, "v1", "vacant")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !category.last.Visible || category.last.Category != "vacant" {
		t.Fatalf("unexpected input %+v", category.last)
	}
}

func TestHandleCloseView(t *testing.T) {
	closeView := &stubCommander[commands.CloseViewInput]{}
	api := &Handlers{CloseView: closeView}
	rec := httptest.NewRecorder()
	api.HandleCloseView(rec, httptest.NewRequest(http.MethodDelete, "/views/v1", nil), "v1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if closeView.last.SessionID != "v1" {
		t.Fatalf("expected session id propagation")
	}
}

func TestErrorStatuses(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{gis.ErrUnknownSession, http.StatusNotFound},
		{gis.ErrUnknownLayer, http.StatusNotFound},
		{gis.ErrInvalidCategory, http.StatusBadRequest},
		{gis.ErrInvalidTaxStatus, http.StatusBadRequest},
		{gis.ErrSessionClosed, http.StatusGone},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		toggle := &stubCommander[commands.ToggleLayerInput]{err: tc.err}
		api := &Handlers{Toggle: toggle}
		rec := httptest.NewRecorder()
		api.HandleToggleLayer(rec, httptest.NewRequest(http.MethodPost, "/", nil), "v1", "x")
		if rec.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}

func TestHandleProperties(t *testing.T) {
	props := &stubQuerier[queries.PropertiesInput, gis.MarkerLayer]{}
	api := &Handlers{Properties: props}
	req := httptest.NewRequest(http.MethodGet, "/properties?ward=ward1&ward=ward2&type=vacant&status=paid&payment_layer=on&toggle_ward=ward3", nil)
	rec := httptest.NewRecorder()
	api.HandleProperties(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(props.last.Wards) != 2 || props.last.Types[0] != "vacant" || props.last.Status != "paid" || !props.last.PaymentLayer || props.last.ToggleWard != "ward3" {
		t.Fatalf("unexpected input %+v", props.last)
	}
}

func TestHandleExportCSV(t *testing.T) {
	api := &Handlers{
		Report: gis.DefaultTaxReport,
		Now:    func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
	rec := httptest.NewRecorder()
	api.HandleExportCSV(rec, httptest.NewRequest(http.MethodGet, "/export/csv", nil))
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="property_tax_report_2025-03-01.csv"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.Contains(rec.Body.String(), "Property No,Owner Name") {
		t.Fatalf("expected csv header, got %s", rec.Body.String())
	}
}

func TestHandleChartSetsHTML(t *testing.T) {
	chart := &stubQuerier[queries.ChartInput, string]{result: "<div>chart</div>"}
	api := &Handlers{Chart: chart}
	rec := httptest.NewRecorder()
	api.HandleChart(rec, httptest.NewRequest(http.MethodGet, "/analytics/valuation", nil), "valuation")
	if rec.Header().Get("Content-Type") != "text/html; charset=utf-8" || rec.Body.String() != "<div>chart</div>" {
		t.Fatalf("unexpected chart response %q", rec.Body.String())
	}
	if chart.last.Name != "valuation" {
		t.Fatalf("expected chart name propagation")
	}
}
