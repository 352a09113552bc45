package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-gis-dashboard/components/gis"
)

type stubTelemetry struct {
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.events = append(s.events, event)
}

func newService(t *testing.T) (*gis.Service, *gis.Session) {
	t.Helper()
	service, err := gis.NewService(gis.Options{})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	t.Cleanup(func() { service.Close(context.Background()) })
	session, err := service.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	return service, session
}

func TestToggleLayerCommand(t *testing.T) {
	service, session := newService(t)
	telemetry := &stubTelemetry{}
	cmd := NewToggleLayerCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), ToggleLayerInput{SessionID: session.ID(), LayerID: "layer__6"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if session.State().Visibility["layer__6"] {
		t.Fatalf("expected layer__6 hidden")
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "gis.layer.toggle" {
		t.Fatalf("expected toggle telemetry, got %v", telemetry.events)
	}
	err := cmd.Execute(context.Background(), ToggleLayerInput{SessionID: session.ID(), LayerID: "ghost"})
	if !errors.Is(err, gis.ErrUnknownLayer) {
		t.Fatalf("expected unknown layer, got %v", err)
	}
	err = cmd.Execute(context.Background(), ToggleLayerInput{SessionID: "missing", LayerID: "layer__6"})
	if !errors.Is(err, gis.ErrUnknownSession) {
		t.Fatalf("expected unknown session, got %v", err)
	}
}

func TestApplyFilterCommand(t *testing.T) {
	service, session := newService(t)
	cmd := NewApplyFilterCommand(service, nil)
	if err := cmd.Execute(context.Background(), ApplyFilterInput{SessionID: session.ID(), Category: "Public Toilets"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if session.State().Filter != gis.CategoryPublicToilets {
		t.Fatalf("expected public toilets filter, got %q", session.State().Filter)
	}
	if err := cmd.Execute(context.Background(), ApplyFilterInput{SessionID: session.ID()}); err != nil {
		t.Fatalf("clearing the filter returned error: %v", err)
	}
	if session.State().Filter != gis.NoFilter {
		t.Fatalf("expected filter cleared")
	}
	err := cmd.Execute(context.Background(), ApplyFilterInput{SessionID: session.ID(), Category: "castle"})
	if !errors.Is(err, gis.ErrInvalidCategory) {
		t.Fatalf("expected invalid category, got %v", err)
	}
}

func TestSetCategoryVisibilityCommand(t *testing.T) {
	service, session := newService(t)
	cmd := NewSetCategoryVisibilityCommand(service, nil)
	if err := cmd.Execute(context.Background(), SetCategoryVisibilityInput{SessionID: session.ID(), Category: "vacant"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	for _, id := range service.Registry().LayerIDsFor(gis.CategoryVacant) {
		if session.State().Visibility[id] {
			t.Fatalf("expected %s hidden", id)
		}
	}
	err := cmd.Execute(context.Background(), SetCategoryVisibilityInput{SessionID: session.ID()})
	if !errors.Is(err, gis.ErrInvalidCategory) {
		t.Fatalf("expected invalid category for empty input, got %v", err)
	}
}

func TestCloseViewCommand(t *testing.T) {
	service, session := newService(t)
	telemetry := &stubTelemetry{}
	cmd := NewCloseViewCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), CloseViewInput{SessionID: session.ID()}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if _, err := service.Session(session.ID()); !errors.Is(err, gis.ErrUnknownSession) {
		t.Fatalf("expected session removed, got %v", err)
	}
	if len(telemetry.events) != 1 {
		t.Fatalf("expected close telemetry")
	}
}

func TestCommandsRequireDependencies(t *testing.T) {
	ctx := context.Background()
	if err := NewToggleLayerCommand(nil, nil).Execute(ctx, ToggleLayerInput{}); err == nil {
		t.Fatalf("expected error without resolver")
	}
	if err := NewApplyFilterCommand(nil, nil).Execute(ctx, ApplyFilterInput{}); err == nil {
		t.Fatalf("expected error without resolver")
	}
	if err := NewCloseViewCommand(nil, nil).Execute(ctx, CloseViewInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}
