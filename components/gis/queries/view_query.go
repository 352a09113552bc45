package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gis-dashboard/components/gis"
)

type sessionResolver interface {
	Session(id string) (*gis.Session, error)
}

// SnapshotInput identifies the view to read.
type SnapshotInput struct {
	SessionID string `json:"session_id"`
}

// SnapshotQuery returns the current state of a view.
type SnapshotQuery struct {
	sessions sessionResolver
}

// NewSnapshotQuery builds the query.
func NewSnapshotQuery(sessions sessionResolver) *SnapshotQuery {
	return &SnapshotQuery{sessions: sessions}
}

var _ gocommand.Querier[SnapshotInput, gis.Snapshot] = (*SnapshotQuery)(nil)

// Query resolves the view snapshot.
func (q *SnapshotQuery) Query(_ context.Context, input SnapshotInput) (gis.Snapshot, error) {
	session, err := q.sessions.Session(input.SessionID)
	if err != nil {
		return gis.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

type layerLister interface {
	Layers(locale string) []gis.LayerView
}

// LayersInput selects the display locale.
type LayersInput struct {
	Locale string `json:"locale"`
}

// LayersQuery lists the registered layers with localized names.
type LayersQuery struct {
	service layerLister
}

// NewLayersQuery builds the query.
func NewLayersQuery(service layerLister) *LayersQuery {
	return &LayersQuery{service: service}
}

var _ gocommand.Querier[LayersInput, []gis.LayerView] = (*LayersQuery)(nil)

func (q *LayersQuery) Query(_ context.Context, input LayersInput) ([]gis.LayerView, error) {
	return q.service.Layers(input.Locale), nil
}
