package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gis-dashboard/components/gis"
)

type wardService interface {
	Wards(ctx context.Context) (gis.WardComparison, error)
	Boundaries(ctx context.Context) ([]gis.WardBoundary, error)
}

// WardsQuery ranks wards by collection.
type WardsQuery struct {
	service wardService
}

// NewWardsQuery builds the query.
func NewWardsQuery(service wardService) *WardsQuery {
	return &WardsQuery{service: service}
}

var _ gocommand.Querier[struct{}, gis.WardComparison] = (*WardsQuery)(nil)

func (q *WardsQuery) Query(ctx context.Context, _ struct{}) (gis.WardComparison, error) {
	return q.service.Wards(ctx)
}

// BoundariesQuery returns ward outlines for the map overlay.
type BoundariesQuery struct {
	service wardService
}

// NewBoundariesQuery builds the query.
func NewBoundariesQuery(service wardService) *BoundariesQuery {
	return &BoundariesQuery{service: service}
}

var _ gocommand.Querier[struct{}, []gis.WardBoundary] = (*BoundariesQuery)(nil)

func (q *BoundariesQuery) Query(ctx context.Context, _ struct{}) ([]gis.WardBoundary, error) {
	return q.service.Boundaries(ctx)
}

type chartService interface {
	Chart(ctx context.Context, name string) (string, error)
}

// ChartInput names the analytics chart to render.
type ChartInput struct {
	Name string `json:"name"`
}

// ChartQuery renders an analytics chart to HTML.
type ChartQuery struct {
	service chartService
}

// NewChartQuery builds the query.
func NewChartQuery(service chartService) *ChartQuery {
	return &ChartQuery{service: service}
}

var _ gocommand.Querier[ChartInput, string] = (*ChartQuery)(nil)

func (q *ChartQuery) Query(ctx context.Context, input ChartInput) (string, error) {
	return q.service.Chart(ctx, input.Name)
}
