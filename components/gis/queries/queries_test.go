package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPropertyService struct {
	last gis.PropertyQuery
}

func (s *stubPropertyService) Properties(q gis.PropertyQuery) gis.MarkerLayer {
	s.last = q
	return gis.MarkerLayer{Query: q}
}

func TestPropertiesQueryParsesInput(t *testing.T) {
	svc := &stubPropertyService{}
	q := NewPropertiesQuery(svc)
	_, err := q.Query(context.Background(), PropertiesInput{
		Wards:  []string{"ward1, ward2", "ward3"},
		Types:  []string{"Residential,commercial"},
		Status: "OVERDUE1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ward1", "ward2", "ward3"}, svc.last.Wards)
	assert.Equal(t, []gis.PropertyType{gis.PropertyResidential, gis.PropertyCommercial}, svc.last.Types)
	assert.Equal(t, gis.TaxOverdue1, svc.last.Status)

	_, err = q.Query(context.Background(), PropertiesInput{})
	require.NoError(t, err)
	assert.Equal(t, gis.TaxStatusAll, svc.last.Status)
	assert.Empty(t, svc.last.Wards)
}

func TestPropertiesQueryTogglesSelection(t *testing.T) {
	svc := &stubPropertyService{}
	q := NewPropertiesQuery(svc)
	_, err := q.Query(context.Background(), PropertiesInput{
		Wards:      []string{"ward1,ward2"},
		Types:      []string{"vacant"},
		ToggleWard: "ward1",
		ToggleType: "industrial",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ward2"}, svc.last.Wards)
	assert.Equal(t, []gis.PropertyType{gis.PropertyVacant, gis.PropertyIndustrial}, svc.last.Types)

	_, err = q.Query(context.Background(), PropertiesInput{ToggleType: "castle"})
	assert.ErrorIs(t, err, gis.ErrInvalidPropertyType)
}

func TestPropertiesQueryRejectsBadValues(t *testing.T) {
	q := NewPropertiesQuery(&stubPropertyService{})
	_, err := q.Query(context.Background(), PropertiesInput{Types: []string{"castle"}})
	assert.ErrorIs(t, err, gis.ErrInvalidPropertyType)
	_, err = q.Query(context.Background(), PropertiesInput{Status: "late"})
	assert.ErrorIs(t, err, gis.ErrInvalidTaxStatus)
}

func TestServiceBackedQueries(t *testing.T) {
	service, err := gis.NewService(gis.Options{})
	require.NoError(t, err)
	ctx := context.Background()
	defer service.Close(ctx)

	session, err := service.OpenSession(ctx)
	require.NoError(t, err)
	snap, err := NewSnapshotQuery(service).Query(ctx, SnapshotInput{SessionID: session.ID()})
	require.NoError(t, err)
	assert.Equal(t, session.ID(), snap.ID)
	_, err = NewSnapshotQuery(service).Query(ctx, SnapshotInput{SessionID: "missing"})
	assert.ErrorIs(t, err, gis.ErrUnknownSession)

	layers, err := NewLayersQuery(service).Query(ctx, LayersInput{Locale: "en"})
	require.NoError(t, err)
	assert.Len(t, layers, 12)

	results, err := NewSearchQuery(service).Query(ctx, SearchInput{Text: "kopri"})
	require.NoError(t, err)
	assert.Len(t, results, 1)

	wards, err := NewWardsQuery(service).Query(ctx, struct{}{})
	require.NoError(t, err)
	assert.Len(t, wards.TopPerformers, 3)

	bounds, err := NewBoundariesQuery(service).Query(ctx, struct{}{})
	require.NoError(t, err)
	assert.Len(t, bounds, 6)

	html, err := NewChartQuery(service).Query(ctx, ChartInput{Name: gis.ChartPropertyTypes})
	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

type failingCharts struct{}

func (failingCharts) Chart(context.Context, string) (string, error) { return "", errors.New("no charts") }

func TestChartQueryPropagatesErrors(t *testing.T) {
	_, err := NewChartQuery(failingCharts{}).Query(context.Background(), ChartInput{Name: "x"})
	require.Error(t, err)
}
