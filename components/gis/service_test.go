package gis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts Options) (*Service, *recordingHook) {
	t.Helper()
	hook := &recordingHook{}
	n := 0
	opts.Hook = hook
	if opts.Clock == nil {
		opts.Clock = clockwork.NewFakeClock()
	}
	opts.NewID = func() string {
		n++
		return fmt.Sprintf("view-%d", n)
	}
	svc, err := NewService(opts)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close(context.Background()) })
	return svc, hook
}

func TestServiceSessionLifecycle(t *testing.T) {
	svc, hook := newTestService(t, Options{})
	ctx := context.Background()

	s1, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	_, err = svc.OpenSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"view-1", "view-2"}, svc.SessionIDs())

	got, err := svc.Session("view-1")
	require.NoError(t, err)
	assert.Same(t, s1, got)

	require.NoError(t, svc.CloseSession(ctx, "view-1"))
	_, err = svc.Session("view-1")
	assert.ErrorIs(t, err, ErrUnknownSession)
	assert.ErrorIs(t, svc.CloseSession(ctx, "view-1"), ErrUnknownSession)
	assert.Equal(t, []string{EventClosed}, hook.kinds())

	_, err = s1.ToggleLayer(ctx, "layer__6")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestServiceSessionsAreIndependent(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	a, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	b, err := svc.OpenSession(ctx)
	require.NoError(t, err)

	_, err = a.SetFilter(ctx, CategoryHospital)
	require.NoError(t, err)
	assert.Equal(t, CategoryHospital, a.State().Filter)
	assert.Equal(t, NoFilter, b.State().Filter)
}

func TestServiceLayersAndAlwaysOn(t *testing.T) {
	svc, _ := newTestService(t, Options{AlwaysOn: []string{"layer_ROAD_2", "ghost"}})
	views := svc.Layers("en")
	require.Len(t, views, 12)
	assert.Equal(t, "Municipal Public Toilets", views[0].DisplayName)
	assert.False(t, views[0].AlwaysOn)
	assert.True(t, views[9].AlwaysOn)
	assert.Equal(t, "/"+DefaultMapFolder+"/index.html", svc.MapFramePath())
}

func TestServiceReadModels(t *testing.T) {
	svc, _ := newTestService(t, Options{Properties: twoProperties()})
	ctx := context.Background()

	layer := svc.Properties(PropertyQuery{Status: TaxOverdue1})
	require.Len(t, layer.Markers, 1)
	assert.Equal(t, "P2", layer.Markers[0].Property.ID)

	assert.Len(t, svc.Search("naupada"), 1)

	wards, err := svc.Wards(ctx)
	require.NoError(t, err)
	assert.Len(t, wards.Wards, 6)

	bounds, err := svc.Boundaries(ctx)
	require.NoError(t, err)
	assert.Len(t, bounds, 6)

	html, err := svc.Chart(ctx, ChartWardCollection)
	require.NoError(t, err)
	assert.NotEmpty(t, html)
	_, err = svc.Chart(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownChart)

	assert.Equal(t, DefaultTaxReport(), svc.Report())
}

type failingWards struct{}

func (failingWards) FetchWards(context.Context) ([]Ward, error) { return nil, errors.New("offline") }

func TestServiceWardSourceErrors(t *testing.T) {
	svc, _ := newTestService(t, Options{WardSource: failingWards{}})
	ctx := context.Background()
	_, err := svc.Wards(ctx)
	require.Error(t, err)
	_, err = svc.Boundaries(ctx)
	require.Error(t, err)
	_, err = svc.Chart(ctx, ChartWardComparison)
	require.Error(t, err)
	_, err = svc.Chart(ctx, ChartValuation)
	require.NoError(t, err)

	svc, _ = newTestService(t, Options{WardSource: failingWards{}, Boundaries: []WardBoundary{{WardID: "w"}}})
	bounds, err := svc.Boundaries(ctx)
	require.NoError(t, err)
	assert.Len(t, bounds, 1)
}
