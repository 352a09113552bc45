package gis

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visibleSet(state VisibilityState) []string {
	var ids []string
	for id, visible := range state {
		if visible {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func TestApplyFilterFromUnset(t *testing.T) {
	policy := FilterPolicy{Registry: DefaultRegistry(), HighlightDelay: DefaultHighlightDelay}
	tr := policy.ApplyFilter(NoFilter, CategoryHospital)

	require.Len(t, tr.Messages, 2)
	bulk := bulkOf(t, tr.Messages[0].Message)
	assert.Len(t, bulk.Updates, DefaultRegistry().Len())
	assert.Zero(t, tr.Messages[0].Delay)

	highlight, ok := tr.Messages[1].Message.(HighlightLayers)
	require.True(t, ok)
	assert.Equal(t, []string{"layer__11"}, highlight.LayerIDs)
	assert.Equal(t, DefaultHighlightDelay, tr.Messages[1].Delay)

	want := []string{"layer_ExistingLandUse_1", "layer_ProposeLandUse_0", "layer_ROAD_2", "layer__11"}
	if diff := cmp.Diff(want, visibleSet(tr.State)); diff != "" {
		t.Fatalf("visible set mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFilterSwitchClearsPreviousCategoryFirst(t *testing.T) {
	policy := FilterPolicy{Registry: DefaultRegistry(), HighlightDelay: DefaultHighlightDelay}
	tr := policy.ApplyFilter(CategoryHospital, CategoryVacant)

	require.Len(t, tr.Messages, 3)
	clear, ok := tr.Messages[0].Message.(ClearHighlights)
	require.True(t, ok)
	assert.False(t, clear.IsGlobal())
	assert.Equal(t, []string{"layer__11"}, clear.LayerIDs)

	bulkOf(t, tr.Messages[1].Message)
	highlight := tr.Messages[2].Message.(HighlightLayers)
	assert.Equal(t, []string{"layer__10", "layer__8", "layer_RESERVATION_4"}, highlight.LayerIDs)
}

func TestApplyFilterToUnsetClearsGlobally(t *testing.T) {
	policy := FilterPolicy{Registry: DefaultRegistry()}
	tr := policy.ApplyFilter(CategoryVacant, NoFilter)

	require.Len(t, tr.Messages, 3)
	assert.False(t, tr.Messages[0].Message.(ClearHighlights).IsGlobal())
	bulk := bulkOf(t, tr.Messages[1].Message)
	for _, u := range bulk.Updates {
		assert.True(t, u.Visible, u.ID)
	}
	last, ok := tr.Messages[2].Message.(ClearHighlights)
	require.True(t, ok)
	assert.True(t, last.IsGlobal())
	assert.Equal(t, NoFilter, tr.Filter)
}

func TestApplyFilterCompleteness(t *testing.T) {
	reg := DefaultRegistry()
	alwaysOn := NewAlwaysOnSet(reg, "layer__6")
	policy := FilterPolicy{Registry: reg, AlwaysOn: alwaysOn}
	filters := append([]Category{NoFilter}, Categories()...)

	for _, previous := range filters {
		for _, next := range filters {
			tr := policy.ApplyFilter(previous, next)
			var bulk BulkVisibilityUpdate
			bulks := 0
			for _, m := range tr.Messages {
				if b, ok := m.Message.(BulkVisibilityUpdate); ok {
					bulk = b
					bulks++
				}
			}
			require.Equal(t, 1, bulks, "%s -> %s", previous, next)
			require.Len(t, bulk.Updates, reg.Len())

			seen := make(map[string]bool)
			for _, u := range bulk.Updates {
				require.False(t, seen[u.ID], "duplicate %s", u.ID)
				seen[u.ID] = true
				layer, _ := reg.Layer(u.ID)
				want := !next.IsSet() || layer.Category == next || layer.Category == CategoryOther || alwaysOn.Contains(u.ID)
				assert.Equal(t, want, u.Visible, "%s -> %s: %s", previous, next, u.ID)
				assert.Equal(t, want, tr.State[u.ID])
			}
		}
	}
}

func TestAlwaysOnSurvivesFiltersAndToggles(t *testing.T) {
	reg := DefaultRegistry()
	policy := FilterPolicy{Registry: reg, AlwaysOn: NewAlwaysOnSet(reg, "layer__6", "not-a-layer")}
	assert.False(t, policy.AlwaysOn.Contains("not-a-layer"))

	for _, c := range Categories() {
		tr := policy.ApplyFilter(NoFilter, c)
		assert.True(t, tr.State["layer__6"], c)
	}

	state := reg.InitialVisibility()
	tr, err := policy.ToggleLayer(state, NoFilter, "layer__6")
	require.NoError(t, err)
	assert.True(t, tr.State["layer__6"])
	assert.Equal(t, []ScheduledMessage{{Message: ToggleLayer{LayerID: "layer__6", Visible: true}}}, tr.Messages)

	tr = policy.SetCategoryVisibility(state, NoFilter, CategoryPublicToilets, false)
	assert.True(t, tr.State["layer__6"])
}

func TestToggleAutoResetScenario(t *testing.T) {
	reg := threeLayerRegistry()
	policy := FilterPolicy{Registry: reg, HighlightDelay: 50 * time.Millisecond}

	tr := policy.ApplyFilter(NoFilter, CategoryResidential)
	assert.Equal(t, []string{"A", "B", "C"}, visibleSet(tr.State))

	tr, err := policy.ToggleLayer(tr.State, tr.Filter, "A")
	require.NoError(t, err)
	assert.False(t, tr.AutoReset)
	assert.Equal(t, CategoryResidential, tr.Filter)
	assert.Equal(t, []string{"B", "C"}, visibleSet(tr.State))
	assert.Equal(t, []ScheduledMessage{{Message: ToggleLayer{LayerID: "A", Visible: false}}}, tr.Messages)

	tr, err = policy.ToggleLayer(tr.State, tr.Filter, "B")
	require.NoError(t, err)
	assert.True(t, tr.AutoReset)
	assert.Equal(t, NoFilter, tr.Filter)
	assert.Equal(t, []string{"A", "B", "C"}, visibleSet(tr.State))

	require.Len(t, tr.Messages, 3)
	assert.Equal(t, ClearHighlights{LayerIDs: []string{"A", "B"}}, tr.Messages[0].Message)
	bulkOf(t, tr.Messages[1].Message)
	assert.True(t, tr.Messages[2].Message.(ClearHighlights).IsGlobal())
}

func TestToggleCheckingUnderFilterDoesNotReset(t *testing.T) {
	policy := FilterPolicy{Registry: DefaultRegistry()}
	tr := policy.ApplyFilter(NoFilter, CategoryHospital)
	require.False(t, tr.State["layer__9"])

	tr, err := policy.ToggleLayer(tr.State, tr.Filter, "layer__9")
	require.NoError(t, err)
	assert.False(t, tr.AutoReset)
	assert.Equal(t, CategoryHospital, tr.Filter)
	assert.True(t, tr.State["layer__9"])
}

func TestToggleWithoutFilterNeverResets(t *testing.T) {
	reg := threeLayerRegistry()
	policy := FilterPolicy{Registry: reg}
	state := reg.InitialVisibility()
	for _, id := range []string{"A", "B", "C"} {
		tr, err := policy.ToggleLayer(state, NoFilter, id)
		require.NoError(t, err)
		assert.False(t, tr.AutoReset)
		state = tr.State
	}
	assert.Empty(t, visibleSet(state))
}

func TestToggleUnknownLayer(t *testing.T) {
	policy := FilterPolicy{Registry: DefaultRegistry()}
	_, err := policy.ToggleLayer(DefaultRegistry().InitialVisibility(), NoFilter, "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLayer))
}

func TestSetCategoryVisibilitySendsFullState(t *testing.T) {
	reg := DefaultRegistry()
	policy := FilterPolicy{Registry: reg}
	tr := policy.SetCategoryVisibility(reg.InitialVisibility(), NoFilter, CategoryVacant, false)

	require.Len(t, tr.Messages, 1)
	bulk := bulkOf(t, tr.Messages[0].Message)
	require.Len(t, bulk.Updates, reg.Len())
	for _, u := range bulk.Updates {
		layer, _ := reg.Layer(u.ID)
		assert.Equal(t, layer.Category != CategoryVacant, u.Visible, u.ID)
	}
}
