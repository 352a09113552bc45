package gis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFrameFullStateReplayIsIdempotent(t *testing.T) {
	reg := DefaultRegistry()
	policy := FilterPolicy{Registry: reg}
	tr := policy.ApplyFilter(NoFilter, CategoryVacant)
	replay := BulkVisibilityUpdate{Updates: tr.State.Updates(reg)}

	frame := NewMapFrame(idsOf(reg))
	frame.Apply(replay)
	first := frame.VisibleIDs()
	frame.Apply(replay)
	assert.Equal(t, first, frame.VisibleIDs())
	assert.Equal(t, tr.State.VisibleIDs(reg), first)
	assert.Equal(t, 2, frame.Applied())
}

func TestMapFrameConvergesOverTheWire(t *testing.T) {
	reg := DefaultRegistry()
	policy := FilterPolicy{Registry: reg}
	frame := NewMapFrame(idsOf(reg))

	state := reg.InitialVisibility()
	filter := NoFilter
	steps := []func() (Transition, error){
		func() (Transition, error) { return policy.ApplyFilter(filter, CategoryHospital), nil },
		func() (Transition, error) { return policy.ToggleLayer(state, filter, "layer__9") },
		func() (Transition, error) { return policy.ToggleLayer(state, filter, "layer__11") },
		func() (Transition, error) { return policy.SetCategoryVisibility(state, filter, CategoryOther, false), nil },
	}
	for _, step := range steps {
		tr, err := step()
		require.NoError(t, err)
		state, filter = tr.State, tr.Filter
		for _, m := range tr.Messages {
			raw, err := json.Marshal(m.Message)
			require.NoError(t, err)
			require.NoError(t, frame.ApplyRaw(raw))
		}
		assert.Equal(t, state.VisibleIDs(reg), frame.VisibleIDs())
	}
	assert.Equal(t, NoFilter, filter, "unchecking the only hospital layer resets the filter")
}

func TestMapFrameHighlights(t *testing.T) {
	frame := NewMapFrame([]string{"a", "b", "c"})
	var updates []LayerStateUpdate
	frame.OnChange(func(u LayerStateUpdate) { updates = append(updates, u) })

	frame.Apply(HighlightLayers{LayerIDs: []string{"a", "b", "ghost"}})
	assert.Equal(t, []string{"a", "b"}, frame.HighlightedIDs())

	frame.Apply(ClearHighlights{LayerIDs: []string{"a"}})
	assert.Equal(t, []string{"b"}, frame.HighlightedIDs())

	frame.Apply(ClearHighlights{LayerIDs: []string{}})
	assert.Equal(t, []string{"b"}, frame.HighlightedIDs())

	frame.Apply(ToggleLayer{LayerID: "b", Visible: false})
	assert.Empty(t, frame.HighlightedIDs())
	assert.Equal(t, []string{"a", "c"}, frame.VisibleIDs())

	frame.Apply(HighlightLayers{LayerIDs: []string{"a", "c"}})
	frame.Apply(ClearHighlights{})
	assert.Empty(t, frame.HighlightedIDs())

	require.Len(t, updates, 6)
	assert.Equal(t, LayerStateUpdate{ActiveLayerIDs: []string{"a", "c"}}, updates[len(updates)-1])
	assert.Equal(t, frame.StateUpdate(), updates[len(updates)-1])
}

func TestMapFrameIgnoresUnknownLayers(t *testing.T) {
	frame := NewMapFrame([]string{"a"})
	frame.Apply(BulkVisibilityUpdate{Updates: []VisibilityUpdate{{ID: "ghost", Visible: false}, {ID: "a", Visible: false}}})
	assert.Empty(t, frame.VisibleIDs())
	require.Error(t, frame.ApplyRaw([]byte(`{"type":"explode"}`)))
}

func idsOf(reg *LayerRegistry) []string {
	ids := make([]string, 0, reg.Len())
	for _, l := range reg.All() {
		ids = append(ids, l.ID)
	}
	return ids
}
