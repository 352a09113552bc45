package gis

// VisibilityState maps every registered layer id to its visibility.
type VisibilityState map[string]bool

// Clone returns an independent copy.
func (s VisibilityState) Clone() VisibilityState {
	out := make(VisibilityState, len(s))
	for id, visible := range s {
		out[id] = visible
	}
	return out
}

// VisibleIDs lists the visible layers in registry order.
func (s VisibilityState) VisibleIDs(reg *LayerRegistry) []string {
	ids := make([]string, 0, len(s))
	for _, layer := range reg.layers {
		if s[layer.ID] {
			ids = append(ids, layer.ID)
		}
	}
	return ids
}

// Updates expands the state into wire updates in registry order.
func (s VisibilityState) Updates(reg *LayerRegistry) []VisibilityUpdate {
	updates := make([]VisibilityUpdate, 0, len(reg.layers))
	for _, layer := range reg.layers {
		updates = append(updates, VisibilityUpdate{ID: layer.ID, Visible: s[layer.ID]})
	}
	return updates
}

// Toggle flips one layer and returns the new state along with the layer's resolved visibility.
// Always-on layers resolve to true. Unknown ids leave the state untouched.
func Toggle(reg *LayerRegistry, state VisibilityState, alwaysOn AlwaysOnSet, id string) (VisibilityState, bool) {
	next := state.Clone()
	if !reg.Has(id) {
		return next, false
	}
	if alwaysOn.Contains(id) {
		next[id] = true
		return next, true
	}
	next[id] = !state[id]
	return next, next[id]
}

// SetVisibility forces one layer, honoring the always-on allow-list.
func SetVisibility(reg *LayerRegistry, state VisibilityState, alwaysOn AlwaysOnSet, id string, visible bool) VisibilityState {
	next := state.Clone()
	if !reg.Has(id) {
		return next
	}
	next[id] = visible || alwaysOn.Contains(id)
	return next
}
