package gis

import "time"

// ScheduledMessage is a host message to send after Delay.
type ScheduledMessage struct {
	Message HostMessage
	Delay   time.Duration
}

// Transition is the outcome of a state change: the new filter and visibility plus the messages
// that mirror it to the frame, in send order.
type Transition struct {
	Filter    Category
	State     VisibilityState
	Messages  []ScheduledMessage
	AutoReset bool
}

// FilterPolicy holds what the reducers need besides the state itself.
type FilterPolicy struct {
	Registry       *LayerRegistry
	AlwaysOn       AlwaysOnSet
	HighlightDelay time.Duration
}

// ApplyFilter switches the property-type filter from previous to next.
//
// A scoped clear for the previous category goes out before the bulk update, and the highlight
// for the new category follows after HighlightDelay so the clear lands first.
func (p FilterPolicy) ApplyFilter(previous, next Category) Transition {
	reg := p.Registry
	var msgs []ScheduledMessage
	if previous.IsSet() {
		msgs = append(msgs, ScheduledMessage{Message: ClearHighlights{LayerIDs: reg.LayerIDsFor(previous)}})
	}

	state := make(VisibilityState, reg.Len())
	for _, layer := range reg.layers {
		switch {
		case p.AlwaysOn.Contains(layer.ID):
			state[layer.ID] = true
		case !next.IsSet():
			state[layer.ID] = true
		default:
			state[layer.ID] = layer.Category == next || layer.Category == CategoryOther
		}
	}
	msgs = append(msgs, ScheduledMessage{Message: BulkVisibilityUpdate{Updates: state.Updates(reg)}})

	if next.IsSet() {
		highlighted := make([]string, 0)
		for _, id := range reg.LayerIDsFor(next) {
			if state[id] {
				highlighted = append(highlighted, id)
			}
		}
		if len(highlighted) > 0 {
			msgs = append(msgs, ScheduledMessage{
				Message: HighlightLayers{LayerIDs: highlighted},
				Delay:   p.HighlightDelay,
			})
		}
	} else {
		msgs = append(msgs, ScheduledMessage{Message: ClearHighlights{}})
	}

	return Transition{Filter: next, State: state, Messages: msgs}
}

// ToggleLayer flips one layer under the active filter. Unchecking the last visible layer of the
// filtered category resets the filter instead, so the category never ends up all hidden.
func (p FilterPolicy) ToggleLayer(state VisibilityState, filter Category, id string) (Transition, error) {
	reg := p.Registry
	if !reg.Has(id) {
		return Transition{}, ErrUnknownLayer
	}
	if p.AlwaysOn.Contains(id) {
		next := SetVisibility(reg, state, p.AlwaysOn, id, true)
		return Transition{
			Filter:   filter,
			State:    next,
			Messages: []ScheduledMessage{{Message: ToggleLayer{LayerID: id, Visible: true}}},
		}, nil
	}

	unchecking := state[id]
	if filter.IsSet() && unchecking {
		remaining := 0
		for _, other := range reg.LayerIDsFor(filter) {
			if other != id && state[other] {
				remaining++
			}
		}
		if remaining == 0 {
			t := p.ApplyFilter(filter, NoFilter)
			t.AutoReset = true
			return t, nil
		}
	}

	next, visible := Toggle(reg, state, p.AlwaysOn, id)
	return Transition{
		Filter:   filter,
		State:    next,
		Messages: []ScheduledMessage{{Message: ToggleLayer{LayerID: id, Visible: visible}}},
	}, nil
}

// SetCategoryVisibility shows or hides every layer of a category in one bulk update.
// The active filter is left as is.
func (p FilterPolicy) SetCategoryVisibility(state VisibilityState, filter Category, category Category, visible bool) Transition {
	next := state.Clone()
	for _, id := range p.Registry.LayerIDsFor(category) {
		next[id] = visible || p.AlwaysOn.Contains(id)
	}
	return Transition{
		Filter:   filter,
		State:    next,
		Messages: []ScheduledMessage{{Message: BulkVisibilityUpdate{Updates: next.Updates(p.Registry)}}},
	}
}
