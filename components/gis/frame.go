package gis

import (
	"sort"
	"sync"
)

// MapFrame models how the embedded map applies host commands. Every command is applied as
// absolute target state, so replays and reordered retries converge.
type MapFrame struct {
	mu          sync.Mutex
	order       []string
	known       map[string]struct{}
	visible     map[string]bool
	highlighted map[string]bool
	applied     int
	onChange    func(LayerStateUpdate)
}

// NewMapFrame starts with every layer of the export visible.
func NewMapFrame(layerIDs []string) *MapFrame {
	f := &MapFrame{
		known:       make(map[string]struct{}, len(layerIDs)),
		visible:     make(map[string]bool, len(layerIDs)),
		highlighted: make(map[string]bool),
	}
	for _, id := range layerIDs {
		if _, dup := f.known[id]; dup {
			continue
		}
		f.known[id] = struct{}{}
		f.order = append(f.order, id)
		f.visible[id] = true
	}
	return f
}

// OnChange registers a callback fired with the active layers after each applied command.
func (f *MapFrame) OnChange(fn func(LayerStateUpdate)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

// PostMessage applies msg synchronously. It satisfies FrameWindow.
func (f *MapFrame) PostMessage(msg HostMessage) error {
	f.Apply(msg)
	return nil
}

// ApplyRaw decodes and applies a wire message.
func (f *MapFrame) ApplyRaw(raw []byte) error {
	msg, err := DecodeHostMessage(raw)
	if err != nil {
		return err
	}
	f.Apply(msg)
	return nil
}

// Apply executes one host command. Unknown layer ids are ignored.
func (f *MapFrame) Apply(msg HostMessage) {
	f.mu.Lock()
	switch m := msg.(type) {
	case ToggleLayer:
		f.setLocked(m.LayerID, m.Visible)
	case BulkVisibilityUpdate:
		for _, u := range m.Updates {
			f.setLocked(u.ID, u.Visible)
		}
	case HighlightLayers:
		for _, id := range m.LayerIDs {
			if _, ok := f.known[id]; ok {
				f.highlighted[id] = true
			}
		}
	case ClearHighlights:
		if m.IsGlobal() {
			f.highlighted = make(map[string]bool)
		} else {
			for _, id := range m.LayerIDs {
				delete(f.highlighted, id)
			}
		}
	default:
		f.mu.Unlock()
		return
	}
	f.applied++
	update := LayerStateUpdate{ActiveLayerIDs: f.visibleLocked()}
	fn := f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(update)
	}
}

func (f *MapFrame) setLocked(id string, visible bool) {
	if _, ok := f.known[id]; !ok {
		return
	}
	f.visible[id] = visible
	if !visible {
		delete(f.highlighted, id)
	}
}

func (f *MapFrame) visibleLocked() []string {
	ids := make([]string, 0, len(f.order))
	for _, id := range f.order {
		if f.visible[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// VisibleIDs lists visible layers in export order.
func (f *MapFrame) VisibleIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visibleLocked()
}

// HighlightedIDs lists highlighted layers, sorted.
func (f *MapFrame) HighlightedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.highlighted))
	for id := range f.highlighted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Applied counts the commands applied so far.
func (f *MapFrame) Applied() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied
}

// StateUpdate reports the active layers in wire form.
func (f *MapFrame) StateUpdate() LayerStateUpdate {
	return LayerStateUpdate{ActiveLayerIDs: f.VisibleIDs()}
}
