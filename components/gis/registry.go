package gis

import (
	"fmt"
	"strings"
)

// LayerDescriptor describes one layer of the embedded map export.
type LayerDescriptor struct {
	ID            string            `json:"id" yaml:"id"`
	Name          string            `json:"name" yaml:"name"`
	NameLocalized map[string]string `json:"name_localized,omitempty" yaml:"name_localized,omitempty"`
	Color         string            `json:"color" yaml:"color"`
	Category      Category          `json:"category" yaml:"category"`
}

// NameForLocale returns the display name for the requested locale, falling back to Name.
func (l LayerDescriptor) NameForLocale(locale string) string {
	return ResolveLocalizedValue(l.NameLocalized, locale, l.Name)
}

// LayerRegistry is the immutable layer catalog. It is safe for concurrent reads.
type LayerRegistry struct {
	layers     []LayerDescriptor
	byID       map[string]int
	byCategory map[Category][]string
}

// NewLayerRegistry validates the descriptors and freezes them in declaration order.
func NewLayerRegistry(layers []LayerDescriptor) (*LayerRegistry, error) {
	reg := &LayerRegistry{
		layers:     make([]LayerDescriptor, 0, len(layers)),
		byID:       make(map[string]int, len(layers)),
		byCategory: make(map[Category][]string),
	}
	for _, layer := range layers {
		layer.ID = strings.TrimSpace(layer.ID)
		if layer.ID == "" {
			return nil, fmt.Errorf("gis: layer id is required")
		}
		if !layer.Category.Valid() {
			return nil, fmt.Errorf("%w: layer %s has %q", ErrInvalidCategory, layer.ID, layer.Category)
		}
		if _, exists := reg.byID[layer.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLayer, layer.ID)
		}
		layer.NameLocalized = normalizeLocaleMap(layer.NameLocalized)
		reg.byID[layer.ID] = len(reg.layers)
		reg.layers = append(reg.layers, layer)
		reg.byCategory[layer.Category] = append(reg.byCategory[layer.Category], layer.ID)
	}
	return reg, nil
}

// MustLayerRegistry panics when the descriptors are invalid. Intended for package-level defaults.
func MustLayerRegistry(layers []LayerDescriptor) *LayerRegistry {
	reg, err := NewLayerRegistry(layers)
	if err != nil {
		panic(err)
	}
	return reg
}

// All returns a copy of every descriptor in declaration order.
func (r *LayerRegistry) All() []LayerDescriptor {
	out := make([]LayerDescriptor, len(r.layers))
	copy(out, r.layers)
	return out
}

// Len reports the number of layers.
func (r *LayerRegistry) Len() int {
	return len(r.layers)
}

// Layer resolves a descriptor by id.
func (r *LayerRegistry) Layer(id string) (LayerDescriptor, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return LayerDescriptor{}, false
	}
	return r.layers[idx], true
}

// Has reports whether id is registered.
func (r *LayerRegistry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// LayerIDsFor lists the layer ids in the category, in declaration order.
func (r *LayerRegistry) LayerIDsFor(category Category) []string {
	return append([]string(nil), r.byCategory[category]...)
}

// InitialVisibility maps every registered layer to visible.
func (r *LayerRegistry) InitialVisibility() VisibilityState {
	state := make(VisibilityState, len(r.layers))
	for _, layer := range r.layers {
		state[layer.ID] = true
	}
	return state
}

// AlwaysOnSet is the allow-list of layers exempt from toggles and filters.
type AlwaysOnSet map[string]struct{}

// NewAlwaysOnSet builds the allow-list, ignoring ids that are not registered.
func NewAlwaysOnSet(reg *LayerRegistry, ids ...string) AlwaysOnSet {
	set := make(AlwaysOnSet, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if reg != nil && !reg.Has(id) {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is always on. A nil set contains nothing.
func (s AlwaysOnSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}
