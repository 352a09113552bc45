package gis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// HostMessageType tags host to frame messages on the wire.
type HostMessageType string

const (
	HostToggleLayer           HostMessageType = "toggleLayer"
	HostUpdateLayerVisibility HostMessageType = "updateLayerVisibility"
	HostHighlightLayers       HostMessageType = "highlightLayers"
	HostClearHighlights       HostMessageType = "clearHighlights"
)

// HostMessage is a command pushed from the dashboard to the embedded map.
// Every variant carries full target state so the frame can apply it idempotently.
type HostMessage interface {
	HostType() HostMessageType
	hostMessage()
}

// VisibilityUpdate is one entry of a bulk visibility update.
type VisibilityUpdate struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

// ToggleLayer sets a single layer's visibility.
type ToggleLayer struct {
	LayerID string
	Visible bool
}

// BulkVisibilityUpdate carries visibility for many layers in one message.
type BulkVisibilityUpdate struct {
	Updates []VisibilityUpdate
}

// HighlightLayers asks the frame to emphasize the listed layers.
type HighlightLayers struct {
	LayerIDs []string
}

// ClearHighlights removes highlights. A nil LayerIDs clears every highlight; a non-nil slice,
// even an empty one, scopes the clear to those layers.
type ClearHighlights struct {
	LayerIDs []string
}

func (ToggleLayer) HostType() HostMessageType          { return HostToggleLayer }
func (BulkVisibilityUpdate) HostType() HostMessageType { return HostUpdateLayerVisibility }
func (HighlightLayers) HostType() HostMessageType      { return HostHighlightLayers }
func (ClearHighlights) HostType() HostMessageType      { return HostClearHighlights }

func (ToggleLayer) hostMessage()          {}
func (BulkVisibilityUpdate) hostMessage() {}
func (HighlightLayers) hostMessage()      {}
func (ClearHighlights) hostMessage()      {}

// IsGlobal reports whether the clear targets every layer.
func (m ClearHighlights) IsGlobal() bool {
	return m.LayerIDs == nil
}

func (m ToggleLayer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    HostMessageType `json:"type"`
		LayerID string          `json:"layerId"`
		Visible bool            `json:"visible"`
	}{HostToggleLayer, m.LayerID, m.Visible})
}

func (m BulkVisibilityUpdate) MarshalJSON() ([]byte, error) {
	updates := m.Updates
	if updates == nil {
		updates = []VisibilityUpdate{}
	}
	return json.Marshal(struct {
		Type    HostMessageType    `json:"type"`
		Updates []VisibilityUpdate `json:"updates"`
	}{HostUpdateLayerVisibility, updates})
}

func (m HighlightLayers) MarshalJSON() ([]byte, error) {
	ids := m.LayerIDs
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(struct {
		Type     HostMessageType `json:"type"`
		LayerIDs []string        `json:"layerIds"`
	}{HostHighlightLayers, ids})
}

func (m ClearHighlights) MarshalJSON() ([]byte, error) {
	if m.LayerIDs == nil {
		return json.Marshal(struct {
			Type HostMessageType `json:"type"`
		}{HostClearHighlights})
	}
	return json.Marshal(struct {
		Type     HostMessageType `json:"type"`
		LayerIDs []string        `json:"layerIds"`
	}{HostClearHighlights, m.LayerIDs})
}

type hostEnvelope struct {
	Type     HostMessageType    `json:"type"`
	LayerID  *string            `json:"layerId"`
	Visible  *bool              `json:"visible"`
	Updates  []VisibilityUpdate `json:"updates"`
	LayerIDs json.RawMessage    `json:"layerIds"`
}

// DecodeHostMessage parses a host to frame message. The frame side uses it.
func DecodeHostMessage(raw []byte) (HostMessage, error) {
	var env hostEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	switch env.Type {
	case HostToggleLayer:
		if env.LayerID == nil || env.Visible == nil {
			return nil, fmt.Errorf("%w: toggleLayer requires layerId and visible", ErrMalformedMessage)
		}
		return ToggleLayer{LayerID: *env.LayerID, Visible: *env.Visible}, nil
	case HostUpdateLayerVisibility:
		if env.Updates == nil {
			return nil, fmt.Errorf("%w: updateLayerVisibility requires updates", ErrMalformedMessage)
		}
		return BulkVisibilityUpdate{Updates: env.Updates}, nil
	case HostHighlightLayers:
		ids, err := decodeIDList(env.LayerIDs)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []string{}
		}
		return HighlightLayers{LayerIDs: ids}, nil
	case HostClearHighlights:
		ids, err := decodeIDList(env.LayerIDs)
		if err != nil {
			return nil, err
		}
		return ClearHighlights{LayerIDs: ids}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedMessage, env.Type)
	}
}

// decodeIDList keeps the difference between an absent list (nil) and an empty one.
func decodeIDList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	ids := []string{}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("%w: layerIds: %v", ErrMalformedMessage, err)
	}
	return ids, nil
}

// FrameMessageType tags frame to host messages on the wire.
type FrameMessageType string

const (
	FrameMapReady         FrameMessageType = "mapReady"
	FrameLayerStateUpdate FrameMessageType = "layerStateUpdate"
)

// FrameMessage is a notification from the embedded map to the dashboard.
type FrameMessage interface {
	FrameType() FrameMessageType
	frameMessage()
}

// MapReady announces that the map engine finished initializing.
type MapReady struct{}

// LayerStateUpdate reports the layers the frame currently renders.
type LayerStateUpdate struct {
	ActiveLayerIDs []string
}

func (MapReady) FrameType() FrameMessageType         { return FrameMapReady }
func (LayerStateUpdate) FrameType() FrameMessageType { return FrameLayerStateUpdate }

func (MapReady) frameMessage()         {}
func (LayerStateUpdate) frameMessage() {}

func (MapReady) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type FrameMessageType `json:"type"`
	}{FrameMapReady})
}

func (m LayerStateUpdate) MarshalJSON() ([]byte, error) {
	ids := m.ActiveLayerIDs
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(struct {
		Type           FrameMessageType `json:"type"`
		ActiveLayerIDs []string         `json:"activeLayerIds"`
	}{FrameLayerStateUpdate, ids})
}

type frameEnvelope struct {
	Type           FrameMessageType `json:"type"`
	ActiveLayerIDs []string         `json:"activeLayerIds"`
}

// DecodeFrameMessage validates raw against the frame message schema and decodes it.
// A nil validator skips schema checks.
func DecodeFrameMessage(raw []byte, validator *FrameMessageValidator) (FrameMessage, error) {
	if validator != nil {
		if err := validator.Validate(raw); err != nil {
			return nil, err
		}
	}
	var env frameEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	switch env.Type {
	case FrameMapReady:
		return MapReady{}, nil
	case FrameLayerStateUpdate:
		ids := env.ActiveLayerIDs
		if ids == nil {
			ids = []string{}
		}
		return LayerStateUpdate{ActiveLayerIDs: ids}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedMessage, env.Type)
	}
}
