package gis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// MaxFrameMessageBytes bounds a single inbound frame message.
const MaxFrameMessageBytes = 64 << 10

const frameMessageSchemaName = "frame-message.json"

const frameMessageSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"enum": ["mapReady", "layerStateUpdate"]},
    "activeLayerIds": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    }
  }
}`

// FrameMessageValidator checks inbound frame messages against a JSON schema before decoding.
// The channel is untrusted: anything running in either window can post to it.
type FrameMessageValidator struct {
	schema *jsonschema.Schema
}

// NewFrameMessageValidator compiles the frame message schema.
func NewFrameMessageValidator() (*FrameMessageValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(frameMessageSchemaName, strings.NewReader(frameMessageSchema)); err != nil {
		return nil, fmt.Errorf("gis: load frame schema: %w", err)
	}
	schema, err := compiler.Compile(frameMessageSchemaName)
	if err != nil {
		return nil, fmt.Errorf("gis: compile frame schema: %w", err)
	}
	return &FrameMessageValidator{schema: schema}, nil
}

// MustFrameMessageValidator panics if the embedded schema does not compile.
func MustFrameMessageValidator() *FrameMessageValidator {
	v, err := NewFrameMessageValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate reports ErrMalformedMessage for oversized, non-JSON or off-schema payloads.
func (v *FrameMessageValidator) Validate(raw []byte) error {
	if len(raw) > MaxFrameMessageBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit", ErrMalformedMessage, len(raw))
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := v.schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return nil
}
