package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gis-dashboard/components/gis"
)

var errNoSessions = errors.New("commands: session resolver is required")

type sessionResolver interface {
	Session(id string) (*gis.Session, error)
}

// ToggleLayerInput flips one layer of a view.
type ToggleLayerInput struct {
	SessionID string `json:"session_id"`
	LayerID   string `json:"layer_id"`
}

// ToggleLayerCommand toggles a layer and mirrors it to the view's map frame.
type ToggleLayerCommand struct {
	sessions  sessionResolver
	telemetry Telemetry
}

// NewToggleLayerCommand creates the command.
func NewToggleLayerCommand(sessions sessionResolver, telemetry Telemetry) *ToggleLayerCommand {
	return &ToggleLayerCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleLayerInput] = (*ToggleLayerCommand)(nil)

// Execute toggles the layer.
func (c *ToggleLayerCommand) Execute(ctx context.Context, msg ToggleLayerInput) error {
	if c.sessions == nil {
		return errNoSessions
	}
	session, err := c.sessions.Session(msg.SessionID)
	if err != nil {
		return err
	}
	t, err := session.ToggleLayer(ctx, msg.LayerID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "gis.layer.toggle", map[string]any{
		"session":    msg.SessionID,
		"layer":      msg.LayerID,
		"visible":    t.State[msg.LayerID],
		"auto_reset": t.AutoReset,
	})
	return nil
}

// SetCategoryVisibilityInput shows or hides every layer of a category.
type SetCategoryVisibilityInput struct {
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
	Visible   bool   `json:"visible"`
}

// SetCategoryVisibilityCommand applies a category-wide visibility change.
type SetCategoryVisibilityCommand struct {
	sessions  sessionResolver
	telemetry Telemetry
}

// NewSetCategoryVisibilityCommand creates the command.
func NewSetCategoryVisibilityCommand(sessions sessionResolver, telemetry Telemetry) *SetCategoryVisibilityCommand {
	return &SetCategoryVisibilityCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetCategoryVisibilityInput] = (*SetCategoryVisibilityCommand)(nil)

// Execute applies the change.
func (c *SetCategoryVisibilityCommand) Execute(ctx context.Context, msg SetCategoryVisibilityInput) error {
	if c.sessions == nil {
		return errNoSessions
	}
	category, err := gis.ParseCategory(msg.Category)
	if err != nil {
		return err
	}
	if !category.IsSet() {
		return gis.ErrInvalidCategory
	}
	session, err := c.sessions.Session(msg.SessionID)
	if err != nil {
		return err
	}
	if _, err := session.SetCategoryVisibility(ctx, category, msg.Visible); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "gis.category.visibility", map[string]any{
		"session":  msg.SessionID,
		"category": string(category),
		"visible":  msg.Visible,
	})
	return nil
}
