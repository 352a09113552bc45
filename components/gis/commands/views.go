package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

type viewCloser interface {
	CloseSession(ctx context.Context, id string) error
}

// CloseViewInput ends a dashboard view.
type CloseViewInput struct {
	SessionID string `json:"session_id"`
}

// CloseViewCommand tears a view down, cancelling its pending frame timers.
type CloseViewCommand struct {
	service   viewCloser
	telemetry Telemetry
}

// NewCloseViewCommand creates the command.
func NewCloseViewCommand(service viewCloser, telemetry Telemetry) *CloseViewCommand {
	return &CloseViewCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CloseViewInput] = (*CloseViewCommand)(nil)

// Execute closes the view.
func (c *CloseViewCommand) Execute(ctx context.Context, msg CloseViewInput) error {
	if c.service == nil {
		return errors.New("close view command requires service")
	}
	if err := c.service.CloseSession(ctx, msg.SessionID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "gis.view.closed", map[string]any{"session": msg.SessionID})
	return nil
}
