package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gis-dashboard/components/gis"
)

// ApplyFilterInput sets the property-type filter; an empty category clears it.
type ApplyFilterInput struct {
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
}

// ApplyFilterCommand switches a view's property-type filter.
type ApplyFilterCommand struct {
	sessions  sessionResolver
	telemetry Telemetry
}

// NewApplyFilterCommand creates the command.
func NewApplyFilterCommand(sessions sessionResolver, telemetry Telemetry) *ApplyFilterCommand {
	return &ApplyFilterCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ApplyFilterInput] = (*ApplyFilterCommand)(nil)

// Execute applies the filter.
func (c *ApplyFilterCommand) Execute(ctx context.Context, msg ApplyFilterInput) error {
	if c.sessions == nil {
		return errNoSessions
	}
	category, err := gis.ParseCategory(msg.Category)
	if err != nil {
		return err
	}
	session, err := c.sessions.Session(msg.SessionID)
	if err != nil {
		return err
	}
	t, err := session.SetFilter(ctx, category)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "gis.filter.command", map[string]any{
		"session":  msg.SessionID,
		"filter":   string(category),
		"messages": len(t.Messages),
	})
	return nil
}
