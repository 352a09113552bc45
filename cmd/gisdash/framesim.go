package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type frameSimCmd struct {
	URL        string        `default:"http://localhost:8080" help:"Dashboard base URL."`
	View       string        `help:"View id to attach to (a new view is opened when empty)."`
	ReadyDelay time.Duration `default:"500ms" help:"Delay before announcing mapReady."`
}

func (cmd *frameSimCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	doc, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	reg, err := doc.Registry()
	if err != nil {
		return err
	}
	ids := make([]string, 0, reg.Len())
	for _, layer := range reg.All() {
		ids = append(ids, layer.ID)
	}

	viewID := cmd.View
	if viewID == "" {
		if viewID, err = openView(ctx, cmd.URL); err != nil {
			return err
		}
	}
	sim := &frameSim{
		frame:  gis.NewMapFrame(ids),
		logger: logger.With(zap.String("frame", uuid.NewString()), zap.String("view", viewID)),
	}
	return sim.run(ctx, frameSocketURL(cmd.URL, viewID), cmd.ReadyDelay)
}

func openView(ctx context.Context, base string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/api/views", nil)
	if err != nil {
		return "", fmt.Errorf("gisdash: build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gisdash: open view: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("gisdash: open view: unexpected status %d", resp.StatusCode)
	}
	var snap gis.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return "", fmt.Errorf("gisdash: decode view: %w", err)
	}
	return snap.ID, nil
}

func frameSocketURL(base, viewID string) string {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return base
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += "/api/views/" + url.PathEscape(viewID) + "/frame"
	return u.String()
}

// frameSim plays the embedded map: it applies host commands to a MapFrame and reports the
// resulting active layers back.
type frameSim struct {
	frame  *gis.MapFrame
	logger *zap.Logger

	writeMu sync.Mutex
	conn    *websocket.Conn
}

func (s *frameSim) run(ctx context.Context, socketURL string, readyDelay time.Duration) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, socketURL, nil)
	if err != nil {
		return fmt.Errorf("gisdash: dial %s: %w", socketURL, err)
	}
	s.conn = conn
	defer conn.Close()
	s.logger.Info("frame connected", zap.String("url", socketURL))

	s.frame.OnChange(func(update gis.LayerStateUpdate) {
		if err := s.send(update); err != nil {
			s.logger.Warn("layer state update failed", zap.Error(err))
		}
	})

	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(readyDelay):
			if err := s.send(gis.MapReady{}); err != nil {
				s.logger.Warn("mapReady failed", zap.Error(err))
			}
		}
	}()
	go func() {
		<-ctx.Done()
		s.writeMu.Lock()
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.writeMu.Unlock()
		_ = conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("gisdash: read frame socket: %w", err)
		}
		if err := s.frame.ApplyRaw(raw); err != nil {
			s.logger.Debug("ignoring host message", zap.Error(err))
			continue
		}
		s.logger.Info("applied host message",
			zap.Int("applied", s.frame.Applied()),
			zap.Strings("visible", s.frame.VisibleIDs()),
			zap.Strings("highlighted", s.frame.HighlightedIDs()),
		)
	}
}

func (s *frameSim) send(msg gis.FrameMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn == nil {
		return errors.New("frame socket not connected")
	}
	return s.conn.WriteMessage(websocket.TextMessage, raw)
}
