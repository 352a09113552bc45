package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	"github.com/goliatone/go-gis-dashboard/components/gis/httpapi"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	Listen string `help:"Override the configured listen address."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if cmd.Listen != "" {
		cfg.ListenAddr = cmd.Listen
	}
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts, err := serviceOptions(cfg, logger)
	if err != nil {
		return err
	}
	counter := gis.NewTelemetryCounter()
	opts.Telemetry = gis.TelemetryFanout{opts.Telemetry, counter}
	hook := gis.NewBroadcastHook()
	opts.Hook = hook
	svc, err := gis.NewService(opts)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(svc, hook, httpapi.RouterConfig{
		ExportRoot: cfg.Map.ExportRoot,
		Logger:     logger,
		Telemetry:  opts.Telemetry,
	})
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("gisdash listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("map", svc.MapFramePath()),
			zap.Int("layers", svc.Registry().Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Closing sessions first ends the SSE streams so Shutdown can drain.
		closeQuietly(shutdownCtx, svc)
		logger.Info("gisdash shutting down", zap.Any("events", counter.Counts()))
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
