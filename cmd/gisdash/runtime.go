package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	"github.com/goliatone/go-gis-dashboard/pkg/config"
	"github.com/goliatone/go-gis-dashboard/pkg/wardstats"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Logging.Level = g.LogLevel
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("gisdash: log level: %w", err)
		}
		zcfg.Level = level
	}
	return zcfg.Build()
}

// loadCatalog resolves the manifest named by the config, or the bundled one.
func loadCatalog(cfg *config.Config) (*gis.LayerManifestDocument, error) {
	if cfg.Map.Manifest == "" {
		return gis.DefaultManifest(), nil
	}
	return gis.ReadManifest(cfg.Map.Manifest)
}

func serviceOptions(cfg *config.Config, logger *zap.Logger) (gis.Options, error) {
	doc, err := loadCatalog(cfg)
	if err != nil {
		return gis.Options{}, err
	}
	reg, err := doc.Registry()
	if err != nil {
		return gis.Options{}, err
	}
	folder := cfg.Map.Folder
	if doc.MapFolder != "" && (folder == "" || folder == gis.DefaultMapFolder) {
		folder = doc.MapFolder
	}
	clock := clockwork.NewRealClock()

	opts := gis.Options{
		Registry:       reg,
		Weights:        doc.Weights(),
		AlwaysOn:       append(append([]string(nil), doc.AlwaysOn...), cfg.Map.AlwaysOn...),
		MapFolder:      folder,
		Clock:          clock,
		RetryDelay:     cfg.RetryDelay(),
		SettleDelay:    cfg.SettleDelay(),
		HighlightDelay: cfg.HighlightDelay(),
		Logger:         logger,
		Telemetry:      gis.NewZapTelemetry(logger),
	}

	if cfg.Map.Shapefile != "" {
		boundaries, err := gis.LoadWardShapefile(cfg.Map.Shapefile, gis.DefaultBoundaryFields)
		if err != nil {
			return gis.Options{}, err
		}
		opts.Boundaries = boundaries
	}

	if cfg.WardStats.URL != "" {
		client, err := wardstats.NewHTTPClient(wardstats.HTTPConfig{
			BaseURL:    cfg.WardStats.URL,
			APIKey:     cfg.WardStats.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.WardStatsTimeout()},
		})
		if err != nil {
			return gis.Options{}, err
		}
		opts.WardSource = wardstats.NewFallbackSource(client, nil, logger)
	} else {
		opts.WardSource = wardstats.NewMockClient(nil)
	}

	chartOpts := []gis.ChartOption{gis.WithChartCache(gis.NewChartCache(cfg.ChartCacheTTL(), clock))}
	if cfg.Charts.AssetsHost != "" {
		chartOpts = append(chartOpts, gis.WithChartAssetsHost(cfg.Charts.AssetsHost))
	}
	opts.Charts = gis.NewChartRenderer(gis.DefaultAnalyticsData(), chartOpts...)
	return opts, nil
}

func closeQuietly(ctx context.Context, svc *gis.Service) {
	if svc != nil {
		svc.Close(ctx)
	}
}
