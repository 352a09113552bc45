package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GISDASH_"

// Config holds the gisdash runtime settings.
type Config struct {
	ListenAddr string       `yaml:"listen_addr"`
	Map        MapConfig    `yaml:"map"`
	Frame      FrameConfig  `yaml:"frame"`
	Logging    LogConfig    `yaml:"logging"`
	Charts     ChartsConfig `yaml:"charts"`
	WardStats  WardStats    `yaml:"ward_stats"`
}

// MapConfig locates the map export and the layer catalog.
type MapConfig struct {
	Folder     string   `yaml:"folder"`
	ExportRoot string   `yaml:"export_root"`
	Manifest   string   `yaml:"manifest"`
	Shapefile  string   `yaml:"shapefile"`
	AlwaysOn   []string `yaml:"always_on"`
}

// FrameConfig tunes the host to frame messenger. Durations use time.ParseDuration syntax.
type FrameConfig struct {
	RetryDelay     string `yaml:"retry_delay"`
	SettleDelay    string `yaml:"settle_delay"`
	HighlightDelay string `yaml:"highlight_delay"`
}

// LogConfig selects the zap level and encoding.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ChartsConfig tunes the analytics renderer.
type ChartsConfig struct {
	AssetsHost string `yaml:"assets_host"`
	CacheTTL   string `yaml:"cache_ttl"`
}

// WardStats points at a remote revenue API. An empty URL uses the bundled figures.
type WardStats struct {
	URL     string `yaml:"url"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		Map: MapConfig{
			Folder: gis.DefaultMapFolder,
		},
		Frame: FrameConfig{
			RetryDelay:     gis.DefaultRetryDelay.String(),
			SettleDelay:    gis.DefaultSettleDelay.String(),
			HighlightDelay: gis.DefaultHighlightDelay.String(),
		},
		Logging: LogConfig{Level: "info"},
		Charts:  ChartsConfig{CacheTTL: "5m"},
		WardStats: WardStats{
			Timeout: "10s",
		},
	}
}

// Load reads path over the defaults and applies GISDASH_* overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := cfg.decode(bytes.NewReader(data)); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	str("LISTEN_ADDR", &c.ListenAddr)
	str("MAP_FOLDER", &c.Map.Folder)
	str("EXPORT_ROOT", &c.Map.ExportRoot)
	str("MANIFEST", &c.Map.Manifest)
	str("SHAPEFILE", &c.Map.Shapefile)
	str("RETRY_DELAY", &c.Frame.RetryDelay)
	str("SETTLE_DELAY", &c.Frame.SettleDelay)
	str("HIGHLIGHT_DELAY", &c.Frame.HighlightDelay)
	str("LOG_LEVEL", &c.Logging.Level)
	str("CHARTS_ASSETS_HOST", &c.Charts.AssetsHost)
	str("WARD_STATS_URL", &c.WardStats.URL)
	str("WARD_STATS_API_KEY", &c.WardStats.APIKey)
	if v, ok := lookup(EnvPrefix + "ALWAYS_ON"); ok {
		c.Map.AlwaysOn = splitList(v)
	}
}

// Validate checks durations and the log level.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"frame.retry_delay":     c.Frame.RetryDelay,
		"frame.settle_delay":    c.Frame.SettleDelay,
		"frame.highlight_delay": c.Frame.HighlightDelay,
		"charts.cache_ttl":      c.Charts.CacheTTL,
		"ward_stats.timeout":    c.WardStats.Timeout,
	} {
		if _, err := parseDuration(raw); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

// RetryDelay returns the frame retry delay.
func (c *Config) RetryDelay() time.Duration {
	return durationOr(c.Frame.RetryDelay, gis.DefaultRetryDelay)
}

// SettleDelay returns the delay between frame load and state replay.
func (c *Config) SettleDelay() time.Duration {
	return durationOr(c.Frame.SettleDelay, gis.DefaultSettleDelay)
}

// HighlightDelay returns the delay before filter highlights are sent.
func (c *Config) HighlightDelay() time.Duration {
	return durationOr(c.Frame.HighlightDelay, gis.DefaultHighlightDelay)
}

// ChartCacheTTL returns how long rendered charts stay cached.
func (c *Config) ChartCacheTTL() time.Duration {
	return durationOr(c.Charts.CacheTTL, 5*time.Minute)
}

// WardStatsTimeout returns the HTTP timeout for the ward stats client.
func (c *Config) WardStatsTimeout() time.Duration {
	return durationOr(c.WardStats.Timeout, 10*time.Second)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func parseDuration(raw string) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", raw)
	}
	return d, nil
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := parseDuration(raw)
	if err != nil || d == 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
