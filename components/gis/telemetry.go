package gis

import (
	"context"
	"maps"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

func normalizeLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// ZapTelemetry writes telemetry events as structured zap entries.
type ZapTelemetry struct {
	logger *zap.Logger
}

// NewZapTelemetry adapts a zap logger to the Telemetry hook.
func NewZapTelemetry(logger *zap.Logger) *ZapTelemetry {
	return &ZapTelemetry{logger: normalizeLogger(logger).Named("telemetry")}
}

// Record logs the event with its payload keys in sorted order.
func (t *ZapTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, payload[k]))
	}
	t.logger.Info(event, fields...)
}

// TelemetryFanout forwards every event to each sink.
type TelemetryFanout []Telemetry

func (f TelemetryFanout) Record(ctx context.Context, event string, payload map[string]any) {
	for _, sink := range f {
		if sink != nil {
			sink.Record(ctx, event, payload)
		}
	}
}

// TelemetryCounter tallies events by name.
type TelemetryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewTelemetryCounter creates an empty counter.
func NewTelemetryCounter() *TelemetryCounter {
	return &TelemetryCounter{counts: make(map[string]int64)}
}

func (c *TelemetryCounter) Record(_ context.Context, event string, _ map[string]any) {
	c.mu.Lock()
	c.counts[event]++
	c.mu.Unlock()
}

// Counts returns a copy of the tallies.
func (c *TelemetryCounter) Counts() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.counts)
}
