package wardstats

import (
	"context"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	"go.uber.org/zap"
)

// FallbackSource serves the primary source and switches to the fallback when it fails.
type FallbackSource struct {
	primary  gis.WardSource
	fallback gis.WardSource
	logger   *zap.Logger
}

// NewFallbackSource wraps primary. A nil fallback uses the bundled fixtures.
func NewFallbackSource(primary, fallback gis.WardSource, logger *zap.Logger) *FallbackSource {
	if fallback == nil {
		fallback = NewMockClient(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackSource{primary: primary, fallback: fallback, logger: logger}
}

// FetchWards implements gis.WardSource.
func (s *FallbackSource) FetchWards(ctx context.Context) ([]gis.Ward, error) {
	if s.primary != nil {
		wards, err := s.primary.FetchWards(ctx)
		if err == nil {
			return wards, nil
		}
		s.logger.Warn("ward stats unavailable, serving fallback", zap.Error(err))
	}
	return s.fallback.FetchWards(ctx)
}
