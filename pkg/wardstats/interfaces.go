package wardstats

import (
	"context"

	"github.com/goliatone/go-gis-dashboard/components/gis"
)

// Client fetches ward collection figures from a revenue system.
type Client interface {
	FetchWards(ctx context.Context) ([]gis.Ward, error)
}

var (
	_ gis.WardSource = (*MockClient)(nil)
	_ gis.WardSource = (*HTTPClient)(nil)
	_ gis.WardSource = (*FallbackSource)(nil)
)
