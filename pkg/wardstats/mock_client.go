package wardstats

import (
	"context"
	"sync"

	"github.com/goliatone/go-gis-dashboard/components/gis"
)

// MockClient serves in-memory ward figures for tests or local demos.
type MockClient struct {
	mu    sync.RWMutex
	wards []gis.Ward
}

// NewMockClient builds a mock client. Nil wards fall back to the bundled fixtures.
func NewMockClient(wards []gis.Ward) *MockClient {
	if wards == nil {
		wards = gis.DefaultWards()
	}
	return &MockClient{wards: cloneWards(wards)}
}

// FetchWards returns a copy of the configured wards.
func (c *MockClient) FetchWards(context.Context) ([]gis.Ward, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneWards(c.wards), nil
}

// SetCollected updates one ward's collected amount, in crores.
func (c *MockClient) SetCollected(wardID string, collected float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.wards {
		if c.wards[i].ID == wardID {
			c.wards[i].Collected = collected
			return true
		}
	}
	return false
}

func cloneWards(wards []gis.Ward) []gis.Ward {
	out := make([]gis.Ward, len(wards))
	for i, w := range wards {
		out[i] = w
		out[i].Boundary = append(gis.Polygon(nil), w.Boundary...)
	}
	return out
}
