// Package gis re-exports the dashboard core for embedding hosts.
package gis

import (
	core "github.com/goliatone/go-gis-dashboard/components/gis"
)

// Service exposes the underlying components/gis.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Session is one dashboard view bound to a map frame.
type Session = core.Session

// Snapshot is the read model of a Session.
type Snapshot = core.Snapshot

// LayerDescriptor describes one map layer.
type LayerDescriptor = core.LayerDescriptor

// Category is a property-type filter value.
type Category = core.Category

// NewService proxies to the internal constructor.
func NewService(opts Options) (*Service, error) {
	return core.NewService(opts)
}

// NewBroadcastHook proxies to the internal constructor.
func NewBroadcastHook() *core.BroadcastHook {
	return core.NewBroadcastHook()
}
