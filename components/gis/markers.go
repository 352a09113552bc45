package gis

import "strings"

var (
	wardColors = map[string]string{
		"ward1": "#3B82F6",
		"ward2": "#8B5CF6",
		"ward3": "#10B981",
		"ward4": "#F59E0B",
		"ward5": "#EF4444",
		"ward6": "#14B8A6",
	}
	propertyTypeColors = map[PropertyType]string{
		PropertyResidential:   "#3B82F6",
		PropertyCommercial:    "#8B5CF6",
		PropertyIndustrial:    "#F97316",
		PropertyInstitutional: "#14B8A6",
		PropertyVacant:        "#84CC16",
	}
	taxStatusColors = map[TaxStatus]string{
		TaxPaid:      "#10B981",
		TaxPartial:   "#F59E0B",
		TaxOverdue1:  "#EF4444",
		TaxOverdue3:  "#DC2626",
		TaxStatusAll: "#6B7280",
	}
	taxStatusLabels = map[TaxStatus]string{
		TaxPaid:     "✓",
		TaxPartial:  "◐",
		TaxOverdue1: "!",
		TaxOverdue3: "!!",
	}
)

const fallbackMarkerColor = "#6B7280"

// MarkerView is the part of the UI state that drives marker styling.
type MarkerView struct {
	StatusView       bool
	TypeFilterActive bool
}

// MarkerStyle is the color and glyph of a marker.
type MarkerStyle struct {
	Color string `json:"color"`
	Label string `json:"label"`
	// Basis names the attribute the style came from: status, type or ward.
	Basis string `json:"basis"`
}

// StyleFor picks the marker style. Tax status wins over property type, which wins over ward.
func StyleFor(p PropertyRecord, view MarkerView) MarkerStyle {
	switch {
	case view.StatusView:
		label, ok := taxStatusLabels[p.Status]
		if !ok {
			label = "?"
		}
		return MarkerStyle{Color: colorOr(taxStatusColors[p.Status]), Label: label, Basis: "status"}
	case view.TypeFilterActive:
		label := "?"
		if p.Type != "" {
			label = strings.ToUpper(string(p.Type[0]))
		}
		return MarkerStyle{Color: colorOr(propertyTypeColors[p.Type]), Label: label, Basis: "type"}
	default:
		return MarkerStyle{Color: colorOr(wardColors[p.Ward]), Label: WardShortLabel(p.Ward), Basis: "ward"}
	}
}

func colorOr(c string) string {
	if c == "" {
		return fallbackMarkerColor
	}
	return c
}

// Viewport tells the map where to look after the marker set changes.
type Viewport struct {
	Bounds  *Bounds `json:"bounds,omitempty"`
	Center  LatLng  `json:"center"`
	Zoom    int     `json:"zoom,omitempty"`
	Padding int     `json:"padding,omitempty"`
	MaxZoom int     `json:"max_zoom,omitempty"`
	Animate bool    `json:"animate"`
}

var (
	// DefaultViewport is used when no marker can be framed.
	DefaultViewport = Viewport{Center: LatLng{Lat: 20.705, Lng: 77.015}, Zoom: 14, Animate: true}
	// MapCenter is the initial center of the marker map.
	MapCenter = LatLng{Lat: 19.2150, Lng: 72.9850}
)

const (
	fitPadding = 80
	fitMaxZoom = 16
)

// FitViewport frames the records, or falls back to DefaultViewport for an empty or unplottable set.
func FitViewport(records []PropertyRecord) Viewport {
	points := make([]LatLng, 0, len(records))
	for _, r := range records {
		points = append(points, r.Coords)
	}
	b, ok := BoundsOf(points)
	if !ok {
		return DefaultViewport
	}
	return Viewport{Bounds: &b, Center: b.Center(), Padding: fitPadding, MaxZoom: fitMaxZoom, Animate: true}
}

// Marker is a rendered property marker.
type Marker struct {
	Property PropertyRecord `json:"property"`
	Style    MarkerStyle    `json:"style"`
}

// MarkerLayer is the full marker map output for a query.
type MarkerLayer struct {
	Query    PropertyQuery `json:"query"`
	Markers  []Marker      `json:"markers"`
	Viewport Viewport      `json:"viewport"`
	Total    int           `json:"total"`
	Filters  int           `json:"active_filters"`
}

// RenderMarkers filters the properties and styles one marker per match. Markers with unplottable
// coordinates are still returned; they only drop out of the viewport fit.
func RenderMarkers(all []PropertyRecord, q PropertyQuery) MarkerLayer {
	if q.Status == "" {
		q.Status = TaxStatusAll
	}
	filtered := FilterProperties(all, q.Wards, q.Types, q.Status)
	view := MarkerView{StatusView: q.StatusView(), TypeFilterActive: len(q.Types) > 0}
	markers := make([]Marker, 0, len(filtered))
	for _, p := range filtered {
		markers = append(markers, Marker{Property: p, Style: StyleFor(p, view)})
	}
	return MarkerLayer{
		Query:    q,
		Markers:  markers,
		Viewport: FitViewport(filtered),
		Total:    len(all),
		Filters:  q.ActiveFilterCount(),
	}
}

// WardColor returns the ward's marker color.
func WardColor(ward string) string { return colorOr(wardColors[ward]) }
