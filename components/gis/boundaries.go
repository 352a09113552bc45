package gis

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
)

// WardBoundary is the outline of one ward, possibly made of several rings.
type WardBoundary struct {
	WardID string            `json:"ward_id"`
	Name   string            `json:"name"`
	Zone   ZoneID            `json:"zone,omitempty"`
	Color  string            `json:"color"`
	Rings  []Polygon         `json:"rings"`
	Bounds Bounds            `json:"bounds"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

// BoundaryFields names the DBF columns holding ward attributes.
type BoundaryFields struct {
	ID   string
	Name string
	Zone string
}

// DefaultBoundaryFields matches the municipal ward export.
var DefaultBoundaryFields = BoundaryFields{ID: "WARD_ID", Name: "NAME", Zone: "ZONE"}

// WardBoundaries converts the built-in ward rectangles.
func WardBoundaries(wards []Ward) []WardBoundary {
	out := make([]WardBoundary, 0, len(wards))
	for _, w := range wards {
		b, _ := BoundsOf(w.Boundary)
		out = append(out, WardBoundary{
			WardID: w.ID,
			Name:   w.Label(),
			Zone:   w.Zone,
			Color:  WardColor(w.ID),
			Rings:  []Polygon{append(Polygon(nil), w.Boundary...)},
			Bounds: b,
		})
	}
	return out
}

// LoadWardShapefile reads ward polygons from an ESRI shapefile. Non-polygon shapes are skipped.
// Points are stored as X=longitude, Y=latitude.
func LoadWardShapefile(path string, fields BoundaryFields) ([]WardBoundary, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gis: open shapefile %s: %w", path, err)
	}
	defer r.Close()

	columns := make(map[string]int)
	for i, f := range r.Fields() {
		name := strings.TrimSpace(strings.TrimRight(f.String(), "\x00"))
		columns[strings.ToUpper(name)] = i
	}
	attr := func(row int, column string) string {
		idx, ok := columns[strings.ToUpper(column)]
		if !ok || column == "" {
			return ""
		}
		return strings.TrimSpace(strings.TrimRight(r.ReadAttribute(row, idx), "\x00"))
	}

	var out []WardBoundary
	for r.Next() {
		row, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		rings := polygonRings(poly)
		var all []LatLng
		for _, ring := range rings {
			all = append(all, ring...)
		}
		bounds, ok := BoundsOf(all)
		if !ok {
			continue
		}
		attrs := make(map[string]string, len(columns))
		for name, idx := range columns {
			attrs[name] = strings.TrimSpace(strings.TrimRight(r.ReadAttribute(row, idx), "\x00"))
		}
		id := attr(row, fields.ID)
		if id == "" {
			id = fmt.Sprintf("ward%d", row+1)
		}
		out = append(out, WardBoundary{
			WardID: id,
			Name:   attr(row, fields.Name),
			Zone:   ZoneID(strings.ToLower(attr(row, fields.Zone))),
			Color:  WardColor(id),
			Rings:  rings,
			Bounds: bounds,
			Attrs:  attrs,
		})
	}
	return out, nil
}

func polygonRings(poly *shp.Polygon) []Polygon {
	rings := make([]Polygon, 0, len(poly.Parts))
	for i := range poly.Parts {
		start := int(poly.Parts[i])
		end := len(poly.Points)
		if i+1 < len(poly.Parts) {
			end = int(poly.Parts[i+1])
		}
		if start < 0 || start > end || end > len(poly.Points) {
			continue
		}
		ring := make(Polygon, 0, end-start)
		for _, pt := range poly.Points[start:end] {
			ring = append(ring, LatLng{Lat: pt.Y, Lng: pt.X})
		}
		rings = append(rings, ring)
	}
	return rings
}
