package gis

import (
	"math"
	"sort"
	"strings"
)

// ZoneID identifies an administrative zone.
type ZoneID string

const (
	ZoneEast    ZoneID = "east"
	ZoneWest    ZoneID = "west"
	ZoneCentral ZoneID = "central"
	ZoneNorth   ZoneID = "north"
	ZoneSouth   ZoneID = "south"
)

// Polygon is a closed ring of coordinates.
type Polygon []LatLng

// Rect builds the closed rectangle NW, NE, SE, SW, NW.
func Rect(minLat, minLng, maxLat, maxLng float64) Polygon {
	return Polygon{
		{maxLat, minLng},
		{maxLat, maxLng},
		{minLat, maxLng},
		{minLat, minLng},
		{maxLat, minLng},
	}
}

// Bounds is an axis-aligned box.
type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// Center is the midpoint of the box.
func (b Bounds) Center() LatLng {
	return LatLng{Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2, Lng: (b.SouthWest.Lng + b.NorthEast.Lng) / 2}
}

// BoundsOf returns the box around the valid points; false when there are none.
func BoundsOf(points []LatLng) (Bounds, bool) {
	var b Bounds
	found := false
	for _, p := range points {
		if !p.Valid() {
			continue
		}
		if !found {
			b = Bounds{SouthWest: p, NorthEast: p}
			found = true
			continue
		}
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
		b.SouthWest.Lng = math.Min(b.SouthWest.Lng, p.Lng)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
		b.NorthEast.Lng = math.Max(b.NorthEast.Lng, p.Lng)
	}
	return b, found
}

// Valid rejects NaN, infinite and out of range coordinates.
func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Zone is an administrative grouping of wards.
type Zone struct {
	ID       ZoneID  `json:"id"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Boundary Polygon `json:"boundary"`
}

// Ward carries the static boundary and collection figures of one ward.
type Ward struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Zone           ZoneID  `json:"zone"`
	Color          string  `json:"color"`
	Properties     int     `json:"properties"`
	Collected      float64 `json:"collected"`
	Target         float64 `json:"target"`
	AvgTax         int     `json:"avg_tax"`
	Defaulters     int     `json:"defaulters"`
	Complaints     int     `json:"complaints"`
	NewAssessments int     `json:"new_assessments"`
	Boundary       Polygon `json:"boundary"`
}

// Label renders "Ward 1 - Naupada".
func (w Ward) Label() string {
	return "Ward " + strings.TrimPrefix(w.ID, "ward") + " - " + w.Name
}

// WardShortLabel turns "ward3" into "W3".
func WardShortLabel(id string) string {
	return "W" + strings.TrimPrefix(id, "ward")
}

// WardMetrics are the derived performance figures of a ward.
type WardMetrics struct {
	WardID       string  `json:"ward_id"`
	Name         string  `json:"name"`
	Collection   float64 `json:"collection"`
	Efficiency   float64 `json:"efficiency"`
	Satisfaction float64 `json:"satisfaction"`
	Growth       float64 `json:"growth"`
	Badge        string  `json:"badge"`
	GapToTarget  float64 `json:"gap_to_target"`
}

// Metrics derives efficiency, satisfaction and growth. A ward without properties scores zero.
func (w Ward) Metrics() WardMetrics {
	m := WardMetrics{
		WardID:      w.ID,
		Name:        w.Name,
		Collection:  w.Collected,
		Badge:       CollectionBadge(w.Collected),
		GapToTarget: w.Target - w.Collected,
	}
	if w.Properties <= 0 {
		return m
	}
	props := float64(w.Properties)
	m.Efficiency = (props - float64(w.Defaulters)) / props * 100
	m.Satisfaction = 100 - float64(w.Complaints)/props*100
	m.Growth = float64(w.NewAssessments) / props * 1000
	return m
}

// WardComparison ranks wards by collection.
type WardComparison struct {
	Wards          []Ward        `json:"wards"`
	Metrics        []WardMetrics `json:"metrics"`
	TopPerformers  []string      `json:"top_performers"`
	NeedsAttention []string      `json:"needs_attention"`
}

const rankingSize = 3

// CompareWards computes metrics and the top and bottom three wards by collection.
func CompareWards(wards []Ward) WardComparison {
	out := WardComparison{
		Wards:   append([]Ward(nil), wards...),
		Metrics: make([]WardMetrics, 0, len(wards)),
	}
	for _, w := range wards {
		out.Metrics = append(out.Metrics, w.Metrics())
	}
	ranked := append([]Ward(nil), wards...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Collected > ranked[j].Collected })
	for i := 0; i < len(ranked) && i < rankingSize; i++ {
		out.TopPerformers = append(out.TopPerformers, ranked[i].ID)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Collected < ranked[j].Collected })
	for i := 0; i < len(ranked) && i < rankingSize; i++ {
		out.NeedsAttention = append(out.NeedsAttention, ranked[i].ID)
	}
	return out
}
