package gis

import (
	"fmt"
	"strconv"
)

// AssetStats is the KPI tuple derived from the active layers.
type AssetStats struct {
	Assets  int64 `json:"assets" yaml:"assets"`
	Movable int64 `json:"movable" yaml:"movable"`
	Fixed   int64 `json:"fixed" yaml:"fixed"`
	Value   int64 `json:"value" yaml:"value"`
}

func (s AssetStats) add(o AssetStats) AssetStats {
	return AssetStats{
		Assets:  s.Assets + o.Assets,
		Movable: s.Movable + o.Movable,
		Fixed:   s.Fixed + o.Fixed,
		Value:   s.Value + o.Value,
	}
}

var (
	// BaselineStats is shown while the frame reports no active layers.
	BaselineStats = AssetStats{Assets: 1800, Movable: 240, Fixed: 320, Value: 45_000_000}
	// DefaultLayerWeight stands in for active layers without a weight record.
	DefaultLayerWeight = AssetStats{Assets: 45, Movable: 20, Fixed: 25, Value: 1_200_000}
)

// LayerWeights maps layer ids to their contribution to the KPIs.
type LayerWeights map[string]AssetStats

// Aggregate sums the weights of the active layers. An empty list yields BaselineStats and unknown
// ids contribute DefaultLayerWeight.
func Aggregate(activeLayerIDs []string, weights LayerWeights) AssetStats {
	if len(activeLayerIDs) == 0 {
		return BaselineStats
	}
	var total AssetStats
	for _, id := range activeLayerIDs {
		w, ok := weights[id]
		if !ok {
			w = DefaultLayerWeight
		}
		total = total.add(w)
	}
	return total
}

// KPICard is one tile of the stats strip.
type KPICard struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Value    string   `json:"value"`
	Raw      int64    `json:"raw"`
	Progress *float64 `json:"progress,omitempty"`
}

// KPICards renders the four stat tiles.
func KPICards(stats AssetStats) []KPICard {
	var movableShare float64
	if stats.Assets > 0 {
		movableShare = float64(stats.Movable) / float64(stats.Assets) * 100
	}
	return []KPICard{
		{Key: "assets", Label: "Total Assets", Value: FormatIndian(stats.Assets), Raw: stats.Assets},
		{Key: "movable", Label: "Movable Assets", Value: FormatIndian(stats.Movable), Raw: stats.Movable, Progress: &movableShare},
		{Key: "fixed", Label: "Fixed Assets", Value: FormatIndian(stats.Fixed), Raw: stats.Fixed},
		{Key: "value", Label: "Asset Values", Value: FormatRupees(stats.Value), Raw: stats.Value},
	}
}

// FormatIndian groups digits the Indian way: 45000000 -> "4,50,00,000".
func FormatIndian(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return sign + digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var out []byte
	for i, r := range []byte(head) {
		if i > 0 && (len(head)-i)%2 == 0 {
			out = append(out, ',')
		}
		out = append(out, r)
	}
	return sign + string(out) + "," + tail
}

// FormatRupees prefixes FormatIndian with the rupee sign.
func FormatRupees(n int64) string {
	return "₹" + FormatIndian(n)
}

const croreDivisor = 10_000_000

// FormatCrores renders an amount in crores: 125000000 -> "₹12.50Cr".
func FormatCrores(amount float64) string {
	return fmt.Sprintf("₹%.2fCr", amount/croreDivisor)
}

// CollectionBadge buckets a collection percentage for display.
func CollectionBadge(percentage float64) string {
	switch {
	case percentage >= 95:
		return "excellent"
	case percentage >= 90:
		return "good"
	case percentage >= 85:
		return "fair"
	default:
		return "low"
	}
}
