package gis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Chart names served by ChartRenderer.
const (
	ChartWardCollection  = "ward-collection"
	ChartPropertyTypes   = "property-types"
	ChartCollectionTrend = "collection-trend"
	ChartDefaulterAging  = "defaulter-aging"
	ChartValuation       = "valuation"
	ChartWardComparison  = "ward-comparison"
)

// ChartNames lists every chart in panel order.
func ChartNames() []string {
	return []string{ChartWardCollection, ChartPropertyTypes, ChartCollectionTrend, ChartDefaulterAging, ChartValuation, ChartWardComparison}
}

type PropertyTypeShare struct {
	Type  string  `json:"type"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
	Color string  `json:"color"`
}

type TrendPoint struct {
	Month      string  `json:"month"`
	Collected  float64 `json:"collected"`
	Target     float64 `json:"target"`
	Defaulters int     `json:"defaulters"`
}

type AgingBucket struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Amount   float64 `json:"amount"`
}

type Valuation struct {
	Type     string `json:"type"`
	AvgValue int    `json:"avg_value"`
	MinValue int    `json:"min_value"`
	MaxValue int    `json:"max_value"`
}

// AnalyticsData holds the static datasets behind the analytics panel. Amounts are in crores.
type AnalyticsData struct {
	PropertyTypes []PropertyTypeShare `json:"property_types"`
	Trend         []TrendPoint        `json:"trend"`
	Aging         []AgingBucket       `json:"aging"`
	Valuations    []Valuation         `json:"valuations"`
}

// DefaultAnalyticsData returns the analytics fixture.
func DefaultAnalyticsData() AnalyticsData {
	return AnalyticsData{
		PropertyTypes: []PropertyTypeShare{
			{Type: "Residential", Count: 28450, Share: 62.8, Color: "#3B82F6"},
			{Type: "Commercial", Count: 12320, Share: 27.2, Color: "#8B5CF6"},
			{Type: "Industrial", Count: 3240, Share: 7.1, Color: "#F59E0B"},
			{Type: "Institutional", Count: 1850, Share: 4.1, Color: "#10B981"},
			{Type: "Vacant", Count: 2140, Share: 4.7, Color: "#6B7280"},
		},
		Trend: []TrendPoint{
			{Month: "Jul", Collected: 45.2, Target: 50, Defaulters: 1245},
			{Month: "Aug", Collected: 48.5, Target: 50, Defaulters: 1120},
			{Month: "Sep", Collected: 52.3, Target: 50, Defaulters: 985},
			{Month: "Oct", Collected: 49.8, Target: 50, Defaulters: 1050},
			{Month: "Nov", Collected: 55.6, Target: 50, Defaulters: 890},
			{Month: "Dec", Collected: 58.2, Target: 50, Defaulters: 756},
		},
		Aging: []AgingBucket{
			{Category: "0-6 months", Count: 2340, Amount: 5.6},
			{Category: "6-12 months", Count: 1820, Amount: 8.2},
			{Category: "1-2 years", Count: 1450, Amount: 12.4},
			{Category: "2-3 years", Count: 980, Amount: 15.8},
			{Category: "3+ years", Count: 1230, Amount: 28.5},
		},
		Valuations: []Valuation{
			{Type: "Residential", AvgValue: 45600, MinValue: 12000, MaxValue: 185000},
			{Type: "Commercial", AvgValue: 128400, MinValue: 35000, MaxValue: 580000},
			{Type: "Industrial", AvgValue: 245000, MinValue: 85000, MaxValue: 1250000},
			{Type: "Institutional", AvgValue: 95000, MinValue: 28000, MaxValue: 350000},
		},
	}
}

const defaultChartHeight = "360px"

// ChartRenderer renders the analytics panel charts to embeddable HTML.
type ChartRenderer struct {
	data       AnalyticsData
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartOption customizes a ChartRenderer.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache; nil disables caching.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) { r.cache = cache }
}

// WithChartTheme sets the ECharts theme.
func WithChartTheme(theme string) ChartOption {
	return func(r *ChartRenderer) { r.theme = theme }
}

// WithChartAssetsHost loads the ECharts JS from another host.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) { r.assetsHost = host }
}

// NewChartRenderer builds a renderer with a five minute cache by default.
func NewChartRenderer(data AnalyticsData, options ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{
		data:  data,
		cache: NewChartCache(5*time.Minute, nil),
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render produces the named chart. Ward-based charts use wards.
func (r *ChartRenderer) Render(_ context.Context, name string, wards []Ward) (string, error) {
	var render func() (string, error)
	var input any
	switch name {
	case ChartWardCollection:
		input, render = wards, func() (string, error) { return r.wardCollection(wards) }
	case ChartWardComparison:
		input, render = wards, func() (string, error) { return r.wardComparison(wards) }
	case ChartPropertyTypes:
		input, render = r.data.PropertyTypes, r.propertyTypes
	case ChartCollectionTrend:
		input, render = r.data.Trend, r.collectionTrend
	case ChartDefaulterAging:
		input, render = r.data.Aging, r.defaulterAging
	case ChartValuation:
		input, render = r.data.Valuations, r.valuation
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(name+":"+r.theme+":"+dataHash(input), render)
}

func (r *ChartRenderer) wardCollection(wards []Ward) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOptions("Ward-wise Collection", "Collected vs pending (%)")...)
	labels := make([]string, len(wards))
	collected := make([]opts.BarData, len(wards))
	pending := make([]opts.BarData, len(wards))
	target := make([]opts.BarData, len(wards))
	for i, w := range wards {
		labels[i] = WardShortLabel(w.ID)
		collected[i] = opts.BarData{Name: w.Name, Value: w.Collected}
		pending[i] = opts.BarData{Name: w.Name, Value: 100 - w.Collected}
		target[i] = opts.BarData{Name: w.Name, Value: w.Target}
	}
	bar.SetXAxis(labels).
		AddSeries("Collected", collected).
		AddSeries("Pending", pending).
		AddSeries("Target", target)
	return renderChart(bar)
}

func (r *ChartRenderer) wardComparison(wards []Ward) (string, error) {
	comparison := CompareWards(wards)
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOptions("Ward Performance", "Collection, efficiency, satisfaction")...)
	labels := make([]string, len(comparison.Metrics))
	collection := make([]opts.BarData, len(comparison.Metrics))
	efficiency := make([]opts.BarData, len(comparison.Metrics))
	satisfaction := make([]opts.BarData, len(comparison.Metrics))
	for i, m := range comparison.Metrics {
		labels[i] = m.Name
		collection[i] = opts.BarData{Value: m.Collection}
		efficiency[i] = opts.BarData{Value: round1(m.Efficiency)}
		satisfaction[i] = opts.BarData{Value: round1(m.Satisfaction)}
	}
	bar.SetXAxis(labels).
		AddSeries("Collection", collection).
		AddSeries("Efficiency", efficiency).
		AddSeries("Satisfaction", satisfaction)
	return renderChart(bar)
}

func (r *ChartRenderer) propertyTypes() (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalOptions("Property Type Distribution", "")...)
	data := make([]opts.PieData, len(r.data.PropertyTypes))
	for i, share := range r.data.PropertyTypes {
		data[i] = opts.PieData{Name: share.Type, Value: share.Count, ItemStyle: &opts.ItemStyle{Color: share.Color}}
	}
	pie.AddSeries("Properties", data)
	pie.SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return renderChart(pie)
}

func (r *ChartRenderer) collectionTrend() (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalOptions("Collection Trend", "₹ crores per month")...)
	months := make([]string, len(r.data.Trend))
	collected := make([]opts.LineData, len(r.data.Trend))
	target := make([]opts.LineData, len(r.data.Trend))
	for i, p := range r.data.Trend {
		months[i] = p.Month
		collected[i] = opts.LineData{Value: p.Collected}
		target[i] = opts.LineData{Value: p.Target}
	}
	line.SetXAxis(months).
		AddSeries("Collected", collected).
		AddSeries("Target", target)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *ChartRenderer) defaulterAging() (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOptions("Defaulter Aging", "Outstanding ₹ crores")...)
	labels := make([]string, len(r.data.Aging))
	amounts := make([]opts.BarData, len(r.data.Aging))
	for i, b := range r.data.Aging {
		labels[i] = b.Category
		amounts[i] = opts.BarData{Name: fmt.Sprintf("%d accounts", b.Count), Value: b.Amount}
	}
	bar.SetXAxis(labels).AddSeries("Outstanding", amounts)
	return renderChart(bar)
}

func (r *ChartRenderer) valuation() (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOptions("Property Valuation", "Average, minimum and maximum (₹)")...)
	labels := make([]string, len(r.data.Valuations))
	avg := make([]opts.BarData, len(r.data.Valuations))
	lo := make([]opts.BarData, len(r.data.Valuations))
	hi := make([]opts.BarData, len(r.data.Valuations))
	for i, v := range r.data.Valuations {
		labels[i] = v.Type
		avg[i] = opts.BarData{Value: v.AvgValue}
		lo[i] = opts.BarData{Value: v.MinValue}
		hi[i] = opts.BarData{Value: v.MaxValue}
	}
	bar.SetXAxis(labels).
		AddSeries("Average", avg).
		AddSeries("Minimum", lo).
		AddSeries("Maximum", hi)
	return renderChart(bar)
}

func (r *ChartRenderer) globalOptions(title, subtitle string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", fmt.Errorf("gis: render chart: %w", err)
	}
	return buf.String(), nil
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
