package gis

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFileName(t *testing.T) {
	now := time.Date(2025, 12, 8, 16, 9, 0, 0, time.UTC)
	assert.Equal(t, "property_tax_report_2025-12-08.csv", ExportFileName(now))
}

func TestWriteCSVQuotesValues(t *testing.T) {
	table := ExportTable{
		Title:   "Report",
		Headers: []string{"Owner", "Amount"},
		Rows:    [][]string{{"Kumar, Rajesh", "₹45,600"}, {`Say "hi"`, "1"}},
		Totals:  []string{"Total", "2"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table, CSVOptions{}))
	want := "Owner,Amount\n\"Kumar, Rajesh\",\"₹45,600\"\n\"Say \"\"hi\"\"\",1\nTotal,2\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, table, CSVOptions{IncludeTitle: true}))
	assert.True(t, strings.HasPrefix(buf.String(), "Report\nOwner,Amount\n"))
}

func TestWritePrintableReport(t *testing.T) {
	var buf bytes.Buffer
	generated := time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC)
	require.NoError(t, WritePrintableReport(&buf, DefaultTaxReport(), generated))
	html := buf.String()
	assert.Contains(t, html, "<h1>Property Tax Report</h1>")
	assert.Contains(t, html, "<td>WD2-KOP-145</td>")
	assert.Contains(t, html, "window.print()")
	assert.Contains(t, html, "Generated 02 Jan 2025 15:04")
}

func TestChartCacheExpires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewChartCache(time.Minute, clock)
	renders := 0
	render := func() (string, error) {
		renders++
		return "<div/>", nil
	}

	for i := 0; i < 3; i++ {
		html, err := cache.GetOrRender("k", render)
		require.NoError(t, err)
		assert.Equal(t, "<div/>", html)
	}
	assert.Equal(t, 1, renders)

	clock.Advance(2 * time.Minute)
	_, err := cache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 2, renders)
}

func TestChartCacheSkipsErrors(t *testing.T) {
	cache := NewChartCache(time.Minute, clockwork.NewFakeClock())
	boom := errors.New("boom")
	_, err := cache.GetOrRender("k", func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	html, err := cache.GetOrRender("k", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", html)

	disabled := NewChartCache(0, nil)
	calls := 0
	for i := 0; i < 2; i++ {
		_, _ = disabled.GetOrRender("k", func() (string, error) { calls++; return "", nil })
	}
	assert.Equal(t, 2, calls)
}

func TestChartRendererRendersEveryChart(t *testing.T) {
	r := NewChartRenderer(DefaultAnalyticsData(), WithChartCache(nil))
	for _, name := range ChartNames() {
		html, err := r.Render(context.Background(), name, DefaultWards())
		require.NoError(t, err, name)
		assert.Contains(t, html, "echarts", name)
	}
	_, err := r.Render(context.Background(), "pie-in-the-sky", nil)
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestChartRendererUsesCache(t *testing.T) {
	cache := &countingCache{}
	r := NewChartRenderer(DefaultAnalyticsData(), WithChartCache(cache), WithChartAssetsHost("https://cdn.example.com/"))
	_, err := r.Render(context.Background(), ChartValuation, nil)
	require.NoError(t, err)
	require.Len(t, cache.keys, 1)
	assert.True(t, strings.HasPrefix(cache.keys[0], ChartValuation+":"))
}

type countingCache struct {
	keys []string
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	c.keys = append(c.keys, key)
	return render()
}
