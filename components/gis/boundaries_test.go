package gis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWardBoundariesFromRectangles(t *testing.T) {
	out := WardBoundaries(DefaultWards())
	require.Len(t, out, 6)
	first := out[0]
	assert.Equal(t, "ward1", first.WardID)
	assert.Equal(t, "Ward 1 - Naupada", first.Name)
	assert.Equal(t, "#3B82F6", first.Color)
	require.Len(t, first.Rings, 1)
	assert.Len(t, first.Rings[0], 5)
	assert.Equal(t, LatLng{19.2125, 72.9750}, first.Bounds.SouthWest)
	assert.Equal(t, LatLng{19.2230, 72.9875}, first.Bounds.NorthEast)
}

func TestLoadWardShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wards.shp")
	writeWardShapefile(t, path)

	out, err := LoadWardShapefile(path, DefaultBoundaryFields)
	require.NoError(t, err)
	require.Len(t, out, 1)
	ward := out[0]
	assert.Equal(t, "ward3", ward.WardID)
	assert.Equal(t, "Vartak Nagar", ward.Name)
	assert.Equal(t, ZoneCentral, ward.Zone)
	require.Len(t, ward.Rings, 1)
	assert.Equal(t, LatLng{Lat: 19.2000, Lng: 72.9750}, ward.Rings[0][0])
	assert.Equal(t, LatLng{Lat: 19.2000, Lng: 72.9750}, ward.Bounds.SouthWest)
	assert.Equal(t, LatLng{Lat: 19.2125, Lng: 72.9875}, ward.Bounds.NorthEast)
	assert.Equal(t, "ward3", ward.Attrs["WARD_ID"])
}

func TestLoadWardShapefileMissing(t *testing.T) {
	_, err := LoadWardShapefile(filepath.Join(t.TempDir(), "nope.shp"), DefaultBoundaryFields)
	require.Error(t, err)
}

func writeWardShapefile(t *testing.T, path string) {
	t.Helper()
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("WARD_ID", 10),
		shp.StringField("NAME", 40),
		shp.StringField("ZONE", 10),
	}))
	ring := []shp.Point{
		{X: 72.9750, Y: 19.2000},
		{X: 72.9750, Y: 19.2125},
		{X: 72.9875, Y: 19.2125},
		{X: 72.9875, Y: 19.2000},
		{X: 72.9750, Y: 19.2000},
	}
	poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
	row := w.Write(&poly)
	require.NoError(t, w.WriteAttribute(int(row), 0, "ward3"))
	require.NoError(t, w.WriteAttribute(int(row), 1, "Vartak Nagar"))
	require.NoError(t, w.WriteAttribute(int(row), 2, "CENTRAL"))
	w.Close()

	// go-shp v0.1.1 names the attribute file "<base>dbf"; the reader expects "<base>.dbf"
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if _, err := os.Stat(base + "dbf"); err == nil {
		require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	}
	_, err = os.Stat(base + ".dbf")
	require.NoError(t, err)
}
