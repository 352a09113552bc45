package gis

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layers", "manifest.yaml")
	doc := DefaultManifest()
	doc.AlwaysOn = []string{"layer_ROAD_2"}
	require.NoError(t, WriteManifest(path, doc))

	loaded, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.Source)
	assert.Equal(t, []string{"layer_ROAD_2"}, loaded.AlwaysOn)

	reg, err := loaded.Registry()
	require.NoError(t, err)
	assert.Equal(t, DefaultRegistry().All(), reg.All())
	assert.Equal(t, DefaultLayerWeights(), loaded.Weights())
}

func TestDecodeManifestAcceptsCategoryCasing(t *testing.T) {
	src := `
layers:
  - id: wells
    name: Wells
    color: "#00f"
    category: Public Toilets
    weight: {assets: 3, movable: 1, fixed: 2, value: 10}
`
	doc, err := DecodeManifest(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, doc.Version)
	require.Len(t, doc.Layers, 1)
	assert.Equal(t, CategoryPublicToilets, doc.Layers[0].Category)
	assert.Equal(t, AssetStats{Assets: 3, Movable: 1, Fixed: 2, Value: 10}, doc.Weights()["wells"])
}

func TestDecodeManifestRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"empty":    "",
		"unknown":  "layers: []\nextra: 1\n",
		"version":  "version: \"2\"\nlayers: []\n",
		"category": "layers:\n  - id: x\n    category: castle\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeManifest(strings.NewReader(src))
			require.Error(t, err)
		})
	}
}

func TestManifestUpsert(t *testing.T) {
	doc := &LayerManifestDocument{Version: ManifestVersion}
	entry := ManifestLayer{LayerDescriptor: LayerDescriptor{ID: "a", Name: "A", Category: CategoryOther}}
	assert.False(t, doc.Upsert(entry))
	entry.Name = "A2"
	assert.True(t, doc.Upsert(entry))
	require.Len(t, doc.Layers, 1)
	assert.Equal(t, "A2", doc.Layers[0].Name)

	var buf bytes.Buffer
	require.NoError(t, EncodeManifest(&buf, doc))
	assert.Contains(t, buf.String(), "category: other")
}
