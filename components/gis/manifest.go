package gis

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestVersion is the current layer manifest format version.
const ManifestVersion = "1"

// LayerManifestDocument describes a map export's layers in YAML.
type LayerManifestDocument struct {
	Version   string          `json:"version" yaml:"version"`
	Name      string          `json:"name,omitempty" yaml:"name,omitempty"`
	MapFolder string          `json:"map_folder,omitempty" yaml:"map_folder,omitempty"`
	AlwaysOn  []string        `json:"always_on,omitempty" yaml:"always_on,omitempty"`
	Layers    []ManifestLayer `json:"layers" yaml:"layers"`
	Source    string          `json:"-" yaml:"-"`
}

// ManifestLayer is a layer entry with its optional KPI weight.
type ManifestLayer struct {
	LayerDescriptor `yaml:",inline"`
	Weight          *AssetStats `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// UnmarshalYAML accepts any casing of a category name.
func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DefaultManifest describes the bundled export.
func DefaultManifest() *LayerManifestDocument {
	weights := DefaultLayerWeights()
	doc := &LayerManifestDocument{
		Version:   ManifestVersion,
		Name:      "municipal-layers",
		MapFolder: DefaultMapFolder,
	}
	for _, layer := range DefaultLayers() {
		entry := ManifestLayer{LayerDescriptor: layer}
		if w, ok := weights[layer.ID]; ok {
			w := w
			entry.Weight = &w
		}
		doc.Layers = append(doc.Layers, entry)
	}
	return doc
}

// ReadManifest loads a manifest file.
func ReadManifest(path string) (*LayerManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("gis: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("gis: %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest parses a manifest strictly; unknown keys are rejected.
func DecodeManifest(r io.Reader) (*LayerManifestDocument, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc LayerManifestDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode manifest: empty document")
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = ManifestVersion
	}
	if doc.Version != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %q", doc.Version)
	}
	return &doc, nil
}

// Registry builds the layer registry the manifest describes.
func (d *LayerManifestDocument) Registry() (*LayerRegistry, error) {
	layers := make([]LayerDescriptor, 0, len(d.Layers))
	for _, entry := range d.Layers {
		layers = append(layers, entry.LayerDescriptor)
	}
	return NewLayerRegistry(layers)
}

// Weights returns the default weights overlaid with the manifest's own.
func (d *LayerManifestDocument) Weights() LayerWeights {
	weights := DefaultLayerWeights()
	for _, entry := range d.Layers {
		if entry.Weight != nil {
			weights[entry.ID] = *entry.Weight
		}
	}
	return weights
}

// Upsert adds or replaces a layer entry by id. It reports whether an entry was replaced.
func (d *LayerManifestDocument) Upsert(entry ManifestLayer) bool {
	for i := range d.Layers {
		if d.Layers[i].ID == entry.ID {
			d.Layers[i] = entry
			return true
		}
	}
	d.Layers = append(d.Layers, entry)
	return false
}

// WriteManifest encodes the document to path with two-space indentation.
func WriteManifest(path string, doc *LayerManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("gis: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("gis: create manifest %s: %w", path, err)
	}
	defer f.Close()
	return EncodeManifest(f, doc)
}

// EncodeManifest writes the document as YAML.
func EncodeManifest(w io.Writer, doc *LayerManifestDocument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("gis: encode manifest: %w", err)
	}
	return enc.Close()
}
