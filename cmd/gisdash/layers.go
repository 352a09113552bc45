package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/ettle/strcase"
	"github.com/goliatone/go-gis-dashboard/components/gis"
)

type layersListCmd struct {
	Manifest string `type:"path" help:"Manifest to list (defaults to the configured one)."`
	Locale   string `default:"en" help:"Locale for layer and category names."`
}

func (cmd *layersListCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if cmd.Manifest != "" {
		cfg.Map.Manifest = cmd.Manifest
	}
	doc, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	return printLayers(os.Stdout, doc, cmd.Locale)
}

func printLayers(w io.Writer, doc *gis.LayerManifestDocument, locale string) error {
	alwaysOn := make(map[string]bool, len(doc.AlwaysOn))
	for _, id := range doc.AlwaysOn {
		alwaysOn[id] = true
	}
	weights := doc.Weights()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tNAME\tASSETS\tALWAYS ON")
	for _, layer := range doc.Layers {
		weight, ok := weights[layer.ID]
		if !ok {
			weight = gis.DefaultLayerWeight
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n",
			layer.ID,
			layer.Category.LabelForLocale(locale),
			layer.NameForLocale(locale),
			gis.FormatIndian(weight.Assets),
			alwaysOn[layer.ID],
		)
	}
	return tw.Flush()
}

type layersAddCmd struct {
	Name         string            `required:"" help:"Layer name as exported by the map."`
	ID           string            `help:"Layer id (defaults to a snake_case id derived from the name)."`
	Category     string            `required:"" help:"Property-type category (residential, hospital, ...)."`
	Color        string            `default:"#6B7280" help:"Legend color."`
	Localized    map[string]string `help:"Localized names as locale=name."`
	Assets       int64             `help:"KPI weight: total assets."`
	Movable      int64             `help:"KPI weight: movable assets."`
	Fixed        int64             `help:"KPI weight: fixed assets."`
	Value        int64             `help:"KPI weight: asset value in rupees."`
	AlwaysOn     bool              `name:"always-on" help:"Keep the layer visible regardless of filters."`
	ManifestPath string            `required:"" name:"manifest" type:"path" help:"Manifest YAML file to update."`
	Overwrite    bool              `help:"Replace an existing entry with the same id."`
}

func (cmd *layersAddCmd) Run(_ context.Context) error {
	entry, err := cmd.entry()
	if err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("gisdash: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	replaced, err := addLayer(doc, entry, cmd.AlwaysOn, cmd.Overwrite)
	if err != nil {
		return err
	}
	if err := gis.WriteManifest(manifestPath, doc); err != nil {
		return err
	}
	verb := "Added"
	if replaced {
		verb = "Replaced"
	}
	fmt.Fprintf(os.Stdout, "✓ %s %s in %s\n", verb, entry.ID, manifestPath)
	return nil
}

func (cmd *layersAddCmd) entry() (gis.ManifestLayer, error) {
	category, err := gis.ParseCategory(cmd.Category)
	if err != nil {
		return gis.ManifestLayer{}, err
	}
	if !category.IsSet() {
		return gis.ManifestLayer{}, fmt.Errorf("gisdash: --category is required")
	}
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		id = deriveLayerID(cmd.Name)
	}
	if id == "" {
		return gis.ManifestLayer{}, fmt.Errorf("gisdash: cannot derive a layer id from %q, pass --id", cmd.Name)
	}
	entry := gis.ManifestLayer{
		LayerDescriptor: gis.LayerDescriptor{
			ID:            id,
			Name:          cmd.Name,
			NameLocalized: cmd.Localized,
			Color:         cmd.Color,
			Category:      category,
		},
	}
	if cmd.Assets != 0 || cmd.Movable != 0 || cmd.Fixed != 0 || cmd.Value != 0 {
		entry.Weight = &gis.AssetStats{Assets: cmd.Assets, Movable: cmd.Movable, Fixed: cmd.Fixed, Value: cmd.Value}
	}
	return entry, nil
}

// addLayer upserts entry and checks the result still forms a valid registry.
func addLayer(doc *gis.LayerManifestDocument, entry gis.ManifestLayer, alwaysOn, overwrite bool) (bool, error) {
	if !overwrite {
		for _, layer := range doc.Layers {
			if layer.ID == entry.ID {
				return false, fmt.Errorf("gisdash: manifest already defines layer %s (use --overwrite to replace)", entry.ID)
			}
		}
	}
	replaced := doc.Upsert(entry)
	if alwaysOn && !containsString(doc.AlwaysOn, entry.ID) {
		doc.AlwaysOn = append(doc.AlwaysOn, entry.ID)
	}
	if _, err := doc.Registry(); err != nil {
		return false, err
	}
	return replaced, nil
}

func loadOrInitManifest(path string) (*gis.LayerManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &gis.LayerManifestDocument{
				Version: gis.ManifestVersion,
				Layers:  []gis.ManifestLayer{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("gisdash: stat manifest: %w", err)
	}
	return gis.ReadManifest(path)
}

// deriveLayerID turns an export layer name into a snake_case id.
func deriveLayerID(name string) string {
	replacer := strings.NewReplacer(".", " ", "/", " ", "-", " ")
	return strcase.ToSnake(strings.TrimSpace(replacer.Replace(name)))
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
