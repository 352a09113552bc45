package gis

import (
	"fmt"
	"strings"

	"github.com/ettle/strcase"
)

// Category classifies a map layer by the kind of property it shows.
type Category string

const (
	CategoryResidential        Category = "residential"
	CategoryHospital           Category = "hospital"
	CategoryInstitutional      Category = "institutional"
	CategoryVacant             Category = "vacant"
	CategoryPublicToilets      Category = "public_toilets"
	CategoryBuildingFootprints Category = "building_footprints"
	// CategoryOther holds context layers (roads, land use) that stay visible under any filter.
	CategoryOther Category = "other"
)

// NoFilter is the unset property-type filter.
const NoFilter Category = ""

var categories = []Category{
	CategoryResidential,
	CategoryHospital,
	CategoryInstitutional,
	CategoryVacant,
	CategoryPublicToilets,
	CategoryBuildingFootprints,
	CategoryOther,
}

// Categories lists every layer category in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryResidential, CategoryHospital, CategoryInstitutional, CategoryVacant,
		CategoryPublicToilets, CategoryBuildingFootprints, CategoryOther:
		return true
	}
	return false
}

// IsSet reports whether the filter value selects a category.
func (c Category) IsSet() bool {
	return c != NoFilter
}

// Label renders the category for humans ("public_toilets" -> "Public Toilets").
func (c Category) Label() string {
	if c == NoFilter {
		return "All"
	}
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseCategory accepts any casing ("Public Toilets", "publicToilets", "public-toilets").
// An empty string yields NoFilter.
func ParseCategory(raw string) (Category, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NoFilter, nil
	}
	c := Category(strcase.ToSnake(raw))
	if !c.Valid() {
		return NoFilter, fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}
