package gis

import "strings"

// ResolveLocalizedValue picks the best match for locale from values. Keys match case-insensitively and
// a language-region locale ("mr-IN") falls back to its base language ("mr") and then to "default".
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	return fallback
}

// categoryLabels carries the Marathi labels shown in the layer panel.
var categoryLabels = map[Category]map[string]string{
	CategoryResidential:        {"mr": "निवासी"},
	CategoryHospital:           {"mr": "रुग्णालय"},
	CategoryInstitutional:      {"mr": "संस्थात्मक"},
	CategoryVacant:             {"mr": "मोकळी जागा"},
	CategoryPublicToilets:      {"mr": "सार्वजनिक शौचालय"},
	CategoryBuildingFootprints: {"mr": "इमारत ठसे"},
	CategoryOther:              {"mr": "इतर"},
}

// LabelForLocale returns the category label in the requested locale.
func (c Category) LabelForLocale(locale string) string {
	return ResolveLocalizedValue(categoryLabels[c], locale, c.Label())
}

func normalizeLocaleMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		key = normalizeLocale(key)
		if key == "" || value == "" {
			continue
		}
		normalized[key] = value
	}
	return normalized
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func normalizeLocale(locale string) string {
	return strings.TrimSpace(strings.ToLower(locale))
}
