package queries

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gis-dashboard/components/gis"
)

type propertyService interface {
	Properties(q gis.PropertyQuery) gis.MarkerLayer
}

// PropertiesInput carries raw filter values as they arrive from a transport.
type PropertiesInput struct {
	Wards        []string `json:"wards"`
	Types        []string `json:"types"`
	Status       string   `json:"status"`
	PaymentLayer bool     `json:"payment_layer"`
	// ToggleWard and ToggleType flip one value in the selection before filtering,
	// mirroring a click on a ward or type checkbox.
	ToggleWard string `json:"toggle_ward,omitempty"`
	ToggleType string `json:"toggle_type,omitempty"`
}

// PropertiesQuery filters the property set and renders its markers.
type PropertiesQuery struct {
	service propertyService
}

// NewPropertiesQuery builds the query.
func NewPropertiesQuery(service propertyService) *PropertiesQuery {
	return &PropertiesQuery{service: service}
}

var _ gocommand.Querier[PropertiesInput, gis.MarkerLayer] = (*PropertiesQuery)(nil)

// Query validates the filter values and renders the marker layer.
func (q *PropertiesQuery) Query(_ context.Context, input PropertiesInput) (gis.MarkerLayer, error) {
	query := gis.PropertyQuery{Wards: splitValues(input.Wards), PaymentLayer: input.PaymentLayer}
	for _, raw := range splitValues(input.Types) {
		typ, err := gis.ParsePropertyType(raw)
		if err != nil {
			return gis.MarkerLayer{}, err
		}
		query.Types = append(query.Types, typ)
	}
	if ward := strings.TrimSpace(input.ToggleWard); ward != "" {
		query.Wards = gis.ToggleSelection(query.Wards, ward)
	}
	if raw := strings.TrimSpace(input.ToggleType); raw != "" {
		typ, err := gis.ParsePropertyType(raw)
		if err != nil {
			return gis.MarkerLayer{}, err
		}
		query.Types = gis.ToggleSelection(query.Types, typ)
	}
	status, err := gis.ParseTaxStatusFilter(input.Status)
	if err != nil {
		return gis.MarkerLayer{}, err
	}
	query.Status = status
	return q.service.Properties(query), nil
}

// splitValues accepts both repeated values and comma separated lists.
func splitValues(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

type searchService interface {
	Search(query string) []gis.SearchResult
}

// SearchInput is a free-text lookup.
type SearchInput struct {
	Text string `json:"q"`
}

// SearchQuery looks up properties, owners and wards.
type SearchQuery struct {
	service searchService
}

// NewSearchQuery builds the query.
func NewSearchQuery(service searchService) *SearchQuery {
	return &SearchQuery{service: service}
}

var _ gocommand.Querier[SearchInput, []gis.SearchResult] = (*SearchQuery)(nil)

func (q *SearchQuery) Query(_ context.Context, input SearchInput) ([]gis.SearchResult, error) {
	return q.service.Search(input.Text), nil
}
