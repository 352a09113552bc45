package gis

import (
	"fmt"
	"strings"
)

// PropertyType classifies a parcel on the marker map.
type PropertyType string

const (
	PropertyResidential   PropertyType = "residential"
	PropertyCommercial    PropertyType = "commercial"
	PropertyIndustrial    PropertyType = "industrial"
	PropertyInstitutional PropertyType = "institutional"
	PropertyVacant        PropertyType = "vacant"
)

// PropertyTypes lists the property types in display order.
func PropertyTypes() []PropertyType {
	return []PropertyType{PropertyResidential, PropertyCommercial, PropertyIndustrial, PropertyInstitutional, PropertyVacant}
}

// Valid reports membership in the closed set.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyResidential, PropertyCommercial, PropertyIndustrial, PropertyInstitutional, PropertyVacant:
		return true
	}
	return false
}

// ParsePropertyType is case-insensitive.
func ParsePropertyType(raw string) (PropertyType, error) {
	t := PropertyType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPropertyType, raw)
	}
	return t, nil
}

// TaxStatus is the payment standing of a property.
type TaxStatus string

const (
	TaxPaid     TaxStatus = "paid"
	TaxPartial  TaxStatus = "partial"
	TaxOverdue1 TaxStatus = "overdue1"
	TaxOverdue3 TaxStatus = "overdue3"
	// TaxStatusAll is the filter sentinel that matches every status.
	TaxStatusAll TaxStatus = "all"
)

// TaxStatuses lists the concrete statuses.
func TaxStatuses() []TaxStatus {
	return []TaxStatus{TaxPaid, TaxPartial, TaxOverdue1, TaxOverdue3}
}

// Valid reports membership in the closed set, excluding the filter sentinel.
func (s TaxStatus) Valid() bool {
	switch s {
	case TaxPaid, TaxPartial, TaxOverdue1, TaxOverdue3:
		return true
	}
	return false
}

// ParseTaxStatusFilter accepts a status or "all". Empty means "all".
func ParseTaxStatusFilter(raw string) (TaxStatus, error) {
	s := TaxStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" || s == TaxStatusAll {
		return TaxStatusAll, nil
	}
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaxStatus, raw)
	}
	return s, nil
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PropertyRecord is one parcel of the marker map fixture.
type PropertyRecord struct {
	ID        string       `json:"id"`
	Coords    LatLng       `json:"coords"`
	Ward      string       `json:"ward"`
	Type      PropertyType `json:"property_type"`
	Status    TaxStatus    `json:"tax_status"`
	Address   string       `json:"address"`
	Owner     string       `json:"owner"`
	TaxAmount string       `json:"tax_amount"`
	Area      string       `json:"area"`
}

// PropertyQuery selects properties. Empty ward or type sets leave that dimension open.
type PropertyQuery struct {
	Wards  []string       `json:"wards"`
	Types  []PropertyType `json:"types"`
	Status TaxStatus      `json:"status"`
	// PaymentLayer reports whether the payment status layer is switched on.
	PaymentLayer bool `json:"payment_layer"`
}

// StatusView reports whether markers are colored by tax status.
func (q PropertyQuery) StatusView() bool {
	return (q.Status != "" && q.Status != TaxStatusAll) || q.PaymentLayer
}

// ActiveFilterCount counts selected wards and types plus one for a status filter.
func (q PropertyQuery) ActiveFilterCount() int {
	n := len(q.Wards) + len(q.Types)
	if q.Status != "" && q.Status != TaxStatusAll {
		n++
	}
	return n
}

// FilterProperties keeps the records matching every active dimension, preserving order.
func FilterProperties(all []PropertyRecord, wards []string, types []PropertyType, status TaxStatus) []PropertyRecord {
	wardSet := make(map[string]struct{}, len(wards))
	for _, w := range wards {
		wardSet[w] = struct{}{}
	}
	typeSet := make(map[PropertyType]struct{}, len(types))
	for _, t := range types {
		typeSet[t] = struct{}{}
	}
	out := make([]PropertyRecord, 0, len(all))
	for _, p := range all {
		if len(wardSet) > 0 {
			if _, ok := wardSet[p.Ward]; !ok {
				continue
			}
		}
		if len(typeSet) > 0 {
			if _, ok := typeSet[p.Type]; !ok {
				continue
			}
		}
		if status != "" && status != TaxStatusAll && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ToggleSelection adds value to the selection or removes it when present.
func ToggleSelection[T comparable](selection []T, value T) []T {
	out := make([]T, 0, len(selection)+1)
	found := false
	for _, v := range selection {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	return out
}
