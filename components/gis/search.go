package gis

import "strings"

// SearchKind tells what a search hit refers to.
type SearchKind string

const (
	SearchProperty SearchKind = "property"
	SearchOwner    SearchKind = "owner"
	SearchDigipin  SearchKind = "digipin"
)

// SearchResult is one quick-search hit.
type SearchResult struct {
	ID            string     `json:"id"`
	Kind          SearchKind `json:"type"`
	PrimaryText   string     `json:"primary_text"`
	SecondaryText string     `json:"secondary_text"`
	Ward          string     `json:"ward"`
	Status        string     `json:"status"`
	TaxAmount     string     `json:"tax_amount"`
}

// DefaultSearchIndex returns the quick-search fixture.
func DefaultSearchIndex() []SearchResult {
	return []SearchResult{
		{ID: "WD4-2156", Kind: SearchProperty, PrimaryText: "WD4-2156-2", SecondaryText: "Residential Building, Wagle Estate", Ward: "Ward 4", Status: "paid", TaxAmount: "₹45,600"},
		{ID: "WD2-3421", Kind: SearchProperty, PrimaryText: "WD2-3421-1", SecondaryText: "Commercial Complex, Kopri", Ward: "Ward 2", Status: "pending", TaxAmount: "₹128,400"},
		{ID: "RAJESH", Kind: SearchOwner, PrimaryText: "Rajesh Kumar Sharma", SecondaryText: "3 properties owned", Ward: "Multiple", Status: "paid", TaxAmount: "₹2,45,800"},
		{ID: "THANE2156", Kind: SearchDigipin, PrimaryText: "THANE2156", SecondaryText: "Nehru Nagar, Near City Mall", Ward: "Ward 4", Status: "paid", TaxAmount: "₹45,600"},
		{ID: "WD1-1234", Kind: SearchProperty, PrimaryText: "WD1-1234-5", SecondaryText: "Industrial Unit, Naupada", Ward: "Ward 1", Status: "overdue", TaxAmount: "₹245,000"},
	}
}

// Search matches query case-insensitively against primary and secondary text.
// A blank query returns no results.
func Search(index []SearchResult, query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []SearchResult{}
	}
	out := make([]SearchResult, 0)
	for _, r := range index {
		if strings.Contains(strings.ToLower(r.PrimaryText), q) || strings.Contains(strings.ToLower(r.SecondaryText), q) {
			out = append(out, r)
		}
	}
	return out
}
