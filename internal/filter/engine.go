package filter

import (
	"greenplace-be/internal/category"
	"greenplace-be/internal/product"
	"sort"
)

type FacetKind string

const (
	FacetCategory  FacetKind = "category"
	FacetCondition FacetKind = "condition"
	FacetSearch    FacetKind = "search"
	FacetSort      FacetKind = "sort"
)

// Facet is one active-filter label shown above the results.
type Facet struct {
	Kind  FacetKind `json:"kind"`
	ID    int       `json:"id,omitempty"`
	Label string    `json:"label"`
}

// Lookups resolve category and condition ids to display names.
type Lookups struct {
	Categories []category.Category
	Conditions []category.Condition
}

type Result struct {
	Products  []product.Product `json:"products"`
	Facets    []Facet           `json:"facets"`
	Count     int               `json:"count"`
	NoResults bool              `json:"noResults"`
}

func SortLabel(key SortKey) string {
	switch key {
	case SortPriceAsc:
		return "cheapest first"
	case SortPriceDesc:
		return "priciest first"
	default:
		return ""
	}
}

// Apply filters and orders products. The input slice is left untouched and
// SortNone keeps the incoming order.
func Apply(products []product.Product, c Criteria, lookups Lookups) Result {
	view := make([]product.Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			view = append(view, p)
		}
	}

	switch c.Sort {
	case SortPriceAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].PriceUSD.LessThan(view[j].PriceUSD)
		})
	case SortPriceDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].PriceUSD.GreaterThan(view[j].PriceUSD)
		})
	case SortNone:
	}

	return Result{
		Products:  view,
		Facets:    Facets(c, lookups),
		Count:     len(view),
		NoResults: len(view) == 0,
	}
}

// Facets labels the active criteria. Ids missing from the lookups are skipped.
func Facets(c Criteria, lookups Lookups) []Facet {
	facets := []Facet{}

	categories := make(map[int]string, len(lookups.Categories))
	for _, cat := range lookups.Categories {
		categories[cat.ID] = cat.Name
	}
	for _, id := range c.CategoryIDs {
		if name, ok := categories[id]; ok {
			facets = append(facets, Facet{Kind: FacetCategory, ID: id, Label: name})
		}
	}

	conditions := make(map[int]string, len(lookups.Conditions))
	for _, cond := range lookups.Conditions {
		conditions[cond.ID] = cond.Name
	}
	for _, id := range c.ConditionIDs {
		if name, ok := conditions[id]; ok {
			facets = append(facets, Facet{Kind: FacetCondition, ID: id, Label: name})
		}
	}

	if c.SearchText != "" {
		facets = append(facets, Facet{Kind: FacetSearch, Label: c.SearchText})
	}

	if label := SortLabel(c.Sort); label != "" {
		facets = append(facets, Facet{Kind: FacetSort, Label: label})
	}

	return facets
}
