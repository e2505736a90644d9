package filter

import (
	"greenplace-be/internal/product"
	"net/url"
	"strconv"
	"strings"
)

type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// Query parameter names shared with the storefront navigation.
const (
	ParamSearch     = "search"
	ParamCategories = "categories"
	ParamConditions = "conditions"
	ParamTypes      = "types"
	ParamSort       = "sort"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc, true
	case SortPriceDesc:
		return SortPriceDesc, true
	default:
		return SortNone, false
	}
}

// Criteria is the browse page state. Empty sets do not constrain.
type Criteria struct {
	SearchText   string         `json:"searchText"`
	CategoryIDs  []int          `json:"categoryIds"`
	ConditionIDs []int          `json:"conditionIds"`
	Types        []product.Type `json:"types"`
	Sort         SortKey        `json:"sort"`
}

// ParseQuery reads criteria from query parameters. Tokens that are not valid
// ids, types or sort keys are dropped.
func ParseQuery(values url.Values) Criteria {
	c := Criteria{
		SearchText:   values.Get(ParamSearch),
		CategoryIDs:  parseIDs(values[ParamCategories]),
		ConditionIDs: parseIDs(values[ParamConditions]),
		Types:        parseTypes(values[ParamTypes]),
	}

	if key, ok := ParseSortKey(values.Get(ParamSort)); ok {
		c.Sort = key
	}

	return c
}

// Values encodes the criteria back into query parameters, omitting empty ones.
func (c Criteria) Values() url.Values {
	v := url.Values{}

	if c.SearchText != "" {
		v.Set(ParamSearch, c.SearchText)
	}
	if len(c.CategoryIDs) > 0 {
		v.Set(ParamCategories, joinInts(c.CategoryIDs))
	}
	if len(c.ConditionIDs) > 0 {
		v.Set(ParamConditions, joinInts(c.ConditionIDs))
	}
	if len(c.Types) > 0 {
		types := make([]string, 0, len(c.Types))
		for _, t := range c.Types {
			types = append(types, string(t))
		}
		v.Set(ParamTypes, strings.Join(types, ","))
	}
	if c.Sort != SortNone {
		v.Set(ParamSort, string(c.Sort))
	}

	return v
}

// Clear drops every filter and the sort.
func (c Criteria) Clear() Criteria {
	return Criteria{}
}

func (c Criteria) IsEmpty() bool {
	return c.ActiveCount() == 0
}

// ActiveCount is the number of criteria dimensions in use. The storefront
// offers "clear filters" from two on.
func (c Criteria) ActiveCount() int {
	n := 0
	for _, active := range []bool{
		c.SearchText != "",
		len(c.CategoryIDs) > 0,
		len(c.ConditionIDs) > 0,
		len(c.Types) > 0,
		c.Sort != SortNone,
	} {
		if active {
			n++
		}
	}
	return n
}

func splitTokens(raw []string) []string {
	tokens := []string{}
	for _, value := range raw {
		for _, token := range strings.Split(value, ",") {
			token = strings.TrimSpace(token)
			if token != "" {
				tokens = append(tokens, token)
			}
		}
	}
	return tokens
}

func parseIDs(raw []string) []int {
	ids := []int{}
	seen := map[int]bool{}

	for _, token := range splitTokens(raw) {
		id, err := strconv.Atoi(token)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids
}

func parseTypes(raw []string) []product.Type {
	types := []product.Type{}
	seen := map[product.Type]bool{}

	for _, token := range splitTokens(raw) {
		t, ok := product.ParseType(token)
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}

	return types
}

func joinInts(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
