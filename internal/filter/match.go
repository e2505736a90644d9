package filter

import (
	"greenplace-be/internal/product"
	"slices"
	"strings"
)

// MatchText is a case-insensitive substring match on the model, or on the
// info of other items. Empty text matches everything. The text is used as
// typed, so surrounding spaces take part in the match.
func MatchText(p product.Product, text string) bool {
	needle := strings.ToLower(text)
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Model), needle) {
		return true
	}
	if info, ok := p.Info(); ok {
		return strings.Contains(strings.ToLower(info), needle)
	}
	return false
}

func MatchCategory(p product.Product, ids []int) bool {
	return len(ids) == 0 || slices.Contains(ids, p.CategoryID)
}

// MatchCondition excludes products without a condition whenever ids is non-empty.
func MatchCondition(p product.Product, ids []int) bool {
	if len(ids) == 0 {
		return true
	}
	condition, ok := p.ConditionID()
	return ok && slices.Contains(ids, condition)
}

func MatchType(p product.Product, types []product.Type) bool {
	return len(types) == 0 || slices.Contains(types, p.Type)
}

// Matches ANDs every clause of the criteria.
func (c Criteria) Matches(p product.Product) bool {
	return MatchText(p, c.SearchText) &&
		MatchCategory(p, c.CategoryIDs) &&
		MatchCondition(p, c.ConditionIDs) &&
		MatchType(p, c.Types)
}
