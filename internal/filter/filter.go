// Package filter narrows an already loaded catalog without going back to the
// store. It is pure and synchronous, cheap enough to run on every keystroke.
package filter

import (
	"strings"

	"pharmacare/internal/domain"
)

// AllCategories is the category selection that disables category filtering.
const AllCategories = "all"

// Drugs keeps the drugs matching query and categorySlug, in their original
// order.
//
// A non-empty query must appear, case-insensitively, in the name, description
// or composition. A categorySlug other than AllCategories is resolved through
// categories; a slug that resolves to nothing leaves the list unfiltered.
func Drugs(drugs []domain.Drug, categories []domain.Category, query, categorySlug string) []domain.Drug {
	needle := strings.ToLower(query)

	categoryID, byCategory := 0, false
	if categorySlug != AllCategories {
		categoryID, byCategory = resolveSlug(categories, categorySlug)
	}

	result := make([]domain.Drug, 0, len(drugs))
	for _, drug := range drugs {
		if needle != "" && !matchesQuery(drug, needle) {
			continue
		}
		if byCategory && drug.CategoryID != categoryID {
			continue
		}
		result = append(result, drug)
	}
	return result
}

func matchesQuery(drug domain.Drug, needle string) bool {
	return strings.Contains(strings.ToLower(drug.Name), needle) ||
		strings.Contains(strings.ToLower(drug.Description), needle) ||
		strings.Contains(strings.ToLower(drug.Composition), needle)
}

func resolveSlug(categories []domain.Category, slug string) (int, bool) {
	for _, c := range categories {
		if c.Slug == slug {
			return c.ID, true
		}
	}
	return 0, false
}
