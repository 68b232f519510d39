// Package views derives displayed collections from master collections.
// The filter and aggregate functions are pure transforms: the master slice
// is never mutated, and re-running a derivation with the same inputs yields
// the same output. ResolveCustomers is the one exception, enriching orders
// in place.
package views

import (
	"sort"
	"strings"

	"github.com/Zeralyxx/BicutanBites-Admin/models"
)

// FilterAll bypasses an equality filter.
const FilterAll = "All"

// FilterMenu applies the category equality filter first, then the free-text
// search over name and description. Both are case-insensitive.
func FilterMenu(master []models.MenuItem, category, search string) []models.MenuItem {
	filtered := make([]models.MenuItem, 0, len(master))

	byCategory := !strings.EqualFold(category, FilterAll) && category != ""
	for _, item := range master {
		if byCategory && !strings.EqualFold(deref(item.Category), category) {
			continue
		}
		filtered = append(filtered, item)
	}

	if search == "" {
		return filtered
	}

	needle := strings.ToLower(search)
	matched := make([]models.MenuItem, 0, len(filtered))
	for _, item := range filtered {
		name := strings.ToLower(deref(item.Name))
		description := strings.ToLower(deref(item.Description))
		if strings.Contains(name, needle) || strings.Contains(description, needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// CategoryCount pairs a category with the number of menu items in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// MenuCategories lists the distinct categories of the master list with
// their item counts, sorted alphabetically for a stable chip row.
func MenuCategories(master []models.MenuItem) []CategoryCount {
	counts := map[string]int{}
	for _, item := range master {
		category := deref(item.Category)
		if category == "" {
			continue
		}
		counts[category]++
	}

	categories := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		categories = append(categories, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})
	return categories
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
