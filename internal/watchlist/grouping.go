// Package watchlist holds the pure derivation logic behind the watchlist
// view: category taxonomy, filtered grouping, and per-group collapse state.
// Nothing here performs I/O; the UI recomputes the grouping from raw API
// records on every state change.
package watchlist

import (
	"sort"
	"strings"
	"time"
)

// Keyword is a watchlist entry in the shared (global) namespace.
// An empty Category means the record is uncategorized.
type Keyword struct {
	ID        string
	Keyword   string
	Category  string
	Active    bool
	CreatedAt *time.Time
}

// PersonalKeyword is a watchlist entry private to the logged-in user.
// Personal keywords carry no category.
type PersonalKeyword struct {
	ID      string
	Keyword string
	Active  bool
}

// Group is one rendered category section with its keywords in source order.
type Group struct {
	Category string
	Keywords []Keyword
}

// Derive computes the grouped view from a raw keyword list and a filter.
// Records whose keyword does not contain the filter (case-insensitive) are
// dropped, survivors partition by category with empty mapping to Ungrouped,
// and groups order by taxonomy rank with first-seen order breaking ties.
// Within a group records keep their relative order from the source list.
func Derive(keywords []Keyword, filter string) []Group {
	filter = strings.ToLower(strings.TrimSpace(filter))

	byCategory := make(map[string][]Keyword)
	var seen []string
	for _, kw := range keywords {
		if filter != "" && !strings.Contains(strings.ToLower(kw.Keyword), filter) {
			continue
		}
		category := kw.Category
		if category == "" {
			category = Ungrouped
		}
		if _, ok := byCategory[category]; !ok {
			seen = append(seen, category)
		}
		byCategory[category] = append(byCategory[category], kw)
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return CategoryRank(seen[i]) < CategoryRank(seen[j])
	})

	groups := make([]Group, 0, len(seen))
	for _, category := range seen {
		groups = append(groups, Group{
			Category: category,
			Keywords: byCategory[category],
		})
	}
	return groups
}

// DerivePersonal filters a personal keyword list the same way Derive filters
// the global one. Personal keywords have no categories, so the result stays
// a flat list in source order.
func DerivePersonal(keywords []PersonalKeyword, filter string) []PersonalKeyword {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return keywords
	}
	filtered := make([]PersonalKeyword, 0, len(keywords))
	for _, kw := range keywords {
		if strings.Contains(strings.ToLower(kw.Keyword), filter) {
			filtered = append(filtered, kw)
		}
	}
	return filtered
}

// CollapseSet tracks which category groups are folded shut. Collapse state
// is keyed by category name, so it survives filtering changing (or
// emptying) a group's membership.
type CollapseSet map[string]struct{}

// NewCollapseSet returns an empty collapse set.
func NewCollapseSet() CollapseSet {
	return make(CollapseSet)
}

// Toggle flips the collapsed state of one category.
func (c CollapseSet) Toggle(category string) {
	if _, ok := c[category]; ok {
		delete(c, category)
		return
	}
	c[category] = struct{}{}
}

// Collapsed reports whether the category is currently folded.
func (c CollapseSet) Collapsed(category string) bool {
	_, ok := c[category]
	return ok
}
