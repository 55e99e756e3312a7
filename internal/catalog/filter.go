package catalog

import (
	"sort"
	"strings"
)

// SortRule selects one of the four static base orderings of the catalog.
type SortRule string

const (
	SortNewToOld  SortRule = "new-to-old"
	SortOldToNew  SortRule = "old-to-new"
	SortAlphaAsc  SortRule = "alpha-asc"
	SortAlphaDesc SortRule = "alpha-desc"

	// DefaultSort mirrors the gallery's default dropdown choice.
	DefaultSort = SortAlphaAsc
)

// ParseSortRule maps a query-string value to a SortRule, falling back
// to the default for unknown or empty input. It never errors.
func ParseSortRule(s string) SortRule {
	switch SortRule(s) {
	case SortNewToOld, SortOldToNew, SortAlphaAsc, SortAlphaDesc:
		return SortRule(s)
	default:
		return DefaultSort
	}
}

// Ordered returns the catalog in the base ordering selected by rule.
// The input slice is expected in insertion ("old to new") order and is
// never mutated; reversed and alphabetical orderings are built on copies
// so repeated calls stay deterministic.
func Ordered(entries []*Entry, rule SortRule) []*Entry {
	out := make([]*Entry, len(entries))
	copy(out, entries)

	switch rule {
	case SortOldToNew:
		// insertion order as-is
	case SortNewToOld:
		reverse(out)
	case SortAlphaDesc:
		sortByTitle(out)
		reverse(out)
	default: // SortAlphaAsc
		sortByTitle(out)
	}
	return out
}

// Visible applies the filter pipeline to an already-ordered base list:
// first the case-insensitive title search, then tag selection with AND
// semantics (the entry's tag set must be a superset of selectedTags).
// Zero matches is a valid result, not an error.
func Visible(base []*Entry, selectedTags []string, search string) []*Entry {
	out := base

	if search != "" {
		needle := strings.ToLower(search)
		filtered := make([]*Entry, 0, len(out))
		for _, e := range out {
			if strings.Contains(strings.ToLower(e.Title), needle) {
				filtered = append(filtered, e)
			}
		}
		out = filtered
	}

	if len(selectedTags) == 0 {
		if len(out) == len(base) {
			// No filter touched the list; still hand back a copy so
			// callers cannot alias the base ordering.
			cp := make([]*Entry, len(out))
			copy(cp, out)
			return cp
		}
		return out
	}

	filtered := make([]*Entry, 0, len(out))
	for _, e := range out {
		if e.HasAllTags(selectedTags) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Compute is the full engine: pick the base ordering for rule, then
// filter it down to the visible set.
func Compute(entries []*Entry, selectedTags []string, search string, rule SortRule) []*Entry {
	return Visible(Ordered(entries, rule), selectedTags, search)
}

// Facets returns the union of tag identifiers carried by the visible
// entries. It feeds the filter sidebar (greying out zero-match options)
// and deliberately does not feed back into filtering.
func Facets(visible []*Entry) map[string]struct{} {
	set := make(map[string]struct{})
	for _, e := range visible {
		for _, t := range e.Tags {
			set[t] = struct{}{}
		}
	}
	return set
}

func sortByTitle(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Title) < strings.ToLower(entries[j].Title)
	})
}

func reverse(entries []*Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
