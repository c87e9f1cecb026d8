package library

import "strings"

// Filter selects which part of the library a query draws from: one of the
// special filters or a body-part category.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterFavorites Filter = "favorites"
	FilterCustom    Filter = "custom"

	Chest     Filter = "chest"
	Back      Filter = "back"
	Shoulders Filter = "shoulders"
	Arms      Filter = "arms"
	Legs      Filter = "legs"
	Abs       Filter = "abs"
	Cardio    Filter = "cardio"
)

// categoryKeys maps UI categories to catalog index keys.
var categoryKeys = map[Filter][]string{
	Chest:     {"chest"},
	Back:      {"back"},
	Shoulders: {"shoulders", "neck"},
	Arms:      {"lower arms", "upper arms"},
	Legs:      {"lower legs", "upper legs"},
	Abs:       {"waist"},
	Cardio:    {"cardio"},
}

// filterOrder is the chip order shown by the UI.
var filterOrder = []Filter{
	FilterAll, FilterFavorites, FilterCustom,
	Chest, Back, Shoulders, Arms, Legs, Abs, Cardio,
}

// ParseFilter normalizes user input. Blank input means FilterAll; any other
// value is kept as a category name even when it maps to no catalog keys.
func ParseFilter(s string) Filter {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return FilterAll
	}
	return Filter(trimmed)
}

// Filters returns the filters in display order.
func Filters() []Filter {
	return append([]Filter(nil), filterOrder...)
}

// Categories returns the body-part categories a custom exercise may be filed under.
func Categories() []Filter {
	return append([]Filter(nil), filterOrder[3:]...)
}

// CatalogKeys returns the catalog index keys behind a category filter.
func (f Filter) CatalogKeys() []string {
	return append([]string(nil), categoryKeys[f]...)
}

// IsCategory reports whether f names a body-part category rather than one of
// the special filters.
func (f Filter) IsCategory() bool {
	switch f {
	case FilterAll, FilterFavorites, FilterCustom:
		return false
	}
	return true
}

// Next cycles forward through the display order.
func (f Filter) Next() Filter {
	return f.step(1)
}

// Prev cycles backward through the display order.
func (f Filter) Prev() Filter {
	return f.step(-1)
}

func (f Filter) step(delta int) Filter {
	for i, candidate := range filterOrder {
		if candidate == f {
			n := len(filterOrder)
			return filterOrder[((i+delta)%n+n)%n]
		}
	}
	return FilterAll
}

// Label is the display text for a filter chip.
func (f Filter) Label() string {
	s := string(f)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
