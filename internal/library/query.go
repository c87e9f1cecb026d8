// Package library resolves library filters and search text against the
// catalog, the custom exercises, and the favorites set.
package library

import (
	"strings"

	"github.com/five82/lifter/internal/exercise"
)

// Catalog is the read side of the catalog index.
type Catalog interface {
	All() []exercise.Ref
	Category(key string) []exercise.Ref
}

// CustomSource lists user-authored exercises.
type CustomSource interface {
	All() []exercise.Ref
}

// FavoriteSource answers favorites membership.
type FavoriteSource interface {
	Contains(id exercise.ID) bool
}

// Sources bundles the three inputs of a query. Any of them may be nil.
type Sources struct {
	Catalog   Catalog
	Custom    CustomSource
	Favorites FavoriteSource
}

// Result is one library row.
type Result struct {
	exercise.Ref
	Favorite bool
}

// Query resolves filter, then keeps entries whose name contains text
// (case-insensitive). Order is catalog entries first, then custom ones, and
// the same entry never appears twice.
func Query(filter Filter, text string, src Sources) []Result {
	resolved := resolve(filter, src)

	needle := strings.ToLower(strings.TrimSpace(text))
	seen := make(map[string]struct{}, len(resolved))
	out := make([]Result, 0, len(resolved))
	for _, ref := range resolved {
		if needle != "" && !strings.Contains(strings.ToLower(ref.Name), needle) {
			continue
		}
		key := ref.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Result{Ref: ref, Favorite: isFavorite(src.Favorites, ref.ID)})
	}
	return out
}

func resolve(filter Filter, src Sources) []exercise.Ref {
	catalogAll := func() []exercise.Ref {
		if src.Catalog == nil {
			return nil
		}
		return src.Catalog.All()
	}
	customAll := func() []exercise.Ref {
		if src.Custom == nil {
			return nil
		}
		return markCustom(src.Custom.All())
	}

	switch filter {
	case FilterAll, "":
		return append(catalogAll(), customAll()...)
	case FilterFavorites:
		var out []exercise.Ref
		for _, ref := range append(catalogAll(), customAll()...) {
			if isFavorite(src.Favorites, ref.ID) {
				out = append(out, ref)
			}
		}
		return out
	case FilterCustom:
		return customAll()
	default:
		var out []exercise.Ref
		if src.Catalog != nil {
			for _, key := range filter.CatalogKeys() {
				out = append(out, src.Catalog.Category(key)...)
			}
		}
		for _, ref := range customAll() {
			if customMatches(ref, filter) {
				out = append(out, ref)
			}
		}
		return out
	}
}

// customMatches files a custom exercise under a category by its raw body
// part. Entries created with the generic "custom" body part carry the
// user's category in Target instead.
func customMatches(ref exercise.Ref, filter Filter) bool {
	category := string(filter)
	bodyPart := strings.ToLower(strings.TrimSpace(ref.BodyPart))
	if bodyPart == category {
		return true
	}
	return bodyPart == "custom" && strings.ToLower(strings.TrimSpace(ref.Target)) == category
}

func markCustom(refs []exercise.Ref) []exercise.Ref {
	for i := range refs {
		refs[i].IsCustom = true
	}
	return refs
}

func isFavorite(favs FavoriteSource, id exercise.ID) bool {
	return favs != nil && favs.Contains(id)
}
