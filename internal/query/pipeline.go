package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
)

// SuggestionLimit bounds the length of a suggestion list.
const SuggestionLimit = 8

// FilterAndSort returns the products passing every predicate of s, ordered by
// s.Sort. Equal keys keep catalog order. The input is never modified.
func FilterAndSort(products []catalogapi.Product, s State) []catalogapi.Product {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(s.Query))
	ceiling := ClampPrice(s.MaxPrice)

	out := make([]catalogapi.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !containsFolded(fold, needle, p.Name, p.Brand) {
			continue
		}
		if s.Brand != "" && s.Brand != All && p.Brand != s.Brand {
			continue
		}
		if s.Store != "" && s.Store != All && p.Store != s.Store {
			continue
		}
		if p.Price < 0 || p.Price > ceiling {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, s.Sort)
	return out
}

// Suggest returns up to SuggestionLimit products whose name, brand or store
// contains text, in catalog order. Store is matched here but not by
// FilterAndSort.
func Suggest(products []catalogapi.Product, text string) []catalogapi.Product {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}

	var out []catalogapi.Product
	for _, p := range products {
		if !containsFolded(fold, needle, p.Name, p.Brand, p.Store) {
			continue
		}
		out = append(out, p)
		if len(out) == SuggestionLimit {
			break
		}
	}
	return out
}

func containsFolded(fold cases.Caser, needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []catalogapi.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b catalogapi.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b catalogapi.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b catalogapi.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	default:
		// Collators keep internal buffers; one per sort.
		col := collate.New(language.English)
		slices.SortStableFunc(products, func(a, b catalogapi.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
}
