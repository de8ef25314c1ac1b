package query

import (
	"math"
	"slices"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
)

// Options holds the selectable brand and store filter values.
type Options struct {
	Brands []string
	Stores []string
}

// OptionsFor returns All followed by the distinct brands and stores of products
// in first-seen order.
func OptionsFor(products []catalogapi.Product) Options {
	opts := Options{Brands: []string{All}, Stores: []string{All}}
	seenBrand := map[string]bool{}
	seenStore := map[string]bool{}
	for _, p := range products {
		if p.Brand != "" && !seenBrand[p.Brand] {
			seenBrand[p.Brand] = true
			opts.Brands = append(opts.Brands, p.Brand)
		}
		if p.Store != "" && !seenStore[p.Store] {
			seenStore[p.Store] = true
			opts.Stores = append(opts.Stores, p.Store)
		}
	}
	return opts
}

// Cycle returns the value delta steps away from current in values, wrapping.
// A current value missing from values (stale after a refresh) cycles from All.
func Cycle(values []string, current string, delta int) string {
	if len(values) == 0 {
		return All
	}
	i := slices.Index(values, current)
	if i < 0 {
		i = 0
	}
	n := len(values)
	return values[((i+delta)%n+n)%n]
}

// Stats summarises a catalog for the header.
type Stats struct {
	Products     int
	Stores       int
	AveragePrice int
	LowestPrice  float64
}

// ComputeStats derives header statistics. Empty input yields zero values.
func ComputeStats(products []catalogapi.Product) Stats {
	if len(products) == 0 {
		return Stats{}
	}
	stores := map[string]struct{}{}
	total := 0.0
	lowest := math.Inf(1)
	for _, p := range products {
		stores[p.Store] = struct{}{}
		total += p.Price
		lowest = min(lowest, p.Price)
	}
	return Stats{
		Products:     len(products),
		Stores:       len(stores),
		AveragePrice: int(math.Round(total / float64(len(products)))),
		LowestPrice:  lowest,
	}
}

// Similar returns up to limit other products sharing p's category or brand.
func Similar(products []catalogapi.Product, p catalogapi.Product, limit int) []catalogapi.Product {
	var out []catalogapi.Product
	for _, other := range products {
		if len(out) >= limit {
			break
		}
		if other.ID == p.ID {
			continue
		}
		if (p.Category != "" && other.Category == p.Category) || (p.Brand != "" && other.Brand == p.Brand) {
			out = append(out, other)
		}
	}
	return out
}
