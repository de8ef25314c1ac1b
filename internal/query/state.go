package query

import (
	"fmt"
	"slices"
	"strings"
)

// All is the sentinel brand/store value that disables the filter.
const All = "All"

// Price ceiling bounds for the max price control.
const (
	PriceCeiling = 2000
	PriceStep    = 50
)

// SortKey selects the result ordering.
type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

var sortKeys = []SortKey{SortName, SortPriceLow, SortPriceHigh, SortRating}

// SortKeys returns the selectable sort keys in display order.
func SortKeys() []SortKey {
	return slices.Clone(sortKeys)
}

// ParseSortKey validates s. An empty string yields SortName.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortName, nil
	}
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (want one of name, price-low, price-high, rating)", s)
}

// Next returns the sort key after k, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(sortKeys, k)
	return sortKeys[(i+1)%len(sortKeys)]
}

// Label is the human readable name of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortPriceLow:
		return "Price: Low to High"
	case SortPriceHigh:
		return "Price: High to Low"
	case SortRating:
		return "Highest Rated"
	default:
		return "Name"
	}
}

// State is the set of user controlled query parameters.
type State struct {
	Query    string
	Brand    string
	Store    string
	MaxPrice float64
	Sort     SortKey
}

// DefaultState returns the query state shown at startup and after a home reset.
func DefaultState() State {
	return State{
		Brand:    All,
		Store:    All,
		MaxPrice: PriceCeiling,
		Sort:     SortName,
	}
}

// ClampPrice bounds v to [0, PriceCeiling].
func ClampPrice(v float64) float64 {
	return min(max(v, 0), PriceCeiling)
}

// AdjustMaxPrice moves the price ceiling by delta, staying within bounds.
func (s State) AdjustMaxPrice(delta float64) State {
	s.MaxPrice = ClampPrice(s.MaxPrice + delta)
	return s
}

// Active reports whether any filter narrows the catalog.
func (s State) Active() bool {
	return strings.TrimSpace(s.Query) != "" ||
		(s.Brand != "" && s.Brand != All) ||
		(s.Store != "" && s.Store != All) ||
		ClampPrice(s.MaxPrice) < PriceCeiling
}
