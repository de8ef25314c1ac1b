// Package query derives result lists from a catalog version and the user's query
// state.
//
// Everything here is a pure function: the same products and State always give the
// same output, inputs are never modified and returned slices are fresh. Results are
// recomputed on every keystroke and after every catalog replacement rather than
// cached.
//
// FilterAndSort applies the text, brand, store and price predicates and orders the
// survivors with a stable sort, so ties keep catalog order. Text matching folds case
// with golang.org/x/text/cases and name ordering uses an English collator.
//
// Suggest feeds the search dropdown. It matches name, brand or store and never
// sorts, so the dropdown lists matches in catalog order.
package query
