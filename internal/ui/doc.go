// Package ui provides the shelfscan terminal interface.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. The event loop is the only writer of query
// and selection state; network work (the startup load and the refresh workflow)
// runs in tea.Cmd goroutines and reports back with messages. The catalog itself is
// read from state.Store through periodic snapshots, so a refresh becomes visible
// on the next tick after the store swaps versions.
//
// # Package Structure
//
//   - app.go: Model, Update loop, messages and Run
//   - search.go: search box and suggestion dropdown, driven by selection.Apply
//   - results.go: result list derived with query.FilterAndSort
//   - filters.go: brand/store/price/sort controls and the home reset
//   - detail.go: product detail with similar products and clipboard copy
//   - activity.go: refresh history read from the log file
//   - refresh.go: refresh workflow command and outcome toasts
//   - mouse.go: pointer hit-testing against the browse layout
//   - header.go: status header, command bar and footer toasts
//
// # Views
//
//   - Browse: search line, dropdown, optional filter panel and results
//   - Detail: one product, opened by committing a selection
//   - Activity: the tail of the log file, refresh runs tagged by run id
//
// # Key Bindings
//
// Search box: up/down move the dropdown highlight, enter opens the highlighted
// suggestion (or the first result), esc closes the dropdown, ctrl+l clears, tab
// moves to the results.
//
// Results: j/k navigate, enter opens, / returns to search, b/B and s/S cycle
// brand and store, o cycles sort, [ and ] move the price ceiling, f toggles the
// filter panel, H resets, r refreshes, a shows activity, T cycles the theme and
// q quits.
package ui
