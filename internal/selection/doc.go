// Package selection implements the search box dropdown as a pure reducer.
//
// The dropdown is either closed or open over a suggestion list with an optional
// highlighted row:
//
//	Closed ──TextChanged (matches)──→ Open(list, -1)
//	Open ──KeyDown/KeyUp──→ Open(list, h±1)
//	Open ──KeyEscape/Blur──→ Closed
//	any ──KeyEnter/Pick*──→ Closed, Text = product name, Selected set
//
// Any change to the suggestion list resets the highlight to None, so an index is
// never read against a list it was not computed for. Callers hold the State, feed
// events through Apply and act on the returned Outcome.
package selection
