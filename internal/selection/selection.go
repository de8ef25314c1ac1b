package selection

import (
	"strings"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/query"
)

// None is the Highlighted value when no suggestion is highlighted.
const None = -1

// State is the search box text plus the dropdown it drives.
type State struct {
	Text        string
	Suggestions []catalogapi.Product
	Highlighted int
	Open        bool
}

// Closed returns a closed state holding text.
func Closed(text string) State {
	return State{Text: text, Highlighted: None}
}

// Valid reports whether s satisfies the dropdown invariants: an open dropdown
// has suggestions and the highlight is None or indexes a suggestion.
func (s State) Valid() bool {
	if s.Open && len(s.Suggestions) == 0 {
		return false
	}
	if !s.Open && s.Highlighted != None {
		return false
	}
	return s.Highlighted >= None && s.Highlighted < len(s.Suggestions)
}

// HighlightedProduct returns the highlighted suggestion, if any.
func (s State) HighlightedProduct() (catalogapi.Product, bool) {
	if !s.Open || s.Highlighted < 0 || s.Highlighted >= len(s.Suggestions) {
		return catalogapi.Product{}, false
	}
	return s.Suggestions[s.Highlighted], true
}

// Env is the read-only context a transition may consult.
type Env struct {
	Products []catalogapi.Product
	// Filters supplies brand, store, max price and sort for the Enter fallback.
	// Its Query is replaced by the search text.
	Filters query.State
}

// Outcome reports side effects the caller should perform.
type Outcome struct {
	Selected *catalogapi.Product
	Focus    bool
}

// Event is an input to Apply.
type Event interface {
	event()
}

type (
	// TextChanged is emitted when the search text is edited.
	TextChanged struct{ Text string }
	// CatalogReplaced is emitted after a new catalog version is installed.
	CatalogReplaced struct{}
	KeyDown         struct{}
	KeyUp           struct{}
	KeyEnter        struct{}
	KeyEscape       struct{}
	// Blur is a pointer or focus event outside the search region.
	Blur struct{}
	// Clear empties the search text and returns focus to it.
	Clear struct{}
	// PickSuggestion is a click on a dropdown row.
	PickSuggestion struct{ Index int }
	// PickProduct is a click on a result row.
	PickProduct struct{ Product catalogapi.Product }
)

func (TextChanged) event()     {}
func (CatalogReplaced) event() {}
func (KeyDown) event()         {}
func (KeyUp) event()           {}
func (KeyEnter) event()        {}
func (KeyEscape) event()       {}
func (Blur) event()            {}
func (Clear) event()           {}
func (PickSuggestion) event()  {}
func (PickProduct) event()     {}

// Apply returns the state after ev. It never modifies s.
func Apply(s State, ev Event, env Env) (State, Outcome) {
	switch ev := ev.(type) {
	case TextChanged:
		return open(ev.Text, env.Products), Outcome{}

	case CatalogReplaced:
		if !s.Open {
			return s, Outcome{}
		}
		return open(s.Text, env.Products), Outcome{}

	case KeyDown:
		if !s.Open {
			return s, Outcome{}
		}
		s.Highlighted = min(s.Highlighted+1, len(s.Suggestions)-1)
		return s, Outcome{}

	case KeyUp:
		if !s.Open {
			return s, Outcome{}
		}
		s.Highlighted = max(s.Highlighted-1, None)
		return s, Outcome{}

	case KeyEnter:
		if p, ok := s.HighlightedProduct(); ok {
			return commit(p)
		}
		if strings.TrimSpace(s.Text) == "" {
			return s, Outcome{}
		}
		filters := env.Filters
		filters.Query = s.Text
		results := query.FilterAndSort(env.Products, filters)
		if len(results) == 0 {
			return s, Outcome{}
		}
		return commit(results[0])

	case KeyEscape, Blur:
		return Closed(s.Text), Outcome{}

	case Clear:
		return Closed(""), Outcome{Focus: true}

	case PickSuggestion:
		if !s.Open || ev.Index < 0 || ev.Index >= len(s.Suggestions) {
			return s, Outcome{}
		}
		return commit(s.Suggestions[ev.Index])

	case PickProduct:
		return commit(ev.Product)
	}
	return s, Outcome{}
}

func open(text string, products []catalogapi.Product) State {
	suggestions := query.Suggest(products, text)
	if len(suggestions) == 0 {
		return Closed(text)
	}
	return State{Text: text, Suggestions: suggestions, Highlighted: None, Open: true}
}

func commit(p catalogapi.Product) (State, Outcome) {
	return Closed(p.Name), Outcome{Selected: &p}
}
