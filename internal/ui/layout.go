package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show the category column.
	LayoutWideWidth = 130
)

// Screen rows above the result list. The search line sits directly under the
// header and command bar; the dropdown opens beneath it.
const (
	rowHeader     = 0
	rowCommandBar = 1
	rowSearch     = 2
	rowDropdown   = 3
)

// Display limits.
const (
	// ActivityLineLimit is the number of log lines read for the activity view.
	ActivityLineLimit = 500

	// SimilarLimit is the number of similar products shown in the detail view.
	SimilarLimit = 3

	// DropdownWidth is the maximum width of the suggestion dropdown.
	DropdownWidth = 72
)

// Timing constants.
const (
	// DefaultUIInterval is the default snapshot polling interval.
	DefaultUIInterval = time.Second

	// ToastDuration is how long a notice stays in the footer.
	ToastDuration = 4 * time.Second

	// LoadTimeout bounds the startup catalog load.
	LoadTimeout = 15 * time.Second
)

// screenLayout holds the vertical offsets of the browse view. Rendering and
// mouse hit-testing both derive from it.
type screenLayout struct {
	dropdownRows int // suggestion rows currently shown
	filterTop    int // -1 when the filter panel is hidden
	titleTop     int // results title line
	resultsTop   int // first result row
	resultsRows  int // visible result rows
}

func (m Model) layout() screenLayout {
	l := screenLayout{filterTop: -1}
	y := rowDropdown
	if m.sel.Open {
		l.dropdownRows = len(m.sel.Suggestions)
		y += l.dropdownRows
	}
	if m.showFilters {
		l.filterTop = y
		y++
	}
	l.titleTop = y
	l.resultsTop = y + 1
	// Footer occupies the last line.
	l.resultsRows = max(m.height-l.resultsTop-1, 0)
	return l
}
