package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Focus      key.Binding
	Escape     key.Binding

	// Search box
	ClearQuery key.Binding
	Blur       key.Binding
	Confirm    key.Binding

	// Results
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Filters
	BrandNext   key.Binding
	BrandPrev   key.Binding
	StoreNext   key.Binding
	StorePrev   key.Binding
	CycleSort   key.Binding
	PriceDown   key.Binding
	PriceUp     key.Binding
	ShowFilters key.Binding
	Home        key.Binding

	// Actions
	Refresh  key.Binding
	Activity key.Binding
	Copy     key.Binding
	Similar  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Focus: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Focus search"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Back"),
		),

		ClearQuery: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Clear search"),
		),
		Blur: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Move to results"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open product"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Page down"),
		),

		BrandNext: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b/B", "Cycle brand"),
		),
		BrandPrev: key.NewBinding(
			key.WithKeys("B"),
		),
		StoreNext: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s/S", "Cycle store"),
		),
		StorePrev: key.NewBinding(
			key.WithKeys("S"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Cycle sort"),
		),
		PriceDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[/]", "Max price -/+ 50"),
		),
		PriceUp: key.NewBinding(
			key.WithKeys("]"),
		),
		ShowFilters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle filter panel"),
		),
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Reset search and filters"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Re-scrape and reload"),
		),
		Activity: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Activity log"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy name and link"),
		),
		Similar: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "Open similar product"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.ClearQuery, k.Blur, k.Confirm, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.BrandNext, k.StoreNext, k.CycleSort, k.PriceDown, k.ShowFilters, k.Home},
		{k.Copy, k.Similar},
		{k.Refresh, k.Activity, k.CycleTheme, k.Help, k.Quit},
	}
}
