package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shelfscan/shelfscan/internal/query"
	"github.com/shelfscan/shelfscan/internal/report"
	"github.com/shelfscan/shelfscan/internal/selection"
)

// handleFilterKey applies the filter surface keys. The bool reports whether the
// key was consumed.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.BrandNext):
		m.filters.Brand = query.Cycle(m.options.Brands, m.filters.Brand, 1)
	case key.Matches(msg, m.keys.BrandPrev):
		m.filters.Brand = query.Cycle(m.options.Brands, m.filters.Brand, -1)
	case key.Matches(msg, m.keys.StoreNext):
		m.filters.Store = query.Cycle(m.options.Stores, m.filters.Store, 1)
	case key.Matches(msg, m.keys.StorePrev):
		m.filters.Store = query.Cycle(m.options.Stores, m.filters.Store, -1)
	case key.Matches(msg, m.keys.CycleSort):
		m.filters.Sort = m.filters.Sort.Next()
		m.savePrefs()
	case key.Matches(msg, m.keys.PriceDown):
		m.filters = m.filters.AdjustMaxPrice(-query.PriceStep)
	case key.Matches(msg, m.keys.PriceUp):
		m.filters = m.filters.AdjustMaxPrice(query.PriceStep)
	case key.Matches(msg, m.keys.ShowFilters):
		m.showFilters = !m.showFilters
		m.clampCursor()
		return nil, true
	default:
		return nil, false
	}

	m.recompute()
	m.cursor, m.offset = 0, 0
	return nil, true
}

// home resets the query to its defaults, clears the search box and returns to
// the browse view. The sort key is a preference and survives.
func (m *Model) home() tea.Cmd {
	sort := m.filters.Sort
	m.filters = query.DefaultState()
	m.filters.Sort = sort

	m.product = nil
	m.similar = nil
	cmd := m.dispatch(selection.Clear{})

	m.recompute()
	m.cursor, m.offset = 0, 0
	return cmd
}

// renderFilterPanel renders the one-line filter summary shown with f.
func (m Model) renderFilterPanel() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	field := func(key, label, value string, active bool) string {
		valueStyle := styles.Text
		if active {
			valueStyle = styles.WarningText.Bold(true)
		}
		return bg.Render(key, styles.AccentText) + bg.Space() +
			bg.Render(label+":", styles.MutedText) + bg.Space() +
			bg.Render(value, valueStyle)
	}

	price := query.ClampPrice(m.filters.MaxPrice)
	parts := []string{
		field("b", "Brand", m.filters.Brand, m.filters.Brand != query.All),
		field("s", "Store", m.filters.Store, m.filters.Store != query.All),
		field("[ ]", "Max price", report.Price(price), price < query.PriceCeiling),
		field("o", "Sort", m.filters.Sort.Label(), false),
	}
	return bg.FillLine(bg.Space()+bg.Join(parts, "   "), m.width)
}
