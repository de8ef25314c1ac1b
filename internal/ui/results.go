package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/query"
	"github.com/shelfscan/shelfscan/internal/report"
	"github.com/shelfscan/shelfscan/internal/selection"
)

// recompute re-derives the visible results from the catalog and query state.
func (m *Model) recompute() {
	m.results = query.FilterAndSort(m.snapshot.Catalog.Products, m.filters)
	m.clampCursor()
}

// clampCursor keeps the cursor on a result and inside the visible window.
func (m *Model) clampCursor() {
	if len(m.results) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor, 0), len(m.results)-1)

	rows := m.layout().resultsRows
	if rows <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.results)-rows, 0))
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// handleResultsKey processes keys while the result list has focus.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}
	if cmd, ok := m.handleFilterKey(msg); ok {
		return m, cmd
	}

	page := max(m.layout().resultsRows, 1)

	switch {
	case key.Matches(msg, m.keys.Focus):
		return m, m.focusSearch()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.clampCursor()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.results) - 1
		m.clampCursor()
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(page)
	case key.Matches(msg, m.keys.Confirm):
		if p, ok := m.currentResult(); ok {
			return m, m.dispatch(selection.PickProduct{Product: p})
		}
	case msg.String() == "esc":
		return m, m.focusSearch()
	}
	return m, nil
}

func (m Model) currentResult() (catalogapi.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return catalogapi.Product{}, false
	}
	return m.results[m.cursor], true
}

// renderBrowse renders the search line, dropdown, filter panel and results.
func (m Model) renderBrowse() string {
	l := m.layout()
	lines := make([]string, 0, m.contentHeight())

	lines = append(lines, m.renderSearch())
	lines = append(lines, m.renderDropdown()...)
	if l.filterTop >= 0 {
		lines = append(lines, m.renderFilterPanel())
	}
	lines = append(lines, m.renderResultsTitle())
	lines = append(lines, m.renderResultRows(l.resultsRows)...)

	for len(lines) < m.contentHeight() {
		lines = append(lines, "")
	}
	return strings.Join(lines[:m.contentHeight()], "\n")
}

// renderResultsTitle renders the "Results for ..." summary line.
func (m Model) renderResultsTitle() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	title := report.Report{
		Query: m.filters,
		Total: m.snapshot.Catalog.Len(),
		Count: len(m.results),
	}

	focused := m.focus == focusResults
	titleStyle := styles.Text.Bold(true)
	if !focused {
		titleStyle = styles.MutedText
	}
	return bg.FillLine(bg.Space()+bg.Render(truncate(title.Title(), m.width-2), titleStyle), m.width)
}

// renderResultRows renders the visible window of results.
func (m Model) renderResultRows(rows int) []string {
	if rows <= 0 {
		return nil
	}
	styles := m.theme.Styles()

	if len(m.results) == 0 {
		msg := "No products found"
		if m.loading {
			msg = "Loading catalog..."
		}
		return []string{lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.MutedText.Render(msg))}
	}

	end := min(m.offset+rows, len(m.results))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		selected := i == m.cursor && m.focus == focusResults
		bgColor := ternary(selected, m.theme.SelectionBg, m.theme.SurfaceAlt)
		lines = append(lines, NewBgStyle(bgColor).FillLine(m.formatResultRow(m.results[i], m.width, bgColor, selected), m.width))
	}
	return lines
}

// badgeWidth is reserved for the availability badge so columns stay aligned.
const badgeWidth = 10

// formatResultRow formats one result: name, brand and store, then price,
// rating and the availability badge on the right.
func (m Model) formatResultRow(p catalogapi.Product, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	var nameStyle, metaStyle, priceStyle, ratingStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle = selText.Bold(true)
		metaStyle = selText
		priceStyle = selText
		ratingStyle = selText
	} else {
		nameStyle = styles.Text
		metaStyle = styles.MutedText
		priceStyle = styles.AccentText
		ratingStyle = styles.WarningText
	}

	price := padLeft(report.Price(p.Price), 14)
	rating := "★ " + formatRating(p.Rating)
	badge := ""
	if p.InStock() {
		badge = styles.BadgeStyle(p.Availability).Render("In Stock")
	}

	meta := p.Brand + " · " + p.Store
	if width >= LayoutWideWidth && p.Category != "" {
		meta += " · " + p.Category
	}

	right := bg.Render(price, priceStyle) + bg.Spaces(2) + bg.Render(rating, ratingStyle)
	rightWidth := lipgloss.Width(right) + badgeWidth + 3

	leftWidth := max(width-rightWidth-2, 10)
	nameWidth := max(leftWidth*3/5, 8)
	metaWidth := max(leftWidth-nameWidth-2, 0)

	left := bg.Space() + bg.Render(padRight(truncate(p.Name, nameWidth), nameWidth), nameStyle) +
		bg.Spaces(2) + bg.Render(padRight(truncate(meta, metaWidth), metaWidth), metaStyle)

	row := left + bg.Spaces(2) + right
	if badge != "" {
		row += bg.Space() + badge
	}
	return row
}

// resultAt maps a screen row to a result index.
func (m Model) resultAt(y int) (int, bool) {
	l := m.layout()
	row := y - l.resultsTop
	if row < 0 || row >= l.resultsRows {
		return 0, false
	}
	idx := m.offset + row
	if idx >= len(m.results) {
		return 0, false
	}
	return idx, true
}
