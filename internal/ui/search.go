package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/shelfscan/shelfscan/internal/selection"
)

// handleSearchKey processes keys while the search box has focus. Printable keys
// go to the text input; navigation keys drive the suggestion dropdown.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		return m, m.dispatch(selection.KeyDown{})
	case "up":
		return m, m.dispatch(selection.KeyUp{})
	case "enter":
		return m, m.dispatch(selection.KeyEnter{})
	case "esc":
		wasOpen := m.sel.Open
		cmd := m.dispatch(selection.KeyEscape{})
		if !wasOpen {
			m.focusResults()
		}
		return m, cmd
	case "tab":
		cmd := m.dispatch(selection.Blur{})
		m.focusResults()
		return m, cmd
	case "ctrl+l":
		return m, m.dispatch(selection.Clear{})
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return m, tea.Batch(cmd, m.dispatch(selection.TextChanged{Text: after}))
	}
	return m, cmd
}

// env is the context selection transitions read from.
func (m Model) env() selection.Env {
	return selection.Env{Products: m.snapshot.Catalog.Products, Filters: m.filters}
}

// dispatch feeds ev to the selection state machine and performs its outcome:
// the search text drives the live query, a committed product opens the detail
// view and a focus request returns the cursor to the search box.
func (m *Model) dispatch(ev selection.Event) tea.Cmd {
	next, out := selection.Apply(m.sel, ev, m.env())
	m.sel = next

	if m.input.Value() != next.Text {
		m.input.SetValue(next.Text)
		m.input.CursorEnd()
	}
	if m.filters.Query != next.Text {
		m.filters.Query = next.Text
		m.recompute()
		m.cursor, m.offset = 0, 0
	}

	var cmd tea.Cmd
	if out.Focus {
		cmd = m.focusSearch()
	}
	if out.Selected != nil {
		m.openDetail(*out.Selected)
	}
	return cmd
}

func (m *Model) focusSearch() tea.Cmd {
	m.currentView = ViewBrowse
	m.focus = focusSearch
	return m.input.Focus()
}

func (m *Model) focusResults() {
	m.focus = focusResults
	m.input.Blur()
}

// dropdownWidth is the width shared by the search line and the dropdown.
func (m Model) dropdownWidth() int {
	return max(min(m.width, DropdownWidth), 20)
}

// renderSearch renders the search line.
func (m Model) renderSearch() string {
	focused := m.focus == focusSearch
	bgColor := ternary(focused, m.theme.FocusBg, m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	label := bg.Render(" Search ", styles.AccentText.Bold(focused))

	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.FaintText

	line := label + bg.Render("›", styles.FaintText) + bg.Space() + m.input.View()
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Width(m.dropdownWidth()).
		Render(line)
}

// renderDropdown renders the open suggestion list, one product per row.
func (m Model) renderDropdown() []string {
	if !m.sel.Open {
		return nil
	}
	width := m.dropdownWidth()
	styles := m.theme.Styles()

	lines := make([]string, 0, len(m.sel.Suggestions))
	for i, p := range m.sel.Suggestions {
		highlighted := i == m.sel.Highlighted
		bgColor := ternary(highlighted, m.theme.SelectionBg, m.theme.SurfaceAlt)
		bg := NewBgStyle(bgColor)

		nameStyle := styles.Text
		metaStyle := styles.MutedText
		if highlighted {
			nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText)).Bold(true)
			metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		}

		meta := p.Brand + " · " + p.Store
		nameWidth := max(width-ansi.StringWidth(meta)-4, 8)
		line := bg.Space() + bg.Render(truncate(p.Name, nameWidth), nameStyle) +
			bg.Spaces(2) + bg.Render(meta, metaStyle)
		lines = append(lines, bg.FillLine(line, width))
	}
	return lines
}
