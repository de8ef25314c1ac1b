package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shelfscan/shelfscan/internal/selection"
)

// handleMouse maps pointer events onto the browse view: a click on a suggestion
// or a result selects it, a click on the search line focuses it and any other
// click closes the dropdown.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	switch m.currentView {
	case ViewDetail:
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd
	case ViewActivity:
		var cmd tea.Cmd
		m.activityViewport, cmd = m.activityViewport.Update(msg)
		return m, cmd
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if msg.Y == rowSearch && msg.X < m.dropdownWidth() {
		return m, m.focusSearch()
	}

	if m.sel.Open {
		l := m.layout()
		if msg.Y >= rowDropdown && msg.Y < rowDropdown+l.dropdownRows && msg.X < m.dropdownWidth() {
			return m, m.dispatch(selection.PickSuggestion{Index: msg.Y - rowDropdown})
		}
	}

	// Resolve the row before the dropdown closes and the list moves up.
	idx, onResult := m.resultAt(msg.Y)

	cmd := m.dispatch(selection.Blur{})
	m.focusResults()
	if onResult {
		m.cursor = idx
		m.clampCursor()
		return m, m.dispatch(selection.PickProduct{Product: m.results[idx]})
	}
	return m, cmd
}
