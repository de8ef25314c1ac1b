package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shelfscan/shelfscan/internal/activity"
)

// openActivity switches to the activity view and reloads the log tail.
func (m *Model) openActivity() tea.Cmd {
	m.currentView = ViewActivity
	m.focusResults()
	m.updateActivityViewport()
	return loadActivityCmd(m.logPath)
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		entries, err := activity.Load(path, ActivityLineLimit)
		return activityMsg{entries: entries, err: err}
	}
}

// handleActivityKey processes keys in the activity view.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewBrowse
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.activityViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activityViewport.GotoBottom()
		return m, nil
	}

	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}

	var cmd tea.Cmd
	m.activityViewport, cmd = m.activityViewport.Update(msg)
	return m, cmd
}

func (m *Model) updateActivityViewport() {
	width := max(m.width-4, 10)
	height := max(m.contentHeight()-2, 1)
	if m.activityViewport.Width == 0 {
		m.activityViewport = viewport.New(width, height)
	}
	m.activityViewport.Width = width
	m.activityViewport.Height = height
	m.activityViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.activityViewport.SetContent(m.renderActivityContent(width))
}

// renderActivity renders the activity view box.
func (m Model) renderActivity() string {
	title := "Activity"
	if m.logPath != "" {
		title += " · " + m.logPath
	}
	return m.renderTitledBox(title, m.activityViewport.View(), m.width, m.contentHeight(), true)
}

// renderActivityContent renders log entries, newest last. Refresh runs are
// tagged with a short run id so the lines of one run can be followed.
func (m Model) renderActivityContent(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if m.activityErr != nil {
		return bg.Render("Could not read log: "+m.activityErr.Error(), styles.DangerText)
	}
	if len(m.activity) == 0 {
		return bg.Render("No activity yet", styles.FaintText)
	}

	lines := make([]string, 0, len(m.activity))
	for _, e := range m.activity {
		var b strings.Builder
		if !e.Time.IsZero() {
			b.WriteString(bg.Render(e.Time.Format("15:04:05"), styles.FaintText))
			b.WriteString(bg.Spaces(2))
		}
		msgStyle := styles.Text
		if e.IsRefresh() {
			b.WriteString(bg.Render(shortRunID(e.RunID), styles.AccentText))
			b.WriteString(bg.Spaces(2))
			// Failed runs log the phase error, which starts with "refresh <phase>:".
			if strings.HasPrefix(e.Message, "refresh ") {
				msgStyle = styles.DangerText
			}
		}
		b.WriteString(bg.Render(truncate(e.Message, max(width-20, 10)), msgStyle))
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// shortRunID keeps the first uuid group.
func shortRunID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return truncate(id, 8)
}
