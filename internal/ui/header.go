package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/shelfscan/shelfscan/internal/report"
)

// renderHeader renders the status bar: logo, catalog stats and connection state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("shelfscan", styles.Logo)}

	switch {
	case m.loading:
		parts = append(parts, bg.Render(m.spinner.View()+" Loading catalog...", styles.WarningText.Bold(true)))
	case !m.snapshot.Loaded && m.snapshot.LastError != nil:
		parts = append(parts,
			bg.Render("● "+classifyConnectionError(m.snapshot.LastError), styles.DangerText))
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case m.snapshot.Loaded:
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	}

	if m.snapshot.Loaded {
		parts = append(parts, m.renderStats(styles, bg, m.width < LayoutCompactWidth)...)
	}

	if m.refreshing {
		parts = append(parts, bg.Render(m.spinner.View()+" Refreshing", styles.InfoText.Bold(true)))
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderStats renders the catalog summary shown in the header.
func (m Model) renderStats(styles Styles, bg BgStyle, compact bool) []string {
	stat := func(label, value string) string {
		return bg.Render(label, styles.MutedText) + bg.Space() + bg.Render(value, styles.Text)
	}

	parts := []string{
		stat("Products:", humanize.Comma(int64(m.stats.Products))),
		stat("Stores:", humanize.Comma(int64(m.stats.Stores))),
	}
	if !compact {
		parts = append(parts,
			stat("Avg:", report.Price(float64(m.stats.AveragePrice))),
			stat("Lowest:", report.Price(m.stats.LowestPrice)),
		)
	}
	return parts
}

// formatTimestamp formats the last load or failure time relative to now.
func (m Model) formatTimestamp() string {
	if m.snapshot.LastUpdated.IsZero() {
		return ""
	}
	if time.Since(m.snapshot.LastUpdated) < time.Minute {
		return "updated just now"
	}
	return "updated " + humanize.Time(m.snapshot.LastUpdated)
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.currentView == ViewDetail:
		commands = []cmd{
			{"esc", "Back"},
			{"y", "Copy"},
			{"1-3", "Similar"},
			{"j/k", "Scroll"},
			{"H", "Home"},
			{"r", "Refresh"},
			{"?", "More"},
		}
	case m.currentView == ViewActivity:
		commands = []cmd{
			{"esc", "Back"},
			{"a", "Reload"},
			{"j/k", "Scroll"},
			{"r", "Refresh"},
			{"?", "More"},
		}
	case m.focus == focusSearch:
		commands = []cmd{
			{"↑/↓", "Suggestions"},
			{"enter", "Open"},
			{"esc", "Close"},
			{"ctrl+l", "Clear"},
			{"tab", "Results"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"b", "Brand"},
			{"s", "Store"},
			{"o", m.filters.Sort.Label()},
			{"[/]", "Price"},
			{"f", ternary(m.showFilters, "Hide filters", "Filters")},
			{"r", "Refresh"},
			{"a", "Activity"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderFooter shows the active toast, or the filter summary when idle.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.toast.message != "" {
		style := styles.InfoText
		switch m.toast.level {
		case toastSuccess:
			style = styles.SuccessText
		case toastError:
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).Render(bg.Render(truncate(m.toast.message, m.width-2), style))
	}

	summary := fmt.Sprintf("%d of %d shown", len(m.results), m.snapshot.Catalog.Len())
	if m.filters.Active() {
		summary += " · filters active (H resets)"
	}
	return styles.Footer.Width(m.width).Render(bg.Render(summary, styles.FaintText))
}

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

// toast is a transient, non-blocking notice.
type toast struct {
	message string
	level   toastLevel
	expires time.Time
}

func (m *Model) notify(level toastLevel, message string) {
	m.toast = toast{message: message, level: level, expires: time.Now().Add(ToastDuration)}
}
