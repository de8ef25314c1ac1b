package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/query"
	"github.com/shelfscan/shelfscan/internal/report"
	"github.com/shelfscan/shelfscan/internal/selection"
)

// openDetail shows p in the detail view.
func (m *Model) openDetail(p catalogapi.Product) {
	m.product = &p
	m.similar = query.Similar(m.snapshot.Catalog.Products, p, SimilarLimit)
	m.currentView = ViewDetail
	m.focusResults()
	m.updateDetailViewport()
	m.detailViewport.GotoTop()
}

// handleDetailKey processes keys in the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewBrowse
		m.product = nil
		m.similar = nil
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		return m, m.focusSearch()
	case key.Matches(msg, m.keys.Copy):
		if m.product == nil {
			return m, nil
		}
		return m, copyCmd(m.copyText, clipboardText(*m.product))
	case key.Matches(msg, m.keys.Similar):
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(m.similar) {
			return m, m.dispatch(selection.PickProduct{Product: m.similar[idx]})
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// updateDetailViewport sizes the viewport and re-renders the product.
func (m *Model) updateDetailViewport() {
	width := max(m.width-4, 10)
	height := max(m.contentHeight()-2, 1)
	if m.detailViewport.Width == 0 {
		m.detailViewport = viewport.New(width, height)
	}
	m.detailViewport.Width = width
	m.detailViewport.Height = height
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	if m.product == nil {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(*m.product, width, m.theme.FocusBg))
}

// renderDetail renders the detail view box.
func (m Model) renderDetail() string {
	title := "Product"
	if m.product != nil {
		title = m.product.Name
	}
	return m.renderTitledBox(title, m.detailViewport.View(), m.width, m.contentHeight(), true)
}

// renderDetailContent renders the product fields, description and similar products.
func (m Model) renderDetailContent(p catalogapi.Product, width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var lines []string
	row := func(label, value string, style lipgloss.Style) {
		if strings.TrimSpace(value) == "" {
			return
		}
		lines = append(lines, bg.Render(padRight(label, 14), styles.MutedText)+bg.Render(value, style))
	}

	name := bg.Render(p.Name, styles.Text.Bold(true))
	if p.InStock() {
		name += bg.Spaces(2) + styles.BadgeStyle(p.Availability).Render("In Stock")
	}
	lines = append(lines, name, "")

	row("Brand", p.Brand, styles.Text)
	row("Store", p.Store, styles.Text)
	row("Category", p.Category, styles.Text)
	row("Price", report.Price(p.Price), styles.AccentText.Bold(true))
	row("Rating", stars(p.Rating)+" "+formatRating(p.Rating), styles.WarningText)
	row("Availability", p.Availability, availabilityStyle(p, styles))
	if ts := p.ScrapedAt(); !ts.IsZero() {
		row("Scraped", humanize.Time(ts), styles.FaintText)
	}
	row("Link", p.Link, styles.InfoText)
	row("Image", p.Image, styles.FaintText)

	if desc := strings.TrimSpace(p.Description); desc != "" {
		lines = append(lines, "", bg.Render("Description", styles.AccentText.Bold(true)))
		wrapped := lipgloss.NewStyle().Width(max(width-2, 10)).Render(desc)
		for _, l := range strings.Split(wrapped, "\n") {
			lines = append(lines, bg.Render(strings.TrimRight(l, " "), styles.Text))
		}
	}

	lines = append(lines, "", bg.Render("Similar products", styles.AccentText.Bold(true)))
	if len(m.similar) == 0 {
		lines = append(lines, bg.Render("None in the current catalog", styles.FaintText))
	}
	for i, s := range m.similar {
		meta := fmt.Sprintf("%s · %s · %s", s.Brand, s.Store, report.Price(s.Price))
		lines = append(lines,
			bg.Render(fmt.Sprintf("%d", i+1), styles.WarningText.Bold(true))+bg.Spaces(2)+
				bg.Render(truncate(s.Name, max(width/2, 12)), styles.Text)+bg.Spaces(2)+
				bg.Render(meta, styles.MutedText))
	}

	return strings.Join(lines, "\n")
}

func availabilityStyle(p catalogapi.Product, styles Styles) lipgloss.Style {
	if p.InStock() {
		return styles.SuccessText
	}
	return styles.DangerText
}

// clipboardText is what y copies: the product name, followed by its link.
func clipboardText(p catalogapi.Product) string {
	if p.Link == "" {
		return p.Name
	}
	return p.Name + " " + p.Link
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}
