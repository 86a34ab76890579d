package tui

import (
	"strings"

	"dashboard-cli/internal/docs"
	"dashboard-cli/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	cardWidth  = 26
	cardHeight = 3
)

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.dashboardKeys
	n := len(m.visibleDescriptors())
	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()
	case key.Matches(msg, k.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Right):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Customize):
		m.openCustomize()
	case key.Matches(msg, k.Help):
		m.modal = modalHelp
	}
	return m, nil
}

func (m appModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}

	base := m.viewDashboard(w)
	var overlay string
	switch m.modal {
	case modalCustomize:
		overlay = m.viewCustomize()
	case modalHelp:
		overlay = m.viewHelp(w)
	}
	if overlay == "" {
		return normalizePane(base, w, h)
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, overlay)
}

func (m appModel) viewDashboard(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render("Dashboard")
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), max(0, width)))

	parts := []string{title, rule, ""}
	vis := m.visibleDescriptors()
	if len(vis) == 0 {
		parts = append(parts, styleMuted().Render("No widgets visible. Press c to customize."))
	} else {
		parts = append(parts, renderCardGrid(vis, m.cursor, width))
	}

	parts = append(parts, "")
	if m.minibuffer != "" {
		if m.flashIsError {
			parts = append(parts, styleFlashError().Render(truncateText(m.minibuffer, width-2)))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(colorChromeMutedFg).Render(truncateText(m.minibuffer, width)))
		}
	}
	parts = append(parts, m.help.View(m.dashboardKeys))
	return strings.Join(parts, "\n")
}

func renderCardGrid(vis []model.Descriptor, cursor int, width int) string {
	perRow := width / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(vis); start += perRow {
		end := min(start+perRow, len(vis))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(vis[i], i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(d model.Descriptor, selected bool) string {
	border := colorCardBorder
	if selected {
		border = colorSelectedBorder
	}
	inner := cardWidth - 2
	head := truncateText(glyphWidgetIcon(d.Icon)+" "+d.Label, inner)
	body := styleMuted().Render(truncateText(string(d.Key), inner))

	return lipgloss.NewStyle().
		Width(inner).
		Height(cardHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		MarginRight(2).
		Render(lipgloss.NewStyle().Bold(selected).Render(head) + "\n\n" + body)
}

func (m appModel) viewHelp(width int) string {
	bodyW := modalBodyWidth(width)
	md, ok := docs.Get("keys")
	if !ok {
		md = "Press `c` to customize the dashboard."
	}
	content := renderMarkdown(md, bodyW-2)
	content += "\n\n" + styleMuted().Render("press any key to close")
	return renderModalBox(width, "Help", content)
}
