package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMinWidth = 36
	modalMaxWidth = 64
)

type modalKind int

const (
	modalNone modalKind = iota
	modalCustomize
	modalHelp
)

func modalBodyWidth(width int) int {
	w := width - 10
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < modalMinWidth {
		w = modalMinWidth
	}
	return w
}

// renderModalBox draws a titled box on the modal surface. Content lines are clipped to the
// body width.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Width(bodyW).
		Padding(0, 1).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(truncateText(title, bodyW-2))

	lines := strings.Split(content, "\n")
	for i, ln := range lines {
		lines[i] = truncateText(ln, bodyW-2)
	}
	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1, 0, 1).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}
