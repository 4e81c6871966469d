package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderModal draws a borderless box of three sections (title, body and
// footer) separated by rules, centered on a width x height screen. Each
// body line is centered on its own.
func renderModal(title string, accent lipgloss.Color, body []string, footer string, width, height int) string {
	if width < 20 || height < 10 {
		return "Terminal too small"
	}

	boxWidth := max(10, min(70, width-10))
	line := lipgloss.NewStyle().Width(boxWidth).Align(lipgloss.Center)
	rule := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor)

	rows := make([]string, 0, len(body)+2)
	rows = append(rows, "")
	for _, b := range body {
		rows = append(rows, line.Render(b))
	}
	rows = append(rows, "")

	content := lipgloss.JoinVertical(lipgloss.Left,
		line.Bold(true).Foreground(accent).Render(title),
		rule.Width(boxWidth).Render(strings.Join(rows, "\n")),
		rule.Inherit(line).Foreground(dimColor).Render(footer),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
