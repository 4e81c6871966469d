package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderHelpModal(width, height int, version string) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("EnglishHero " + version + " - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)
	row := func(keys, what string) string {
		return fmt.Sprintf("• %-13s %s", keys, what)
	}

	lessons := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Lessons"),
		row("j/k", "Move up and down"),
		row("Enter", "Open lesson"),
		row("/", "Filter topics"),
		row("1-4", "Pick a quiz answer"),
		row("Enter", "Check the answer"),
		row("d", "Mark lesson done / undo"),
		row("p", "Practice topic with AI"),
	)

	global := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global"),
		row("c / Tab", "Chat with the tutor"),
		row("h", "Conversation history"),
		row("?", "Toggle this help"),
		row("Esc", "Back"),
		row("q", "Quit"),
		row("Ctrl+C", "Quit from anywhere"),
	)

	chat := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat"),
		row("Enter", "Send message"),
		row("Alt+Enter", "New line"),
		row("Ctrl+Y", "Copy last reply"),
		row("Ctrl+N", "New conversation"),
		row("PgUp/PgDn", "Scroll"),
	)

	history := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## History"),
		row("Enter", "Open conversation"),
		row("/", "Search all conversations"),
		row("d", "Delete conversation"),
	)

	columnStyle := lipgloss.NewStyle().Width(42).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lessons, "", global)),
		"    ",
		columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, chat, "", history)),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render("Press ? or Esc to close this help")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		Width(min(100, max(40, width-4)))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
