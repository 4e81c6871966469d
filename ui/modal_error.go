package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrorModal is a standalone program for errors that stop the main UI from
// starting, such as a missing API key.
type ErrorModal struct {
	title   string
	message string
	width   int
	height  int
}

func NewErrorModal(title, message string) ErrorModal {
	return ErrorModal{title: title, message: message}
}

func (m ErrorModal) Init() tea.Cmd {
	return nil
}

func (m ErrorModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ErrorModal) View() string {
	return renderModal(m.title, dangerColor, strings.Split(m.message, "\n"),
		"กด Enter เพื่อออก (Press Enter to quit)", m.width, m.height)
}
