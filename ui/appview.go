package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"englishhero/curriculum"
	appmodel "englishhero/model"
	"englishhero/provider"
	"englishhero/storage"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model
	provider  appmodel.Provider

	// UI Components
	viewport       viewport.Model // chat
	lessonViewport viewport.Model
	textarea       textarea.Model
	loadingSpinner spinner.Model

	// Window state
	width  int
	height int
	ready  bool
	screen screen

	showHelp bool
	status   string
	flashes  int

	// Connectivity, from the startup ping
	pinged  bool
	pingErr error

	// Curriculum browser
	topics       []curriculum.Topic
	visible      []int // indexes into topics
	selectedIdx  int   // index into visible
	filterMode   bool
	filterInput  textinput.Model
	lessonTopic  curriculum.Topic
	quiz         *curriculum.QuizState
	lessonMarkup string // rendered lesson body, cached per width

	// History
	transcriptList        []storage.TranscriptMetadata
	selectedTranscriptIdx int
	searchMode            bool
	searchInput           textinput.Model
	searchResults         []storage.MessageMatch
	showSearchResults     bool
	confirmDelete         *storage.TranscriptMetadata
}

func NewAppView(dataModel *appmodel.Model, p appmodel.Provider) AppView {
	ta := textarea.New()
	ta.Placeholder = "พิมพ์ข้อความภาษาอังกฤษ... (Type in English...)"
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline, Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	filterInput := textinput.New()
	filterInput.Prompt = "Filter: "
	filterInput.CharLimit = 64

	searchInput := textinput.New()
	searchInput.Prompt = "Search all: "
	searchInput.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AssistantStyle

	topics := curriculum.AllTopics()

	return AppView{
		dataModel:      dataModel,
		provider:       p,
		viewport:       viewport.New(0, 0),
		lessonViewport: viewport.New(0, 0),
		textarea:       ta,
		loadingSpinner: sp,
		screen:         screenCurriculum,
		topics:         topics,
		visible:        filterTopics(topics, ""),
		filterInput:    filterInput,
		searchInput:    searchInput,
	}
}

func (a AppView) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if a.provider != nil {
		cmds = append(cmds, provider.PingProvider(a.provider))
	}
	return tea.Batch(cmds...)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading EnglishHero..."
	}

	if a.showHelp {
		return renderHelpModal(a.width, a.height, a.dataModel.Version)
	}

	var body, footer string
	switch a.screen {
	case screenLesson:
		body = a.renderLesson()
		footer = FormatFooter("1-4", "Answer", "Enter", "Check", "d", "Mark done", "p", "Practice with AI", "Esc", "Back")
	case screenChat:
		body = lipgloss.JoinVertical(lipgloss.Left, a.viewport.View(), a.textarea.View())
		footer = FormatFooter("Enter", "Send", "Alt+Enter", "New line", "Ctrl+Y", "Copy reply", "Ctrl+N", "New chat", "Esc", "Lessons")
	case screenHistory:
		body = a.renderHistory()
		if a.searchMode || a.showSearchResults {
			footer = FormatFooter("Enter", "Open", "Esc", "Back")
		} else {
			footer = FormatFooter("j/k", "Navigate", "Enter", "Open", "d", "Delete", "/", "Search", "Esc", "Back")
		}
	default:
		body = a.renderCurriculum()
		footer = FormatFooter("j/k", "Navigate", "Enter", "Open", "/", "Filter", "c", "Chat", "h", "History", "?", "Help", "q", "Quit")
	}

	status := StatusStyle.Render(footer)
	if a.status != "" {
		status = HighlightStyle.Render(a.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderTitle(),
		"",
		body,
		status,
	)
}

func (a AppView) renderTitle() string {
	title := AssistantStyle.Render("EnglishHero") + TitleStyle.Render(" - Zero to Hero")

	conn := DimStyle.Render(" | " + a.dataModel.ModelName)
	switch {
	case !a.pinged:
	case a.pingErr != nil:
		conn += ErrorStyle.Render(" ✗ offline")
	default:
		conn += DoneStyle.Render(" ✓")
	}

	if a.screen == screenChat && a.dataModel.Transcript != nil && a.dataModel.Transcript.Name != "" {
		conn += UserStyle.Render(" - " + a.dataModel.Transcript.Name)
	}
	return title + conn
}

// bodyHeight is the space between the title and the status line.
func (a AppView) bodyHeight() int {
	return max(1, a.height-3)
}

func (a AppView) renderCurriculum() string {
	total := len(a.topics)
	percent := a.dataModel.Percent(total)

	barWidth := max(10, min(40, a.width-40))
	header := fmt.Sprintf("ความคืบหน้าของคุณ (Your Progress)  %s %d%%", progressBar(percent, barWidth), percent)

	var lines []string
	focus := 0

	if a.filterMode {
		lines = append(lines, a.filterInput.View())
	}

	rowWidth := max(20, a.width-4)
	topicRow := func(visibleIdx, topicIdx int) string {
		t := a.topics[topicIdx]
		mark := DimStyle.Render("○")
		if a.dataModel.IsComplete(t.Title) {
			mark = DoneStyle.Render("✓")
		}
		title := padRight(t.Title, 28)
		desc := truncate(t.Desc, rowWidth-34)
		row := fmt.Sprintf("%s %s %s", mark, title, DimStyle.Render(desc))
		if visibleIdx == a.selectedIdx {
			focus = len(lines)
			return SelectedStyle.Render("▸ ") + row
		}
		return "  " + row
	}

	if a.filterMode {
		if len(a.visible) == 0 {
			lines = append(lines, DimStyle.Render("  No matching topics"))
		}
		for vi, ti := range a.visible {
			lines = append(lines, topicRow(vi, ti))
		}
	} else {
		vi := 0
		for _, stage := range curriculum.Stages() {
			lines = append(lines, StageStyle.Render(stage.Title)+DimStyle.Render("  "+stage.Subtitle))
			for range stage.Topics {
				lines = append(lines, topicRow(vi, a.visible[vi]))
				vi++
			}
			lines = append(lines, "")
		}
	}

	lines = windowLines(lines, focus, a.bodyHeight()-2)
	return lipgloss.NewStyle().Height(a.bodyHeight()).Render(header + "\n\n" + strings.Join(lines, "\n"))
}

func (a AppView) renderLesson() string {
	return lipgloss.NewStyle().Height(a.bodyHeight()).Render(a.lessonViewport.View())
}

// lessonContent is the lesson body plus the quiz in its current state.
func (a AppView) lessonContent() string {
	t := a.lessonTopic
	var b strings.Builder

	b.WriteString(TitleStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render(t.Desc))
	b.WriteString("\n\n")
	b.WriteString(a.lessonMarkup)
	b.WriteString("\n\n")

	b.WriteString(StageStyle.Render("🏆 แบบทดสอบความเข้าใจ (Mini Quiz)"))
	b.WriteString("\n")
	b.WriteString(t.Quiz.Question)
	b.WriteString("\n\n")
	for i := range t.Quiz.Options {
		b.WriteString(quizOptionLine(a.quiz, i))
		b.WriteString("\n")
	}

	if fb := a.quiz.Feedback(); fb != "" {
		style := ErrorStyle
		if a.quiz.IsCorrect() {
			style = DoneStyle.Bold(true)
		}
		b.WriteString("\n")
		b.WriteString(style.Render(fb))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case a.dataModel.IsComplete(t.Title):
		b.WriteString(DoneStyle.Render("✓ เรียนจบแล้ว") + DimStyle.Render("  (d: เรียนซ้ำ / study again)"))
	case curriculum.CanMarkComplete(false, a.quiz):
		b.WriteString(HighlightStyle.Render("d: เข้าใจแล้ว! (Mark as done)"))
	default:
		b.WriteString(DimStyle.Render("ตอบคำถามให้ถูกเพื่อบันทึกความคืบหน้า (Answer correctly to mark as done)"))
	}
	b.WriteString("\n")

	return b.String()
}

func (a AppView) renderHistory() string {
	width := min(a.width-4, 100)
	var lines []string

	switch {
	case a.confirmDelete != nil:
		lines = append(lines,
			ErrorStyle.Render("⚠ Delete transcript"),
			"",
			fmt.Sprintf("Are you sure you want to delete \"%s\"?", a.confirmDelete.Name),
			"",
			FormatFooter("y", "Delete", "n", "Cancel"),
		)

	case a.searchMode:
		lines = append(lines, a.searchInput.View())

	case a.showSearchResults:
		lines = append(lines, TitleStyle.Render(fmt.Sprintf("%d matches for \"%s\"", len(a.searchResults), a.searchInput.Value())), "")
		for i, m := range a.searchResults {
			who := AssistantStyle.Render("Tutor")
			if m.Speaker == string(appmodel.SpeakerUser) {
				who = UserStyle.Render("You")
			}
			row := fmt.Sprintf("%s  %s: %s", DimStyle.Render(truncate(m.TranscriptName, 24)), who, truncate(m.Preview, width-40))
			if i == a.selectedTranscriptIdx {
				row = SelectedStyle.Render("▸ ") + row
			} else {
				row = "  " + row
			}
			lines = append(lines, row)
		}

	default:
		lines = append(lines, TitleStyle.Render(fmt.Sprintf("%d saved conversations", len(a.transcriptList))), "")
		if len(a.transcriptList) == 0 {
			lines = append(lines, DimStyle.Render("  Nothing saved yet. Chat with the tutor first!"))
		}
		for i, t := range a.transcriptList {
			current := ""
			if a.dataModel.Transcript != nil && a.dataModel.Transcript.ID == t.ID {
				current = DoneStyle.Render(" (current)")
			}
			row := fmt.Sprintf("%s %s  %s%s",
				DimStyle.Render(t.UpdatedAt.Format("Jan 02 15:04")),
				padRight(truncate(t.Name, 34), 34),
				DimStyle.Render(fmt.Sprintf("%d messages", t.MessageCount)),
				current,
			)
			if i == a.selectedTranscriptIdx {
				row = SelectedStyle.Render("▸ ") + row
			} else {
				row = "  " + row
			}
			lines = append(lines, row)
		}
	}

	lines = windowLines(lines, a.selectedTranscriptIdx+2, a.bodyHeight())
	return lipgloss.NewStyle().Height(a.bodyHeight()).Render(strings.Join(lines, "\n"))
}
