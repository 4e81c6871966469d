package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"englishhero/config"
	"englishhero/curriculum"
	appmodel "englishhero/model"
	"englishhero/tutor"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Keep the spinner moving only while a request is in flight
	if a.dataModel.Busy() {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		if a.screen == screenChat {
			a.updateViewportContent(true)
		}
	}

	m, cmd := a.handleMsg(msg)
	return m, tea.Batch(append(cmds, cmd)...)
}

func (a AppView) handleMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Title (1 line), blank line, textarea (3 lines), status bar (1 line)
		a.viewport.Width = a.width
		a.viewport.Height = max(1, a.height-7)
		a.textarea.SetWidth(a.width)
		a.lessonViewport.Width = a.width
		a.lessonViewport.Height = a.bodyHeight()

		a.ready = true
		a.updateViewportContent(true)
		if a.screen == screenLesson {
			a.lessonMarkup = renderMarkdown(a.lessonTopic.Content, a.width-4)
			a.lessonViewport.SetContent(a.lessonContent())
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tutorReplyMsg:
		a.dataModel.HandleReply(msg.Log, msg.Turn)
		a.updateViewportContent(true)
		return a, a.dataModel.AutoSaveTranscript()

	case practiceStartedMsg:
		a.dataModel.HandleReply(msg.Log, msg.Turn)
		a.updateViewportContent(true)
		return a, a.dataModel.AutoSaveTranscript()

	case transcriptSavedMsg:
		a.dataModel.HandleTranscriptSaved(msg)
		if msg.Err != nil {
			return a.flash("บันทึกไม่สำเร็จ (Save failed): " + msg.Err.Error())
		}
		return a, nil

	case transcriptsListMsg:
		if msg.Err != nil {
			return a.flash("Could not list transcripts: " + msg.Err.Error())
		}
		a.transcriptList = msg.Transcripts
		if a.selectedTranscriptIdx >= len(a.transcriptList) {
			a.selectedTranscriptIdx = max(0, len(a.transcriptList)-1)
		}
		return a, nil

	case transcriptLoadedMsg:
		if msg.Err != nil {
			return a.flash("Could not open transcript: " + msg.Err.Error())
		}
		a.dataModel.HandleTranscriptLoaded(msg.Transcript)
		a.screen = screenChat
		a.showSearchResults = false
		a.updateViewportContent(true)
		return a, nil

	case transcriptDeletedMsg:
		if msg.Err != nil {
			return a.flash("Could not delete transcript: " + msg.Err.Error())
		}
		if a.dataModel.Transcript != nil && a.dataModel.Transcript.ID == msg.ID {
			a.dataModel.NewConversation()
			a.updateViewportContent(true)
		}
		return a, a.dataModel.FetchTranscriptList()

	case searchResultsMsg:
		if msg.Err != nil {
			return a.flash("Search failed: " + msg.Err.Error())
		}
		a.searchResults = msg.Matches
		a.showSearchResults = true
		a.selectedTranscriptIdx = 0
		return a, nil

	case progressToggledMsg:
		if msg.Err != nil {
			return a.flash("บันทึกความคืบหน้าไม่สำเร็จ (Could not save progress): " + msg.Err.Error())
		}
		if a.screen == screenLesson {
			a.lessonViewport.SetContent(a.lessonContent())
		}
		if msg.Done {
			return a.flash(fmt.Sprintf("✓ %s", msg.Title))
		}
		return a, nil

	case progressResetMsg:
		if msg.Err != nil {
			return a.flash("Could not reset progress: " + msg.Err.Error())
		}
		return a.flash("Progress reset")

	case pingProviderMsg:
		a.pinged = true
		a.pingErr = msg.Err
		if msg.Err != nil {
			return a.flash("Tutor offline: " + msg.Err.Error())
		}
		return a, nil

	case flashTickMsg:
		a.flashes--
		if a.flashes <= 0 {
			a.flashes = 0
			a.status = ""
		}
		return a, nil
	}

	return a, nil
}

// flash shows text in the status line for a few seconds.
func (a AppView) flash(text string) (tea.Model, tea.Cmd) {
	a.status = text
	a.flashes++
	return a, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashTickMsg{}
	})
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always-global shortcuts
	if msg.String() == "ctrl+c" {
		return a.quit()
	}
	if a.showHelp {
		if msg.String() == "esc" || msg.String() == "?" {
			a.showHelp = false
		}
		return a, nil
	}

	switch a.screen {
	case screenLesson:
		return a.handleLessonKey(msg)
	case screenChat:
		return a.handleChatKey(msg)
	case screenHistory:
		return a.handleHistoryKey(msg)
	default:
		return a.handleCurriculumKey(msg)
	}
}

func (a AppView) quit() (tea.Model, tea.Cmd) {
	if config.DebugLog != nil {
		config.DebugLog.Debug().Msg("quit requested")
	}
	if save := a.dataModel.AutoSaveTranscript(); save != nil {
		if saved, ok := save().(transcriptSavedMsg); ok {
			a.dataModel.HandleTranscriptSaved(saved)
		}
	}
	a.dataModel.Quitting = true
	return a, tea.Quit
}

func (a AppView) handleCurriculumKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filterMode {
		switch msg.String() {
		case "esc":
			a.filterMode = false
			a.filterInput.Blur()
			a.visible = filterTopics(a.topics, "")
			a.selectedIdx = 0
			return a, nil
		case "enter":
			return a.openSelectedTopic()
		case "down", "ctrl+j":
			a.selectedIdx = min(a.selectedIdx+1, max(0, len(a.visible)-1))
			return a, nil
		case "up", "ctrl+k":
			a.selectedIdx = max(a.selectedIdx-1, 0)
			return a, nil
		}

		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)
		a.visible = filterTopics(a.topics, a.filterInput.Value())
		if a.selectedIdx >= len(a.visible) {
			a.selectedIdx = max(0, len(a.visible)-1)
		}
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a.quit()
	case "?":
		a.showHelp = true
	case "/":
		a.filterMode = true
		a.filterInput.SetValue("")
		a.filterInput.Focus()
		a.selectedIdx = 0
		return a, textinput.Blink
	case "j", "down":
		a.selectedIdx = min(a.selectedIdx+1, len(a.visible)-1)
	case "k", "up":
		a.selectedIdx = max(a.selectedIdx-1, 0)
	case "g", "home":
		a.selectedIdx = 0
	case "G", "end":
		a.selectedIdx = len(a.visible) - 1
	case "enter", "l":
		return a.openSelectedTopic()
	case "c", "tab":
		return a.openChat()
	case "h":
		a.screen = screenHistory
		a.showSearchResults = false
		a.selectedTranscriptIdx = 0
		return a, a.dataModel.FetchTranscriptList()
	}
	return a, nil
}

func (a AppView) openSelectedTopic() (tea.Model, tea.Cmd) {
	if a.selectedIdx < 0 || a.selectedIdx >= len(a.visible) {
		return a, nil
	}
	a.filterMode = false
	a.filterInput.Blur()

	topicIdx := a.visible[a.selectedIdx]
	a.lessonTopic = a.topics[topicIdx]
	a.visible = filterTopics(a.topics, "")
	a.selectedIdx = topicIdx
	a.quiz = curriculum.NewQuizState(a.lessonTopic.Quiz)
	a.lessonMarkup = renderMarkdown(a.lessonTopic.Content, a.width-4)
	a.lessonViewport.SetContent(a.lessonContent())
	a.lessonViewport.GotoTop()
	a.screen = screenLesson
	return a, nil
}

func (a AppView) openChat() (tea.Model, tea.Cmd) {
	a.screen = screenChat
	a.textarea.Focus()
	a.updateViewportContent(true)
	return a, textarea.Blink
}

func (a AppView) handleLessonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	title := a.lessonTopic.Title

	switch msg.String() {
	case "esc", "q":
		a.screen = screenCurriculum
		if i := indexOfTopic(a.topics, title); i >= 0 {
			a.selectedIdx = i
		}
		return a, nil
	case "?":
		a.showHelp = true
		return a, nil
	case "1", "2", "3", "4":
		n, _ := strconv.Atoi(msg.String())
		a.quiz.Select(n - 1)
		a.lessonViewport.SetContent(a.lessonContent())
		a.lessonViewport.GotoBottom()
		return a, nil
	case "enter":
		a.quiz.Submit()
		a.lessonViewport.SetContent(a.lessonContent())
		a.lessonViewport.GotoBottom()
		return a, nil
	case "d":
		if !curriculum.CanMarkComplete(a.dataModel.IsComplete(title), a.quiz) {
			return a.flash("ตอบคำถามให้ถูกก่อนนะครับ (Answer the quiz correctly first)")
		}
		return a, a.dataModel.ToggleProgress(title)
	case "p":
		cmd := a.dataModel.StartPractice(title, a.lessonTopic.Desc)
		a.screen = screenChat
		a.textarea.Focus()
		a.updateViewportContent(true)
		return a, tea.Batch(cmd, a.loadingSpinner.Tick)
	}

	var cmd tea.Cmd
	a.lessonViewport, cmd = a.lessonViewport.Update(msg)
	return a, cmd
}

func (a AppView) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.screen = screenCurriculum
		a.textarea.Blur()
		return a, nil
	case "enter":
		text := a.textarea.Value()
		if !tutor.ValidUserText(text) {
			return a, nil
		}
		a.textarea.Reset()
		cmd := a.dataModel.SendMessage(text)
		a.updateViewportContent(true)
		return a, tea.Batch(cmd, a.loadingSpinner.Tick)
	case "ctrl+y":
		last, ok := a.dataModel.Log.Last(appmodel.SpeakerModel)
		if !ok {
			return a, nil
		}
		if err := clipboard.WriteAll(last.Text); err != nil {
			return a.flash("Copy failed: " + err.Error())
		}
		return a.flash("คัดลอกแล้ว (Copied)")
	case "ctrl+n":
		save := a.dataModel.AutoSaveTranscript()
		a.dataModel.NewConversation()
		a.updateViewportContent(true)
		return a, save
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmDelete != nil {
		switch msg.String() {
		case "y", "Y":
			id := a.confirmDelete.ID
			a.confirmDelete = nil
			return a, a.dataModel.DeleteTranscript(id)
		case "n", "N", "esc":
			a.confirmDelete = nil
		}
		return a, nil
	}

	if a.searchMode {
		switch msg.String() {
		case "esc":
			a.searchMode = false
			a.searchInput.Blur()
			return a, nil
		case "enter":
			a.searchMode = false
			a.searchInput.Blur()
			return a, a.dataModel.SearchTranscripts(a.searchInput.Value())
		}
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	}

	count := len(a.transcriptList)
	if a.showSearchResults {
		count = len(a.searchResults)
	}

	switch msg.String() {
	case "esc", "q":
		if a.showSearchResults {
			a.showSearchResults = false
			a.selectedTranscriptIdx = 0
			return a, nil
		}
		a.screen = screenCurriculum
		return a, nil
	case "j", "down":
		a.selectedTranscriptIdx = min(a.selectedTranscriptIdx+1, max(0, count-1))
	case "k", "up":
		a.selectedTranscriptIdx = max(a.selectedTranscriptIdx-1, 0)
	case "/":
		a.searchMode = true
		a.searchInput.SetValue("")
		a.searchInput.Focus()
		return a, textinput.Blink
	case "d":
		if !a.showSearchResults && a.selectedTranscriptIdx < len(a.transcriptList) {
			t := a.transcriptList[a.selectedTranscriptIdx]
			a.confirmDelete = &t
		}
	case "enter":
		if a.selectedTranscriptIdx >= count {
			return a, nil
		}
		save := a.dataModel.AutoSaveTranscript()
		id := ""
		if a.showSearchResults {
			id = a.searchResults[a.selectedTranscriptIdx].TranscriptID
		} else {
			id = a.transcriptList[a.selectedTranscriptIdx].ID
		}
		return a, tea.Sequence(save, a.dataModel.LoadTranscript(id))
	}
	return a, nil
}

func indexOfTopic(topics []curriculum.Topic, title string) int {
	for i, t := range topics {
		if t.Title == title {
			return i
		}
	}
	return -1
}
