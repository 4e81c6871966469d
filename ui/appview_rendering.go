package ui

import (
	"fmt"
	"regexp"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	appmodel "englishhero/model"
)

var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
)

// renderMarkdown renders markdown for the terminal at the given width.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}

	// Keep plain URLs plain so the terminal can make them clickable
	content = mdLinkRegex.ReplaceAllString(content, "$2")
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(content))
	rendered := string(gomarkdown.Render(doc, r))

	// Blue background + italic reads poorly on most themes; use red text
	rendered = inlineCodeRegex.ReplaceAllString(rendered, "\x1b[31m$1\x1b[0m")
	return strings.TrimRight(rendered, "\n")
}

func formatUserMessage(timestamp, role, content string) string {
	bar := UserStyle.Render("┃")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}
	result.WriteString("\n")
	return result.String()
}

// renderTurns lays out the conversation. Tutor turns are rendered as
// markdown; learner turns are shown as typed.
func renderTurns(turns []appmodel.ChatTurn, width int) string {
	var content strings.Builder

	for _, turn := range turns {
		timestamp := DimStyle.Render(turn.Timestamp.Format("[15:04]"))

		if turn.Speaker == appmodel.SpeakerUser {
			content.WriteString(formatUserMessage(timestamp, UserStyle.Render("You"), turn.Text))
			continue
		}

		role := AssistantStyle.Render("Tutor")
		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, renderMarkdown(turn.Text, width-4)))
	}

	return content.String()
}

func (a *AppView) updateViewportContent(gotoBottom bool) {
	content := renderTurns(a.dataModel.Log.Turns(), a.width)
	if a.dataModel.Busy() {
		content += fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render("กำลังพิมพ์... (typing)"))
	}

	a.viewport.SetContent(content)
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}
