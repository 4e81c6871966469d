package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"englishhero/curriculum"
)

// truncate shortens s to at most width terminal cells. Thai combining marks
// and emoji are measured by display width, not bytes.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight pads s with spaces to width terminal cells.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// progressBar draws a bar of width cells filled to percent.
func progressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return DoneStyle.Render(strings.Repeat("█", filled)) + DimStyle.Render(strings.Repeat("░", width-filled))
}

// filterTopics returns the indexes of topics matching query, best match
// first. An empty query matches everything in course order.
func filterTopics(topics []curriculum.Topic, query string) []int {
	if strings.TrimSpace(query) == "" {
		all := make([]int, len(topics))
		for i := range topics {
			all[i] = i
		}
		return all
	}

	targets := make([]string, len(topics))
	for i, t := range topics {
		targets[i] = t.Title + " " + t.Desc
	}

	matches := fuzzy.Find(query, targets)
	out := make([]int, len(matches))
	for i, match := range matches {
		out[i] = match.Index
	}
	return out
}

// quizOptionLine renders one answer with its number and result mark.
func quizOptionLine(q *curriculum.QuizState, i int) string {
	text := fmt.Sprintf("%d. %s", i+1, q.Quiz().Options[i])
	switch q.OptionMark(i) {
	case curriculum.MarkSelected:
		return SelectedStyle.Render("▸ " + text)
	case curriculum.MarkCorrect:
		return DoneStyle.Render("  "+text) + DoneStyle.Render(" ✓")
	case curriculum.MarkWrong:
		return ErrorStyle.Render("  "+text) + ErrorStyle.Render(" ✗")
	case curriculum.MarkDimmed:
		return DimStyle.Render("  " + text)
	default:
		return "  " + text
	}
}

// windowLines returns at most height lines of lines, keeping focus visible.
func windowLines(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := focus - height/2
	start = max(0, min(start, len(lines)-height))
	return lines[start : start+height]
}
