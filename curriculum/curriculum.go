// Package curriculum holds the built-in five stage course: lesson content,
// one-question quizzes, and the rules for marking a topic as done.
package curriculum

import "strings"

// Quiz is a single choice question. CorrectAnswer indexes Options.
type Quiz struct {
	Question      string
	Options       []string
	CorrectAnswer int
}

// Topic is one lesson. Title doubles as the progress key, so titles are
// unique across the whole course.
type Topic struct {
	Title   string
	Desc    string
	Content string // markdown
	Quiz    Quiz
}

type Stage struct {
	ID          int
	Title       string
	Subtitle    string
	Description string
	Topics      []Topic
}

// Stages returns the course in display order. The slice is shared; callers
// must not modify it.
func Stages() []Stage {
	return stages
}

// TotalTopics counts topics across all stages.
func TotalTopics() int {
	n := 0
	for _, s := range stages {
		n += len(s.Topics)
	}
	return n
}

// AllTopics flattens the course into display order.
func AllTopics() []Topic {
	topics := make([]Topic, 0, TotalTopics())
	for _, s := range stages {
		topics = append(topics, s.Topics...)
	}
	return topics
}

// FindTopic looks a topic up by title, ignoring case and surrounding space.
func FindTopic(title string) (Topic, bool) {
	title = strings.TrimSpace(title)
	for _, s := range stages {
		for _, t := range s.Topics {
			if strings.EqualFold(t.Title, title) {
				return t, true
			}
		}
	}
	return Topic{}, false
}

// StageOf returns the stage containing the given topic title.
func StageOf(title string) (Stage, bool) {
	for _, s := range stages {
		for _, t := range s.Topics {
			if t.Title == title {
				return s, true
			}
		}
	}
	return Stage{}, false
}
