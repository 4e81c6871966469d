package storage

import (
	"strings"
	"time"
)

// MessageMatch is a search hit inside a saved transcript.
type MessageMatch struct {
	TranscriptID   string
	TranscriptName string
	MessageIndex   int
	Speaker        string
	Preview        string
	Timestamp      time.Time
}

type SearchIndex struct {
	storage *TranscriptStorage
}

func NewSearchIndex(storage *TranscriptStorage) *SearchIndex {
	return &SearchIndex{storage: storage}
}

// Search does a case-insensitive substring match over every message of every
// transcript, newest transcript first.
func (si *SearchIndex) Search(query string) ([]MessageMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []MessageMatch{}, nil
	}

	list, err := si.storage.List()
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	matches := []MessageMatch{}

	for _, meta := range list {
		t, err := si.storage.Load(meta.ID)
		if err != nil {
			continue
		}

		for i, turn := range t.Messages {
			if !strings.Contains(strings.ToLower(turn.Text), queryLower) {
				continue
			}
			matches = append(matches, MessageMatch{
				TranscriptID:   t.ID,
				TranscriptName: t.Name,
				MessageIndex:   i,
				Speaker:        turn.Speaker,
				Preview:        preview(turn.Text, 100),
				Timestamp:      turn.Timestamp,
			})
		}
	}

	return matches, nil
}

func preview(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return s
}
