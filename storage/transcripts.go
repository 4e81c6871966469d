package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is one stored chat turn. Speaker is "user" or "model".
type Message struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is a saved chat with the tutor.
type Transcript struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// TranscriptMetadata is a lightweight version of Transcript for listing
type TranscriptMetadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// TranscriptStorage keeps one JSON file per transcript under
// <data_dir>/transcripts.
type TranscriptStorage struct {
	dir string
}

func NewTranscriptStorage(dataDir string) (*TranscriptStorage, error) {
	dir := filepath.Join(dataDir, "transcripts")

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create transcripts directory: %w", err)
	}

	return &TranscriptStorage{dir: dir}, nil
}

func (s *TranscriptStorage) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes t to disk, assigning an ID and timestamps as needed.
func (s *TranscriptStorage) Save(t *Transcript) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	t.UpdatedAt = time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = t.UpdatedAt
	}
	if t.Name == "" {
		t.Name = GenerateTranscriptName(t.Messages)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	// Transcripts hold the learner's conversation, keep them private.
	if err := os.WriteFile(s.path(t.ID), data, 0600); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}

	return nil
}

func (s *TranscriptStorage) Load(id string) (*Transcript, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}

	return &t, nil
}

// List returns metadata for all transcripts, newest first.
func (s *TranscriptStorage) List() ([]TranscriptMetadata, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcripts directory: %w", err)
	}

	var out []TranscriptMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}

		var t Transcript
		if err := json.Unmarshal(data, &t); err != nil {
			continue // skip corrupted files
		}

		out = append(out, TranscriptMetadata{
			ID:           t.ID,
			Name:         t.Name,
			Model:        t.Model,
			CreatedAt:    t.CreatedAt,
			UpdatedAt:    t.UpdatedAt,
			MessageCount: len(t.Messages),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	return out, nil
}

func (s *TranscriptStorage) Delete(id string) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil {
		return fmt.Errorf("failed to delete transcript file: %w", err)
	}
	return nil
}

func (s *TranscriptStorage) currentIDPath() string {
	return filepath.Join(filepath.Dir(s.dir), "current_transcript.id")
}

// SaveCurrentID records which transcript to resume on next launch.
func (s *TranscriptStorage) SaveCurrentID(id string) error {
	return os.WriteFile(s.currentIDPath(), []byte(id), 0600)
}

func (s *TranscriptStorage) LoadCurrentID() (string, error) {
	data, err := os.ReadFile(s.currentIDPath())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// LoadCurrent returns the transcript to resume, or nil when there is none
// or it can no longer be read.
func (s *TranscriptStorage) LoadCurrent() *Transcript {
	id, err := s.LoadCurrentID()
	if err != nil || id == "" {
		return nil
	}
	t, err := s.Load(id)
	if err != nil {
		return nil
	}
	return t
}

// validID rejects IDs that would escape the transcripts directory.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid transcript id %q", id)
	}
	return nil
}

// GenerateTranscriptName derives a name from the first user message.
func GenerateTranscriptName(messages []Message) string {
	for _, t := range messages {
		if t.Speaker != "user" {
			continue
		}
		name := strings.Join(strings.Fields(t.Text), " ")
		if name == "" {
			continue
		}
		if r := []rune(name); len(r) > 30 {
			name = string(r[:30]) + "..."
		}
		return name
	}
	return fmt.Sprintf("Chat %s", time.Now().Format("Jan 2, 3:04 PM"))
}
