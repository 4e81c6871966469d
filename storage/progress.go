package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// ProgressKey is the single key under which completed topic titles live.
const ProgressKey = "english-hero-progress"

// ProgressStore persists the list of completed topics in a small SQLite
// key-value table.
type ProgressStore struct {
	db     *sql.DB
	Logger zerolog.Logger
}

func NewProgressStore(dataDir string) (*ProgressStore, error) {
	dbPath := filepath.Join(dataDir, "progress.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &ProgressStore{db: db, Logger: zerolog.Nop()}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (ps *ProgressStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

// Load returns the stored titles. A missing entry is an empty list; so is a
// corrupt one, which is logged and otherwise ignored.
func (ps *ProgressStore) Load() ([]string, error) {
	var raw string
	err := ps.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, ProgressKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}

	var titles []string
	if err := json.Unmarshal([]byte(raw), &titles); err != nil {
		ps.Logger.Warn().Err(err).Msg("discarding unreadable progress entry")
		return []string{}, nil
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}

// Save replaces the stored list.
func (ps *ProgressStore) Save(titles []string) error {
	if titles == nil {
		titles = []string{}
	}
	data, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	_, err = ps.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, ProgressKey, string(data))
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (ps *ProgressStore) Close() error {
	return ps.db.Close()
}

// Progress is the in-memory view of completed topics. Every mutation is
// written through to the store before it returns.
type Progress struct {
	mu        sync.Mutex
	store     *ProgressStore
	completed []string
}

func NewProgress(store *ProgressStore) (*Progress, error) {
	titles, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Progress{store: store, completed: titles}, nil
}

// Toggle flips the completion state of title and returns the new state.
// On a write failure the in-memory state is left unchanged.
func (p *Progress) Toggle(title string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var next []string
	done := !slices.Contains(p.completed, title)
	if done {
		next = append(slices.Clone(p.completed), title)
	} else {
		next = slices.DeleteFunc(slices.Clone(p.completed), func(t string) bool { return t == title })
	}

	if err := p.store.Save(next); err != nil {
		return !done, err
	}
	p.completed = next
	return done, nil
}

// Reset clears all progress.
func (p *Progress) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Save([]string{}); err != nil {
		return err
	}
	p.completed = []string{}
	return nil
}

func (p *Progress) IsComplete(title string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Contains(p.completed, title)
}

// Completed returns the completed titles in the order they were finished.
func (p *Progress) Completed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.completed)
}

// Percent is the rounded share of total topics completed.
func (p *Progress) Percent(total int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Percent(len(p.completed), total)
}

func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
