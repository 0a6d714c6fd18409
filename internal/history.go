package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// HistoryEntry is an immutable snapshot of one completed study session.
// Entries are written once, after a fully successful run, and only ever read
// back wholesale.
type HistoryEntry struct {
	VideoID    string                `json:"video_id"`
	VideoURL   string                `json:"video_url"`
	Title      string                `json:"title,omitempty"`
	Topic      string                `json:"topic"`
	Level      LearningLevel         `json:"level"`
	Document   string                `json:"document"`
	Quiz       []QuizQuestion        `json:"quiz,omitempty"`
	Flashcards []FlashcardQuestion   `json:"flashcards,omitempty"`
	Roadmap    []RecommendationEntry `json:"roadmap,omitempty"`
	AudioPath  string                `json:"audio_path,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// AnswerableQuiz returns the stored quiz questions that can actually be
// presented, mirroring NotesBundle.AnswerableQuiz for restored sessions.
func (e *HistoryEntry) AnswerableQuiz() []QuizQuestion {
	var questions []QuizQuestion
	for _, q := range e.Quiz {
		if q.Answerable() {
			questions = append(questions, q)
		}
	}
	return questions
}

// History stores session snapshots as one JSON file per video ID.
type History struct {
	dir string
}

// NewHistory creates a history store rooted at dir.
func NewHistory(dir string) *History {
	return &History{dir: dir}
}

func (h *History) entryPath(videoID string) string {
	return filepath.Join(h.dir, videoID+".session.json")
}

// Append stores a new entry. An existing entry for the same video is kept
// untouched: snapshots are immutable once written.
func (h *History) Append(entry *HistoryEntry) error {
	if entry.VideoID == "" {
		return fmt.Errorf("history entry has no video ID")
	}

	if err := EnsureDirs(h.dir); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	path := h.entryPath(entry.VideoID)
	if FileExists(path) {
		return nil
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history entry: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}

	return nil
}

// Lookup returns the stored entry for a video, or false when none exists.
func (h *History) Lookup(videoID string) (*HistoryEntry, bool) {
	data, err := os.ReadFile(h.entryPath(videoID))
	if err != nil {
		return nil, false
	}

	var entry HistoryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: corrupt history entry for %s: %v\n", videoID, err)
		return nil, false
	}

	return &entry, true
}

// List returns all stored entries, most recent first.
func (h *History) List() ([]*HistoryEntry, error) {
	if !FileExists(h.dir) {
		return nil, nil
	}

	files, err := os.ReadDir(h.dir)
	if err != nil {
		return nil, fmt.Errorf("reading history directory: %w", err)
	}

	var entries []*HistoryEntry
	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, ".session.json") {
			continue
		}
		videoID := strings.TrimSuffix(name, ".session.json")
		if entry, ok := h.Lookup(videoID); ok {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}

// Clear removes all stored entries.
func (h *History) Clear() error {
	entries, err := h.List()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := os.Remove(h.entryPath(entry.VideoID)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove history entry %s: %v\n", entry.VideoID, err)
		}
		if entry.AudioPath != "" && FileExists(entry.AudioPath) {
			if err := os.Remove(entry.AudioPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to remove audio file %s: %v\n", entry.AudioPath, err)
			}
		}
	}

	return nil
}
