package internal

import (
	"testing"
	"time"
)

func testEntry(videoID, topic string, createdAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		VideoID:   videoID,
		VideoURL:  "https://www.youtube.com/watch?v=" + videoID,
		Title:     "Lecture " + videoID,
		Topic:     topic,
		Level:     LevelBeginner,
		Document:  "## Summary\nNotes for " + videoID + "\n",
		CreatedAt: createdAt,
	}
}

func TestHistoryAppendAndLookup(t *testing.T) {
	history := NewHistory(t.TempDir())

	entry := testEntry("abc12345678", "Networking", time.Now())
	entry.Quiz = []QuizQuestion{{
		Question:      "What forwards packets?",
		Options:       []string{"A) Router", "B) Cable"},
		CorrectAnswer: "A",
	}}

	if err := history.Append(entry); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, ok := history.Lookup("abc12345678")
	if !ok {
		t.Fatal("Lookup() returned no entry")
	}
	if got.Topic != "Networking" {
		t.Errorf("Topic = %q, want %q", got.Topic, "Networking")
	}
	if got.Level != LevelBeginner {
		t.Errorf("Level = %q, want %q", got.Level, LevelBeginner)
	}
	if len(got.Quiz) != 1 || got.Quiz[0].CorrectAnswer != "A" {
		t.Errorf("Quiz = %+v", got.Quiz)
	}

	if _, ok := history.Lookup("missing00000"); ok {
		t.Error("Lookup() found an entry that was never stored")
	}
}

func TestHistoryAppendKeepsExistingEntry(t *testing.T) {
	history := NewHistory(t.TempDir())

	original := testEntry("abc12345678", "Networking", time.Now())
	if err := history.Append(original); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	replacement := testEntry("abc12345678", "Something Else", time.Now())
	if err := history.Append(replacement); err != nil {
		t.Fatalf("second Append() error = %v", err)
	}

	got, ok := history.Lookup("abc12345678")
	if !ok {
		t.Fatal("Lookup() returned no entry")
	}
	if got.Topic != "Networking" {
		t.Errorf("stored entry was overwritten: Topic = %q", got.Topic)
	}
}

func TestHistoryListOrder(t *testing.T) {
	history := NewHistory(t.TempDir())

	base := time.Now()
	oldest := testEntry("video0000001", "Algebra", base.Add(-2*time.Hour))
	middle := testEntry("video0000002", "Geometry", base.Add(-1*time.Hour))
	newest := testEntry("video0000003", "Calculus", base)

	// Insertion order should not matter for listing
	for _, entry := range []*HistoryEntry{middle, newest, oldest} {
		if err := history.Append(entry); err != nil {
			t.Fatalf("Append(%s) error = %v", entry.VideoID, err)
		}
	}

	entries, err := history.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}

	wantOrder := []string{"video0000003", "video0000002", "video0000001"}
	for i, want := range wantOrder {
		if entries[i].VideoID != want {
			t.Errorf("entries[%d].VideoID = %q, want %q", i, entries[i].VideoID, want)
		}
	}
}

func TestHistoryListEmpty(t *testing.T) {
	history := NewHistory(t.TempDir())

	entries, err := history.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() returned %d entries, want 0", len(entries))
	}
}

func TestHistoryClear(t *testing.T) {
	history := NewHistory(t.TempDir())

	for _, id := range []string{"video0000001", "video0000002"} {
		if err := history.Append(testEntry(id, "Topic", time.Now())); err != nil {
			t.Fatalf("Append(%s) error = %v", id, err)
		}
	}

	if err := history.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	entries, err := history.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() returned %d entries after Clear(), want 0", len(entries))
	}
}

func TestHistoryEntryAnswerableQuiz(t *testing.T) {
	entry := testEntry("abc12345678", "Networking", time.Now())
	entry.Quiz = []QuizQuestion{
		{Question: "Good", Options: []string{"A) yes", "B) no"}, CorrectAnswer: "A"},
		{Question: "Bad", Options: []string{"A) yes", "B) no"}, CorrectAnswer: "neither thing"},
	}

	answerable := entry.AnswerableQuiz()
	if len(answerable) != 1 || answerable[0].Question != "Good" {
		t.Errorf("AnswerableQuiz() = %+v, want only the resolvable question", answerable)
	}
}
