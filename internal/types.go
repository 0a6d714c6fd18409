package internal

import (
	"fmt"
	"strings"
)

// LearningLevel parameterizes the roadmap recommendations.
type LearningLevel string

const (
	LevelBeginner     LearningLevel = "Beginner"
	LevelIntermediate LearningLevel = "Intermediate"
	LevelAdvanced     LearningLevel = "Advanced"
)

// LearningLevels lists the supported levels in ascending order.
var LearningLevels = []LearningLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLearningLevel normalizes user input into a LearningLevel.
func ParseLearningLevel(s string) (LearningLevel, error) {
	for _, level := range LearningLevels {
		if strings.EqualFold(s, string(level)) {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown learning level: %q (supported: %s)", s, joinLevels())
}

func joinLevels() string {
	names := make([]string, len(LearningLevels))
	for i, level := range LearningLevels {
		names[i] = string(level)
	}
	return strings.Join(names, ", ")
}

// String returns the display name of the level.
func (l LearningLevel) String() string {
	return string(l)
}

// QueryForm returns the level the way it appears in search queries.
func (l LearningLevel) QueryForm() string {
	lower := strings.ToLower(string(l))
	if l == LevelAdvanced {
		return lower
	}
	return lower + "s"
}

// RecommendationEntry is one video suggestion in the learning roadmap.
type RecommendationEntry struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// NotesBundle holds everything extracted from one generated notes document.
// A zero field means the corresponding section was absent, which is always a
// valid outcome.
type NotesBundle struct {
	Document             string
	Title                string
	Summary              string
	Quiz                 []QuizQuestion
	Flashcards           []FlashcardQuestion
	Flowchart            string
	FlowchartDescription string
	TakeawaysHTML        string
}

// TopicSeed returns the text used to derive a search topic: the summary when
// present, otherwise a fixed fallback phrase.
func (b *NotesBundle) TopicSeed() string {
	if b.Summary == "" {
		return FallbackTopic
	}
	return b.Summary
}

// AnswerableQuiz returns the quiz questions that can actually be presented,
// excluding malformed ones.
func (b *NotesBundle) AnswerableQuiz() []QuizQuestion {
	var out []QuizQuestion
	for _, q := range b.Quiz {
		if q.Answerable() {
			out = append(out, q)
		}
	}
	return out
}

// StudyText returns the document with the raw quiz and flashcard JSON
// sections removed, for rendering as readable notes.
func (b *NotesBundle) StudyText() string {
	text := RemoveSection(b.Document, SectionMCQQuiz)
	return RemoveSection(text, SectionFlashcards)
}
