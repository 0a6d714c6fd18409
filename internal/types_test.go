package internal

import (
	"strings"
	"testing"
)

func TestParseLearningLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LearningLevel
		wantErr bool
	}{
		{input: "Beginner", want: LevelBeginner},
		{input: "beginner", want: LevelBeginner},
		{input: "INTERMEDIATE", want: LevelIntermediate},
		{input: "Advanced", want: LevelAdvanced},
		{input: "expert", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLearningLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLearningLevel(%q) error = %v, wantErr %t", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseLearningLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLearningLevelQueryForm(t *testing.T) {
	tests := []struct {
		level LearningLevel
		want  string
	}{
		{LevelBeginner, "beginners"},
		{LevelIntermediate, "intermediates"},
		{LevelAdvanced, "advanced"},
	}

	for _, tt := range tests {
		if got := tt.level.QueryForm(); got != tt.want {
			t.Errorf("%s.QueryForm() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestNotesBundleTopicSeed(t *testing.T) {
	withSummary := &NotesBundle{Summary: "Packet switching basics."}
	if got := withSummary.TopicSeed(); got != "Packet switching basics." {
		t.Errorf("TopicSeed() = %q, want the summary", got)
	}

	empty := &NotesBundle{}
	if got := empty.TopicSeed(); got != FallbackTopic {
		t.Errorf("TopicSeed() = %q, want %q", got, FallbackTopic)
	}
}

func TestNotesBundleStudyText(t *testing.T) {
	bundle := &NotesBundle{Document: sampleDocument}

	text := bundle.StudyText()

	if strings.Contains(text, "MCQ Quiz") || strings.Contains(text, "Flashcard Review") {
		t.Errorf("raw JSON sections must be stripped, got %q", text)
	}
	if !strings.Contains(text, "## Detailed Summary") {
		t.Error("summary section must survive")
	}
	if !strings.Contains(text, "## Mnemonics") {
		t.Error("mnemonics section must survive")
	}
}

func TestNotesBundleAnswerableQuiz(t *testing.T) {
	bundle := &NotesBundle{Quiz: []QuizQuestion{
		{Question: "Resolvable", Options: []string{"A) one", "B) two"}, CorrectAnswer: "B"},
		{Question: "Unresolvable", Options: []string{"A) one", "B) two"}, CorrectAnswer: "something else entirely"},
		{Question: "No options", CorrectAnswer: "A"},
	}}

	answerable := bundle.AnswerableQuiz()
	if len(answerable) != 1 {
		t.Fatalf("got %d answerable questions, want 1", len(answerable))
	}
	if answerable[0].Question != "Resolvable" {
		t.Errorf("kept question = %q", answerable[0].Question)
	}
}
