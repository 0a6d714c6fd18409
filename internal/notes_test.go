package internal

import (
	"errors"
	"strings"
	"testing"
)

const sampleDocument = "## Title\nIntroduction to Networking\n\n" +
	"## Detailed Summary\nThis lecture covers packet switching and routing.\n" +
	"It explains how data moves between hosts.\n\n" +
	"## Jargon Buster\n**Router**: forwards packets between networks.\n\n" +
	"## Key Concepts (for Flowchart)\n```dot\nnode1 -> node2;\nnode2 -> node3;\n```\n\n" +
	"## Flowchart Description\nData flows from the host through the router.\n\n" +
	"## Key Takeaways\n- @@Routing@@ decides the path of each packet.\n- @@Latency@@ measures delay.\n\n" +
	"## Mnemonics\nPlease Do Not Throw Sausage Pizza Away.\n\n" +
	"## MCQ Quiz\n```json\n[\n  {\"question\": \"What forwards packets?\", \"options\": [\"A) Router\", \"B) Cable\"], \"correct_answer\": \"A\", \"hint\": \"It routes.\"},\n  {\"question\": \"What measures delay?\", \"options\": [\"A) Bandwidth\", \"B) Latency\"], \"correct_answer\": \"Latency\"}\n]\n```\n\n" +
	"## Flashcard Review\n```json\n[\n  {\"question\": \"What is a router?\", \"answer\": \"A device that forwards packets.\"}\n]\n```\n"

func TestExtractSection(t *testing.T) {
	tests := []struct {
		name     string
		document string
		pattern  string
		want     string
		wantOK   bool
	}{
		{
			name:     "summary with optional prefix",
			document: sampleDocument,
			pattern:  SectionSummary,
			want:     "This lecture covers packet switching and routing.\nIt explains how data moves between hosts.",
			wantOK:   true,
		},
		{
			name:     "plain summary heading",
			document: "## Summary\nShort recap.\n\n## Next\nOther.\n",
			pattern:  SectionSummary,
			want:     "Short recap.",
			wantOK:   true,
		},
		{
			name:     "case insensitive heading",
			document: "## key takeaways\n- one\n",
			pattern:  SectionKeyTakeaways,
			want:     "- one",
			wantOK:   true,
		},
		{
			name:     "heading with trailing text",
			document: "## Key Concepts (for Flowchart)\ncontent here\n",
			pattern:  SectionKeyConcepts,
			want:     "content here",
			wantOK:   true,
		},
		{
			name:     "last section runs to end of document",
			document: sampleDocument,
			pattern:  SectionFlashcards,
			want:     "```json\n[\n  {\"question\": \"What is a router?\", \"answer\": \"A device that forwards packets.\"}\n]\n```",
			wantOK:   true,
		},
		{
			name:     "missing section",
			document: sampleDocument,
			pattern:  "References",
			wantOK:   false,
		},
		{
			name:     "blank body",
			document: "## Title\n\n## Summary\ncontent\n",
			pattern:  SectionTitle,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSection(tt.document, tt.pattern)
			if ok != tt.wantOK {
				t.Fatalf("ExtractSection(_, %q) ok = %t, want %t", tt.pattern, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractSection(_, %q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestExtractSectionIdempotent(t *testing.T) {
	first, ok := ExtractSection(sampleDocument, SectionSummary)
	if !ok {
		t.Fatal("expected summary section")
	}
	second, ok := ExtractSection(sampleDocument, SectionSummary)
	if !ok || second != first {
		t.Errorf("repeated extraction differs: %q vs %q", first, second)
	}
}

func TestRemoveSection(t *testing.T) {
	out := RemoveSection(sampleDocument, SectionMCQQuiz)

	if strings.Contains(out, "MCQ Quiz") {
		t.Error("quiz heading still present after removal")
	}
	if strings.Contains(out, "What forwards packets?") {
		t.Error("quiz body still present after removal")
	}
	if !strings.Contains(out, "## Flashcard Review") {
		t.Error("following section must survive removal")
	}
	if !strings.Contains(out, "## Detailed Summary") {
		t.Error("unrelated sections must survive removal")
	}

	// Removing a missing section leaves the document untouched
	if got := RemoveSection(sampleDocument, "References"); got != sampleDocument {
		t.Error("removing a missing section changed the document")
	}
}

func TestParseGraphviz(t *testing.T) {
	t.Run("bare edges get wrapped", func(t *testing.T) {
		got, ok := ParseGraphviz(sampleDocument)
		if !ok {
			t.Fatal("expected a dot block")
		}
		if !strings.HasPrefix(got, "digraph G { "+graphStyle) {
			t.Errorf("missing digraph wrapper with style, got %q", got)
		}
		if !strings.Contains(got, "node1 -> node2;") {
			t.Errorf("edge statements must be kept verbatim, got %q", got)
		}
		if !strings.HasSuffix(got, "}") {
			t.Errorf("wrapped graph must be closed, got %q", got)
		}
	})

	t.Run("existing digraph keeps its name", func(t *testing.T) {
		doc := "## Key Concepts\n```dot\ndigraph Flow {\na -> b;\n}\n```\n"
		got, ok := ParseGraphviz(doc)
		if !ok {
			t.Fatal("expected a dot block")
		}
		if !strings.HasPrefix(got, "digraph Flow {") {
			t.Errorf("digraph header must be preserved, got %q", got)
		}
		if !strings.Contains(got, "{ "+graphStyle) {
			t.Errorf("style must be injected after the opening brace, got %q", got)
		}
		if strings.Count(got, graphStyle) != 1 {
			t.Errorf("style must be injected exactly once, got %q", got)
		}
	})

	t.Run("no dot block", func(t *testing.T) {
		if _, ok := ParseGraphviz("## Summary\nplain text\n"); ok {
			t.Error("expected no dot block")
		}
	})
}

func TestFencedJSONBlocks(t *testing.T) {
	parser := NewNotesParser(false)

	t.Run("valid quiz block", func(t *testing.T) {
		questions := parser.QuizQuestions(sampleDocument, SectionMCQQuiz)
		if len(questions) != 2 {
			t.Fatalf("got %d questions, want 2", len(questions))
		}
		if questions[0].Hint != "It routes." {
			t.Errorf("hint = %q, want %q", questions[0].Hint, "It routes.")
		}
		if questions[1].CorrectAnswer != "Latency" {
			t.Errorf("correct answer = %q, want %q", questions[1].CorrectAnswer, "Latency")
		}
	})

	t.Run("valid flashcard block", func(t *testing.T) {
		cards := parser.Flashcards(sampleDocument, SectionFlashcards)
		if len(cards) != 1 {
			t.Fatalf("got %d cards, want 1", len(cards))
		}
		if cards[0].Question != "What is a router?" {
			t.Errorf("question = %q", cards[0].Question)
		}
	})

	t.Run("malformed JSON yields no questions", func(t *testing.T) {
		doc := "## MCQ Quiz\n```json\n[{\"question\": \"broken\",}]\n```\n"
		if got := parser.QuizQuestions(doc, SectionMCQQuiz); got != nil {
			t.Errorf("got %v, want nil for malformed JSON", got)
		}
	})

	t.Run("missing block yields no questions", func(t *testing.T) {
		if got := parser.QuizQuestions("## Summary\ntext\n", SectionMCQQuiz); got != nil {
			t.Errorf("got %v, want nil for missing block", got)
		}
	})
}

func TestProcess(t *testing.T) {
	parser := NewNotesParser(false)

	bundle, err := parser.Process(sampleDocument)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if bundle.Title != "Introduction to Networking" {
		t.Errorf("Title = %q", bundle.Title)
	}
	if !strings.Contains(bundle.Summary, "packet switching") {
		t.Errorf("Summary = %q", bundle.Summary)
	}
	if len(bundle.Quiz) != 2 {
		t.Errorf("got %d quiz questions, want 2", len(bundle.Quiz))
	}
	if len(bundle.Flashcards) != 1 {
		t.Errorf("got %d flashcards, want 1", len(bundle.Flashcards))
	}
	if !strings.HasPrefix(bundle.Flowchart, "digraph G {") {
		t.Errorf("Flowchart = %q", bundle.Flowchart)
	}
	if bundle.FlowchartDescription == "" {
		t.Error("FlowchartDescription is empty")
	}
	if got := strings.Count(bundle.TakeawaysHTML, "<span"); got != 2 {
		t.Errorf("TakeawaysHTML has %d spans, want 2", got)
	}
	if strings.Contains(bundle.TakeawaysHTML, "@@") {
		t.Errorf("keyword markers left in output: %q", bundle.TakeawaysHTML)
	}
}

func TestProcessRejectsNonText(t *testing.T) {
	parser := NewNotesParser(false)

	_, err := parser.Process("## Title\n\xff\xfe broken bytes")
	if !errors.Is(err, ErrNotText) {
		t.Errorf("Process() error = %v, want ErrNotText", err)
	}
}

func TestProcessEmptyDocument(t *testing.T) {
	parser := NewNotesParser(false)

	bundle, err := parser.Process("")
	if err != nil {
		t.Fatalf("Process(\"\") error = %v", err)
	}
	if bundle.Summary != "" || len(bundle.Quiz) != 0 || bundle.Flowchart != "" {
		t.Errorf("empty document must yield an empty bundle, got %+v", bundle)
	}
	if bundle.TopicSeed() != FallbackTopic {
		t.Errorf("TopicSeed() = %q, want fallback", bundle.TopicSeed())
	}
}
