package internal

import "testing"

func TestFindCorrectOptionIndex(t *testing.T) {
	labeled := []string{"A) Paris", "B) London", "C) Berlin"}

	tests := []struct {
		name      string
		options   []string
		answer    string
		wantIndex int
		wantOK    bool
	}{
		{
			name:      "bare letter",
			options:   labeled,
			answer:    "C",
			wantIndex: 2,
			wantOK:    true,
		},
		{
			name:      "lowercase letter",
			options:   labeled,
			answer:    "b",
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name:      "exact option text",
			options:   labeled,
			answer:    "Berlin",
			wantIndex: 2,
			wantOK:    true,
		},
		{
			name:      "answer contains option text",
			options:   []string{"A) TCP", "B) UDP"},
			answer:    "UDP protocol",
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name:      "option contains answer text",
			options:   []string{"A) The mitochondria", "B) The nucleus"},
			answer:    "nucleus",
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name:      "word overlap picks best option",
			options:   []string{"A) supervised learning with labels", "B) unsupervised clustering of data"},
			answer:    "clustering data without labels into groups",
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name:      "word overlap tie keeps first option",
			options:   []string{"A) binary search tree", "B) binary heap tree"},
			answer:    "binary tree",
			wantIndex: 0,
			wantOK:    true,
		},
		{
			name:    "letter beyond options with no content match",
			options: []string{"A) Paris", "B) London"},
			answer:  "F",
			wantOK:  false,
		},
		{
			name:      "letter beyond options falls through to content",
			options:   []string{"A) Paris", "B) X marks the spot"},
			answer:    "X",
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name:    "no overlap at all",
			options: labeled,
			answer:  "Madrid",
			wantOK:  false,
		},
		{
			name:    "empty answer",
			options: labeled,
			answer:  "   ",
			wantOK:  false,
		},
		{
			name:   "no options",
			answer: "A",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindCorrectOptionIndex(tt.options, tt.answer)
			if ok != tt.wantOK {
				t.Fatalf("FindCorrectOptionIndex(%v, %q) ok = %t, want %t", tt.options, tt.answer, ok, tt.wantOK)
			}
			if ok && got != tt.wantIndex {
				t.Errorf("FindCorrectOptionIndex(%v, %q) = %d, want %d", tt.options, tt.answer, got, tt.wantIndex)
			}
		})
	}
}

func TestQuizQuestionAnswerable(t *testing.T) {
	tests := []struct {
		name     string
		question QuizQuestion
		want     bool
	}{
		{
			name: "resolvable answer",
			question: QuizQuestion{
				Question:      "Capital of Germany?",
				Options:       []string{"A) Paris", "B) Berlin"},
				CorrectAnswer: "B",
			},
			want: true,
		},
		{
			name: "answer matches nothing",
			question: QuizQuestion{
				Question:      "Capital of Germany?",
				Options:       []string{"A) Paris", "B) London"},
				CorrectAnswer: "Madrid",
			},
			want: false,
		},
		{
			name: "no options",
			question: QuizQuestion{
				Question:      "Capital of Germany?",
				CorrectAnswer: "Berlin",
			},
			want: false,
		},
		{
			name: "empty question",
			question: QuizQuestion{
				Options:       []string{"A) Paris", "B) Berlin"},
				CorrectAnswer: "B",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.question.Answerable(); got != tt.want {
				t.Errorf("Answerable() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestCorrectIndexUsesCleanedOptions(t *testing.T) {
	q := QuizQuestion{
		Question:      "Which layer routes packets?",
		Options:       []string{"A. Transport layer", "B. Network layer"},
		CorrectAnswer: "Network layer",
	}

	got, ok := q.CorrectIndex()
	if !ok || got != 1 {
		t.Errorf("CorrectIndex() = %d, %t; want 1, true", got, ok)
	}
}
