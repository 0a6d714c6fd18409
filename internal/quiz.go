package internal

import (
	"regexp"
	"strings"
)

// QuizQuestion is one multiple-choice question from the MCQ Quiz section.
// CorrectAnswer comes back from the model in no reliable format: sometimes a
// bare letter, sometimes the option text, sometimes a paraphrase of it.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Hint          string   `json:"hint,omitempty"`
}

// CorrectIndex resolves which option the correct answer refers to.
func (q QuizQuestion) CorrectIndex() (int, bool) {
	return FindCorrectOptionIndex(q.Options, q.CorrectAnswer)
}

// Answerable reports whether the question can be presented to the user.
// Questions whose answer resolves to no option are malformed and must not be
// rendered as answerable.
func (q QuizQuestion) Answerable() bool {
	if q.Question == "" || len(q.Options) == 0 {
		return false
	}
	_, ok := q.CorrectIndex()
	return ok
}

// FlashcardQuestion is one open-ended card from the Flashcard Review section.
type FlashcardQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// optionLabelRe strips leading labels like "A)", "B.", "C " from option text.
var optionLabelRe = regexp.MustCompile(`^[A-Z][\)\.\s]+`)

func cleanOption(option string) string {
	upper := strings.ToUpper(strings.TrimSpace(option))
	return strings.TrimSpace(optionLabelRe.ReplaceAllString(upper, ""))
}

// FindCorrectOptionIndex determines which option a correct-answer value refers
// to, trying progressively looser strategies:
//
//  1. a bare letter A-Z selects by alphabet offset
//  2. exact or substring match against label-stripped option text
//  3. highest count of shared whitespace-separated words
//
// A letter whose offset lies outside the options is treated as malformed and
// falls through to content matching. Returns false when nothing matches.
func FindCorrectOptionIndex(options []string, correctAnswer string) (int, bool) {
	answer := strings.ToUpper(strings.TrimSpace(correctAnswer))
	if len(options) == 0 || answer == "" {
		return 0, false
	}

	// Strategy 1: direct letter match ("A" selects options[0])
	if len(answer) == 1 && answer[0] >= 'A' && answer[0] <= 'Z' {
		index := int(answer[0] - 'A')
		if index < len(options) {
			return index, true
		}
		// Letter points past the options; try content matching instead.
	}

	// Strategy 2: content similarity
	for i, option := range options {
		content := cleanOption(option)
		if content == "" {
			continue
		}
		if content == answer || strings.Contains(content, answer) || strings.Contains(answer, content) {
			return i, true
		}
	}

	// Strategy 3: best shared-word overlap, first index wins ties
	answerWords := make(map[string]struct{})
	for _, word := range strings.Fields(answer) {
		answerWords[word] = struct{}{}
	}

	bestIndex, bestScore := 0, 0
	for i, option := range options {
		score := 0
		for _, word := range strings.Fields(cleanOption(option)) {
			if _, ok := answerWords[word]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestScore > 0 {
		return bestIndex, true
	}
	return 0, false
}
