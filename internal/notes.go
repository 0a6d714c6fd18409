package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrNotText is returned when a generated document is not decodable as text.
var ErrNotText = errors.New("document is not valid UTF-8 text")

// FallbackTopic is used for topic derivation when the notes contain no summary.
const FallbackTopic = "General Educational Topic"

// Heading patterns for the sections the generation prompt asks for.
// These are regex fragments, matched case-insensitively after "##".
const (
	SectionTitle                = "Title"
	SectionSummary              = `(?:Detailed\s+)?Summary`
	SectionJargonBuster         = `Jargon\s+Buster`
	SectionKeyConcepts          = `Key\s+Concepts`
	SectionFlowchartDescription = `Flowchart\s+Description`
	SectionKeyTakeaways         = `Key\s+Takeaways`
	SectionMnemonics            = "Mnemonics"
	SectionMCQQuiz              = `MCQ\s+Quiz`
	SectionFlashcards           = `Flashcard\s+Review`
)

// ExtractSection returns the body of the first "##" section whose heading
// matches the given pattern. The body spans up to the next "##" heading or the
// end of the document. Returns false when the section is missing or its body
// is blank.
func ExtractSection(document, headingPattern string) (string, bool) {
	re, err := regexp.Compile(`(?is)##\s*` + headingPattern + `[^\n]*\n(.*?)(?:\n##|\z)`)
	if err != nil {
		return "", false
	}

	match := re.FindStringSubmatch(document)
	if match == nil {
		return "", false
	}

	body := strings.TrimSpace(match[1])
	if body == "" {
		return "", false
	}
	return body, true
}

// RemoveSection strips a "##" section (heading and body) from the document.
// Used to keep raw quiz/flashcard JSON out of the rendered notes.
func RemoveSection(document, headingPattern string) string {
	re, err := regexp.Compile(`(?is)##\s*` + headingPattern + `[^\n]*\n.*?(\n##|\z)`)
	if err != nil {
		return document
	}
	return re.ReplaceAllString(document, "$1")
}

var dotBlockRe = regexp.MustCompile("```dot\\s*([\\s\\S]+?)\\s*```")

// graphStyle is injected into every flowchart so nodes stay readable on the
// dark page background.
const graphStyle = `bgcolor="transparent"; node [style="filled", shape="box", fillcolor="#AEC6CF", fontcolor="#121212", color="#FFFFFF", penwidth=2, fontname="Inter"]; edge [color="#FFFFFF", fontname="Inter"];`

// ParseGraphviz extracts the first dot-fenced block from the document, wraps
// bare edge statements in a digraph root if needed, and injects the default
// styling. Returns false when the document has no dot block.
func ParseGraphviz(document string) (string, bool) {
	match := dotBlockRe.FindStringSubmatch(document)
	if match == nil {
		return "", false
	}

	content := strings.TrimSpace(match[1])
	if !strings.HasPrefix(content, "digraph") {
		content = "digraph G { " + content + " }"
	}

	// Style statements go right after the opening brace, everything else
	// stays verbatim.
	return strings.Replace(content, "{", "{ "+graphStyle, 1), true
}

// NotesParser extracts structured content from one generated notes document.
// All methods are pure reads over their input; absence of a section is never
// an error.
type NotesParser struct {
	verbose bool
}

// NewNotesParser creates a parser for generated notes documents.
func NewNotesParser(verbose bool) *NotesParser {
	return &NotesParser{verbose: verbose}
}

// fencedJSON finds the nearest json-fenced block after a matching "##" heading.
func (p *NotesParser) fencedJSON(document, headingPattern string) ([]byte, bool) {
	re, err := regexp.Compile(`(?is)##\s*` + headingPattern + "[\\s\\S]*?```json\\s*([\\s\\S]+?)\\s*```")
	if err != nil {
		return nil, false
	}

	match := re.FindStringSubmatch(document)
	if match == nil {
		if p.verbose {
			fmt.Printf("No JSON block found for section pattern %q\n", headingPattern)
		}
		return nil, false
	}
	return []byte(match[1]), true
}

// QuizQuestions parses the MCQ JSON block under the given heading. Missing or
// undecodable blocks yield an empty slice, never an error.
func (p *NotesParser) QuizQuestions(document, headingPattern string) []QuizQuestion {
	raw, ok := p.fencedJSON(document, headingPattern)
	if !ok {
		return nil
	}

	var questions []QuizQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to decode quiz JSON: %v\n", err)
		return nil
	}
	return questions
}

// Flashcards parses the flashcard JSON block under the given heading. Missing
// or undecodable blocks yield an empty slice, never an error.
func (p *NotesParser) Flashcards(document, headingPattern string) []FlashcardQuestion {
	raw, ok := p.fencedJSON(document, headingPattern)
	if !ok {
		return nil
	}

	var cards []FlashcardQuestion
	if err := json.Unmarshal(raw, &cards); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to decode flashcard JSON: %v\n", err)
		return nil
	}
	return cards
}

// Process runs every extraction over one generated document and collects the
// results. A missing section leaves its field at the zero value; the only
// hard failure is a document that is not text at all.
func (p *NotesParser) Process(document string) (*NotesBundle, error) {
	if !utf8.ValidString(document) {
		return nil, ErrNotText
	}

	bundle := &NotesBundle{Document: document}

	if summary, ok := ExtractSection(document, SectionSummary); ok {
		bundle.Summary = summary
	}
	if title, ok := ExtractSection(document, SectionTitle); ok {
		bundle.Title = title
	}

	bundle.Quiz = p.QuizQuestions(document, SectionMCQQuiz)
	bundle.Flashcards = p.Flashcards(document, SectionFlashcards)

	if flowchart, ok := ParseGraphviz(document); ok {
		bundle.Flowchart = flowchart
	}
	if description, ok := ExtractSection(document, SectionFlowchartDescription); ok {
		bundle.FlowchartDescription = description
	}
	if takeaways, ok := ExtractSection(document, SectionKeyTakeaways); ok {
		bundle.TakeawaysHTML = HighlightKeywords(takeaways)
	}

	if p.verbose {
		fmt.Printf("Parsed notes: %d quiz questions, %d flashcards, flowchart=%t\n",
			len(bundle.Quiz), len(bundle.Flashcards), bundle.Flowchart != "")
	}

	return bundle, nil
}
