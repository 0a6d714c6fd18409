package internal

import (
	"strings"
	"testing"
)

func TestHighlightKeywords(t *testing.T) {
	text := "- @@Routing@@ decides paths.\n- @@Latency@@ measures delay."

	out := HighlightKeywords(text)

	if got := strings.Count(out, "<span"); got != 2 {
		t.Fatalf("got %d spans, want 2", got)
	}
	if strings.Contains(out, "@@") {
		t.Errorf("markers left in output: %q", out)
	}
	if !strings.Contains(out, ">Routing</span>") || !strings.Contains(out, ">Latency</span>") {
		t.Errorf("keyword text missing from spans: %q", out)
	}
	if !strings.Contains(out, "decides paths.") {
		t.Errorf("surrounding text must be untouched: %q", out)
	}
}

func TestHighlightKeywordsDeterministic(t *testing.T) {
	first := HighlightKeywords("@@Recursion@@")
	second := HighlightKeywords("@@Recursion@@")
	if first != second {
		t.Errorf("same input produced different output:\n%s\n%s", first, second)
	}

	// The same keyword gets the same color even in different positions
	combined := HighlightKeywords("intro @@Recursion@@ middle @@Recursion@@ end")
	if strings.Count(combined, keywordColor("Recursion")) != 2 {
		t.Errorf("repeated keyword must reuse its color: %q", combined)
	}
}

func TestKeywordColorFromPalette(t *testing.T) {
	for _, keyword := range []string{"Routing", "Latency", "Recursion", "DNA", "x"} {
		color := keywordColor(keyword)
		found := false
		for _, c := range highlightPalette {
			if c == color {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("keywordColor(%q) = %q, not in palette", keyword, color)
		}
	}
}

func TestHighlightKeywordsNoMarkers(t *testing.T) {
	text := "plain takeaway text"
	if got := HighlightKeywords(text); got != text {
		t.Errorf("text without markers must be unchanged, got %q", got)
	}
}
