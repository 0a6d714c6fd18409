package internal

import (
	"fmt"
	"hash/fnv"
	"regexp"
)

// keywordRe matches @@keyword@@ markers in takeaway text.
var keywordRe = regexp.MustCompile(`@@(.*?)@@`)

// highlightPalette holds the background colors used for highlighted keywords.
var highlightPalette = [...]string{"#FFD6A5", "#FDFFB6", "#CAFFBF", "#9BF6FF", "#A9DEF9", "#FFC0CB"}

// keywordColor picks a palette color for a keyword. FNV-1a keeps the choice
// stable: the same keyword always gets the same color.
func keywordColor(keyword string) string {
	h := fnv.New32a()
	h.Write([]byte(keyword))
	return highlightPalette[h.Sum32()%uint32(len(highlightPalette))]
}

// HighlightKeywords replaces every @@keyword@@ marker with a styled span
// carrying a deterministic background color.
func HighlightKeywords(text string) string {
	return keywordRe.ReplaceAllStringFunc(text, func(marker string) string {
		keyword := marker[2 : len(marker)-2]
		return fmt.Sprintf(
			`<span style="background-color: %s; color: #121212; padding: 3px 6px; border-radius: 5px; font-weight: 600;">%s</span>`,
			keywordColor(keyword), keyword)
	})
}
