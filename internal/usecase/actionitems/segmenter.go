package actionitems

import (
	"iter"
	"regexp"
	"strings"
)

// sentenceBoundary matches terminal punctuation followed by whitespace. Only the
// whitespace is consumed; the punctuation stays with its sentence.
var sentenceBoundary = regexp.MustCompile(`[.?!]\s+`)

// Sentences lazily yields the trimmed, non-empty sentences of text in order.
// Abbreviations such as "Dr. Smith" are split like any other boundary.
func Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
			if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
				if !yield(s) {
					return
				}
			}
			start = loc[1]
		}
		if s := strings.TrimSpace(text[start:]); s != "" {
			yield(s)
		}
	}
}
