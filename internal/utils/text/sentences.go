package text

import (
	"regexp"
	"strings"
)

// MinSentenceRunes is the shortest fragment kept as a sentence.
// Anything shorter is treated as an abbreviation or noise.
const MinSentenceRunes = 6

// sentenceBoundary matches a terminal mark followed by optional whitespace and an uppercase letter.
var sentenceBoundary = regexp.MustCompile(`([.!?])\s*(\p{Lu})`)

// SplitSentences splits text into candidate sentences in document order.
//
// A boundary is placed after every '.', '!' or '?' that is followed by optional
// whitespace and an uppercase letter. Inner whitespace of each fragment is collapsed
// and fragments shorter than MinSentenceRunes runes are discarded.
// Text without terminal punctuation comes back as a single sentence.
// The result is empty when nothing survives.
func SplitSentences(s string) []string {
	matches := sentenceBoundary.FindAllStringSubmatchIndex(s, -1)

	parts := make([]string, 0, len(matches)+1)
	start := 0
	for _, m := range matches {
		// cut right after the terminal mark
		parts = append(parts, s[start:m[3]])
		start = m[3]
	}
	parts = append(parts, s[start:])

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if CountRunes(p) < MinSentenceRunes {
			continue
		}
		sentences = append(sentences, p)
	}
	return sentences
}
