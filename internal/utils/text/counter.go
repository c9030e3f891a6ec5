// Package text provides the text-processing primitives behind extractive summarization:
// rune counting, sentence segmentation, and content-word tokenization.
package text

import (
	"strings"
	"unicode/utf8"
)

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Multi-byte characters (Chinese, accented Latin, emoji) count as one each,
// so length limits behave the same for every supported language.
//
// Examples:
//
//	CountRunes("hello")     // 5
//	CountRunes("héllo")     // 5
//	CountRunes("hello世界")  // 7
//	CountRunes("")          // 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// CountTrimmedRunes counts runes after stripping leading and trailing whitespace.
// Request validation uses it so that padding with blanks cannot satisfy a minimum length.
func CountTrimmedRunes(text string) int {
	return CountRunes(strings.TrimSpace(text))
}
