package text

import (
	"strings"
	"unicode"
)

// MinTokenRunes is the shortest token that counts as a content word.
const MinTokenRunes = 3

// stopWords is a closed English list of articles, auxiliaries, pronouns,
// prepositions and conjunctions. Tokens of two runes or fewer are dropped
// before this lookup, so those words are not listed.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "but": {}, "for": {}, "nor": {}, "yet": {},
	"are": {}, "was": {}, "were": {}, "been": {}, "being": {}, "has": {},
	"have": {}, "had": {}, "having": {}, "does": {}, "did": {}, "doing": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "must": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "with": {}, "from": {}, "into": {}, "onto": {}, "about": {},
	"over": {}, "under": {}, "than": {}, "then": {}, "there": {}, "their": {},
	"they": {}, "them": {}, "its": {}, "his": {}, "her": {}, "hers": {},
	"she": {}, "him": {}, "you": {}, "your": {}, "yours": {}, "our": {},
	"ours": {}, "who": {}, "whom": {}, "which": {}, "what": {}, "when": {},
	"where": {}, "why": {}, "how": {}, "all": {}, "any": {}, "each": {},
	"also": {}, "not": {}, "only": {}, "very": {}, "just": {}, "some": {},
	"such": {}, "more": {}, "most": {}, "other": {}, "out": {}, "off": {},
	"upon": {}, "after": {}, "before": {}, "while": {}, "because": {},
	"until": {}, "during": {}, "through": {}, "between": {}, "against": {},
	"here": {}, "both": {}, "few": {}, "own": {}, "same": {}, "too": {},
	"now": {}, "again": {}, "further": {}, "once": {}, "whether": {},
	"per": {}, "via": {}, "itself": {}, "myself": {}, "yourself": {},
	"themselves": {}, "ourselves": {}, "himself": {}, "herself": {},
}

// IsStopWord reports whether the normalized token is on the stop-word list.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// NormalizeToken lower-cases a raw token and strips every rune that is not a letter or digit.
func NormalizeToken(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize returns the content words of a sentence in order.
// Tokens are split on whitespace, normalized, and dropped when shorter than
// MinTokenRunes or present in the stop-word list.
func Tokenize(sentence string) []string {
	fields := strings.Fields(sentence)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := NormalizeToken(f)
		if CountRunes(tok) < MinTokenRunes || IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
