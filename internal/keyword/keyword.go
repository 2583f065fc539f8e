// Package keyword implements negation-aware keyword detection over source text.
//
// Two detectors exist on purpose: Detect tokenizes and inspects a window of
// context words around every occurrence, while DetectPhrase only checks a
// handful of literal negation prefixes. The monitor runs DetectPhrase on large
// source bodies where tokenizing every page each cycle is too expensive.
package keyword

import "strings"

// Status qualifies how a keyword appears in the surrounding text.
type Status string

const (
	StatusAffirmed Status = "affirmed"
	StatusNegated  Status = "negated"
	StatusNotFound Status = "not_found"
)

const contextWindow = 3

var negationWords = []string{"not", "no", "never", "deny", "reject", "decline", "negative", "against"}

var affirmationWords = []string{"yes", "approve", "accept", "confirm", "positive", "for", "support"}

// Detect reports whether kw occurs in text and with what polarity. Matching is
// case-insensitive and substring-based, so "approval" matches kw "approve".
// For each occurrence the window of up to contextWindow tokens before (nearest
// first) and after the hit is scanned; the first negation or affirmation word
// found decides the status. A hit with no polarity words nearby counts as
// affirmed.
func Detect(text, kw string) (bool, Status) {
	lower := strings.ToLower(text)
	needle := strings.ToLower(kw)
	if !strings.Contains(lower, needle) {
		return false, StatusNotFound
	}

	words := strings.Fields(lower)
	for pos, w := range words {
		if !strings.Contains(w, needle) {
			continue
		}
		lo := pos - contextWindow
		if lo < 0 {
			lo = 0
		}
		for i := pos - 1; i >= lo; i-- {
			if st, ok := polarity(words[i]); ok {
				return true, st
			}
		}
		hi := pos + contextWindow + 1
		if hi > len(words) {
			hi = len(words)
		}
		for i := pos + 1; i < hi; i++ {
			if st, ok := polarity(words[i]); ok {
				return true, st
			}
		}
	}
	return true, StatusAffirmed
}

// DetectPhrase is the cheap variant used on whole response bodies. It only
// recognizes a fixed set of literal negation prefixes immediately before the
// keyword. A present keyword without one of those prefixes is affirmed; an
// absent keyword yields an empty status.
func DetectPhrase(text, kw string) (bool, Status) {
	lower := strings.ToLower(text)
	needle := strings.ToLower(kw)

	prefixes := []string{"not ", "did not ", "was not ", "is not ", "no ", "never "}
	for _, p := range prefixes {
		if strings.Contains(lower, p+needle) {
			return true, StatusNegated
		}
	}
	if strings.Contains(lower, needle) {
		return true, StatusAffirmed
	}
	return false, ""
}

func polarity(word string) (Status, bool) {
	for _, n := range negationWords {
		if strings.Contains(word, n) {
			return StatusNegated, true
		}
	}
	for _, a := range affirmationWords {
		if strings.Contains(word, a) {
			return StatusAffirmed, true
		}
	}
	return "", false
}
