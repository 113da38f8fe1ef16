package excerpt

import "strings"

// DefaultFallbackWords is the word count taken on each side of the term
// by the word-window fallback.
const DefaultFallbackWords = 15

// WordWindow extracts a fixed word-count window around the first
// case-insensitive occurrence of term in text. It is the simpler fallback
// strategy for documents the sentence pipeline cannot handle (too short,
// or no segmentable sentences).
//
// The window spans up to `before` whitespace-delimited words preceding
// the word containing the match and `after` words following it. Returns
// ("", false) when the term does not occur.
func WordWindow(text, term string, before, after int) (string, bool) {
	if strings.TrimSpace(term) == "" {
		return "", false
	}
	idx := strings.Index(strings.ToLower(text), strings.ToLower(term))
	if idx < 0 {
		return "", false
	}
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}

	// Split into words while tracking each word's byte offset, so the
	// word containing the match can be located without re-searching.
	type span struct {
		start int
		end   int
	}
	var words []span
	inWord := false
	start := 0
	for i, r := range text {
		if isSpace(r) {
			if inWord {
				words = append(words, span{start, i})
				inWord = false
			}
			continue
		}
		if !inWord {
			start = i
			inWord = true
		}
	}
	if inWord {
		words = append(words, span{start, len(text)})
	}
	if len(words) == 0 {
		return "", false
	}

	hit := len(words) - 1
	for i, w := range words {
		if idx < w.end {
			hit = i
			break
		}
	}

	lo := hit - before
	if lo < 0 {
		lo = 0
	}
	hi := hit + after
	if hi > len(words)-1 {
		hi = len(words) - 1
	}

	parts := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		parts = append(parts, text[words[i].start:words[i].end])
	}
	return strings.Join(parts, " "), true
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	// Ideographic space, common in CJK prose.
	return r == '　'
}
