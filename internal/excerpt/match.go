package excerpt

import "strings"

// Match returns the set of 1-based positions of sentences containing the
// term, case-insensitive literal substring. A term occurring inside a
// longer word still counts; multiple occurrences in one sentence still
// contribute a single position. An empty set is a normal outcome, not an
// error.
func Match(sentences []Sentence, term string) map[int]struct{} {
	matches := make(map[int]struct{})
	needle := strings.ToLower(term)
	if needle == "" {
		return matches
	}
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s.Text), needle) {
			matches[s.Position] = struct{}{}
		}
	}
	return matches
}
