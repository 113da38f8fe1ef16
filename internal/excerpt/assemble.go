package excerpt

import "strings"

// Assemble joins the selected sentences with single spaces and applies
// the character budget. The returned count is the number of sentences
// before truncation.
//
// The cut is a hard rune cut at maxChars, not sentence-aware: the last
// sentence may be severed mid-way. That is accepted behavior. Assemble
// never fails.
func Assemble(selected []Sentence, maxChars int) (string, int) {
	if len(selected) == 0 {
		return "", 0
	}

	parts := make([]string, len(selected))
	for i, s := range selected {
		parts[i] = s.Text
	}
	joined := strings.Join(parts, " ")

	if maxChars > 0 {
		if runes := []rune(joined); len(runes) > maxChars {
			joined = string(runes[:maxChars])
		}
	}
	return joined, len(selected)
}
