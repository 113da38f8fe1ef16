package excerpt

import "sort"

// Expand unions the symmetric window [p-before, p+after] around every
// matched position, clipped to [1, len(sentences)], and returns the
// selected sentences in document order.
//
// Overlapping windows from nearby matches collapse into one contiguous
// block: the membership set deduplicates shared positions and the sort
// restores document order before mapping back to sentences.
func Expand(sentences []Sentence, matches map[int]struct{}, before, after int) []Sentence {
	if len(matches) == 0 {
		return nil
	}

	member := make(map[int]struct{})
	for p := range matches {
		lo := p - before
		if lo < 1 {
			lo = 1
		}
		hi := p + after
		if hi > len(sentences) {
			hi = len(sentences)
		}
		for q := lo; q <= hi; q++ {
			member[q] = struct{}{}
		}
	}

	positions := make([]int, 0, len(member))
	for q := range member {
		positions = append(positions, q)
	}
	sort.Ints(positions)

	selected := make([]Sentence, 0, len(positions))
	for _, q := range positions {
		selected = append(selected, sentences[q-1])
	}
	return selected
}
