package excerpt

import "strings"

// minSentenceRunes is the minimum trimmed length for an emitted sentence.
// Shorter runs between terminators (punctuation fragments, headers) are
// dropped, not merged into a neighboring sentence.
const minSentenceRunes = 10

// Sentence is one segmented sentence with its stable 1-based position in
// the segmentation output.
type Sentence struct {
	Position int    // 1-based position in the segmentation
	Text     string // trimmed sentence text
}

// sentence terminators: ASCII plus full-width CJK punctuation.
func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', ';', '。', '！', '？', '；':
		return true
	}
	return false
}

// Segment splits text into sentences in document order.
//
// The scan walks runes one at a time, so multi-byte code points are never
// split. A terminator closes the running buffer; the trimmed content is
// emitted if it exceeds the minimum length and discarded otherwise. A
// trailing unterminated buffer is flushed under the same rule.
//
// Empty or whitespace-only input yields an empty slice.
func Segment(text string) []Sentence {
	var sentences []Sentence
	var buf strings.Builder

	flush := func() {
		trimmed := strings.TrimSpace(buf.String())
		buf.Reset()
		if len([]rune(trimmed)) > minSentenceRunes {
			sentences = append(sentences, Sentence{
				Position: len(sentences) + 1,
				Text:     trimmed,
			})
		}
	}

	for _, r := range text {
		buf.WriteRune(r)
		if isTerminator(r) {
			flush()
		}
	}
	flush()

	return sentences
}
