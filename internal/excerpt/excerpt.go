// Package excerpt selects a bounded slice of surrounding prose around
// occurrences of a term inside a document, for downstream consumption by
// a language model.
//
// The pipeline is purely positional and lexical: sentence segmentation
// (Latin and CJK terminators), case-insensitive substring matching,
// symmetric sentence-window expansion with dedup and document-order
// reconstruction, and a hard character-budget cut. No scoring, no I/O,
// no state shared between calls.
package excerpt

// Defaults for the context window and character budget.
const (
	DefaultBefore   = 2
	DefaultAfter    = 2
	DefaultMaxChars = 50000

	// minDocumentRunes is the threshold below which a document is
	// considered too short to segment usefully. Callers should fall
	// back to a simpler context strategy (see WordWindow).
	minDocumentRunes = 100
)

// Degradation reasons reported on Result when the engine cannot produce
// a usable context. None of these are errors.
const (
	ReasonDocumentTooShort = "document_too_short"
	ReasonNoSentences      = "no_sentences"
	ReasonNoMatch          = "no_match"
)

// Options configures a single extraction call.
type Options struct {
	Before   int // sentences before each match (<= 0 means default)
	After    int // sentences after each match (<= 0 means default)
	MaxChars int // character budget for the assembled context (<= 0 means default)
}

// DefaultOptions returns the standard window and budget configuration.
func DefaultOptions() Options {
	return Options{Before: DefaultBefore, After: DefaultAfter, MaxChars: DefaultMaxChars}
}

func (o Options) normalized() Options {
	if o.Before <= 0 {
		o.Before = DefaultBefore
	}
	if o.After <= 0 {
		o.After = DefaultAfter
	}
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	return o
}

// Result is the outcome of one extraction call.
//
// Degraded=true means the engine produced no usable context and the
// caller should supply its own fallback; Reason carries the cause.
// Truncated reports a silent budget cut, not a failure.
type Result struct {
	Context   string `json:"context"`
	Sentences int    `json:"sentences"`
	Truncated bool   `json:"truncated,omitempty"`
	Degraded  bool   `json:"degraded,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func degraded(reason string) Result {
	return Result{Degraded: true, Reason: reason}
}

// Extract runs the full pipeline: segment, match, expand, assemble.
//
// The call is a pure function of its inputs. Independent calls are safe
// to run concurrently without synchronization.
func Extract(text, term string, opts Options) Result {
	opts = opts.normalized()

	if runeCount(text) < minDocumentRunes {
		return degraded(ReasonDocumentTooShort)
	}

	sentences := Segment(text)
	if len(sentences) == 0 {
		return degraded(ReasonNoSentences)
	}

	matches := Match(sentences, term)
	if len(matches) == 0 {
		return degraded(ReasonNoMatch)
	}

	selected := Expand(sentences, matches, opts.Before, opts.After)
	context, count := Assemble(selected, opts.MaxChars)

	return Result{
		Context:   context,
		Sentences: count,
		Truncated: len([]rune(context)) < joinedRuneLen(selected),
	}
}

// joinedRuneLen is the rune length the assembled join would have without
// the budget cut: sentences plus single-space separators.
func joinedRuneLen(selected []Sentence) int {
	if len(selected) == 0 {
		return 0
	}
	n := len(selected) - 1
	for _, s := range selected {
		n += len([]rune(s.Text))
	}
	return n
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
