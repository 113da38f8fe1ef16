package excerpt

import (
	"strings"
	"testing"
)

// longDocument pads a prefix out past the minimum-document threshold so
// Extract does not bypass segmentation.
func longDocument(body string) string {
	return body + " The remaining filler text exists only to push the document past the short-document cutoff."
}

func TestExtractScenarioA(t *testing.T) {
	// Matches at 1 and 2; the window of 2 reaches sentence 3, so all
	// three sentences come back as one contiguous block.
	text := longDocument("The cat sat. The cat ran far away. It was happy.")
	res := Extract(text, "cat", Options{Before: 1, After: 1, MaxChars: DefaultMaxChars})

	if res.Degraded {
		t.Fatalf("unexpected degradation: %s", res.Reason)
	}
	if res.Sentences != 3 {
		t.Errorf("expected 3 sentences, got %d", res.Sentences)
	}
	want := "The cat sat. The cat ran far away. It was happy."
	if !strings.HasPrefix(res.Context, want) {
		t.Errorf("expected context to open with all three sentences, got %q", res.Context)
	}
}

func TestExtractScenarioBNoMatch(t *testing.T) {
	text := longDocument("The cat sat. The cat ran far away. It was happy.")
	res := Extract(text, "zeppelin", DefaultOptions())

	if !res.Degraded {
		t.Fatal("expected degraded result for absent term")
	}
	if res.Reason != ReasonNoMatch {
		t.Errorf("expected reason %q, got %q", ReasonNoMatch, res.Reason)
	}
	if res.Sentences != 0 || res.Context != "" {
		t.Errorf("degraded result must be empty, got %d sentences %q", res.Sentences, res.Context)
	}
}

func TestExtractScenarioCShortDocument(t *testing.T) {
	res := Extract("Far too short to segment.", "short", DefaultOptions())

	if !res.Degraded {
		t.Fatal("expected degraded result for short document")
	}
	if res.Reason != ReasonDocumentTooShort {
		t.Errorf("expected reason %q, got %q", ReasonDocumentTooShort, res.Reason)
	}
}

func TestExtractScenarioDTruncation(t *testing.T) {
	var b strings.Builder
	for b.Len() < 60000 {
		b.WriteString("The whale surfaced near the battered whaling boat once again. ")
	}
	res := Extract(b.String(), "whale", Options{Before: 2, After: 2, MaxChars: 50000})

	if res.Degraded {
		t.Fatalf("unexpected degradation: %s", res.Reason)
	}
	if got := len([]rune(res.Context)); got != 50000 {
		t.Errorf("expected exactly 50000 characters, got %d", got)
	}
	if !res.Truncated {
		t.Error("expected Truncated to be set")
	}
}

func TestExtractNoSentences(t *testing.T) {
	// Over the length threshold but nothing segmentable: every run
	// between terminators is below the minimum sentence length.
	text := strings.Repeat("a b. ", 30)
	res := Extract(text, "a", DefaultOptions())

	if !res.Degraded {
		t.Fatal("expected degraded result")
	}
	if res.Reason != ReasonNoSentences {
		t.Errorf("expected reason %q, got %q", ReasonNoSentences, res.Reason)
	}
}

func TestExtractDefaultsApplied(t *testing.T) {
	text := longDocument("One cat here. Neighbor sentence one. Neighbor sentence two. Neighbor sentence three.")
	res := Extract(text, "one cat", Options{})

	if res.Degraded {
		t.Fatalf("unexpected degradation: %s", res.Reason)
	}
	// before=after=2 by default: match at 1 pulls sentences 1..3.
	if res.Sentences != 3 {
		t.Errorf("expected 3 sentences with default window, got %d", res.Sentences)
	}
}

func TestExtractZeroOptionsMatchDefaults(t *testing.T) {
	text := longDocument("One cat here. Neighbor sentence one. Neighbor sentence two. Neighbor sentence three.")
	zero := Extract(text, "one cat", Options{})
	def := Extract(text, "one cat", DefaultOptions())

	if zero.Sentences != def.Sentences || zero.Context != def.Context {
		t.Errorf("zero-value options diverge from defaults: %+v vs %+v", zero, def)
	}
	if zero.Sentences != 3 {
		t.Errorf("expected the default window to pull 3 sentences, got %d", zero.Sentences)
	}
}

func TestExtractNotTruncatedUnderBudget(t *testing.T) {
	text := longDocument("The cat sat. The cat ran far away. It was happy.")
	res := Extract(text, "cat", DefaultOptions())
	if res.Truncated {
		t.Error("Truncated must only be set when the join exceeds the budget")
	}
}
