package main

import (
	"testing"
)

// ==================== parseContextArgs ====================

func TestParseContextArgs_TermAndFlags(t *testing.T) {
	a, err := parseContextArgs([]string{"sextant", "--file", "book.txt", "--before", "1", "--after=3", "--json"}, false)
	if err != nil {
		t.Fatalf("parseContextArgs: %v", err)
	}
	if a.term != "sextant" {
		t.Errorf("term = %q, want sextant", a.term)
	}
	if a.file != "book.txt" {
		t.Errorf("file = %q, want book.txt", a.file)
	}
	if a.before != "1" || a.after != "3" {
		t.Errorf("window = (%q, %q), want (1, 3)", a.before, a.after)
	}
	if !a.asJSON {
		t.Error("expected --json to be set")
	}
}

func TestParseContextArgs_RequiresTerm(t *testing.T) {
	if _, err := parseContextArgs([]string{"--file", "book.txt"}, false); err == nil {
		t.Fatal("expected error for missing term")
	}
}

func TestParseContextArgs_RejectsUnknownFlag(t *testing.T) {
	if _, err := parseContextArgs([]string{"sextant", "--bogus"}, false); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestParseContextArgs_LookupFlagsGated(t *testing.T) {
	// --llm is a lookup-only flag; the context command rejects it.
	if _, err := parseContextArgs([]string{"sextant", "--llm", "google/gemini-2.5-flash"}, false); err == nil {
		t.Fatal("expected error for lookup flag on context command")
	}

	a, err := parseContextArgs([]string{"sextant", "--llm", "google/gemini-2.5-flash", "--save", "--source=voyage.epub"}, true)
	if err != nil {
		t.Fatalf("parseContextArgs: %v", err)
	}
	if a.llm != "google/gemini-2.5-flash" {
		t.Errorf("llm = %q", a.llm)
	}
	if !a.save || a.source != "voyage.epub" {
		t.Errorf("save/source = %v/%q", a.save, a.source)
	}
}

func TestParseContextArgs_RejectsSecondTerm(t *testing.T) {
	if _, err := parseContextArgs([]string{"one", "two"}, false); err == nil {
		t.Fatal("expected error for extra positional argument")
	}
}
