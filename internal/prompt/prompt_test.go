package prompt

import (
	"strings"
	"testing"
)

func TestBuildWithContext(t *testing.T) {
	system, user := Build(Request{
		Term:    "quay",
		Context: "The ship tied up at the quay. Crates were stacked shoulder high.",
	})

	if system == "" {
		t.Fatal("expected non-empty system prompt")
	}
	if !strings.Contains(user, "Term: quay") {
		t.Errorf("user prompt missing term: %q", user)
	}
	if !strings.Contains(user, "The ship tied up at the quay.") {
		t.Errorf("user prompt missing passage: %q", user)
	}
	if strings.Contains(user, "No passage is available") {
		t.Errorf("unexpected no-passage notice: %q", user)
	}
}

func TestBuildWithoutContext(t *testing.T) {
	_, user := Build(Request{Term: "quay"})
	if !strings.Contains(user, "No passage is available") {
		t.Errorf("expected no-passage notice, got %q", user)
	}
}

func TestBuildLanguageHint(t *testing.T) {
	_, user := Build(Request{Term: "quay", Context: "At the quay.", Language: "German"})
	if !strings.Contains(user, "Answer in German.") {
		t.Errorf("expected language hint, got %q", user)
	}

	_, user = Build(Request{Term: "quay", Context: "At the quay."})
	if strings.Contains(user, "Answer in") {
		t.Errorf("unexpected language hint without hint configured: %q", user)
	}
}
