// Package prompt builds the lookup prompts sent to an LLM provider.
// It is the downstream consumer of the context engine's output: the
// engine hands over a context string and a sentence count, and this
// package turns them into a system/user prompt pair.
package prompt

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a precise reading assistant. Explain the highlighted term as it is used in the supplied passage. Use only the passage; do not invent plot details. Keep the explanation to 2-4 sentences."

// Request holds everything needed to build one lookup prompt.
type Request struct {
	Term     string
	Context  string // surrounding passage from the context engine or fallback
	Language string // answer language hint; empty means follow the passage
}

// Build assembles the system and user prompts for a lookup request.
func Build(req Request) (system, user string) {
	var b strings.Builder

	fmt.Fprintf(&b, "Term: %s\n", strings.TrimSpace(req.Term))
	if ctx := strings.TrimSpace(req.Context); ctx != "" {
		fmt.Fprintf(&b, "\nPassage:\n%s\n", ctx)
	} else {
		b.WriteString("\nNo passage is available; give the most common meaning of the term.\n")
	}
	b.WriteString("\nExplain what the term means in this passage.")
	if lang := strings.TrimSpace(req.Language); lang != "" {
		fmt.Fprintf(&b, " Answer in %s.", lang)
	}

	return systemPrompt, b.String()
}
