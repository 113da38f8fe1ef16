// Package lookup runs the full term-lookup pipeline: sentence-window
// context extraction, word-window fallback, prompt construction, and the
// provider call. Every failure mode past argument validation degrades to
// a partial result instead of erroring.
package lookup

import (
	"context"
	"fmt"
	"strings"

	cfgresolver "github.com/lecternhq/lectern/internal/config"
	"github.com/lecternhq/lectern/internal/excerpt"
	"github.com/lecternhq/lectern/internal/llm"
	"github.com/lecternhq/lectern/internal/prompt"
)

// Context source labels reported on Result.
const (
	SourceSentences  = "sentences"
	SourceWordWindow = "word_window"
	SourceNone       = "none"
)

// Options configures one lookup. Window and budget values of zero or
// below fall back to the excerpt package defaults; an explicit zero
// window is not expressible here.
type Options struct {
	Term          string
	Before        int // sentences before each match (<= 0 means default)
	After         int // sentences after each match (<= 0 means default)
	MaxChars      int // character budget for the assembled context (<= 0 means default)
	FallbackWords int // word count per side for the fallback window (<= 0 means default)
	Language      string
}

type Result struct {
	Answer    string `json:"answer,omitempty"`
	Context   string `json:"context"`
	Sentences int    `json:"sentences"`
	Source    string `json:"source"`
	Degraded  bool   `json:"degraded,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Model     string `json:"model,omitempty"`
}

type Engine struct {
	llm   llm.Provider
	model string
}

// NewEngine creates a lookup engine. A nil provider is allowed: lookups
// then return context only, degraded with reason "no_llm_configured".
func NewEngine(provider llm.Provider, model string) *Engine {
	return &Engine{llm: provider, model: model}
}

// ResolveProvider resolves a provider/model from CLI/config and attempts
// provider init. If no usable provider is available it returns
// (nil, model, reason, nil) for graceful degradation.
func ResolveProvider(modelFlag string) (llm.Provider, string, string, error) {
	resolvedCfg, err := cfgresolver.ResolveConfig(cfgresolver.ResolveOptions{CLILLM: modelFlag})
	if err != nil {
		return nil, "", "", err
	}

	model := strings.TrimSpace(modelFlag)
	if model == "" {
		model = resolvedCfg.LLMProvider.Value
	}
	if strings.TrimSpace(model) == "" {
		return nil, "", "no_llm_configured", nil
	}

	cfg, err := llm.ParseLLMFlag(model)
	if err != nil {
		if strings.TrimSpace(modelFlag) != "" {
			return nil, model, "", err
		}
		return nil, model, "invalid_model_config", nil
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, model, "no_llm_configured", nil
	}
	return provider, model, "", nil
}

// Lookup extracts context for the term and asks the provider to explain it.
func (e *Engine) Lookup(ctx context.Context, documentText string, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.Term) == "" {
		return nil, fmt.Errorf("term is required")
	}
	if opts.Before <= 0 {
		opts.Before = excerpt.DefaultBefore
	}
	if opts.After <= 0 {
		opts.After = excerpt.DefaultAfter
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = excerpt.DefaultMaxChars
	}
	if opts.FallbackWords <= 0 {
		opts.FallbackWords = excerpt.DefaultFallbackWords
	}

	res := &Result{Source: SourceNone}

	extracted := excerpt.Extract(documentText, opts.Term, excerpt.Options{
		Before:   opts.Before,
		After:    opts.After,
		MaxChars: opts.MaxChars,
	})
	if !extracted.Degraded {
		res.Context = extracted.Context
		res.Sentences = extracted.Sentences
		res.Source = SourceSentences
	} else if window, ok := excerpt.WordWindow(documentText, opts.Term, opts.FallbackWords, opts.FallbackWords); ok {
		res.Context = window
		res.Source = SourceWordWindow
	} else {
		res.Degraded = true
		res.Reason = extracted.Reason
		return res, nil
	}

	if e.llm == nil {
		res.Degraded = true
		res.Reason = "no_llm_configured"
		return res, nil
	}

	system, user := prompt.Build(prompt.Request{
		Term:     opts.Term,
		Context:  res.Context,
		Language: opts.Language,
	})

	resp, err := e.llm.Complete(ctx, user, llm.CompletionOpts{
		System:      system,
		Temperature: 0.2,
		MaxTokens:   400,
	})
	if err != nil {
		res.Degraded = true
		res.Reason = "llm_error"
		return res, nil
	}

	answer := strings.TrimSpace(resp)
	if answer == "" {
		res.Degraded = true
		res.Reason = "empty_llm_response"
		return res, nil
	}

	res.Answer = answer
	res.Model = e.model
	return res, nil
}
