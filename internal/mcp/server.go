// Package mcp provides a Model Context Protocol server for lectern.
//
// It exposes the context engine and lookup pipeline as MCP tools
// (context extraction, full lookup, note save/list) and recent notebook
// entries as an MCP resource, over stdio transport.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/lecternhq/lectern/internal/excerpt"
	"github.com/lecternhq/lectern/internal/lookup"
	"github.com/lecternhq/lectern/internal/notebook"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Notebook notebook.Store // optional; note tools are skipped when nil
	Version  string         // version string for MCP server info
	Lookup   *lookup.Engine // optional; lectern_lookup degrades without a provider
}

// dbMu serializes tool calls that touch the notebook database. The
// mcp-go library dispatches handlers concurrently via goroutines, and
// SQLite supports only one writer at a time.
var dbMu sync.Mutex

// NewServer creates a configured MCP server with all lectern tools.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"Lectern",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	lookupEngine := cfg.Lookup
	if lookupEngine == nil {
		lookupEngine = lookup.NewEngine(nil, "")
	}

	registerContextTool(s)
	registerLookupTool(s, lookupEngine)

	if cfg.Notebook != nil {
		registerNoteSaveTool(s, cfg.Notebook)
		registerNotesTool(s, cfg.Notebook)
		registerRecentNotesResource(s, cfg.Notebook)
	}

	return s
}

// --- Tools ---

func registerContextTool(s *server.MCPServer) {
	tool := mcp.NewTool("lectern_context",
		mcp.WithDescription("Extract sentence-window context around a term in a document. Returns the assembled context, sentence count, and a degradation reason when the document is too short or the term is absent."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("term",
			mcp.Required(),
			mcp.Description("The highlighted word or phrase to find context for"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The document text to extract context from"),
		),
		mcp.WithNumber("before",
			mcp.Description("Sentences to include before each match (default: 2; 0 or omitted uses the default)"),
		),
		mcp.WithNumber("after",
			mcp.Description("Sentences to include after each match (default: 2; 0 or omitted uses the default)"),
		),
		mcp.WithNumber("max_chars",
			mcp.Description("Character budget for the assembled context (default: 50000)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		term, err := req.RequireString("term")
		if err != nil || strings.TrimSpace(term) == "" {
			return mcp.NewToolResultError("term is required"), nil
		}
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		opts := excerpt.DefaultOptions()
		if v, err := req.RequireFloat("before"); err == nil && int(v) > 0 {
			opts.Before = int(v)
		}
		if v, err := req.RequireFloat("after"); err == nil && int(v) > 0 {
			opts.After = int(v)
		}
		if v, err := req.RequireFloat("max_chars"); err == nil && int(v) > 0 {
			opts.MaxChars = int(v)
		}

		result := excerpt.Extract(text, term, opts)
		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerLookupTool(s *server.MCPServer, engine *lookup.Engine) {
	tool := mcp.NewTool("lectern_lookup",
		mcp.WithDescription("Run the full lookup pipeline: extract context around the term (sentence windows, word-window fallback), build a prompt, and ask the configured LLM to explain the term. Degrades to context-only when no LLM is configured."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("term",
			mcp.Required(),
			mcp.Description("The highlighted word or phrase to look up"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The document text the term occurs in"),
		),
		mcp.WithString("language",
			mcp.Description("Answer language hint, forwarded to the prompt (e.g., 'German')"),
		),
		mcp.WithNumber("before",
			mcp.Description("Sentences to include before each match (default: 2; 0 or omitted uses the default)"),
		),
		mcp.WithNumber("after",
			mcp.Description("Sentences to include after each match (default: 2; 0 or omitted uses the default)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		term, err := req.RequireString("term")
		if err != nil || strings.TrimSpace(term) == "" {
			return mcp.NewToolResultError("term is required"), nil
		}
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		opts := lookup.Options{Term: term}
		if lang, err := req.RequireString("language"); err == nil {
			opts.Language = lang
		}
		if v, err := req.RequireFloat("before"); err == nil && int(v) > 0 {
			opts.Before = int(v)
		}
		if v, err := req.RequireFloat("after"); err == nil && int(v) > 0 {
			opts.After = int(v)
		}

		result, err := engine.Lookup(ctx, text, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerNoteSaveTool(s *server.MCPServer, st notebook.Store) {
	tool := mcp.NewTool("lectern_note_save",
		mcp.WithDescription("Save a lookup to the notebook: term, context passage, answer, and source label."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("term",
			mcp.Required(),
			mcp.Description("The looked-up term"),
		),
		mcp.WithString("context",
			mcp.Description("The context passage shown with the lookup"),
		),
		mcp.WithString("answer",
			mcp.Description("The explanation to keep"),
		),
		mcp.WithString("source",
			mcp.Description("Document or book label (e.g., 'voyage.epub')"),
		),
		mcp.WithString("language",
			mcp.Description("Language of the saved answer"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		term, err := req.RequireString("term")
		if err != nil || strings.TrimSpace(term) == "" {
			return mcp.NewToolResultError("term is required"), nil
		}

		note := &notebook.Note{Term: term}
		if v, err := req.RequireString("context"); err == nil {
			note.Context = v
		}
		if v, err := req.RequireString("answer"); err == nil {
			note.Answer = v
		}
		if v, err := req.RequireString("source"); err == nil {
			note.Source = v
		}
		if v, err := req.RequireString("language"); err == nil {
			note.Language = v
		}

		id, err := st.Save(ctx, note)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("saving note: %v", err)), nil
		}

		data, _ := json.MarshalIndent(map[string]any{"id": id, "term": note.Term}, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerNotesTool(s *server.MCPServer, st notebook.Store) {
	tool := mcp.NewTool("lectern_notes",
		mcp.WithDescription("List saved notebook entries, newest first. Optionally filter by term."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("term",
			mcp.Description("Only list notes for this term (case-insensitive)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of notes (default: 20, max: 100)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		opts := notebook.ListOpts{Limit: 20}
		if v, err := req.RequireString("term"); err == nil {
			opts.Term = v
		}
		if v, err := req.RequireFloat("limit"); err == nil {
			limit := int(v)
			if limit > 100 {
				limit = 100
			}
			if limit > 0 {
				opts.Limit = limit
			}
		}

		notes, err := st.List(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing notes: %v", err)), nil
		}

		data, _ := json.MarshalIndent(notes, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Resources ---

func registerRecentNotesResource(s *server.MCPServer, st notebook.Store) {
	resource := mcp.NewResource(
		"lectern://notes/recent",
		"Recent Notes",
		mcp.WithResourceDescription("The 20 most recently saved notebook entries."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		notes, err := st.List(ctx, notebook.ListOpts{Limit: 20})
		if err != nil {
			return nil, fmt.Errorf("listing recent notes: %w", err)
		}

		payload := map[string]any{
			"notes": notes,
			"count": len(notes),
		}
		data, _ := json.MarshalIndent(payload, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}
