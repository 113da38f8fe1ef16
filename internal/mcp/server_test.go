package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lecternhq/lectern/internal/excerpt"
	"github.com/lecternhq/lectern/internal/lookup"
	"github.com/lecternhq/lectern/internal/notebook"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const testDocument = "The expedition left the harbor before dawn on a gray morning. " +
	"By noon the coastline had vanished behind them entirely. " +
	"The navigator checked the sextant against the pale sun. " +
	"Nobody spoke about the storm they all knew was coming."

func setupTestNotebook(t *testing.T) notebook.Store {
	t.Helper()
	s, err := notebook.NewStore(notebook.Config{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("creating test notebook: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewServer(t *testing.T) {
	srv := NewServer(ServerConfig{Notebook: setupTestNotebook(t)})
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
}

// callTool invokes an MCP tool through the server's JSON-RPC entry point.
func callTool(t *testing.T, srv *server.MCPServer, name string, args map[string]interface{}) *mcplib.CallToolResult {
	t.Helper()

	raw := srv.HandleMessage(context.Background(), mustMarshal(t, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name":      name,
			"arguments": args,
		},
	}))

	respBytes, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var resp struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("unmarshal response: %v\nraw: %s", err, string(respBytes))
	}
	if resp.Error != nil {
		t.Fatalf("JSON-RPC error: %d %s", resp.Error.Code, resp.Error.Message)
	}

	result := &mcplib.CallToolResult{IsError: resp.Result.IsError}
	for _, c := range resp.Result.Content {
		if c.Type == "text" {
			result.Content = append(result.Content, mcplib.NewTextContent(c.Text))
		}
	}
	return result
}

func mustMarshal(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func getTextContent(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	for _, c := range result.Content {
		if tc, ok := c.(mcplib.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content found")
	return ""
}

func TestContextTool(t *testing.T) {
	srv := NewServer(ServerConfig{})

	result := callTool(t, srv, "lectern_context", map[string]interface{}{
		"term":   "sextant",
		"text":   testDocument,
		"before": float64(1),
		"after":  float64(1),
	})
	if result.IsError {
		t.Fatalf("tool error: %s", getTextContent(t, result))
	}

	var res excerpt.Result
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &res); err != nil {
		t.Fatalf("parsing result: %v", err)
	}
	if res.Degraded {
		t.Fatalf("unexpected degradation: %s", res.Reason)
	}
	if res.Sentences != 3 {
		t.Errorf("expected 3 sentences, got %d", res.Sentences)
	}
	if !strings.Contains(res.Context, "sextant") {
		t.Errorf("context missing term: %q", res.Context)
	}
}

func TestContextToolDegraded(t *testing.T) {
	srv := NewServer(ServerConfig{})

	result := callTool(t, srv, "lectern_context", map[string]interface{}{
		"term": "sextant",
		"text": "Too short.",
	})

	var res excerpt.Result
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &res); err != nil {
		t.Fatalf("parsing result: %v", err)
	}
	if !res.Degraded || res.Reason != excerpt.ReasonDocumentTooShort {
		t.Fatalf("expected short-document degradation, got %+v", res)
	}
}

func TestContextToolMissingTerm(t *testing.T) {
	srv := NewServer(ServerConfig{})

	result := callTool(t, srv, "lectern_context", map[string]interface{}{
		"text": testDocument,
	})
	if !result.IsError {
		t.Fatal("expected tool error for missing term")
	}
}

func TestLookupToolWithoutProvider(t *testing.T) {
	srv := NewServer(ServerConfig{})

	result := callTool(t, srv, "lectern_lookup", map[string]interface{}{
		"term": "sextant",
		"text": testDocument,
	})
	if result.IsError {
		t.Fatalf("tool error: %s", getTextContent(t, result))
	}

	var res lookup.Result
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &res); err != nil {
		t.Fatalf("parsing result: %v", err)
	}
	if !res.Degraded || res.Reason != "no_llm_configured" {
		t.Fatalf("expected no_llm_configured degradation, got %+v", res)
	}
	if res.Context == "" {
		t.Error("expected context despite missing provider")
	}
}

func TestNoteSaveAndListTools(t *testing.T) {
	nb := setupTestNotebook(t)
	srv := NewServer(ServerConfig{Notebook: nb})

	result := callTool(t, srv, "lectern_note_save", map[string]interface{}{
		"term":    "sextant",
		"context": "The navigator checked the sextant against the pale sun.",
		"answer":  "A navigation instrument.",
		"source":  "voyage.epub",
	})
	if result.IsError {
		t.Fatalf("save error: %s", getTextContent(t, result))
	}

	result = callTool(t, srv, "lectern_notes", map[string]interface{}{
		"term": "sextant",
	})
	if result.IsError {
		t.Fatalf("list error: %s", getTextContent(t, result))
	}

	var notes []*notebook.Note
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &notes); err != nil {
		t.Fatalf("parsing notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Answer != "A navigation instrument." {
		t.Errorf("unexpected note: %+v", notes[0])
	}
}
