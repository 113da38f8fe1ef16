package main

import (
	"fmt"
	"os"
	"strings"

	cfgresolver "github.com/lecternhq/lectern/internal/config"
	"github.com/lecternhq/lectern/internal/lookup"
	mcpserver "github.com/lecternhq/lectern/internal/mcp"
	"github.com/lecternhq/lectern/internal/notebook"
	"github.com/mark3labs/mcp-go/server"
)

func runMCP(args []string) error {
	llmFlag := ""
	dbPath := ""

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--llm" && i+1 < len(args):
			i++
			llmFlag = args[i]
		case strings.HasPrefix(args[i], "--llm="):
			llmFlag = strings.TrimPrefix(args[i], "--llm=")
		case args[i] == "--db" && i+1 < len(args):
			i++
			dbPath = args[i]
		case strings.HasPrefix(args[i], "--db="):
			dbPath = strings.TrimPrefix(args[i], "--db=")
		case strings.HasPrefix(args[i], "-"):
			return fmt.Errorf("unknown flag: %s", args[i])
		default:
			return fmt.Errorf("unexpected argument: %s", args[i])
		}
	}

	if dbPath == "" {
		resolved, err := cfgresolver.ResolveConfig(cfgresolver.ResolveOptions{})
		if err != nil {
			return err
		}
		dbPath = resolved.DBPath.Value
	}

	nb, err := notebook.NewStore(notebook.Config{DBPath: dbPath})
	if err != nil {
		return fmt.Errorf("opening notebook: %w", err)
	}
	defer nb.Close()

	provider, model, reason, err := lookup.ResolveProvider(llmFlag)
	if err != nil {
		return err
	}
	if provider == nil && reason != "" {
		fmt.Fprintf(os.Stderr, "lectern mcp: no LLM available (%s); lookups return context only\n", reason)
	}

	srv := mcpserver.NewServer(mcpserver.ServerConfig{
		Notebook: nb,
		Version:  version,
		Lookup:   lookup.NewEngine(provider, model),
	})

	return server.ServeStdio(srv)
}
