package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cfgresolver "github.com/lecternhq/lectern/internal/config"
	"github.com/lecternhq/lectern/internal/lookup"
	"github.com/lecternhq/lectern/internal/notebook"
)

func runLookup(args []string) error {
	a, err := parseContextArgs(args, true)
	if err != nil {
		return fmt.Errorf("usage: lectern lookup <term> [--file <path>] [--llm provider/model] [--language <l>] [--save [--source <s>]] [--json]: %w", err)
	}

	text, err := readDocument(a.file)
	if err != nil {
		return err
	}
	window, err := resolveWindow(a)
	if err != nil {
		return err
	}

	resolved, err := cfgresolver.ResolveConfig(cfgresolver.ResolveOptions{CLILang: a.language})
	if err != nil {
		return err
	}

	provider, model, reason, err := lookup.ResolveProvider(a.llm)
	if err != nil {
		return err
	}
	if provider == nil && reason != "" {
		fmt.Fprintf(os.Stderr, "Warning: no LLM available (%s); returning context only\n", reason)
	}

	engine := lookup.NewEngine(provider, model)
	result, err := engine.Lookup(context.Background(), text, lookup.Options{
		Term:          a.term,
		Before:        window.Before,
		After:         window.After,
		MaxChars:      window.MaxChars,
		FallbackWords: resolved.FallbackWords.IntOr(0),
		Language:      resolved.Language.Value,
	})
	if err != nil {
		return err
	}

	if a.save {
		dbPath := a.db
		if dbPath == "" {
			dbPath = resolved.DBPath.Value
		}
		db, err := notebook.NewStore(notebook.Config{DBPath: dbPath})
		if err != nil {
			return fmt.Errorf("opening notebook: %w", err)
		}
		defer db.Close()

		id, err := db.Save(context.Background(), &notebook.Note{
			Term:     a.term,
			Context:  result.Context,
			Answer:   result.Answer,
			Source:   a.source,
			Language: resolved.Language.Value,
		})
		if err != nil {
			return fmt.Errorf("saving note: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved note %d\n", id)
	}

	if a.asJSON {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if result.Answer != "" {
		fmt.Println(result.Answer)
	}
	if result.Context != "" {
		fmt.Println()
		fmt.Printf("Context (%s):\n%s\n", result.Source, result.Context)
	}
	if result.Degraded {
		fmt.Fprintf(os.Stderr, "Degraded: %s\n", result.Reason)
	}
	return nil
}
