package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	cfgresolver "github.com/lecternhq/lectern/internal/config"
	"github.com/lecternhq/lectern/internal/notebook"
)

func runNotes(args []string) error {
	term := ""
	limit := 20
	deleteID := int64(0)
	dbPath := ""
	asJSON := false

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--term" && i+1 < len(args):
			i++
			term = args[i]
		case strings.HasPrefix(args[i], "--term="):
			term = strings.TrimPrefix(args[i], "--term=")
		case args[i] == "--limit" && i+1 < len(args):
			i++
			fmt.Sscanf(args[i], "%d", &limit)
		case strings.HasPrefix(args[i], "--limit="):
			fmt.Sscanf(strings.TrimPrefix(args[i], "--limit="), "%d", &limit)
		case args[i] == "--delete" && i+1 < len(args):
			i++
			id, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid note id %q", args[i])
			}
			deleteID = id
		case strings.HasPrefix(args[i], "--delete="):
			id, err := strconv.ParseInt(strings.TrimPrefix(args[i], "--delete="), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid note id in %q", args[i])
			}
			deleteID = id
		case args[i] == "--db" && i+1 < len(args):
			i++
			dbPath = args[i]
		case strings.HasPrefix(args[i], "--db="):
			dbPath = strings.TrimPrefix(args[i], "--db=")
		case args[i] == "--json":
			asJSON = true
		case strings.HasPrefix(args[i], "-"):
			return fmt.Errorf("unknown flag: %s", args[i])
		default:
			return fmt.Errorf("unexpected argument: %s", args[i])
		}
	}
	if limit <= 0 {
		limit = 20
	}

	if dbPath == "" {
		resolved, err := cfgresolver.ResolveConfig(cfgresolver.ResolveOptions{})
		if err != nil {
			return err
		}
		dbPath = resolved.DBPath.Value
	}

	db, err := notebook.NewStore(notebook.Config{DBPath: dbPath})
	if err != nil {
		return fmt.Errorf("opening notebook: %w", err)
	}
	defer db.Close()
	ctx := context.Background()

	if deleteID > 0 {
		if err := db.Delete(ctx, deleteID); err != nil {
			return err
		}
		fmt.Printf("Deleted note %d\n", deleteID)
		return nil
	}

	notes, err := db.List(ctx, notebook.ListOpts{Limit: limit, Term: term})
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}

	if asJSON {
		data, _ := json.MarshalIndent(notes, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(notes) == 0 {
		fmt.Println("No notes saved yet.")
		return nil
	}
	for _, n := range notes {
		fmt.Printf("[%d] %s  (%s)\n", n.ID, n.Term, n.CreatedAt.Format("2006-01-02 15:04"))
		if n.Answer != "" {
			fmt.Printf("    %s\n", n.Answer)
		}
		if n.Source != "" {
			fmt.Printf("    source: %s\n", n.Source)
		}
	}
	return nil
}
