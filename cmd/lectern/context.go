package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lecternhq/lectern/internal/config"
	"github.com/lecternhq/lectern/internal/excerpt"
)

// contextArgs holds the parsed flags shared by `context` and `lookup`.
type contextArgs struct {
	term     string
	file     string
	before   string
	after    string
	maxChars string
	asJSON   bool

	// lookup-only
	llm      string
	language string
	save     bool
	source   string
	db       string
}

func parseContextArgs(args []string, lookupFlags bool) (contextArgs, error) {
	var out contextArgs
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--file" || args[i] == "-f":
			if i+1 >= len(args) {
				return out, fmt.Errorf("--file requires a value")
			}
			i++
			out.file = args[i]
		case strings.HasPrefix(args[i], "--file="):
			out.file = strings.TrimPrefix(args[i], "--file=")
		case args[i] == "--before" && i+1 < len(args):
			i++
			out.before = args[i]
		case strings.HasPrefix(args[i], "--before="):
			out.before = strings.TrimPrefix(args[i], "--before=")
		case args[i] == "--after" && i+1 < len(args):
			i++
			out.after = args[i]
		case strings.HasPrefix(args[i], "--after="):
			out.after = strings.TrimPrefix(args[i], "--after=")
		case args[i] == "--max-chars" && i+1 < len(args):
			i++
			out.maxChars = args[i]
		case strings.HasPrefix(args[i], "--max-chars="):
			out.maxChars = strings.TrimPrefix(args[i], "--max-chars=")
		case args[i] == "--json":
			out.asJSON = true
		case lookupFlags && args[i] == "--llm" && i+1 < len(args):
			i++
			out.llm = args[i]
		case lookupFlags && strings.HasPrefix(args[i], "--llm="):
			out.llm = strings.TrimPrefix(args[i], "--llm=")
		case lookupFlags && args[i] == "--language" && i+1 < len(args):
			i++
			out.language = args[i]
		case lookupFlags && strings.HasPrefix(args[i], "--language="):
			out.language = strings.TrimPrefix(args[i], "--language=")
		case lookupFlags && args[i] == "--save":
			out.save = true
		case lookupFlags && args[i] == "--source" && i+1 < len(args):
			i++
			out.source = args[i]
		case lookupFlags && strings.HasPrefix(args[i], "--source="):
			out.source = strings.TrimPrefix(args[i], "--source=")
		case args[i] == "--db" && i+1 < len(args):
			i++
			out.db = args[i]
		case strings.HasPrefix(args[i], "--db="):
			out.db = strings.TrimPrefix(args[i], "--db=")
		case strings.HasPrefix(args[i], "-"):
			return out, fmt.Errorf("unknown flag: %s", args[i])
		default:
			if out.term != "" {
				return out, fmt.Errorf("unexpected argument: %s", args[i])
			}
			out.term = args[i]
		}
	}
	if strings.TrimSpace(out.term) == "" {
		return out, fmt.Errorf("no term specified")
	}
	return out, nil
}

// readDocument reads the document text from the file flag or stdin.
func readDocument(file string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

// resolveWindow merges CLI flags over config file / env settings.
func resolveWindow(a contextArgs) (excerpt.Options, error) {
	resolved, err := config.ResolveConfig(config.ResolveOptions{
		CLIBefore: a.before,
		CLIAfter:  a.after,
		CLIMaxCh:  a.maxChars,
	})
	if err != nil {
		return excerpt.Options{}, err
	}
	opts := excerpt.Options{
		Before:   resolved.SentencesBefore.IntOr(excerpt.DefaultBefore),
		After:    resolved.SentencesAfter.IntOr(excerpt.DefaultAfter),
		MaxChars: resolved.MaxCharacters.IntOr(excerpt.DefaultMaxChars),
	}
	if opts.Before < 0 || opts.After < 0 {
		return opts, fmt.Errorf("window sizes must be non-negative")
	}
	return opts, nil
}

func runContext(args []string) error {
	a, err := parseContextArgs(args, false)
	if err != nil {
		return fmt.Errorf("usage: lectern context <term> [--file <path>] [--before N] [--after N] [--max-chars N] [--json]: %w", err)
	}

	text, err := readDocument(a.file)
	if err != nil {
		return err
	}
	opts, err := resolveWindow(a)
	if err != nil {
		return err
	}

	result := excerpt.Extract(text, a.term, opts)

	if a.asJSON {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if result.Degraded {
		fmt.Printf("No context available (%s)\n", result.Reason)
		return nil
	}
	fmt.Println(result.Context)
	fmt.Fprintf(os.Stderr, "%d sentence(s)", result.Sentences)
	if result.Truncated {
		fmt.Fprintf(os.Stderr, ", truncated to %d characters", opts.MaxChars)
	}
	fmt.Fprintln(os.Stderr)
	return nil
}
