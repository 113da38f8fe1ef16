package main

import (
	"fmt"
	"os"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "context":
		if err := runContext(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "lookup":
		if err := runLookup(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "notes":
		if err := runNotes(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := runMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "config":
		if err := runConfig(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("lectern %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`lectern %s - sentence-window context extraction for reading lookups

Usage:
  lectern <command> [arguments]

Commands:
  context <term>      Extract sentence-window context around a term
  lookup <term>       Extract context and ask the configured LLM to explain the term
  notes               List or delete saved notebook entries
  mcp                 Serve the MCP stdio interface
  config              Show the resolved configuration and value sources
  version             Print version

Context/Lookup Flags:
  -f, --file <path>   Read the document from a file (default: stdin)
      --before <n>    Sentences before each match (default: 2; 0 is treated as unset)
      --after <n>     Sentences after each match (default: 2; 0 is treated as unset)
      --max-chars <n> Character budget for the context (default: 50000)
      --json          Print the full result as JSON

Lookup Flags:
      --llm <p/m>     Provider/model, e.g. google/gemini-2.5-flash
      --language <l>  Answer language hint
      --save          Save the lookup to the notebook
      --source <s>    Source label recorded with --save

Notes Flags:
      --term <t>      Filter by term
      --limit <n>     Maximum entries to list (default: 20)
      --delete <id>   Delete the note with this id

Global:
      --db <path>     Notebook database path (default: ~/.lectern/notebook.db)
`, version)
}
