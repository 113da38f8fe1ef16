package main

import (
	"encoding/json"
	"fmt"
	"strings"

	cfgresolver "github.com/lecternhq/lectern/internal/config"
)

func runConfig(args []string) error {
	configPath := ""
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config" && i+1 < len(args):
			i++
			configPath = args[i]
		case strings.HasPrefix(args[i], "--config="):
			configPath = strings.TrimPrefix(args[i], "--config=")
		case strings.HasPrefix(args[i], "-"):
			return fmt.Errorf("unknown flag: %s", args[i])
		default:
			return fmt.Errorf("unexpected argument: %s", args[i])
		}
	}

	resolved, err := cfgresolver.ResolveConfig(cfgresolver.ResolveOptions{ConfigPath: configPath})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
