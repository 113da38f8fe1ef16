// Package config resolves lectern settings from, in increasing
// precedence: the YAML config file, LECTERN_* environment variables,
// and CLI flags. Every resolved value carries its source so `lectern
// config` can explain where a setting came from.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lecternhq/lectern/internal/excerpt"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

// IntOr parses the value as an int, falling back when unset or invalid.
func (v ResolvedValue) IntOr(fallback int) int {
	s := strings.TrimSpace(v.Value)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

type ResolveOptions struct {
	ConfigPath string
	CLILLM     string
	CLIDBPath  string
	CLIBefore  string
	CLIAfter   string
	CLIMaxCh   string
	CLILang    string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DBPath      ResolvedValue `json:"db_path"`
	LLMProvider ResolvedValue `json:"llm_provider"`

	// Language is a hint forwarded to prompt construction; the context
	// engine itself never consults it.
	Language ResolvedValue `json:"language"`

	SentencesBefore ResolvedValue `json:"context_sentences_before"`
	SentencesAfter  ResolvedValue `json:"context_sentences_after"`
	MaxCharacters   ResolvedValue `json:"max_characters"`
	FallbackWords   ResolvedValue `json:"fallback_words"`
}

type fileConfig struct {
	DBPath string `yaml:"db_path"`
	LLM    struct {
		Provider string `yaml:"provider"`
	} `yaml:"llm"`
	Language string `yaml:"language"`
	Context  struct {
		SentencesBefore *int `yaml:"sentences_before"`
		SentencesAfter  *int `yaml:"sentences_after"`
		MaxCharacters   *int `yaml:"max_characters"`
		FallbackWords   *int `yaml:"fallback_words"`
	} `yaml:"context"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lectern", "config.yaml")
}

func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{ConfigPath: path}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}

	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.LLMProvider, cfg.LLM.Provider, SourceConfig, path)
		apply(&out.Language, cfg.Language, SourceConfig, path)
		applyInt(&out.SentencesBefore, cfg.Context.SentencesBefore, path)
		applyInt(&out.SentencesAfter, cfg.Context.SentencesAfter, path)
		applyInt(&out.MaxCharacters, cfg.Context.MaxCharacters, path)
		applyInt(&out.FallbackWords, cfg.Context.FallbackWords, path)
	}

	applyEnv(&out.DBPath, "LECTERN_DB")
	applyEnv(&out.DBPath, "LECTERN_DB_PATH")
	applyEnv(&out.LLMProvider, "LECTERN_LLM")
	applyEnv(&out.Language, "LECTERN_LANGUAGE")
	applyEnv(&out.SentencesBefore, "LECTERN_CONTEXT_BEFORE")
	applyEnv(&out.SentencesAfter, "LECTERN_CONTEXT_AFTER")
	applyEnv(&out.MaxCharacters, "LECTERN_MAX_CHARS")
	applyEnv(&out.FallbackWords, "LECTERN_FALLBACK_WORDS")

	apply(&out.LLMProvider, opts.CLILLM, SourceCLI, "--llm")
	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.SentencesBefore, opts.CLIBefore, SourceCLI, "--before")
	apply(&out.SentencesAfter, opts.CLIAfter, SourceCLI, "--after")
	apply(&out.MaxCharacters, opts.CLIMaxCh, SourceCLI, "--max-chars")
	apply(&out.Language, opts.CLILang, SourceCLI, "--language")

	applyDefault(&out.DBPath, "~/.lectern/notebook.db")
	applyDefault(&out.SentencesBefore, strconv.Itoa(excerpt.DefaultBefore))
	applyDefault(&out.SentencesAfter, strconv.Itoa(excerpt.DefaultAfter))
	applyDefault(&out.MaxCharacters, strconv.Itoa(excerpt.DefaultMaxChars))
	applyDefault(&out.FallbackWords, strconv.Itoa(excerpt.DefaultFallbackWords))

	if out.DBPath.Value != "" {
		out.DBPath.Value = expandUserPath(out.DBPath.Value)
	}

	return out, nil
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyInt(dst *ResolvedValue, raw *int, from string) {
	if raw == nil {
		return
	}
	*dst = ResolvedValue{Value: strconv.Itoa(*raw), Source: SourceConfig, From: from}
}

func applyDefault(dst *ResolvedValue, value string) {
	if dst.Source != "" {
		return
	}
	*dst = ResolvedValue{Value: value, Source: SourceDefault}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
