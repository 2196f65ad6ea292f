package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no path is given
const DefaultFileName = "helium.yaml"

// Config holds the driver settings read from helium.yaml.
type Config struct {
	// Path is the file the settings came from, empty for defaults
	Path       string
	PrintTypes bool
	Lint       bool
	REPL       REPLConfig
}

// REPLConfig configures the interactive session.
type REPLConfig struct {
	// HistoryFile is where entered lines are kept between sessions.
	// Empty disables history.
	HistoryFile        string
	Prompt             string
	ContinuationPrompt string
}

type configFile struct {
	PrintTypes *bool     `yaml:"print_types"`
	Lint       *bool     `yaml:"lint"`
	REPL       *replFile `yaml:"repl"`
}

type replFile struct {
	HistoryFile        *string `yaml:"history_file"`
	Prompt             *string `yaml:"prompt"`
	ContinuationPrompt *string `yaml:"continuation_prompt"`
}

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	return &Config{
		PrintTypes: true,
		Lint:       false,
		REPL: REPLConfig{
			HistoryFile:        "~/.helium_history",
			Prompt:             "he> ",
			ContinuationPrompt: "... ",
		},
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads the configuration at path. With an empty path DefaultFileName
// is tried in the working directory, and defaults are returned when it does
// not exist. An explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := cfg.expandHome(); err != nil {
				return nil, fmt.Errorf("config: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// Decode parses and validates a configuration document. Keys left out keep
// their default value; an empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	cfg := raw.toConfig()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.expandHome(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *configFile) toConfig() *Config {
	cfg := Default()
	if f.PrintTypes != nil {
		cfg.PrintTypes = *f.PrintTypes
	}
	if f.Lint != nil {
		cfg.Lint = *f.Lint
	}
	if f.REPL == nil {
		return cfg
	}
	if f.REPL.HistoryFile != nil {
		cfg.REPL.HistoryFile = strings.TrimSpace(*f.REPL.HistoryFile)
	}
	if f.REPL.Prompt != nil {
		cfg.REPL.Prompt = *f.REPL.Prompt
	}
	if f.REPL.ContinuationPrompt != nil {
		cfg.REPL.ContinuationPrompt = *f.REPL.ContinuationPrompt
	}
	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	prompts := []struct{ key, value string }{
		{"repl.prompt", c.REPL.Prompt},
		{"repl.continuation_prompt", c.REPL.ContinuationPrompt},
	}
	for _, p := range prompts {
		if p.value == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s must be a non-empty string", p.key))
		} else if strings.ContainsAny(p.value, "\r\n") {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s must fit on one line", p.key))
		}
	}

	history := c.REPL.HistoryFile
	if strings.HasPrefix(history, "~") && !strings.HasPrefix(history, "~/") {
		errs.Issues = append(errs.Issues, fmt.Sprintf("repl.history_file %q: only ~/ is expanded", history))
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// expandHome resolves a leading ~/ in the history file path
func (c *Config) expandHome() error {
	path := c.REPL.HistoryFile
	if !strings.HasPrefix(path, "~/") {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	c.REPL.HistoryFile = filepath.Join(home, strings.TrimPrefix(path, "~/"))
	return nil
}
