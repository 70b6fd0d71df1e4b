package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackwu/notepad/textfile"
	"gopkg.in/yaml.v3"
)

// Config holds the editor settings read from config.yaml.
type Config struct {
	DefaultName     string        `yaml:"default_name"`
	LineEnding      string        `yaml:"line_ending"`
	Extensions      []string      `yaml:"extensions"`
	ShowLineNumbers bool          `yaml:"show_line_numbers"`
	LogFile         string        `yaml:"log_file"`
	History         HistoryConfig `yaml:"history"`
}

// HistoryConfig configures the recent-files list.
type HistoryConfig struct {
	Disabled bool   `yaml:"disabled"`
	Path     string `yaml:"path"`
	Limit    int    `yaml:"limit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := Dir()
	return &Config{
		DefaultName: "Untitled.txt",
		LineEnding:  "crlf",
		Extensions:  []string{".txt"},
		LogFile:     filepath.Join(dir, "notepad.log"),
		History: HistoryConfig{
			Path:  filepath.Join(dir, "history.db"),
			Limit: 10,
		},
	}
}

// Dir returns the config directory (~/.config/notepad).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notepad"
	}
	return filepath.Join(home, ".config", "notepad")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config at path, or at Path() when path is empty. A missing
// file yields the defaults; fields missing from the file are backfilled.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.merge(&fromFile)
	cfg.expand()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// merge copies the fields set in other over c.
func (c *Config) merge(other *Config) {
	if other.DefaultName != "" {
		c.DefaultName = other.DefaultName
	}
	if other.LineEnding != "" {
		c.LineEnding = other.LineEnding
	}
	if len(other.Extensions) > 0 {
		c.Extensions = other.Extensions
	}
	if other.ShowLineNumbers {
		c.ShowLineNumbers = true
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.History.Disabled {
		c.History.Disabled = true
	}
	if other.History.Path != "" {
		c.History.Path = other.History.Path
	}
	if other.History.Limit != 0 {
		c.History.Limit = other.History.Limit
	}
}

func (c *Config) expand() {
	c.LogFile = expandHome(c.LogFile)
	c.History.Path = expandHome(c.History.Path)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// Validate reports settings the editor cannot run with.
func (c *Config) Validate() error {
	if _, err := textfile.ParseLineEnding(c.LineEnding); err != nil {
		return err
	}
	if len(c.Extensions) == 0 {
		return errors.New("at least one extension is required")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.History.Limit)
	}
	return nil
}

// NewlineStyle returns the configured line ending for new documents.
func (c *Config) NewlineStyle() textfile.LineEnding {
	le, err := textfile.ParseLineEnding(c.LineEnding)
	if err != nil {
		return textfile.CRLF
	}
	return le
}

// Filter returns the text-file filter for the pickers.
func (c *Config) Filter() textfile.Filter {
	return textfile.Filter{Extensions: c.Extensions}
}

// Save writes cfg to path as YAML, creating the directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
