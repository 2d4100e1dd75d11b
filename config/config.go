// Package config provides configuration loading and management for tlog.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tlog configuration
type Config struct {
	Journal JournalConfig `yaml:"journal"`
	Sprint  SprintConfig  `yaml:"sprint"`
	Git     GitConfig     `yaml:"git"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// JournalConfig locates the journal tree and scratch space
type JournalConfig struct {
	// Root holds YYYY/MM month directories (env JOURNAL_PATH)
	Root string `yaml:"root"`
	// Tmp holds old blotters and the debug log (env TLOG_TMP)
	Tmp string `yaml:"tmp"`
	// EndeavorDir holds endeavors.md and one directory per endeavor
	// (default: <root>/Endeavors)
	EndeavorDir string `yaml:"endeavor_dir"`
	// LookBackMonths bounds the search for the last blotter
	LookBackMonths int `yaml:"look_back_months"`
}

// SprintConfig sizes the daily to-do list
type SprintConfig struct {
	// Size is the number of story tasks taken into a day
	Size int `yaml:"size"`
	// DefaultMaxTasks applies to stories without a maxTasks attribute. Zero
	// means unset; layers cannot lower it below one.
	DefaultMaxTasks int `yaml:"default_max_tasks"`
	// Domain names the task domain in exports
	Domain string `yaml:"domain"`
}

// GitConfig controls commits of the journal tree
type GitConfig struct {
	Enabled     bool   `yaml:"enabled"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// MetricsConfig configures run metrics export
type MetricsConfig struct {
	// Textfile is a Prometheus textfile path written after each run (empty = off)
	Textfile string `yaml:"textfile"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Journal: JournalConfig{
			Root:           filepath.Join(home, "journal"),
			Tmp:            filepath.Join(home, "tmp", "tlog"),
			EndeavorDir:    "", // <root>/Endeavors
			LookBackMonths: 24,
		},
		Sprint: SprintConfig{
			Size:            5,
			DefaultMaxTasks: 1,
			Domain:          "tlog",
		},
		Git: GitConfig{
			Enabled:     true,
			AuthorName:  "tlog",
			AuthorEmail: "tlog@localhost",
		},
	}
}

// EndeavorPath returns the endeavor directory, defaulting under the journal root
func (c *Config) EndeavorPath() string {
	if c.Journal.EndeavorDir != "" {
		return c.Journal.EndeavorDir
	}
	return filepath.Join(c.Journal.Root, "Endeavors")
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.Root == "" {
		return fmt.Errorf("journal.root is required")
	}
	if c.Journal.Tmp == "" {
		return fmt.Errorf("journal.tmp is required")
	}
	if c.Journal.LookBackMonths < 1 {
		return fmt.Errorf("journal.look_back_months must be at least 1")
	}
	if c.Sprint.Size < 1 {
		return fmt.Errorf("sprint.size must be at least 1")
	}
	if c.Sprint.DefaultMaxTasks < 1 {
		return fmt.Errorf("sprint.default_max_tasks must be at least 1")
	}
	if c.Git.Enabled && (c.Git.AuthorName == "" || c.Git.AuthorEmail == "") {
		return fmt.Errorf("git.author_name and git.author_email are required when git is enabled")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values). A layer that disables git keeps it disabled.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Journal
	if other.Journal.Root != "" {
		c.Journal.Root = other.Journal.Root
	}
	if other.Journal.Tmp != "" {
		c.Journal.Tmp = other.Journal.Tmp
	}
	if other.Journal.EndeavorDir != "" {
		c.Journal.EndeavorDir = other.Journal.EndeavorDir
	}
	if other.Journal.LookBackMonths != 0 {
		c.Journal.LookBackMonths = other.Journal.LookBackMonths
	}

	// Sprint
	if other.Sprint.Size != 0 {
		c.Sprint.Size = other.Sprint.Size
	}
	if other.Sprint.DefaultMaxTasks != 0 {
		c.Sprint.DefaultMaxTasks = other.Sprint.DefaultMaxTasks
	}
	if other.Sprint.Domain != "" {
		c.Sprint.Domain = other.Sprint.Domain
	}

	// Git
	if !other.Git.Enabled {
		c.Git.Enabled = false
	}
	if other.Git.AuthorName != "" {
		c.Git.AuthorName = other.Git.AuthorName
	}
	if other.Git.AuthorEmail != "" {
		c.Git.AuthorEmail = other.Git.AuthorEmail
	}

	// Metrics
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}
}
