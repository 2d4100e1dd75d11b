package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "tlog.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/tlog"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"

	// EnvJournalPath overrides journal.root
	EnvJournalPath = "JOURNAL_PATH"
	// EnvTmp overrides journal.tmp
	EnvTmp = "TLOG_TMP"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger

	explicit string
	getenv   func(string) string
	workDir  func() (string, error)
	homeDir  func() (string, error)
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:  logger,
		getenv:  os.Getenv,
		workDir: os.Getwd,
		homeDir: os.UserHomeDir,
	}
}

// WithFile makes Load read path instead of searching for a project config.
// A missing explicit file is an error.
func (l *Loader) WithFile(path string) *Loader {
	l.explicit = path
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/tlog/config.yaml)
// 3. Project config (tlog.yaml in current or parent directories, or the
// file given to WithFile)
// 4. Environment variables JOURNAL_PATH and TLOG_TMP
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfigPath != "" {
		if userConfig, err := loadLayer(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	if l.explicit != "" {
		fileConfig, err := loadLayer(l.explicit)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", l.explicit))
		config.Merge(fileConfig)
	} else if projectConfigPath := l.findProjectConfig(); projectConfigPath != "" {
		if projectConfig, err := loadLayer(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if v := l.getenv(EnvJournalPath); v != "" {
		config.Journal.Root = v
		l.logger.Debug("Journal root from environment", slog.String("path", v))
	}
	if v := l.getenv(EnvTmp); v != "" {
		config.Journal.Tmp = v
		l.logger.Debug("Tmp dir from environment", slog.String("path", v))
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()
	if userConfigPath == "" {
		return fmt.Errorf("no home directory for user config")
	}

	if _, err := os.Stat(userConfigPath); err == nil {
		return nil
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := l.homeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for tlog.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := l.workDir()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// loadLayer reads a config file without defaults so that only the keys it
// sets take part in Merge.
func loadLayer(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	layer := &Config{Git: GitConfig{Enabled: true}}
	if err := yaml.Unmarshal(data, layer); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return layer, nil
}
