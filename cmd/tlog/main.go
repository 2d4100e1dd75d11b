// Package main provides the tlog binary entry point.
// Tlog keeps a daily task blotter planned from endeavor story files and
// archives resolved work in a git-tracked journal tree.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/tlog/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "tlog"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli holds the state shared by every subcommand.
type cli struct {
	configPath string
	logLevel   string
	logger     *slog.Logger
}

func rootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Daily task blotter over markdown story files",
		Long: `Tlog plans a daily task blotter from markdown story files.

Each run archives the tasks resolved since the last blotter, writes every
task back to the story it came from, and writes a new blotter with the top
tasks of each story. The journal tree is committed to git along the way.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.logger = newLogger(cmd, c.logLevel)
			slog.SetDefault(c.logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		runCmd(c),
		fmtCmd(c),
		scrumCmd(c),
		stampCmd(c),
		exportCmd(c),
		watchCmd(c),
		whereCmd(c),
		configCmd(c),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func newLogger(cmd *cobra.Command, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (c *cli) loader() *config.Loader {
	l := config.NewLoader(c.logger)
	if c.configPath != "" {
		l.WithFile(c.configPath)
	}
	return l
}

func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := c.loader().Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
