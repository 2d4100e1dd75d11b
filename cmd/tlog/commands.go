package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/tlog/endeavor"
	"github.com/c360studio/tlog/journal"
	"github.com/c360studio/tlog/pipeline"
	"github.com/c360studio/tlog/tldoc"
	"github.com/c360studio/tlog/watch"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runCmd(c *cli) *cobra.Command {
	var noGit, debugLog bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Archive yesterday's work and write today's blotter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if noGit {
				cfg.Git.Enabled = false
			}

			ctx, cancel := signalContext()
			defer cancel()

			res, err := pipeline.Run(ctx, pipeline.Options{
				Config:   cfg,
				Logger:   c.logger,
				DebugLog: debugLog,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total backlog: %d configured sprint size: %d sprint items: %d\n",
				res.Candidates, cfg.Sprint.Size, res.SprintTasks)
			fmt.Fprintf(out, "The task blotter file is: %s\n", res.BlotterPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noGit, "no-git", false, "Do not commit the journal tree")
	cmd.Flags().BoolVar(&debugLog, "debug-log", true, "Append debug records to the debug log file")
	return cmd
}

func fmtCmd(c *cli) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt FILE...",
		Short: "Rewrite task documents in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var unformatted int
			for _, path := range args {
				text, err := journal.ReadFileString(path)
				if err != nil {
					return err
				}
				doc, err := tldoc.FromText(text)
				if err != nil {
					return fmt.Errorf("parse %s: %w", path, err)
				}
				if doc.String() == text {
					continue
				}
				if check {
					unformatted++
					fmt.Fprintln(cmd.OutOrStdout(), path)
					continue
				}
				if _, err := endeavor.SaveDocument(doc, path); err != nil {
					return err
				}
				c.logger.Info("Formatted", "path", path)
			}
			if unformatted > 0 {
				return fmt.Errorf("%d file(s) not in canonical form", unformatted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "List files that would change and fail instead of writing")
	return cmd
}

func scrumCmd(c *cli) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "scrum FILE",
		Short: "Print a document regrouped into resolved, to do and scheduled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if day == "" {
				day = journal.NewDaily("", time.Now()).DayLabel()
			}
			doc, err := endeavor.LoadDocument(args[0], tldoc.WithDay(day))
			if err != nil {
				return err
			}
			for _, item := range doc.AddSectionListItemsToScrum(doc.Sections()) {
				c.logger.Debug("Unclassified item", "top", item.Top)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.Scrum().String())
			return err
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day label for the headings (default today, e.g. \"Sun 21st\")")
	return cmd
}

func stampCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stamp FILE...",
		Short: "Add story source, title hash and story name attributes to story files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				_, written, err := endeavor.LoadAndResaveStory(path)
				if err != nil {
					return err
				}
				if written {
					fmt.Fprintf(cmd.OutOrStdout(), "stamped %s\n", path)
				}
			}
			return nil
		},
	}
}

func exportCmd(c *cli) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export endeavors, stories and open tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := endeavor.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			paths, err := journal.NewPaths(cfg.Journal.Root, cfg.Journal.Tmp, cfg.EndeavorPath())
			if err != nil {
				return err
			}
			dirs, err := journal.LoadEndeavorStoryDirs(paths, c.logger)
			if err != nil {
				return err
			}
			groups, err := endeavor.LoadStoryGroups(dirs, c.logger, tldoc.WithDefaultMaxTasks(cfg.Sprint.DefaultMaxTasks))
			if err != nil {
				return err
			}
			domain := endeavor.BuildDomain(cfg.Sprint.Domain, cfg.Sprint.Size, groups)

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}
			return endeavor.Encode(w, domain, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(endeavor.FormatJSON), "Output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func watchCmd(c *cli) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stamp story files as they are edited",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			w, err := watch.NewStoryWatcher(cfg.EndeavorPath(), watch.Config{
				DebounceDelay: debounce,
				DocOptions:    []tldoc.Option{tldoc.WithDefaultMaxTasks(cfg.Sprint.DefaultMaxTasks)},
			}, c.logger)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, cancel := signalContext()
			defer cancel()
			if err := w.Start(ctx); err != nil {
				return err
			}
			for path := range w.Stamped() {
				fmt.Fprintf(cmd.OutOrStdout(), "stamped %s\n", path)
			}
			c.logger.Info("Story watcher stopped", "stamped", w.StampCount())
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounceDelay, "Delay before changed stories are stamped")
	return cmd
}

func whereCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Print the journal paths in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			paths, err := journal.NewPaths(cfg.Journal.Root, cfg.Journal.Tmp, cfg.EndeavorPath())
			if err != nil {
				return err
			}
			today := journal.NewDaily(paths.JournalPath, time.Now())

			out := cmd.OutOrStdout()
			for _, row := range [][2]string{
				{"journal", paths.JournalPath},
				{"endeavors", paths.EndeavorPath},
				{"endeavor file", paths.EndeavorFile},
				{"new task story", paths.NewTaskStoryFile},
				{"blotter", today.BlotterPath()},
				{"resolved", today.ResolvedPath()},
				{"old blotters", paths.OldJournalDir},
				{"debug log", paths.DebugLogFile},
			} {
				fmt.Fprintf(out, "%-15s %s\n", row[0]+":", row[1])
			}
			return nil
		},
	}
}

func configCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the user config file with defaults if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.loader().EnsureUserConfig()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	})

	return cmd
}
