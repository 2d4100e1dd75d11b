package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/tlog/config"
	"github.com/c360studio/tlog/docsec"
	"github.com/c360studio/tlog/endeavor"
	"github.com/c360studio/tlog/journal"
	"github.com/c360studio/tlog/tldoc"
)

// Options configures a pipeline run.
type Options struct {
	// Config is required.
	Config *config.Config
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Now defaults to time.Now. It picks the journal day.
	Now func() time.Time
	// Metrics defaults to a fresh set.
	Metrics *Metrics
	// DebugLog tees debug records to the debug log file under the tmp root.
	DebugLog bool
}

// Result summarizes a run.
type Result struct {
	RunID        string
	Day          string
	LastBlotter  string
	BlotterPath  string
	ResolvedPath string

	Resolved      int
	Candidates    int
	SprintTasks   int
	Scheduled     int
	StoryWrites   int
	StoryRemovals int

	Commits []string
}

type runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	paths   *journal.Paths
	daily   journal.Daily
	repo    *journal.Repo
	docOpts []tldoc.Option
	res     *Result
}

// Run performs one daily pipeline run. Metrics are recorded whether or not
// the run succeeds, and written to the configured textfile.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("pipeline: config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: invalid config: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString()}

	paths, err := journal.NewPaths(opts.Config.Journal.Root, opts.Config.Journal.Tmp, opts.Config.EndeavorPath())
	if err != nil {
		opts.Metrics.observe(res, err)
		return nil, err
	}

	if opts.DebugLog {
		f, err := openDebugLog(paths.DebugLogFile)
		if err != nil {
			opts.Metrics.observe(res, err)
			return nil, err
		}
		defer f.Close()
		debug := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
		logger = slog.New(newTeeHandler(logger.Handler(), debug))
	}
	logger = logger.With(slog.String("run_id", res.RunID))

	r := &runner{
		cfg:     opts.Config,
		logger:  logger,
		paths:   paths,
		daily:   journal.NewDaily(paths.JournalPath, opts.Now()),
		docOpts: []tldoc.Option{tldoc.WithDefaultMaxTasks(opts.Config.Sprint.DefaultMaxTasks)},
		res:     res,
	}
	res.Day = r.daily.DayLabel()
	res.BlotterPath = r.daily.BlotterPath()
	res.ResolvedPath = r.daily.ResolvedPath()

	err = r.run(ctx)

	opts.Metrics.duration.Set(time.Since(start).Seconds())
	opts.Metrics.lastRun.Set(float64(opts.Now().Unix()))
	opts.Metrics.observe(res, err)
	if path := opts.Config.Metrics.Textfile; path != "" {
		if werr := opts.Metrics.WriteTextfile(path); werr != nil {
			logger.Warn("Failed to write metrics", slog.String("path", path), slog.String("error", werr.Error()))
		}
	}
	if err != nil {
		logger.Error("Pipeline run failed", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Pipeline run complete",
		slog.String("blotter", res.BlotterPath),
		slog.Int("candidates", res.Candidates),
		slog.Int("sprint_tasks", res.SprintTasks),
		slog.Int("scheduled", res.Scheduled),
		slog.Int("resolved", res.Resolved))
	return res, nil
}

func openDebugLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create debug log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return f, nil
}

func (r *runner) run(ctx context.Context) error {
	if err := r.prepareDirs(); err != nil {
		return err
	}
	if r.cfg.Git.Enabled {
		repo, err := journal.OpenOrInitRepo(r.paths.JournalPath)
		if err != nil {
			return err
		}
		r.repo = repo
	}

	old, err := r.loadLastBlotter()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	blotter, err := tldoc.New(tldoc.WithDay(r.daily.DayLabel()))
	if err != nil {
		return err
	}
	if old != nil {
		if err := r.processWorkDone(ctx, old, blotter); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.planDay(blotter)
}

func (r *runner) prepareDirs() error {
	for _, dir := range []string{
		r.daily.MonthDir(),
		r.paths.OldJournalDir,
		r.paths.DefaultEndeavorDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// loadLastBlotter returns the newest blotter of the most recent month
// directory with journal data, or nil when there is none.
func (r *runner) loadLastBlotter() (*tldoc.Document, error) {
	found := journal.FindPrevJournalDir(r.daily.MonthDir(), r.cfg.Journal.LookBackMonths)
	switch found.Status {
	case journal.SearchFailed:
		return nil, fmt.Errorf("find last journal dir: %s", found.Message)
	case journal.SearchStop:
		r.logger.Info(found.Message)
		return nil, nil
	}
	blotters, err := journal.FileNamesByPattern(found.Dir, journal.BlotterGlob)
	if err != nil {
		return nil, err
	}
	opts := append([]tldoc.Option{tldoc.WithDay(r.daily.DayLabel())}, r.docOpts...)
	if len(blotters) == 0 {
		r.logger.Info("No blotter in last journal dir", slog.String("dir", found.Dir))
		return tldoc.New(opts...)
	}
	r.res.LastBlotter = blotters[len(blotters)-1]
	r.logger.Debug("Loading last blotter", slog.String("path", r.res.LastBlotter))
	return endeavor.LoadDocument(r.res.LastBlotter, opts...)
}

// processWorkDone archives the resolved work of the old blotter and writes
// every task it holds back to its story.
func (r *runner) processWorkDone(ctx context.Context, old, blotter *tldoc.Document) error {
	writeBack := copyItems(old.UnresolvedList())
	writeBack = append(writeBack, copyItems(old.DocumentMatchingList(tldoc.ScheduledPattern))...)

	resolvedFile, err := endeavor.LoadDocument(r.daily.ResolvedPath())
	if err != nil {
		return err
	}
	blotter.AddSectionListItemsToScrum(resolvedFile.Sections())

	inProgress := old.SelectAndFlipItemsByPattern(tldoc.InProgressPattern, tldoc.UnfinishedTop)
	resolved := old.DocumentMatchingList(tldoc.ResolvedPattern)
	blotter.AddListItemsToScrum(resolved)
	blotter.AddListItemsToScrum(old.DocumentMatchingList(tldoc.UnfinishedPattern))

	resolvedHeading := tldoc.ResolvedHeading(r.daily.DayLabel())
	resolvedText, err := blotter.ScrumString(resolvedHeading)
	if err != nil {
		return err
	}
	if _, err := journal.WriteDirFile(resolvedText+"\n", r.daily.ResolvedDir(), r.daily.ResolvedFileName()); err != nil {
		return err
	}
	r.res.Resolved = blotter.Scrum().Section(resolvedHeading).NumItems()

	// Unfinished work stays on today's list.
	blotter.AddListItemsToScrum(inProgress)

	for _, item := range writeBack {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := endeavor.WriteItemToStoryFile(item, r.paths.NewTaskStoryFile, ""); err != nil {
			return err
		}
		r.res.StoryWrites++
	}
	// Resolved tasks are written once so the commit records them in their
	// story, then removed.
	for _, item := range resolved {
		if _, ok := item.Attrib(tldoc.StorySourceAttr); !ok {
			continue
		}
		if _, err := endeavor.WriteItemToStoryFile(item, "", ""); err != nil {
			return err
		}
		r.res.StoryWrites++
	}
	if err := r.commit("data written to stories and resolved file from " + filepath.Base(r.res.LastBlotter)); err != nil {
		return err
	}
	for _, item := range resolved {
		removed, err := endeavor.RemoveItemFromStoryFile(item)
		if errors.Is(err, endeavor.ErrNoStorySource) {
			r.logger.Debug("Resolved task has no story", slog.String("task", item.Top))
			continue
		}
		if err != nil {
			return err
		}
		if removed {
			r.res.StoryRemovals++
		}
	}
	return nil
}

// planDay fills the to do and scheduled sections from the endeavor stories
// and writes the new blotter.
func (r *runner) planDay(blotter *tldoc.Document) error {
	dirs, err := journal.LoadEndeavorStoryDirs(r.paths, r.logger)
	if err != nil {
		return err
	}
	groups, err := endeavor.LoadStoryGroups(dirs, r.logger, r.docOpts...)
	if err != nil {
		return err
	}

	var candidates, scheduled []*docsec.Item
	for _, g := range groups {
		for _, doc := range g.Docs {
			candidates = append(candidates, doc.LimitedTasksFromUnresolvedList()...)
			scheduled = append(scheduled, doc.DocumentMatchingList(tldoc.ScheduledPattern)...)
		}
	}
	r.res.Candidates = len(candidates)
	sprint := candidates
	if size := r.cfg.Sprint.Size; size < len(sprint) {
		sprint = sprint[:size]
	}
	blotter.AddListItemsToScrum(sprint)
	blotter.AddListItemsToScrum(scheduled)

	stale, err := journal.FileNamesByPattern(r.daily.MonthDir(), journal.BlotterGlob)
	if err != nil {
		return err
	}
	if len(stale) > 0 {
		if err := journal.MoveFiles(r.paths.OldJournalDir, stale); err != nil {
			return err
		}
		r.logger.Debug("Moved old blotters", slog.Int("count", len(stale)), slog.String("to", r.paths.OldJournalDir))
	}

	day := r.daily.DayLabel()
	toDo, sched := tldoc.ToDoHeading(day), tldoc.ScheduledHeading(day)
	text, err := blotter.ScrumString(toDo, sched)
	if err != nil {
		return err
	}
	if _, err := journal.WriteDirFile(text+"\n", r.daily.MonthDir(), r.daily.BlotterFileName()); err != nil {
		return err
	}
	r.res.SprintTasks = blotter.Scrum().Section(toDo).NumItems()
	r.res.Scheduled = blotter.Scrum().Section(sched).NumItems()
	r.logger.Debug("Sprint planned",
		slog.Int("candidates", r.res.Candidates),
		slog.Int("sprint_size", r.cfg.Sprint.Size),
		slog.Int("sprint_tasks", r.res.SprintTasks))

	return r.commit("task blotter sprint written to " + r.daily.BlotterFileName())
}

func (r *runner) commit(message string) error {
	if r.repo == nil {
		return nil
	}
	hash, err := r.repo.CommitAll(message, journal.Author{
		Name:  r.cfg.Git.AuthorName,
		Email: r.cfg.Git.AuthorEmail,
	})
	if err != nil {
		return err
	}
	if hash != "" {
		r.res.Commits = append(r.res.Commits, hash)
		r.logger.Debug("Committed journal", slog.String("hash", hash), slog.String("message", message))
	}
	return nil
}

func copyItems(items []*docsec.Item) []*docsec.Item {
	out := make([]*docsec.Item, len(items))
	for i, item := range items {
		out[i] = item.DeepCopy()
	}
	return out
}
