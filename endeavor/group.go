package endeavor

import (
	"log/slog"

	"github.com/c360studio/tlog/journal"
	"github.com/c360studio/tlog/tldoc"
)

// StoryGroup is an endeavor directory together with its parsed, stamped
// story documents in priority order.
type StoryGroup struct {
	Dir   *journal.StoryDir
	Paths []string
	Docs  []*tldoc.Document
}

// LoadStoryGroup stamps and loads every story of dir with
// LoadAndResaveStory.
func LoadStoryGroup(dir *journal.StoryDir, logger *slog.Logger, opts ...tldoc.Option) (*StoryGroup, error) {
	if logger == nil {
		logger = slog.Default()
	}
	g := &StoryGroup{Dir: dir}
	for _, path := range dir.Stories {
		doc, written, err := LoadAndResaveStory(path, opts...)
		if err != nil {
			return nil, err
		}
		if written {
			logger.Debug("Story stamped", slog.String("story", path))
		}
		g.Paths = append(g.Paths, path)
		g.Docs = append(g.Docs, doc)
	}
	return g, nil
}

// LoadStoryGroups loads a StoryGroup for every directory.
func LoadStoryGroups(dirs []*journal.StoryDir, logger *slog.Logger, opts ...tldoc.Option) ([]*StoryGroup, error) {
	groups := make([]*StoryGroup, 0, len(dirs))
	for _, dir := range dirs {
		g, err := LoadStoryGroup(dir, logger, opts...)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Name returns the endeavor name.
func (g *StoryGroup) Name() string { return g.Dir.Name() }

// AsEndeavor builds the export model of the group. Each story lists its
// unresolved tasks.
func (g *StoryGroup) AsEndeavor() Endeavor {
	e := NewEndeavor(g.Name(), g.Dir.MaxStories)
	for idx, doc := range g.Docs {
		name := doc.StoryName()
		if name == "" {
			name = StoryName(g.Paths[idx])
		}
		story := e.AddStory(name, doc.MaxTasks())
		for _, item := range doc.UnresolvedList() {
			story.AddTask(tldoc.FindStatusName(item.Leader()), item.Title(), item.Detail())
		}
	}
	return e
}
