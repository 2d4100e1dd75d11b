package journal

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// DefaultMaxStories applies to endeavors listed without a story limit.
const DefaultMaxStories = 2

// StoryDir is an endeavor directory and its story files in priority order.
type StoryDir struct {
	Path       string
	MaxStories int
	Stories    []string
}

// Name returns the endeavor name, the base name of the directory.
func (s *StoryDir) Name() string {
	return filepath.Base(s.Path)
}

// LoadStoryDir lists the story files of dir. Files named in a prioritized.md
// come first in that order; the remaining stories follow sorted by name.
func LoadStoryDir(dir string, logger *slog.Logger) (*StoryDir, error) {
	if logger == nil {
		logger = slog.Default()
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("story dir %s: %w", dir, ErrNotDirectory)
	}
	all, err := FileNamesByPattern(dir, StoryGlob)
	if err != nil {
		return nil, err
	}
	priority, err := FileNamesByPattern(dir, PriorityGlob)
	if err != nil {
		return nil, err
	}

	sd := &StoryDir{Path: dir, MaxStories: DefaultMaxStories}
	if len(priority) > 0 {
		text, err := ReadFileString(priority[0])
		if err != nil {
			return nil, err
		}
		for _, line := range strings.Split(text, "\n") {
			name := strings.TrimSpace(line)
			if name == "" {
				continue
			}
			path := filepath.Join(dir, name)
			if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
				logger.Warn("Prioritized story not found",
					slog.String("story", name), slog.String("priority_file", priority[0]))
				continue
			}
			if !slices.Contains(sd.Stories, path) {
				sd.Stories = append(sd.Stories, path)
			}
		}
	}
	for _, path := range all {
		if !slices.Contains(sd.Stories, path) {
			sd.Stories = append(sd.Stories, path)
		}
	}
	return sd, nil
}

// EndeavorEntry is one line of endeavors.md.
type EndeavorEntry struct {
	Name       string
	MaxStories int
}

// ParseEndeavors reads "name [maxStories]" lines. Blank lines and lines
// starting with # are skipped; a missing or bad limit means
// DefaultMaxStories.
func ParseEndeavors(text string) []EndeavorEntry {
	var entries []EndeavorEntry
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		e := EndeavorEntry{Name: fields[0], MaxStories: DefaultMaxStories}
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n >= 0 {
				e.MaxStories = n
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// LoadEndeavorStoryDirs returns the story directory of every endeavor listed
// in endeavors.md, preceded by the default endeavor unless it is listed. Listed endeavors whose
// directory is missing are logged and skipped.
func LoadEndeavorStoryDirs(p *Paths, logger *slog.Logger) ([]*StoryDir, error) {
	if logger == nil {
		logger = slog.Default()
	}
	text, err := ReadFileString(p.EndeavorFile)
	if err != nil {
		return nil, err
	}
	entries := ParseEndeavors(text)
	if !slices.ContainsFunc(entries, func(e EndeavorEntry) bool { return e.Name == DefaultEndeavorName }) {
		entries = append([]EndeavorEntry{{Name: DefaultEndeavorName, MaxStories: DefaultMaxStories}}, entries...)
	}
	logger.Debug("Endeavors loaded", slog.Int("count", len(entries)), slog.String("file", p.EndeavorFile))

	var dirs []*StoryDir
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		sd, err := LoadStoryDir(filepath.Join(p.EndeavorPath, e.Name), logger)
		if err != nil {
			logger.Warn("Skipping endeavor", slog.String("name", e.Name), slog.String("error", err.Error()))
			continue
		}
		sd.MaxStories = e.MaxStories
		dirs = append(dirs, sd)
	}
	return dirs, nil
}
