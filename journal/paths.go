package journal

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultEndeavorName is the endeavor that always exists, even when
// endeavors.md does not list it.
const DefaultEndeavorName = "default"

// File names within the journal tree.
const (
	EndeavorFileName     = "endeavors.md"
	NewTaskStoryFileName = "new task story.md"
	OldJournalDirName    = "old"
	DebugLogFileName     = "tl.debug.log"
)

// Paths locates the journal tree and its companions. Nothing is created.
type Paths struct {
	JournalPath      string
	EndeavorPath     string
	EndeavorFile     string
	NewTaskStoryFile string
	TmpRoot          string
	OldJournalDir    string
	DebugLogFile     string
}

// NewPaths verifies that journalRoot is a directory and derives the rest.
// An empty endeavorDir defaults to <journalRoot>/Endeavors.
func NewPaths(journalRoot, tmpRoot, endeavorDir string) (*Paths, error) {
	info, err := os.Stat(journalRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("journal root %s: %w", journalRoot, ErrNotDirectory)
	}
	if endeavorDir == "" {
		endeavorDir = filepath.Join(journalRoot, "Endeavors")
	}
	return &Paths{
		JournalPath:      journalRoot,
		EndeavorPath:     endeavorDir,
		EndeavorFile:     filepath.Join(endeavorDir, EndeavorFileName),
		NewTaskStoryFile: filepath.Join(endeavorDir, DefaultEndeavorName, NewTaskStoryFileName),
		TmpRoot:          tmpRoot,
		OldJournalDir:    filepath.Join(tmpRoot, OldJournalDirName),
		DebugLogFile:     filepath.Join(tmpRoot, DebugLogFileName),
	}, nil
}

// DefaultEndeavorDir is the directory of the default endeavor.
func (p *Paths) DefaultEndeavorDir() string {
	return filepath.Join(p.EndeavorPath, DefaultEndeavorName)
}

func (p *Paths) String() string {
	return fmt.Sprintf("JournalPath: %s\nEndeavorFilePath: %s", p.JournalPath, p.EndeavorFile)
}
