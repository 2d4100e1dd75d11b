package endeavor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/c360studio/tlog/docsec"
	"github.com/c360studio/tlog/journal"
	"github.com/c360studio/tlog/tldoc"
)

// DefaultAddedTasksHeading receives items written into a story that does not
// hold them yet.
const DefaultAddedTasksHeading = "# Added Tasks"

// LoadDocument parses the file at path. A missing file gives an empty
// document.
func LoadDocument(path string, opts ...tldoc.Option) (*tldoc.Document, error) {
	text, err := journal.ReadFileString(path)
	if err != nil {
		return nil, err
	}
	doc, err := tldoc.FromText(text, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// SaveDocument writes doc to path unless the file already holds the same
// text. It reports whether the file was written.
func SaveDocument(doc *tldoc.Document, path string) (bool, error) {
	return journal.WriteDirFile(doc.String(), filepath.Dir(path), filepath.Base(path))
}

// StoryName is the story name of a story file: its base name without the
// .md suffix.
func StoryName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), journal.StorySuffix)
}

// LoadAndResaveStory loads a story file and writes it back enriched: every
// unresolved or scheduled task gets a storySource pointing at path, every
// titled item gets a title hash, and the document gets a storyName.
// Unchanged files are not rewritten.
func LoadAndResaveStory(path string, opts ...tldoc.Option) (*tldoc.Document, bool, error) {
	doc, err := LoadDocument(path, opts...)
	if err != nil {
		return nil, false, err
	}
	doc.AttributeAllUnresolvedItems(tldoc.StorySourceAttr, path)
	for _, item := range doc.DocumentMatchingList(tldoc.ScheduledPattern) {
		item.SetAttrib(tldoc.StorySourceAttr, path)
	}
	doc.AddAllMissingItemTitleHashes()
	if name := StoryName(path); doc.StoryName() != name {
		if err := doc.SetStoryName(name); err != nil {
			return nil, false, err
		}
	}
	written, err := SaveDocument(doc, path)
	if err != nil {
		return nil, false, err
	}
	return doc, written, nil
}

// WriteItemToStoryFile inserts or updates item in the story named by its
// storySource attribute. An item without one goes to defaultFile and is
// stamped with it. New items land under heading, DefaultAddedTasksHeading
// when empty. It returns the story document as written.
func WriteItemToStoryFile(item *docsec.Item, defaultFile, heading string) (*tldoc.Document, error) {
	path, ok := item.Attrib(tldoc.StorySourceAttr)
	if !ok || path == "" {
		if defaultFile == "" {
			return nil, fmt.Errorf("write %q: %w", item.Top, ErrNoStorySource)
		}
		path = defaultFile
		item.SetAttrib(tldoc.StorySourceAttr, path)
	}
	if heading == "" {
		heading = DefaultAddedTasksHeading
	}
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	if err := doc.InsertUpdateDocumentItem(item, heading); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", path, err)
	}
	if _, err := SaveDocument(doc, path); err != nil {
		return nil, err
	}
	return doc, nil
}

// RemoveItemFromStoryFile removes item from the story named by its
// storySource attribute and reports whether the story held it.
func RemoveItemFromStoryFile(item *docsec.Item) (bool, error) {
	path, ok := item.Attrib(tldoc.StorySourceAttr)
	if !ok || path == "" {
		return false, fmt.Errorf("remove %q: %w", item.Top, ErrNoStorySource)
	}
	doc, err := LoadDocument(path)
	if err != nil {
		return false, err
	}
	if !doc.RemoveDocumentItem(item) {
		return false, nil
	}
	if _, err := SaveDocument(doc, path); err != nil {
		return false, err
	}
	return true, nil
}
