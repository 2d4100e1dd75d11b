package tldoc

import (
	"regexp"
	"strconv"

	"github.com/c360studio/tlog/docsec"
)

// DocumentMatchingList returns every journal item whose top matches pattern,
// in document order.
func (d *Document) DocumentMatchingList(pattern *regexp.Regexp) []*docsec.Item {
	var out []*docsec.Item
	for _, s := range d.journal {
		out = append(out, s.MatchingItems(pattern)...)
	}
	return out
}

// UnresolvedList returns the in-progress and do items in document order.
func (d *Document) UnresolvedList() []*docsec.Item {
	return d.DocumentMatchingList(UnresolvedPattern)
}

// LimitedTasksFromUnresolvedList returns the first MaxTasks unresolved items:
// the tasks this document offers to a sprint.
func (d *Document) LimitedTasksFromUnresolvedList() []*docsec.Item {
	items := d.UnresolvedList()
	if n := d.MaxTasks(); n < len(items) {
		items = items[:n]
	}
	return items
}

// SelectAndFlipItemsByPattern returns copies of every item matching pattern
// and rewrites the leader of each original to replacement. Carrying
// in-progress work into a new day uses it to archive the task as it was and
// mark it unfinished in place.
func (d *Document) SelectAndFlipItemsByPattern(pattern *regexp.Regexp, replacement string) []*docsec.Item {
	var out []*docsec.Item
	for _, s := range d.journal {
		out = append(out, s.SelectAndFlipItemsByPattern(pattern, replacement)...)
	}
	return out
}

// InsertUpdateDocumentItem pushes item into the document. A matching item
// (saved title hash, else title) is overwritten in place, so the incoming
// item always wins. Otherwise item is added under defaultHeading, which is
// created at the end of the journal if no section has it.
func (d *Document) InsertUpdateDocumentItem(item *docsec.Item, defaultHeading string) error {
	for _, s := range d.journal {
		if existing := s.FindItem(item); existing != nil {
			existing.MergeFrom(item)
			return nil
		}
	}
	if defaultHeading == "" {
		defaultHeading = DefaultNewItemsHeading
	}
	for _, s := range d.journal {
		if s.Header == defaultHeading {
			s.AddItem(item, false)
			return nil
		}
	}
	if !d.g.IsHeading(defaultHeading) {
		return &docsec.InternalError{Op: "InsertUpdateDocumentItem", Msg: "malformed heading " + strconv.Quote(defaultHeading)}
	}
	s, err := d.addSection(defaultHeading)
	if err != nil {
		return err
	}
	s.AddItem(item, false)
	return nil
}

// RemoveDocumentItem removes the first item matching item, searching sections
// in order. It reports whether anything was removed.
func (d *Document) RemoveDocumentItem(item *docsec.Item) bool {
	for _, s := range d.journal {
		if s.RemoveItem(item) {
			return true
		}
	}
	return false
}

// AttributeAllUnresolvedItems sets key on every unresolved item, e.g. the
// story file a task was read from.
func (d *Document) AttributeAllUnresolvedItems(key, val string) {
	for _, item := range d.UnresolvedList() {
		item.SetAttrib(key, val)
	}
}

// AddAllMissingItemTitleHashes stamps a title hash on every titled item that
// has none.
func (d *Document) AddAllMissingItemTitleHashes() {
	for _, s := range d.journal {
		s.AddAllMissingItemTitleHashes()
	}
}
