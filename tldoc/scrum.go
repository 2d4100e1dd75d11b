package tldoc

import "github.com/c360studio/tlog/docsec"

// Scrum returns the status-grouped view: resolved, to do and scheduled
// sections headed with the document day.
func (d *Document) Scrum() *docsec.DocStructure { return d.scrum }

// ScrumString renders the scrum sections in the order given.
func (d *Document) ScrumString(headings ...string) (string, error) {
	return d.scrum.ReportString(headings...)
}

// AddListItemsToScrum routes copies of items into the scrum by status. Task
// items no scrum section accepts are returned; empty and attribute-only items
// are skipped.
func (d *Document) AddListItemsToScrum(items []*docsec.Item) []*docsec.Item {
	var unclassified []*docsec.Item
	for _, item := range items {
		if item.IsAttribOnly() {
			continue
		}
		if d.scrum.InsertItem(item.DeepCopy()) == nil {
			unclassified = append(unclassified, item)
		}
	}
	return unclassified
}

// AddSectionItemsToScrum routes every item of s into the scrum.
func (d *Document) AddSectionItemsToScrum(s *docsec.Section) []*docsec.Item {
	return d.AddListItemsToScrum(s.Items())
}

// AddSectionListItemsToScrum routes every item of every section into the
// scrum.
func (d *Document) AddSectionListItemsToScrum(sections []*docsec.Section) []*docsec.Item {
	var unclassified []*docsec.Item
	for _, s := range sections {
		unclassified = append(unclassified, d.AddSectionItemsToScrum(s)...)
	}
	return unclassified
}
