package docsec

import (
	"regexp"
	"strings"
)

type leaderEntry struct {
	pattern *regexp.Regexp
	section *Section
}

// DocStructure routes items into named sections by the leader of their top.
// Entries are matched in registration order, so the order of AddLeaderEntry
// calls sets classification priority.
type DocStructure struct {
	g *Grammar

	headings []string
	sections map[string]*Section
	leaders  []leaderEntry
}

// NewDocStructure creates an empty classifier for grammar g.
func NewDocStructure(g *Grammar) (*DocStructure, error) {
	if g == nil {
		return nil, internalf("NewDocStructure", "grammar is required")
	}
	return &DocStructure{
		g:        g,
		sections: make(map[string]*Section),
	}, nil
}

// AddLeaderEntry creates the section for heading and maps every pattern to
// it. Headings are write-once.
func (d *DocStructure) AddLeaderEntry(heading string, patterns ...string) error {
	if !d.g.IsHeading(heading) {
		return internalf("AddLeaderEntry", "malformed heading %q", heading)
	}
	if _, ok := d.sections[heading]; ok {
		return internalf("AddLeaderEntry", "heading %q already registered", heading)
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return internalf("AddLeaderEntry", "bad leader pattern %q: %v", p, err)
		}
		compiled = append(compiled, re)
	}
	section, err := NewSection(d.g, heading)
	if err != nil {
		return err
	}
	d.headings = append(d.headings, heading)
	d.sections[heading] = section
	for _, re := range compiled {
		d.leaders = append(d.leaders, leaderEntry{pattern: re, section: section})
	}
	return nil
}

// InsertItem merges item into the section of the first pattern matching its
// top and returns that section. It returns nil and inserts nothing when no
// pattern matches.
func (d *DocStructure) InsertItem(item *Item) *Section {
	for _, e := range d.leaders {
		if e.pattern.MatchString(item.Top) {
			e.section.AddItemMergeEnhanced(item)
			return e.section
		}
	}
	return nil
}

// Overlaps returns every heading with a pattern matching line, in
// registration order. More than one heading means InsertItem resolves the
// line by priority alone.
func (d *DocStructure) Overlaps(line string) []string {
	var out []string
	seen := make(map[*Section]bool)
	for _, e := range d.leaders {
		if seen[e.section] || !e.pattern.MatchString(line) {
			continue
		}
		seen[e.section] = true
		out = append(out, e.section.Header)
	}
	return out
}

// Section returns the section registered under heading, or nil.
func (d *DocStructure) Section(heading string) *Section {
	return d.sections[heading]
}

// LeaderSection returns the section a pattern was registered to, or nil. The
// pattern is compared by its source text.
func (d *DocStructure) LeaderSection(pattern string) *Section {
	for _, e := range d.leaders {
		if e.pattern.String() == pattern {
			return e.section
		}
	}
	return nil
}

// Headings returns the registered headings in registration order.
func (d *DocStructure) Headings() []string {
	return append([]string(nil), d.headings...)
}

// ReportString renders the named sections in the given order, separated by a
// blank line.
func (d *DocStructure) ReportString(headings ...string) (string, error) {
	parts := make([]string, 0, len(headings))
	for _, h := range headings {
		s, ok := d.sections[h]
		if !ok {
			return "", internalf("ReportString", "heading %q not registered", h)
		}
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "\n\n"), nil
}

// String renders every section in registration order.
func (d *DocStructure) String() string {
	out, _ := d.ReportString(d.headings...)
	return out
}
