package tldoc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/c360studio/tlog/docsec"
)

// Document attribute keys.
const (
	DocNameAttr     = "DocName"
	MaxTasksAttr    = "maxTasks"
	StoryNameAttr   = "storyName"
	StorySourceAttr = "storySource"
)

// DefaultMaxTasks is the number of tasks a story contributes to a sprint when
// it has no maxTasks attribute.
const DefaultMaxTasks = 1

// DefaultNewItemsHeading receives items pushed into a document that has no
// matching item yet.
const DefaultNewItemsHeading = "# New items"

var blankLine = regexp.MustCompile(`^\s*$`)

// Document is a journal of sections parsed from text, plus a scrum view that
// regroups items by status under day headings.
type Document struct {
	g    *docsec.Grammar
	name string
	day  string

	defaultMaxTasks int

	journal []*docsec.Section
	scrum   *docsec.DocStructure
}

// Option configures a Document.
type Option func(*Document)

// WithDay sets the day label used in scrum headings, e.g. "Sun 21st".
func WithDay(day string) Option {
	return func(d *Document) { d.day = day }
}

// WithName sets a display name. It is not written to the text; see
// SetDocName for the persisted name.
func WithName(name string) Option {
	return func(d *Document) { d.name = name }
}

// WithGrammar replaces DefaultGrammar.
func WithGrammar(g *docsec.Grammar) Option {
	return func(d *Document) { d.g = g }
}

// WithDefaultMaxTasks sets the MaxTasks fallback used when the document has
// no usable maxTasks attribute.
func WithDefaultMaxTasks(n int) Option {
	return func(d *Document) {
		if n >= 0 {
			d.defaultMaxTasks = n
		}
	}
}

// New creates an empty document. journal[0] always exists.
func New(opts ...Option) (*Document, error) {
	d := &Document{g: DefaultGrammar, defaultMaxTasks: DefaultMaxTasks}
	for _, opt := range opts {
		opt(d)
	}
	if d.g == nil {
		return nil, &docsec.InternalError{Op: "tldoc.New", Msg: "grammar is required"}
	}
	scrum, err := newScrum(d.g, d.day)
	if err != nil {
		return nil, err
	}
	d.scrum = scrum
	if _, err := d.addSection(""); err != nil {
		return nil, err
	}
	return d, nil
}

// FromLines creates a document and ingests lines with AddLines.
func FromLines(lines []string, opts ...Option) (*Document, error) {
	d, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := d.AddLines(lines); err != nil {
		return nil, err
	}
	return d, nil
}

// FromText creates a document from multiline text. Empty text gives an empty
// document.
func FromText(text string, opts ...Option) (*Document, error) {
	if text == "" {
		return New(opts...)
	}
	return FromLines(strings.Split(text, "\n"), opts...)
}

func newScrum(g *docsec.Grammar, day string) (*docsec.DocStructure, error) {
	s, err := docsec.NewDocStructure(g)
	if err != nil {
		return nil, err
	}
	if err := s.AddLeaderEntry(ResolvedHeading(day), AbandonedLeader, CompletedLeader, UnfinishedLeader); err != nil {
		return nil, err
	}
	if err := s.AddLeaderEntry(ToDoHeading(day), InProgressLeader, DoLeader); err != nil {
		return nil, err
	}
	if err := s.AddLeaderEntry(ScheduledHeading(day), ScheduledLeader); err != nil {
		return nil, err
	}
	return s, nil
}

// ResolvedHeading returns the scrum heading for resolved tasks on day.
func ResolvedHeading(day string) string { return dayHeading("# Resolved", day) }

// ToDoHeading returns the scrum heading for tasks to work on day.
func ToDoHeading(day string) string { return dayHeading("# To Do", day) }

// ScheduledHeading returns the scrum heading for scheduled tasks.
func ScheduledHeading(day string) string { return dayHeading("# Scheduled", day) }

func dayHeading(prefix, day string) string {
	return strings.TrimSpace(prefix + " " + day)
}

// Grammar returns the grammar the document parses with.
func (d *Document) Grammar() *docsec.Grammar { return d.g }

// Name returns the display name given with WithName.
func (d *Document) Name() string { return d.name }

// Day returns the day label used in scrum headings.
func (d *Document) Day() string { return d.day }

// Sections returns the journal sections. The slice is a copy.
func (d *Document) Sections() []*docsec.Section {
	return append([]*docsec.Section(nil), d.journal...)
}

func (d *Document) current() *docsec.Section {
	return d.journal[len(d.journal)-1]
}

func (d *Document) addSection(line string) (*docsec.Section, error) {
	s, err := docsec.NewSection(d.g, line)
	if err != nil {
		return nil, err
	}
	d.journal = append(d.journal, s)
	return s, nil
}

// AddLines ingests raw lines. Trailing newlines are stripped and runs of blank
// lines collapse to a single blank line.
func (d *Document) AddLines(lines []string) error {
	prevBlank := false
	for _, line := range lines {
		if blankLine.MatchString(line) {
			if prevBlank {
				continue
			}
			prevBlank = true
		} else {
			prevBlank = false
		}
		if err := d.AddLine(strings.TrimRight(line, "\n")); err != nil {
			return err
		}
	}
	return nil
}

// AddLine ingests one line. A heading is absorbed by a still empty current
// section, otherwise it opens a new one. Every other line goes to the
// current section.
func (d *Document) AddLine(line string) error {
	cur := d.current()
	if d.g.IsHeading(line) && !cur.IsEmpty() {
		_, err := d.addSection(line)
		return err
	}
	return cur.AddLine(line)
}

// DocAttrib returns a document attribute. They live on journal[0] when it has
// no header.
func (d *Document) DocAttrib(key string) (string, bool) {
	if d.journal[0].Header != "" {
		return "", false
	}
	return d.journal[0].SectionAttrib(key)
}

// SetDocAttrib stores a document attribute. When journal[0] already holds
// content a new attribute section is inserted in front of it so the content
// is kept verbatim.
func (d *Document) SetDocAttrib(key, val string) error {
	if d.journal[0].IsAttribSection() {
		d.journal[0].SetSectionAttrib(key, val)
		return nil
	}
	s, err := docsec.NewSection(d.g, "")
	if err != nil {
		return err
	}
	s.SetSectionAttrib(key, val)
	d.journal = append([]*docsec.Section{s}, d.journal...)
	return nil
}

// DocName returns the DocName attribute.
func (d *Document) DocName() string {
	v, _ := d.DocAttrib(DocNameAttr)
	return v
}

// SetDocName sets the DocName attribute.
func (d *Document) SetDocName(name string) error { return d.SetDocAttrib(DocNameAttr, name) }

// MaxTasks returns the maxTasks attribute, or the default (DefaultMaxTasks
// unless WithDefaultMaxTasks changed it) when it is missing or not a
// non-negative integer.
func (d *Document) MaxTasks() int {
	v, ok := d.DocAttrib(MaxTasksAttr)
	if !ok {
		return d.defaultMaxTasks
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return d.defaultMaxTasks
	}
	return n
}

// SetMaxTasks sets the maxTasks attribute.
func (d *Document) SetMaxTasks(n int) error {
	return d.SetDocAttrib(MaxTasksAttr, strconv.Itoa(n))
}

// StoryName returns the storyName attribute.
func (d *Document) StoryName() string {
	v, _ := d.DocAttrib(StoryNameAttr)
	return v
}

// SetStoryName sets the storyName attribute.
func (d *Document) SetStoryName(name string) error { return d.SetDocAttrib(StoryNameAttr, name) }

// String renders the journal. Empty sections are skipped and the rest are
// joined by single newlines.
func (d *Document) String() string {
	parts := make([]string, 0, len(d.journal))
	for _, s := range d.journal {
		if !s.IsEmpty() {
			parts = append(parts, s.String())
		}
	}
	return strings.Join(parts, "\n")
}
