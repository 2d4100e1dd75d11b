package docsec

import (
	"regexp"
	"strings"
)

// Section is an optional heading followed by items. The body always holds at
// least one item, and the last one is the current item that ingestion feeds.
// Section attributes live on items[0] when that item has no top.
type Section struct {
	g *Grammar

	Header string
	items  []*Item
}

// NewSection creates a section and feeds it line when line is not empty.
func NewSection(g *Grammar, line string) (*Section, error) {
	if g == nil {
		return nil, internalf("NewSection", "grammar is required")
	}
	s := &Section{g: g, items: []*Item{newItem(g)}}
	if line != "" {
		if err := s.AddLine(line); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SectionFromText builds a section from multiline text.
func SectionFromText(g *Grammar, text string) (*Section, error) {
	s, err := NewSection(g, "")
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(text, "\n") {
		if err := s.AddLine(line); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newItem(g *Grammar) *Item {
	return &Item{g: g, attribs: make(map[string]Attribute)}
}

func (s *Section) current() *Item {
	return s.items[len(s.items)-1]
}

// AddLine feeds one line of text. A heading sets the header. An empty current
// item absorbs any other line; after that a top line starts a new item and
// everything else continues the current one.
func (s *Section) AddLine(line string) error {
	if s.g.IsHeading(line) {
		s.Header = line
		return nil
	}
	cur := s.current()
	if !cur.IsEmpty() && s.g.IsTop(line) {
		s.items = append(s.items, newItem(s.g))
		cur = s.current()
	}
	return cur.AddLine(line)
}

// Items returns the body items. The slice is a copy; the items are not.
func (s *Section) Items() []*Item {
	return append([]*Item(nil), s.items...)
}

// AddItem adds item without identity matching. It replaces the empty
// placeholder, or replaces the subs of every item whose non-empty top is
// literally equal, or else appends (prepends when headInsert is set).
func (s *Section) AddItem(item *Item, headInsert bool) {
	if len(s.items) == 1 && s.items[0].IsEmpty() {
		s.items[0] = item
		return
	}
	matched := false
	for _, existing := range s.items {
		if item.Top != "" && existing.Top == item.Top {
			existing.Subs = append([]string(nil), item.Subs...)
			matched = true
		}
	}
	if matched {
		return
	}
	if headInsert {
		s.items = append([]*Item{item}, s.items...)
		return
	}
	s.items = append(s.items, item)
}

// AddItemMergeEnhanced merges item into the first existing item with the same
// identity (saved title hash, else title), overwriting its content so the
// incoming item wins. Without a match the item is added with AddItem.
func (s *Section) AddItemMergeEnhanced(item *Item) {
	if existing := s.FindItem(item); existing != nil {
		existing.MergeFrom(item)
		return
	}
	s.AddItem(item, false)
}

// FindItem returns the first item with the same identity as item, or nil.
func (s *Section) FindItem(item *Item) *Item {
	for _, existing := range s.items {
		if existing.Matches(item) {
			return existing
		}
	}
	return nil
}

// RemoveItem removes the first item with the same identity as item. It reports
// false and changes nothing when there is no such item.
func (s *Section) RemoveItem(item *Item) bool {
	for idx, existing := range s.items {
		if !existing.Matches(item) {
			continue
		}
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		if len(s.items) == 0 {
			s.items = []*Item{newItem(s.g)}
		}
		return true
	}
	return false
}

// MatchingItems returns the items whose top matches pattern, in body order.
func (s *Section) MatchingItems(pattern *regexp.Regexp) []*Item {
	var out []*Item
	for _, item := range s.items {
		if pattern.MatchString(item.Top) {
			out = append(out, item)
		}
	}
	return out
}

// SelectAndFlipItemsByPattern returns copies of the items matching pattern as
// they were, then rewrites the matched leader of each original to
// replacement.
func (s *Section) SelectAndFlipItemsByPattern(pattern *regexp.Regexp, replacement string) []*Item {
	var out []*Item
	for _, item := range s.items {
		if !pattern.MatchString(item.Top) {
			continue
		}
		out = append(out, item.DeepCopy())
		item.ModifyTop(pattern, replacement)
	}
	return out
}

// ItemByAttrib returns the first item whose attribute key equals val.
func (s *Section) ItemByAttrib(key, val string) *Item {
	for _, item := range s.items {
		if v, ok := item.Attrib(key); ok && v == val {
			return item
		}
	}
	return nil
}

// SectionAttrib returns a section attribute. Only items[0] without a top can
// carry them.
func (s *Section) SectionAttrib(key string) (string, bool) {
	if s.items[0].Top != "" {
		return "", false
	}
	return s.items[0].Attrib(key)
}

// SetSectionAttrib stores a section attribute, inserting an attribute item at
// the head of the body when items[0] already has content.
func (s *Section) SetSectionAttrib(key, val string) {
	if s.items[0].IsAttribOnly() {
		s.items[0].SetAttrib(key, val)
		return
	}
	item := newItem(s.g)
	item.SetAttrib(key, val)
	s.items = append([]*Item{item}, s.items...)
}

// IsAttribSection reports a headerless section holding only attributes.
func (s *Section) IsAttribSection() bool {
	if s.Header != "" {
		return false
	}
	if !s.items[0].IsAttribOnly() {
		return false
	}
	for _, item := range s.items[1:] {
		if !item.IsEmpty() {
			return false
		}
	}
	return true
}

// IsEmpty reports a headerless section whose items are all empty.
func (s *Section) IsEmpty() bool {
	if s.Header != "" {
		return false
	}
	for _, item := range s.items {
		if !item.IsEmpty() {
			return false
		}
	}
	return true
}

// NumItems counts the non-empty items.
func (s *Section) NumItems() int {
	n := 0
	for _, item := range s.items {
		if !item.IsEmpty() {
			n++
		}
	}
	return n
}

// SaveItemTitleHashes saves the title hash of every item with content.
func (s *Section) SaveItemTitleHashes() {
	for _, item := range s.items {
		if !item.IsAttribOnly() {
			item.SaveTitleHash()
		}
	}
}

// AddAllMissingItemTitleHashes adds a title hash to every titled item that
// lacks one.
func (s *Section) AddAllMissingItemTitleHashes() {
	for _, item := range s.items {
		if item.Title() != "" {
			item.AddMissingTitleHash()
		}
	}
}

// DeepCopy copies the section and every item in it.
func (s *Section) DeepCopy() *Section {
	items := make([]*Item, len(s.items))
	for idx, item := range s.items {
		items[idx] = item.DeepCopy()
	}
	return &Section{g: s.g, Header: s.Header, items: items}
}

// BodyString renders the non-empty items joined by newlines. An item holding
// a single blank sub line still takes its line.
func (s *Section) BodyString() string {
	lines := make([]string, 0, len(s.items))
	for _, item := range s.items {
		if !item.IsEmpty() {
			lines = append(lines, item.String())
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Section) hasBody() bool {
	for _, item := range s.items {
		if !item.IsEmpty() {
			return true
		}
	}
	return false
}

// String renders the header and body.
func (s *Section) String() string {
	if s.Header != "" && s.hasBody() {
		return s.Header + "\n" + s.BodyString()
	}
	return s.Header + s.BodyString()
}
