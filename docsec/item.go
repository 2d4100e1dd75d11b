package docsec

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"
)

// TitleHashAttr is the attribute that stores an item's original title hash.
const TitleHashAttr = "titleHash"

// titleHashLen is the number of hex characters kept from the MD5 digest.
const titleHashLen = 10

// Item is one task: a top line with a leader, its attributes and the free
// text lines that follow it. An item without a top holds leading free text or
// section attributes.
type Item struct {
	g *Grammar

	Top  string
	Subs []string

	attribs map[string]Attribute
}

// NewItem creates an item and feeds it line when line is not empty.
func NewItem(g *Grammar, line string) (*Item, error) {
	if g == nil {
		return nil, internalf("NewItem", "grammar is required")
	}
	item := &Item{g: g, attribs: make(map[string]Attribute)}
	if line != "" {
		if err := item.AddLine(line); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// ItemFromText builds an item from multiline text.
func ItemFromText(g *Grammar, text string) (*Item, error) {
	item, err := NewItem(g, "")
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(text, "\n") {
		if err := item.AddLine(line); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// AddLine classifies line as the top, an attribute or a sub line. Only the
// first top-grammar line becomes the top; later ones fall through.
func (i *Item) AddLine(line string) error {
	if i.g.IsHeading(line) {
		return internalf("Item.AddLine", "heading line not allowed inside an item: %q", line)
	}
	if i.Top == "" && i.g.IsTop(line) {
		i.Top = line
		return nil
	}
	if a, ok := ParseAttribute(line); ok {
		i.attribs[a.Name] = a
		return nil
	}
	i.Subs = append(i.Subs, line)
	return nil
}

// Attrib returns the value stored under key.
func (i *Item) Attrib(key string) (string, bool) {
	a, ok := i.attribs[key]
	if !ok {
		return "", false
	}
	return a.Value, true
}

// SetAttrib stores val under key, replacing any previous value.
func (i *Item) SetAttrib(key, val string) {
	i.attribs[key] = Attribute{Name: key, Value: val}
}

// Attribs returns the attributes sorted by name.
func (i *Item) Attribs() []Attribute {
	out := make([]Attribute, 0, len(i.attribs))
	for _, a := range i.attribs {
		out = append(out, a)
	}
	sort.Slice(out, func(x, y int) bool { return out[x].Name < out[y].Name })
	return out
}

// Leader returns the status leader of the top, or "" when the top does not
// parse.
func (i *Item) Leader() string {
	leader, _, ok := i.g.ParseTop(i.Top)
	if !ok {
		return ""
	}
	return leader
}

// Title returns the top without its leader and surrounding whitespace, or ""
// when there is no parsable top.
func (i *Item) Title() string {
	_, title, ok := i.g.ParseTop(i.Top)
	if !ok {
		return ""
	}
	return title
}

// TitleHash returns the first ten hex characters of the MD5 of the title.
func (i *Item) TitleHash() string {
	return Digest(i.Title())
}

// Digest returns the short MD5 hex digest used for title hashes. The empty
// string hashes to "".
func Digest(s string) string {
	if s == "" {
		return ""
	}
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:titleHashLen]
}

// SavedTitleHash returns the stored titleHash attribute, or "".
func (i *Item) SavedTitleHash() string {
	v, _ := i.Attrib(TitleHashAttr)
	return v
}

// SaveTitleHash stores the hash of the current title.
func (i *Item) SaveTitleHash() {
	i.SetAttrib(TitleHashAttr, i.TitleHash())
}

// AddMissingTitleHash saves the title hash only if none is stored, so an
// edited title keeps the hash of its original.
func (i *Item) AddMissingTitleHash() {
	if i.SavedTitleHash() == "" {
		i.SaveTitleHash()
	}
}

// TitleMatchesHash reports whether a title and a saved hash both exist and
// agree. False means the title was edited after the hash was saved.
func (i *Item) TitleMatchesHash() bool {
	if i.Title() == "" {
		return false
	}
	saved := i.SavedTitleHash()
	if saved == "" {
		return false
	}
	return saved == i.TitleHash()
}

func (i *Item) identityKey() string {
	if h := i.SavedTitleHash(); h != "" {
		return h
	}
	return i.TitleHash()
}

// Matches reports whether other is the same task. A saved title hash on either
// side decides; without one, titles must be equal.
func (i *Item) Matches(other *Item) bool {
	if other == nil {
		return false
	}
	if i.SavedTitleHash() == "" && other.SavedTitleHash() == "" {
		t := i.Title()
		return t != "" && t == other.Title()
	}
	k := i.identityKey()
	return k != "" && k == other.identityKey()
}

// MergeFrom overwrites top, subs and attributes with copies of other's. The
// incoming item always wins.
func (i *Item) MergeFrom(other *Item) {
	i.Top = other.Top
	i.Subs = append([]string(nil), other.Subs...)
	i.attribs = copyAttribs(other.attribs)
}

// IsEmpty reports an item with no top, no subs and no attributes.
func (i *Item) IsEmpty() bool {
	return i.Top == "" && len(i.Subs) == 0 && len(i.attribs) == 0
}

// IsAttribOnly reports an item with no top and no subs.
func (i *Item) IsAttribOnly() bool {
	return i.Top == "" && len(i.Subs) == 0
}

// DeepCopy returns an item with its own subs slice and attribute map.
func (i *Item) DeepCopy() *Item {
	return &Item{
		g:       i.g,
		Top:     i.Top,
		Subs:    append([]string(nil), i.Subs...),
		attribs: copyAttribs(i.attribs),
	}
}

// ModifyTop replaces matches of pattern in the top with replacement, e.g.
// flipping "/ -" to "u -". Replacement may refer to groups as $1 or ${name}.
func (i *Item) ModifyTop(pattern *regexp.Regexp, replacement string) *Item {
	i.Top = pattern.ReplaceAllString(i.Top, replacement)
	return i
}

// Detail returns the sub lines joined by newlines.
func (i *Item) Detail() string {
	return strings.Join(i.Subs, "\n")
}

// AttribsString renders the attributes one per line in name order.
func (i *Item) AttribsString() string {
	if len(i.attribs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(i.attribs))
	for _, a := range i.Attribs() {
		lines = append(lines, a.String())
	}
	return strings.Join(lines, "\n")
}

// String renders the item as top, attributes, then subs.
func (i *Item) String() string {
	var b strings.Builder
	b.WriteString(i.Top)
	if i.Top != "" && (len(i.attribs) > 0 || len(i.Subs) > 0) {
		b.WriteString("\n")
	}
	b.WriteString(i.AttribsString())
	if len(i.attribs) > 0 && len(i.Subs) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(i.Subs, "\n"))
	return b.String()
}

func copyAttribs(in map[string]Attribute) map[string]Attribute {
	out := make(map[string]Attribute, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
