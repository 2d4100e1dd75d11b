package docsec

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultHeadingPattern marks a markdown heading line.
const DefaultHeadingPattern = "^#"

// Grammar holds the compiled heading and leader patterns shared by every
// Item, Section and DocStructure of one document. It is immutable once built.
type Grammar struct {
	heading *regexp.Regexp
	top     *regexp.Regexp
	leaders []string

	leaderIdx int
	titleIdx  int
}

// NewGrammar compiles a grammar from a heading pattern and the leader
// fragments that may start an item top, e.g. `^[dD] *-`. An item top is any
// leader followed by a title with at least one non-space character.
func NewGrammar(headingPattern string, leaders ...string) (*Grammar, error) {
	if len(leaders) == 0 {
		return nil, fmt.Errorf("grammar needs at least one leader pattern")
	}
	heading, err := regexp.Compile(headingPattern)
	if err != nil {
		return nil, fmt.Errorf("compile heading pattern: %w", err)
	}
	for _, l := range leaders {
		if _, err := regexp.Compile(l); err != nil {
			return nil, fmt.Errorf("compile leader %q: %w", l, err)
		}
	}
	top, err := regexp.Compile(`(?P<leader>` + strings.Join(leaders, "|") + `)\s*(?P<title>.*\S)\s*$`)
	if err != nil {
		return nil, fmt.Errorf("compile top pattern: %w", err)
	}
	return &Grammar{
		heading:   heading,
		top:       top,
		leaders:   append([]string(nil), leaders...),
		leaderIdx: top.SubexpIndex("leader"),
		titleIdx:  top.SubexpIndex("title"),
	}, nil
}

// MustGrammar is like NewGrammar but panics on error. Use it for grammars
// built from constant patterns.
func MustGrammar(headingPattern string, leaders ...string) *Grammar {
	g, err := NewGrammar(headingPattern, leaders...)
	if err != nil {
		panic(err)
	}
	return g
}

// IsHeading reports whether line starts a section.
func (g *Grammar) IsHeading(line string) bool {
	return g.heading.MatchString(line)
}

// IsTop reports whether line is an item top: a leader and a non-blank title.
func (g *Grammar) IsTop(line string) bool {
	return g.top.MatchString(line)
}

// ParseTop splits an item top into its leader and trimmed title.
func (g *Grammar) ParseTop(line string) (leader, title string, ok bool) {
	m := g.top.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[g.leaderIdx], m[g.titleIdx], true
}

// HeadingPattern returns the heading regular expression.
func (g *Grammar) HeadingPattern() *regexp.Regexp {
	return g.heading
}

// Leaders returns the leader fragments in registration order.
func (g *Grammar) Leaders() []string {
	return append([]string(nil), g.leaders...)
}
