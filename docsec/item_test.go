package docsec

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_AddLine(t *testing.T) {
	item, err := ItemFromText(testGrammar, "d - do task\nowner:me\n - sub one\nx - not a second top")
	require.NoError(t, err)

	assert.Equal(t, "d - do task", item.Top)
	assert.Equal(t, []string{" - sub one", "x - not a second top"}, item.Subs)
	v, ok := item.Attrib("owner")
	assert.True(t, ok)
	assert.Equal(t, "me", v)
}

func TestItem_AddLine_HeadingIsInternalError(t *testing.T) {
	item, err := NewItem(testGrammar, "d - do task")
	require.NoError(t, err)

	err = item.AddLine("# Heading")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))

	var ie *InternalError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "Item.AddLine", ie.Op)
}

func TestNewItem_NilGrammar(t *testing.T) {
	_, err := NewItem(nil, "d - x")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestItem_TitleAndLeader(t *testing.T) {
	tests := []struct {
		top    string
		leader string
		title  string
	}{
		{"d - do task", "d -", "do task"},
		{"X-done   ", "X-", "done"},
		{"/ -   in progress", "/ -", "in progress"},
		{`\ - backslash`, `\ -`, "backslash"},
		{"d - ", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.top, func(t *testing.T) {
			item := &Item{g: testGrammar, Top: tt.top, attribs: map[string]Attribute{}}
			assert.Equal(t, tt.leader, item.Leader())
			assert.Equal(t, tt.title, item.Title())
		})
	}
}

func TestItem_TitleHash(t *testing.T) {
	item, err := NewItem(testGrammar, "x - item with no sub lines!")
	require.NoError(t, err)
	assert.Equal(t, "f3ebd9014f", item.TitleHash())

	empty, err := NewItem(testGrammar, "")
	require.NoError(t, err)
	assert.Equal(t, "", empty.TitleHash())
}

func TestItem_EditDetection(t *testing.T) {
	item, err := NewItem(testGrammar, "d - do task")
	require.NoError(t, err)

	assert.False(t, item.TitleMatchesHash())
	item.AddMissingTitleHash()
	assert.Equal(t, "9b35f4f8b4", item.SavedTitleHash())
	assert.True(t, item.TitleMatchesHash())

	item.SaveTitleHash()
	assert.Len(t, item.Attribs(), 1)

	item.Top = "d - edited title"
	assert.False(t, item.TitleMatchesHash())

	item.AddMissingTitleHash()
	assert.Equal(t, "9b35f4f8b4", item.SavedTitleHash())
}

func TestItem_String(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"top only", "d - a", "d - a"},
		{"top and subs", "d - a\n - one\n - two", "d - a\n - one\n - two"},
		{"attributes sorted before subs", "d - a\n - one\nzeta:1\nalpha:2", "d - a\nalpha:2\nzeta:1\n - one"},
		{"attribute only", "k:v", "k:v"},
		{"free text", "just words", "just words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ItemFromText(testGrammar, tt.text)
			require.NoError(t, err)
			if tt.text == "" {
				// a single blank line is a sub, not an empty item
				assert.Equal(t, []string{""}, item.Subs)
			}
			assert.Equal(t, tt.want, item.String())
		})
	}
}

func TestItem_DeepCopy(t *testing.T) {
	item, err := ItemFromText(testGrammar, "d - a\nk:v\n - sub")
	require.NoError(t, err)

	cp := item.DeepCopy()
	cp.Subs[0] = " - changed"
	cp.SetAttrib("k", "other")

	assert.Equal(t, " - sub", item.Subs[0])
	v, _ := item.Attrib("k")
	assert.Equal(t, "v", v)
	assert.Equal(t, item.Top, cp.Top)
}

func TestItem_ModifyTop(t *testing.T) {
	item, err := ItemFromText(testGrammar, "/ - working on it\n - detail")
	require.NoError(t, err)

	item.ModifyTop(regexp.MustCompile(`^[/\\] *-`), "u -")
	assert.Equal(t, "u - working on it", item.Top)
	assert.Equal(t, []string{" - detail"}, item.Subs)

	item.ModifyTop(regexp.MustCompile(`^u - (\w+)`), "d - ${1}")
	assert.Equal(t, "d - working on it", item.Top)

	item.ModifyTop(regexp.MustCompile(`^d - (\w+) on`), "x - $1 at")
	assert.Equal(t, "x - working at it", item.Top)
}

func TestItem_Matches(t *testing.T) {
	a, _ := NewItem(testGrammar, "d - first")
	b, _ := NewItem(testGrammar, "x - first")
	c, _ := NewItem(testGrammar, "d - second")

	assert.True(t, a.Matches(b), "same title, no hashes")
	assert.False(t, a.Matches(c))

	a.SaveTitleHash()
	c.SetAttrib(TitleHashAttr, a.SavedTitleHash())
	assert.True(t, a.Matches(c), "saved hash wins over title")

	free, _ := NewItem(testGrammar, "free text")
	assert.False(t, free.Matches(free.DeepCopy()), "items without titles never match")
	assert.False(t, a.Matches(nil))
}

func TestItem_MergeFrom(t *testing.T) {
	local, _ := ItemFromText(testGrammar, "d - first\n - local")
	remote, _ := ItemFromText(testGrammar, "x - first\nk:v\n - remote")

	local.MergeFrom(remote)
	assert.Equal(t, "x - first\nk:v\n - remote", local.String())

	remote.Subs[0] = " - mutated"
	assert.Equal(t, " - remote", local.Subs[0])
}

func TestItem_Emptiness(t *testing.T) {
	item, _ := NewItem(testGrammar, "")
	assert.True(t, item.IsEmpty())
	assert.True(t, item.IsAttribOnly())

	item.SetAttrib("k", "v")
	assert.False(t, item.IsEmpty())
	assert.True(t, item.IsAttribOnly())

	require.NoError(t, item.AddLine("text"))
	assert.False(t, item.IsAttribOnly())
	assert.Equal(t, "text", item.Detail())
}
