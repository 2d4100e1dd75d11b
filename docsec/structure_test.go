package docsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStructure(t *testing.T) *DocStructure {
	t.Helper()
	d, err := NewDocStructure(testGrammar)
	require.NoError(t, err)
	require.NoError(t, d.AddLeaderEntry("# Done", `^[xX] *-`, `^[aA] *-`))
	require.NoError(t, d.AddLeaderEntry("# To Do", `^[dD] *-`))
	return d
}

func TestDocStructure_AliasedPatterns(t *testing.T) {
	d := newTestStructure(t)
	assert.Same(t, d.LeaderSection(`^[xX] *-`), d.LeaderSection(`^[aA] *-`))
	assert.Same(t, d.Section("# Done"), d.LeaderSection(`^[xX] *-`))
	assert.Nil(t, d.LeaderSection(`^[sS] *-`))
	assert.Equal(t, []string{"# Done", "# To Do"}, d.Headings())
}

func TestDocStructure_AddLeaderEntry_Errors(t *testing.T) {
	d := newTestStructure(t)

	tests := []struct {
		name     string
		heading  string
		patterns []string
	}{
		{"duplicate heading", "# Done", []string{`^[sS] *-`}},
		{"malformed heading", "Done", []string{`^[sS] *-`}},
		{"bad pattern", "# Later", []string{`^[sS *-`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.AddLeaderEntry(tt.heading, tt.patterns...)
			assert.ErrorIs(t, err, ErrInternal)
		})
	}
	assert.Nil(t, d.Section("# Later"))
}

func TestDocStructure_InsertItem(t *testing.T) {
	d := newTestStructure(t)

	s := d.InsertItem(mustItem(t, "x - shipped"))
	require.NotNil(t, s)
	assert.Equal(t, "# Done", s.Header)

	d.InsertItem(mustItem(t, "a - dropped"))
	d.InsertItem(mustItem(t, "d - next"))
	assert.Nil(t, d.InsertItem(mustItem(t, "s - later")))
	assert.Nil(t, d.InsertItem(mustItem(t, "free text")))

	d.InsertItem(mustItem(t, "d - next\n - detail"))
	assert.Equal(t, 1, d.Section("# To Do").NumItems())

	report, err := d.ReportString("# To Do", "# Done")
	require.NoError(t, err)
	assert.Equal(t, "# To Do\nd - next\n - detail\n\n# Done\nx - shipped\na - dropped", report)
	assert.Equal(t, "# Done\nx - shipped\na - dropped\n\n# To Do\nd - next\n - detail", d.String())

	_, err = d.ReportString("# Missing")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDocStructure_Overlaps(t *testing.T) {
	d := newTestStructure(t)
	require.NoError(t, d.AddLeaderEntry("# Anything", `-`))

	assert.Equal(t, []string{"# Done", "# Anything"}, d.Overlaps("x - both"))
	assert.Equal(t, []string{"# Anything"}, d.Overlaps("s - one"))
	assert.Empty(t, d.Overlaps("plain"))

	s := d.InsertItem(mustItem(t, "x - both"))
	assert.Equal(t, "# Done", s.Header)
}
