package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorMonthDir(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"/j/2021/03", "/j/2021/02"},
		{"/j/2021/01", "/j/2020/12"},
		{"/j/2021/10/", "/j/2021/09"},
		{"/j/0001/01", ""},
		{"/j/2021/13", ""},
		{"/j/year/01", ""},
		{"/j/2021/1", ""},
		{"/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.want, PriorMonthDir(tt.dir))
		})
	}
}

func TestFindPrevJournalDir(t *testing.T) {
	root := t.TempDir()
	old := filepath.Join(root, "2020", "11")
	require.NoError(t, os.MkdirAll(old, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(old, "blotter-2020-11-30.md"), []byte("d - a\n"), 0o644))

	latest := filepath.Join(root, "2021", "02")

	result := FindPrevJournalDir(latest, 24)
	assert.Equal(t, SearchSuccess, result.Status)
	assert.Equal(t, old, result.Dir)
	assert.Contains(t, result.Message, "0 stories and 1 blotters")
	assert.NoError(t, result.Err())

	short := FindPrevJournalDir(latest, 3)
	assert.Equal(t, SearchStop, short.Status)
	assert.ErrorIs(t, short.Err(), ErrNoJournalDir)
}

func TestFindPrevJournalDir_CurrentMonth(t *testing.T) {
	root := t.TempDir()
	month := filepath.Join(root, "2021", "02")
	require.NoError(t, os.MkdirAll(month, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(month, "carry over story.md"), []byte("d - a\n"), 0o644))

	result := FindPrevJournalDir(month, 1)
	assert.Equal(t, SearchSuccess, result.Status)
	assert.Equal(t, month, result.Dir)
}
