package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func baseNames(paths []string) []string {
	var out []string
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	return out
}

func TestLoadStoryDir_PriorityOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a story.md":     "",
		"b story.md":     "",
		"c story.md":     "",
		"notes.md":       "",
		"Prioritized.md": "c story.md\n\n  missing story.md\nb story.md\nc story.md\n",
	})

	sd, err := LoadStoryDir(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"c story.md", "b story.md", "a story.md"}, baseNames(sd.Stories))
	assert.Equal(t, filepath.Base(dir), sd.Name())
}

func TestLoadStoryDir_NotDirectory(t *testing.T) {
	_, err := LoadStoryDir(filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestParseEndeavors(t *testing.T) {
	text := "home 3\n\n# comment\nwork\nhobby x\n"
	got := ParseEndeavors(text)
	assert.Equal(t, []EndeavorEntry{
		{Name: "home", MaxStories: 3},
		{Name: "work", MaxStories: DefaultMaxStories},
		{Name: "hobby", MaxStories: DefaultMaxStories},
	}, got)
}

func TestLoadEndeavorStoryDirs(t *testing.T) {
	root := t.TempDir()
	p, err := NewPaths(root, t.TempDir(), "")
	require.NoError(t, err)

	writeFiles(t, p.DefaultEndeavorDir(), map[string]string{"new task story.md": "d - a\n"})
	writeFiles(t, filepath.Join(p.EndeavorPath, "home"), map[string]string{"garden story.md": "d - b\n"})
	writeFiles(t, p.EndeavorPath, map[string]string{EndeavorFileName: "home 4\nghost 1\n"})

	dirs, err := LoadEndeavorStoryDirs(p, nil)
	require.NoError(t, err)
	require.Len(t, dirs, 2)
	assert.Equal(t, DefaultEndeavorName, dirs[0].Name())
	assert.Equal(t, []string{"new task story.md"}, baseNames(dirs[0].Stories))
	assert.Equal(t, "home", dirs[1].Name())
	assert.Equal(t, 4, dirs[1].MaxStories)
}

func TestLoadEndeavorStoryDirs_DefaultListed(t *testing.T) {
	root := t.TempDir()
	p, err := NewPaths(root, t.TempDir(), "")
	require.NoError(t, err)
	writeFiles(t, p.DefaultEndeavorDir(), nil)
	writeFiles(t, p.EndeavorPath, map[string]string{EndeavorFileName: "default 5\n"})

	dirs, err := LoadEndeavorStoryDirs(p, nil)
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	assert.Equal(t, 5, dirs[0].MaxStories)
}
