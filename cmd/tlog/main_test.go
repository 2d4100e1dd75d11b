package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setupJournal builds a journal tree with one story and returns a config
// file pointing at it.
func setupJournal(t *testing.T) (configPath, root string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JOURNAL_PATH", "")
	t.Setenv("TLOG_TMP", "")

	root = t.TempDir()
	tmp := t.TempDir()
	writeFile(t, filepath.Join(root, "Endeavors", "default", "chores story.md"), "# Chores\nd - sweep\nd - dust")

	configPath = filepath.Join(t.TempDir(), "tlog.yaml")
	writeFile(t, configPath, "journal:\n  root: "+root+"\n  tmp: "+tmp+"\ngit:\n  enabled: false\n")
	return configPath, root
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tlog version "+Version+" (build: "+BuildTime+")\n", out)
}

func TestFmt(t *testing.T) {
	dir := t.TempDir()
	canonical := filepath.Join(dir, "ok.md")
	messy := filepath.Join(dir, "messy.md")
	writeFile(t, canonical, "# H\nd - a")
	writeFile(t, messy, "# H\n\n\n\nd - a")

	t.Run("check lists files that would change", func(t *testing.T) {
		out, err := execute(t, "fmt", "--check", canonical, messy)
		assert.Error(t, err)
		assert.Equal(t, messy+"\n", out)
	})

	t.Run("rewrite", func(t *testing.T) {
		_, err := execute(t, "fmt", canonical, messy)
		require.NoError(t, err)
		data, err := os.ReadFile(messy)
		require.NoError(t, err)
		assert.Equal(t, "# H\n\nd - a", string(data))

		_, err = execute(t, "fmt", "--check", canonical, messy)
		assert.NoError(t, err)
	})
}

func TestScrum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day.md")
	writeFile(t, path, "# Mon\nx - done\nd - todo\n/ - doing\ns - later\nu - stalled")

	out, err := execute(t, "scrum", "--day", "Sun 21st", path)
	require.NoError(t, err)
	assert.Equal(t, "# Resolved Sun 21st\nx - done\nu - stalled\n\n"+
		"# To Do Sun 21st\nd - todo\n/ - doing\n\n"+
		"# Scheduled Sun 21st\ns - later\n", out)
}

func TestStamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chores story.md")
	writeFile(t, path, "d - sweep")

	out, err := execute(t, "stamp", path)
	require.NoError(t, err)
	assert.Equal(t, "stamped "+path+"\n", out)

	out, err = execute(t, "stamp", path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunAndExport(t *testing.T) {
	configPath, root := setupJournal(t)

	out, err := execute(t, "--config", configPath, "run", "--debug-log=false")
	require.NoError(t, err)
	assert.Contains(t, out, "total backlog: 1 configured sprint size: 5 sprint items: 1")
	assert.Contains(t, out, "The task blotter file is: "+root)

	out, err = execute(t, "--config", configPath, "export")
	require.NoError(t, err)
	var domain map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &domain))
	assert.Equal(t, "tlog", domain["name"])
	endeavors, ok := domain["endeavors"].([]any)
	require.True(t, ok)
	require.Len(t, endeavors, 1)

	out, err = execute(t, "--config", configPath, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "name: tlog\n"), out)

	_, err = execute(t, "--config", configPath, "export", "--format", "toml")
	assert.Error(t, err)
}

func TestWhere(t *testing.T) {
	configPath, root := setupJournal(t)

	out, err := execute(t, "--config", configPath, "where")
	require.NoError(t, err)
	assert.Contains(t, out, "journal:        "+root+"\n")
	assert.Contains(t, out, filepath.Join(root, "Endeavors", "endeavors.md"))
}

func TestConfig(t *testing.T) {
	configPath, root := setupJournal(t)

	out, err := execute(t, "--config", configPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "root: "+root)

	_, err = execute(t, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(os.Getenv("HOME"), ".config", "tlog", "config.yaml"))
}
