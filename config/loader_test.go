package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoader(t *testing.T, home, cwd string, env map[string]string) *Loader {
	t.Helper()
	l := NewLoader(nil)
	l.homeDir = func() (string, error) { return home, nil }
	l.workDir = func() (string, error) { return cwd, nil }
	l.getenv = func(k string) string { return env[k] }
	return l
}

func writeYAML(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoader_Layers(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	nested := filepath.Join(project, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	writeYAML(t, filepath.Join(home, UserConfigDir, UserConfigFile), "journal:\n  root: /user/journal\nsprint:\n  size: 7\n")
	writeYAML(t, filepath.Join(project, ProjectConfigFile), "journal:\n  root: /project/journal\n")

	cfg, err := testLoader(t, home, nested, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, "/project/journal", cfg.Journal.Root)
	assert.Equal(t, 7, cfg.Sprint.Size)
}

func TestLoader_EnvironmentWins(t *testing.T) {
	home := t.TempDir()
	env := map[string]string{EnvJournalPath: "/env/journal", EnvTmp: "/env/tmp"}

	cfg, err := testLoader(t, home, t.TempDir(), env).Load()
	require.NoError(t, err)
	assert.Equal(t, "/env/journal", cfg.Journal.Root)
	assert.Equal(t, "/env/tmp", cfg.Journal.Tmp)
	assert.Equal(t, filepath.Join("/env/journal", "Endeavors"), cfg.EndeavorPath())
}

func TestLoader_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeYAML(t, path, "sprint:\n  size: 2\n")

	cfg, err := testLoader(t, t.TempDir(), dir, nil).WithFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Sprint.Size)

	_, err = testLoader(t, t.TempDir(), dir, nil).WithFile(filepath.Join(dir, "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestLoader_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	writeYAML(t, path, "journal:\n  look_back_months: -2\n")

	_, err := testLoader(t, t.TempDir(), dir, nil).WithFile(path).Load()
	assert.ErrorContains(t, err, "look_back_months")
}

func TestLoader_EnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	l := testLoader(t, home, t.TempDir(), nil)

	require.NoError(t, l.EnsureUserConfig())
	_, err := os.Stat(filepath.Join(home, UserConfigDir, UserConfigFile))
	require.NoError(t, err)
	require.NoError(t, l.EnsureUserConfig())
}
