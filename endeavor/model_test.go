package endeavor

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/tlog/docsec"
	"github.com/c360studio/tlog/journal"
)

func loadGroup(t *testing.T) *StoryGroup {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "default")
	writeStory(t, dir, "chores story.md", choresText)
	writeStory(t, dir, "garden story.md", "maxTasks:2\n# Garden\n/ - weed\nd - water")

	sd, err := journal.LoadStoryDir(dir, nil)
	require.NoError(t, err)
	g, err := LoadStoryGroup(sd, nil)
	require.NoError(t, err)
	return g
}

func TestEndeavorIDs(t *testing.T) {
	e := NewEndeavor("default", 2)
	assert.Equal(t, "c21f969b5f", e.ID)

	s := e.AddStory("chores story", 1)
	s.AddTask("do", "sweep", "")
	assert.Equal(t, "c21f969b5f."+docsec.Digest("chores story"), e.Stories[0].ID)
	assert.Equal(t, e.Stories[0].ID+"."+docsec.Digest("sweep"), e.Stories[0].Tasks[0].ID)
}

func TestEndeavor_AddStoryKeepsEarlierStories(t *testing.T) {
	e := NewEndeavor("default", 2)
	first := e.AddStory("one", 1)
	second := e.AddStory("two", 1)
	e.AddStory("three", 1)

	first.AddTask("do", "a", "")
	second.AddTask("do", "b", "")
	first.AddTask("do", "c", "")

	require.Len(t, e.Stories, 3)
	assert.Len(t, e.Stories[0].Tasks, 2)
	assert.Len(t, e.Stories[1].Tasks, 1)
	assert.Empty(t, e.Stories[2].Tasks)
	assert.Same(t, first, e.Stories[0])
}

func TestStoryGroup_AsEndeavor(t *testing.T) {
	g := loadGroup(t)
	e := g.AsEndeavor()

	assert.Equal(t, "default", e.Name)
	assert.Equal(t, journal.DefaultMaxStories, e.MaxStories)
	require.Len(t, e.Stories, 2)

	chores := e.Stories[0]
	assert.Equal(t, "chores story", chores.Name)
	assert.Equal(t, 1, chores.MaxTasks)
	require.Len(t, chores.Tasks, 2)
	assert.Equal(t, Task{
		ID:     chores.ID + "." + docsec.Digest("sweep"),
		Status: "do",
		Title:  "sweep",
		Detail: " - the porch",
	}, chores.Tasks[0])

	garden := e.Stories[1]
	assert.Equal(t, 2, garden.MaxTasks)
	assert.Equal(t, "in_progress", garden.Tasks[0].Status)
}

func TestBuildDomain(t *testing.T) {
	d := BuildDomain("home", 0, []*StoryGroup{loadGroup(t)})
	assert.Equal(t, DefaultSprintMaxTasks, d.SprintMaxTasks)
	assert.Equal(t, 4, d.TaskCount())
}

func TestEncode(t *testing.T) {
	d := BuildDomain("home", 3, []*StoryGroup{loadGroup(t)})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, d, FormatJSON))

		var raw map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
		assert.Equal(t, "home", raw["name"])
		assert.EqualValues(t, 3, raw["sprint_max_tasks"])
		for _, key := range []string{`"eid"`, `"maxStories"`, `"story_list"`, `"sid"`, `"maxTasks"`, `"taskList"`, `"tid"`} {
			assert.Contains(t, buf.String(), key)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, d, FormatYAML))

		var back Domain
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
		assert.Equal(t, *d, back)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, Encode(&bytes.Buffer{}, d, Format("toml")))
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"ttl", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
