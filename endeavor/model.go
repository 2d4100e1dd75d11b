package endeavor

import "github.com/c360studio/tlog/docsec"

// DefaultSprintMaxTasks caps the tasks of one sprint across all endeavors.
const DefaultSprintMaxTasks = 6

// Domain is the whole body of work: every endeavor and the sprint limit
// that applies across them.
type Domain struct {
	Name           string     `json:"name" yaml:"name"`
	SprintMaxTasks int        `json:"sprint_max_tasks" yaml:"sprint_max_tasks"`
	Endeavors      []Endeavor `json:"endeavors" yaml:"endeavors"`
}

// Endeavor is a long running goal made of stories in priority order.
type Endeavor struct {
	ID         string   `json:"eid" yaml:"eid"`
	Name       string   `json:"name" yaml:"name"`
	MaxStories int      `json:"maxStories" yaml:"maxStories"`
	Stories    []*Story `json:"story_list" yaml:"story_list"`
}

// Story is one story file: its tasks and how many of them a sprint takes.
type Story struct {
	ID       string `json:"sid" yaml:"sid"`
	Name     string `json:"name" yaml:"name"`
	MaxTasks int    `json:"maxTasks" yaml:"maxTasks"`
	Tasks    []Task `json:"taskList" yaml:"taskList"`
}

// Task is a single task of a story.
type Task struct {
	ID     string `json:"tid" yaml:"tid"`
	Status string `json:"status" yaml:"status"`
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
}

// NewEndeavor creates an endeavor whose ID is the digest of its name.
func NewEndeavor(name string, maxStories int) Endeavor {
	return Endeavor{ID: docsec.Digest(name), Name: name, MaxStories: maxStories}
}

// AddStory appends a story and returns it for adding tasks. Its ID extends
// the endeavor ID with the digest of the story name.
func (e *Endeavor) AddStory(name string, maxTasks int) *Story {
	s := &Story{
		ID:       childID(e.ID, name),
		Name:     name,
		MaxTasks: maxTasks,
	}
	e.Stories = append(e.Stories, s)
	return s
}

// AddTask appends a task whose ID extends the story ID with the digest of
// the title.
func (s *Story) AddTask(status, title, detail string) {
	s.Tasks = append(s.Tasks, Task{
		ID:     childID(s.ID, title),
		Status: status,
		Title:  title,
		Detail: detail,
	})
}

func childID(parent, name string) string {
	return parent + "." + docsec.Digest(name)
}

// BuildDomain assembles a domain from loaded story groups. A sprintMaxTasks
// below one means DefaultSprintMaxTasks.
func BuildDomain(name string, sprintMaxTasks int, groups []*StoryGroup) *Domain {
	if sprintMaxTasks < 1 {
		sprintMaxTasks = DefaultSprintMaxTasks
	}
	d := &Domain{Name: name, SprintMaxTasks: sprintMaxTasks, Endeavors: make([]Endeavor, 0, len(groups))}
	for _, g := range groups {
		d.Endeavors = append(d.Endeavors, g.AsEndeavor())
	}
	return d
}

// TaskCount returns the number of tasks across every endeavor.
func (d *Domain) TaskCount() int {
	n := 0
	for _, e := range d.Endeavors {
		for _, s := range e.Stories {
			n += len(s.Tasks)
		}
	}
	return n
}
