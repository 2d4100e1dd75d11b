package tldoc

import (
	"regexp"
	"strings"

	"github.com/c360studio/tlog/docsec"
)

// Status is one recognized task state: a name, the short code written in
// front of a task, and the leader fragment that matches it.
type Status struct {
	Name    string
	Code    string
	Pattern string

	re *regexp.Regexp
}

// Leader fragments for each status.
const (
	AbandonedLeader  = `^[aA] *-`
	CompletedLeader  = `^[xX] *-`
	ScheduledLeader  = `^[sS] *-`
	InProgressLeader = `^[/\\] *-`
	UnfinishedLeader = `^[uU] *-`
	DoLeader         = `^[dD] *-`
)

// UnfinishedTop replaces the leader of in-progress tasks carried into a new
// day.
const UnfinishedTop = "u -"

// Status names.
const (
	StatusAbandoned  = "abandoned"
	StatusCompleted  = "completed"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusUnfinished = "unfinished"
	StatusDo         = "do"
)

// Statuses is the status registry in lookup order. The fragments match
// disjoint text so lookup order only matters if the registry is extended.
var Statuses = []Status{
	newStatus(StatusAbandoned, "a", AbandonedLeader),
	newStatus(StatusCompleted, "x", CompletedLeader),
	newStatus(StatusScheduled, "s", ScheduledLeader),
	newStatus(StatusInProgress, "/", InProgressLeader),
	newStatus(StatusUnfinished, "u", UnfinishedLeader),
	newStatus(StatusDo, "d", DoLeader),
}

func newStatus(name, code, pattern string) Status {
	return Status{Name: name, Code: code, Pattern: pattern, re: regexp.MustCompile(pattern)}
}

// Derived item-top patterns.
var (
	AbandonedPattern  = regexp.MustCompile(AbandonedLeader)
	CompletedPattern  = regexp.MustCompile(CompletedLeader)
	ScheduledPattern  = regexp.MustCompile(ScheduledLeader)
	InProgressPattern = regexp.MustCompile(InProgressLeader)
	UnfinishedPattern = regexp.MustCompile(UnfinishedLeader)
	DoPattern         = regexp.MustCompile(DoLeader)

	// ResolvedPattern matches completed and abandoned tasks.
	ResolvedPattern = regexp.MustCompile(alt(CompletedLeader, AbandonedLeader))
	// UnresolvedPattern matches tasks still to be worked: in progress and do.
	UnresolvedPattern = regexp.MustCompile(alt(InProgressLeader, DoLeader))
)

func alt(fragments ...string) string {
	return strings.Join(fragments, "|")
}

// DefaultGrammar recognizes markdown headings and every registered status.
var DefaultGrammar = mustRegistryGrammar(Statuses)

func mustRegistryGrammar(statuses []Status) *docsec.Grammar {
	g, err := RegistryGrammar(statuses)
	if err != nil {
		panic(err)
	}
	return g
}

// RegistryGrammar builds a grammar whose item tops are the alternation of the
// given status fragments.
func RegistryGrammar(statuses []Status) (*docsec.Grammar, error) {
	leaders := make([]string, 0, len(statuses))
	for _, s := range statuses {
		leaders = append(leaders, s.Pattern)
	}
	return docsec.NewGrammar(docsec.DefaultHeadingPattern, leaders...)
}

// FindStatusName returns the name of the first status whose fragment matches
// leader, or "" when none does.
func FindStatusName(leader string) string {
	for _, s := range Statuses {
		if s.re.MatchString(leader) {
			return s.Name
		}
	}
	return ""
}
