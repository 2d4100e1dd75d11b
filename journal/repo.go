package journal

import (
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Author signs journal commits.
type Author struct {
	Name  string
	Email string
}

// Repo is the git repository holding the journal tree.
type Repo struct {
	path string
	repo *git.Repository
	now  func() time.Time
}

// OpenOrInitRepo opens the repository at path, creating it when there is
// none.
func OpenOrInitRepo(path string) (*Repo, error) {
	r, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		r, err = git.PlainInit(path, false)
		if err != nil {
			return nil, fmt.Errorf("init repo %s: %w", path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open repo %s: %w", path, err)
	}
	return &Repo{path: path, repo: r, now: time.Now}, nil
}

// Path returns the worktree root.
func (r *Repo) Path() string { return r.path }

// CommitAll stages every change in the worktree, deletions included, and
// commits it. A clean worktree is not an error; it returns an empty hash.
func (r *Repo) CommitAll(message string, author Author) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("worktree status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  r.now(),
		},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}
