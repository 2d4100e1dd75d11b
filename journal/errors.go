package journal

import "errors"

var (
	// ErrNotDirectory is returned when a path that must be a directory is not.
	ErrNotDirectory = errors.New("not a directory")

	// ErrNoJournalDir is returned when no month directory with journal data is
	// found within the look-back window.
	ErrNoJournalDir = errors.New("no previous journal directory")
)
