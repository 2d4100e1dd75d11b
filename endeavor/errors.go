package endeavor

import "errors"

// ErrNoStorySource is returned when an item has no storySource attribute and
// no default story file was given.
var ErrNoStorySource = errors.New("item has no story source")
