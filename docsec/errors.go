package docsec

import (
	"errors"
	"fmt"
)

// ErrInternal is matched by every *InternalError.
var ErrInternal = errors.New("docsec internal error")

// InternalError reports misuse of the document model, such as feeding a
// heading into an Item or registering a heading twice. It never describes bad
// user data.
type InternalError struct {
	Op  string
	Msg string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Is reports whether target is ErrInternal.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

func internalf(op, format string, args ...any) error {
	return &InternalError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
