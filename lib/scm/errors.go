package scm

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrRepositoryIO       = errors.New("repository I/O error")
	ErrReferenceList      = errors.New("error listing references")
	ErrHistoryRead        = errors.New("error reading history")
	ErrCheckout           = errors.New("error checking out commit")
	ErrDiffComputation    = errors.New("error computing diff")
	ErrSessionClosed      = errors.New("session is closed")
)

// Error is a failure of one of the session operations. Kind is one of the Err* sentinels above.
type Error struct {
	Kind   error
	Path   string
	Commit string
	Err    error
}

func newError(kind error, path string, commit string, err error) *Error {
	return &Error{
		Kind:   kind,
		Path:   path,
		Commit: commit,
		Err:    err,
	}
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())

	if e.Commit != "" {
		sb.WriteString(fmt.Sprintf(" (commit %v)", e.Commit))
	}
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf(" (%v)", e.Path))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}
