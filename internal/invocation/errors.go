package invocation

import (
	"errors"
	"fmt"
)

// Kind classifies invocation failures by the stage they belong to.
type Kind int

const (
	// KindResolution means no usable runner executable could be resolved.
	KindResolution Kind = iota + 1
	// KindConfiguration means the invocation was mis-configured, for example
	// a missing inventory or an attempt to reuse a consumed invocation.
	KindConfiguration
	// KindCredential means credential lookup or key materialization failed.
	KindCredential
	// KindLaunch means the runner process could not be started.
	KindLaunch
)

// Error tags an invocation failure with its Kind. Messages never carry
// secret material; anything sensitive is masked before it reaches an error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newErrorf(kind Kind, format string, a ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, a...)}
}

// IsKind reports whether err carries an invocation Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var invErr *Error
	return errors.As(err, &invErr) && invErr.Kind == kind
}

// IsConfiguration reports whether err is a configuration failure.
func IsConfiguration(err error) bool {
	return IsKind(err, KindConfiguration)
}

// IsResolution reports whether err is an executable resolution failure.
func IsResolution(err error) bool {
	return IsKind(err, KindResolution)
}
