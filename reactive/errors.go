package reactive

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrCycle           = errors.New("cycle detected in computed value")
	// ErrReentrantTracking is raised when a derivation is tracked again while
	// its own tracked run is still in progress.
	ErrReentrantTracking = errors.New("derivation is already tracking")
)

// ReactionError carries an error returned by a reaction's view or effect when
// the State has no error handler. It is raised as a panic so that it reaches
// whoever triggered the drain.
type ReactionError struct {
	Reaction string
	Err      error
}

func (e *ReactionError) Error() string {
	return fmt.Sprintf("reaction %s: %v", e.Reaction, e.Err)
}

func (e *ReactionError) Unwrap() error {
	return e.Err
}

func (s *State) reportError(name string, err error) {
	s.debug("reaction returned error", "reaction", name, "error", err)
	if s.onError != nil {
		s.onError(name, err)
		return
	}
	panic(&ReactionError{Reaction: name, Err: err})
}
