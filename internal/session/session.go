// Package session models one in-progress edit of a single row's
// translation. A session never touches the table itself; the controller
// applies the committed text through the store, which keeps the session
// independently testable.
package session

import (
	"bundledit/internal/errors"
	"bundledit/pkg/types"
)

// State is the lifecycle state of an edit session.
type State int

const (
	// Open means the session accepts edits.
	Open State = iota
	// Committed means the edit was confirmed. Terminal.
	Committed
	// Discarded means the edit was cancelled. Terminal.
	Discarded
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Committed:
		return "committed"
	case Discarded:
		return "discarded"
	}
	return "unknown"
}

// Session is one edit of a single row's translation. The source snapshot is
// immutable; the working translation changes freely until the session
// reaches a terminal state.
type Session struct {
	position int
	source   string
	working  string
	state    State
}

// New opens a session for the row at the given original-table position.
// The position is carried explicitly so a commit lands on the right slot
// even when the table contains duplicate rows.
func New(position int, row types.Row) *Session {
	return &Session{
		position: position,
		source:   row.Source,
		working:  row.Translation,
		state:    Open,
	}
}

// Position returns the original-table position this session edits.
func (s *Session) Position() int {
	return s.position
}

// Source returns the immutable source text snapshot.
func (s *Session) Source() string {
	return s.source
}

// Working returns the current working translation text.
func (s *Session) Working() string {
	return s.working
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	return s.state
}

// SetWorking replaces the working translation. Valid only while open.
func (s *Session) SetWorking(text string) error {
	if s.state != Open {
		return errors.Newf("cannot edit %s session", s.state)
	}
	s.working = text
	return nil
}

// Clone copies the source text into the working translation.
// Valid only while open.
func (s *Session) Clone() error {
	return s.SetWorking(s.source)
}

// Clear empties the working translation. Valid only while open.
func (s *Session) Clear() error {
	return s.SetWorking("")
}

// Commit confirms the edit and returns the working text. The caller is
// responsible for writing it back through the store. Terminal.
func (s *Session) Commit() (string, error) {
	if s.state != Open {
		return "", errors.Newf("cannot commit %s session", s.state)
	}
	s.state = Committed
	return s.working, nil
}

// Discard cancels the edit. No table mutation occurs. Terminal.
func (s *Session) Discard() error {
	if s.state != Open {
		return errors.Newf("cannot discard %s session", s.state)
	}
	s.state = Discarded
	return nil
}
