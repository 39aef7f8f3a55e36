package state

import (
	"fmt"
	"strings"
)

// ChangeSet bundles the changes of one action. It is the unit of undo/redo and
// is immutable once closed.
type ChangeSet struct {
	index   int
	action  string
	changes []Change
	closed  bool
}

func newChangeSet(index int) *ChangeSet {
	return &ChangeSet{index: index}
}

func (s *ChangeSet) Index() int     { return s.index }
func (s *ChangeSet) Action() string { return s.action }
func (s *ChangeSet) Len() int       { return len(s.changes) }
func (s *ChangeSet) IsEmpty() bool  { return len(s.changes) == 0 }
func (s *ChangeSet) IsClosed() bool { return s.closed }

func (s *ChangeSet) Changes() []Change {
	out := make([]Change, len(s.changes))
	copy(out, s.changes)
	return out
}

// ApplyForward re-executes the changes in recorded order.
func (s *ChangeSet) ApplyForward() error {
	if !s.closed {
		return fmt.Errorf("apply change set %d forward: %w", s.index, ErrChangeSetOpen)
	}
	for _, c := range s.changes {
		c.execute()
		invalidate(c)
	}
	return nil
}

// ApplyBackward undoes the changes in reverse order.
func (s *ChangeSet) ApplyBackward() error {
	if !s.closed {
		return fmt.Errorf("apply change set %d backward: %w", s.index, ErrChangeSetOpen)
	}
	s.revert()
	return nil
}

func (s *ChangeSet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ChangeSet %d (%s)", s.index, s.action)
	for _, c := range s.changes {
		b.WriteString("\n  ")
		b.WriteString(c.String())
	}
	return b.String()
}

func (s *ChangeSet) add(c Change) {
	if s.closed {
		panic(fmt.Sprintf("state: change recorded on closed change set %d", s.index))
	}
	s.changes = append(s.changes, c)
}

func (s *ChangeSet) seal(action string, index int) {
	s.action = action
	s.index = index
	s.closed = true
}

func (s *ChangeSet) revert() {
	for i := len(s.changes) - 1; i >= 0; i-- {
		s.changes[i].undo()
		invalidate(s.changes[i])
	}
}

// states returns the handles of the touched states in first-touched order.
func (s *ChangeSet) states() []nodeID {
	seen := make(map[nodeID]bool, len(s.changes))
	ids := make([]nodeID, 0, len(s.changes))
	for _, c := range s.changes {
		id := c.State().handle()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func invalidate(c Change) {
	st := c.State()
	st.Root().manager.invalidate(st.handle())
}
