package state

import (
	"fmt"
	"time"
)

// ChangeStack holds the open change set, the closed past and the redo future.
//
// The first closed set represents the game setup and is never undone. Closing
// an empty set is a regular step: it is pushed, reported and undone like any
// other set, so undo and redo stay symmetric.
type ChangeStack struct {
	root      *Root
	open      *ChangeSet
	past      []*ChangeSet
	future    []*ChangeSet
	reporters []ChangeReporter
}

func newChangeStack(root *Root) *ChangeStack {
	return &ChangeStack{root: root}
}

// AddReporter registers r and initializes it with this stack.
func (cs *ChangeStack) AddReporter(r ChangeReporter) {
	cs.reporters = append(cs.reporters, r)
	r.Init(cs)
}

// Open returns the open change set, or nil before the first change or close.
func (cs *ChangeStack) Open() *ChangeSet { return cs.open }

// Past returns the closed change sets, oldest first.
func (cs *ChangeStack) Past() []*ChangeSet {
	return append([]*ChangeSet(nil), cs.past...)
}

// Future returns the undone change sets in the order redo replays them.
func (cs *ChangeStack) Future() []*ChangeSet {
	out := make([]*ChangeSet, len(cs.future))
	for i, set := range cs.future {
		out[len(cs.future)-1-i] = set
	}
	return out
}

// CurrentIndex is the index of the most recently closed set, -1 before the first close.
func (cs *ChangeStack) CurrentIndex() int { return len(cs.past) - 1 }

// MaxIndex is the index reachable by redoing everything.
func (cs *ChangeStack) MaxIndex() int { return len(cs.past) + len(cs.future) - 1 }

func (cs *ChangeStack) IsUndoPossible() bool { return len(cs.past) > 1 && !cs.hasUncommitted() }
func (cs *ChangeStack) IsRedoPossible() bool { return len(cs.future) > 0 && !cs.hasUncommitted() }

func (cs *ChangeStack) hasUncommitted() bool {
	return cs.open != nil && !cs.open.IsEmpty()
}

// begin returns the open set, opening one if needed.
func (cs *ChangeStack) begin() *ChangeSet {
	if cs.open == nil {
		cs.open = newChangeSet(len(cs.past))
	}
	return cs.open
}

func (cs *ChangeStack) record(c Change) {
	set := cs.begin()
	c.execute()
	set.add(c)
	cs.root.manager.invalidate(c.State().handle())
}

// Close seals the open set as the result of action, clears the redo future,
// informs the reporters and pushes the new texts to observers. If the update
// pass would run into a dependency cycle or a failing model, the open set is
// rolled back and the stack stays at its previous closed set. Models are
// recomputed before the set is pushed. Reporters must not panic; a panicking
// observer is logged and skipped.
func (cs *ChangeStack) Close(action string) error {
	set := cs.begin()
	touched := set.states()
	order, err := cs.root.manager.order(touched)
	if err == nil {
		start := time.Now()
		if err = cs.root.manager.recompute(order); err == nil {
			cs.push(set, action, touched, order, start)
			return nil
		}
	}
	cs.root.logger.Error().Err(err).Str("action", action).Msg("update pass aborted, rolling back")
	cs.Rollback()
	return fmt.Errorf("close %q: %w", action, err)
}

// push seals set as the new current set and publishes it.
func (cs *ChangeStack) push(set *ChangeSet, action string, touched, order []nodeID, start time.Time) {
	set.seal(action, len(cs.past))
	cs.past = append(cs.past, set)
	cs.future = nil
	cs.open = nil

	cs.root.logger.Debug().
		Int("index", set.index).
		Str("action", action).
		Int("changes", set.Len()).
		Msg("change set closed")
	cs.root.metrics.AddClose(set.IsEmpty())

	for _, r := range cs.reporters {
		r.UpdateOnClose()
	}
	cs.root.manager.notify(touched, order, start)
	cs.open = newChangeSet(len(cs.past))
}

// Rollback reverts and discards the open set. Closed sets are untouched.
func (cs *ChangeStack) Rollback() {
	if cs.open != nil && !cs.open.IsEmpty() {
		cs.root.logger.Debug().Int("changes", cs.open.Len()).Msg("rolling back open change set")
		cs.open.revert()
	}
	cs.open = newChangeSet(len(cs.past))
	cs.root.metrics.AddRollback()
	for _, r := range cs.reporters {
		if rr, ok := r.(RollbackReporter); ok {
			rr.InformOnRollback()
		}
	}
}

// Undo reverts the most recently closed set and moves it to the future.
func (cs *ChangeStack) Undo() error {
	if cs.hasUncommitted() {
		return fmt.Errorf("undo: %w", ErrUncommittedChanges)
	}
	if len(cs.past) < 2 {
		return fmt.Errorf("undo: %w", ErrNothingToUndo)
	}
	set := cs.past[len(cs.past)-1]
	touched := set.states()
	order, err := cs.root.manager.order(touched)
	if err != nil {
		return fmt.Errorf("undo change set %d: %w", set.index, err)
	}
	if err := set.ApplyBackward(); err != nil {
		return err
	}
	start := time.Now()
	if err := cs.root.manager.recompute(order); err != nil {
		_ = set.ApplyForward()
		return fmt.Errorf("undo change set %d: %w", set.index, err)
	}
	cs.past = cs.past[:len(cs.past)-1]
	cs.future = append(cs.future, set)
	cs.open = newChangeSet(len(cs.past))

	cs.root.logger.Debug().Int("index", set.index).Str("action", set.action).Msg("change set undone")
	cs.root.metrics.AddUndo()

	for _, r := range cs.reporters {
		r.InformOnUndo()
	}
	cs.root.manager.notify(touched, order, start)
	for _, r := range cs.reporters {
		r.UpdateAfterUndoRedo()
	}
	return nil
}

// Redo re-applies the most recently undone set.
func (cs *ChangeStack) Redo() error {
	if cs.hasUncommitted() {
		return fmt.Errorf("redo: %w", ErrUncommittedChanges)
	}
	if len(cs.future) == 0 {
		return fmt.Errorf("redo: %w", ErrNothingToRedo)
	}
	set := cs.future[len(cs.future)-1]
	touched := set.states()
	order, err := cs.root.manager.order(touched)
	if err != nil {
		return fmt.Errorf("redo change set %d: %w", set.index, err)
	}
	if err := set.ApplyForward(); err != nil {
		return err
	}
	start := time.Now()
	if err := cs.root.manager.recompute(order); err != nil {
		_ = set.ApplyBackward()
		return fmt.Errorf("redo change set %d: %w", set.index, err)
	}
	cs.future = cs.future[:len(cs.future)-1]
	cs.past = append(cs.past, set)
	cs.open = newChangeSet(len(cs.past))

	cs.root.logger.Debug().Int("index", set.index).Str("action", set.action).Msg("change set redone")
	cs.root.metrics.AddRedo()

	for _, r := range cs.reporters {
		r.InformOnRedo()
	}
	cs.root.manager.notify(touched, order, start)
	for _, r := range cs.reporters {
		r.UpdateAfterUndoRedo()
	}
	return nil
}

// UndoTo undoes sets until index is the current index.
func (cs *ChangeStack) UndoTo(index int) error {
	if index < 0 || index >= cs.CurrentIndex() {
		return fmt.Errorf("undo to %d (current %d): %w", index, cs.CurrentIndex(), ErrInvalidIndex)
	}
	for cs.CurrentIndex() > index {
		if err := cs.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// RedoTo redoes sets until index is the current index.
func (cs *ChangeStack) RedoTo(index int) error {
	if index <= cs.CurrentIndex() || index > cs.MaxIndex() {
		return fmt.Errorf("redo to %d (current %d, max %d): %w", index, cs.CurrentIndex(), cs.MaxIndex(), ErrInvalidIndex)
	}
	for cs.CurrentIndex() < index {
		if err := cs.Redo(); err != nil {
			return err
		}
	}
	return nil
}
