package state

// ChangeReporter keeps a secondary log in lockstep with the change stack.
// The stack calls the hooks in the order of its own transitions.
type ChangeReporter interface {
	Init(stack *ChangeStack)
	UpdateOnClose()
	InformOnUndo()
	InformOnRedo()
	UpdateAfterUndoRedo()
}

// RollbackReporter is implemented by reporters that must drop what was
// collected for a change set that was rolled back instead of closed.
type RollbackReporter interface {
	InformOnRollback()
}
