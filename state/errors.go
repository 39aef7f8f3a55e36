package state

import (
	"errors"
	"strings"
)

var (
	ErrNothingToUndo      = errors.New("state: nothing to undo")
	ErrNothingToRedo      = errors.New("state: nothing to redo")
	ErrChangeSetOpen      = errors.New("state: change set is still open")
	ErrUncommittedChanges = errors.New("state: open change set has uncommitted changes")
	ErrInvalidIndex       = errors.New("state: invalid change set index")
	ErrCycleDetected      = errors.New("state: dependency cycle detected")
	ErrModelFailed        = errors.New("state: model computation failed")
)

// CycleError reports the models forming a dependency cycle, in edge order.
// The first model is repeated at the end to close the loop.
type CycleError struct {
	Models []string
}

func (e *CycleError) Error() string {
	return ErrCycleDetected.Error() + ": " + strings.Join(e.Models, " -> ")
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}
