package game

import (
	"errors"
	"fmt"
)

var ErrIllegalAction = errors.New("illegal action")

// RuleError is returned when an action breaks the game rules.
type RuleError struct {
	Action Action
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("illegal action %q: %s", e.Action.String(), e.Reason)
}

func (e *RuleError) Is(target error) bool {
	return target == ErrIllegalAction
}

func illegal(a Action, format string, args ...any) error {
	return &RuleError{Action: a, Reason: fmt.Sprintf(format, args...)}
}
