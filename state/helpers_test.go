package state

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) *Root {
	t.Helper()
	return NewRoot(WithLogger(zerolog.Nop()))
}

// closeSetup seals the setup change set, which can never be undone.
func closeSetup(t *testing.T, root *Root) {
	t.Helper()
	require.NoError(t, root.Stack().Close("setup"))
}

type recorder struct {
	updates []string
}

func (r *recorder) Update(text string) {
	r.updates = append(r.updates, text)
}

type hook struct {
	calls []string
}

func (h *hook) Init(stack *ChangeStack) { h.calls = append(h.calls, "init") }
func (h *hook) UpdateOnClose()          { h.calls = append(h.calls, "close") }
func (h *hook) InformOnUndo()           { h.calls = append(h.calls, "undo") }
func (h *hook) InformOnRedo()           { h.calls = append(h.calls, "redo") }
func (h *hook) UpdateAfterUndoRedo()    { h.calls = append(h.calls, "after") }
func (h *hook) InformOnRollback()       { h.calls = append(h.calls, "rollback") }
