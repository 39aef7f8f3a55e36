package report

import (
	"fmt"
	"railway/state"
	"strings"
)

// Buffer is the human readable game report. Lines added while an action runs
// form one block per change set; undo hides the block and redo shows it again,
// so the report always matches the change stack.
type Buffer struct {
	stack     *state.ChangeStack
	pending   []string
	past      [][]string
	future    [][]string
	observers []state.Observer
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Init attaches the buffer to stack. Sets closed or undone before that get
// empty blocks, so the blocks line up with the change sets.
func (b *Buffer) Init(stack *state.ChangeStack) {
	b.stack = stack
	b.past = make([][]string, len(stack.Past()))
	b.future = make([][]string, len(stack.Future()))
	b.pending = nil
}

// Add appends a line to the block of the open change set.
func (b *Buffer) Add(line string) {
	b.pending = append(b.pending, line)
}

func (b *Buffer) Addf(format string, args ...any) {
	b.Add(fmt.Sprintf(format, args...))
}

// AddObserver registers o to receive the full report text after every
// close, undo and redo.
func (b *Buffer) AddObserver(o state.Observer) {
	b.observers = append(b.observers, o)
}

func (b *Buffer) UpdateOnClose() {
	b.past = append(b.past, b.pending)
	b.pending = nil
	b.future = nil
	b.notify()
}

func (b *Buffer) InformOnUndo() {
	top := b.past[len(b.past)-1]
	b.past = b.past[:len(b.past)-1]
	b.future = append(b.future, top)
}

func (b *Buffer) InformOnRedo() {
	top := b.future[len(b.future)-1]
	b.future = b.future[:len(b.future)-1]
	b.past = append(b.past, top)
}

func (b *Buffer) UpdateAfterUndoRedo() {
	b.notify()
}

func (b *Buffer) InformOnRollback() {
	b.pending = nil
}

// Lines returns the visible report, oldest line first.
func (b *Buffer) Lines() []string {
	var lines []string
	for _, block := range b.past {
		lines = append(lines, block...)
	}
	return lines
}

// Block returns the lines reported for the change set at index.
func (b *Buffer) Block(index int) []string {
	if index < 0 || index >= len(b.past) {
		return nil
	}
	return append([]string(nil), b.past[index]...)
}

// Current returns the lines of the most recently closed change set.
func (b *Buffer) Current() []string {
	if b.stack == nil {
		return nil
	}
	return b.Block(b.stack.CurrentIndex())
}

// Hidden returns the number of undone blocks that redo would restore.
func (b *Buffer) Hidden() int {
	return len(b.future)
}

func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

func (b *Buffer) notify() {
	if len(b.observers) == 0 {
		return
	}
	text := b.Text()
	for _, o := range b.observers {
		o.Update(text)
	}
}
