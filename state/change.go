package state

import "fmt"

// Change is the immutable record of one state transition. Executing it moves
// the state to the new value, undoing it restores the previous one.
type Change interface {
	State() State
	execute()
	undo()
	String() string
}

type valueChange[T comparable] struct {
	state *Value[T]
	prev  T
	next  T
}

func (c *valueChange[T]) State() State { return c.state }
func (c *valueChange[T]) execute()     { c.state.value = c.next }
func (c *valueChange[T]) undo()        { c.state.value = c.prev }

func (c *valueChange[T]) String() string {
	return fmt.Sprintf("%s: %v -> %v", c.state.URI(), c.prev, c.next)
}

// setChange adds or removes elem at pos, so that undo restores the order.
type setChange[T comparable] struct {
	state *Set[T]
	add   bool
	elem  T
	pos   int
}

func (c *setChange[T]) State() State { return c.state }

func (c *setChange[T]) execute() {
	if c.add {
		c.state.insert(c.pos, c.elem)
	} else {
		c.state.delete(c.pos, c.elem)
	}
}

func (c *setChange[T]) undo() {
	if c.add {
		c.state.delete(c.pos, c.elem)
	} else {
		c.state.insert(c.pos, c.elem)
	}
}

func (c *setChange[T]) String() string {
	if c.add {
		return fmt.Sprintf("%s: add %v", c.state.URI(), c.elem)
	}
	return fmt.Sprintf("%s: remove %v", c.state.URI(), c.elem)
}

type mapChange[K comparable, V comparable] struct {
	state   *Map[K, V]
	key     K
	prev    V
	hadPrev bool
	next    V
	hasNext bool
	pos     int // position of key in insertion order
}

func (c *mapChange[K, V]) State() State { return c.state }
func (c *mapChange[K, V]) execute()     { c.state.assign(c.key, c.next, c.hasNext, c.pos) }
func (c *mapChange[K, V]) undo()        { c.state.assign(c.key, c.prev, c.hadPrev, c.pos) }

func (c *mapChange[K, V]) String() string {
	switch {
	case !c.hadPrev:
		return fmt.Sprintf("%s: put %v=%v", c.state.URI(), c.key, c.next)
	case !c.hasNext:
		return fmt.Sprintf("%s: remove %v", c.state.URI(), c.key)
	default:
		return fmt.Sprintf("%s: %v: %v -> %v", c.state.URI(), c.key, c.prev, c.next)
	}
}

type listChange[T comparable] struct {
	state  *List[T]
	insert bool
	elem   T
	pos    int
}

func (c *listChange[T]) State() State { return c.state }

func (c *listChange[T]) execute() {
	if c.insert {
		c.state.insertAt(c.pos, c.elem)
	} else {
		c.state.removeAt(c.pos)
	}
}

func (c *listChange[T]) undo() {
	if c.insert {
		c.state.removeAt(c.pos)
	} else {
		c.state.insertAt(c.pos, c.elem)
	}
}

func (c *listChange[T]) String() string {
	if c.insert {
		return fmt.Sprintf("%s: insert %v at %d", c.state.URI(), c.elem, c.pos)
	}
	return fmt.Sprintf("%s: remove %v at %d", c.state.URI(), c.elem, c.pos)
}
