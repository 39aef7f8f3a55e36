package state

import "fmt"

// Model is a derived text view. The text is cached and recomputed on first
// read after any of its sources changed.
type Model struct {
	node
	compute func() string
	text    string
	valid   bool
}

func NewModel(parent Item, id string, compute func() string) *Model {
	if compute == nil {
		panic(fmt.Sprintf("state: model %s/%s has no compute function", parent.URI(), id))
	}
	m := &Model{compute: compute}
	m.init(parent, id, m)
	return m
}

// DependsOn registers m as a dependent of every source.
func (m *Model) DependsOn(sources ...Observable) *Model {
	for _, s := range sources {
		s.AddModel(m)
	}
	return m
}

func (m *Model) String() string {
	if !m.valid {
		m.text = m.compute()
		m.valid = true
	}
	return m.text
}

func (m *Model) invalidate() { m.valid = false }

func (m *Model) refresh() string {
	m.valid = false
	return m.String()
}

// Computed is a derived typed value, rendered with fmt unless a format is set.
type Computed[T any] struct {
	node
	compute func() T
	format  func(T) string
	value   T
	valid   bool
}

func NewComputed[T any](parent Item, id string, compute func() T) *Computed[T] {
	if compute == nil {
		panic(fmt.Sprintf("state: computed %s/%s has no compute function", parent.URI(), id))
	}
	c := &Computed[T]{compute: compute}
	c.init(parent, id, c)
	return c
}

func (c *Computed[T]) DependsOn(sources ...Observable) *Computed[T] {
	for _, s := range sources {
		s.AddModel(c)
	}
	return c
}

func (c *Computed[T]) WithFormat(format func(T) string) *Computed[T] {
	c.format = format
	return c
}

func (c *Computed[T]) Get() T {
	if !c.valid {
		c.value = c.compute()
		c.valid = true
	}
	return c.value
}

func (c *Computed[T]) String() string {
	v := c.Get()
	if c.format != nil {
		return c.format(v)
	}
	return fmt.Sprint(v)
}

func (c *Computed[T]) invalidate() { c.valid = false }

func (c *Computed[T]) refresh() string {
	c.valid = false
	return c.String()
}
