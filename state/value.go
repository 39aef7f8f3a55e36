package state

import "fmt"

// Value is a single-value state. T must be comparable so that setting an equal
// value can be detected and skipped; interface types holding uncomparable
// dynamic values panic on Set.
type Value[T comparable] struct {
	cell
	value  T
	format func(T) string
}

func NewValue[T comparable](parent Item, id string, initial T) *Value[T] {
	s := &Value[T]{value: initial}
	s.init(parent, id, s)
	return s
}

func NewBoolean(parent Item, id string, initial bool) *Value[bool] {
	return NewValue(parent, id, initial)
}

func NewString(parent Item, id string, initial string) *Value[string] {
	return NewValue(parent, id, initial)
}

// WithFormat sets how the value is rendered for observers.
func (s *Value[T]) WithFormat(format func(T) string) *Value[T] {
	s.format = format
	return s
}

func (s *Value[T]) Get() T {
	return s.value
}

// Set records a change to v. Setting the current value is a no-op.
func (s *Value[T]) Set(v T) {
	if s.value == v {
		return
	}
	s.record(&valueChange[T]{state: s, prev: s.value, next: v})
}

func (s *Value[T]) String() string {
	if s.format != nil {
		return s.format(s.value)
	}
	return fmt.Sprint(s.value)
}

// Integer is an int state with arithmetic helpers.
type Integer struct {
	Value[int]
}

func NewInteger(parent Item, id string, initial int) *Integer {
	s := &Integer{}
	s.value = initial
	s.init(parent, id, s)
	return s
}

func (s *Integer) Add(delta int) {
	s.Set(s.value + delta)
}
