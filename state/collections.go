package state

import (
	"fmt"
	"railway/utils"
	"slices"
	"strings"
)

// Set is an unordered collection state. Iteration follows insertion order and
// undo restores removed elements at their former position.
type Set[T comparable] struct {
	cell
	members map[T]struct{}
	items   []T
}

func NewSet[T comparable](parent Item, id string, initial ...T) *Set[T] {
	s := &Set[T]{members: make(map[T]struct{})}
	for _, v := range initial {
		if _, ok := s.members[v]; !ok {
			s.members[v] = struct{}{}
			s.items = append(s.items, v)
		}
	}
	s.init(parent, id, s)
	return s
}

// Add inserts v and reports whether the set changed.
func (s *Set[T]) Add(v T) bool {
	if s.Contains(v) {
		return false
	}
	s.record(&setChange[T]{state: s, add: true, elem: v, pos: len(s.items)})
	return true
}

// Remove deletes v and reports whether the set changed.
func (s *Set[T]) Remove(v T) bool {
	pos := utils.FindIndex(s.items, v)
	if pos < 0 {
		return false
	}
	s.record(&setChange[T]{state: s, add: false, elem: v, pos: pos})
	return true
}

func (s *Set[T]) Contains(v T) bool {
	_, ok := s.members[v]
	return ok
}

func (s *Set[T]) Len() int   { return len(s.items) }
func (s *Set[T]) Items() []T { return slices.Clone(s.items) }

func (s *Set[T]) String() string {
	return "{" + join(s.items) + "}"
}

func (s *Set[T]) insert(pos int, v T) {
	s.members[v] = struct{}{}
	s.items = slices.Insert(s.items, pos, v)
}

func (s *Set[T]) delete(pos int, v T) {
	delete(s.members, v)
	s.items = slices.Delete(s.items, pos, pos+1)
}

// Map is a key/value state. Keys iterate in insertion order.
type Map[K comparable, V comparable] struct {
	cell
	entries map[K]V
	keys    []K
}

func NewMap[K comparable, V comparable](parent Item, id string) *Map[K, V] {
	s := &Map[K, V]{entries: make(map[K]V)}
	s.init(parent, id, s)
	return s
}

// Put assigns v to k. Assigning the current value is a no-op.
func (s *Map[K, V]) Put(k K, v V) {
	prev, ok := s.entries[k]
	if ok && prev == v {
		return
	}
	pos := len(s.keys)
	if ok {
		pos = utils.FindIndex(s.keys, k)
	}
	s.record(&mapChange[K, V]{state: s, key: k, prev: prev, hadPrev: ok, next: v, hasNext: true, pos: pos})
}

// Remove deletes k and reports whether the map changed.
func (s *Map[K, V]) Remove(k K) bool {
	prev, ok := s.entries[k]
	if !ok {
		return false
	}
	var zero V
	s.record(&mapChange[K, V]{state: s, key: k, prev: prev, hadPrev: true, next: zero, hasNext: false, pos: utils.FindIndex(s.keys, k)})
	return true
}

func (s *Map[K, V]) Get(k K) (V, bool) {
	v, ok := s.entries[k]
	return v, ok
}

// GetOr returns the value of k, or fallback when k is absent.
func (s *Map[K, V]) GetOr(k K, fallback V) V {
	if v, ok := s.entries[k]; ok {
		return v
	}
	return fallback
}

func (s *Map[K, V]) Len() int  { return len(s.keys) }
func (s *Map[K, V]) Keys() []K { return slices.Clone(s.keys) }

func (s *Map[K, V]) String() string {
	parts := make([]string, len(s.keys))
	for i, k := range s.keys {
		parts[i] = fmt.Sprintf("%v=%v", k, s.entries[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *Map[K, V]) assign(k K, v V, present bool, pos int) {
	_, exists := s.entries[k]
	switch {
	case present && !exists:
		s.keys = slices.Insert(s.keys, pos, k)
		s.entries[k] = v
	case present:
		s.entries[k] = v
	case exists:
		s.keys = slices.Delete(s.keys, pos, pos+1)
		delete(s.entries, k)
	}
}

// List is an ordered collection state that allows duplicates.
type List[T comparable] struct {
	cell
	items []T
}

func NewList[T comparable](parent Item, id string, initial ...T) *List[T] {
	s := &List[T]{items: slices.Clone(initial)}
	s.init(parent, id, s)
	return s
}

func (s *List[T]) Append(v T) {
	s.Insert(len(s.items), v)
}

// Insert places v at position i. It panics if i is out of range.
func (s *List[T]) Insert(i int, v T) {
	if i < 0 || i > len(s.items) {
		panic(fmt.Sprintf("state: insert index %d out of range [0,%d] in %s", i, len(s.items), s.URI()))
	}
	s.record(&listChange[T]{state: s, insert: true, elem: v, pos: i})
}

// RemoveAt deletes the element at position i. It panics if i is out of range.
func (s *List[T]) RemoveAt(i int) T {
	if i < 0 || i >= len(s.items) {
		panic(fmt.Sprintf("state: remove index %d out of range [0,%d) in %s", i, len(s.items), s.URI()))
	}
	v := s.items[i]
	s.record(&listChange[T]{state: s, insert: false, elem: v, pos: i})
	return v
}

// Remove deletes the first occurrence of v and reports whether the list changed.
func (s *List[T]) Remove(v T) bool {
	i := s.IndexOf(v)
	if i < 0 {
		return false
	}
	s.RemoveAt(i)
	return true
}

func (s *List[T]) IndexOf(v T) int { return utils.FindIndex(s.items, v) }
func (s *List[T]) Get(i int) T     { return s.items[i] }
func (s *List[T]) Len() int        { return len(s.items) }
func (s *List[T]) Items() []T      { return slices.Clone(s.items) }

func (s *List[T]) String() string {
	return "[" + join(s.items) + "]"
}

func (s *List[T]) insertAt(pos int, v T) {
	s.items = slices.Insert(s.items, pos, v)
}

func (s *List[T]) removeAt(pos int) {
	s.items = slices.Delete(s.items, pos, pos+1)
}

func join[T any](items []T) string {
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
