package state

import (
	"fmt"
	"time"
)

type registration struct {
	id       int
	observer Observer
}

type entry struct {
	item       Observable
	model      Derived  // nil for states
	dependents []nodeID // models reading this node, in registration order
	observers  []registration
}

// Manager is the dependency graph of one game. Nodes are states and models,
// addressed by handle; edges point from a source to the models that read it.
// Edges are only ever added, and cycles are reported when an update pass
// reaches them rather than when they are wired.
type Manager struct {
	root         *Root
	nodes        []*entry
	nextObserver int
}

func newManager(root *Root) *Manager {
	return &Manager{root: root}
}

func (m *Manager) register(o Observable) nodeID {
	e := &entry{item: o}
	if d, ok := o.(Derived); ok {
		e.model = d
	}
	m.nodes = append(m.nodes, e)
	return nodeID(len(m.nodes) - 1)
}

// AddModel registers dependent as reading source.
func (m *Manager) AddModel(dependent Derived, source Observable) {
	source.AddModel(dependent)
}

// AddObserver registers o on target and returns its removal function.
func (m *Manager) AddObserver(o Observer, target Observable) func() {
	return target.AddObserver(o)
}

func (m *Manager) addEdge(source, dependent nodeID) {
	d := m.nodes[dependent]
	if d.model == nil {
		panic(fmt.Sprintf("state: %s cannot depend on %s: it is not a model", d.item.URI(), m.nodes[source].item.URI()))
	}
	s := m.nodes[source]
	for _, id := range s.dependents {
		if id == dependent {
			return
		}
	}
	s.dependents = append(s.dependents, dependent)
	d.model.invalidate()
}

func (m *Manager) addObserver(target nodeID, o Observer) func() {
	m.nextObserver++
	id := m.nextObserver
	e := m.nodes[target]
	e.observers = append(e.observers, registration{id: id, observer: o})
	return func() {
		for i, r := range e.observers {
			if r.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

// Dependents returns the models directly reading o.
func (m *Manager) Dependents(o Observable) []Derived {
	ids := m.nodes[o.handle()].dependents
	out := make([]Derived, len(ids))
	for i, id := range ids {
		out[i] = m.nodes[id].model
	}
	return out
}

// ModelsToUpdate returns every model reachable from states, each once, ordered
// so that a model always comes after the models it reads. It fails with a
// *CycleError if a reachable part of the graph is cyclic.
func (m *Manager) ModelsToUpdate(states ...State) ([]Derived, error) {
	ids := make([]nodeID, len(states))
	for i, s := range states {
		ids[i] = s.handle()
	}
	order, err := m.order(ids)
	if err != nil {
		return nil, err
	}
	out := make([]Derived, len(order))
	for i, id := range order {
		out[i] = m.nodes[id].model
	}
	return out, nil
}

const (
	white = iota // unvisited
	grey         // on the current path
	black        // finished
)

// order computes the reverse depth-first postorder of the models reachable
// from sources. With every reachable node finished, a source always finishes
// after its dependents, so the reversal puts it first.
func (m *Manager) order(sources []nodeID) ([]nodeID, error) {
	color := make(map[nodeID]int)
	var path []nodeID
	var post []nodeID

	var visit func(id nodeID) error
	visit = func(id nodeID) error {
		switch color[id] {
		case black:
			return nil
		case grey:
			return m.cycle(path, id)
		}
		color[id] = grey
		path = append(path, id)
		for _, d := range m.nodes[id].dependents {
			if err := visit(d); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		post = append(post, id)
		return nil
	}

	for _, s := range sources {
		for _, d := range m.nodes[s].dependents {
			if err := visit(d); err != nil {
				return nil, err
			}
		}
	}

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post, nil
}

func (m *Manager) cycle(path []nodeID, back nodeID) error {
	start := 0
	for i, id := range path {
		if id == back {
			start = i
			break
		}
	}
	models := make([]string, 0, len(path)-start+1)
	for _, id := range path[start:] {
		models = append(models, m.nodes[id].item.URI())
	}
	models = append(models, m.nodes[back].item.URI())
	return &CycleError{Models: models}
}

// invalidate marks every model reachable from id as stale. It tolerates cycles;
// those are reported by the next update pass.
func (m *Manager) invalidate(id nodeID) {
	seen := make(map[nodeID]bool)
	stack := append([]nodeID(nil), m.nodes[id].dependents...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		m.nodes[n].model.invalidate()
		stack = append(stack, m.nodes[n].dependents...)
	}
}

// recompute refreshes the models in order. A panicking compute function is
// reported as ErrModelFailed and leaves that model stale.
func (m *Manager) recompute(order []nodeID) (err error) {
	var current nodeID
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrModelFailed, m.nodes[current].item.URI(), r)
		}
	}()
	for _, id := range order {
		current = id
		m.nodes[id].model.refresh()
	}
	return nil
}

// notify pushes the text of every touched state to its observers, then the
// text of every recomputed model. start is when the update pass began.
func (m *Manager) notify(states []nodeID, order []nodeID, start time.Time) {
	notified := 0
	for _, id := range states {
		notified += m.push(m.nodes[id])
	}
	for _, id := range order {
		notified += m.push(m.nodes[id])
	}
	m.root.metrics.AddUpdatePass(len(order), notified, time.Since(start))
	m.root.logger.Debug().
		Int("states", len(states)).
		Int("models", len(order)).
		Int("observers", notified).
		Msg("update pass completed")
}

func (m *Manager) push(e *entry) int {
	if len(e.observers) == 0 {
		return 0
	}
	text := e.item.String()
	// observers may unsubscribe while being notified
	observers := append([]registration(nil), e.observers...)
	for _, r := range observers {
		m.update(e, r.observer, text)
	}
	return len(observers)
}

// update hands text to one observer. A panicking observer is logged and does
// not keep the others from being notified.
func (m *Manager) update(e *entry, o Observer, text string) {
	defer func() {
		if r := recover(); r != nil {
			m.root.logger.Error().Str("item", e.item.URI()).Interface("panic", r).Msg("observer panicked")
		}
	}()
	o.Update(text)
}
