package state

type nodeID int

// Observer is notified with the up-to-date text of a state or model after a
// change set closes, or after an undo/redo. It never sees intermediate values.
type Observer interface {
	Update(text string)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(text string)

func (f ObserverFunc) Update(text string) { f(text) }

// Observable is a node of the dependency graph: either a State or a model.
type Observable interface {
	Item
	String() string
	// AddModel registers m as depending on this node.
	AddModel(m Derived)
	// AddObserver registers o and returns a function that removes it again.
	AddObserver(o Observer) (remove func())
	handle() nodeID
}

// State is a mutable cell. Its value only changes through recorded changes.
type State interface {
	Observable
	isState()
}

// Derived is a model: a cached value computed from states and other models.
type Derived interface {
	Observable
	invalidate()
	refresh() string
}

type node struct {
	item
	id nodeID
}

func (n *node) init(parent Item, id string, self Observable) {
	n.item = newItem(parent, id)
	n.root.register(self)
	n.id = n.root.manager.register(self)
}

func (n *node) handle() nodeID { return n.id }

func (n *node) AddModel(m Derived) {
	n.root.manager.addEdge(n.id, m.handle())
}

func (n *node) AddObserver(o Observer) func() {
	return n.root.manager.addObserver(n.id, o)
}

// cell is the node of a state.
type cell struct {
	node
}

func (c *cell) isState() {}

// record applies c and appends it to the open change set.
func (c *cell) record(ch Change) {
	c.root.stack.record(ch)
}
