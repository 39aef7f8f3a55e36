package state

import "fmt"

// Item is anything with a stable identity inside a game's ownership tree.
type Item interface {
	ID() string
	Parent() Item
	Root() *Root
	URI() string
}

type item struct {
	id     string
	parent Item
	root   *Root
	uri    string
}

func newItem(parent Item, id string) item {
	if parent == nil {
		panic(fmt.Sprintf("state: item %q has no parent", id))
	}
	if id == "" {
		panic(fmt.Sprintf("state: empty id below %q", parent.URI()))
	}
	return item{
		id:     id,
		parent: parent,
		root:   parent.Root(),
		uri:    parent.URI() + "/" + id,
	}
}

func (i *item) ID() string     { return i.id }
func (i *item) Parent() Item   { return i.parent }
func (i *item) Root() *Root    { return i.root }
func (i *item) URI() string    { return i.uri }
func (i *item) String() string { return i.uri }

// Owner is a plain item that groups states and models, e.g. a player or a company.
type Owner struct {
	item
}

// NewOwner creates and registers an owner below parent.
func NewOwner(parent Item, id string) *Owner {
	o := &Owner{item: newItem(parent, id)}
	o.root.register(o)
	return o
}
