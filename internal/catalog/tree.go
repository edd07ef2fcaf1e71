package catalog

import "slices"

// NoParent is the parent id of the root category.
const NoParent = -1

// Tree owns every category node. Nodes are indexed by id so that a child can
// resolve its parent without holding a pointer to it.
type Tree struct {
	index []*Category
}

// Category is a node of the category tree. It owns its children and the
// placement of its entries.
type Category struct {
	id       int
	name     string
	parent   int
	tree     *Tree
	children []*Category
	entries  []string
}

// NewTree creates a tree with a single root named rootName.
func NewTree(rootName string) *Tree {
	t := &Tree{}
	t.newNode(rootName, NoParent)
	return t
}

func (t *Tree) newNode(name string, parent int) *Category {
	c := &Category{
		id:     len(t.index),
		name:   name,
		parent: parent,
		tree:   t,
	}
	t.index = append(t.index, c)
	return c
}

// Root returns the root category.
func (t *Tree) Root() *Category {
	return t.index[0]
}

// Lookup returns the category with the given id.
func (t *Tree) Lookup(id int) (*Category, bool) {
	if id < 0 || id >= len(t.index) {
		return nil, false
	}
	return t.index[id], true
}

// Resolve walks child names starting at the root. An empty path is the root.
// At each level the first child with a matching name wins.
func (t *Tree) Resolve(path []string) (*Category, bool) {
	cur := t.Root()
	for _, name := range path {
		next := cur.Child(name)
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Len returns the number of categories, root included.
func (t *Tree) Len() int {
	return len(t.index)
}

func (c *Category) ID() int      { return c.id }
func (c *Category) Name() string { return c.name }

// AddChild creates a new child category under c.
func (c *Category) AddChild(name string) *Category {
	child := c.tree.newNode(name, c.id)
	c.children = append(c.children, child)
	return child
}

// AddEntry places an entry id in this category.
func (c *Category) AddEntry(id string) {
	c.entries = append(c.entries, id)
}

// Child returns the first direct child named name, or nil.
func (c *Category) Child(name string) *Category {
	for _, child := range c.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// Children returns the direct children in insertion order.
func (c *Category) Children() []*Category {
	return slices.Clone(c.children)
}

// Entries returns the entry ids placed directly in this category.
func (c *Category) Entries() []string {
	return slices.Clone(c.entries)
}

// AllEntries returns this category's entries followed by each child's
// AllEntries, depth-first, children in insertion order.
func (c *Category) AllEntries() []string {
	out := slices.Clone(c.entries)
	for _, child := range c.children {
		out = append(out, child.AllEntries()...)
	}
	return out
}

// FindByName searches this subtree depth-first, pre-order, and returns the
// first category whose name equals name.
func (c *Category) FindByName(name string) *Category {
	if c.name == name {
		return c
	}
	for _, child := range c.children {
		if found := child.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Parent returns the parent category, or nil for the root.
func (c *Category) Parent() *Category {
	p, ok := c.tree.Lookup(c.parent)
	if !ok {
		return nil
	}
	return p
}

// Path returns the category names from the root down to c, root excluded.
func (c *Category) Path() []string {
	var path []string
	for cur := c; cur.parent != NoParent; cur = cur.Parent() {
		path = append(path, cur.name)
	}
	slices.Reverse(path)
	return path
}

// CategorySnapshot is a detached copy of a subtree.
type CategorySnapshot struct {
	ID       int                `json:"id"`
	Name     string             `json:"name"`
	Path     []string           `json:"path"`
	Entries  []string           `json:"entries"`
	Children []CategorySnapshot `json:"children,omitempty"`
}

// Snapshot copies the subtree rooted at c.
func (c *Category) Snapshot() CategorySnapshot {
	s := CategorySnapshot{
		ID:      c.id,
		Name:    c.name,
		Path:    c.Path(),
		Entries: c.Entries(),
	}
	for _, child := range c.children {
		s.Children = append(s.Children, child.Snapshot())
	}
	return s
}
