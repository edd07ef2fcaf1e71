package engine

import (
	"strings"

	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/errors"
)

// AllEntries returns every placed entry in display order: a category's own
// entries first, then its children depth-first.
func (e *Engine) AllEntries() []catalog.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.clones(e.tree.Root().AllEntries())
}

// Categories returns a snapshot of the whole category tree.
func (e *Engine) Categories() catalog.CategorySnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.tree.Root().Snapshot()
}

// FindCategory returns the first category named name in pre-order.
func (e *Engine) FindCategory(name string) (catalog.CategorySnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	found := e.tree.Root().FindByName(name)
	if found == nil {
		return catalog.CategorySnapshot{}, errors.NewNotFound("category", name)
	}
	return found.Snapshot(), nil
}

// CreateCategory adds a child named name under the category at parentPath.
// Sibling names must be unique so that paths stay unambiguous.
func (e *Engine) CreateCategory(parentPath []string, name string) (catalog.CategorySnapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.CategorySnapshot{}, errors.NewInvalidInput("category name must not be empty")
	}
	if strings.Contains(name, "/") {
		return catalog.CategorySnapshot{}, errors.NewInvalidInput("category name must not contain '/'")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	parent, ok := e.tree.Resolve(parentPath)
	if !ok {
		return catalog.CategorySnapshot{}, errors.NewNotFound("category", catalog.JoinPath(parentPath))
	}
	if parent.Child(name) != nil {
		return catalog.CategorySnapshot{}, errors.NewAlreadyExists("category", catalog.JoinPath(append(parent.Path(), name)))
	}

	child := parent.AddChild(name)
	e.logger.Debug("category created", "path", catalog.JoinPath(child.Path()))
	return child.Snapshot(), nil
}

// AddEntry takes ownership of ent and places it in the category at path.
// Nothing is stored when the path or the entry is rejected.
func (e *Engine) AddEntry(path []string, ent *catalog.Entry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	node, ok := e.tree.Resolve(path)
	if !ok {
		return errors.NewNotFound("category", catalog.JoinPath(path))
	}
	if err := e.admit(ent); err != nil {
		return err
	}
	e.place(node, ent.ID)
	return nil
}

// place records id under node. Caller holds mu.
func (e *Engine) place(node *catalog.Category, id string) {
	node.AddEntry(id)
	e.placement[id] = node.ID()
	e.logger.Debug("entry placed", "entry_id", id, "category", node.Name())
}
