package ops

import (
	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/engine"
)

// CategoryTreeOutput contains the whole category tree.
type CategoryTreeOutput struct {
	Root       catalog.CategorySnapshot `json:"root"`
	Categories int                      `json:"categories"`
}

// CategoryTree returns a snapshot of the category tree.
func CategoryTree(eng *engine.Engine) (*CategoryTreeOutput, error) {
	root := eng.Categories()
	return &CategoryTreeOutput{Root: root, Categories: countCategories(root)}, nil
}

func countCategories(s catalog.CategorySnapshot) int {
	n := 1
	for _, child := range s.Children {
		n += countCategories(child)
	}
	return n
}

// FindCategoryInput contains parameters for the FindCategory operation.
type FindCategoryInput struct {
	Name string // required, exact match
}

// FindCategoryOutput contains the matched category and the entries under it.
type FindCategoryOutput struct {
	Category catalog.CategorySnapshot `json:"category"`
	Entries  []EntryView              `json:"entries"`
}

// FindCategory searches the tree depth-first for a category by name.
func FindCategory(eng *engine.Engine, input FindCategoryInput) (*FindCategoryOutput, error) {
	name, err := requireName("name", input.Name)
	if err != nil {
		return nil, err
	}
	found, err := eng.FindCategory(name)
	if err != nil {
		return nil, err
	}

	var entries []catalog.Entry
	for _, id := range subtreeEntries(found) {
		if ent, err := eng.Entry(id); err == nil {
			entries = append(entries, ent)
		}
	}
	return &FindCategoryOutput{Category: found, Entries: entryViews(entries)}, nil
}

func subtreeEntries(s catalog.CategorySnapshot) []string {
	out := append([]string{}, s.Entries...)
	for _, child := range s.Children {
		out = append(out, subtreeEntries(child)...)
	}
	return out
}

// CreateCategoryInput contains parameters for the CreateCategory operation.
type CreateCategoryInput struct {
	Parent string // parent path; empty = root
	Name   string // required
}

// CreateCategoryOutput contains the created category.
type CreateCategoryOutput struct {
	Category catalog.CategorySnapshot `json:"category"`
	Path     string                   `json:"path"`
}

// CreateCategory adds a child category under Parent.
func CreateCategory(eng *engine.Engine, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	created, err := eng.CreateCategory(catalog.SplitPath(input.Parent), input.Name)
	if err != nil {
		return nil, err
	}
	return &CreateCategoryOutput{Category: created, Path: catalog.JoinPath(created.Path)}, nil
}
