package ops

import (
	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/engine"
)

// ListEntriesInput contains parameters for the ListEntries operation.
type ListEntriesInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// ListEntriesOutput contains the result of the ListEntries operation.
type ListEntriesOutput struct {
	Items      []EntryView `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// ListEntries returns placed entries in tree display order with pagination.
func ListEntries(eng *engine.Engine, input ListEntriesInput) (*ListEntriesOutput, error) {
	limit := clampLimit(input.Limit, DefaultListLimit, MaxListLimit)
	offset := max(input.Offset, 0)

	all := eng.AllEntries()
	total := len(all)

	start := min(offset, total)
	end := min(start+limit, total)

	return &ListEntriesOutput{
		Items: entryViews(all[start:end]),
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: end < total,
			Total:   total,
		},
	}, nil
}

// GetEntryInput contains parameters for the GetEntry operation.
type GetEntryInput struct {
	ID string // required
}

// GetEntryOutput contains the result of the GetEntry operation.
type GetEntryOutput struct {
	EntryView
	// CategoryPath is empty for the root and absent for pending uploads
	CategoryPath *string          `json:"category_path,omitempty"`
	Comments     []catalog.Comment `json:"comments"`
}

// GetEntry returns one entry with its comments and placement.
func GetEntry(eng *engine.Engine, input GetEntryInput) (*GetEntryOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	ent, err := eng.Entry(id)
	if err != nil {
		return nil, err
	}

	out := &GetEntryOutput{
		EntryView: NewEntryView(ent),
		Comments:  ent.Comments().All(),
	}
	if path, ok := eng.CategoryOf(id); ok {
		joined := catalog.JoinPath(path)
		out.CategoryPath = &joined
	}
	return out, nil
}

// AddEntryInput contains parameters for the AddEntry operation.
type AddEntryInput struct {
	Path     string // category path like "Education/Programming"; empty = root
	Title    string // required
	Label    string // category label; defaults to the last path segment
	Duration string
	FilePath string
}

// AddEntryOutput contains the result of the AddEntry operation.
type AddEntryOutput struct {
	ID    string    `json:"id"`
	Entry EntryView `json:"entry"`
}

// AddEntry creates an entry and places it in a category.
func AddEntry(eng *engine.Engine, input AddEntryInput) (*AddEntryOutput, error) {
	path := catalog.SplitPath(input.Path)
	ent, err := newEntry(input.Title, input.Label, input.Duration, input.FilePath, path, eng.Now())
	if err != nil {
		return nil, err
	}
	if err := eng.AddEntry(path, ent); err != nil {
		return nil, err
	}
	stored, err := eng.Entry(ent.ID)
	if err != nil {
		return nil, err
	}
	return &AddEntryOutput{ID: ent.ID, Entry: NewEntryView(stored)}, nil
}
