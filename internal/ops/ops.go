package ops

import (
	"strings"
	"time"

	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit   = 20
	MaxListLimit       = 100
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// DefaultUsername is used for comments posted without a username.
const DefaultUsername = "You"

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// EntryView is the JSON shape of an entry.
type EntryView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Duration     string    `json:"duration"`
	FilePath     string    `json:"file_path,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Views        int       `json:"views"`
	Likes        int       `json:"likes"`
	Dislikes     int       `json:"dislikes"`
	LikeRatio    float64   `json:"like_ratio"`
	Reaction     string    `json:"reaction"`
	CommentCount int       `json:"comment_count"`
}

// NewEntryView builds the view of an entry.
func NewEntryView(ent catalog.Entry) EntryView {
	return EntryView{
		ID:           ent.ID,
		Title:        ent.Title,
		Category:     ent.Category,
		Duration:     ent.Duration,
		FilePath:     ent.FilePath,
		UploadedAt:   ent.UploadedAt,
		Views:        ent.Views,
		Likes:        ent.Likes,
		Dislikes:     ent.Dislikes,
		LikeRatio:    ent.LikeRatio(),
		Reaction:     string(ent.Reaction),
		CommentCount: ent.Comments().Len(),
	}
}

// entryViews converts entries, never returning nil.
func entryViews(entries []catalog.Entry) []EntryView {
	out := make([]EntryView, 0, len(entries))
	for _, ent := range entries {
		out = append(out, NewEntryView(ent))
	}
	return out
}

// optionalView returns a pointer to the view of ent when ok.
func optionalView(ent catalog.Entry, ok bool) *EntryView {
	if !ok {
		return nil
	}
	v := NewEntryView(ent)
	return &v
}

// requireID trims and validates an entry id.
func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.NewInvalidInput("id is required")
	}
	return id, nil
}

// requireName trims and validates a named resource (playlist, category).
func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.NewInvalidInput(field + " is required")
	}
	return name, nil
}

// clampLimit applies a default and an upper bound to a requested limit.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, maxLimit)
}

// newEntry builds an entry with a fresh id. label defaults to the last
// category path segment.
func newEntry(title, label, duration, filePath string, path []string, at time.Time) (*catalog.Entry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewInvalidInput("title is required")
	}
	label = strings.TrimSpace(label)
	if label == "" && len(path) > 0 {
		label = path[len(path)-1]
	}
	id, err := catalog.NewID(at)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	ent := catalog.NewEntry(id, title, label, strings.TrimSpace(duration), at)
	ent.FilePath = filePath
	return ent, nil
}
