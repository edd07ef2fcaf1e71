package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hpungsan/reel/internal/errors"
)

// Comment is a single comment on an entry. Only Likes changes after creation.
type Comment struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
}

// CommentLog is an append-only, insertion-ordered list of comments.
type CommentLog struct {
	items []Comment
}

// Add appends a new comment stamped with at. Blank text is rejected and nothing is appended.
func (l *CommentLog) Add(username, text string, at time.Time) (Comment, error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, errors.NewInvalidInput("comment text must not be empty")
	}
	c := Comment{
		ID:        uuid.NewString(),
		Username:  username,
		Text:      text,
		CreatedAt: at,
	}
	l.items = append(l.items, c)
	return c, nil
}

// Like increments the like counter of the comment with the given id.
func (l *CommentLog) Like(id string) (Comment, error) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Likes++
			return l.items[i], nil
		}
	}
	return Comment{}, errors.NewNotFound("comment", id)
}

// All returns a copy of the comments in insertion order.
func (l *CommentLog) All() []Comment {
	out := make([]Comment, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of comments.
func (l *CommentLog) Len() int {
	return len(l.items)
}
