package ops

import (
	"strings"

	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/engine"
	"github.com/hpungsan/reel/internal/errors"
)

// AddCommentInput contains parameters for the AddComment operation.
type AddCommentInput struct {
	ID       string // entry id, required
	Username string // defaults to "You"
	Text     string // required, must not be blank
}

// CommentOutput contains a single comment.
type CommentOutput struct {
	EntryID string          `json:"entry_id"`
	Comment catalog.Comment `json:"comment"`
}

// AddComment posts a comment on an entry.
func AddComment(eng *engine.Engine, input AddCommentInput) (*CommentOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = DefaultUsername
	}
	c, err := eng.AddComment(id, username, input.Text)
	if err != nil {
		return nil, err
	}
	return &CommentOutput{EntryID: id, Comment: c}, nil
}

// ListCommentsInput contains parameters for the ListComments operation.
type ListCommentsInput struct {
	ID string // entry id, required
}

// ListCommentsOutput contains an entry's comments in posting order.
type ListCommentsOutput struct {
	EntryID string            `json:"entry_id"`
	Items   []catalog.Comment `json:"items"`
}

// ListComments returns an entry's comments.
func ListComments(eng *engine.Engine, input ListCommentsInput) (*ListCommentsOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	items, err := eng.Comments(id)
	if err != nil {
		return nil, err
	}
	return &ListCommentsOutput{EntryID: id, Items: items}, nil
}

// LikeCommentInput contains parameters for the LikeComment operation.
type LikeCommentInput struct {
	ID        string // entry id, required
	CommentID string // required
}

// LikeComment increments a comment's like counter.
func LikeComment(eng *engine.Engine, input LikeCommentInput) (*CommentOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	commentID := strings.TrimSpace(input.CommentID)
	if commentID == "" {
		return nil, errors.NewInvalidInput("comment_id is required")
	}
	c, err := eng.LikeComment(id, commentID)
	if err != nil {
		return nil, err
	}
	return &CommentOutput{EntryID: id, Comment: c}, nil
}
