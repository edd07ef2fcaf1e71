package catalog

import "time"

// Reaction is the local user's engagement state on an entry.
type Reaction string

const (
	ReactionNone     Reaction = "none"
	ReactionLiked    Reaction = "liked"
	ReactionDisliked Reaction = "disliked"
)

// Entry is a catalogued media record.
type Entry struct {
	// ID is a ULID that uniquely identifies this entry
	ID string

	// Title is the display title
	Title string

	// Category is the free-form category label (e.g., "Education").
	// It is informational; placement in the category tree is decided by the caller.
	Category string

	// Duration is an opaque duration string as supplied by the caller (e.g., "12:20")
	Duration string

	// FilePath is handed untouched to external players (may be empty)
	FilePath string

	// UploadedAt is when the entry was created
	UploadedAt time.Time

	Views    int
	Likes    int
	Dislikes int

	// Reaction is always exactly one of none, liked, disliked
	Reaction Reaction

	comments CommentLog
}

// NewEntry creates an entry with no reaction and no comments.
func NewEntry(id, title, category, duration string, uploadedAt time.Time) *Entry {
	return &Entry{
		ID:         id,
		Title:      title,
		Category:   category,
		Duration:   duration,
		UploadedAt: uploadedAt,
		Reaction:   ReactionNone,
	}
}

// ToggleLike flips the like state. Liking a disliked entry retracts the dislike.
func (e *Entry) ToggleLike() {
	if e.Reaction == ReactionLiked {
		e.Reaction = ReactionNone
		e.Likes--
		return
	}
	if e.Reaction == ReactionDisliked {
		e.Dislikes--
	}
	e.Reaction = ReactionLiked
	e.Likes++
}

// ToggleDislike flips the dislike state. Disliking a liked entry retracts the like.
func (e *Entry) ToggleDislike() {
	if e.Reaction == ReactionDisliked {
		e.Reaction = ReactionNone
		e.Dislikes--
		return
	}
	if e.Reaction == ReactionLiked {
		e.Likes--
	}
	e.Reaction = ReactionDisliked
	e.Dislikes++
}

// LikeRatio returns likes as a percentage of all reactions, 0 when there are none.
func (e *Entry) LikeRatio() float64 {
	total := e.Likes + e.Dislikes
	if total == 0 {
		return 0
	}
	return float64(e.Likes) / float64(total) * 100
}

// Comments returns the entry's comment log.
func (e *Entry) Comments() *CommentLog {
	return &e.comments
}

// Clone returns a deep copy safe to hand out of the engine.
func (e *Entry) Clone() Entry {
	c := *e
	c.comments = CommentLog{items: e.comments.All()}
	return c
}
