package ops

import (
	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/engine"
)

// ReactInput contains parameters for the Like and Dislike operations.
type ReactInput struct {
	ID string // required
}

// ReactOutput reports the entry after the toggle.
type ReactOutput struct {
	Entry   EntryView `json:"entry"`
	InLiked bool      `json:"in_liked_playlist"`
}

// Like toggles the like state of an entry.
func Like(eng *engine.Engine, input ReactInput) (*ReactOutput, error) {
	return react(input, eng.ToggleLike)
}

// Dislike toggles the dislike state of an entry.
func Dislike(eng *engine.Engine, input ReactInput) (*ReactOutput, error) {
	return react(input, eng.ToggleDislike)
}

func react(input ReactInput, toggle func(string) (catalog.Entry, error)) (*ReactOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	ent, err := toggle(id)
	if err != nil {
		return nil, err
	}
	return &ReactOutput{
		Entry:   NewEntryView(ent),
		InLiked: ent.Reaction == catalog.ReactionLiked,
	}, nil
}
