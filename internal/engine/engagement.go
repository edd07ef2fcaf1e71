package engine

import (
	"github.com/hpungsan/reel/internal/catalog"
)

// ToggleLike flips the like state of an entry and resyncs the liked playlist.
func (e *Engine) ToggleLike(id string) (catalog.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, err := e.entry(id)
	if err != nil {
		return catalog.Entry{}, err
	}
	ent.ToggleLike()
	e.syncLiked(ent)
	return ent.Clone(), nil
}

// ToggleDislike flips the dislike state of an entry and resyncs the liked
// playlist, since disliking a liked entry retracts the like.
func (e *Engine) ToggleDislike(id string) (catalog.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, err := e.entry(id)
	if err != nil {
		return catalog.Entry{}, err
	}
	ent.ToggleDislike()
	e.syncLiked(ent)
	return ent.Clone(), nil
}

// syncLiked is the single place where the liked playlist follows reactions:
// membership equals the set of entries whose reaction is liked. Caller holds mu.
func (e *Engine) syncLiked(ent *catalog.Entry) {
	liked := e.playlists[LikedPlaylist]
	if ent.Reaction == catalog.ReactionLiked {
		if liked.Add(ent.ID) {
			e.logger.Debug("liked playlist add", "entry_id", ent.ID)
		}
		return
	}
	if liked.Remove(ent.ID) {
		e.logger.Debug("liked playlist remove", "entry_id", ent.ID)
	}
}

// AddComment appends a comment to an entry, stamped with the engine clock.
func (e *Engine) AddComment(id, username, text string) (catalog.Comment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, err := e.entry(id)
	if err != nil {
		return catalog.Comment{}, err
	}
	return ent.Comments().Add(username, text, e.now())
}

// LikeComment increments the like counter of one comment.
func (e *Engine) LikeComment(id, commentID string) (catalog.Comment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, err := e.entry(id)
	if err != nil {
		return catalog.Comment{}, err
	}
	return ent.Comments().Like(commentID)
}

// Comments returns an entry's comments in insertion order.
func (e *Engine) Comments(id string) ([]catalog.Comment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, err := e.entry(id)
	if err != nil {
		return nil, err
	}
	return ent.Comments().All(), nil
}
