package engine

import "github.com/hpungsan/reel/internal/catalog"

// Play records an entry as now playing and pushes it onto the watch history.
func (e *Engine) Play(id string) (catalog.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, err := e.entry(id)
	if err != nil {
		return catalog.Entry{}, err
	}
	e.nowPlaying = id
	if evicted, ok := e.history.Push(id); ok {
		e.logger.Debug("history eviction", "entry_id", evicted)
	}
	return ent.Clone(), nil
}

// NowPlaying returns the entry most recently passed to Play.
func (e *Engine) NowPlaying() (catalog.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.entries[e.nowPlaying]
	if !ok {
		return catalog.Entry{}, false
	}
	return ent.Clone(), true
}

// History returns the watch history, most recent first.
func (e *Engine) History() []catalog.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.clones(e.history.All())
}
