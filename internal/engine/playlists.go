package engine

import (
	"strings"

	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/errors"
)

// CreatePlaylist creates an empty playlist named name.
func (e *Engine) CreatePlaylist(name string) (*catalog.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidInput("playlist name must not be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.playlists[name]; exists {
		return nil, errors.NewAlreadyExists("playlist", name)
	}
	p := catalog.NewPlaylist(name, e.now())
	e.playlists[name] = p
	e.order = append(e.order, name)
	e.logger.Debug("playlist created", "playlist", name)
	return p.Clone(), nil
}

// Playlist returns a copy of the named playlist.
func (e *Engine) Playlist(name string) (*catalog.Playlist, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.playlists[name]
	if !ok {
		return nil, errors.NewNotFound("playlist", name)
	}
	return p.Clone(), nil
}

// Playlists returns copies of every playlist in creation order.
func (e *Engine) Playlists() []*catalog.Playlist {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*catalog.Playlist, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.playlists[name].Clone())
	}
	return out
}

// PlaylistEntries resolves a playlist's ids to entry copies, in order.
func (e *Engine) PlaylistEntries(name string) ([]catalog.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.playlists[name]
	if !ok {
		return nil, errors.NewNotFound("playlist", name)
	}
	return e.clones(p.All()), nil
}

// AddToPlaylist adds an entry to a user playlist. added is false when the
// entry was already a member.
func (e *Engine) AddToPlaylist(name, id string) (added bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.userPlaylist(name)
	if err != nil {
		return false, err
	}
	if _, err := e.entry(id); err != nil {
		return false, err
	}
	return p.Add(id), nil
}

// RemoveFromPlaylist removes an entry from a user playlist. removed is false
// when the entry was not a member.
func (e *Engine) RemoveFromPlaylist(name, id string) (removed bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.userPlaylist(name)
	if err != nil {
		return false, err
	}
	if _, err := e.entry(id); err != nil {
		return false, err
	}
	return p.Remove(id), nil
}

// ShufflePlaylist randomizes a playlist's order. Membership is unchanged, so
// auto playlists may be shuffled too.
func (e *Engine) ShufflePlaylist(name string) (*catalog.Playlist, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.playlists[name]
	if !ok {
		return nil, errors.NewNotFound("playlist", name)
	}
	p.Shuffle(e.rng)
	return p.Clone(), nil
}

// userPlaylist returns a playlist that callers may edit directly. Caller holds mu.
func (e *Engine) userPlaylist(name string) (*catalog.Playlist, error) {
	p, ok := e.playlists[name]
	if !ok {
		return nil, errors.NewNotFound("playlist", name)
	}
	if p.Auto {
		return nil, errors.NewInvalidInput("playlist " + name + " is maintained automatically")
	}
	return p, nil
}
