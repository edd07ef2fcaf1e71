package ops

import (
	"time"

	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/engine"
)

// PlaylistSummary describes a playlist without its entries.
type PlaylistSummary struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Auto      bool      `json:"auto"`
	Count     int       `json:"count"`
}

func summarize(p *catalog.Playlist) PlaylistSummary {
	return PlaylistSummary{Name: p.Name, CreatedAt: p.CreatedAt, Auto: p.Auto, Count: p.Len()}
}

// ListPlaylistsOutput contains every playlist in creation order.
type ListPlaylistsOutput struct {
	Items []PlaylistSummary `json:"items"`
}

// ListPlaylists returns playlist summaries.
func ListPlaylists(eng *engine.Engine) (*ListPlaylistsOutput, error) {
	playlists := eng.Playlists()
	items := make([]PlaylistSummary, 0, len(playlists))
	for _, p := range playlists {
		items = append(items, summarize(p))
	}
	return &ListPlaylistsOutput{Items: items}, nil
}

// PlaylistInput names a playlist.
type PlaylistInput struct {
	Name string // required
}

// PlaylistOutput contains a playlist and its entries in order.
type PlaylistOutput struct {
	PlaylistSummary
	Entries []EntryView `json:"entries"`
}

// GetPlaylist returns a playlist with its entries.
func GetPlaylist(eng *engine.Engine, input PlaylistInput) (*PlaylistOutput, error) {
	name, err := requireName("name", input.Name)
	if err != nil {
		return nil, err
	}
	return playlistOutput(eng, name)
}

func playlistOutput(eng *engine.Engine, name string) (*PlaylistOutput, error) {
	p, err := eng.Playlist(name)
	if err != nil {
		return nil, err
	}
	entries, err := eng.PlaylistEntries(name)
	if err != nil {
		return nil, err
	}
	return &PlaylistOutput{PlaylistSummary: summarize(p), Entries: entryViews(entries)}, nil
}

// CreatePlaylist creates an empty playlist.
func CreatePlaylist(eng *engine.Engine, input PlaylistInput) (*PlaylistOutput, error) {
	p, err := eng.CreatePlaylist(input.Name)
	if err != nil {
		return nil, err
	}
	return &PlaylistOutput{PlaylistSummary: summarize(p), Entries: []EntryView{}}, nil
}

// PlaylistEntryInput names a playlist and an entry.
type PlaylistEntryInput struct {
	Name string // required
	ID   string // required
}

// AddToPlaylistOutput reports whether the entry was added.
type AddToPlaylistOutput struct {
	Name           string `json:"name"`
	ID             string `json:"id"`
	Added          bool   `json:"added"`
	AlreadyPresent bool   `json:"already_present"`
	Count          int    `json:"count"`
}

// AddToPlaylist adds an entry to a user playlist. An existing member is
// reported through AlreadyPresent, not as an error.
func AddToPlaylist(eng *engine.Engine, input PlaylistEntryInput) (*AddToPlaylistOutput, error) {
	name, id, err := playlistEntry(input)
	if err != nil {
		return nil, err
	}
	added, err := eng.AddToPlaylist(name, id)
	if err != nil {
		return nil, err
	}
	p, err := eng.Playlist(name)
	if err != nil {
		return nil, err
	}
	return &AddToPlaylistOutput{Name: name, ID: id, Added: added, AlreadyPresent: !added, Count: p.Len()}, nil
}

// RemoveFromPlaylistOutput reports whether the entry was removed.
type RemoveFromPlaylistOutput struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
	Count   int    `json:"count"`
}

// RemoveFromPlaylist removes an entry from a user playlist.
func RemoveFromPlaylist(eng *engine.Engine, input PlaylistEntryInput) (*RemoveFromPlaylistOutput, error) {
	name, id, err := playlistEntry(input)
	if err != nil {
		return nil, err
	}
	removed, err := eng.RemoveFromPlaylist(name, id)
	if err != nil {
		return nil, err
	}
	p, err := eng.Playlist(name)
	if err != nil {
		return nil, err
	}
	return &RemoveFromPlaylistOutput{Name: name, ID: id, Removed: removed, Count: p.Len()}, nil
}

func playlistEntry(input PlaylistEntryInput) (string, string, error) {
	name, err := requireName("name", input.Name)
	if err != nil {
		return "", "", err
	}
	id, err := requireID(input.ID)
	if err != nil {
		return "", "", err
	}
	return name, id, nil
}

// ShufflePlaylist randomizes a playlist's order.
func ShufflePlaylist(eng *engine.Engine, input PlaylistInput) (*PlaylistOutput, error) {
	name, err := requireName("name", input.Name)
	if err != nil {
		return nil, err
	}
	if _, err := eng.ShufflePlaylist(name); err != nil {
		return nil, err
	}
	return playlistOutput(eng, name)
}

// LibraryOutput contains every playlist's entries, concatenated.
type LibraryOutput struct {
	Items     []EntryView `json:"items"`
	Playlists int         `json:"playlists"`
}

// Library concatenates all playlists' entries in playlist order. An entry
// that is in several playlists appears once per playlist.
func Library(eng *engine.Engine) (*LibraryOutput, error) {
	playlists := eng.Playlists()
	var all []catalog.Entry
	for _, p := range playlists {
		entries, err := eng.PlaylistEntries(p.Name)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return &LibraryOutput{Items: entryViews(all), Playlists: len(playlists)}, nil
}
