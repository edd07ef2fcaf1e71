// Package engine is the composition root of the catalog. It owns every
// container and is the only path through which catalog state changes.
package engine

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/errors"
)

const (
	// RootCategory is the name of the category tree root.
	RootCategory = "All Videos"

	// LikedPlaylist is the auto-maintained playlist of liked entries.
	LikedPlaylist = "Liked Videos"

	// DefaultHistoryMaxSize is the watch history capacity when none is configured.
	DefaultHistoryMaxSize = 10
)

// Options configures a new Engine. Zero values pick defaults.
type Options struct {
	// HistoryMaxSize of 0 means DefaultHistoryMaxSize; negative is INVALID_INPUT
	HistoryMaxSize int
	Logger         *slog.Logger
	Clock          func() time.Time
	Rand           *rand.Rand
}

// Engine owns the category tree, watch history, upload queue, suggestions and
// playlists. Entries live in an arena keyed by id; every container stores ids.
//
// A single mutex guards the whole engine: the liked-playlist invariant spans
// several containers, so per-container locking would not be enough.
type Engine struct {
	mu sync.Mutex

	entries     map[string]*catalog.Entry
	tree        *catalog.Tree
	placement   map[string]int // entry id -> category id
	history     *catalog.History
	uploads     *catalog.UploadQueue
	suggestions *catalog.Suggestions
	playlists   map[string]*catalog.Playlist
	order       []string // playlist names in creation order
	nowPlaying  string

	logger *slog.Logger
	now    func() time.Time
	rng    *rand.Rand
}

// New creates an empty engine with the root category and the liked playlist.
func New(opts Options) (*Engine, error) {
	if opts.HistoryMaxSize == 0 {
		opts.HistoryMaxSize = DefaultHistoryMaxSize
	}
	history, err := catalog.NewHistory(opts.HistoryMaxSize)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e := &Engine{
		entries:     make(map[string]*catalog.Entry),
		tree:        catalog.NewTree(RootCategory),
		placement:   make(map[string]int),
		history:     history,
		uploads:     catalog.NewUploadQueue(),
		suggestions: catalog.NewSuggestions(),
		playlists:   make(map[string]*catalog.Playlist),
		logger:      opts.Logger,
		now:         opts.Clock,
		rng:         opts.Rand,
	}

	liked := catalog.NewPlaylist(LikedPlaylist, e.now())
	liked.Auto = true
	e.playlists[LikedPlaylist] = liked
	e.order = append(e.order, LikedPlaylist)

	return e, nil
}

// entry looks up an entry in the arena. Caller holds mu.
func (e *Engine) entry(id string) (*catalog.Entry, error) {
	ent, ok := e.entries[id]
	if !ok {
		return nil, errors.NewNotFound("entry", id)
	}
	return ent, nil
}

// admit validates a new entry and stores it in the arena. Caller holds mu.
func (e *Engine) admit(ent *catalog.Entry) error {
	if ent == nil {
		return errors.NewInvalidInput("entry is required")
	}
	if ent.ID == "" {
		return errors.NewInvalidInput("entry id is required")
	}
	if _, exists := e.entries[ent.ID]; exists {
		return errors.NewAlreadyExists("entry", ent.ID)
	}
	if ent.Views < 0 || ent.Likes < 0 || ent.Dislikes < 0 {
		return errors.NewInvalidInput("entry counters must not be negative")
	}
	switch ent.Reaction {
	case "":
		ent.Reaction = catalog.ReactionNone
	case catalog.ReactionNone:
	default:
		return errors.NewInvalidInput("new entries must not carry a reaction")
	}
	e.entries[ent.ID] = ent
	return nil
}

// clones copies the entries for ids, skipping any that are unknown. Caller holds mu.
func (e *Engine) clones(ids []string) []catalog.Entry {
	out := make([]catalog.Entry, 0, len(ids))
	for _, id := range ids {
		if ent, ok := e.entries[id]; ok {
			out = append(out, ent.Clone())
		}
	}
	return out
}

// Entry returns a copy of the entry with the given id.
func (e *Engine) Entry(id string) (catalog.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, err := e.entry(id)
	if err != nil {
		return catalog.Entry{}, err
	}
	return ent.Clone(), nil
}

// CategoryOf returns the path of the category an entry is placed in.
// Pending uploads have no category and report ok=false.
func (e *Engine) CategoryOf(id string) ([]string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	nodeID, ok := e.placement[id]
	if !ok {
		return nil, false
	}
	node, ok := e.tree.Lookup(nodeID)
	if !ok {
		return nil, false
	}
	return node.Path(), true
}

// Stats summarizes the catalog.
type Stats struct {
	TotalEntries  int `json:"total_entries"`
	Playlists     int `json:"playlists"`
	HistoryItems  int `json:"history_items"`
	QueueItems    int `json:"queue_items"`
	TotalLikes    int `json:"total_likes"`
	TotalComments int `json:"total_comments"`
	LikedEntries  int `json:"liked_entries"`
}

// Stats computes catalog totals over placed entries.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Stats{
		Playlists:    len(e.playlists),
		HistoryItems: e.history.Len(),
		QueueItems:   e.uploads.Size(),
	}
	for _, id := range e.tree.Root().AllEntries() {
		ent, ok := e.entries[id]
		if !ok {
			continue
		}
		s.TotalEntries++
		s.TotalLikes += ent.Likes
		s.TotalComments += ent.Comments().Len()
		if ent.Reaction == catalog.ReactionLiked {
			s.LikedEntries++
		}
	}
	return s
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}
