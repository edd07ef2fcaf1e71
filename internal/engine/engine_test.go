package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/errors"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// newTestEngine creates an engine with a fixed clock and seeded randomness.
func newTestEngine(t *testing.T, historySize int) *Engine {
	t.Helper()
	eng, err := New(Options{
		HistoryMaxSize: historySize,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:          func() time.Time { return testNow },
		Rand:           rand.New(rand.NewPCG(7, 11)),
	})
	require.NoError(t, err)
	return eng
}

// addEntries places one entry per title at path and returns their ids.
func addEntries(t *testing.T, eng *Engine, path []string, titles ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(titles))
	for _, title := range titles {
		id := "id-" + title
		require.NoError(t, eng.AddEntry(path, catalog.NewEntry(id, title, "Test", "1:00", testNow)))
		ids = append(ids, id)
	}
	return ids
}

func entryIDs(entries []catalog.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func TestNew_Defaults(t *testing.T) {
	eng, err := New(Options{})
	require.NoError(t, err)

	assert.Equal(t, RootCategory, eng.Categories().Name)
	liked, err := eng.Playlist(LikedPlaylist)
	require.NoError(t, err)
	assert.True(t, liked.Auto)
	assert.Equal(t, 0, liked.Len())
	assert.Equal(t, DefaultHistoryMaxSize, eng.history.Cap())
}

func TestNew_InvalidHistorySize(t *testing.T) {
	for _, size := range []int{-1, -3} {
		_, err := New(Options{HistoryMaxSize: size})
		assert.True(t, errors.Is(err, errors.ErrInvalidInput), "size %d: got %v", size, err)
	}
}

func TestNew_ZeroHistorySizeUsesDefault(t *testing.T) {
	eng, err := New(Options{HistoryMaxSize: 0})
	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryMaxSize, eng.history.Cap())
}

func TestAddEntry_UnknownCategory(t *testing.T) {
	eng := newTestEngine(t, 5)

	err := eng.AddEntry([]string{"Nope"}, catalog.NewEntry("x", "X", "", "1:00", testNow))
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)

	_, err = eng.Entry("x")
	assert.True(t, errors.Is(err, errors.ErrNotFound), "rejected entry must not be stored")
}

func TestAddEntry_Rejections(t *testing.T) {
	eng := newTestEngine(t, 5)
	addEntries(t, eng, nil, "A")

	err := eng.AddEntry(nil, nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	err = eng.AddEntry(nil, catalog.NewEntry("", "Untitled", "", "", testNow))
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	err = eng.AddEntry(nil, catalog.NewEntry("id-A", "Again", "", "", testNow))
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))

	liked := catalog.NewEntry("pre", "Pre-liked", "", "", testNow)
	liked.Reaction = catalog.ReactionLiked
	err = eng.AddEntry(nil, liked)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	negative := catalog.NewEntry("neg", "Negative", "", "", testNow)
	negative.Likes = -1
	err = eng.AddEntry(nil, negative)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	assert.Len(t, eng.AllEntries(), 1)
}

func TestAllEntries_TreeOrder(t *testing.T) {
	eng := newTestEngine(t, 5)
	_, err := eng.CreateCategory(nil, "C1")
	require.NoError(t, err)
	_, err = eng.CreateCategory(nil, "C2")
	require.NoError(t, err)

	addEntries(t, eng, []string{"C2"}, "c")
	addEntries(t, eng, []string{"C1"}, "b")
	addEntries(t, eng, nil, "a")

	assert.Equal(t, []string{"id-a", "id-b", "id-c"}, entryIDs(eng.AllEntries()))

	path, ok := eng.CategoryOf("id-b")
	require.True(t, ok)
	assert.Equal(t, []string{"C1"}, path)
}

func TestCreateCategory(t *testing.T) {
	eng := newTestEngine(t, 5)

	edu, err := eng.CreateCategory(nil, "Education")
	require.NoError(t, err)
	assert.Equal(t, []string{"Education"}, edu.Path)

	prog, err := eng.CreateCategory([]string{"Education"}, "Programming")
	require.NoError(t, err)
	assert.Equal(t, []string{"Education", "Programming"}, prog.Path)

	_, err = eng.CreateCategory(nil, "Education")
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))

	_, err = eng.CreateCategory([]string{"Missing"}, "X")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = eng.CreateCategory(nil, "  ")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = eng.CreateCategory(nil, "a/b")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	found, err := eng.FindCategory("Programming")
	require.NoError(t, err)
	assert.Equal(t, prog.ID, found.ID)

	_, err = eng.FindCategory("Cooking")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestToggleLike_SyncsLikedPlaylist(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A", "B")

	ent, err := eng.ToggleLike(ids[0])
	require.NoError(t, err)
	assert.Equal(t, catalog.ReactionLiked, ent.Reaction)

	liked, _ := eng.Playlist(LikedPlaylist)
	assert.Equal(t, []string{ids[0]}, liked.All())

	_, err = eng.ToggleLike(ids[0])
	require.NoError(t, err)
	liked, _ = eng.Playlist(LikedPlaylist)
	assert.Empty(t, liked.All())
}

func TestToggleDislike_RemovesFromLiked(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A")

	_, err := eng.ToggleLike(ids[0])
	require.NoError(t, err)
	ent, err := eng.ToggleDislike(ids[0])
	require.NoError(t, err)

	assert.Equal(t, catalog.ReactionDisliked, ent.Reaction)
	liked, _ := eng.Playlist(LikedPlaylist)
	assert.Empty(t, liked.All())
}

func TestToggle_UnknownEntry(t *testing.T) {
	eng := newTestEngine(t, 5)

	_, err := eng.ToggleLike("ghost")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	_, err = eng.ToggleDislike("ghost")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

// TestLikedPlaylistInvariant drives random toggles across entries and checks
// that the liked playlist always equals the set of liked entries.
func TestLikedPlaylistInvariant(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A", "B", "C", "D", "E")
	r := rand.New(rand.NewPCG(42, 99))

	for step := 0; step < 500; step++ {
		id := ids[r.IntN(len(ids))]
		var err error
		if r.IntN(2) == 0 {
			_, err = eng.ToggleLike(id)
		} else {
			_, err = eng.ToggleDislike(id)
		}
		require.NoError(t, err)

		var want []string
		for _, ent := range eng.AllEntries() {
			require.GreaterOrEqual(t, ent.Likes, 0)
			require.GreaterOrEqual(t, ent.Dislikes, 0)
			if ent.Reaction == catalog.ReactionLiked {
				want = append(want, ent.ID)
			}
		}
		liked, err := eng.Playlist(LikedPlaylist)
		require.NoError(t, err)
		got := liked.All()
		sort.Strings(got)
		sort.Strings(want)
		require.Equal(t, fmt.Sprint(want), fmt.Sprint(got), "step %d", step)
	}
}

func TestAddComment(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A")

	c, err := eng.AddComment(ids[0], "You", "Great video!")
	require.NoError(t, err)
	assert.Equal(t, testNow, c.CreatedAt)

	_, err = eng.AddComment(ids[0], "You", "   ")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	comments, err := eng.Comments(ids[0])
	require.NoError(t, err)
	require.Len(t, comments, 1, "failed add must not append")

	liked, err := eng.LikeComment(ids[0], c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	_, err = eng.LikeComment(ids[0], "nope")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = eng.AddComment("ghost", "You", "hi")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	_, err = eng.Comments("ghost")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestPlay_HistoryAndNowPlaying(t *testing.T) {
	eng := newTestEngine(t, 2)
	ids := addEntries(t, eng, nil, "X", "Y", "Z")

	_, ok := eng.NowPlaying()
	assert.False(t, ok)

	for _, id := range ids {
		_, err := eng.Play(id)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"id-Z", "id-Y"}, entryIDs(eng.History()))
	now, ok := eng.NowPlaying()
	require.True(t, ok)
	assert.Equal(t, "id-Z", now.ID)

	_, err := eng.Play("ghost")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Len(t, eng.History(), 2)
}

func TestUploads(t *testing.T) {
	eng := newTestEngine(t, 5)

	_, ok := eng.ProcessNextUpload()
	assert.False(t, ok)

	require.NoError(t, eng.EnqueueUpload(catalog.NewEntry("u1", "Pending Upload 1", "Education", "5:00", testNow)))
	require.NoError(t, eng.EnqueueUpload(catalog.NewEntry("u2", "Pending Upload 2", "Gaming", "8:30", testNow)))
	assert.True(t, errors.Is(eng.EnqueueUpload(catalog.NewEntry("u1", "dup", "", "", testNow)), errors.ErrAlreadyExists))

	assert.Equal(t, []string{"u1", "u2"}, entryIDs(eng.QueueContents()))
	assert.Empty(t, eng.AllEntries(), "queued uploads are not placed")

	ent, ok := eng.ProcessNextUpload()
	require.True(t, ok)
	assert.Equal(t, "u1", ent.ID)
	assert.Equal(t, []string{"u1"}, entryIDs(eng.AllEntries()))
	assert.Equal(t, []string{"u2"}, entryIDs(eng.QueueContents()))

	path, ok := eng.CategoryOf("u1")
	require.True(t, ok)
	assert.Empty(t, path)
	_, ok = eng.CategoryOf("u2")
	assert.False(t, ok)
}

func TestSuggestions(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A", "B")

	_, ok := eng.CurrentSuggestion()
	assert.False(t, ok)

	require.NoError(t, eng.AddSuggestion(ids[0]))
	require.NoError(t, eng.AddSuggestion(ids[1]))
	assert.True(t, errors.Is(eng.AddSuggestion("ghost"), errors.ErrNotFound))

	cur, ok := eng.CurrentSuggestion()
	require.True(t, ok)
	assert.Equal(t, ids[0], cur.ID)

	next, ok := eng.AdvanceSuggestion()
	require.True(t, ok)
	assert.Equal(t, ids[1], next.ID)

	_, ok = eng.AdvanceSuggestion()
	assert.False(t, ok)
	cur, _ = eng.CurrentSuggestion()
	assert.Equal(t, ids[1], cur.ID)

	first, ok := eng.ResetSuggestions()
	require.True(t, ok)
	assert.Equal(t, ids[0], first.ID)
	assert.Equal(t, ids, entryIDs(eng.Suggestions()))
}

func TestPlaylists(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A", "B")

	p, err := eng.CreatePlaylist("Favorites")
	require.NoError(t, err)
	assert.Equal(t, testNow, p.CreatedAt)

	_, err = eng.CreatePlaylist("Favorites")
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
	_, err = eng.CreatePlaylist(" ")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	added, err := eng.AddToPlaylist("Favorites", ids[0])
	require.NoError(t, err)
	assert.True(t, added)
	added, err = eng.AddToPlaylist("Favorites", ids[0])
	require.NoError(t, err)
	assert.False(t, added)

	_, err = eng.AddToPlaylist("Favorites", "ghost")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	_, err = eng.AddToPlaylist("Nope", ids[0])
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	entries, err := eng.PlaylistEntries("Favorites")
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0]}, entryIDs(entries))

	removed, err := eng.RemoveFromPlaylist("Favorites", ids[0])
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = eng.RemoveFromPlaylist("Favorites", ids[0])
	require.NoError(t, err)
	assert.False(t, removed)

	names := make([]string, 0)
	for _, pl := range eng.Playlists() {
		names = append(names, pl.Name)
	}
	assert.Equal(t, []string{LikedPlaylist, "Favorites"}, names)
}

func TestLikedPlaylist_NotDirectlyMutable(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A")

	_, err := eng.AddToPlaylist(LikedPlaylist, ids[0])
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	_, err = eng.RemoveFromPlaylist(LikedPlaylist, ids[0])
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	liked, _ := eng.Playlist(LikedPlaylist)
	assert.Empty(t, liked.All())
}

func TestShufflePlaylist(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A", "B", "C", "D", "E", "F", "G", "H")
	_, err := eng.CreatePlaylist("Mix")
	require.NoError(t, err)
	for _, id := range ids {
		_, err := eng.AddToPlaylist("Mix", id)
		require.NoError(t, err)
	}

	p, err := eng.ShufflePlaylist("Mix")
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, p.All())

	_, err = eng.ShufflePlaylist("Nope")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestQueriesReturnCopies(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A")

	ent, err := eng.Entry(ids[0])
	require.NoError(t, err)
	ent.Likes = 999

	p, _ := eng.Playlist(LikedPlaylist)
	p.Add("intruder")

	fresh, _ := eng.Entry(ids[0])
	assert.Equal(t, 0, fresh.Likes)
	liked, _ := eng.Playlist(LikedPlaylist)
	assert.Empty(t, liked.All())
}

func TestStats(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A", "B")
	require.NoError(t, eng.EnqueueUpload(catalog.NewEntry("u1", "Upload", "", "1:00", testNow)))

	_, err := eng.ToggleLike(ids[0])
	require.NoError(t, err)
	_, err = eng.AddComment(ids[1], "You", "hello")
	require.NoError(t, err)
	_, err = eng.Play(ids[1])
	require.NoError(t, err)

	s := eng.Stats()
	assert.Equal(t, Stats{
		TotalEntries:  2,
		Playlists:     1,
		HistoryItems:  1,
		QueueItems:    1,
		TotalLikes:    1,
		TotalComments: 1,
		LikedEntries:  1,
	}, s)
}

func TestConcurrentToggles(t *testing.T) {
	eng := newTestEngine(t, 5)
	ids := addEntries(t, eng, nil, "A", "B", "C")

	done := make(chan struct{})
	for w := 0; w < 4; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				id := ids[(w+i)%len(ids)]
				if i%2 == 0 {
					_, _ = eng.ToggleLike(id)
				} else {
					_, _ = eng.ToggleDislike(id)
				}
				_ = eng.Stats()
			}
		}(w)
	}
	for w := 0; w < 4; w++ {
		<-done
	}

	liked, _ := eng.Playlist(LikedPlaylist)
	want := 0
	for _, ent := range eng.AllEntries() {
		if ent.Reaction == catalog.ReactionLiked {
			want++
			assert.True(t, liked.Contains(ent.ID))
		}
	}
	assert.Equal(t, want, liked.Len())
}
