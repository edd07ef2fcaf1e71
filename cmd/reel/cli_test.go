package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hpungsan/reel/internal/config"
	"github.com/hpungsan/reel/internal/engine"
	"github.com/hpungsan/reel/internal/ops"
	"github.com/hpungsan/reel/internal/seed"
)

// setupTestEngine creates an engine seeded with the sample catalog.
func setupTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(engine.Options{
		HistoryMaxSize: 10,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	fx, err := seed.Sample()
	if err != nil {
		t.Fatalf("failed to load sample: %v", err)
	}
	if _, err := seed.Apply(eng, fx); err != nil {
		t.Fatalf("failed to apply sample: %v", err)
	}
	return eng
}

// testConfig returns a default config for testing.
func testConfig() *config.Config {
	return &config.Config{HistoryMaxSize: 10, LogLevel: "info"}
}

// runCLI runs the app with args and returns what it wrote to stdout.
func runCLI(t *testing.T, eng *engine.Engine, args ...string) ([]byte, error) {
	t.Helper()
	app := newCLIApp(eng, testConfig())

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"reel"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.Bytes(), err
}

// TestCLITree tests the tree command.
func TestCLITree(t *testing.T) {
	eng := setupTestEngine(t)

	out, err := runCLI(t, eng, "tree")
	if err != nil {
		t.Fatalf("tree command failed: %v", err)
	}

	var output ops.CategoryTreeOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.Root.Name != engine.RootCategory {
		t.Errorf("expected root %q, got %q", engine.RootCategory, output.Root.Name)
	}
	if output.Categories != 6 {
		t.Errorf("expected 6 categories including root, got %d", output.Categories)
	}
}

// TestCLIList tests the list command.
func TestCLIList(t *testing.T) {
	eng := setupTestEngine(t)

	out, err := runCLI(t, eng, "list", "--limit=4", "--offset=2")
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var output ops.ListEntriesOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if len(output.Items) != 4 {
		t.Errorf("expected 4 items, got %d", len(output.Items))
	}
	if output.Pagination.Total != 11 {
		t.Errorf("expected total=11, got %d", output.Pagination.Total)
	}
	if !output.Pagination.HasMore {
		t.Error("expected has_more=true")
	}
}

// TestCLISearch tests the search command.
func TestCLISearch(t *testing.T) {
	eng := setupTestEngine(t)

	t.Run("substring", func(t *testing.T) {
		out, err := runCLI(t, eng, "search", "highlights")
		if err != nil {
			t.Fatalf("search command failed: %v", err)
		}
		var output ops.SearchOutput
		if err := json.Unmarshal(out, &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.Total != 2 {
			t.Errorf("expected 2 matches, got %d", output.Total)
		}
	})

	t.Run("fuzzy", func(t *testing.T) {
		out, err := runCLI(t, eng, "search", "--fuzzy", "pythn")
		if err != nil {
			t.Fatalf("search command failed: %v", err)
		}
		var output ops.SearchOutput
		if err := json.Unmarshal(out, &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.Total == 0 || output.Items[0].Title != "Python Tutorial" {
			t.Errorf("expected Python Tutorial first, got %+v", output.Items)
		}
	})
}

// TestCLIShorts tests the shorts command.
func TestCLIShorts(t *testing.T) {
	eng := setupTestEngine(t)

	out, err := runCLI(t, eng, "shorts")
	if err != nil {
		t.Fatalf("shorts command failed: %v", err)
	}
	var output ops.ShortsOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if len(output.Items) != 4 {
		t.Errorf("expected 4 shorts, got %d", len(output.Items))
	}
}

// TestCLIShow tests the show command.
func TestCLIShow(t *testing.T) {
	eng := setupTestEngine(t)

	t.Run("by title", func(t *testing.T) {
		out, err := runCLI(t, eng, "show", "@Python Tutorial")
		if err != nil {
			t.Fatalf("show command failed: %v", err)
		}
		var output ops.GetEntryOutput
		if err := json.Unmarshal(out, &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.Title != "Python Tutorial" {
			t.Errorf("expected Python Tutorial, got %q", output.Title)
		}
		if len(output.Comments) != 1 {
			t.Errorf("expected 1 comment, got %d", len(output.Comments))
		}
		if output.CategoryPath == nil || *output.CategoryPath != "Education/Programming" {
			t.Errorf("unexpected category path %v", output.CategoryPath)
		}
	})

	t.Run("pending upload has no category path", func(t *testing.T) {
		out, err := runCLI(t, eng, "show", "@Pending Upload 1")
		if err != nil {
			t.Fatalf("show command failed: %v", err)
		}
		var output ops.GetEntryOutput
		if err := json.Unmarshal(out, &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.CategoryPath != nil {
			t.Errorf("expected no category path, got %q", *output.CategoryPath)
		}
	})
}

// TestCLIStats tests the stats command.
func TestCLIStats(t *testing.T) {
	eng := setupTestEngine(t)

	out, err := runCLI(t, eng, "stats")
	if err != nil {
		t.Fatalf("stats command failed: %v", err)
	}
	var output ops.StatsOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.TotalEntries != 11 {
		t.Errorf("expected 11 entries, got %d", output.TotalEntries)
	}
	if output.QueueItems != 2 {
		t.Errorf("expected 2 queued uploads, got %d", output.QueueItems)
	}
	if output.Playlists != 4 {
		t.Errorf("expected 4 playlists, got %d", output.Playlists)
	}
	if output.Suggestions != 4 {
		t.Errorf("expected 4 suggestions, got %d", output.Suggestions)
	}
	if output.TotalLikes != 6580 {
		t.Errorf("expected 6580 seeded likes, got %d", output.TotalLikes)
	}
}

// TestCLIPlaylists tests the playlists command.
func TestCLIPlaylists(t *testing.T) {
	eng := setupTestEngine(t)

	t.Run("list", func(t *testing.T) {
		out, err := runCLI(t, eng, "playlists")
		if err != nil {
			t.Fatalf("playlists command failed: %v", err)
		}
		var output ops.ListPlaylistsOutput
		if err := json.Unmarshal(out, &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if len(output.Items) != 4 {
			t.Fatalf("expected 4 playlists, got %d", len(output.Items))
		}
		if output.Items[0].Name != engine.LikedPlaylist || !output.Items[0].Auto {
			t.Errorf("expected auto %q first, got %+v", engine.LikedPlaylist, output.Items[0])
		}
	})

	t.Run("by name", func(t *testing.T) {
		out, err := runCLI(t, eng, "playlists", "Educational")
		if err != nil {
			t.Fatalf("playlists command failed: %v", err)
		}
		var output ops.PlaylistOutput
		if err := json.Unmarshal(out, &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if len(output.Entries) != 2 || output.Entries[0].Title != "Python Tutorial" {
			t.Errorf("unexpected entries %+v", output.Entries)
		}
	})
}

// TestCLIQueue tests the queue command.
func TestCLIQueue(t *testing.T) {
	eng := setupTestEngine(t)

	out, err := runCLI(t, eng, "queue")
	if err != nil {
		t.Fatalf("queue command failed: %v", err)
	}
	var output ops.ListUploadsOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if len(output.Items) != 2 || output.Items[0].Title != "Pending Upload 1" {
		t.Errorf("unexpected queue %+v", output.Items)
	}
}

// TestCLIErrorHandling tests that failing commands return errors.
func TestCLIErrorHandling(t *testing.T) {
	eng := setupTestEngine(t)
	app := newCLIApp(eng, testConfig())

	t.Run("show unknown title returns error", func(t *testing.T) {
		// cli.Exit writes to stderr, so just verify the error is returned
		err := app.Run([]string{"reel", "show", "@No Such Video"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("show without argument returns error", func(t *testing.T) {
		err := app.Run([]string{"reel", "show"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("unknown playlist returns error", func(t *testing.T) {
		err := app.Run([]string{"reel", "playlists", "Nope"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})
}

// replayLines runs script and decodes each output line.
func replayLines(t *testing.T, eng *engine.Engine, cfg *config.Config, script string) ([]replayLine, int) {
	t.Helper()
	var buf bytes.Buffer
	failed, err := replay(context.Background(), eng, cfg, strings.NewReader(script), &buf)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	var lines []replayLine
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var line replayLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("failed to parse replay line %q: %v", scanner.Text(), err)
		}
		lines = append(lines, line)
	}
	return lines, failed
}

// TestReplay tests applying a tool script.
func TestReplay(t *testing.T) {
	eng := setupTestEngine(t)

	script := `
# like, then check the liked playlist
{"tool":"entry_like","args":{"id":"@Python Tutorial"}}
{"tool":"playlist_get","args":{"name":"Liked Videos"}}

{"tool":"upload_process"}
{"tool":"entry_like","args":{"id":"missing"}}
`
	lines, failed := replayLines(t, eng, testConfig(), script)

	if len(lines) != 4 {
		t.Fatalf("expected 4 result lines, got %d", len(lines))
	}
	if failed != 1 {
		t.Errorf("expected 1 failed step, got %d", failed)
	}

	if lines[0].Line != 3 || lines[0].Tool != "entry_like" || !lines[0].OK {
		t.Errorf("unexpected first line %+v", lines[0])
	}
	var liked ops.ReactOutput
	if err := json.Unmarshal(lines[0].Result, &liked); err != nil {
		t.Fatalf("failed to parse like result: %v", err)
	}
	if !liked.InLiked || liked.Entry.Likes != 1321 {
		t.Errorf("expected liked entry in playlist, got %+v", liked)
	}

	var playlist ops.PlaylistOutput
	if err := json.Unmarshal(lines[1].Result, &playlist); err != nil {
		t.Fatalf("failed to parse playlist result: %v", err)
	}
	if len(playlist.Entries) != 1 || playlist.Entries[0].Title != "Python Tutorial" {
		t.Errorf("unexpected liked playlist %+v", playlist.Entries)
	}

	var processed ops.ProcessUploadOutput
	if err := json.Unmarshal(lines[2].Result, &processed); err != nil {
		t.Fatalf("failed to parse process result: %v", err)
	}
	if !processed.Processed || processed.Remaining != 1 {
		t.Errorf("unexpected process result %+v", processed)
	}

	if lines[3].OK {
		t.Error("expected unknown entry to fail")
	}
	if !strings.Contains(string(lines[3].Result), "NOT_FOUND") {
		t.Errorf("expected NOT_FOUND, got %s", lines[3].Result)
	}

	// The engine keeps state between steps
	ent, err := eng.Entry(liked.Entry.ID)
	if err != nil {
		t.Fatalf("entry lookup failed: %v", err)
	}
	if ent.Likes != 1321 {
		t.Errorf("expected likes=1321 after replay, got %d", ent.Likes)
	}
}

// TestReplayErrors tests per-line failures that do not stop the script.
func TestReplayErrors(t *testing.T) {
	eng := setupTestEngine(t)
	cfg := testConfig()
	cfg.DisabledTypes = []string{"playlist"}

	script := strings.Join([]string{
		`not json`,
		`{"args":{}}`,
		`{"tool":"playlist_list"}`,
		`{"tool":"no_such_tool"}`,
		`{"tool":"entry_get","args":{"id":"@Nobody"}}`,
		`{"tool":"catalog_stats"}`,
	}, "\n")
	lines, failed := replayLines(t, eng, cfg, script)

	if len(lines) != 6 {
		t.Fatalf("expected 6 result lines, got %d", len(lines))
	}
	if failed != 5 {
		t.Errorf("expected 5 failed steps, got %d", failed)
	}
	for i, want := range []string{"INVALID_INPUT", "INVALID_INPUT", "INVALID_INPUT", "NOT_FOUND", "NOT_FOUND"} {
		if lines[i].OK {
			t.Errorf("line %d: expected failure", lines[i].Line)
		}
		if !strings.Contains(string(lines[i].Result), want) {
			t.Errorf("line %d: expected %s, got %s", lines[i].Line, want, lines[i].Result)
		}
	}
	if !lines[5].OK {
		t.Errorf("expected catalog_stats to succeed, got %s", lines[5].Result)
	}
}

// TestReplayFreeTextArgs tests that only id arguments take title references.
func TestReplayFreeTextArgs(t *testing.T) {
	eng := setupTestEngine(t)

	script := strings.Join([]string{
		`{"tool":"comment_add","args":{"id":"@Python Tutorial","text":"@Cooking Basics","username":"@gopher"}}`,
		`{"tool":"playlist_create","args":{"name":"@Music Video"}}`,
		`{"tool":"category_create","args":{"name":"@Tech Review","parent":"Technology"}}`,
	}, "\n")
	lines, failed := replayLines(t, eng, testConfig(), script)

	if failed != 0 {
		t.Fatalf("expected no failures, got %d: %+v", failed, lines)
	}

	var comment ops.CommentOutput
	if err := json.Unmarshal(lines[0].Result, &comment); err != nil {
		t.Fatalf("failed to parse comment result: %v", err)
	}
	if comment.Comment.Text != "@Cooking Basics" {
		t.Errorf("expected literal text, got %q", comment.Comment.Text)
	}
	if comment.Comment.Username != "@gopher" {
		t.Errorf("expected literal username, got %q", comment.Comment.Username)
	}

	python, err := resolveRef(eng, "@Python Tutorial")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if comment.EntryID != python {
		t.Errorf("expected comment on Python Tutorial, got entry %s", comment.EntryID)
	}

	if _, err := eng.Playlist("@Music Video"); err != nil {
		t.Errorf("expected playlist named literally, got %v", err)
	}
	if _, err := eng.FindCategory("@Tech Review"); err != nil {
		t.Errorf("expected category named literally, got %v", err)
	}
}

// TestResolveRef tests title references.
func TestResolveRef(t *testing.T) {
	eng := setupTestEngine(t)

	id, err := resolveRef(eng, "plain-id")
	if err != nil || id != "plain-id" {
		t.Errorf("expected passthrough, got %q, %v", id, err)
	}

	id, err = resolveRef(eng, "@Pending Upload 2")
	if err != nil {
		t.Fatalf("resolve upload failed: %v", err)
	}
	ent, err := eng.Entry(id)
	if err != nil || ent.Title != "Pending Upload 2" {
		t.Errorf("resolved to wrong entry: %+v, %v", ent, err)
	}

	if _, err := resolveRef(eng, "@Unknown"); err == nil {
		t.Error("expected error for unknown title")
	}
}

// TestIsCLIMode tests the isCLIMode function.
func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "no args", args: []string{"reel"}, expected: false},
		{name: "tree command", args: []string{"reel", "tree"}, expected: true},
		{name: "replay command", args: []string{"reel", "replay"}, expected: true},
		{name: "help flag", args: []string{"reel", "--help"}, expected: true},
		{name: "version flag", args: []string{"reel", "--version"}, expected: true},
		{name: "short help flag", args: []string{"reel", "-h"}, expected: true},
		{name: "short version flag", args: []string{"reel", "-v"}, expected: true},
		{name: "unknown arg defaults to MCP", args: []string{"reel", "--unknown"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore os.Args
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isCLIMode(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

// TestIsHelpOrVersion tests the isHelpOrVersion function.
func TestIsHelpOrVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "no args", args: []string{"reel"}, expected: false},
		{name: "help command", args: []string{"reel", "help"}, expected: true},
		{name: "help flag", args: []string{"reel", "--help"}, expected: true},
		{name: "version flag", args: []string{"reel", "-v"}, expected: true},
		{name: "regular command", args: []string{"reel", "tree"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isHelpOrVersion(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

// TestNewEngine tests seeding from config.
func TestNewEngine(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("sample by default", func(t *testing.T) {
		eng, err := newEngine(testConfig(), logger)
		if err != nil {
			t.Fatalf("newEngine failed: %v", err)
		}
		if n := len(eng.AllEntries()); n != 11 {
			t.Errorf("expected 11 entries, got %d", n)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		cfg := testConfig()
		cfg.EmptyCatalog = true
		eng, err := newEngine(cfg, logger)
		if err != nil {
			t.Fatalf("newEngine failed: %v", err)
		}
		if n := len(eng.AllEntries()); n != 0 {
			t.Errorf("expected empty catalog, got %d entries", n)
		}
		if n := len(eng.Playlists()); n != 1 {
			t.Errorf("expected only the liked playlist, got %d", n)
		}
	})

	t.Run("default config", func(t *testing.T) {
		eng, err := newEngine(config.DefaultConfig(), logger)
		if err != nil {
			t.Fatalf("newEngine failed: %v", err)
		}
		if n := len(eng.AllEntries()); n != 11 {
			t.Errorf("expected 11 entries, got %d", n)
		}
		if n := len(eng.QueueContents()); n != 2 {
			t.Errorf("expected 2 pending uploads, got %d", n)
		}
		if stats := eng.Stats(); stats.TotalLikes == 0 {
			t.Error("expected seeded likes")
		}

		out, err := runCLI(t, eng, "tree")
		if err != nil {
			t.Fatalf("tree command failed: %v", err)
		}
		var output ops.CategoryTreeOutput
		if err := json.Unmarshal(out, &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.Categories != 6 {
			t.Errorf("expected 6 categories, got %d", output.Categories)
		}
	})

	t.Run("seed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		fixture := "entries:\n  - title: Only\n    likes: 10\n"
		if err := os.WriteFile(path, []byte(fixture), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		cfg := testConfig()
		cfg.SeedPath = path
		eng, err := newEngine(cfg, logger)
		if err != nil {
			t.Fatalf("newEngine failed: %v", err)
		}
		entries := eng.AllEntries()
		if len(entries) != 1 || entries[0].Likes != 10 {
			t.Errorf("unexpected entries %+v", entries)
		}
	})

	t.Run("missing seed file", func(t *testing.T) {
		cfg := testConfig()
		cfg.SeedPath = t.TempDir() + "/missing.yaml"
		if _, err := newEngine(cfg, logger); err == nil {
			t.Error("expected error for missing seed file")
		}
	})
}
