package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/reel/internal/config"
	"github.com/hpungsan/reel/internal/engine"
	"github.com/hpungsan/reel/internal/errors"
	"github.com/hpungsan/reel/internal/mcp"
	"github.com/hpungsan/reel/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(eng *engine.Engine, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "reel",
		Usage:   "In-memory media catalog",
		Version: Version,
		Commands: []*cli.Command{
			treeCmd(eng),
			listCmd(eng),
			searchCmd(eng),
			shortsCmd(eng),
			showCmd(eng),
			statsCmd(eng),
			playlistsCmd(eng),
			queueCmd(eng),
			replayCmd(eng, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// treeCmd creates the tree command.
func treeCmd(eng *engine.Engine) *cli.Command {
	return &cli.Command{
		Name:  "tree",
		Usage: "Show the category tree",
		Action: func(c *cli.Context) error {
			result, err := ops.CategoryTree(eng)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// listCmd creates the list command.
func listCmd(eng *engine.Engine) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List published entries in category order",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Max items"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			result, err := ops.ListEntries(eng, ops.ListEntriesInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(eng *engine.Engine) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search entries by title or category",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "fuzzy", Aliases: []string{"f"}, Usage: "Also match titles within a small edit distance"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultSearchLimit, Usage: "Max items"},
		},
		Action: func(c *cli.Context) error {
			result, err := ops.Search(eng, ops.SearchInput{
				Query: strings.Join(c.Args().Slice(), " "),
				Fuzzy: c.Bool("fuzzy"),
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// shortsCmd creates the shorts command.
func shortsCmd(eng *engine.Engine) *cli.Command {
	return &cli.Command{
		Name:  "shorts",
		Usage: "List entries shorter than five minutes",
		Action: func(c *cli.Context) error {
			result, err := ops.Shorts(eng)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// showCmd creates the show command.
func showCmd(eng *engine.Engine) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one entry with its comments",
		ArgsUsage: "<id | @title>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidInput("entry id or @title is required"))
			}
			id, err := resolveRef(eng, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			result, err := ops.GetEntry(eng, ops.GetEntryInput{ID: id})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(eng *engine.Engine) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show catalog totals",
		Action: func(c *cli.Context) error {
			result, err := ops.Stats(eng)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// playlistsCmd creates the playlists command.
func playlistsCmd(eng *engine.Engine) *cli.Command {
	return &cli.Command{
		Name:      "playlists",
		Usage:     "List playlists, or show one playlist by name",
		ArgsUsage: "[name]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				result, err := ops.ListPlaylists(eng)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(result)
			}
			result, err := ops.GetPlaylist(eng, ops.PlaylistInput{Name: strings.Join(c.Args().Slice(), " ")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// queueCmd creates the queue command.
func queueCmd(eng *engine.Engine) *cli.Command {
	return &cli.Command{
		Name:  "queue",
		Usage: "List pending uploads",
		Action: func(c *cli.Context) error {
			result, err := ops.ListUploads(eng)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// refArg is the tool argument that addresses an entry by id.
const refArg = "id"

// replayStep is one line of a replay script.
type replayStep struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// replayLine reports the outcome of one replayed step.
type replayLine struct {
	Line   int             `json:"line"`
	Tool   string          `json:"tool"`
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
}

// replayCmd creates the replay command.
func replayCmd(eng *engine.Engine, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Apply a JSON-lines tool script from stdin and print each result",
		Description: `Each line is {"tool": "<name>", "args": {...}}. Blank lines and lines
starting with # are skipped. An "id" argument written as "@Title" resolves to
the id of the first entry or pending upload with that title. Other arguments
are passed through unchanged.`,
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidInput("replay script must be piped via stdin"))
			}
			failed, err := replay(c.Context, eng, cfg, os.Stdin, os.Stdout)
			if err != nil {
				return outputError(err)
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d step(s) failed", failed), 1)
			}
			return nil
		},
	}
}

// replay runs every step of the script in r and writes one replayLine per
// step to w. Failing steps do not stop the run; their count is returned.
func replay(ctx context.Context, eng *engine.Engine, cfg *config.Config, r io.Reader, w io.Writer) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	h := mcp.NewHandlers(eng)
	disabled := map[string]bool{}
	if cfg != nil {
		disabled = mcp.DisabledSet(cfg)
	}
	enc := json.NewEncoder(w)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	failed := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		out := runStep(ctx, eng, h, disabled, lineNo, text)
		if !out.OK {
			failed++
		}
		if err := enc.Encode(out); err != nil {
			return failed, errors.NewInternal(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return failed, errors.NewInternal(err)
	}
	return failed, nil
}

// runStep decodes and executes a single script line.
func runStep(ctx context.Context, eng *engine.Engine, h *mcp.Handlers, disabled map[string]bool, lineNo int, text string) replayLine {
	out := replayLine{Line: lineNo}

	var step replayStep
	if err := json.Unmarshal([]byte(text), &step); err != nil {
		out.Result = errorJSON(errors.NewInvalidInput(fmt.Sprintf("invalid JSON: %v", err)))
		return out
	}
	out.Tool = step.Tool
	if step.Tool == "" {
		out.Result = errorJSON(errors.NewInvalidInput("tool is required"))
		return out
	}
	if disabled[step.Tool] {
		out.Result = errorJSON(errors.NewInvalidInput(fmt.Sprintf("tool %q is disabled", step.Tool)))
		return out
	}

	args := make(map[string]any, len(step.Args))
	for k, v := range step.Args {
		args[k] = v
	}
	// Only entry ids take title references; free text stays literal.
	if ref, ok := args[refArg].(string); ok {
		id, err := resolveRef(eng, ref)
		if err != nil {
			out.Result = errorJSON(err)
			return out
		}
		args[refArg] = id
	}

	res, err := h.Call(ctx, step.Tool, args)
	if err != nil {
		out.Result = errorJSON(errors.NewInternal(err))
		return out
	}
	out.OK = !res.IsError
	out.Result = json.RawMessage(mcp.ResultText(res))
	if !json.Valid(out.Result) {
		out.Result = errorJSON(errors.NewInternal(fmt.Errorf("tool %s returned non-JSON output", step.Tool)))
		out.OK = false
	}
	return out
}

// errorJSON renders err the way tool results report errors.
func errorJSON(err error) json.RawMessage {
	obj := map[string]any{"code": errors.ErrInternal, "message": err.Error()}
	if reelErr, ok := errors.As(err); ok {
		obj = map[string]any{"code": reelErr.Code, "message": reelErr.Message, "status": reelErr.Status}
	}
	data, _ := json.Marshal(map[string]any{"error": obj})
	return data
}

// resolveRef maps "@Title" to the id of the first published entry, then the
// first pending upload, with that exact title. Other values pass through.
func resolveRef(eng *engine.Engine, ref string) (string, error) {
	title, ok := strings.CutPrefix(ref, "@")
	if !ok {
		return ref, nil
	}
	for _, ent := range eng.AllEntries() {
		if ent.Title == title {
			return ent.ID, nil
		}
	}
	for _, ent := range eng.QueueContents() {
		if ent.Title == title {
			return ent.ID, nil
		}
	}
	return "", errors.NewNotFound("entry", ref)
}

// outputJSON writes JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if reelErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", reelErr.Code, reelErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
