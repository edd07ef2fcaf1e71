package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hpungsan/reel/internal/config"
	"github.com/hpungsan/reel/internal/engine"
	"github.com/hpungsan/reel/internal/logging"
	"github.com/hpungsan/reel/internal/mcp"
	"github.com/hpungsan/reel/internal/seed"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"tree": true, "list": true, "search": true, "shorts": true,
	"show": true, "stats": true, "playlists": true, "queue": true,
	"replay": true, "help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ____  _____ _____ _
  |  _ \| ____| ____| |
  | |_) |  _| |  _| | |
  |  _ <| |___| |___| |___
  |_| \_\_____|_____|_____|

  In-memory media catalog

  Usage: reel <command> [options]
         reel --help

  MCP server mode requires piped input.`)
}

// newEngine builds an engine from cfg and seeds it unless the catalog
// should start empty.
func newEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	eng, err := engine.New(engine.Options{
		HistoryMaxSize: cfg.HistoryMaxSize,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	if cfg.EmptyCatalog {
		logger.Info("starting with an empty catalog")
		return eng, nil
	}

	var fx *seed.Fixture
	source := "sample"
	if cfg.SeedPath != "" {
		source = cfg.SeedPath
		fx, err = seed.LoadFile(cfg.SeedPath)
	} else {
		fx, err = seed.Sample()
	}
	if err != nil {
		return nil, fmt.Errorf("load seed %s: %w", source, err)
	}

	sum, err := seed.Apply(eng, fx)
	if err != nil {
		return nil, fmt.Errorf("apply seed %s: %w", source, err)
	}
	logger.Info("catalog seeded",
		"source", source,
		"categories", sum.Categories,
		"entries", sum.Entries,
		"uploads", sum.Uploads,
		"suggestions", sum.Suggestions,
		"playlists", sum.Playlists,
	)
	return eng, nil
}

// warnUnknownDisabled logs config entries that name no tool or type.
func warnUnknownDisabled(cfg *config.Config, logger *slog.Logger) {
	for _, name := range mcp.ValidateDisabledTools(cfg.DisabledTools) {
		logger.Warn("unknown tool in disabled_tools", "tool", name)
	}
	for _, name := range mcp.ValidateDisabledTypes(cfg.DisabledTypes) {
		logger.Warn("unknown type in disabled_types", "type", name)
	}
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before building the catalog
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadWithRepo(filepath.Join(homeDir, ".reel"), cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries MCP traffic, so logs go to stderr
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	warnUnknownDisabled(cfg, logger)

	eng, err := newEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to build catalog: %v\n", err)
		os.Exit(1)
	}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(eng, cfg)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'reel --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	logger.Debug("serving MCP over stdio", "version", Version)
	if err := mcp.Run(eng, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
