package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/reel/internal/config"
	"github.com/hpungsan/reel/internal/engine"
	"github.com/hpungsan/reel/internal/errors"
)

// KnownTypes lists all valid type names.
var KnownTypes = []string{"category", "entry", "comment", "history", "upload", "suggestion", "playlist", "catalog"}

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"category_tree": {
		def:     categoryTreeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryTree },
	},
	"category_find": {
		def:     categoryFindToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryFind },
	},
	"category_create": {
		def:     categoryCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryCreate },
	},
	"entry_list": {
		def:     entryListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEntryList },
	},
	"entry_get": {
		def:     entryGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEntryGet },
	},
	"entry_add": {
		def:     entryAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEntryAdd },
	},
	"entry_search": {
		def:     entrySearchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEntrySearch },
	},
	"entry_shorts": {
		def:     entryShortsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEntryShorts },
	},
	"entry_like": {
		def:     entryLikeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEntryLike },
	},
	"entry_dislike": {
		def:     entryDislikeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEntryDislike },
	},
	"entry_play": {
		def:     entryPlayToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEntryPlay },
	},
	"comment_add": {
		def:     commentAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCommentAdd },
	},
	"comment_list": {
		def:     commentListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCommentList },
	},
	"comment_like": {
		def:     commentLikeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCommentLike },
	},
	"history_list": {
		def:     historyListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistoryList },
	},
	"upload_enqueue": {
		def:     uploadEnqueueToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUploadEnqueue },
	},
	"upload_process": {
		def:     uploadProcessToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUploadProcess },
	},
	"upload_list": {
		def:     uploadListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUploadList },
	},
	"suggestion_current": {
		def:     suggestionCurrentToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSuggestionCurrent },
	},
	"suggestion_add": {
		def:     suggestionAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSuggestionAdd },
	},
	"suggestion_next": {
		def:     suggestionNextToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSuggestionNext },
	},
	"suggestion_reset": {
		def:     suggestionResetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSuggestionReset },
	},
	"playlist_list": {
		def:     playlistListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePlaylistList },
	},
	"playlist_get": {
		def:     playlistGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePlaylistGet },
	},
	"playlist_create": {
		def:     playlistCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePlaylistCreate },
	},
	"playlist_add": {
		def:     playlistAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePlaylistAdd },
	},
	"playlist_remove": {
		def:     playlistRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePlaylistRemove },
	},
	"playlist_shuffle": {
		def:     playlistShuffleToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePlaylistShuffle },
	},
	"playlist_library": {
		def:     playlistLibraryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePlaylistLibrary },
	},
	"catalog_stats": {
		def:     catalogStatsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCatalogStats },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ValidateDisabledTypes returns a list of unknown type names from the given list.
func ValidateDisabledTypes(names []string) []string {
	known := make(map[string]bool, len(KnownTypes))
	for _, t := range KnownTypes {
		known[t] = true
	}

	unknown := make([]string, 0)
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// GetTypeForTool extracts the type name from a tool name.
// Tool names follow the pattern "type_action" (e.g., "playlist_add" → "playlist").
func GetTypeForTool(toolName string) string {
	if idx := strings.Index(toolName, "_"); idx > 0 {
		return toolName[:idx]
	}
	return ""
}

// ExpandTypesToTools returns all tool names belonging to the given types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}

	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	tools := make([]string, 0)
	for name := range toolRegistry {
		if typeSet[GetTypeForTool(name)] {
			tools = append(tools, name)
		}
	}
	return tools
}

// DisabledSet returns the tools excluded by cfg: every tool of a disabled
// type plus each individually disabled tool.
func DisabledSet(cfg *config.Config) map[string]bool {
	disabled := make(map[string]bool)
	for _, tool := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[tool] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	return disabled
}

// Call invokes a registered tool by name outside of an MCP session.
// Unknown tools produce a NOT_FOUND error result.
func (h *Handlers) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	entry, ok := toolRegistry[name]
	if !ok {
		return errorResult(errors.NewNotFound("tool", name)), nil
	}
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
	return entry.handler(h)(ctx, req)
}

// NewServer creates a new MCP server with the catalog tools registered.
// Tools listed in cfg.DisabledTools or belonging to cfg.DisabledTypes
// are excluded from registration.
func NewServer(eng *engine.Engine, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"reel",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(eng)
	disabled := DisabledSet(cfg)

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(eng *engine.Engine, cfg *config.Config, version string) error {
	s := NewServer(eng, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
