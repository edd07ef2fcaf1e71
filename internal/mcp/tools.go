package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Entries are addressed by id; categories by
// slash-separated path from the root ("" is the root).

var categoryTreeToolDef = mcp.NewTool("category_tree",
	mcp.WithDescription("Return the whole category tree with the entry ids placed in each category."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var categoryFindToolDef = mcp.NewTool("category_find",
	mcp.WithDescription("Find the first category with an exact name (depth-first) and list every entry under it."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Category name")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var categoryCreateToolDef = mcp.NewTool("category_create",
	mcp.WithDescription("Create a child category. Sibling names are unique."),
	mcp.WithString("name", mcp.Required(), mcp.Description("New category name (no '/')")),
	mcp.WithString("parent", mcp.Description("Parent category path, e.g. \"Education\". Empty for the root.")),
)

var entryListToolDef = mcp.NewTool("entry_list",
	mcp.WithDescription("List published entries in category order with pagination."),
	mcp.WithNumber("limit", mcp.Description("Max items (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var entryGetToolDef = mcp.NewTool("entry_get",
	mcp.WithDescription("Get one entry with its comments and category path."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var entryAddToolDef = mcp.NewTool("entry_add",
	mcp.WithDescription("Create an entry and place it in a category."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Entry title")),
	mcp.WithString("path", mcp.Description("Category path, e.g. \"Education/Programming\". Empty for the root.")),
	mcp.WithString("category", mcp.Description("Category label. Defaults to the last path segment.")),
	mcp.WithString("duration", mcp.Description("Duration string such as \"12:20\"")),
	mcp.WithString("file_path", mcp.Description("Media file path handed to external players")),
)

var entrySearchToolDef = mcp.NewTool("entry_search",
	mcp.WithDescription("Search entries by title or category label. Empty query lists everything."),
	mcp.WithString("query", mcp.Description("Search text")),
	mcp.WithBoolean("fuzzy", mcp.Description("Also match titles within a small edit distance")),
	mcp.WithNumber("limit", mcp.Description("Max items (default 20, max 100)")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var entryShortsToolDef = mcp.NewTool("entry_shorts",
	mcp.WithDescription("List entries shorter than five minutes."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var entryLikeToolDef = mcp.NewTool("entry_like",
	mcp.WithDescription("Toggle like on an entry. Liking a disliked entry retracts the dislike. Keeps \"Liked Videos\" in sync."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
)

var entryDislikeToolDef = mcp.NewTool("entry_dislike",
	mcp.WithDescription("Toggle dislike on an entry. Disliking a liked entry retracts the like. Keeps \"Liked Videos\" in sync."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
)

var entryPlayToolDef = mcp.NewTool("entry_play",
	mcp.WithDescription("Mark an entry as now playing and push it onto the watch history."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
)

var commentAddToolDef = mcp.NewTool("comment_add",
	mcp.WithDescription("Post a comment on an entry."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
	mcp.WithString("text", mcp.Required(), mcp.Description("Comment text (not blank)")),
	mcp.WithString("username", mcp.Description("Author. Defaults to \"You\".")),
)

var commentListToolDef = mcp.NewTool("comment_list",
	mcp.WithDescription("List an entry's comments in posting order."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var commentLikeToolDef = mcp.NewTool("comment_like",
	mcp.WithDescription("Like a comment."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
	mcp.WithString("comment_id", mcp.Required(), mcp.Description("Comment id")),
)

var historyListToolDef = mcp.NewTool("history_list",
	mcp.WithDescription("Return the watch history, most recent first, and the entry now playing."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var uploadEnqueueToolDef = mcp.NewTool("upload_enqueue",
	mcp.WithDescription("Create an entry and queue it for publishing."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Entry title")),
	mcp.WithString("category", mcp.Description("Category label")),
	mcp.WithString("duration", mcp.Description("Duration string such as \"5:00\"")),
	mcp.WithString("file_path", mcp.Description("Media file path")),
)

var uploadProcessToolDef = mcp.NewTool("upload_process",
	mcp.WithDescription("Publish the oldest queued upload into the root category."),
)

var uploadListToolDef = mcp.NewTool("upload_list",
	mcp.WithDescription("List pending uploads, oldest first."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var suggestionCurrentToolDef = mcp.NewTool("suggestion_current",
	mcp.WithDescription("Return the suggestion under the cursor."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var suggestionAddToolDef = mcp.NewTool("suggestion_add",
	mcp.WithDescription("Append an entry to the suggestion list."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
)

var suggestionNextToolDef = mcp.NewTool("suggestion_next",
	mcp.WithDescription("Advance to the next suggestion. At the end the cursor stays and at_end is true."),
)

var suggestionResetToolDef = mcp.NewTool("suggestion_reset",
	mcp.WithDescription("Move the suggestion cursor back to the first suggestion."),
)

var playlistListToolDef = mcp.NewTool("playlist_list",
	mcp.WithDescription("List playlists in creation order."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var playlistGetToolDef = mcp.NewTool("playlist_get",
	mcp.WithDescription("Get a playlist and its entries in order."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Playlist name")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var playlistCreateToolDef = mcp.NewTool("playlist_create",
	mcp.WithDescription("Create an empty playlist."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Playlist name")),
)

var playlistAddToolDef = mcp.NewTool("playlist_add",
	mcp.WithDescription("Add an entry to a playlist. Existing members are reported as already_present. \"Liked Videos\" is read-only."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Playlist name")),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
)

var playlistRemoveToolDef = mcp.NewTool("playlist_remove",
	mcp.WithDescription("Remove an entry from a playlist. \"Liked Videos\" is read-only."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Playlist name")),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
)

var playlistShuffleToolDef = mcp.NewTool("playlist_shuffle",
	mcp.WithDescription("Shuffle a playlist's order."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Playlist name")),
)

var playlistLibraryToolDef = mcp.NewTool("playlist_library",
	mcp.WithDescription("List the entries of every playlist, concatenated in playlist order."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var catalogStatsToolDef = mcp.NewTool("catalog_stats",
	mcp.WithDescription("Return catalog totals: entries, likes, comments, playlists, history and queue sizes."),
	mcp.WithReadOnlyHintAnnotation(true),
)
