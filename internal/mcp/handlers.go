package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/reel/internal/engine"
	"github.com/hpungsan/reel/internal/errors"
	"github.com/hpungsan/reel/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	eng *engine.Engine
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(eng *engine.Engine) *Handlers {
	return &Handlers{eng: eng}
}

// Request types for each tool

// IDRequest addresses a single entry.
type IDRequest struct {
	ID string `json:"id"`
}

// NameRequest addresses a playlist or category by name.
type NameRequest struct {
	Name string `json:"name"`
}

// CategoryCreateRequest represents the arguments for category_create.
type CategoryCreateRequest struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// PageRequest represents the arguments for entry_list.
type PageRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// EntryAddRequest represents the arguments for entry_add.
type EntryAddRequest struct {
	Title    string `json:"title"`
	Path     string `json:"path,omitempty"`
	Category string `json:"category,omitempty"`
	Duration string `json:"duration,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// SearchRequest represents the arguments for entry_search.
type SearchRequest struct {
	Query string `json:"query,omitempty"`
	Fuzzy bool   `json:"fuzzy,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// CommentAddRequest represents the arguments for comment_add.
type CommentAddRequest struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Username string `json:"username,omitempty"`
}

// CommentLikeRequest represents the arguments for comment_like.
type CommentLikeRequest struct {
	ID        string `json:"id"`
	CommentID string `json:"comment_id"`
}

// UploadEnqueueRequest represents the arguments for upload_enqueue.
type UploadEnqueueRequest struct {
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Duration string `json:"duration,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// PlaylistEntryRequest represents the arguments for playlist_add and playlist_remove.
type PlaylistEntryRequest struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Handler implementations

// HandleCategoryTree handles the category_tree tool call.
func (h *Handlers) HandleCategoryTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.CategoryTree(h.eng))
}

// HandleCategoryFind handles the category_find tool call.
func (h *Handlers) HandleCategoryFind(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NameRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.FindCategory(h.eng, ops.FindCategoryInput{Name: input.Name}))
}

// HandleCategoryCreate handles the category_create tool call.
func (h *Handlers) HandleCategoryCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategoryCreateRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.CreateCategory(h.eng, ops.CreateCategoryInput{
		Parent: input.Parent,
		Name:   input.Name,
	}))
}

// HandleEntryList handles the entry_list tool call.
func (h *Handlers) HandleEntryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PageRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.ListEntries(h.eng, ops.ListEntriesInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	}))
}

// HandleEntryGet handles the entry_get tool call.
func (h *Handlers) HandleEntryGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.GetEntry(h.eng, ops.GetEntryInput{ID: input.ID}))
}

// HandleEntryAdd handles the entry_add tool call.
func (h *Handlers) HandleEntryAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EntryAddRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.AddEntry(h.eng, ops.AddEntryInput{
		Path:     input.Path,
		Title:    input.Title,
		Label:    input.Category,
		Duration: input.Duration,
		FilePath: input.FilePath,
	}))
}

// HandleEntrySearch handles the entry_search tool call.
func (h *Handlers) HandleEntrySearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.Search(h.eng, ops.SearchInput{
		Query: input.Query,
		Fuzzy: input.Fuzzy,
		Limit: input.Limit,
	}))
}

// HandleEntryShorts handles the entry_shorts tool call.
func (h *Handlers) HandleEntryShorts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.Shorts(h.eng))
}

// HandleEntryLike handles the entry_like tool call.
func (h *Handlers) HandleEntryLike(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.Like(h.eng, ops.ReactInput{ID: input.ID}))
}

// HandleEntryDislike handles the entry_dislike tool call.
func (h *Handlers) HandleEntryDislike(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.Dislike(h.eng, ops.ReactInput{ID: input.ID}))
}

// HandleEntryPlay handles the entry_play tool call.
func (h *Handlers) HandleEntryPlay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.Play(h.eng, ops.PlayInput{ID: input.ID}))
}

// HandleCommentAdd handles the comment_add tool call.
func (h *Handlers) HandleCommentAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CommentAddRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.AddComment(h.eng, ops.AddCommentInput{
		ID:       input.ID,
		Username: input.Username,
		Text:     input.Text,
	}))
}

// HandleCommentList handles the comment_list tool call.
func (h *Handlers) HandleCommentList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.ListComments(h.eng, ops.ListCommentsInput{ID: input.ID}))
}

// HandleCommentLike handles the comment_like tool call.
func (h *Handlers) HandleCommentLike(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CommentLikeRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.LikeComment(h.eng, ops.LikeCommentInput{
		ID:        input.ID,
		CommentID: input.CommentID,
	}))
}

// HandleHistoryList handles the history_list tool call.
func (h *Handlers) HandleHistoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.History(h.eng))
}

// HandleUploadEnqueue handles the upload_enqueue tool call.
func (h *Handlers) HandleUploadEnqueue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UploadEnqueueRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.EnqueueUpload(h.eng, ops.EnqueueUploadInput{
		Title:    input.Title,
		Label:    input.Category,
		Duration: input.Duration,
		FilePath: input.FilePath,
	}))
}

// HandleUploadProcess handles the upload_process tool call.
func (h *Handlers) HandleUploadProcess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.ProcessUpload(h.eng))
}

// HandleUploadList handles the upload_list tool call.
func (h *Handlers) HandleUploadList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.ListUploads(h.eng))
}

// HandleSuggestionCurrent handles the suggestion_current tool call.
func (h *Handlers) HandleSuggestionCurrent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.CurrentSuggestion(h.eng))
}

// HandleSuggestionAdd handles the suggestion_add tool call.
func (h *Handlers) HandleSuggestionAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.AddSuggestion(h.eng, ops.AddSuggestionInput{ID: input.ID}))
}

// HandleSuggestionNext handles the suggestion_next tool call.
func (h *Handlers) HandleSuggestionNext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.NextSuggestion(h.eng))
}

// HandleSuggestionReset handles the suggestion_reset tool call.
func (h *Handlers) HandleSuggestionReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.ResetSuggestions(h.eng))
}

// HandlePlaylistList handles the playlist_list tool call.
func (h *Handlers) HandlePlaylistList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.ListPlaylists(h.eng))
}

// HandlePlaylistGet handles the playlist_get tool call.
func (h *Handlers) HandlePlaylistGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NameRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.GetPlaylist(h.eng, ops.PlaylistInput{Name: input.Name}))
}

// HandlePlaylistCreate handles the playlist_create tool call.
func (h *Handlers) HandlePlaylistCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NameRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.CreatePlaylist(h.eng, ops.PlaylistInput{Name: input.Name}))
}

// HandlePlaylistAdd handles the playlist_add tool call.
func (h *Handlers) HandlePlaylistAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PlaylistEntryRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.AddToPlaylist(h.eng, ops.PlaylistEntryInput{Name: input.Name, ID: input.ID}))
}

// HandlePlaylistRemove handles the playlist_remove tool call.
func (h *Handlers) HandlePlaylistRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PlaylistEntryRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.RemoveFromPlaylist(h.eng, ops.PlaylistEntryInput{Name: input.Name, ID: input.ID}))
}

// HandlePlaylistShuffle handles the playlist_shuffle tool call.
func (h *Handlers) HandlePlaylistShuffle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NameRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return respond(ops.ShufflePlaylist(h.eng, ops.PlaylistInput{Name: input.Name}))
}

// HandlePlaylistLibrary handles the playlist_library tool call.
func (h *Handlers) HandlePlaylistLibrary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.Library(h.eng))
}

// HandleCatalogStats handles the catalog_stats tool call.
func (h *Handlers) HandleCatalogStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(ops.Stats(h.eng))
}

// Result helpers

// respond turns an ops result into an MCP result.
func respond[T any](data *T, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(data)
}

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if reelErr, ok := errors.As(err); ok {
		message := reelErr.Message
		if err != error(reelErr) {
			// Keep wrapper context such as "line 3: ..."
			message = err.Error()
		}
		errorObj := map[string]any{
			"code":    reelErr.Code,
			"message": message,
			"status":  reelErr.Status,
		}
		if reelErr.Code != errors.ErrInternal && reelErr.Details != nil {
			errorObj["details"] = reelErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

// ResultText returns the JSON text of a tool result.
func ResultText(r *mcp.CallToolResult) string {
	for _, c := range r.Content {
		if text, ok := c.(mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}
