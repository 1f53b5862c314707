// ABOUTME: Tests for the MCP tool, resource, and prompt handlers.
// ABOUTME: Calls handlers directly against a memory-backed repository.

package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/repo"
	"github.com/harper/notebook/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toolHandler func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer(t *testing.T) (*Server, *repo.Repository) {
	t.Helper()
	r := repo.New(store.NewMemory())
	return NewServer(r, zerolog.Nop()), r
}

func call(t *testing.T, h toolHandler, args any) *mcp.CallToolResult {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	res, err := h(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: raw},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestCreateNoteInBook(t *testing.T) {
	s, r := newTestServer(t)
	ctx := context.Background()
	book, err := r.CreateBook(ctx, "Research")
	require.NoError(t, err)

	res := call(t, s.handleCreateNote, map[string]any{
		"title":   "Paper",
		"content": "#todo read it",
		"book_id": book.ID[:8],
	})
	assert.False(t, res.IsError, text(t, res))
	assert.True(t, strings.HasPrefix(text(t, res), "Created note "))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, "Paper", snap.Notes[0].Title)
	assert.Equal(t, book.ID, snap.Notes[0].BookID)
	assert.Equal(t, "#todo read it", snap.Notes[0].Content)
	// Fields are applied by the create itself, not a follow-up edit.
	assert.True(t, snap.Notes[0].UpdatedAt.Equal(snap.Notes[0].CreatedAt))
	assert.Equal(t, []string{snap.Notes[0].ID}, snap.Books[0].Notes)
	assert.Empty(t, repo.Check(snap))
}

func TestCreateNoteWithEmptyArguments(t *testing.T) {
	s, r := newTestServer(t)

	res, err := s.handleCreateNote(context.Background(), &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{}})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	previews, err := r.ListNotePreviews(context.Background())
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, models.DefaultNoteTitle, previews[0].Title)
	assert.Empty(t, previews[0].BookID)
}

func TestCreateNoteUnknownBookIsError(t *testing.T) {
	s, r := newTestServer(t)

	res := call(t, s.handleCreateNote, map[string]any{"book_id": "nosuchbook"})
	assert.True(t, res.IsError)

	previews, err := r.ListNotePreviews(context.Background())
	require.NoError(t, err)
	assert.Empty(t, previews)
}

func TestGetAndUpdateNote(t *testing.T) {
	s, r := newTestServer(t)
	ctx := context.Background()
	note, err := r.CreateNote(ctx, "")
	require.NoError(t, err)

	res := call(t, s.handleUpdateNote, map[string]any{"id": note.ID, "content": "hello"})
	assert.False(t, res.IsError, text(t, res))

	res = call(t, s.handleGetNote, map[string]any{"id": note.ID[:6]})
	require.False(t, res.IsError, text(t, res))
	var got models.Note
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, note.ID, got.ID)
	assert.Equal(t, "hello", got.Content)
}

func TestUpdateNoteNeedsAField(t *testing.T) {
	s, r := newTestServer(t)
	note, err := r.CreateNote(context.Background(), "")
	require.NoError(t, err)

	res := call(t, s.handleUpdateNote, map[string]any{"id": note.ID})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "nothing to update")
}

func TestGetNotePrefixTooShort(t *testing.T) {
	s, r := newTestServer(t)
	note, err := r.CreateNote(context.Background(), "")
	require.NoError(t, err)

	res := call(t, s.handleGetNote, map[string]any{"id": note.ID[:3]})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), repo.ErrPrefixTooShort.Error())
}

func TestMoveAndListNotes(t *testing.T) {
	s, r := newTestServer(t)
	ctx := context.Background()
	book, err := r.CreateBook(ctx, "Work")
	require.NoError(t, err)
	filed, err := r.CreateNote(ctx, "")
	require.NoError(t, err)
	_, err = r.CreateNote(ctx, "")
	require.NoError(t, err)

	res := call(t, s.handleMoveNote, map[string]any{"id": filed.ID, "book_id": book.ID})
	require.False(t, res.IsError, text(t, res))
	assert.Equal(t, "Moved note "+filed.ID+" to Work", text(t, res))

	var inBook []models.NotePreview
	res = call(t, s.handleListNotes, map[string]any{"book_id": book.ID})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &inBook))
	require.Len(t, inBook, 1)
	assert.Equal(t, filed.ID, inBook[0].ID)

	var unfiled []models.NotePreview
	res = call(t, s.handleListNotes, map[string]any{"unfiled": true})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &unfiled))
	require.Len(t, unfiled, 1)
	assert.NotEqual(t, filed.ID, unfiled[0].ID)

	res = call(t, s.handleMoveNote, map[string]any{"id": filed.ID, "book_id": ""})
	require.False(t, res.IsError)
	assert.Equal(t, "Unfiled note "+filed.ID, text(t, res))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Books[0].Notes)
	assert.Empty(t, repo.Check(snap))
}

func TestBookLifecycle(t *testing.T) {
	s, r := newTestServer(t)
	ctx := context.Background()

	res := call(t, s.handleCreateBook, map[string]any{"name": "Ideas"})
	require.False(t, res.IsError)
	books, err := r.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	id := books[0].ID

	note, err := r.CreateNote(ctx, id)
	require.NoError(t, err)

	res = call(t, s.handleRenameBook, map[string]any{"id": id, "name": "Plans"})
	require.False(t, res.IsError, text(t, res))
	assert.Equal(t, "Renamed book "+id+" to Plans", text(t, res))

	res = call(t, s.handleRenameBook, map[string]any{"id": id, "name": "  "})
	assert.True(t, res.IsError)

	res = call(t, s.handleDeleteBook, map[string]any{"id": id})
	require.False(t, res.IsError, text(t, res))

	got, err := r.GetNoteByID(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.BookID)

	res = call(t, s.handleListBooks, map[string]any{})
	assert.JSONEq(t, "[]", text(t, res))
}

func TestDeleteNote(t *testing.T) {
	s, r := newTestServer(t)
	ctx := context.Background()
	book, err := r.CreateBook(ctx, "")
	require.NoError(t, err)
	note, err := r.CreateNote(ctx, book.ID)
	require.NoError(t, err)

	res := call(t, s.handleDeleteNote, map[string]any{"id": note.ID})
	require.False(t, res.IsError, text(t, res))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Notes)
	assert.Empty(t, snap.Books[0].Notes)

	res = call(t, s.handleDeleteNote, map[string]any{"id": note.ID})
	assert.True(t, res.IsError)
}

func TestFindLinesTool(t *testing.T) {
	s, r := newTestServer(t)
	ctx := context.Background()
	note, err := r.CreateNote(ctx, "")
	require.NoError(t, err)
	content := "intro\n- [ ] ship it #todo"
	_, err = r.UpdateNote(ctx, note.ID, repo.NoteUpdate{Content: &content})
	require.NoError(t, err)

	res := call(t, s.handleFindLines, map[string]any{"text": repo.TodoTag})
	require.False(t, res.IsError)
	var matches []repo.LineMatch
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Line)
	assert.Equal(t, "- [ ] ship it #todo", matches[0].Text)

	res = call(t, s.handleFindLines, map[string]any{"text": ""})
	assert.True(t, res.IsError)
}

func TestCheckTool(t *testing.T) {
	s, _ := newTestServer(t)

	res := call(t, s.handleCheck, map[string]any{})
	require.False(t, res.IsError)
	assert.JSONEq(t, "[]", text(t, res))

	res = call(t, s.handleCheck, map[string]any{"repair": true})
	require.False(t, res.IsError)
	var report repo.RepairReport
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &report))
	assert.False(t, report.Changed())
}

func TestReadNoteResource(t *testing.T) {
	s, r := newTestServer(t)
	ctx := context.Background()
	book, err := r.CreateBook(ctx, "Research")
	require.NoError(t, err)
	note, err := r.CreateNote(ctx, book.ID)
	require.NoError(t, err)
	content := "body text"
	_, err = r.UpdateNote(ctx, note.ID, repo.NoteUpdate{Content: &content})
	require.NoError(t, err)

	uri := "notebook://note/" + note.ID
	res, err := s.handleReadNote(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, uri, res.Contents[0].URI)
	assert.Equal(t, "text/markdown", res.Contents[0].MIMEType)
	assert.Equal(t, "# Untitled Note\n\n**Book:** Research\n\nbody text", res.Contents[0].Text)

	_, err = s.handleReadNote(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "memo://note/x"}})
	assert.Error(t, err)
}

func TestReadBookResource(t *testing.T) {
	s, r := newTestServer(t)
	ctx := context.Background()
	book, err := r.CreateBook(ctx, "Research")
	require.NoError(t, err)
	note, err := r.CreateNote(ctx, book.ID)
	require.NoError(t, err)

	res, err := s.handleReadBook(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "notebook://book/" + book.ID}})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "# Research\n\n- [Untitled Note](notebook://note/"+note.ID+")\n", res.Contents[0].Text)
}

func TestPrompts(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	res, err := s.getStartBookPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{
		Arguments: map[string]string{"topic": "gardening"},
	}})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	tc, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, tc.Text, "gardening")

	_, err = s.getStartBookPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{}})
	assert.Error(t, err)

	_, err = s.getSummarizeNotePrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{}})
	assert.Error(t, err)

	res, err = s.getReviewTodosPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{}})
	require.NoError(t, err)
	tc = res.Messages[0].Content.(*mcp.TextContent)
	assert.Contains(t, tc.Text, "#todo")
}
