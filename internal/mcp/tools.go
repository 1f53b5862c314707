// ABOUTME: MCP tools for note and book operations.
// ABOUTME: Maps repository operations to the MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/repo"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// create_note
	s.server.AddTool(&mcp.Tool{
		Name:        "create_note",
		Description: "Create a new note, optionally filed under a book",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"content": {"type": "string", "description": "Note content (markdown)"},
				"book_id": {"type": "string", "description": "Book ID or prefix (6+ chars)"}
			}
		}`),
	}, s.handleCreateNote)

	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List note previews, optionally limited to one book or to unfiled notes",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"book_id": {"type": "string", "description": "Only notes in this book"},
				"unfiled": {"type": "boolean", "description": "Only notes without a book"}
			}
		}`),
	}, s.handleListNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Change a note's title or content. Use move_note to change its book",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content (markdown)"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note and remove it from its book",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)

	// move_note
	s.server.AddTool(&mcp.Tool{
		Name:        "move_note",
		Description: "File a note under a book, or unfile it when book_id is empty",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"book_id": {"type": "string", "description": "Target book ID or prefix, empty to unfile"}
			},
			"required": ["id"]
		}`),
	}, s.handleMoveNote)

	// create_book
	s.server.AddTool(&mcp.Tool{
		Name:        "create_book",
		Description: "Create a new book",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Book name"}
			}
		}`),
	}, s.handleCreateBook)

	// rename_book
	s.server.AddTool(&mcp.Tool{
		Name:        "rename_book",
		Description: "Rename a book",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Book ID or prefix"},
				"name": {"type": "string", "description": "New name"}
			},
			"required": ["id", "name"]
		}`),
	}, s.handleRenameBook)

	// delete_book
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_book",
		Description: "Delete a book. Its notes are kept and become unfiled",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Book ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteBook)

	// list_books
	s.server.AddTool(&mcp.Tool{
		Name:        "list_books",
		Description: "List all books with their note ids",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListBooks)

	// find_lines
	s.server.AddTool(&mcp.Tool{
		Name:        "find_lines",
		Description: "Find content lines containing text, such as #todo or #link",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"text": {"type": "string", "description": "Text to look for"}
			},
			"required": ["text"]
		}`),
	}, s.handleFindLines)

	// check_notebook
	s.server.AddTool(&mcp.Tool{
		Name:        "check_notebook",
		Description: "Report consistency problems between notes and books, optionally repairing them",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"repair": {"type": "boolean", "description": "Fix the problems found"}
			}
		}`),
	}, s.handleCheck)
}

func decodeArgs(req *mcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

// resolveBook maps an optional book reference to a full id. Empty stays
// empty, which means unfiled.
func (s *Server) resolveBook(ctx context.Context, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", nil
	}
	return s.repo.ResolveBookID(ctx, ref)
}

func (s *Server) handleCreateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		BookID  string  `json:"book_id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	bookID, err := s.resolveBook(ctx, params.BookID)
	if err != nil {
		return errorResult("failed to find book: %v", err), nil
	}

	note, err := s.repo.CreateNoteWith(ctx, bookID, repo.NoteUpdate{Title: params.Title, Content: params.Content})
	if err != nil {
		return errorResult("failed to create note: %v", err), nil
	}

	return textResult(fmt.Sprintf("Created note %s", note.ID)), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		BookID  string `json:"book_id"`
		Unfiled bool   `json:"unfiled"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	previews, err := s.repo.ListNotePreviews(ctx)
	if err != nil {
		return errorResult("failed to list notes: %v", err), nil
	}

	if params.BookID != "" || params.Unfiled {
		bookID, err := s.resolveBook(ctx, params.BookID)
		if err != nil {
			return errorResult("failed to find book: %v", err), nil
		}
		filtered := []models.NotePreview{}
		for _, p := range previews {
			if p.BookID == bookID {
				filtered = append(filtered, p)
			}
		}
		previews = filtered
	}

	return jsonResult(previews), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.repo.ResolveNoteID(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	note, err := s.repo.GetNoteByID(ctx, id)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	if note == nil {
		return errorResult("note %s not found", id), nil
	}

	return jsonResult(note), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID      string  `json:"id"`
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.repo.ResolveNoteID(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	if params.Title == nil && params.Content == nil {
		return errorResult("nothing to update: pass title or content"), nil
	}

	note, err := s.repo.UpdateNote(ctx, id, repo.NoteUpdate{Title: params.Title, Content: params.Content})
	if err != nil {
		return errorResult("failed to update note: %v", err), nil
	}
	if note == nil {
		return errorResult("note %s not found", id), nil
	}

	return textResult(fmt.Sprintf("Updated note %s", note.ID)), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.repo.ResolveNoteID(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	if _, err := s.repo.DeleteNote(ctx, id); err != nil {
		return errorResult("failed to delete note: %v", err), nil
	}

	return textResult(fmt.Sprintf("Deleted note %s", id)), nil
}

func (s *Server) handleMoveNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID     string `json:"id"`
		BookID string `json:"book_id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.repo.ResolveNoteID(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	bookID, err := s.resolveBook(ctx, params.BookID)
	if err != nil {
		return errorResult("failed to find book: %v", err), nil
	}

	snap, err := s.repo.MoveNoteToBook(ctx, id, bookID)
	if err != nil {
		return errorResult("failed to move note: %v", err), nil
	}

	if bookID == "" {
		return textResult(fmt.Sprintf("Unfiled note %s", id)), nil
	}
	name := bookID
	if b := snap.Book(bookID); b != nil {
		name = b.Name
	}
	return textResult(fmt.Sprintf("Moved note %s to %s", id, name)), nil
}

func (s *Server) handleCreateBook(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name string `json:"name"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	book, err := s.repo.CreateBook(ctx, params.Name)
	if err != nil {
		return errorResult("failed to create book: %v", err), nil
	}

	return textResult(fmt.Sprintf("Created book %s (%s)", book.ID, book.Name)), nil
}

func (s *Server) handleRenameBook(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Name) == "" {
		return errorResult("book name cannot be empty"), nil
	}
	id, err := s.repo.ResolveBookID(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find book: %v", err), nil
	}

	book, err := s.repo.RenameBook(ctx, id, params.Name)
	if err != nil {
		return errorResult("failed to rename book: %v", err), nil
	}
	if book == nil {
		return errorResult("book %s not found", id), nil
	}

	return textResult(fmt.Sprintf("Renamed book %s to %s", book.ID, book.Name)), nil
}

func (s *Server) handleDeleteBook(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.repo.ResolveBookID(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find book: %v", err), nil
	}
	if _, err := s.repo.DeleteBook(ctx, id); err != nil {
		return errorResult("failed to delete book: %v", err), nil
	}

	return textResult(fmt.Sprintf("Deleted book %s", id)), nil
}

func (s *Server) handleListBooks(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return errorResult("failed to list books: %v", err), nil
	}
	return jsonResult(books), nil
}

func (s *Server) handleFindLines(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Text string `json:"text"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	if params.Text == "" {
		return errorResult("text cannot be empty"), nil
	}
	matches, err := s.repo.FindLines(ctx, params.Text)
	if err != nil {
		return errorResult("failed to search notes: %v", err), nil
	}

	return jsonResult(matches), nil
}

func (s *Server) handleCheck(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Repair bool `json:"repair"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	if params.Repair {
		report, err := s.repo.Repair(ctx)
		if err != nil {
			return errorResult("failed to repair notebook: %v", err), nil
		}
		return jsonResult(report), nil
	}

	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return errorResult("failed to read notebook: %v", err), nil
	}
	problems := []string{}
	for _, v := range repo.Check(snap) {
		problems = append(problems, v.String())
	}
	return jsonResult(problems), nil
}
