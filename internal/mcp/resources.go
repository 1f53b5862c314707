// ABOUTME: MCP resources for exposing notes and books as readable resources.
// ABOUTME: Allows AI agents to access note content via the notebook:// URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	noteURIPrefix = "notebook://note/"
	bookURIPrefix = "notebook://book/"
)

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadNote,
	)
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: bookURIPrefix + "{id}",
			Name:        "Book",
			Description: "A book's notes as a markdown table of contents",
			MIMEType:    "text/markdown",
		},
		s.handleReadBook,
	)
}

func (s *Server) handleReadNote(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ref, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok || ref == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	id, err := s.repo.ResolveNoteID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	note, err := s.repo.GetNoteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", note.Title)
	if note.BookID != "" {
		if book, err := s.repo.GetBookByID(ctx, note.BookID); err == nil && book != nil {
			fmt.Fprintf(&b, "**Book:** %s\n\n", book.Name)
		}
	}
	if len(note.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(note.Tags, ", "))
	}
	b.WriteString(note.Content)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     b.String(),
			},
		},
	}, nil
}

func (s *Server) handleReadBook(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ref, ok := strings.CutPrefix(req.Params.URI, bookURIPrefix)
	if !ok || ref == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	id, err := s.repo.ResolveBookID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	notes, err := s.repo.ListBookNotes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list book notes: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", book.Name)
	for _, n := range notes {
		fmt.Fprintf(&b, "- [%s](%s%s)\n", n.Title, noteURIPrefix, n.ID)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     b.String(),
			},
		},
	}, nil
}
