// ABOUTME: MCP prompts for common notebook workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "start-book",
		Description: "Create a book and a first outline note inside it",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "topic",
				Description: "What the book is about",
				Required:    true,
			},
		},
	}, s.getStartBookPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Generate a summary of an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "review-todos",
		Description: "Walk through every #todo line across the notebook",
	}, s.getReviewTodosPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "file-unfiled-notes",
		Description: "Suggest books for notes that are not in any book",
	}, s.getFileUnfiledPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getStartBookPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic, ok := req.Params.Arguments["topic"]
	if !ok || topic == "" {
		return nil, fmt.Errorf("topic argument is required")
	}

	return userPrompt(fmt.Sprintf(`Start a new book about: %s

1. Use the create_book tool with a short name for the topic
2. Use the create_note tool with that book_id to add an "Outline" note
3. In the outline, list the sections the book should cover as markdown headings
4. Add a "#todo" line under each heading that still needs writing`, topic)), nil
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	noteID, ok := req.Params.Arguments["note_id"]
	if !ok || noteID == "" {
		return nil, fmt.Errorf("note_id argument is required")
	}

	return userPrompt(fmt.Sprintf(`Please summarize the note with ID: %s

1. Use the get_note tool to retrieve the note content
2. Read and analyze the note
3. Create a concise summary highlighting:
   - Main topic or theme
   - Key points or takeaways
   - Important details or action items
4. Use the update_note tool to add a "Summary" section at the top of the note`, noteID)), nil
}

func (s *Server) getReviewTodosPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(`Help me review my open tasks:

1. Use the find_lines tool with text "#todo" to collect every task line
2. Group the tasks by book, treating notes without a book as "No Book"
3. Point out tasks that look finished or duplicated
4. Suggest which three tasks to tackle first and why`), nil
}

func (s *Server) getFileUnfiledPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(`Help me file my loose notes:

1. Use the list_notes tool with unfiled set to true
2. Use the list_books tool to see the existing books
3. For each unfiled note, use get_note and suggest a book for it
4. Ask before calling move_note, and suggest create_book when no existing book fits`), nil
}
