// ABOUTME: Line search across note content.
// ABOUTME: Backs the todos, links, and grep commands.

package repo

import (
	"context"
	"fmt"
	"strings"
)

const (
	TodoTag = "#todo"
	LinkTag = "#link"
)

// LineMatch is one content line containing the searched text.
type LineMatch struct {
	NoteID    string `json:"noteId"`
	NoteTitle string `json:"noteTitle"`
	BookID    string `json:"bookId,omitempty"`
	BookName  string `json:"bookName,omitempty"`
	// Line is 1-based.
	Line int    `json:"line"`
	Text string `json:"text"`
}

// FindLines returns every line of every note that contains needle, in note
// order then line order. An empty needle matches nothing.
func (r *Repository) FindLines(ctx context.Context, needle string) ([]LineMatch, error) {
	matches := []LineMatch{}
	if needle == "" {
		return matches, nil
	}

	snap, err := r.Snapshot(ctx)
	if err != nil {
		return matches, fmt.Errorf("failed to search notes: %w", err)
	}

	names := make(map[string]string, len(snap.Books))
	for _, b := range snap.Books {
		names[b.ID] = b.Name
	}

	for _, n := range snap.Notes {
		for i, line := range strings.Split(n.Content, "\n") {
			if !strings.Contains(line, needle) {
				continue
			}
			matches = append(matches, LineMatch{
				NoteID:    n.ID,
				NoteTitle: n.Title,
				BookID:    n.BookID,
				BookName:  names[n.BookID],
				Line:      i + 1,
				Text:      strings.TrimRight(line, "\r"),
			})
		}
	}
	return matches, nil
}
