// ABOUTME: Note model representing a markdown note with optional book membership.
// ABOUTME: Provides constructor, timestamp handling, and the sidebar preview projection.

package models

import "time"

const DefaultNoteTitle = "Untitled Note"

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tags      []string  `json:"tags"`
	// BookID is empty for unfiled notes.
	BookID string `json:"bookId,omitempty"`
}

// NotePreview is the subset of a note shown in lists.
type NotePreview struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tags      []string  `json:"tags"`
	BookID    string    `json:"bookId,omitempty"`
}

func NewNote(id string, now time.Time) Note {
	return Note{
		ID:        id,
		Title:     DefaultNoteTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []string{},
	}
}

// Touch advances UpdatedAt to now. UpdatedAt never moves backwards and never
// precedes CreatedAt, even when the clock does.
func (n *Note) Touch(now time.Time) {
	if now.Before(n.UpdatedAt) {
		now = n.UpdatedAt
	}
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
}

func (n Note) Unfiled() bool {
	return n.BookID == ""
}

func (n Note) Preview() NotePreview {
	return NotePreview{
		ID:        n.ID,
		Title:     n.Title,
		UpdatedAt: n.UpdatedAt,
		Tags:      append([]string{}, n.Tags...),
		BookID:    n.BookID,
	}
}

// Clone returns a copy that shares no slices with n.
func (n Note) Clone() Note {
	n.Tags = append([]string{}, n.Tags...)
	return n
}
