// ABOUTME: Book model grouping notes under a name.
// ABOUTME: Keeps the ordered list of member note ids (the inverse of Note.BookID).

package models

import (
	"slices"
	"strings"
	"time"
)

const DefaultBookName = "Untitled Book"

type Book struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Notes     []string  `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewBook(id, name string, now time.Time) Book {
	if strings.TrimSpace(name) == "" {
		name = DefaultBookName
	}
	return Book{
		ID:        id,
		Name:      name,
		Notes:     []string{},
		CreatedAt: now,
	}
}

func (b Book) HasNote(noteID string) bool {
	return slices.Contains(b.Notes, noteID)
}

// AddNote appends noteID unless it is already a member.
func (b *Book) AddNote(noteID string) bool {
	if b.HasNote(noteID) {
		return false
	}
	b.Notes = append(b.Notes, noteID)
	return true
}

// RemoveNote drops every occurrence of noteID.
func (b *Book) RemoveNote(noteID string) bool {
	before := len(b.Notes)
	b.Notes = slices.DeleteFunc(b.Notes, func(id string) bool { return id == noteID })
	return len(b.Notes) != before
}

func (b Book) Clone() Book {
	b.Notes = append([]string{}, b.Notes...)
	return b
}
