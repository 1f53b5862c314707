// ABOUTME: Tests for Book model.
// ABOUTME: Validates default naming and idempotent membership edits.

package models

import (
	"testing"
	"time"
)

func TestNewBook(t *testing.T) {
	book := NewBook("b-1", "Research", time.Now())

	if book.ID != "b-1" {
		t.Errorf("expected ID b-1, got %q", book.ID)
	}
	if book.Name != "Research" {
		t.Errorf("expected name 'Research', got %q", book.Name)
	}
	if book.Notes == nil || len(book.Notes) != 0 {
		t.Error("expected empty, non-nil notes")
	}
}

func TestNewBookDefaultName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		book := NewBook("b-1", name, time.Now())
		if book.Name != DefaultBookName {
			t.Errorf("expected default name for %q, got %q", name, book.Name)
		}
	}
}

func TestBookAddNoteIdempotent(t *testing.T) {
	book := NewBook("b-1", "b", time.Now())

	if !book.AddNote("n1") {
		t.Error("expected first add to report a change")
	}
	if book.AddNote("n1") {
		t.Error("expected second add to be a no-op")
	}
	if len(book.Notes) != 1 {
		t.Errorf("expected 1 note, got %d", len(book.Notes))
	}
}

func TestBookRemoveNote(t *testing.T) {
	book := NewBook("b-1", "b", time.Now())
	book.Notes = []string{"n1", "n2", "n1"}

	if !book.RemoveNote("n1") {
		t.Error("expected removal to report a change")
	}
	if len(book.Notes) != 1 || book.Notes[0] != "n2" {
		t.Errorf("unexpected notes %v", book.Notes)
	}
	if book.RemoveNote("missing") {
		t.Error("expected removing a stranger to be a no-op")
	}
}

func TestBookClone(t *testing.T) {
	book := NewBook("b-1", "b", time.Now())
	book.AddNote("n1")

	clone := book.Clone()
	clone.Notes[0] = "other"
	if book.Notes[0] != "n1" {
		t.Error("expected clone to own its slice")
	}
}
