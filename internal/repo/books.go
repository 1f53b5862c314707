// ABOUTME: Book operations and moving notes between books.
// ABOUTME: Keeps Note.BookID and Book.Notes in step inside one transaction.

package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/store"
)

// CreateBook appends a new empty book. A blank name becomes the default name.
func (r *Repository) CreateBook(ctx context.Context, name string) (models.Book, error) {
	var created models.Book
	err := r.update(ctx, func(w *working) error {
		id, err := r.allocateID(func(id string) bool { return bookIndex(w.books, id) >= 0 })
		if err != nil {
			return err
		}
		book := models.NewBook(id, store.ValidText(name), r.now())

		w.books = append(w.books, book)
		w.booksDirty = true
		created = book.Clone()
		return nil
	})
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to create book: %w", err)
	}
	return created, nil
}

// RenameBook changes a book's name. A blank or unchanged name writes nothing.
// It returns nil when the book does not exist.
func (r *Repository) RenameBook(ctx context.Context, id, name string) (*models.Book, error) {
	name = store.ValidText(name)
	var renamed *models.Book
	err := r.update(ctx, func(w *working) error {
		i := bookIndex(w.books, id)
		if i < 0 {
			return nil
		}
		if strings.TrimSpace(name) != "" && name != w.books[i].Name {
			w.books[i].Name = name
			w.booksDirty = true
		}
		out := w.books[i].Clone()
		renamed = &out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename book: %w", err)
	}
	return renamed, nil
}

// DeleteBook removes the book and leaves its notes unfiled, returning the
// remaining books. An unknown id leaves everything unchanged.
func (r *Repository) DeleteBook(ctx context.Context, id string) ([]models.Book, error) {
	var remaining []models.Book
	err := r.update(ctx, func(w *working) error {
		if i := bookIndex(w.books, id); i >= 0 {
			w.books = append(w.books[:i], w.books[i+1:]...)
			w.booksDirty = true

			for n := range w.notes {
				if w.notes[n].BookID == id {
					w.notes[n].BookID = ""
					w.notesDirty = true
				}
			}
		}
		remaining = w.snapshot().Books
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}
	return remaining, nil
}

// MoveNoteToBook files the note under targetBookID, or unfiles it when the
// target is empty or unknown. An unknown note leaves everything unchanged.
// UpdatedAt is not changed by a move.
func (r *Repository) MoveNoteToBook(ctx context.Context, noteID, targetBookID string) (Snapshot, error) {
	var snap Snapshot
	err := r.update(ctx, func(w *working) error {
		i := noteIndex(w.notes, noteID)
		if i < 0 {
			snap = w.snapshot()
			return nil
		}
		note := &w.notes[i]

		if note.BookID != "" {
			if b := bookIndex(w.books, note.BookID); b >= 0 && w.books[b].RemoveNote(noteID) {
				w.booksDirty = true
			}
		}

		target := ""
		if targetBookID != "" {
			if b := bookIndex(w.books, targetBookID); b >= 0 {
				target = targetBookID
				if w.books[b].AddNote(noteID) {
					w.booksDirty = true
				}
			} else {
				r.log.Debug().Str("book", targetBookID).Msg("unknown book, unfiling note")
			}
		}

		if note.BookID != target {
			note.BookID = target
			w.notesDirty = true
		}
		snap = w.snapshot()
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to move note: %w", err)
	}
	return snap, nil
}

// ListBooks returns all books in stored order.
func (r *Repository) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.view(ctx, func(w *working) error {
		books = w.snapshot().Books
		return nil
	})
	if err != nil {
		return []models.Book{}, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetBookByID returns the book, or nil when it does not exist.
func (r *Repository) GetBookByID(ctx context.Context, id string) (*models.Book, error) {
	var found *models.Book
	err := r.view(ctx, func(w *working) error {
		if i := bookIndex(w.books, id); i >= 0 {
			b := w.books[i].Clone()
			found = &b
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return found, nil
}

// ListBookNotes returns the book's notes in membership order, skipping ids
// that no longer resolve. It returns nil when the book does not exist.
func (r *Repository) ListBookNotes(ctx context.Context, bookID string) ([]models.Note, error) {
	var notes []models.Note
	err := r.view(ctx, func(w *working) error {
		i := bookIndex(w.books, bookID)
		if i < 0 {
			return nil
		}
		notes = []models.Note{}
		for _, id := range w.books[i].Notes {
			if n := noteIndex(w.notes, id); n >= 0 {
				notes = append(notes, w.notes[n].Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list book notes: %w", err)
	}
	return notes, nil
}

// ResolveBookID expands an id or unique id prefix to a full book id.
func (r *Repository) ResolveBookID(ctx context.Context, prefix string) (string, error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(snap.Books))
	for _, b := range snap.Books {
		ids = append(ids, b.ID)
	}
	return resolvePrefix(ids, prefix, ErrBookNotFound)
}
