// ABOUTME: Note operations: create, update, rename, delete, and lookups.
// ABOUTME: Not-found is reported as a nil result rather than an error.

package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/store"
)

// MinPrefixLen is the shortest id prefix accepted by the resolvers.
const MinPrefixLen = 6

var (
	ErrPrefixTooShort  = errors.New("prefix must be at least 6 characters")
	ErrAmbiguousPrefix = errors.New("prefix matches multiple ids")
	ErrNoteNotFound    = errors.New("note not found")
	ErrBookNotFound    = errors.New("book not found")
)

// NoteUpdate carries the editable note fields. Nil fields are left alone.
// Book membership is changed only through MoveNoteToBook.
type NoteUpdate struct {
	Title   *string
	Content *string
}

func (u NoteUpdate) apply(n *models.Note) {
	if u.Title != nil {
		n.Title = store.ValidText(*u.Title)
	}
	if u.Content != nil {
		n.Content = store.ValidText(*u.Content)
	}
}

// CreateNote appends a new untitled note. When bookID names an existing book
// the note is filed there; otherwise it is created unfiled.
func (r *Repository) CreateNote(ctx context.Context, bookID string) (models.Note, error) {
	return r.CreateNoteWith(ctx, bookID, NoteUpdate{})
}

// CreateNoteWith is CreateNote with initial fields applied in the same write.
func (r *Repository) CreateNoteWith(ctx context.Context, bookID string, fields NoteUpdate) (models.Note, error) {
	var created models.Note
	err := r.update(ctx, func(w *working) error {
		id, err := r.allocateID(func(id string) bool { return noteIndex(w.notes, id) >= 0 })
		if err != nil {
			return err
		}
		note := models.NewNote(id, r.now())
		fields.apply(&note)

		if bookID != "" {
			if i := bookIndex(w.books, bookID); i >= 0 {
				note.BookID = bookID
				w.books[i].AddNote(id)
				w.booksDirty = true
			} else {
				r.log.Debug().Str("book", bookID).Msg("unknown book, creating note unfiled")
			}
		}

		w.notes = append(w.notes, note)
		w.notesDirty = true
		created = note.Clone()
		return nil
	})
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to create note: %w", err)
	}
	return created, nil
}

// UpdateNote merges u into the note and refreshes UpdatedAt, even when u is
// empty. It returns nil when the note does not exist.
func (r *Repository) UpdateNote(ctx context.Context, id string, u NoteUpdate) (*models.Note, error) {
	var updated *models.Note
	err := r.update(ctx, func(w *working) error {
		i := noteIndex(w.notes, id)
		if i < 0 {
			return nil
		}
		n := &w.notes[i]
		u.apply(n)
		n.Touch(r.now())
		w.notesDirty = true

		out := n.Clone()
		updated = &out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return updated, nil
}

// RenameNote sets the note's title.
func (r *Repository) RenameNote(ctx context.Context, id, title string) (*models.Note, error) {
	return r.UpdateNote(ctx, id, NoteUpdate{Title: &title})
}

// DeleteNote removes the note and its membership in its book, returning the
// remaining notes. An unknown id leaves everything unchanged.
func (r *Repository) DeleteNote(ctx context.Context, id string) ([]models.Note, error) {
	var remaining []models.Note
	err := r.update(ctx, func(w *working) error {
		i := noteIndex(w.notes, id)
		if i >= 0 {
			w.notes = append(w.notes[:i], w.notes[i+1:]...)
			w.notesDirty = true

			// Also drops stray memberships in other books.
			for b := range w.books {
				if w.books[b].RemoveNote(id) {
					w.booksDirty = true
				}
			}
		}
		remaining = w.snapshot().Notes
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}
	return remaining, nil
}

// GetNoteByID returns the note, or nil when it does not exist.
func (r *Repository) GetNoteByID(ctx context.Context, id string) (*models.Note, error) {
	var found *models.Note
	err := r.view(ctx, func(w *working) error {
		if i := noteIndex(w.notes, id); i >= 0 {
			n := w.notes[i].Clone()
			found = &n
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return found, nil
}

// ListNotePreviews returns previews in stored order.
func (r *Repository) ListNotePreviews(ctx context.Context) ([]models.NotePreview, error) {
	previews := []models.NotePreview{}
	err := r.view(ctx, func(w *working) error {
		for _, n := range w.notes {
			previews = append(previews, n.Preview())
		}
		return nil
	})
	if err != nil {
		return []models.NotePreview{}, fmt.Errorf("failed to list notes: %w", err)
	}
	return previews, nil
}

// ResolveNoteID expands an id or unique id prefix to a full note id.
func (r *Repository) ResolveNoteID(ctx context.Context, prefix string) (string, error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(snap.Notes))
	for _, n := range snap.Notes {
		ids = append(ids, n.ID)
	}
	return resolvePrefix(ids, prefix, ErrNoteNotFound)
}

func resolvePrefix(ids []string, prefix string, notFound error) (string, error) {
	prefix = strings.TrimSpace(prefix)
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
	}
	if len(prefix) < MinPrefixLen {
		return "", ErrPrefixTooShort
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", notFound
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(matches))
	}
}
