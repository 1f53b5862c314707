// ABOUTME: JSON export and import of the whole notebook.
// ABOUTME: Also reads localStorage dumps written by the browser version of the app.

package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/repo"
	"github.com/harper/notebook/internal/store"
)

const ExportVersion = "1.0"

// Keys the web app used in localStorage.
const (
	LegacyNotesKey = "obsidian-notes"
	LegacyBooksKey = "obsidian-books"
)

var ErrUnknownFormat = errors.New("unrecognized import format")

type ExportNote struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"-"`
	Tags      []string  `json:"tags" yaml:"tags,omitempty"`
	BookID    string    `json:"bookId,omitempty" yaml:"bookId,omitempty"`
	Book      string    `json:"-" yaml:"book,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"created"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated"`
}

type ExportBook struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Notes     []string  `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

type ExportData struct {
	ExportedAt time.Time    `json:"exportedAt"`
	Version    string       `json:"version"`
	Notes      []ExportNote `json:"notes"`
	Books      []ExportBook `json:"books"`
}

// NewExport builds export data from a snapshot.
func NewExport(snap repo.Snapshot, now time.Time) ExportData {
	data := ExportData{
		ExportedAt: now,
		Version:    ExportVersion,
		Notes:      make([]ExportNote, 0, len(snap.Notes)),
		Books:      make([]ExportBook, 0, len(snap.Books)),
	}
	for _, n := range snap.Notes {
		data.Notes = append(data.Notes, exportNote(n, ""))
	}
	for _, b := range snap.Books {
		data.Books = append(data.Books, ExportBook{
			ID:        b.ID,
			Name:      b.Name,
			Notes:     append([]string{}, b.Notes...),
			CreatedAt: b.CreatedAt,
		})
	}
	return data
}

func exportNote(n models.Note, bookName string) ExportNote {
	return ExportNote{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      append([]string{}, n.Tags...),
		BookID:    n.BookID,
		Book:      bookName,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// Snapshot converts export data back into collections.
func (d ExportData) Snapshot() repo.Snapshot {
	snap := repo.Snapshot{
		Notes: make([]models.Note, 0, len(d.Notes)),
		Books: make([]models.Book, 0, len(d.Books)),
	}
	for _, n := range d.Notes {
		tags := n.Tags
		if tags == nil {
			tags = []string{}
		}
		snap.Notes = append(snap.Notes, models.Note{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
			Tags:      tags,
			BookID:    n.BookID,
		})
	}
	for _, b := range d.Books {
		notes := b.Notes
		if notes == nil {
			notes = []string{}
		}
		snap.Books = append(snap.Books, models.Book{
			ID:        b.ID,
			Name:      b.Name,
			Notes:     notes,
			CreatedAt: b.CreatedAt,
		})
	}
	return snap
}

// WriteJSON writes indented export JSON.
func WriteJSON(w io.Writer, data ExportData) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// ReadJSON reads either an export file or a localStorage dump. Problems found
// in legacy records are returned alongside the snapshot.
func ReadJSON(r io.Reader) (repo.Snapshot, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return repo.Snapshot{}, nil, fmt.Errorf("failed to read import: %w", err)
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		notes, problems, err := legacyNotes(data)
		if err != nil {
			return repo.Snapshot{}, nil, err
		}
		return repo.Snapshot{Notes: notes, Books: []models.Book{}}, problems, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return repo.Snapshot{}, nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}

	if _, ok := probe["version"]; ok {
		var export ExportData
		if err := json.Unmarshal(data, &export); err != nil {
			return repo.Snapshot{}, nil, fmt.Errorf("failed to decode export: %w", err)
		}
		return export.Snapshot(), nil, nil
	}

	rawNotes, hasNotes := probe[LegacyNotesKey]
	rawBooks, hasBooks := probe[LegacyBooksKey]
	if !hasNotes && !hasBooks {
		return repo.Snapshot{}, nil, ErrUnknownFormat
	}

	snap := repo.Snapshot{Notes: []models.Note{}, Books: []models.Book{}}
	var problems []string
	if hasNotes {
		notes, p, err := legacyNotes(unquote(rawNotes))
		if err != nil {
			return repo.Snapshot{}, nil, err
		}
		snap.Notes = notes
		problems = append(problems, p...)
	}
	if hasBooks {
		books, p, err := legacyBooks(unquote(rawBooks))
		if err != nil {
			return repo.Snapshot{}, nil, err
		}
		snap.Books = books
		problems = append(problems, p...)
	}
	return snap, problems, nil
}

// unquote unwraps a localStorage value, which is itself a JSON string.
func unquote(raw json.RawMessage) []byte {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []byte(s)
	}
	return raw
}

func legacyNotes(data []byte) ([]models.Note, []string, error) {
	var records []store.NoteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("failed to decode legacy notes: %w", err)
	}
	notes := make([]models.Note, 0, len(records))
	var problems []string
	for _, r := range records {
		n, ok, p := store.NoteFromRecord(r)
		problems = append(problems, p...)
		if ok {
			notes = append(notes, n)
		}
	}
	return notes, problems, nil
}

func legacyBooks(data []byte) ([]models.Book, []string, error) {
	var records []store.BookRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("failed to decode legacy books: %w", err)
	}
	books := make([]models.Book, 0, len(records))
	var problems []string
	for _, r := range records {
		b, ok, p := store.BookFromRecord(r)
		problems = append(problems, p...)
		if ok {
			books = append(books, b)
		}
	}
	return books, problems, nil
}
