// ABOUTME: Bulk import of a snapshot into the repository.
// ABOUTME: Merge keeps existing records; replace swaps both collections. Either way the result is repaired.

package repo

import (
	"context"
	"fmt"

	"github.com/harper/notebook/internal/models"
)

type ImportMode int

const (
	// ImportMerge adds incoming records whose ids are not already present.
	ImportMerge ImportMode = iota
	// ImportReplace discards existing records.
	ImportReplace
)

func (m ImportMode) String() string {
	if m == ImportReplace {
		return "replace"
	}
	return "merge"
}

type ImportReport struct {
	NotesAdded   int          `json:"notesAdded"`
	NotesSkipped int          `json:"notesSkipped"`
	BooksAdded   int          `json:"booksAdded"`
	BooksSkipped int          `json:"booksSkipped"`
	Repair       RepairReport `json:"repair"`
}

// Import writes snap into the store in one transaction.
func (r *Repository) Import(ctx context.Context, snap Snapshot, mode ImportMode) (ImportReport, error) {
	var report ImportReport
	err := r.update(ctx, func(w *working) error {
		report = ImportReport{}
		if mode == ImportReplace {
			w.notes = []models.Note{}
			w.books = []models.Book{}
			w.notesDirty = true
			w.booksDirty = true
		}

		haveNotes := make(map[string]bool, len(w.notes))
		for _, n := range w.notes {
			haveNotes[n.ID] = true
		}
		for _, n := range snap.Notes {
			if n.ID == "" || haveNotes[n.ID] {
				report.NotesSkipped++
				continue
			}
			haveNotes[n.ID] = true
			w.notes = append(w.notes, n.Clone())
			w.notesDirty = true
			report.NotesAdded++
		}

		haveBooks := make(map[string]bool, len(w.books))
		for _, b := range w.books {
			haveBooks[b.ID] = true
		}
		for _, b := range snap.Books {
			if b.ID == "" || haveBooks[b.ID] {
				report.BooksSkipped++
				continue
			}
			haveBooks[b.ID] = true
			b = b.Clone()
			if b.Name == "" {
				b.Name = models.DefaultBookName
			}
			w.books = append(w.books, b)
			w.booksDirty = true
			report.BooksAdded++
		}

		report.Repair = repair(w, RepairReport{Before: Check(Snapshot{Notes: w.notes, Books: w.books})})
		return nil
	})
	if err != nil {
		return ImportReport{}, fmt.Errorf("failed to import: %w", err)
	}
	r.log.Info().
		Str("mode", mode.String()).
		Int("notes", report.NotesAdded).
		Int("books", report.BooksAdded).
		Msg("imported snapshot")
	return report, nil
}
