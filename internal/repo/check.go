// ABOUTME: Invariant checking and repair for the two collections.
// ABOUTME: Repair treats Note.BookID as authoritative and rebuilds Book.Notes from it.

package repo

import (
	"context"
	"fmt"
	"slices"

	"github.com/harper/notebook/internal/models"
)

type ViolationKind string

const (
	DanglingBookRef     ViolationKind = "dangling-book-ref"
	MissingMembership   ViolationKind = "missing-membership"
	DuplicateMembership ViolationKind = "duplicate-membership"
	StrayMembership     ViolationKind = "stray-membership"
	DuplicateNoteID     ViolationKind = "duplicate-note-id"
	DuplicateBookID     ViolationKind = "duplicate-book-id"
	TimestampOrder      ViolationKind = "timestamp-order"
)

// Violation is one broken consistency rule.
type Violation struct {
	Kind   ViolationKind `json:"kind"`
	NoteID string        `json:"noteId,omitempty"`
	BookID string        `json:"bookId,omitempty"`
}

func (v Violation) String() string {
	switch {
	case v.NoteID != "" && v.BookID != "":
		return fmt.Sprintf("%s: note %s, book %s", v.Kind, v.NoteID, v.BookID)
	case v.NoteID != "":
		return fmt.Sprintf("%s: note %s", v.Kind, v.NoteID)
	default:
		return fmt.Sprintf("%s: book %s", v.Kind, v.BookID)
	}
}

// Check lists every violation in snap. An empty result means the collections
// are consistent.
func Check(snap Snapshot) []Violation {
	var out []Violation

	notes := make(map[string]models.Note, len(snap.Notes))
	uniqueNotes := make([]models.Note, 0, len(snap.Notes))
	for _, n := range snap.Notes {
		if _, dup := notes[n.ID]; dup {
			out = append(out, Violation{Kind: DuplicateNoteID, NoteID: n.ID})
			continue
		}
		notes[n.ID] = n
		uniqueNotes = append(uniqueNotes, n)
		if n.UpdatedAt.Before(n.CreatedAt) {
			out = append(out, Violation{Kind: TimestampOrder, NoteID: n.ID})
		}
	}

	books := make(map[string]models.Book, len(snap.Books))
	uniqueBooks := make([]models.Book, 0, len(snap.Books))
	for _, b := range snap.Books {
		if _, dup := books[b.ID]; dup {
			out = append(out, Violation{Kind: DuplicateBookID, BookID: b.ID})
			continue
		}
		books[b.ID] = b
		uniqueBooks = append(uniqueBooks, b)
	}

	// memberships counts how often each note id is listed across all books.
	memberships := make(map[string]int)
	for _, b := range uniqueBooks {
		for _, id := range b.Notes {
			memberships[id]++
			n, ok := notes[id]
			if !ok || n.BookID != b.ID {
				out = append(out, Violation{Kind: StrayMembership, NoteID: id, BookID: b.ID})
			}
		}
	}

	for _, n := range uniqueNotes {
		if n.BookID != "" {
			b, ok := books[n.BookID]
			if !ok {
				out = append(out, Violation{Kind: DanglingBookRef, NoteID: n.ID, BookID: n.BookID})
			} else if !b.HasNote(n.ID) {
				out = append(out, Violation{Kind: MissingMembership, NoteID: n.ID, BookID: n.BookID})
			}
		}
		if memberships[n.ID] > 1 {
			out = append(out, Violation{Kind: DuplicateMembership, NoteID: n.ID})
		}
	}
	return out
}

// RepairReport summarizes what Repair changed.
type RepairReport struct {
	Before       []Violation `json:"before"`
	DroppedNotes int         `json:"droppedNotes"`
	DroppedBooks int         `json:"droppedBooks"`
	Unfiled      []string    `json:"unfiled"`
	Rebuilt      []string    `json:"rebuilt"`
	Clamped      []string    `json:"clamped"`
}

func (r RepairReport) Changed() bool {
	return r.DroppedNotes > 0 || r.DroppedBooks > 0 ||
		len(r.Unfiled) > 0 || len(r.Rebuilt) > 0 || len(r.Clamped) > 0
}

// Repair makes the stored collections consistent in one transaction.
func (r *Repository) Repair(ctx context.Context) (RepairReport, error) {
	var report RepairReport
	err := r.update(ctx, func(w *working) error {
		report.Before = Check(Snapshot{Notes: w.notes, Books: w.books})
		report = repair(w, report)
		return nil
	})
	if err != nil {
		return RepairReport{}, fmt.Errorf("failed to repair: %w", err)
	}
	if report.Changed() {
		r.log.Info().
			Int("violations", len(report.Before)).
			Int("unfiled", len(report.Unfiled)).
			Int("rebuilt", len(report.Rebuilt)).
			Msg("repaired collections")
	}
	return report, nil
}

// repair rewrites w in place, marking dirty whatever it changed.
func repair(w *working, report RepairReport) RepairReport {
	seenNotes := make(map[string]bool, len(w.notes))
	notes := make([]models.Note, 0, len(w.notes))
	for _, n := range w.notes {
		if seenNotes[n.ID] {
			report.DroppedNotes++
			w.notesDirty = true
			continue
		}
		seenNotes[n.ID] = true
		if n.UpdatedAt.Before(n.CreatedAt) {
			n.UpdatedAt = n.CreatedAt
			report.Clamped = append(report.Clamped, n.ID)
			w.notesDirty = true
		}
		notes = append(notes, n)
	}

	seenBooks := make(map[string]bool, len(w.books))
	books := make([]models.Book, 0, len(w.books))
	for _, b := range w.books {
		if seenBooks[b.ID] {
			report.DroppedBooks++
			w.booksDirty = true
			continue
		}
		seenBooks[b.ID] = true
		books = append(books, b)
	}

	for i := range notes {
		if notes[i].BookID != "" && !seenBooks[notes[i].BookID] {
			report.Unfiled = append(report.Unfiled, notes[i].ID)
			notes[i].BookID = ""
			w.notesDirty = true
		}
	}

	owner := make(map[string]string, len(notes))
	var order []string
	for _, n := range notes {
		owner[n.ID] = n.BookID
		order = append(order, n.ID)
	}

	for i := range books {
		b := &books[i]
		rebuilt := make([]string, 0, len(b.Notes))
		listed := make(map[string]bool, len(b.Notes))
		for _, id := range b.Notes {
			if listed[id] || owner[id] != b.ID {
				continue
			}
			listed[id] = true
			rebuilt = append(rebuilt, id)
		}
		for _, id := range order {
			if owner[id] == b.ID && !listed[id] {
				listed[id] = true
				rebuilt = append(rebuilt, id)
			}
		}
		if !slices.Equal(rebuilt, b.Notes) {
			b.Notes = rebuilt
			report.Rebuilt = append(report.Rebuilt, b.ID)
			w.booksDirty = true
		}
	}

	w.notes = notes
	w.books = books
	return report
}
