// ABOUTME: Tests for the invariant checker and repair.
// ABOUTME: Seeds inconsistent collections directly through the store.

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, kv store.KV, notes []models.Note, books []models.Book) {
	t.Helper()
	cols := store.NewCollections(store.JSON())
	require.NoError(t, kv.Update(context.Background(), func(txn store.Txn) error {
		if err := cols.SaveNotes(txn, notes); err != nil {
			return err
		}
		return cols.SaveBooks(txn, books)
	}))
}

func note(id, bookID string) models.Note {
	return models.Note{ID: id, Title: id, CreatedAt: baseTime, UpdatedAt: baseTime, Tags: []string{}, BookID: bookID}
}

func book(id string, notes ...string) models.Book {
	if notes == nil {
		notes = []string{}
	}
	return models.Book{ID: id, Name: id, Notes: notes, CreatedAt: baseTime}
}

func kinds(vs []Violation) []ViolationKind {
	out := make([]ViolationKind, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Kind)
	}
	return out
}

func TestCheckConsistent(t *testing.T) {
	snap := Snapshot{
		Notes: []models.Note{note("n1", "b1"), note("n2", "")},
		Books: []models.Book{book("b1", "n1"), book("b2")},
	}
	assert.Empty(t, Check(snap))
}

func TestCheckFindsEachViolation(t *testing.T) {
	backwards := note("n6", "")
	backwards.UpdatedAt = baseTime.Add(-time.Minute)

	snap := Snapshot{
		Notes: []models.Note{
			note("n1", "ghost"),
			note("n2", "b1"),
			note("n3", "b1"),
			note("n3", ""),
			backwards,
		},
		Books: []models.Book{
			book("b1", "n3", "n3", "n9"),
			book("b1"),
		},
	}

	got := kinds(Check(snap))
	assert.Contains(t, got, DanglingBookRef)
	assert.Contains(t, got, MissingMembership)
	assert.Contains(t, got, DuplicateMembership)
	assert.Contains(t, got, StrayMembership)
	assert.Contains(t, got, DuplicateNoteID)
	assert.Contains(t, got, DuplicateBookID)
	assert.Contains(t, got, TimestampOrder)
}

func TestViolationString(t *testing.T) {
	assert.Equal(t, "stray-membership: note n1, book b1", Violation{Kind: StrayMembership, NoteID: "n1", BookID: "b1"}.String())
	assert.Equal(t, "timestamp-order: note n1", Violation{Kind: TimestampOrder, NoteID: "n1"}.String())
	assert.Equal(t, "duplicate-book-id: book b1", Violation{Kind: DuplicateBookID, BookID: "b1"}.String())
}

func TestRepairRestoresInvariant(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	backwards := note("n5", "b2")
	backwards.UpdatedAt = baseTime.Add(-time.Minute)

	seed(t, kv,
		[]models.Note{
			note("n1", "ghost"),
			note("n2", "b1"),
			note("n3", "b1"),
			note("n3", "b2"),
			note("n4", ""),
			backwards,
		},
		[]models.Book{
			book("b1", "n3", "n4", "n3", "n99"),
			book("b2", "n5"),
			book("b2", "n1"),
		},
	)

	r := New(kv)
	report, err := r.Repair(ctx)
	require.NoError(t, err)
	assert.True(t, report.Changed())
	assert.NotEmpty(t, report.Before)
	assert.Equal(t, 1, report.DroppedNotes)
	assert.Equal(t, 1, report.DroppedBooks)
	assert.Equal(t, []string{"n1"}, report.Unfiled)
	assert.Equal(t, []string{"n5"}, report.Clamped)
	assert.Contains(t, report.Rebuilt, "b1")

	snap := requireConsistent(t, r)
	require.Len(t, snap.Notes, 5)
	require.Len(t, snap.Books, 2)
	assert.True(t, snap.Note("n1").Unfiled())
	// Existing order kept, missing members appended.
	assert.Equal(t, []string{"n3", "n2"}, snap.Book("b1").Notes)
	assert.Equal(t, []string{"n5"}, snap.Book("b2").Notes)
	assert.Equal(t, baseTime, snap.Note("n5").UpdatedAt)

	again, err := r.Repair(ctx)
	require.NoError(t, err)
	assert.False(t, again.Changed())
	assert.Empty(t, again.Before)
}

func TestRepairOnConsistentStoreWritesNothing(t *testing.T) {
	ctx := context.Background()
	kv := &countingKV{KV: store.NewMemory()}
	r := New(kv)

	report, err := r.Repair(ctx)
	require.NoError(t, err)
	assert.False(t, report.Changed())
	assert.Zero(t, kv.sets)
}
