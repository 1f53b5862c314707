// ABOUTME: Tests for bulk import in merge and replace modes.
// ABOUTME: The imported result must always pass Check.

package repo

import (
	"context"
	"testing"

	"github.com/harper/notebook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportMerge(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	existing, err := r.CreateBook(ctx, "Existing")
	require.NoError(t, err)
	kept, err := r.CreateNote(ctx, existing.ID)
	require.NoError(t, err)

	incoming := Snapshot{
		Notes: []models.Note{
			note(kept.ID, ""),
			note("new-1", existing.ID),
			note("new-2", "new-book"),
			note("new-3", "ghost"),
			note("", ""),
		},
		Books: []models.Book{
			book(existing.ID),
			book("new-book", "new-2"),
		},
	}

	report, err := r.Import(ctx, incoming, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 3, report.NotesAdded)
	assert.Equal(t, 2, report.NotesSkipped)
	assert.Equal(t, 1, report.BooksAdded)
	assert.Equal(t, 1, report.BooksSkipped)
	assert.Equal(t, []string{"new-3"}, report.Repair.Unfiled)

	snap := requireConsistent(t, r)
	assert.Len(t, snap.Notes, 4)
	assert.Equal(t, "Existing", snap.Book(existing.ID).Name)
	assert.Equal(t, []string{kept.ID, "new-1"}, snap.Book(existing.ID).Notes)
	assert.Equal(t, existing.ID, snap.Note(kept.ID).BookID)
	assert.True(t, snap.Note("new-3").Unfiled())
}

func TestImportReplace(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	_, err := r.CreateNote(ctx, "")
	require.NoError(t, err)

	incoming := Snapshot{
		Notes: []models.Note{note("a", "b")},
		Books: []models.Book{{ID: "b", Notes: []string{}}},
	}
	report, err := r.Import(ctx, incoming, ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, report.NotesAdded)

	snap := requireConsistent(t, r)
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, "a", snap.Notes[0].ID)
	assert.Equal(t, models.DefaultBookName, snap.Books[0].Name)
	assert.Equal(t, []string{"a"}, snap.Books[0].Notes)
}
