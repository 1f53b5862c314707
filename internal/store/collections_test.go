// ABOUTME: Tests for loading and saving whole collections over a Txn.
// ABOUTME: Uses gomock to inject medium failures.

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/store"
	"github.com/harper/notebook/internal/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLoadAbsentCollections(t *testing.T) {
	m := store.NewMemory()
	c := store.NewCollections(nil)

	require.NoError(t, m.View(context.Background(), func(txn store.Txn) error {
		notes, err := c.LoadNotes(txn)
		require.NoError(t, err)
		assert.Empty(t, notes.Records)
		assert.NotNil(t, notes.Records)
		assert.Nil(t, notes.Corrupt)

		books, err := c.LoadBooks(txn)
		require.NoError(t, err)
		assert.Empty(t, books.Records)
		assert.Nil(t, books.Corrupt)
		return nil
	}))
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	c := store.NewCollections(store.CBOR())
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	note := models.Note{ID: "n1", Title: "t", CreatedAt: now, UpdatedAt: now, Tags: []string{}, BookID: "b1"}
	book := models.Book{ID: "b1", Name: "b", Notes: []string{"n1"}, CreatedAt: now}

	require.NoError(t, m.Update(ctx, func(txn store.Txn) error {
		if err := c.SaveNotes(txn, []models.Note{note}); err != nil {
			return err
		}
		return c.SaveBooks(txn, []models.Book{book})
	}))

	require.NoError(t, m.View(ctx, func(txn store.Txn) error {
		notes, err := c.LoadNotes(txn)
		require.NoError(t, err)
		assert.Equal(t, []models.Note{note}, notes.Records)

		books, err := c.LoadBooks(txn)
		require.NoError(t, err)
		assert.Equal(t, []models.Book{book}, books.Records)
		return nil
	}))
}

func TestLoadCorruptCollectionFailsClosed(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	c := store.NewCollections(nil)

	require.NoError(t, m.Update(ctx, func(txn store.Txn) error {
		return txn.Set(store.NotesKey, []byte("{{{"))
	}))

	require.NoError(t, m.View(ctx, func(txn store.Txn) error {
		notes, err := c.LoadNotes(txn)
		require.NoError(t, err)
		assert.Empty(t, notes.Records)
		require.NotNil(t, notes.Corrupt)
		assert.ErrorIs(t, notes.Corrupt, store.ErrMalformed)
		assert.Equal(t, "notebook:notes", notes.Corrupt.Key)
		assert.Equal(t, []byte("{{{"), notes.Raw)
		return nil
	}))
}

func TestLoadMediumFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	txn := mocks.NewMockTxn(ctrl)
	txn.EXPECT().Get(store.NotesKey).Return(nil, errors.New("disk on fire"))

	notes, err := store.NewCollections(nil).LoadNotes(txn)
	assert.ErrorIs(t, err, store.ErrRead)
	assert.Empty(t, notes.Records)
}

func TestSaveMediumFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	txn := mocks.NewMockTxn(ctrl)
	txn.EXPECT().Set(store.BooksKey, gomock.Any()).Return(errors.New("quota exceeded"))

	err := store.NewCollections(nil).SaveBooks(txn, []models.Book{{ID: "b1", Name: "x"}})
	assert.ErrorIs(t, err, store.ErrPersist)
}

func TestQuarantine(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	c := store.NewCollections(nil)
	now := time.Unix(0, 42)

	var qkey string
	require.NoError(t, m.Update(ctx, func(txn store.Txn) error {
		var err error
		qkey, err = c.Quarantine(txn, string(store.BooksKey), []byte("bad"), now)
		return err
	}))
	assert.Equal(t, "notebook:books:quarantine:42", qkey)

	require.NoError(t, m.View(ctx, func(txn store.Txn) error {
		v, err := txn.Get([]byte(qkey))
		require.NoError(t, err)
		assert.Equal(t, []byte("bad"), v)
		return nil
	}))
}
