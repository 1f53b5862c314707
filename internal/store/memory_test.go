// ABOUTME: Tests for the in-memory KV medium.
// ABOUTME: Verifies staging, rollback on error, and read-only views.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUpdateCommits(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	err := m.Update(ctx, func(txn Txn) error {
		if err := txn.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}
		return txn.Set([]byte("b"), []byte("2"))
	})
	require.NoError(t, err)

	err = m.View(ctx, func(txn Txn) error {
		v, err := txn.Get([]byte("a"))
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), v)
		v, err = txn.Get([]byte("b"))
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), v)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryUpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("boom")

	err := m.Update(ctx, func(txn Txn) error {
		require.NoError(t, txn.Set([]byte("a"), []byte("1")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = m.View(ctx, func(txn Txn) error {
		_, err := txn.Get([]byte("a"))
		assert.ErrorIs(t, err, ErrKeyNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryReadsOwnWrites(t *testing.T) {
	m := NewMemory()
	err := m.Update(context.Background(), func(txn Txn) error {
		require.NoError(t, txn.Set([]byte("k"), []byte("v")))
		v, err := txn.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryViewIsReadOnly(t *testing.T) {
	m := NewMemory()
	err := m.View(context.Background(), func(txn Txn) error {
		return txn.Set([]byte("k"), []byte("v"))
	})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestMemoryValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	value := []byte("abc")
	require.NoError(t, m.Update(ctx, func(txn Txn) error {
		return txn.Set([]byte("k"), value)
	}))
	value[0] = 'z'

	require.NoError(t, m.View(ctx, func(txn Txn) error {
		v, err := txn.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, "abc", string(v))
		v[1] = 'z'
		return nil
	}))
	require.NoError(t, m.View(ctx, func(txn Txn) error {
		v, err := txn.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, "abc", string(v))
		return nil
	}))
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemory()

	called := false
	err := m.Update(ctx, func(txn Txn) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
